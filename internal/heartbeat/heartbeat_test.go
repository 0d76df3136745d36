package heartbeat

import (
	"testing"
	"time"

	"github.com/rcornwell/coopkernel/internal/display"
	"github.com/rcornwell/coopkernel/internal/hwport"
	"github.com/rcornwell/coopkernel/internal/region"
	"github.com/rcornwell/coopkernel/internal/task"
)

func TestRunRendersIntoItsOwnBand(t *testing.T) {
	fb := hwport.NewFramebuffer()
	drv := display.New(fb)
	tasks := task.NewTable()
	regions := region.New(drv, tasks)

	id := tasks.Create(Name0, Run(tasks, regions, Name0, 10))
	if id == -1 {
		t.Fatal("failed to create heartbeat task")
	}
	go tasks.Run()

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if fb.ReadCell(Overlay0Row(), region.OverlayCol).Char != ' ' {
			return
		}
		time.Sleep(time.Millisecond)
	}
	t.Fatal("heartbeat never rendered into its overlay row")
}

// Overlay0Row is a small test helper mirroring region.Overlay0Base,
// kept local so this test doesn't need to reach into region internals.
func Overlay0Row() int {
	row, _ := region.OverlayBaseRow(Name0)
	return row
}
