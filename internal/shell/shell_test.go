package shell

import (
	"strconv"
	"testing"
	"time"

	"github.com/rcornwell/coopkernel/internal/display"
	"github.com/rcornwell/coopkernel/internal/hwport"
	"github.com/rcornwell/coopkernel/internal/keyboard"
	"github.com/rcornwell/coopkernel/internal/lineedit"
	"github.com/rcornwell/coopkernel/internal/region"
	"github.com/rcornwell/coopkernel/internal/task"
)

func newTestShell() (*Shell, *task.Table) {
	fb := hwport.NewFramebuffer()
	drv := display.New(fb)
	tasks := task.NewTable()
	regions := region.New(drv, tasks)
	poller := keyboard.New(hwport.NewKeyboardPort())
	editor := lineedit.New(poller, drv, tasks)
	ports := hwport.NewShutdownPorts()
	return New(tasks, drv, editor, regions, ports, time.Now()), tasks
}

func TestSpawnAndKill(t *testing.T) {
	s, tasks := newTestShell()
	id := tasks.Create(Name, s.Run)
	if id == -1 {
		t.Fatal("failed to create shell task")
	}

	s.dispatch(id, "spawn hb0")
	found := false
	for _, info := range tasks.Snapshot() {
		if info.Name == "heartbeat0" {
			found = true
		}
	}
	if !found {
		t.Fatal("expected a heartbeat0 task after spawn hb0")
	}

	var hbID int = -1
	for _, info := range tasks.Snapshot() {
		if info.Name == "heartbeat0" {
			hbID = info.ID
		}
	}
	s.dispatch(id, "kill "+strconv.Itoa(hbID))
	for _, info := range tasks.Snapshot() {
		if info.Name == "heartbeat0" {
			t.Fatal("heartbeat0 should have been killed")
		}
	}
}

func TestSpawnUnknownKind(t *testing.T) {
	s, tasks := newTestShell()
	id := tasks.Create(Name, s.Run)
	before := len(tasks.Snapshot())
	s.dispatch(id, "spawn bogus")
	if len(tasks.Snapshot()) != before {
		t.Fatal("spawn with an unknown kind should not create a task")
	}
}

func TestKillUsageOnBadArgs(t *testing.T) {
	s, tasks := newTestShell()
	id := tasks.Create(Name, s.Run)
	before := len(tasks.Snapshot())
	s.dispatch(id, "kill")
	s.dispatch(id, "kill notanumber")
	if len(tasks.Snapshot()) != before {
		t.Fatal("malformed kill should not change the task table")
	}
}
