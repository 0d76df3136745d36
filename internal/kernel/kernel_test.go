package kernel

import (
	"io"
	"log/slog"
	"testing"
	"time"
)

func TestBootCreatesShellAndHeartbeats(t *testing.T) {
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	k := New(log)

	go k.Boot(5000, 5000)

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		infos := k.Tasks.Snapshot()
		if len(infos) == 3 {
			names := map[string]bool{}
			for _, info := range infos {
				names[info.Name] = true
			}
			if names["shell"] && names["heartbeat0"] && names["heartbeat1"] {
				return
			}
		}
		time.Sleep(time.Millisecond)
	}
	t.Fatal("boot did not create the expected three tasks in time")
}
