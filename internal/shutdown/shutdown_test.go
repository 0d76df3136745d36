package shutdown

import (
	"testing"

	"github.com/rcornwell/coopkernel/internal/hwport"
)

func TestSequenceWritesPortsInOrderThenHalts(t *testing.T) {
	ports := hwport.NewShutdownPorts()
	Sequence(ports)

	writes := ports.Writes()
	want := []hwport.PortWrite{
		{Port: portQEMU, Value: valueQEMU},
		{Port: portBochsOldQEMU, Value: valueBochs},
		{Port: portVirtualBoxACPI, Value: valueVBox},
	}
	if len(writes) != len(want) {
		t.Fatalf("got %d writes, want %d", len(writes), len(want))
	}
	for i := range want {
		if writes[i] != want[i] {
			t.Fatalf("write %d = %+v, want %+v", i, writes[i], want[i])
		}
	}
	if !ports.Halted() {
		t.Fatal("expected the machine to be halted after Sequence")
	}
}
