package hwport

import "testing"

func TestKeyboardPortQueueOrder(t *testing.T) {
	p := NewKeyboardPort()
	if p.StatusHasByte() {
		t.Fatal("fresh port should report no pending byte")
	}
	p.Push(0x1E)
	p.Push(0x9E)
	if !p.StatusHasByte() {
		t.Fatal("expected pending bytes")
	}
	b, ok := p.ReadData()
	if !ok || b != 0x1E {
		t.Fatalf("got (%x, %v), want (0x1E, true)", b, ok)
	}
	b, ok = p.ReadData()
	if !ok || b != 0x9E {
		t.Fatalf("got (%x, %v), want (0x9E, true)", b, ok)
	}
	if p.StatusHasByte() {
		t.Fatal("port should be drained")
	}
	if _, ok := p.ReadData(); ok {
		t.Fatal("reading an empty port should report false")
	}
}
