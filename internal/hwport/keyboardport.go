package hwport

import "sync"

// KeyboardPort simulates the PS/2-style controller's status port (0x64)
// and data port (0x60): an unbounded byte FIFO plus a status bit that
// is set while a byte is pending. Real keyboard controllers and this
// simulation both let the poller observe "nothing pending" without
// blocking, which is what makes the poller safe to call from a
// cooperative task that must never sleep.
type KeyboardPort struct {
	mu      sync.Mutex
	pending []byte
}

// NewKeyboardPort returns an empty port.
func NewKeyboardPort() *KeyboardPort {
	return &KeyboardPort{}
}

// Push queues a raw scancode byte as if the hardware had received it.
// Host-io adapters (raw terminal, serial mirror) call this after
// translating real input into the scancode-set-1 byte stream.
func (p *KeyboardPort) Push(b byte) {
	p.mu.Lock()
	p.pending = append(p.pending, b)
	p.mu.Unlock()
}

// StatusHasByte reads bit 0 of the status port (0x64): true when a byte
// is available on the data port.
func (p *KeyboardPort) StatusHasByte() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.pending) > 0
}

// ReadData reads one byte from the data port (0x60). Calling this when
// StatusHasByte is false is a driver error in real hardware and returns
// (0, false) here.
func (p *KeyboardPort) ReadData() (byte, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if len(p.pending) == 0 {
		return 0, false
	}
	b := p.pending[0]
	p.pending = p.pending[1:]
	return b, true
}
