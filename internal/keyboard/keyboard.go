/*
 * coopkernel - PS/2-style keyboard poller.
 *
 * Copyright 2024, Richard Cornwell
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in
 * all copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 *
 */

// Package keyboard performs non-blocking single-event extraction from a
// simulated keyboard controller, including the extended-key prefix and
// shift modifier handling described by the scancode-set-1 convention.
package keyboard

import "github.com/rcornwell/coopkernel/internal/hwport"

// Kind is the tag of a keyboard Event.
type Kind int

const (
	None Kind = iota
	Char
	Enter
	Backspace
	Left
	Right
	Delete
)

// Event is the tagged variant produced by TryGetKey. Only Char carries
// a payload.
type Event struct {
	Kind Kind
	Ch   byte
}

const (
	extendedPrefix = 0xE0
	leftShift      = 0x2A
	rightShift     = 0x36
	extLeft        = 0x4B
	extRight       = 0x4D
	extDelete      = 0x53
)

// baseTable and shiftTable are the fixed scancode-set-1 translation
// tables; their content is part of the external interface. Index is
// the 7-bit make code with the high (release) bit masked off. Unmapped
// entries are 0 and are silently discarded by TryGetKey.
var baseTable = [128]byte{
	0x1E: 'a', 0x30: 'b', 0x2E: 'c', 0x20: 'd', 0x12: 'e', 0x21: 'f',
	0x22: 'g', 0x23: 'h', 0x17: 'i', 0x24: 'j', 0x25: 'k', 0x26: 'l',
	0x32: 'm', 0x31: 'n', 0x18: 'o', 0x19: 'p', 0x10: 'q', 0x13: 'r',
	0x1F: 's', 0x14: 't', 0x16: 'u', 0x2F: 'v', 0x11: 'w', 0x2D: 'x',
	0x15: 'y', 0x2C: 'z',
	0x02: '1', 0x03: '2', 0x04: '3', 0x05: '4', 0x06: '5',
	0x07: '6', 0x08: '7', 0x09: '8', 0x0A: '9', 0x0B: '0',
	0x39: ' ', 0x1C: '\n', 0x0E: '\b',
	0x0C: '-', 0x0D: '=', 0x1A: '[', 0x1B: ']', 0x27: ';', 0x28: '\'',
	0x29: '`', 0x2B: '\\', 0x33: ',', 0x34: '.', 0x35: '/',
}

var shiftTable = [128]byte{
	0x1E: 'A', 0x30: 'B', 0x2E: 'C', 0x20: 'D', 0x12: 'E', 0x21: 'F',
	0x22: 'G', 0x23: 'H', 0x17: 'I', 0x24: 'J', 0x25: 'K', 0x26: 'L',
	0x32: 'M', 0x31: 'N', 0x18: 'O', 0x19: 'P', 0x10: 'Q', 0x13: 'R',
	0x1F: 'S', 0x14: 'T', 0x16: 'U', 0x2F: 'V', 0x11: 'W', 0x2D: 'X',
	0x15: 'Y', 0x2C: 'Z',
	0x02: '!', 0x03: '@', 0x04: '#', 0x05: '$', 0x06: '%',
	0x07: '^', 0x08: '&', 0x09: '*', 0x0A: '(', 0x0B: ')',
	0x39: ' ', 0x1C: '\n', 0x0E: '\b',
	0x0C: '_', 0x0D: '+', 0x1A: '{', 0x1B: '}', 0x27: ':', 0x28: '"',
	0x29: '~', 0x2B: '|', 0x33: '<', 0x34: '>', 0x35: '?',
}

// asciiToScancode and asciiToShiftScancode are the reverse of
// baseTable/shiftTable, built once at init for host-io adapters that
// receive ASCII from a real terminal or serial line and need to feed
// the simulated controller the make codes it expects.
var (
	asciiToScancode      [256]byte
	asciiToShiftScancode [256]byte
)

func init() {
	for code, ch := range baseTable {
		if ch != 0 {
			asciiToScancode[ch] = byte(code)
		}
	}
	for code, ch := range shiftTable {
		if ch != 0 {
			asciiToShiftScancode[ch] = byte(code)
		}
	}
}

// PushASCII translates one ASCII byte into the make/break scancode
// sequence the simulated controller expects and pushes it onto port.
// Bytes with no mapping are silently dropped.
func PushASCII(port *hwport.KeyboardPort, b byte) {
	if code := asciiToScancode[b]; code != 0 {
		port.Push(code)
		port.Push(code | 0x80)
		return
	}
	if code := asciiToShiftScancode[b]; code != 0 {
		port.Push(leftShift)
		port.Push(code)
		port.Push(code | 0x80)
		port.Push(leftShift | 0x80)
	}
}

// Poller tracks the modifier state private to TryGetKey: whether shift
// is currently held, and whether the previous byte read was the
// extended-key prefix.
type Poller struct {
	port              *hwport.KeyboardPort
	shiftDown         bool
	extendedPrefixSet bool
}

// New returns a poller bound to a simulated keyboard port.
func New(port *hwport.KeyboardPort) *Poller {
	return &Poller{port: port}
}

func isShiftCode(code byte) bool {
	return code == leftShift || code == rightShift
}

// TryGetKey performs one non-blocking poll, consuming at most one byte.
// It returns false with ev zeroed when nothing is pending, when the
// extended-key prefix or a shift press is consumed, when a release
// event is consumed, when a non-printable byte is decoded, or when an
// unmapped extended key is pressed.
func (p *Poller) TryGetKey() (ev Event, ok bool) {
	if !p.port.StatusHasByte() {
		return Event{}, false
	}
	b, has := p.port.ReadData()
	if !has {
		return Event{}, false
	}

	if b == extendedPrefix {
		p.extendedPrefixSet = true
		return Event{}, false
	}

	extended := p.extendedPrefixSet

	if b&0x80 != 0 {
		// Release event.
		code := b &^ 0x80
		if !extended && isShiftCode(code) {
			p.shiftDown = false
		}
		p.extendedPrefixSet = false
		return Event{}, false
	}

	code := b
	p.extendedPrefixSet = false

	if !extended && isShiftCode(code) {
		p.shiftDown = true
		return Event{}, false
	}

	if extended {
		switch code {
		case extLeft:
			return Event{Kind: Left}, true
		case extRight:
			return Event{Kind: Right}, true
		case extDelete:
			return Event{Kind: Delete}, true
		default:
			return Event{}, false
		}
	}

	table := &baseTable
	if p.shiftDown {
		table = &shiftTable
	}
	ch := table[code&0x7F]
	switch {
	case ch == '\n':
		return Event{Kind: Enter}, true
	case ch == '\b':
		return Event{Kind: Backspace}, true
	case ch >= 32 && ch <= 126:
		return Event{Kind: Char, Ch: ch}, true
	default:
		return Event{}, false
	}
}

// ShiftDown reports the current shift modifier state, exposed for
// diagnostics and tests.
func (p *Poller) ShiftDown() bool {
	return p.shiftDown
}
