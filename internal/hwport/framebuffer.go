/*
 * coopkernel - Simulated text-mode framebuffer and CRTC cursor ports.
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

// Package hwport models the fixed hardware interfaces described by the
// external-interfaces section of the kernel specification: the memory
// mapped character-cell framebuffer at 0xB8000, the CRTC index/data
// cursor-control ports at 0x3D4/0x3D5, the keyboard controller's status
// and data ports at 0x64/0x60, and the legacy shutdown ports. Every type
// here is an addressable simulation, the same way the teacher models an
// IBM System/370 channel-attached device rather than real hardware.
package hwport

import "sync"

const (
	// Width is the framebuffer column count.
	Width = 80
	// Height is the framebuffer row count.
	Height = 25
	// DefaultAttr is white-on-black, the power-on palette byte.
	DefaultAttr = 0x0F
)

// Cell is one character-cell: low byte character, high byte attribute,
// matching the two-byte-per-cell layout of real VGA text memory.
type Cell struct {
	Char byte
	Attr byte
}

// Framebuffer is the memory mapped region beginning at physical address
// 0xB8000: an 80x25 grid of character cells, plus the CRTC cursor
// position/visibility state programmed through ports 0x3D4/0x3D5.
type Framebuffer struct {
	mu    sync.Mutex
	cells [Height][Width]Cell

	cursorRow, cursorCol int
	cursorVisible        bool
	cursorStart          byte
	cursorEnd            byte
}

// NewFramebuffer returns a framebuffer filled with space+DefaultAttr,
// cursor hidden at (0,0), matching the state before boot programs it.
func NewFramebuffer() *Framebuffer {
	fb := &Framebuffer{}
	fb.fillLocked(0, Height, ' ', DefaultAttr)
	return fb
}

func (fb *Framebuffer) fillLocked(fromRow, toRow int, ch, attr byte) {
	for r := fromRow; r < toRow; r++ {
		for c := 0; c < Width; c++ {
			fb.cells[r][c] = Cell{Char: ch, Attr: attr}
		}
	}
}

// WriteCell performs the raw memory-mapped write at an absolute
// (row, col); out-of-bounds coordinates are a no-op, matching how real
// memory-mapped I/O silently ignores writes outside the mapped window
// when a driver miscalculates an offset.
func (fb *Framebuffer) WriteCell(row, col int, ch, attr byte) {
	if row < 0 || row >= Height || col < 0 || col >= Width {
		return
	}
	fb.mu.Lock()
	fb.cells[row][col] = Cell{Char: ch, Attr: attr}
	fb.mu.Unlock()
}

// ReadCell returns the cell at an absolute (row, col); out-of-bounds
// coordinates return the space+DefaultAttr cell.
func (fb *Framebuffer) ReadCell(row, col int) Cell {
	if row < 0 || row >= Height || col < 0 || col >= Width {
		return Cell{Char: ' ', Attr: DefaultAttr}
	}
	fb.mu.Lock()
	defer fb.mu.Unlock()
	return fb.cells[row][col]
}

// FillRows fills rows [fromRow, toRow) with ch+attr. Used by clear_all,
// clear_text_area and the region manager's overlay/HUD redraw.
func (fb *Framebuffer) FillRows(fromRow, toRow int, ch, attr byte) {
	fb.mu.Lock()
	fb.fillLocked(fromRow, toRow, ch, attr)
	fb.mu.Unlock()
}

// ScrollUp scrolls the range [fromRow, toRow) up by one row: rows
// (fromRow, toRow) are copied one row up, row fromRow's old content is
// discarded, and the last row of the range is cleared. Rows outside the
// range are untouched. The display driver uses it for the text-area
// scroll rule.
func (fb *Framebuffer) ScrollUp(fromRow, toRow int, blankAttr byte) {
	fb.mu.Lock()
	defer fb.mu.Unlock()
	for r := fromRow; r < toRow-1; r++ {
		fb.cells[r] = fb.cells[r+1]
	}
	fb.fillLocked(toRow-1, toRow, ' ', blankAttr)
}

// SetCursorPos programs CRTC registers 0x0F/0x0E with the low/high byte
// of row*Width+col, the hardware cursor position.
func (fb *Framebuffer) SetCursorPos(row, col int) {
	fb.mu.Lock()
	fb.cursorRow, fb.cursorCol = row, col
	fb.mu.Unlock()
}

// CursorPos returns the last position programmed through SetCursorPos.
func (fb *Framebuffer) CursorPos() (row, col int) {
	fb.mu.Lock()
	defer fb.mu.Unlock()
	return fb.cursorRow, fb.cursorCol
}

// EnableCursor programs CRTC registers 0x0A/0x0B with a scanline range,
// making the hardware cursor visible.
func (fb *Framebuffer) EnableCursor(start, end byte) {
	fb.mu.Lock()
	fb.cursorVisible = true
	fb.cursorStart, fb.cursorEnd = start, end
	fb.mu.Unlock()
}

// HideCursor writes 0x20 to CRTC index 0x0A, disabling the cursor.
func (fb *Framebuffer) HideCursor() {
	fb.mu.Lock()
	fb.cursorVisible = false
	fb.mu.Unlock()
}

// CursorVisible reports whether EnableCursor is currently in effect.
func (fb *Framebuffer) CursorVisible() bool {
	fb.mu.Lock()
	defer fb.mu.Unlock()
	return fb.cursorVisible
}

// Snapshot copies every cell into a caller-owned grid, for tests and
// for host-io backends that mirror the simulated screen.
func (fb *Framebuffer) Snapshot() [Height][Width]Cell {
	fb.mu.Lock()
	defer fb.mu.Unlock()
	return fb.cells
}
