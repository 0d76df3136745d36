/*
 * coopkernel - Text-mode display driver.
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

// Package display drives the shared text-mode framebuffer: a logical
// cursor restricted to the text area, absolute writes that bypass the
// cursor, and the scroll rule that keeps the bottom row reserved.
package display

import "github.com/rcornwell/coopkernel/internal/hwport"

// TextAreaHeight is the number of rows available for scrolling text;
// the bottom row of the 25-row grid is reserved and never scrolled.
const TextAreaHeight = hwport.Height - 1

// Driver owns the logical (row, col) cursor and palette used by
// put_char/write, and drives the hardware cursor on the framebuffer.
type Driver struct {
	fb   *hwport.Framebuffer
	row  int
	col  int
	attr byte
}

// New returns a driver bound to fb with the default palette and the
// cursor at the origin.
func New(fb *hwport.Framebuffer) *Driver {
	return &Driver{fb: fb, attr: hwport.DefaultAttr}
}

// ClearAll fills the full grid with space+color and resets the cursor
// to (0,0).
func (d *Driver) ClearAll() {
	d.fb.FillRows(0, hwport.Height, ' ', d.attr)
	d.row, d.col = 0, 0
	d.syncCursor()
}

// ClearTextArea fills rows [0, TextAreaHeight) with space+color and
// resets the cursor to (0,0). The overlay and HUD rows, which also
// live in [0, TextAreaHeight), are left to the region manager to
// redraw afterward.
func (d *Driver) ClearTextArea() {
	d.fb.FillRows(0, TextAreaHeight, ' ', d.attr)
	d.row, d.col = 0, 0
	d.syncCursor()
}

// Cursor returns the current logical (row, col).
func (d *Driver) Cursor() (row, col int) {
	return d.row, d.col
}

// SetCursor places the logical cursor directly, used by the line
// editor to position input before writing and by ENTER to move past
// the captured line.
func (d *Driver) SetCursor(row, col int) {
	d.row, d.col = row, col
	d.syncCursor()
}

// PutChar writes one character at the logical cursor and advances it.
// A newline, or a column overflow past the last column, triggers the
// scroll rule. The hardware cursor is repositioned after every call.
func (d *Driver) PutChar(c byte) {
	if c == '\n' {
		d.newline()
		return
	}
	d.fb.WriteCell(d.row, d.col, c, d.attr)
	d.col++
	if d.col >= hwport.Width {
		d.newline()
		return
	}
	d.syncCursor()
}

// newline implements the scroll rule: blank the rest of the current
// line, then either advance to the next text-area row or scroll rows
// [1, TextAreaHeight) up by one and clear the new last row.
func (d *Driver) newline() {
	for c := d.col; c < hwport.Width; c++ {
		d.fb.WriteCell(d.row, c, ' ', d.attr)
	}
	if d.row+1 >= TextAreaHeight {
		d.fb.ScrollUp(0, TextAreaHeight, d.attr)
	} else {
		d.row++
	}
	d.col = 0
	d.syncCursor()
}

// PutCharAt performs an absolute write with no cursor or scroll side
// effect; out-of-bounds coordinates are a no-op (delegated to the
// framebuffer).
func (d *Driver) PutCharAt(row, col int, c byte) {
	d.fb.WriteCell(row, col, c, d.attr)
}

// Write repeats PutChar over every byte of s.
func (d *Driver) Write(s string) {
	for i := 0; i < len(s); i++ {
		d.PutChar(s[i])
	}
}

// WriteAt repeats PutCharAt starting at (row, col), stopping at the end
// of the row even if s is longer.
func (d *Driver) WriteAt(row, col int, s string) {
	for i := 0; i < len(s) && col+i < hwport.Width; i++ {
		d.PutCharAt(row, col+i, s[i])
	}
}

func (d *Driver) syncCursor() {
	d.fb.SetCursorPos(d.row, d.col)
}

// EnableCursor turns the hardware cursor on with the given scanline
// range (0..15 is the conventional full-block range).
func (d *Driver) EnableCursor(start, end byte) {
	d.fb.EnableCursor(start, end)
}

// HideCursor turns the hardware cursor off.
func (d *Driver) HideCursor() {
	d.fb.HideCursor()
}
