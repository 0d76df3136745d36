/*
 * coopkernel - Line editor.
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

// Package lineedit implements a cooperative line editor: it owns an
// insertion point into a byte buffer and redraws the line on the
// display after every edit, yielding the calling task whenever no key
// is pending so the scheduler can run other tasks while waiting on
// input.
package lineedit

import (
	"github.com/rcornwell/coopkernel/internal/display"
	"github.com/rcornwell/coopkernel/internal/keyboard"
	"github.com/rcornwell/coopkernel/internal/task"
)

// maxLine bounds the buffer so a runaway paste can't grow it forever;
// characters typed past the bound are discarded but still redraw.
const maxLine = 255

// Editor reads one line at a time from a keyboard poller, drawing into
// a display driver starting at a fixed origin.
type Editor struct {
	poller    *keyboard.Poller
	drv       *display.Driver
	tasks     *task.Table
	originRow int
	originCol int
	buf       []byte
	point     int
}

// New returns an editor bound to the poller, display driver and task
// table. Each ReadLine call supplies the origin the line is drawn at.
func New(poller *keyboard.Poller, drv *display.Driver, tasks *task.Table) *Editor {
	return &Editor{poller: poller, drv: drv, tasks: tasks}
}

// ReadLine edits a single line starting at (row, col), yielding the
// owning task (identified by id) on every poll that finds no key
// pending, and redrawing after every non-ENTER event. It returns the
// completed line with the trailing ENTER stripped.
func (e *Editor) ReadLine(id int, row, col int) string {
	e.originRow, e.originCol = row, col
	e.buf = e.buf[:0]
	e.point = 0
	e.redraw()

	for {
		ev, ok := e.poller.TryGetKey()
		if !ok {
			e.tasks.Yield(id)
			continue
		}
		switch ev.Kind {
		case keyboard.Enter:
			e.drv.SetCursor(e.originRow, e.originCol+len(e.buf))
			e.drv.PutChar('\n')
			return string(e.buf)
		case keyboard.Char:
			if len(e.buf) < maxLine {
				e.buf = append(e.buf, 0)
				copy(e.buf[e.point+1:], e.buf[e.point:len(e.buf)-1])
				e.buf[e.point] = ev.Ch
				e.point++
			}
		case keyboard.Backspace:
			if e.point > 0 {
				copy(e.buf[e.point-1:], e.buf[e.point:])
				e.buf = e.buf[:len(e.buf)-1]
				e.point--
			}
		case keyboard.Delete:
			if e.point < len(e.buf) {
				copy(e.buf[e.point:], e.buf[e.point+1:])
				e.buf = e.buf[:len(e.buf)-1]
			}
		case keyboard.Left:
			if e.point > 0 {
				e.point--
			}
		case keyboard.Right:
			if e.point < len(e.buf) {
				e.point++
			}
		default:
			continue
		}
		e.redraw()
	}
}

// redraw rewrites the whole line from the origin, including trailing
// padding to erase leftover characters from a longer previous draw,
// then places the hardware cursor at the insertion point.
func (e *Editor) redraw() {
	e.drv.SetCursor(e.originRow, e.originCol)
	for i := 0; i < len(e.buf); i++ {
		e.drv.PutCharAt(e.originRow, e.originCol+i, e.buf[i])
	}
	e.drv.PutCharAt(e.originRow, e.originCol+len(e.buf), ' ')
	e.drv.SetCursor(e.originRow, e.originCol+e.point)
}
