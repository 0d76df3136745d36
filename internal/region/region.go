/*
 * coopkernel - Region manager: text area, overlay bands, and HUD.
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

// Package region partitions the shared framebuffer into the text area,
// the two heartbeat overlay bands, and the HUD rectangle, and owns the
// redraw rules that keep tasks from clobbering each other's cells.
package region

import (
	"fmt"

	"github.com/rcornwell/coopkernel/internal/display"
	"github.com/rcornwell/coopkernel/internal/hwport"
	"github.com/rcornwell/coopkernel/internal/task"
)

const (
	// OverlayCol is the shared left column of both overlay bands.
	OverlayCol = 60
	// OverlayRows is the height of each band.
	OverlayRows = 4
	// Overlay band row bases, keyed by owning task name.
	Overlay0Base = 0
	Overlay1Base = 4

	// HUD rectangle: 26 columns by 6 rows, anchored bottom-right.
	hudWidth  = 26
	hudHeight = 6
	hudLines  = 5 // task lines below the title row
)

// Manager owns the redraw rules for the regions that share the
// framebuffer with the scrollable text area.
type Manager struct {
	drv    *display.Driver
	tasks  *task.Table
	hudCol int
	hudRow int
}

// New returns a manager bound to the display driver and task table
// that back it.
func New(drv *display.Driver, tasks *task.Table) *Manager {
	return &Manager{
		drv:    drv,
		tasks:  tasks,
		hudCol: hwport.Width - hudWidth,
		hudRow: hwport.Height - hudHeight,
	}
}

// OverlayBaseRow returns the row base for a heartbeat owner name, and
// ok=false if the name does not own an overlay band.
func OverlayBaseRow(name string) (row int, ok bool) {
	switch name {
	case "heartbeat0":
		return Overlay0Base, true
	case "heartbeat1":
		return Overlay1Base, true
	default:
		return 0, false
	}
}

// RenderOverlay clears and rewrites one row of a heartbeat's band. It
// is a no-op if idx is outside [0, OverlayRows), matching the rule
// that a heartbeat with no remaining instance slot draws nothing.
func (m *Manager) RenderOverlay(base, idx int, text string) {
	if idx < 0 || idx >= OverlayRows {
		return
	}
	row := base + idx
	for c := OverlayCol; c < hwport.Width; c++ {
		m.drv.PutCharAt(row, c, ' ')
	}
	m.drv.WriteAt(row, OverlayCol, text)
}

// ClearOverlayRow blanks exactly one overlay row, used when a
// heartbeat task is killed.
func (m *Manager) ClearOverlayRow(base, idx int) {
	if idx < 0 || idx >= OverlayRows {
		return
	}
	row := base + idx
	for c := OverlayCol; c < hwport.Width; c++ {
		m.drv.PutCharAt(row, c, ' ')
	}
}

// ClearOverlays blanks both overlay bands entirely; used by the
// "clear" shell command before the bands are repopulated on the next
// heartbeat tick.
func (m *Manager) ClearOverlays() {
	for _, base := range []int{Overlay0Base, Overlay1Base} {
		for row := base; row < base+OverlayRows; row++ {
			for c := OverlayCol; c < hwport.Width; c++ {
				m.drv.PutCharAt(row, c, ' ')
			}
		}
	}
}

// RedrawIfDirty redraws the HUD iff the task table's hud_dirty flag is
// set, and clears that flag. The kernel calls it from its periodic HUD
// refresh, outside the scheduler.
func (m *Manager) RedrawIfDirty() {
	if m.tasks.ConsumeHUDDirty() {
		m.redrawHUD()
	}
}

// ForceRedraw unconditionally redraws the HUD without consulting or
// clearing the dirty flag, used by "clear" so the operator sees the
// HUD again without waiting for the next refresh.
func (m *Manager) ForceRedraw() {
	m.redrawHUD()
}

func (m *Manager) redrawHUD() {
	for r := 0; r < hudHeight; r++ {
		for c := 0; c < hudWidth; c++ {
			m.drv.PutCharAt(m.hudRow+r, m.hudCol+c, ' ')
		}
	}
	m.drv.WriteAt(m.hudRow, m.hudCol, "Tasks")

	infos := m.tasks.Snapshot()
	for i := 0; i < hudLines && i < len(infos); i++ {
		info := infos[i]
		name := info.Name
		if name == "" {
			name = "?"
		}
		line := fmt.Sprintf("#%d %c %s", info.ID, task.StateChar(info.State), name)
		m.drv.WriteAt(m.hudRow+1+i, m.hudCol, line)
	}
}
