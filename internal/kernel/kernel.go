/*
 * coopkernel - Kernel boot sequence.
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

// Package kernel wires the hardware simulation, drivers, and tasks
// together into the single boot sequence described by the design
// notes: build an empty task table, bring up the display, create the
// shell and the two heartbeats, and hand control to the scheduler.
package kernel

import (
	"log/slog"
	"time"

	"github.com/rcornwell/coopkernel/internal/display"
	"github.com/rcornwell/coopkernel/internal/heartbeat"
	"github.com/rcornwell/coopkernel/internal/hwport"
	"github.com/rcornwell/coopkernel/internal/keyboard"
	"github.com/rcornwell/coopkernel/internal/lineedit"
	"github.com/rcornwell/coopkernel/internal/region"
	"github.com/rcornwell/coopkernel/internal/shell"
	"github.com/rcornwell/coopkernel/internal/task"
)

// cursorStart and cursorEnd are the conventional CRTC scanline range
// for a full-height text cursor.
const (
	cursorStart = 0
	cursorEnd   = 15
)

// Kernel is the singleton grouping the task table, hardware ports, and
// drivers that the boot sequence wires together, mirroring the single
// global kernel_state the design notes describe.
type Kernel struct {
	Tasks   *task.Table
	FB      *hwport.Framebuffer
	KBD     *hwport.KeyboardPort
	Ports   *hwport.ShutdownPorts
	Display *display.Driver
	Regions *region.Manager
	log     *slog.Logger
}

// New constructs the kernel's hardware and task-table singletons but
// does not boot it; call Boot to create the initial tasks and enter
// the scheduler.
func New(log *slog.Logger) *Kernel {
	fb := hwport.NewFramebuffer()
	k := &Kernel{
		Tasks: task.NewTable(),
		FB:    fb,
		KBD:   hwport.NewKeyboardPort(),
		Ports: hwport.NewShutdownPorts(),
		log:   log,
	}
	k.Display = display.New(fb)
	k.Regions = region.New(k.Display, k.Tasks)
	return k
}

// Boot runs the documented boot sequence: clear the screen, enable the
// hardware cursor, create the shell and both heartbeats, and enter the
// scheduler. It never returns while any task remains runnable. A zero
// hb0Delay/hb1Delay selects the built-in calibration.
func (k *Kernel) Boot(hb0Delay, hb1Delay int) {
	if hb0Delay <= 0 {
		hb0Delay = heartbeat.Delay0()
	}
	if hb1Delay <= 0 {
		hb1Delay = heartbeat.Delay1()
	}

	k.Display.HideCursor()
	k.Display.ClearAll()
	k.Display.EnableCursor(cursorStart, cursorEnd)

	poller := keyboard.New(k.KBD)
	editor := lineedit.New(poller, k.Display, k.Tasks)
	sh := shell.New(k.Tasks, k.Display, editor, k.Regions, k.Ports, time.Now())

	if k.Tasks.Create(shell.Name, sh.Run) == -1 {
		k.log.Error("boot: no free slot for shell task")
	}
	if k.Tasks.Create(heartbeat.Name0, heartbeat.Run(k.Tasks, k.Regions, heartbeat.Name0, hb0Delay)) == -1 {
		k.log.Error("boot: no free slot for heartbeat0")
	}
	if k.Tasks.Create(heartbeat.Name1, heartbeat.Run(k.Tasks, k.Regions, heartbeat.Name1, hb1Delay)) == -1 {
		k.log.Error("boot: no free slot for heartbeat1")
	}

	go k.runHUDRefresh()

	k.log.Info("boot sequence complete, entering scheduler")
	k.Tasks.Run()
}

// runHUDRefresh stands in for the video card's own refresh cycle: it
// repaints the HUD whenever hud_dirty is set, outside the cooperative
// scheduler, the same way a real VGA adapter redraws from framebuffer
// memory without waiting to be scheduled.
func (k *Kernel) runHUDRefresh() {
	ticker := time.NewTicker(50 * time.Millisecond)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			k.Regions.RedrawIfDirty()
		case <-k.Ports.Done():
			return
		}
	}
}
