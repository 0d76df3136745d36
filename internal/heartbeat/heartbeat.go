/*
 * coopkernel - Heartbeat tasks.
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

// Package heartbeat implements the two busy-counting demo tasks that
// render their progress into a dedicated overlay row so the operator
// can see the scheduler keep them running alongside the shell.
package heartbeat

import (
	"fmt"

	"github.com/rcornwell/coopkernel/internal/region"
	"github.com/rcornwell/coopkernel/internal/task"
)

// Name0 and Name1 are the fixed task names for the two heartbeat
// variants; the region manager maps them to their overlay band.
const (
	Name0 = "heartbeat0"
	Name1 = "heartbeat1"
)

// label0 and label1 are the abbreviated names the overlay text uses in
// place of the full task name.
const (
	label0 = "HB0"
	label1 = "HB1"
)

func label(name string) string {
	if name == Name1 {
		return label1
	}
	return label0
}

// delay0 and delay1 are the busy-loop iteration counts that stand in
// for a calibrated real-time tick on the reference hardware; hb1 runs
// slower than hb0 so the two bands visibly drift apart.
const (
	delay0     = 800_000
	delay1     = 1_100_000
	yieldEvery = 16384
)

// Run is the entry point registered with task.Table.Create for a
// heartbeat instance. name selects the hb0 vs hb1 overlay band and
// label; delay is the busy-loop iteration count between updates.
func Run(tasks *task.Table, regions *region.Manager, name string, delay int) func(id int) {
	return func(id int) {
		base, ok := region.OverlayBaseRow(name)
		if !ok {
			base = region.Overlay0Base
		}
		var counter uint32
		for {
			idx := tasks.InstanceIndex(name, id)
			if idx >= 0 && idx < region.OverlayRows {
				text := fmt.Sprintf("%s #%d : %d", label(name), id%10, counter%10)
				regions.RenderOverlay(base, idx, text)
			}
			spin(tasks, id, delay)
			counter++
		}
	}
}

// spin busy-waits for 'count' iterations, yielding every yieldEvery
// iterations so the task never monopolizes the processor between its
// own overlay updates.
func spin(tasks *task.Table, id int, count int) {
	for i := 0; i < count; i++ {
		if i%yieldEvery == 0 {
			tasks.Yield(id)
		}
	}
}

// Delay0 and Delay1 expose the calibrated iteration counts for the
// boot sequence to pass to Run.
func Delay0() int { return delay0 }
func Delay1() int { return delay1 }
