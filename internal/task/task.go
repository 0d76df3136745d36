/*
 * coopkernel - Task table and cooperative context switch.
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

// Package task implements the fixed-capacity task table and the
// cooperative, non-preemptive round-robin scheduler.
//
// The specification this package implements describes a hand-rolled
// register-save trampoline that swaps raw machine stack pointers. Go
// gives every goroutine its own runtime-managed stack already, and
// offers no safe way to synthesize a foreign one, so this package
// reproduces the externally observable contract — at most one task
// RUNNING at any instant, strict round-robin fairness among READY
// tasks, no preemption, a happens-before edge from a yield to the next
// instruction of the task resumed — with one goroutine per task slot
// and an unbuffered channel standing in for "the saved stack pointer":
// a parked goroutine blocked on its resume channel *is* the saved
// continuation.
package task

import "runtime"

// Capacity is the fixed size of the task table (N = 8).
const Capacity = 8

// State is one of the four lifecycle states a slot can hold.
type State int

const (
	Dead State = iota
	Ready
	Running
	Blocked
)

// StateChar maps a State to its single HUD/ps display character. Any
// value outside the four known states maps to '?', matching the
// specification's instruction to treat a future state defensively.
func StateChar(s State) byte {
	switch s {
	case Ready:
		return 'R'
	case Running:
		return '*'
	case Blocked:
		return 'B'
	case Dead:
		return 'D'
	default:
		return '?'
	}
}

type slot struct {
	state  State
	name   string
	entry  func(id int)
	resume chan struct{}
	kill   chan struct{}
}

// Info is a read-only snapshot of one non-DEAD slot, used by the HUD
// and the shell's "ps" command.
type Info struct {
	ID    int
	State State
	Name  string
}

// Table is the process-wide task table and scheduler state: the fixed
// array of slots, the current-task index ("none" is -1), and the
// hud_dirty flag.
type Table struct {
	mu       chan struct{} // binary semaphore; see lock/unlock below
	slots    [Capacity]slot
	current  int
	hudDirty bool
}

// NewTable returns an empty table with no current task.
func NewTable() *Table {
	t := &Table{mu: make(chan struct{}, 1), current: -1}
	t.mu <- struct{}{}
	return t
}

func (t *Table) lock()   { <-t.mu }
func (t *Table) unlock() { t.mu <- struct{}{} }

// allocSlot returns the lowest-indexed DEAD slot, or -1 if the table
// is full. Caller must hold the lock.
func (t *Table) allocSlot() int {
	for i := range t.slots {
		if t.slots[i].state == Dead {
			return i
		}
	}
	return -1
}

// Create reserves a slot, starts the task's goroutine parked at its
// entry point, marks the slot READY, and returns its id. It returns -1
// when the table is full.
func (t *Table) Create(name string, entry func(id int)) int {
	t.lock()
	id := t.allocSlot()
	if id == -1 {
		t.unlock()
		return -1
	}
	t.slots[id] = slot{
		state:  Ready,
		name:   name,
		entry:  entry,
		resume: make(chan struct{}),
		kill:   make(chan struct{}),
	}
	t.hudDirty = true
	s := &t.slots[id]
	t.unlock()

	go t.runSlot(id, s)
	return id
}

// runSlot is the trampoline: it waits to be scheduled in for the first
// time, runs the task's entry function, and on return falls into
// task_exit, which yields forever without marking the slot DEAD — the
// specification calls this out explicitly as the behavior of a task
// whose entry returns naturally.
func (t *Table) runSlot(id int, s *slot) {
	select {
	case <-s.resume:
	case <-s.kill:
		runtime.Goexit()
	}
	s.entry(id)
	for {
		t.Yield(id)
	}
}

// Kill fails if id is out of range, already DEAD, or equals current.
// On success it zeros the slot's fields, marks it DEAD, marks the HUD
// dirty, and returns the pre-kill name and the task's pre-kill
// instance index among same-named live tasks (computed before the
// slot is cleared) so a caller can clear an owned overlay row.
func (t *Table) Kill(id int) (name string, instanceIdx int, ok bool) {
	t.lock()
	if id < 0 || id >= Capacity || t.slots[id].state == Dead || id == t.current {
		t.unlock()
		return "", 0, false
	}
	name = t.slots[id].name
	instanceIdx = t.instanceIndexLocked(name, id)
	close(t.slots[id].kill)
	t.slots[id] = slot{state: Dead}
	t.hudDirty = true
	t.unlock()
	return name, instanceIdx, true
}

// InstanceIndex scans slots 0..Capacity in order; for each non-DEAD
// slot whose name equals nm, it counts it, and returns the count at
// the point slot me is reached, or -1 if me is never reached with a
// matching name (including when me itself doesn't hold that name).
func (t *Table) InstanceIndex(nm string, me int) int {
	t.lock()
	defer t.unlock()
	return t.instanceIndexLocked(nm, me)
}

func (t *Table) instanceIndexLocked(nm string, me int) int {
	count := 0
	for i := range t.slots {
		if t.slots[i].state == Dead || t.slots[i].name != nm {
			continue
		}
		if i == me {
			return count
		}
		count++
	}
	return -1
}

// findNextReadyLocked searches starting at (prev+1) mod Capacity for
// the first READY slot other than prev itself, wrapping once around
// the table. Caller must hold the lock.
func (t *Table) findNextReadyLocked(prev int) int {
	start := ((prev+1)%Capacity + Capacity) % Capacity
	for i := 0; i < Capacity; i++ {
		idx := (start + i) % Capacity
		if idx == prev {
			continue
		}
		if t.slots[idx].state == Ready {
			return idx
		}
	}
	return -1
}

// Run performs the initial one-way switch into the first READY task.
// It is called once, from the boot sequence, before any task has ever
// run. Like the real one-way switch it models, it never returns to its
// caller while any task remains runnable.
func (t *Table) Run() {
	t.lock()
	next := t.findNextReadyLocked(-1)
	if next == -1 {
		t.hudDirty = true
		t.unlock()
		return
	}
	t.current = next
	t.slots[next].state = Running
	t.hudDirty = true
	resumeNext := t.slots[next].resume
	t.unlock()

	resumeNext <- struct{}{}
	select {} // the one-way switch never returns
}

// Yield re-enters the scheduler on behalf of the task currently
// running in slot id. If another task is READY, control is handed to
// it and the caller's goroutine parks until it is scheduled again (or
// killed, in which case it exits cleanly via runtime.Goexit). If no
// other task is READY, Yield returns immediately and the caller keeps
// running.
func (t *Table) Yield(id int) {
	t.lock()
	prev := id
	if t.slots[prev].state == Running {
		t.slots[prev].state = Ready
	}
	next := t.findNextReadyLocked(prev)
	if next == -1 {
		if t.slots[prev].state != Dead {
			t.slots[prev].state = Running
		}
		t.hudDirty = true
		t.unlock()
		return
	}
	t.current = next
	t.slots[next].state = Running
	t.hudDirty = true
	resumeNext := t.slots[next].resume
	myResume := t.slots[prev].resume
	myKill := t.slots[prev].kill
	t.unlock()

	resumeNext <- struct{}{}
	select {
	case <-myResume:
		return
	case <-myKill:
		runtime.Goexit()
	}
}

// Current returns the currently RUNNING slot id, or -1 if none.
func (t *Table) Current() int {
	t.lock()
	defer t.unlock()
	return t.current
}

// ConsumeHUDDirty reports whether the HUD needs a redraw and clears
// the flag. The region manager calls this from RedrawIfDirty.
func (t *Table) ConsumeHUDDirty() bool {
	t.lock()
	defer t.unlock()
	dirty := t.hudDirty
	t.hudDirty = false
	return dirty
}

// MarkHUDDirty sets the hud_dirty flag so the next check redraws the
// HUD, for state changes that do not go through Create/Kill.
func (t *Table) MarkHUDDirty() {
	t.lock()
	t.hudDirty = true
	t.unlock()
}

// Snapshot returns every non-DEAD slot's id/state/name, in slot order.
func (t *Table) Snapshot() []Info {
	t.lock()
	defer t.unlock()
	out := make([]Info, 0, Capacity)
	for i := range t.slots {
		if t.slots[i].state == Dead {
			continue
		}
		out = append(out, Info{ID: i, State: t.slots[i].state, Name: t.slots[i].name})
	}
	return out
}
