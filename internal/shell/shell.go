/*
 * coopkernel - Shell task.
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

// Package shell implements the interactive command task: a dispatch
// table over lines read by the line editor, run as an ordinary
// cooperative task like any other.
package shell

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/rcornwell/coopkernel/internal/display"
	"github.com/rcornwell/coopkernel/internal/heartbeat"
	"github.com/rcornwell/coopkernel/internal/hwport"
	"github.com/rcornwell/coopkernel/internal/lineedit"
	"github.com/rcornwell/coopkernel/internal/region"
	"github.com/rcornwell/coopkernel/internal/shutdown"
	"github.com/rcornwell/coopkernel/internal/task"
)

// Name is the fixed task name the scheduler and HUD display for the
// shell slot.
const Name = "shell"

// Shell bundles everything the command loop needs: the task table it
// dispatches against, the display it prints to, the editor it reads
// lines from, the region manager it clears/redraws through, and the
// shutdown ports the "exit" command drives.
type Shell struct {
	tasks   *task.Table
	drv     *display.Driver
	editor  *lineedit.Editor
	regions *region.Manager
	ports   *hwport.ShutdownPorts
	boot    time.Time
	prompt  string
}

// New returns a shell bound to its collaborators. boot is the time the
// kernel finished its boot sequence, used by "uptime".
func New(tasks *task.Table, drv *display.Driver, editor *lineedit.Editor, regions *region.Manager, ports *hwport.ShutdownPorts, boot time.Time) *Shell {
	return &Shell{tasks: tasks, drv: drv, editor: editor, regions: regions, ports: ports, boot: boot, prompt: "> "}
}

// Run is the entry point registered with task.Table.Create. It prints
// the prompt, reads one line, dispatches it, and yields before looping
// — every shell iteration gives every other task at least one chance
// to run.
func (s *Shell) Run(id int) {
	for {
		s.drv.Write(s.prompt)
		row, col := s.drv.Cursor()
		line := s.editor.ReadLine(id, row, col)
		s.dispatch(id, strings.TrimSpace(line))
		s.tasks.Yield(id)
	}
}

func (s *Shell) dispatch(id int, line string) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return
	}
	cmd := fields[0]
	args := fields[1:]

	switch cmd {
	case "thanks":
		s.drv.Write("You're welcome!\n")
	case "exit":
		s.drv.Write("Shutting down...\n")
		shutdown.Sequence(s.ports)
		select {} // halted: this task, and the machine, never resume
	case "clear":
		s.drv.ClearTextArea()
		s.regions.ClearOverlays()
		s.regions.ForceRedraw()
	case "ps":
		s.cmdPS()
	case "kill":
		s.cmdKill(args)
	case "spawn":
		s.cmdSpawn(args)
	case "yield":
		s.drv.Write("(yield)\n")
		s.tasks.Yield(id)
	case "uptime":
		s.drv.Write(fmt.Sprintf("up %s\n", time.Since(s.boot).Round(time.Second)))
	default:
		s.drv.Write("usage: thanks | exit | clear | ps | kill <id> | spawn hb0|hb1 | yield | uptime\n")
	}
}

func (s *Shell) cmdPS() {
	s.drv.Write("ID STATE NAME\n")
	for _, info := range s.tasks.Snapshot() {
		name := info.Name
		if name == "" {
			name = "?"
		}
		s.drv.Write(fmt.Sprintf("%d  %c     %s\n", info.ID%10, task.StateChar(info.State), name))
	}
}

func (s *Shell) cmdKill(args []string) {
	if len(args) != 1 {
		s.drv.Write("usage: kill <id>\n")
		return
	}
	id, err := strconv.Atoi(args[0])
	if err != nil {
		s.drv.Write("usage: kill <id>\n")
		return
	}
	name, idx, ok := s.tasks.Kill(id)
	if !ok {
		s.drv.Write("kill failed: invalid, dead, or current task\n")
		return
	}
	if base, ok := region.OverlayBaseRow(name); ok {
		s.regions.ClearOverlayRow(base, idx)
	}
	s.drv.Write(fmt.Sprintf("killed #%d %s\n", id, name))
}

func (s *Shell) cmdSpawn(args []string) {
	if len(args) != 1 {
		s.drv.Write("usage: spawn hb0|hb1\n")
		return
	}
	var name string
	var delay int
	switch args[0] {
	case "hb0":
		name, delay = heartbeat.Name0, heartbeat.Delay0()
	case "hb1":
		name, delay = heartbeat.Name1, heartbeat.Delay1()
	default:
		s.drv.Write("usage: spawn hb0|hb1\n")
		return
	}
	if id := s.tasks.Create(name, heartbeat.Run(s.tasks, s.regions, name, delay)); id == -1 {
		s.drv.Write("No free task slots.\n")
	}
}
