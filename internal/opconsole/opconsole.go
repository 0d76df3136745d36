/*
 * coopkernel - Operator console.
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

// Package opconsole is the host-side operator console: a line-edited
// prompt, separate from the emulated machine's own text screen, for
// meta-commands that inspect or terminate the running kernel from the
// terminal coopkernel was launched in.
package opconsole

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/peterh/liner"

	"github.com/rcornwell/coopkernel/internal/hwport"
	"github.com/rcornwell/coopkernel/internal/task"
)

var metaCommands = []string{"status", "ps", "quit"}

func completer(line string) []string {
	out := []string{}
	for _, c := range metaCommands {
		if strings.HasPrefix(c, line) {
			out = append(out, c)
		}
	}
	return out
}

// Run drives the operator console until "quit" is entered, Ctrl-D is
// pressed, or the machine halts on its own. tasks and ports are read
// only, never mutated, so this never races the scheduler's own state
// transitions beyond what Table's lock already serializes.
func Run(tasks *task.Table, ports *hwport.ShutdownPorts) {
	line := liner.NewLiner()
	defer line.Close()

	line.SetCtrlCAborts(true)
	line.SetCompleter(completer)

	for {
		select {
		case <-ports.Done():
			return
		default:
		}

		command, err := line.Prompt("op> ")
		if err != nil {
			if errors.Is(err, liner.ErrPromptAborted) {
				return
			}
			slog.Error("opconsole: error reading line", "error", err)
			return
		}
		line.AppendHistory(command)

		switch strings.TrimSpace(command) {
		case "quit":
			return
		case "ps":
			for _, info := range tasks.Snapshot() {
				fmt.Printf("#%d %c %s\n", info.ID, task.StateChar(info.State), info.Name)
			}
		case "status":
			if ports.Halted() {
				fmt.Println("machine halted")
			} else {
				fmt.Printf("machine running, current task #%d\n", tasks.Current())
			}
		case "":
			// ignore blank lines
		default:
			fmt.Println("unknown command: " + command)
		}
	}
}
