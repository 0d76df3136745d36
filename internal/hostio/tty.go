/*
 * coopkernel - Host terminal keyboard feed.
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

// Package hostio bridges the simulated machine to the real host: a raw
// terminal reader that feeds the keyboard port, and an optional serial
// mirror of the text-mode screen.
package hostio

import (
	"fmt"
	"os"
	"sync"
	"syscall"
	"time"

	"golang.org/x/term"

	"github.com/rcornwell/coopkernel/internal/hwport"
	"github.com/rcornwell/coopkernel/internal/keyboard"
)

// TTYFeed reads raw stdin in a background goroutine and pushes
// translated scancodes onto a keyboard port, the host-side equivalent
// of a PS/2 keyboard plugged into the simulated controller.
type TTYFeed struct {
	port         *hwport.KeyboardPort
	stopCh       chan struct{}
	done         chan struct{}
	stopped      sync.Once
	fd           int
	nonblockSet  bool
	oldTermState *term.State
}

// NewTTYFeed returns a feed bound to port; call Start to begin reading.
func NewTTYFeed(port *hwport.KeyboardPort) *TTYFeed {
	return &TTYFeed{port: port, stopCh: make(chan struct{}), done: make(chan struct{})}
}

// Start puts stdin in raw, non-blocking mode and begins translating
// bytes read from it into scancodes pushed onto the keyboard port. A
// carriage return is translated to the line-feed the scancode tables
// expect, and the DEL byte modern terminals send for Backspace is
// translated to the controller's own backspace code.
func (f *TTYFeed) Start() {
	f.fd = int(os.Stdin.Fd())

	oldState, err := term.MakeRaw(f.fd)
	if err != nil {
		fmt.Fprintf(os.Stderr, "hostio: failed to set raw mode: %v\n", err)
		close(f.done)
		return
	}
	f.oldTermState = oldState

	if err := syscall.SetNonblock(f.fd, true); err != nil {
		fmt.Fprintf(os.Stderr, "hostio: failed to set nonblocking stdin: %v\n", err)
		_ = term.Restore(f.fd, f.oldTermState)
		f.oldTermState = nil
		close(f.done)
		return
	}
	f.nonblockSet = true

	go f.readLoop()
}

func (f *TTYFeed) readLoop() {
	defer close(f.done)
	buf := make([]byte, 1)

	for {
		select {
		case <-f.stopCh:
			return
		default:
		}

		n, err := syscall.Read(f.fd, buf)
		if n > 0 {
			b := buf[0]
			if b == '\r' {
				b = '\n'
			}
			if b == 0x7F {
				b = 0x08
			}
			keyboard.PushASCII(f.port, b)
		}
		if err == syscall.EAGAIN || err == syscall.EWOULDBLOCK {
			time.Sleep(5 * time.Millisecond)
			continue
		}
		if err != nil {
			return
		}
		if n == 0 {
			time.Sleep(5 * time.Millisecond)
		}
	}
}

// Stop terminates the reading goroutine and restores stdin.
func (f *TTYFeed) Stop() {
	f.stopped.Do(func() { close(f.stopCh) })
	<-f.done
	if f.nonblockSet {
		_ = syscall.SetNonblock(f.fd, false)
		f.nonblockSet = false
	}
	if f.oldTermState != nil {
		_ = term.Restore(f.fd, f.oldTermState)
		f.oldTermState = nil
	}
}
