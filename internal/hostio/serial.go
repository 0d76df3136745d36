/*
 * coopkernel - Serial console mirror.
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

package hostio

import (
	"time"

	serial "github.com/daedaluz/goserial"

	"github.com/rcornwell/coopkernel/internal/hwport"
	"github.com/rcornwell/coopkernel/internal/keyboard"
)

// SerialMirror periodically snapshots the framebuffer and writes it to
// a real serial line as plain text, and feeds whatever bytes arrive on
// that line back into the keyboard port — a hardware serial console
// attached alongside the video terminal.
type SerialMirror struct {
	port   *serial.Port
	fb     *hwport.Framebuffer
	kbd    *hwport.KeyboardPort
	stopCh chan struct{}
	done   chan struct{}
}

// OpenSerialMirror opens device with the port's configured line
// settings (set with stty before the kernel starts) and returns a
// mirror bound to it. Call Start to begin the background pump.
func OpenSerialMirror(device string, fb *hwport.Framebuffer, kbd *hwport.KeyboardPort) (*SerialMirror, error) {
	opts := serial.NewOptions().SetReadTimeout(20 * time.Millisecond)
	port, err := serial.Open(device, opts)
	if err != nil {
		return nil, err
	}
	if err := port.MakeRaw(); err != nil {
		port.Close()
		return nil, err
	}
	return &SerialMirror{
		port:   port,
		fb:     fb,
		kbd:    kbd,
		stopCh: make(chan struct{}),
		done:   make(chan struct{}),
	}, nil
}

// Start begins the read/refresh pump in a background goroutine.
func (m *SerialMirror) Start() {
	go m.run()
}

func (m *SerialMirror) run() {
	defer close(m.done)
	ticker := time.NewTicker(500 * time.Millisecond)
	defer ticker.Stop()
	buf := make([]byte, 64)

	for {
		select {
		case <-m.stopCh:
			return
		case <-ticker.C:
			m.refresh()
		default:
		}

		n, err := m.port.Read(buf)
		for i := 0; i < n; i++ {
			keyboard.PushASCII(m.kbd, buf[i])
		}
		if err != nil {
			continue
		}
	}
}

func (m *SerialMirror) refresh() {
	grid := m.fb.Snapshot()
	out := make([]byte, 0, hwport.Width*hwport.Height+hwport.Height)
	for r := 0; r < hwport.Height; r++ {
		for c := 0; c < hwport.Width; c++ {
			out = append(out, grid[r][c].Char)
		}
		out = append(out, '\n')
	}
	_, _ = m.port.Write(out)
}

// Stop halts the pump and closes the underlying device.
func (m *SerialMirror) Stop() {
	close(m.stopCh)
	<-m.done
	m.port.Close()
}
