/*
 * coopkernel - Boot options file parser.
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

// Package bootcfg parses the kernel's boot options file: one
// "key = value" pair per line, '#' starts a line comment, blank lines
// are ignored. It is a deliberately small subset of the key/value/
// option-list grammar the teacher's device configuration file uses.
package bootcfg

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// Options holds every recognized boot-time setting; fields left at
// their zero value take the caller's default.
type Options struct {
	LogFile    string // path to the kernel's log file, empty disables it
	Debug      bool   // mirror every log line to stderr, not just warnings
	SerialPort string // optional serial device to mirror the console onto
	Heartbeat0 int    // iteration count override for heartbeat0's busy loop
	Heartbeat1 int    // iteration count override for heartbeat1's busy loop
}

// Load reads a boot options file from name. A missing file is not an
// error: Load returns zero-valued Options so the caller's defaults
// apply, matching the teacher's policy that an absent config simply
// falls back to the built-in device set.
func Load(name string) (Options, error) {
	var opts Options
	file, err := os.Open(name)
	if err != nil {
		if os.IsNotExist(err) {
			return opts, nil
		}
		return opts, err
	}
	defer file.Close()

	reader := bufio.NewReader(file)
	lineNumber := 0
	for {
		raw, err := reader.ReadString('\n')
		lineNumber++
		if len(raw) == 0 && err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return opts, err
		}
		if perr := parseLine(&opts, raw, lineNumber); perr != nil {
			return opts, perr
		}
		if err != nil {
			break
		}
	}
	return opts, nil
}

func parseLine(opts *Options, raw string, lineNumber int) error {
	line := raw
	if i := strings.IndexByte(line, '#'); i >= 0 {
		line = line[:i]
	}
	line = strings.TrimSpace(line)
	if line == "" {
		return nil
	}

	key, value, ok := strings.Cut(line, "=")
	if !ok {
		return fmt.Errorf("bootcfg: line %d: expected key = value", lineNumber)
	}
	key = strings.ToLower(strings.TrimSpace(key))
	value = strings.TrimSpace(value)

	switch key {
	case "logfile":
		opts.LogFile = value
	case "debug":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("bootcfg: line %d: invalid bool %q", lineNumber, value)
		}
		opts.Debug = b
	case "serial":
		opts.SerialPort = value
	case "heartbeat0":
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("bootcfg: line %d: invalid integer %q", lineNumber, value)
		}
		opts.Heartbeat0 = n
	case "heartbeat1":
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("bootcfg: line %d: invalid integer %q", lineNumber, value)
		}
		opts.Heartbeat1 = n
	default:
		return fmt.Errorf("bootcfg: line %d: unknown option %q", lineNumber, key)
	}
	return nil
}
