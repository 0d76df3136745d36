/*
 * coopkernel - Main process.
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

package main

import (
	"log/slog"
	"os"

	getopt "github.com/pborman/getopt/v2"

	"github.com/rcornwell/coopkernel/internal/bootcfg"
	"github.com/rcornwell/coopkernel/internal/hostio"
	"github.com/rcornwell/coopkernel/internal/kernel"
	"github.com/rcornwell/coopkernel/internal/klog"
	"github.com/rcornwell/coopkernel/internal/opconsole"
)

var logger *slog.Logger

func main() {
	optBootCfg := getopt.StringLong("bootcfg", 'b', "", "Boot options file")
	optLogFile := getopt.StringLong("log", 'l', "", "Log file")
	optSerial := getopt.StringLong("serial", 's', "", "Serial device to mirror the console onto")
	optDebug := getopt.BoolLong("debug", 'd', "Mirror every log line to stderr")
	optHelp := getopt.BoolLong("help", 'h', "Help")
	getopt.Parse()

	if *optHelp {
		getopt.Usage()
		os.Exit(0)
	}

	var opts bootcfg.Options
	if *optBootCfg != "" {
		var err error
		opts, err = bootcfg.Load(*optBootCfg)
		if err != nil {
			slog.Error(err.Error())
			os.Exit(1)
		}
	}
	if *optLogFile != "" {
		opts.LogFile = *optLogFile
	}
	if *optSerial != "" {
		opts.SerialPort = *optSerial
	}
	if *optDebug {
		opts.Debug = true
	}

	var file *os.File
	if opts.LogFile != "" {
		var err error
		file, err = os.Create(opts.LogFile)
		if err != nil {
			slog.Error("failed to create log file", "error", err)
			os.Exit(1)
		}
	}
	programLevel := new(slog.LevelVar)
	programLevel.Set(slog.LevelDebug)
	logger = slog.New(klog.NewHandler(file, &slog.HandlerOptions{Level: programLevel, AddSource: false}, opts.Debug))
	slog.SetDefault(logger)

	logger.Info("coopkernel started")

	k := kernel.New(logger)

	feed := hostio.NewTTYFeed(k.KBD)
	feed.Start()
	defer feed.Stop()

	if opts.SerialPort != "" {
		mirror, err := hostio.OpenSerialMirror(opts.SerialPort, k.FB, k.KBD)
		if err != nil {
			logger.Error("failed to open serial mirror", "error", err)
		} else {
			mirror.Start()
			defer mirror.Stop()
		}
	}

	go k.Boot(opts.Heartbeat0, opts.Heartbeat1)

	opconsole.Run(k.Tasks, k.Ports)
	logger.Info("coopkernel exiting")
}
