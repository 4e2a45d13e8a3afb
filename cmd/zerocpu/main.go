/*
   zerocpu: boot-and-run entrypoint for the 48-bit word tape machine.

   Copyright (c) 2026, zerocpu-go contributors

   Permission is hereby granted, free of charge, to any person obtaining a
   copy of this software and associated documentation files (the "Software"),
   to deal in the Software without restriction, including without limitation
   the rights to use, copy, modify, merge, publish, distribute, sublicense,
   and/or sell copies of the Software, and to permit persons to whom the
   Software is furnished to do so, subject to the following conditions:

   The above copyright notice and this permission notice shall be included in
   all copies or substantial portions of the Software.

   THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
   IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
   FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT.  IN NO EVENT SHALL
   THE AUTHORS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER LIABILITY, WHETHER
   IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM, OUT OF OR IN
   CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE SOFTWARE.
*/

// zerocpu boots the machine from a card deck and runs it to completion. It
// is plumbing, not a monitor: one boot, one run, then exit.
package main

import (
	"log/slog"
	"os"

	getopt "github.com/pborman/getopt/v2"

	"github.com/TheFausap/zerocpu-go/internal/config"
	"github.com/TheFausap/zerocpu-go/internal/cpu"
	"github.com/TheFausap/zerocpu-go/internal/tape"
	"github.com/TheFausap/zerocpu-go/internal/trace"
	"github.com/TheFausap/zerocpu-go/internal/xlog"
)

func main() {
	optConfig := getopt.StringLong("config", 'c', "", "Configuration file naming the four tape devices")
	optCards := getopt.StringLong("cards", 0, "", "Card deck file (overrides config)")
	optLibrary := getopt.StringLong("library", 0, "", "Library tape file (overrides config)")
	optPaper := getopt.StringLong("paper", 0, "", "Paper tape output file (overrides config)")
	optScratch := getopt.StringLong("scratchpad", 0, "", "Scratchpad tape file (overrides config)")
	optLog := getopt.StringLong("log", 'l', "", "Log file (stderr only if omitted)")
	optTrace := getopt.BoolLong("trace", 't', "Emit one diagnostic line per instruction")
	optHelp := getopt.BoolLong("help", 'h', "Help")
	getopt.Parse()

	if *optHelp {
		getopt.Usage()
		os.Exit(0)
	}

	if *optConfig == "" {
		slog.Error("zerocpu: --config is required")
		os.Exit(1)
	}

	cfg, err := config.Load(*optConfig)
	if err != nil {
		slog.Error("zerocpu: loading config", "error", err)
		os.Exit(1)
	}
	applyOverride(&cfg.Scratchpad, *optScratch)
	applyOverride(&cfg.Library, *optLibrary)
	applyOverride(&cfg.Cards, *optCards)
	applyOverride(&cfg.Paper, *optPaper)

	level, err := xlog.ParseLevel(cfg.LogLevel)
	if err != nil {
		slog.Error("zerocpu: parsing log level", "error", err)
		os.Exit(1)
	}
	var logOut *os.File
	if *optLog != "" {
		logOut, err = os.Create(*optLog)
		if err != nil {
			slog.Error("zerocpu: creating log file", "error", err)
			os.Exit(1)
		}
		defer logOut.Close()
	}
	logger := xlog.New(logOut, level)
	slog.SetDefault(logger)

	scratch, err := openTape(cfg.Scratchpad)
	if err != nil {
		logger.Error("opening scratchpad tape", "path", cfg.Scratchpad, "error", err)
		os.Exit(1)
	}
	defer closeTape(scratch)

	library, err := openTape(cfg.Library)
	if err != nil {
		logger.Error("opening library tape", "path", cfg.Library, "error", err)
		os.Exit(1)
	}
	defer closeTape(library)

	cards, err := openTape(cfg.Cards)
	if err != nil {
		logger.Error("opening cards tape", "path", cfg.Cards, "error", err)
		os.Exit(1)
	}
	defer closeTape(cards)

	paper, err := openTape(cfg.Paper)
	if err != nil {
		logger.Error("opening paper tape", "path", cfg.Paper, "error", err)
		os.Exit(1)
	}
	defer closeTape(paper)

	var sink trace.Sink = trace.NopSink{}
	if *optTrace {
		sink = &logSink{logger: logger}
	}

	engine := cpu.New(scratch, library, cards, paper, sink)
	logger.Info("zerocpu started", "cards", cfg.Cards, "steps", cfg.Steps)
	if err := engine.Run(); err != nil {
		logger.Error("run faulted", "error", err)
		os.Exit(1)
	}
	logger.Info("zerocpu halted")
}

func applyOverride(dst *string, override string) {
	if override != "" {
		*dst = override
	}
}

// openTape opens path as a file-backed tape, creating it if it doesn't
// exist yet (a fresh scratchpad or paper tape has no prior content).
func openTape(path string) (*tape.FileTape, error) {
	if path == "" {
		path = os.DevNull
	}
	return tape.OpenFileTape(path)
}

func closeTape(t *tape.FileTape) {
	if err := t.Close(); err != nil {
		slog.Warn("closing tape", "error", err)
	}
}

// logSink renders each trace.Event through the structured logger at debug
// level when --trace is given.
type logSink struct {
	logger *slog.Logger
}

func (s *logSink) Emit(ev trace.Event) {
	s.logger.Debug(ev.String())
}
