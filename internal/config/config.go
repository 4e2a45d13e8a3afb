/*
   config: .cfg-style config file parser for the CLI entrypoint.

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

// Package config parses the small line-based configuration file naming the
// tape devices, the step budget and the log level. Format:
//
//	# comment
//	scratchpad <path>
//	library    <path>
//	cards      <path>
//	paper      <path>
//	steps      <n>
//	loglevel   <debug|info|warn|error>
//
// One directive per line, leading/trailing whitespace ignored, blank lines
// and '#' comments skipped. Unknown directives are a hard error so typos in
// a deck's boot config don't silently do nothing.
package config

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// Config holds the resolved settings for one run.
type Config struct {
	Scratchpad string
	Library    string
	Cards      string
	Paper      string
	Steps      int64 // 0 when unset; cmd/zerocpu logs it but does not bound execution with it
	LogLevel   string
}

var errUnknownDirective = errors.New("config: unknown directive")

// Load reads and parses the config file at path.
func Load(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	cfg := &Config{LogLevel: "info"}
	reader := bufio.NewReader(f)
	lineNum := 0
	for {
		line, err := reader.ReadString('\n')
		lineNum++
		if len(line) == 0 && err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, err
		}
		if parseErr := cfg.parseLine(line); parseErr != nil {
			return nil, fmt.Errorf("config: line %d: %w", lineNum, parseErr)
		}
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, err
		}
	}
	return cfg, nil
}

func (c *Config) parseLine(raw string) error {
	line := raw
	if i := strings.IndexByte(line, '#'); i >= 0 {
		line = line[:i]
	}
	line = strings.TrimSpace(line)
	if line == "" {
		return nil
	}

	fields := strings.Fields(line)
	directive := strings.ToLower(fields[0])
	args := fields[1:]

	switch directive {
	case "scratchpad":
		return c.setPath(&c.Scratchpad, directive, args)
	case "library":
		return c.setPath(&c.Library, directive, args)
	case "cards":
		return c.setPath(&c.Cards, directive, args)
	case "paper":
		return c.setPath(&c.Paper, directive, args)
	case "steps":
		if len(args) != 1 {
			return fmt.Errorf("%q requires exactly one argument", directive)
		}
		n, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("%q: %w", directive, err)
		}
		c.Steps = n
		return nil
	case "loglevel":
		if len(args) != 1 {
			return fmt.Errorf("%q requires exactly one argument", directive)
		}
		c.LogLevel = args[0]
		return nil
	default:
		return fmt.Errorf("%w: %s", errUnknownDirective, fields[0])
	}
}

func (c *Config) setPath(dst *string, directive string, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("%q requires exactly one path argument", directive)
	}
	*dst = args[0]
	return nil
}
