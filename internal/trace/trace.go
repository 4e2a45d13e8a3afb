/*
   trace: structured per-instruction tracing contract for the execution engine.

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

// Package trace defines the Event the execution engine emits per instruction
// and the Sink collaborator interface it emits to. Concrete sinks (file
// writers, anomaly-rule evaluation) are out of scope here; the engine only
// needs to remain correct whether or not a Sink is attached.
package trace

import (
	"fmt"
	"strings"

	"github.com/TheFausap/zerocpu-go/util/wordfmt"
)

// Event is a snapshot of one executed instruction.
type Event struct {
	IP             int64
	Device         string
	OpCode         uint16
	OpName         string
	RawOperand     uint64
	SignedOperand  int64
	R1, R2, R3     int64
	StackDepth     int
	ContextSwitch  bool
	ExtrasConsumed int
	PBUsed         bool
	DevicePosition int64
	Error          bool
	Anomalies      []string
}

// Sink receives Events as the engine executes. Implementations must not
// block the engine for long; the engine has no backpressure mechanism.
type Sink interface {
	Emit(Event)
}

// NopSink is a Sink that discards every event; it is the default when no
// sink is attached, so the engine never needs to nil-check.
type NopSink struct{}

// Emit discards ev.
func (NopSink) Emit(Event) {}

// String renders ev as a single diagnostic line, e.g.
// "ip=000000000003 dev=scratchpad op=013 CALL raw=200000002 r1=... stack=1".
func (ev Event) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "ip=%s dev=%s op=%s %s raw=%s r1=%d r2=%d r3=%d stack=%d",
		wordfmt.Word48(uint64(ev.IP)), ev.Device, wordfmt.Opcode12(ev.OpCode), ev.OpName,
		wordfmt.Operand36(ev.RawOperand), ev.R1, ev.R2, ev.R3, ev.StackDepth)
	if ev.ContextSwitch {
		b.WriteString(" ctx-switch")
	}
	if ev.PBUsed {
		b.WriteString(" pb")
	}
	if ev.ExtrasConsumed > 0 {
		fmt.Fprintf(&b, " extras=%d", ev.ExtrasConsumed)
	}
	if ev.Error {
		b.WriteString(" ERROR")
	}
	for _, a := range ev.Anomalies {
		b.WriteString(" anomaly=" + a)
	}
	return b.String()
}
