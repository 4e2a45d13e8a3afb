/*
   tape: random-access 48-bit word devices backing the four tape units.

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

// Package tape implements the uniform device interface the execution engine
// drives: random-access raw and signed word access over a persisted record
// sequence, plus the optional I/O-realism capabilities (rewind, fast
// forward, position, status) that REWIND/FF/STATUS probe for.
package tape

// Device is the interface every one of the four tape units (scratchpad,
// library, cards, paper) satisfies. Required by the execution engine.
type Device interface {
	// ReadBits returns the raw 48-bit pattern at index i, and false if i is
	// out of range (EOF).
	ReadBits(i int64) (uint64, bool)
	// WriteBits writes the raw 48-bit pattern at index i, zero-filling any
	// gap if the tape must grow.
	WriteBits(i int64, bits uint64)
	// ReadWord returns the signed interpretation of the word at index i. A
	// read past the end of tape returns 0, matching spec.md's ALU/addressing
	// semantics (distinct from the EOF-sensitive ReadBits used for fetch).
	ReadWord(i int64) int64
	// WriteWord writes the signed interpretation of v at index i.
	WriteWord(i int64, v int64)
	// AppendWord writes v at the current size and returns its new index.
	AppendWord(v int64) int64
	// RecordCount returns the number of 48-bit records currently on tape.
	RecordCount() int64
}

// Rewinder is an optional capability: move the device's cursor back to the
// start. Devices that don't implement it make REWIND a no-op.
type Rewinder interface {
	Rewind()
}

// FastForwarder is an optional capability: advance the device's cursor by
// count records without touching content.
type FastForwarder interface {
	FastForward(count int64)
}

// PositionReporter is an optional capability: report the device's current
// cursor position, used by STATUS.
type PositionReporter interface {
	Position() int64
}

// Status summarizes a device's realism-facing state.
type Status struct {
	Position int64
	Size     int64
}

// StatusReporter is an optional capability for devices that can produce a
// richer Status than a bare position.
type StatusReporter interface {
	StatusReport() Status
}
