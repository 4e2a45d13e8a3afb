/*
   cpu: fetch/execute engine for the 48-bit word tape machine.

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

// Package cpu implements the opcode decode/dispatch loop, ALU, multi-device
// CALL/RET with a context stack, parameter-block argument passing, TXR block
// execution, and the boot protocol, against any four tape.Device values.
package cpu

import (
	"fmt"

	"github.com/TheFausap/zerocpu-go/internal/card"
	"github.com/TheFausap/zerocpu-go/internal/opcode"
	"github.com/TheFausap/zerocpu-go/internal/tape"
	"github.com/TheFausap/zerocpu-go/internal/trace"
	"github.com/TheFausap/zerocpu-go/internal/word"
)

// noIP marks a step that has no tape-resident fetch address (boot's
// even-card execution happens directly against a decoded word, never a
// device read), mirroring the reference engine's tape_ip=None.
const noIP int64 = -1

// halted marks a step that returned no next instruction pointer: HALT, or
// RET against an empty context stack.
const halted int64 = -1

// PBShadowBase is the scratchpad address where CALL extras (PB arguments
// beyond r1..r3) are copied for the callee to read.
const PBShadowBase int64 = 0x100000

// ctxFrame is one entry on the multi-device context stack: the device and
// return instruction pointer to resume when the matching RET executes.
type ctxFrame struct {
	dev      tape.Device
	devTag   string
	returnIP int64
}

// CPU is the engine: three Q47 registers, four device tapes, a context
// stack for multi-device CALL/RET, and an optional trace sink.
type CPU struct {
	R1, R2, R3 word.Word

	Scratchpad tape.Device
	Library    tape.Device
	Cards      tape.Device
	Paper      tape.Device

	Sink trace.Sink

	ctxStack   []ctxFrame
	currentDev tape.Device
	currentTag string

	cardReader *card.Reader
	bootIdx    int64

	anomalies  []string
	lastPBUsed bool

	table [1 << 12]opFunc
}

// noteAnomaly records a non-fatal condition (saturating arithmetic, an
// opcode with no canonical assignment) for the current step's trace.Event.
// These are never returned as Go errors: spec-level anomaly evaluation is a
// collaborator's concern, not the engine's.
func (c *CPU) noteAnomaly(msg string) {
	c.anomalies = append(c.anomalies, msg)
}

// opFunc handles one opcode. dev/tag/tapeIP describe the fetch site (tapeIP
// is noIP for boot's direct even-card execution). raw is the 36-bit operand
// field exactly as decoded. It returns the next instruction pointer (halted
// if execution should stop), the number of extra immediate words consumed
// beyond the instruction itself (only CALL ever returns nonzero), whether a
// context switch occurred (for tracing), and an error for fatal conditions.
type opFunc func(cpu *CPU, dev tape.Device, tag string, tapeIP int64, raw uint64) (next int64, extras int, ctxSwitch bool, err error)

// New returns a CPU wired to the four required devices. sink may be nil, in
// which case tracing is a no-op.
func New(scratchpad, library, cards, paper tape.Device, sink trace.Sink) *CPU {
	c := &CPU{
		Scratchpad: scratchpad,
		Library:    library,
		Cards:      cards,
		Paper:      paper,
		Sink:       sink,
		cardReader: card.NewReader(cards),
	}
	if c.Sink == nil {
		c.Sink = trace.NopSink{}
	}
	c.buildTable()
	return c
}

func (c *CPU) deviceTag(dev tape.Device) string {
	switch dev {
	case c.Scratchpad:
		return "scratchpad"
	case c.Library:
		return "library"
	case c.Cards:
		return "cards"
	case c.Paper:
		return "paper"
	default:
		return "unknown"
	}
}

// nextIPSimple is the common "advance by 1 plus extras consumed" rule used
// by every opcode except SKIP family, JUMP/TXR, CALL/RET, and HALT.
func nextIPSimple(tapeIP int64, extras int) int64 {
	if tapeIP == noIP {
		return halted
	}
	return tapeIP + 1 + int64(extras)
}

// ExecuteEncoded executes one already-fetched instruction word on dev, at
// tapeIP (noIP if this is a boot-time direct execution with no tape
// context). It returns the next instruction pointer, or halted.
func (c *CPU) ExecuteEncoded(dev tape.Device, instr word.Word, tapeIP int64) (int64, error) {
	tag := c.deviceTag(dev)
	code, raw := opcode.Decode(instr)
	c.anomalies = nil
	c.lastPBUsed = false
	if !opcode.Known(code) {
		c.noteAnomaly(fmt.Sprintf("unknown opcode %s at ip=%d, treated as NOP", opcode.Name(code), tapeIP))
	}
	fn := c.table[code&0xFFF]
	next, extras, ctxSwitch, err := fn(c, dev, tag, tapeIP, raw)
	if err != nil {
		return halted, err
	}

	var pos int64
	if pr, ok := dev.(tape.PositionReporter); ok {
		pos = pr.Position()
	}
	c.Sink.Emit(trace.Event{
		IP:             tapeIP,
		Device:         tag,
		OpCode:         uint16(code),
		OpName:         opcode.Name(code),
		RawOperand:     raw,
		SignedOperand:  word.FromTC36(raw),
		R1:             int64(c.R1),
		R2:             int64(c.R2),
		R3:             int64(c.R3),
		StackDepth:     len(c.ctxStack),
		ContextSwitch:  ctxSwitch,
		ExtrasConsumed: extras,
		PBUsed:         c.lastPBUsed,
		DevicePosition: pos,
		Error:          len(c.anomalies) > 0,
		Anomalies:      c.anomalies,
	})
	return next, nil
}

// ExecuteBlock runs dev starting at startIP until HALT, RET against an
// empty context stack, or end-of-tape.
func (c *CPU) ExecuteBlock(dev tape.Device, startIP int64) error {
	c.currentDev = dev
	c.currentTag = c.deviceTag(dev)
	ip := startIP

	for {
		if ip >= c.currentDev.RecordCount() {
			return nil
		}
		bits, ok := c.currentDev.ReadBits(ip)
		if !ok {
			return nil
		}
		next, err := c.ExecuteEncoded(c.currentDev, word.FromTwosComplement(bits), ip)
		if err != nil {
			return fmt.Errorf("cpu: fault at %s[%d]: %w", c.currentTag, ip, err)
		}
		if next == halted {
			return nil
		}
		ip = next // c.currentDev may have switched via CALL/RET
	}
}

// Run boots from cards and then executes whatever block TXR transfers
// control to, per the boot protocol.
func (c *CPU) Run() error {
	return c.Boot()
}

// buildTable populates the dense opcode dispatch table. Every slot is first
// set to opUnknown, so an unrecognized opcode behaves as a safe NOP rather
// than panicking on a nil call; the canonical opcodes then overwrite theirs.
func (c *CPU) buildTable() {
	for i := range c.table {
		c.table[i] = opUnknown
	}
	c.table[opcode.NOP] = opNOP
	c.table[opcode.LoadR1] = opLoadR1
	c.table[opcode.LoadR2] = opLoadR2
	c.table[opcode.LoadR3] = opLoadR3
	c.table[opcode.StoreR1] = opStoreR1
	c.table[opcode.StoreR3] = opStoreR3
	c.table[opcode.ClearR1] = opClearR1
	c.table[opcode.ClearR2] = opClearR2
	c.table[opcode.ClearR3] = opClearR3
	c.table[opcode.Add] = opAdd
	c.table[opcode.Neg] = opNeg
	c.table[opcode.Mul] = opMul
	c.table[opcode.Div] = opDiv
	c.table[opcode.Round] = opRound
	c.table[opcode.And] = opAnd
	c.table[opcode.Or] = opOr
	c.table[opcode.Xor] = opXor
	c.table[opcode.ShiftLeft] = opShiftLeft
	c.table[opcode.ShiftRight] = opShiftRight
	c.table[opcode.Call] = opCall
	c.table[opcode.Ret] = opRet
	c.table[opcode.WriteTape] = opWriteTape
	c.table[opcode.ReadCard] = opReadCard
	c.table[opcode.Skip] = opSkip
	c.table[opcode.SkipIfZero] = opSkipIfZero
	c.table[opcode.SkipIfNonzero] = opSkipIfNonzero
	c.table[opcode.Txr] = opTxr
	c.table[opcode.Halt] = opHalt
	c.table[opcode.Rewind] = opRewind
	c.table[opcode.FF] = opFF
	c.table[opcode.Status] = opStatus
	c.table[opcode.Jump] = opJump
	c.table[opcode.SLoadR1] = opSLoadR1
	c.table[opcode.SLoadR2] = opSLoadR2
	c.table[opcode.SLoadR3] = opSLoadR3
}

// opUnknown is the dispatch target for any opcode with no canonical
// assignment: a safe NOP, per spec.
func opUnknown(c *CPU, dev tape.Device, tag string, tapeIP int64, raw uint64) (int64, int, bool, error) {
	return nextIPSimple(tapeIP, 0), 0, false, nil
}
