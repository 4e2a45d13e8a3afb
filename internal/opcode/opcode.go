/*
   opcode: mnemonic <-> 12-bit opcode map for the tape machine ISA.

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

// Package opcode holds the canonical 12-bit opcode map and the instruction
// word packing/unpacking helpers. This map is the ABI: external assemblers
// and library tapes depend on these exact numeric codes.
package opcode

// Code is a 12-bit opcode.
type Code uint16

const (
	NOP     Code = 0x000
	LoadR1  Code = 0x001
	LoadR2  Code = 0x002
	LoadR3  Code = 0x003
	StoreR1 Code = 0x004
	StoreR3 Code = 0x005
	ClearR1 Code = 0x006
	ClearR2 Code = 0x007
	ClearR3 Code = 0x008
	Add     Code = 0x009
	Neg     Code = 0x00A
	Mul     Code = 0x00B
	Div     Code = 0x00C
	Round   Code = 0x00D
	And     Code = 0x00E
	Or      Code = 0x00F
	Xor     Code = 0x010

	ShiftLeft  Code = 0x011
	ShiftRight Code = 0x012

	Call Code = 0x013
	Ret  Code = 0x014

	WriteTape Code = 0x015
	ReadCard  Code = 0x016

	Skip           Code = 0x017
	SkipIfZero     Code = 0x018
	SkipIfNonzero  Code = 0x019

	Txr  Code = 0x01A
	Halt Code = 0x01B

	Rewind Code = 0x01C // operand: device {0,1,2}
	FF     Code = 0x01D // operand: (dev:12<<24)|(count:24)
	Status Code = 0x01E // operand: device; result -> r3

	Jump Code = 0x01F

	SLoadR1 Code = 0x020
	SLoadR2 Code = 0x021
	SLoadR3 Code = 0x022

	// MaxReserved is the last opcode in the reserved, normatively assigned
	// range (spec.md §9). IMUL/IDIV/SUB from the prototype source have no
	// stable assignment and are intentionally not given one here; any
	// future extension opcode must start above this value.
	MaxReserved Code = 0x022
)

var names = map[Code]string{
	NOP:            "NOP",
	LoadR1:         "LOAD_R1",
	LoadR2:         "LOAD_R2",
	LoadR3:         "LOAD_R3",
	StoreR1:        "STORE_R1",
	StoreR3:        "STORE_R3",
	ClearR1:        "CLEAR_R1",
	ClearR2:        "CLEAR_R2",
	ClearR3:        "CLEAR_R3",
	Add:            "ADD",
	Neg:            "NEG",
	Mul:            "MUL",
	Div:            "DIV",
	Round:          "ROUND",
	And:            "AND",
	Or:             "OR",
	Xor:            "XOR",
	ShiftLeft:      "SHIFT_LEFT",
	ShiftRight:     "SHIFT_RIGHT",
	Call:           "CALL",
	Ret:            "RET",
	WriteTape:      "WRITE_TAPE",
	ReadCard:       "READ_CARD",
	Skip:           "SKIP",
	SkipIfZero:     "SKIP_IF_ZERO",
	SkipIfNonzero:  "SKIP_IF_NONZERO",
	Txr:            "TXR",
	Halt:           "HALT",
	Rewind:         "REWIND",
	FF:             "FF",
	Status:         "STATUS",
	Jump:           "JUMP",
	SLoadR1:        "SLOAD_R1",
	SLoadR2:        "SLOAD_R2",
	SLoadR3:        "SLOAD_R3",
}

var byName map[string]Code

func init() {
	byName = make(map[string]Code, len(names))
	for code, name := range names {
		byName[name] = code
	}
}

// Name returns the mnemonic for code, or "OP_UNKNOWN" for any opcode outside
// the canonical map (unknown opcodes are not an error; they
// behave as NOP).
func Name(code Code) string {
	if n, ok := names[code]; ok {
		return n
	}
	return "OP_UNKNOWN"
}

// Lookup returns the opcode assigned to mnemonic, and whether it exists.
func Lookup(mnemonic string) (Code, bool) {
	c, ok := byName[mnemonic]
	return c, ok
}

// Known reports whether code has a canonical mnemonic assigned.
func Known(code Code) bool {
	_, ok := names[code]
	return ok
}
