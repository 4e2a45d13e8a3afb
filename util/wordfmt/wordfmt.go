/*
   wordfmt: hex rendering for 48-bit words and instruction fields.

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

// Package wordfmt renders raw 48-bit bit patterns and their instruction
// subfields as fixed-width hex, the way trace listings and the card-deck
// listing want them.
package wordfmt

import "strings"

var hexMap = "0123456789ABCDEF"

// Word48 renders bits as 12 hex digits, e.g. "00002A0000B7".
func Word48(bits uint64) string {
	var b strings.Builder
	b.Grow(12)
	shift := 44
	for range 12 {
		b.WriteByte(hexMap[(bits>>uint(shift))&0xf])
		shift -= 4
	}
	return b.String()
}

// Opcode12 renders a 12-bit opcode as 3 hex digits.
func Opcode12(code uint16) string {
	var b strings.Builder
	b.Grow(3)
	shift := 8
	for range 3 {
		b.WriteByte(hexMap[(code>>uint(shift))&0xf])
		shift -= 4
	}
	return b.String()
}

// Operand36 renders a 36-bit raw operand field as 9 hex digits.
func Operand36(bits uint64) string {
	var b strings.Builder
	b.Grow(9)
	shift := 32
	for range 9 {
		b.WriteByte(hexMap[(bits>>uint(shift))&0xf])
		shift -= 4
	}
	return b.String()
}
