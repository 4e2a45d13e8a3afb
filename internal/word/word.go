/*
   word: 48-bit word algebra for the tape machine.

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

// Package word implements the 48-bit word algebra the tape machine is built
// on: two's-complement conversion, big-endian byte framing, and the signed
// 36-bit instruction operand encoding. Every tape record and every register
// passes through these helpers before it is interpreted as anything else.
package word

// Word is a signed 48-bit quantity held in a native int64. Only the low 48
// bits are ever significant; Clamp keeps values within range after every
// arithmetic operation.
type Word int64

const (
	Bits     = 48
	BytesLen = Bits / 8 // 6

	Mask    uint64 = (1 << Bits) - 1
	signBit uint64 = 1 << (Bits - 1)

	Min Word = -(1 << (Bits - 1))
	Max Word = (1 << (Bits - 1)) - 1

	// FracBits is the number of fractional bits in a Q47 value.
	FracBits = 47
)

// Clamp saturates x to the signed 48-bit range [Min, Max].
func Clamp(x Word) Word {
	switch {
	case x < Min:
		return Min
	case x > Max:
		return Max
	default:
		return x
	}
}

// ToTwosComplement returns the raw 48-bit two's-complement bit pattern for a
// clamped signed value.
func ToTwosComplement(v Word) uint64 {
	v = Clamp(v)
	if v < 0 {
		return ((uint64(-v) ^ Mask) + 1) & Mask
	}
	return uint64(v) & Mask
}

// FromTwosComplement sign-extends a raw 48-bit bit pattern from bit 47.
func FromTwosComplement(bits uint64) Word {
	bits &= Mask
	if bits&signBit != 0 {
		return Word(-int64((^bits&Mask)+1))
	}
	return Word(bits)
}

// ToBytes renders a raw 48-bit pattern as 6 big-endian bytes.
func ToBytes(bits uint64) [BytesLen]byte {
	var out [BytesLen]byte
	bits &= Mask
	for i := BytesLen - 1; i >= 0; i-- {
		out[i] = byte(bits)
		bits >>= 8
	}
	return out
}

// FromBytes decodes 6 big-endian bytes into a raw 48-bit pattern.
func FromBytes(b [BytesLen]byte) uint64 {
	var bits uint64
	for _, c := range b {
		bits = (bits << 8) | uint64(c)
	}
	return bits & Mask
}

// -- signed 36-bit instruction operand -------------------------------------

const (
	OperandBits = 36

	OperandMask uint64 = (1 << OperandBits) - 1
	operandSign uint64 = 1 << (OperandBits - 1)

	MinOperand int64 = -(1 << (OperandBits - 1))
	MaxOperand int64 = (1 << (OperandBits - 1)) - 1
)

// Clamp36 saturates v to the signed 36-bit range.
func Clamp36(v int64) int64 {
	switch {
	case v < MinOperand:
		return MinOperand
	case v > MaxOperand:
		return MaxOperand
	default:
		return v
	}
}

// ToTC36 returns the raw 36-bit two's-complement pattern for a clamped
// signed operand.
func ToTC36(v int64) uint64 {
	v = Clamp36(v)
	if v < 0 {
		return ((uint64(-v) ^ OperandMask) + 1) & OperandMask
	}
	return uint64(v) & OperandMask
}

// FromTC36 sign-extends a raw 36-bit operand field from bit 35.
func FromTC36(bits uint64) int64 {
	bits &= OperandMask
	if bits&operandSign != 0 {
		return -int64((^bits&OperandMask)+1)
	}
	return int64(bits)
}
