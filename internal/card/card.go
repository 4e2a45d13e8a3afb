/*
   card: boot-deck construction for the odd-data/even-instruction card format.

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

// Package card builds and lists card decks for the boot protocol: odd cards
// hold signed data destined for r1, even cards hold a raw instruction to
// execute against the scratchpad. Card content is opaque bits to the tape
// layer; only the boot driver (internal/cpu) interprets the odd/even
// alternation.
package card

import (
	"fmt"

	"github.com/TheFausap/zerocpu-go/internal/opcode"
	"github.com/TheFausap/zerocpu-go/internal/tape"
	"github.com/TheFausap/zerocpu-go/internal/word"
)

// ErrNegativeAddress is returned when a store target is negative; STORE_R1
// cannot address a negative scratchpad cell.
type ErrNegativeAddress int64

func (e ErrNegativeAddress) Error() string {
	return fmt.Sprintf("card: negative store address %d", int64(e))
}

// Builder assembles a card deck onto a tape.Device, and keeps a plain-text
// listing alongside it for inspection.
type Builder struct {
	Cards   tape.Device
	Listing []string
}

// NewBuilder returns a Builder that appends cards to cards.
func NewBuilder(cards tape.Device) *Builder {
	return &Builder{Cards: cards}
}

// AppendPairStore emits an odd/even card pair: a data card carrying value
// (raw 48-bit two's-complement bits, decoded to signed for r1), followed by
// an instruction card encoding STORE_R1 storeAddr.
func (b *Builder) AppendPairStore(value uint64, storeAddr int64) error {
	if storeAddr < 0 {
		return ErrNegativeAddress(storeAddr)
	}
	signed := word.FromTwosComplement(value)
	b.Cards.AppendWord(int64(signed))
	b.Listing = append(b.Listing, fmt.Sprintf("DATA %#012x -> r1", value))

	instr := opcode.Encode(opcode.StoreR1, storeAddr)
	b.Cards.AppendWord(int64(instr))
	b.Listing = append(b.Listing, fmt.Sprintf("EXEC STORE_R1 %#x", storeAddr))
	return nil
}

// FinalizeBoot emits the terminating pair: DATA 0 -> r1, followed by
// EXEC TXR startAddr, which hands control to the block executor at
// startAddr on the scratchpad device.
func (b *Builder) FinalizeBoot(startAddr int64) {
	b.Cards.AppendWord(0)
	b.Listing = append(b.Listing, "DATA 0x000000000000 -> r1")

	instr := opcode.Encode(opcode.Txr, startAddr)
	b.Cards.AppendWord(int64(instr))
	b.Listing = append(b.Listing, fmt.Sprintf("EXEC TXR %#x", startAddr))
}

// Reader is a single sequential cursor over a cards tape, shared by the
// boot driver and the READ_CARD opcode: both consume cards from the same
// position, one card at a time, regardless of who's asking.
type Reader struct {
	tape tape.Device
	pos  int64
}

// NewReader returns a Reader starting at the first card.
func NewReader(cards tape.Device) *Reader {
	return &Reader{tape: cards}
}

// ReadNext returns the signed value of the next unread card and advances
// the cursor, or false if the deck is exhausted.
func (r *Reader) ReadNext() (int64, bool) {
	if r.pos >= r.tape.RecordCount() {
		return 0, false
	}
	v := r.tape.ReadWord(r.pos)
	r.pos++
	return v, true
}

// Position reports the index of the next unread card.
func (r *Reader) Position() int64 {
	return r.pos
}

// Rewind resets the cursor to the first card.
func (r *Reader) Rewind() {
	r.pos = 0
}
