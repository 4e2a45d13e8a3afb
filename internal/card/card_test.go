package card

import (
	"testing"

	"github.com/TheFausap/zerocpu-go/internal/opcode"
	"github.com/TheFausap/zerocpu-go/internal/tape"
	"github.com/TheFausap/zerocpu-go/internal/word"
)

func TestAppendPairStoreEmitsDataThenInstr(t *testing.T) {
	cards := tape.NewMemTape()
	b := NewBuilder(cards)
	if err := b.AppendPairStore(word.ToTwosComplement(-5), 0x100); err != nil {
		t.Fatalf("AppendPairStore: %v", err)
	}
	if got := cards.ReadWord(0); got != -5 {
		t.Errorf("card 0 (data) = %d, want -5", got)
	}
	code, rawOperand := opcode.Decode(word.Word(cards.ReadWord(1)))
	if code != opcode.StoreR1 {
		t.Errorf("card 1 opcode = %v, want STORE_R1", code)
	}
	if int64(rawOperand) != 0x100 {
		t.Errorf("card 1 operand = %#x, want 0x100", rawOperand)
	}
	if len(b.Listing) != 2 {
		t.Errorf("len(Listing) = %d, want 2", len(b.Listing))
	}
}

func TestAppendPairStoreRejectsNegativeAddress(t *testing.T) {
	cards := tape.NewMemTape()
	b := NewBuilder(cards)
	if err := b.AppendPairStore(0, -1); err == nil {
		t.Errorf("AppendPairStore should reject negative store address")
	}
}

func TestFinalizeBootEmitsZeroThenTXR(t *testing.T) {
	cards := tape.NewMemTape()
	b := NewBuilder(cards)
	b.FinalizeBoot(0x200)
	if got := cards.ReadWord(0); got != 0 {
		t.Errorf("boot data card = %d, want 0", got)
	}
	code, rawOperand := opcode.Decode(word.Word(cards.ReadWord(1)))
	if code != opcode.Txr {
		t.Errorf("boot instr opcode = %v, want TXR", code)
	}
	if int64(rawOperand) != 0x200 {
		t.Errorf("boot instr operand = %#x, want 0x200", rawOperand)
	}
}

func TestBootDeckFullSequence(t *testing.T) {
	cards := tape.NewMemTape()
	b := NewBuilder(cards)
	if err := b.AppendPairStore(word.ToTwosComplement(7), 0x10); err != nil {
		t.Fatalf("AppendPairStore: %v", err)
	}
	if err := b.AppendPairStore(word.ToTwosComplement(8), 0x11); err != nil {
		t.Fatalf("AppendPairStore: %v", err)
	}
	b.FinalizeBoot(0x10)
	if n := cards.RecordCount(); n != 6 {
		t.Errorf("RecordCount() = %d, want 6", n)
	}
}
