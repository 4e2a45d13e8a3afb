package cpu

import (
	"testing"

	"github.com/TheFausap/zerocpu-go/internal/card"
	"github.com/TheFausap/zerocpu-go/internal/library"
	"github.com/TheFausap/zerocpu-go/internal/opcode"
	"github.com/TheFausap/zerocpu-go/internal/tape"
	"github.com/TheFausap/zerocpu-go/internal/word"
)

func newTestCPU() (*CPU, tape.Device, tape.Device, tape.Device, tape.Device) {
	scratch := tape.NewMemTape()
	lib := tape.NewMemTape()
	cards := tape.NewMemTape()
	paper := tape.NewMemTape()
	return New(scratch, lib, cards, paper, nil), scratch, lib, cards, paper
}

func TestBootStoresDataToScratchpad(t *testing.T) {
	c, scratch, _, cards, _ := newTestCPU()
	b := card.NewBuilder(cards)
	if err := b.AppendPairStore(word.ToTwosComplement(99), 0x20); err != nil {
		t.Fatalf("AppendPairStore: %v", err)
	}
	scratch.WriteWord(0x10, int64(opcode.Encode(opcode.Halt, 0)))
	b.FinalizeBoot(0x10)

	if err := c.Boot(); err != nil {
		t.Fatalf("Boot: %v", err)
	}
	if got := scratch.ReadWord(0x20); got != 99 {
		t.Errorf("scratch[0x20] = %d, want 99 (STORE_R1 during boot)", got)
	}
}

func TestMulThenRound(t *testing.T) {
	c, scratch, _, _, _ := newTestCPU()
	c.R2 = word.FloatToQ47(0.2)
	c.R3 = word.FloatToQ47(0.25)

	prog := []word.Word{
		opcode.Encode(opcode.Mul, 0),
		opcode.Encode(opcode.Round, 0),
		opcode.Encode(opcode.Halt, 0),
	}
	for i, instr := range prog {
		scratch.WriteWord(int64(i), int64(instr))
	}
	if err := c.ExecuteBlock(scratch, 0); err != nil {
		t.Fatalf("ExecuteBlock: %v", err)
	}
	want := word.FloatToQ47(0.05)
	if diff := c.R1 - want; diff < -1 || diff > 1 {
		t.Errorf("R1 after MUL/ROUND = %d, want ~%d", c.R1, want)
	}
}

func TestSkipIfZeroTaken(t *testing.T) {
	c, scratch, _, _, _ := newTestCPU()
	c.R1 = 0
	// ip0: SKIP_IF_ZERO (taken -> ip2), ip1: would CLEAR_R3 if not skipped,
	// ip2: HALT. R3 is still 7 only if CLEAR_R3 was skipped.
	scratch.WriteWord(0, int64(opcode.Encode(opcode.SkipIfZero, 0)))
	scratch.WriteWord(1, int64(opcode.Encode(opcode.ClearR3, 0))) // skipped
	c.R3 = 7
	scratch.WriteWord(2, int64(opcode.Encode(opcode.Halt, 0)))
	if err := c.ExecuteBlock(scratch, 0); err != nil {
		t.Fatalf("ExecuteBlock: %v", err)
	}
	if c.R3 != 7 {
		t.Errorf("R3 = %d, want 7 (SKIP_IF_ZERO should have skipped CLEAR_R3)", c.R3)
	}
}

func TestRetOnEmptyStackHalts(t *testing.T) {
	c, scratch, _, _, _ := newTestCPU()
	scratch.WriteWord(0, int64(opcode.Encode(opcode.Ret, 0)))
	if err := c.ExecuteBlock(scratch, 0); err != nil {
		t.Fatalf("ExecuteBlock: %v", err)
	}
}

func TestCallByIndexAndReturn(t *testing.T) {
	c, scratch, lib, _, _ := newTestCPU()

	w := &library.Writer{
		Functions: []library.Function{
			{
				Name: "square",
				FnID: 1,
				Body: []word.Word{
					opcode.Encode(opcode.Mul, 0),
					opcode.Encode(opcode.Ret, 0),
				},
			},
		},
	}
	if err := w.Build(lib); err != nil {
		t.Fatalf("Build: %v", err)
	}

	raw := opcode.PackCallOperand(opcode.CallModeLibIdx, 0, 0)
	scratch.WriteWord(0, int64(opcode.EncodeRaw(opcode.Call, raw)))
	scratch.WriteWord(1, int64(opcode.Encode(opcode.Halt, 0)))

	c.R2 = word.FloatToQ47(0.5)
	c.R3 = word.FloatToQ47(0.5)
	if err := c.ExecuteBlock(scratch, 0); err != nil {
		t.Fatalf("ExecuteBlock: %v", err)
	}
	// The body has no ROUND, so r1:r2 hold the Q94 product; round it here.
	want := word.FloatToQ47(0.25)
	got := word.RoundQ94ToQ47(c.R1, c.R2)
	if diff := got - want; diff < -1 || diff > 1 {
		t.Errorf("rounded r1:r2 after CALL square = %d, want ~%d", got, want)
	}
}

func TestCallByNameWithPB(t *testing.T) {
	c, scratch, lib, _, _ := newTestCPU()

	w := &library.Writer{
		Functions: []library.Function{
			{
				Name: "identity",
				FnID: 2,
				Body: []word.Word{
					opcode.Encode(opcode.Ret, 0),
				},
			},
		},
	}
	if err := w.Build(lib); err != nil {
		t.Fatalf("Build: %v", err)
	}

	// PB at scratch[0x300]: count=1, arg0=77 -> r1.
	const pbAddr = 0x300
	scratch.WriteWord(pbAddr, 1)
	scratch.WriteWord(pbAddr+1, 77)

	raw := opcode.PackCallOperand(opcode.CallModeLibName, opcode.CallFlagPB, 0)
	scratch.WriteWord(0, int64(opcode.EncodeRaw(opcode.Call, raw)))
	nameHash := word.FNV1a48("identity")
	scratch.WriteBits(1, nameHash)
	scratch.WriteWord(2, pbAddr)
	scratch.WriteWord(3, int64(opcode.Encode(opcode.Halt, 0)))

	if err := c.ExecuteBlock(scratch, 0); err != nil {
		t.Fatalf("ExecuteBlock: %v", err)
	}
	if c.R1 != 77 {
		t.Errorf("R1 after CALL LIB_NAME with PB = %d, want 77", c.R1)
	}
}

func TestFFRewindStatusNoopWithoutCapability(t *testing.T) {
	c, scratch, _, _, _ := newTestCPU()
	// MemTape implements every optional capability, so exercise the no-op
	// path with a bare minimal device that implements only tape.Device.
	bare := &bareDevice{}
	c.Library = bare

	scratch.WriteWord(0, int64(opcode.Encode(opcode.Rewind, 1)))
	scratch.WriteWord(1, int64(opcode.Encode(opcode.FF, int64(opcode.PackFFOperand(1, 5)))))
	scratch.WriteWord(2, int64(opcode.Encode(opcode.Status, 1)))
	scratch.WriteWord(3, int64(opcode.Encode(opcode.Halt, 0)))

	if err := c.ExecuteBlock(scratch, 0); err != nil {
		t.Fatalf("ExecuteBlock: %v", err)
	}
	if c.R3 != 0 {
		t.Errorf("R3 after STATUS on capability-less device = %d, want 0", c.R3)
	}
}

// bareDevice implements only tape.Device, none of the optional capabilities.
type bareDevice struct {
	records []uint64
}

func (d *bareDevice) ReadBits(i int64) (uint64, bool) {
	if i < 0 || i >= int64(len(d.records)) {
		return 0, false
	}
	return d.records[i], true
}
func (d *bareDevice) WriteBits(i int64, bits uint64) {}
func (d *bareDevice) ReadWord(i int64) int64         { return 0 }
func (d *bareDevice) WriteWord(i int64, v int64)     {}
func (d *bareDevice) AppendWord(v int64) int64       { return 0 }
func (d *bareDevice) RecordCount() int64             { return int64(len(d.records)) }
