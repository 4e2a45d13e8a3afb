package opcode

import "testing"

func TestEncodeDecodeRoundTrip(t *testing.T) {
	cases := []struct {
		code    Code
		operand int64
	}{
		{LoadR1, 10},
		{StoreR1, 0},
		{Txr, 0},
		{Jump, -5},
		{Neg, 0},
	}
	for _, tc := range cases {
		instr := Encode(tc.code, tc.operand)
		gotCode, rawOperand := Decode(instr)
		if gotCode != tc.code {
			t.Errorf("Decode code = %v, want %v", gotCode, tc.code)
		}
		gotOperand := int64(rawOperand)
		// re-sign-extend for comparison
		if signed := signExtend36(rawOperand); signed != tc.operand {
			t.Errorf("Decode operand = %d, want %d", signed, tc.operand)
		}
		_ = gotOperand
	}
}

func signExtend36(bits uint64) int64 {
	bits &= (1 << 36) - 1
	if bits&(1<<35) != 0 {
		return -int64((^bits&((1<<36)-1))+1)
	}
	return int64(bits)
}

func TestCallOperandPacking(t *testing.T) {
	raw := PackCallOperand(CallModeLibName, CallFlagPB, 42)
	mode, flags, value := UnpackCallOperand(raw)
	if mode != CallModeLibName {
		t.Errorf("mode = %d, want %d", mode, CallModeLibName)
	}
	if flags != CallFlagPB {
		t.Errorf("flags = %d, want %d", flags, CallFlagPB)
	}
	if value != 42 {
		t.Errorf("value = %d, want 42", value)
	}
}

func TestFFOperandPacking(t *testing.T) {
	raw := PackFFOperand(2, 100)
	dev, count := UnpackFFOperand(raw)
	if dev != 2 || count != 100 {
		t.Errorf("UnpackFFOperand = (%d, %d), want (2, 100)", dev, count)
	}
}

func TestUnknownOpcodeName(t *testing.T) {
	if Known(0x0FF) {
		t.Errorf("0x0FF unexpectedly known")
	}
	if Name(0x0FF) != "OP_UNKNOWN" {
		t.Errorf("Name(0x0FF) = %q, want OP_UNKNOWN", Name(0x0FF))
	}
}

func TestLookupRoundTrip(t *testing.T) {
	code, ok := Lookup("HALT")
	if !ok || code != Halt {
		t.Errorf("Lookup(HALT) = (%v, %v), want (%v, true)", code, ok, Halt)
	}
}
