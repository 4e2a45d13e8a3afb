package word

import "testing"

// Round-trip signed 48-bit values through the two's-complement helpers.
func TestTwosComplementRoundTrip(t *testing.T) {
	cases := []Word{0, 1, -1, Max, Min, 12345, -12345, Max - 1, Min + 1}
	for _, v := range cases {
		bits := ToTwosComplement(v)
		got := FromTwosComplement(bits)
		if got != v {
			t.Errorf("FromTwosComplement(ToTwosComplement(%d)) = %d, want %d", v, got, v)
		}
	}
}

func TestClamp(t *testing.T) {
	tests := []struct {
		in, want Word
	}{
		{0, 0},
		{Max, Max},
		{Max + 1000, Max},
		{Min, Min},
		{Min - 1000, Min},
	}
	for _, tc := range tests {
		if got := Clamp(tc.in); got != tc.want {
			t.Errorf("Clamp(%d) = %d, want %d", tc.in, got, tc.want)
		}
	}
}

func TestBytesRoundTrip(t *testing.T) {
	cases := []uint64{0, 1, Mask, 0xABCDEF012345, ToTwosComplement(-1)}
	for _, bits := range cases {
		b := ToBytes(bits)
		if len(b) != BytesLen {
			t.Fatalf("ToBytes(0x%X) produced %d bytes, want %d", bits, len(b), BytesLen)
		}
		got := FromBytes(b)
		if got != bits&Mask {
			t.Errorf("FromBytes(ToBytes(0x%X)) = 0x%X, want 0x%X", bits, got, bits&Mask)
		}
	}
}

func TestTC36RoundTrip(t *testing.T) {
	cases := []int64{0, 1, -1, MaxOperand, MinOperand, 123456, -123456}
	for _, v := range cases {
		bits := ToTC36(v)
		got := FromTC36(bits)
		if got != v {
			t.Errorf("FromTC36(ToTC36(%d)) = %d, want %d", v, got, v)
		}
	}
}

func TestClamp36(t *testing.T) {
	if got := Clamp36(MaxOperand + 1); got != MaxOperand {
		t.Errorf("Clamp36 overflow = %d, want %d", got, MaxOperand)
	}
	if got := Clamp36(MinOperand - 1); got != MinOperand {
		t.Errorf("Clamp36 underflow = %d, want %d", got, MinOperand)
	}
}
