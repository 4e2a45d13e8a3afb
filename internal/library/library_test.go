package library

import (
	"errors"
	"testing"

	"github.com/TheFausap/zerocpu-go/internal/opcode"
	"github.com/TheFausap/zerocpu-go/internal/tape"
	"github.com/TheFausap/zerocpu-go/internal/word"
)

func buildSample(t *testing.T) (*Reader, tape.Device) {
	t.Helper()
	w := &Writer{
		Functions: []Function{
			{
				Name:     "square",
				FnID:     7,
				Args:     1,
				Returns:  ReturnsR1,
				Clobbers: ClobbersR1,
				Body: []word.Word{
					opcode.Encode(opcode.Mul, 0),
					opcode.Encode(opcode.Ret, 0),
				},
			},
			{
				Name:    "identity",
				FnID:    1,
				Args:    1,
				Returns: ReturnsR1,
				Body: []word.Word{
					opcode.Encode(opcode.Ret, 0),
				},
			},
		},
		Globals: []Global{
			{Addr: 1000, Bits: word.ToTwosComplement(42)},
		},
	}
	dev := tape.NewMemTape()
	if err := w.Build(dev); err != nil {
		t.Fatalf("Build: %v", err)
	}
	r, err := Open(dev)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	return r, dev
}

func TestResolveIndexByPosition(t *testing.T) {
	r, _ := buildSample(t)
	addr, err := r.ResolveIndex(0)
	if err != nil {
		t.Fatalf("ResolveIndex(0): %v", err)
	}
	if addr != HeaderLen+2*TocEntryLen+FnRecordHeaderLen {
		t.Errorf("ResolveIndex(0) = %d, want first function's entry address", addr)
	}
}

func TestResolveIndexFallsBackToFnID(t *testing.T) {
	r, _ := buildSample(t)
	// 7 is "square"'s FnID but is out of range as a TOC index (entryCount=2),
	// so this exercises the ID-scan fallback, not index-first resolution.
	addr, err := r.ResolveIndex(7)
	if err != nil {
		t.Fatalf("ResolveIndex(7) via fn id fallback: %v", err)
	}
	want, _ := r.ResolveName(word.FNV1a48("square"))
	if addr != want {
		t.Errorf("ResolveIndex(7) = %d, want %d (square's entry)", addr, want)
	}
}

func TestResolveName(t *testing.T) {
	r, _ := buildSample(t)
	addr, err := r.ResolveName(word.FNV1a48("square"))
	if err != nil {
		t.Fatalf("ResolveName(square): %v", err)
	}
	idxAddr, _ := r.ResolveIndex(0)
	if addr != idxAddr {
		t.Errorf("ResolveName(square) = %d, want %d (matches index 0)", addr, idxAddr)
	}
}

func TestResolveNameNotFound(t *testing.T) {
	r, _ := buildSample(t)
	if _, err := r.ResolveName(0xdeadbeef); !errors.Is(err, ErrNotFound) {
		t.Errorf("ResolveName(unknown) err = %v, want ErrNotFound", err)
	}
}

func TestOpenBadMagic(t *testing.T) {
	dev := tape.NewMemTape()
	dev.WriteBits(0, 0x1234)
	if _, err := Open(dev); !errors.Is(err, ErrBadMagic) {
		t.Errorf("Open err = %v, want ErrBadMagic", err)
	}
}

func TestBuildRejectsGlobalOverlap(t *testing.T) {
	w := &Writer{
		Functions: []Function{
			{Name: "f", FnID: 0, Body: []word.Word{opcode.Encode(opcode.Ret, 0)}},
		},
		Globals: []Global{
			{Addr: 0, Bits: 1}, // collides with header
		},
	}
	dev := tape.NewMemTape()
	if err := w.Build(dev); err == nil {
		t.Errorf("Build should reject global overlapping header/TOC/function region")
	}
}

func TestFnMetaRoundTrip(t *testing.T) {
	r, _ := buildSample(t)
	entry := r.tocEntry(0)
	meta := r.FnMeta(entry.Start)
	abiVer, args, returns, clobbers := UnpackFnMeta(meta)
	if abiVer != AbiVer {
		t.Errorf("abiVer = %d, want %d", abiVer, AbiVer)
	}
	if args != 1 || returns != ReturnsR1 || clobbers != ClobbersR1 {
		t.Errorf("unpacked meta = (args=%d returns=%d clobbers=%d), want (1, %d, %d)", args, returns, clobbers, ReturnsR1, ClobbersR1)
	}
}
