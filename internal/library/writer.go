package library

import (
	"fmt"

	"github.com/TheFausap/zerocpu-go/internal/tape"
	"github.com/TheFausap/zerocpu-go/internal/word"
)

// Function is a library function body to be laid out by Writer. Body holds
// already-encoded instruction words; any label resolution (local jumps,
// global constant references) is the caller's responsibility, matching this
// package's "works directly with pre-encoded instruction words" scope.
type Function struct {
	Name     string
	FnID     uint64
	Args     uint64
	Returns  uint64
	Clobbers uint64
	Body     []word.Word
}

// Global is a single word to be written by random access outside the
// header/TOC/function region, e.g. a constant pool entry.
type Global struct {
	Addr int64
	Bits uint64
}

// Writer lays out a library tape: header, TOC, function records, then
// globals. Grounded on the reference library builder's build() sequencing.
type Writer struct {
	Functions []Function
	Globals   []Global
}

// Build computes the layout and writes every word to dev. It returns an
// error if any global address overlaps the header/TOC/function region: the
// reference builder only warns on this for header/TOC overlap and hard-fails
// for function-region overlap, but a silent header/TOC corruption is exactly
// the kind of defect this format exists to prevent, so this Writer treats
// every overlap as fatal.
func (w *Writer) Build(dev tape.Device) error {
	tocStart := HeaderLen
	fnRegionStart := tocStart + int64(len(w.Functions))*TocEntryLen

	starts := make([]int64, len(w.Functions))
	ip := fnRegionStart
	for i, fn := range w.Functions {
		starts[i] = ip
		length := FnRecordHeaderLen + int64(len(fn.Body))
		ip += length
	}
	fnRegionEnd := ip

	for _, g := range w.Globals {
		if g.Addr >= 0 && g.Addr < fnRegionEnd {
			return fmt.Errorf("library: global address %d overlaps header/TOC/function region [0..%d)", g.Addr, fnRegionEnd)
		}
	}

	dev.WriteBits(0, Magic)
	dev.WriteBits(1, Version)
	dev.WriteWord(2, int64(len(w.Functions)))
	dev.WriteWord(3, tocStart)

	for i, fn := range w.Functions {
		base := tocStart + int64(i)*TocEntryLen
		hash := word.FNV1a48(fn.Name)
		length := FnRecordHeaderLen + int64(len(fn.Body))
		dev.WriteBits(base+0, fn.FnID)
		dev.WriteBits(base+1, hash)
		dev.WriteWord(base+2, starts[i])
		dev.WriteWord(base+3, length)
	}

	for i, fn := range w.Functions {
		start := starts[i]
		meta := PackFnMeta(fn.Args, fn.Returns, fn.Clobbers)
		dev.WriteBits(start+0, FnHdrMagic)
		dev.WriteBits(start+1, meta)
		dev.WriteWord(start+2, 0)
		for j, instr := range fn.Body {
			dev.WriteWord(start+FnRecordHeaderLen+int64(j), int64(instr))
		}
	}

	for _, g := range w.Globals {
		dev.WriteBits(g.Addr, g.Bits)
	}

	return nil
}
