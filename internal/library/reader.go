package library

import (
	"errors"
	"fmt"

	"github.com/TheFausap/zerocpu-go/internal/tape"
)

// ErrBadMagic means a library tape's header magic does not match Magic.
var ErrBadMagic = errors.New("library: bad header magic")

// ErrNotFound means a resolve* call could not find a matching function.
var ErrNotFound = errors.New("library: function not found")

// Reader resolves CALL targets against a library tape.
type Reader struct {
	dev        tape.Device
	entryCount int64
	tocStart   int64
}

// Open reads and validates a library tape's fixed header.
func Open(dev tape.Device) (*Reader, error) {
	magic, ok := dev.ReadBits(0)
	if !ok || magic != Magic {
		return nil, fmt.Errorf("%w: got %#x", ErrBadMagic, magic)
	}
	entryCount := dev.ReadWord(2)
	tocStart := dev.ReadWord(3)
	return &Reader{dev: dev, entryCount: entryCount, tocStart: tocStart}, nil
}

func (r *Reader) tocEntry(i int64) TOCEntry {
	base := r.tocStart + i*TocEntryLen
	fnID, _ := r.dev.ReadBits(base + 0)
	nameHash, _ := r.dev.ReadBits(base + 1)
	return TOCEntry{
		FnID:     fnID,
		NameHash: nameHash,
		Start:    r.dev.ReadWord(base + 2),
		Length:   r.dev.ReadWord(base + 3),
	}
}

// entryAddr is the first instruction word of the function whose record
// starts at start: past the FNHDR_MAGIC/FN_META/RESERVED header.
func entryAddr(start int64) int64 {
	return start + FnRecordHeaderLen
}

// ResolveAbs treats value as an already-absolute instruction address; no
// lookup is performed, matching LIB_ABS's semantics.
func (r *Reader) ResolveAbs(value int64) (int64, error) {
	if value < 0 {
		return 0, fmt.Errorf("library: %w: negative absolute address %d", ErrNotFound, value)
	}
	return value, nil
}

// ResolveIndex interprets value first as a zero-based TOC index, falling
// back to a scan for a matching function ID.
func (r *Reader) ResolveIndex(value int64) (int64, error) {
	if value >= 0 && value < r.entryCount {
		return entryAddr(r.tocEntry(value).Start), nil
	}
	for i := int64(0); i < r.entryCount; i++ {
		e := r.tocEntry(i)
		if int64(e.FnID) == value {
			return entryAddr(e.Start), nil
		}
	}
	return 0, fmt.Errorf("library: %w: index/id %d", ErrNotFound, value)
}

// ResolveName scans the TOC for an entry whose NAMEHASH matches hash.
func (r *Reader) ResolveName(hash uint64) (int64, error) {
	for i := int64(0); i < r.entryCount; i++ {
		e := r.tocEntry(i)
		if e.NameHash == hash {
			return entryAddr(e.Start), nil
		}
	}
	return 0, fmt.Errorf("library: %w: namehash %#x", ErrNotFound, hash)
}

// EntryCount returns the library's TOC entry count.
func (r *Reader) EntryCount() int64 {
	return r.entryCount
}

// FnMeta reads the FN_META word for the function record starting at start.
func (r *Reader) FnMeta(start int64) uint64 {
	bits, _ := r.dev.ReadBits(start + 1)
	return bits
}
