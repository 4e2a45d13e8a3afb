package tape

import "github.com/TheFausap/zerocpu-go/internal/word"

// MemTape is a slice-backed Device, used by tests and by the library/card
// builders that assemble a tape image in memory before it is ever written
// to disk.
type MemTape struct {
	records []uint64
	pos     int64
}

// NewMemTape returns an empty in-memory tape.
func NewMemTape() *MemTape {
	return &MemTape{}
}

func (t *MemTape) grow(n int64) {
	for int64(len(t.records)) <= n {
		t.records = append(t.records, 0)
	}
}

func (t *MemTape) ReadBits(i int64) (uint64, bool) {
	if i < 0 || i >= int64(len(t.records)) {
		return 0, false
	}
	t.pos = i
	return t.records[i], true
}

func (t *MemTape) WriteBits(i int64, bits uint64) {
	if i < 0 {
		return
	}
	t.grow(i)
	t.records[i] = bits & word.Mask
	t.pos = i
}

func (t *MemTape) ReadWord(i int64) int64 {
	bits, ok := t.ReadBits(i)
	if !ok {
		return 0
	}
	return int64(word.FromTwosComplement(bits))
}

func (t *MemTape) WriteWord(i int64, v int64) {
	t.WriteBits(i, word.ToTwosComplement(word.Word(v)))
}

func (t *MemTape) AppendWord(v int64) int64 {
	i := int64(len(t.records))
	t.WriteWord(i, v)
	return i
}

func (t *MemTape) RecordCount() int64 {
	return int64(len(t.records))
}

func (t *MemTape) Rewind() {
	t.pos = 0
}

func (t *MemTape) FastForward(count int64) {
	if count < 0 {
		count = 0
	}
	t.pos += count
	if n := int64(len(t.records)); t.pos > n {
		t.pos = n
	}
}

func (t *MemTape) Position() int64 {
	return t.pos
}

func (t *MemTape) StatusReport() Status {
	return Status{Position: t.pos, Size: int64(len(t.records))}
}
