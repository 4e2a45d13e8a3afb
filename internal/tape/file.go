package tape

import (
	"os"

	"github.com/TheFausap/zerocpu-go/internal/word"
)

// FileTape is a Device backed by a flat file of 6-byte big-endian records,
// grown by zero-filling as needed. It implements Rewinder, FastForwarder,
// and PositionReporter so REWIND/FF/STATUS are meaningful against it.
type FileTape struct {
	path string
	file *os.File
	pos  int64 // last-touched record index, reported by STATUS
}

// OpenFileTape opens (creating if necessary) the tape file at path.
func OpenFileTape(path string) (*FileTape, error) {
	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE, 0o644)
	if err != nil {
		return nil, err
	}
	return &FileTape{path: path, file: f}, nil
}

// Close releases the underlying file handle.
func (t *FileTape) Close() error {
	return t.file.Close()
}

func (t *FileTape) size() (int64, error) {
	info, err := t.file.Stat()
	if err != nil {
		return 0, err
	}
	return info.Size() / word.BytesLen, nil
}

func (t *FileTape) ensureSize(records int64) error {
	n, err := t.size()
	if err != nil {
		return err
	}
	if n >= records {
		return nil
	}
	pad := make([]byte, (records-n)*word.BytesLen)
	if _, err := t.file.WriteAt(pad, n*word.BytesLen); err != nil {
		return err
	}
	return nil
}

func (t *FileTape) ReadBits(i int64) (uint64, bool) {
	n, err := t.size()
	if err != nil || i < 0 || i >= n {
		return 0, false
	}
	var buf [word.BytesLen]byte
	if _, err := t.file.ReadAt(buf[:], i*word.BytesLen); err != nil {
		return 0, false
	}
	t.pos = i
	return word.FromBytes(buf), true
}

func (t *FileTape) WriteBits(i int64, bits uint64) {
	if i < 0 {
		return
	}
	if err := t.ensureSize(i + 1); err != nil {
		return
	}
	buf := word.ToBytes(bits)
	_, _ = t.file.WriteAt(buf[:], i*word.BytesLen)
	t.pos = i
}

func (t *FileTape) ReadWord(i int64) int64 {
	bits, ok := t.ReadBits(i)
	if !ok {
		return 0
	}
	return int64(word.FromTwosComplement(bits))
}

func (t *FileTape) WriteWord(i int64, v int64) {
	t.WriteBits(i, word.ToTwosComplement(word.Word(v)))
}

func (t *FileTape) AppendWord(v int64) int64 {
	n, err := t.size()
	if err != nil {
		n = 0
	}
	t.WriteWord(n, v)
	return n
}

func (t *FileTape) RecordCount() int64 {
	n, err := t.size()
	if err != nil {
		return 0
	}
	return n
}

// Rewind resets the reported cursor to the start of tape.
func (t *FileTape) Rewind() {
	t.pos = 0
}

// FastForward advances the reported cursor by count records, clamped to the
// tape's current size.
func (t *FileTape) FastForward(count int64) {
	if count < 0 {
		count = 0
	}
	n, err := t.size()
	if err != nil {
		n = 0
	}
	t.pos += count
	if t.pos > n {
		t.pos = n
	}
}

// Position reports the last-touched record index.
func (t *FileTape) Position() int64 {
	return t.pos
}

// StatusReport returns the device's position and current size.
func (t *FileTape) StatusReport() Status {
	n, _ := t.size()
	return Status{Position: t.pos, Size: n}
}
