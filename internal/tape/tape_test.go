package tape

import (
	"path/filepath"
	"testing"
)

func TestMemTapeReadWriteRoundTrip(t *testing.T) {
	tp := NewMemTape()
	tp.WriteWord(0, -42)
	tp.WriteWord(3, 100)
	if got := tp.ReadWord(0); got != -42 {
		t.Errorf("ReadWord(0) = %d, want -42", got)
	}
	if got := tp.ReadWord(1); got != 0 {
		t.Errorf("ReadWord(1) (gap) = %d, want 0", got)
	}
	if got := tp.ReadWord(3); got != 100 {
		t.Errorf("ReadWord(3) = %d, want 100", got)
	}
	if n := tp.RecordCount(); n != 4 {
		t.Errorf("RecordCount() = %d, want 4", n)
	}
}

func TestMemTapeAppendAndEOF(t *testing.T) {
	tp := NewMemTape()
	i0 := tp.AppendWord(1)
	i1 := tp.AppendWord(2)
	if i0 != 0 || i1 != 1 {
		t.Errorf("AppendWord indices = (%d, %d), want (0, 1)", i0, i1)
	}
	if _, ok := tp.ReadBits(5); ok {
		t.Errorf("ReadBits past end should report EOF")
	}
}

func TestMemTapeRewindFastForwardStatus(t *testing.T) {
	tp := NewMemTape()
	tp.AppendWord(1)
	tp.AppendWord(2)
	tp.AppendWord(3)
	tp.FastForward(2)
	if got := tp.Position(); got != 2 {
		t.Errorf("Position() after FastForward(2) = %d, want 2", got)
	}
	tp.FastForward(100)
	if got := tp.Position(); got != 3 {
		t.Errorf("Position() clamp = %d, want 3 (record count)", got)
	}
	tp.Rewind()
	if got := tp.Position(); got != 0 {
		t.Errorf("Position() after Rewind = %d, want 0", got)
	}
	st := tp.StatusReport()
	if st.Size != 3 || st.Position != 0 {
		t.Errorf("StatusReport() = %+v, want {Position:0 Size:3}", st)
	}
}

func TestFileTapePersistsAcrossReopen(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "scratch.tape")

	ft, err := OpenFileTape(path)
	if err != nil {
		t.Fatalf("OpenFileTape: %v", err)
	}
	ft.WriteWord(0, -7)
	ft.WriteWord(2, 99)
	if err := ft.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	reopened, err := OpenFileTape(path)
	if err != nil {
		t.Fatalf("reopen OpenFileTape: %v", err)
	}
	defer reopened.Close()

	if got := reopened.ReadWord(0); got != -7 {
		t.Errorf("ReadWord(0) after reopen = %d, want -7", got)
	}
	if got := reopened.ReadWord(1); got != 0 {
		t.Errorf("ReadWord(1) (zero-filled gap) = %d, want 0", got)
	}
	if got := reopened.ReadWord(2); got != 99 {
		t.Errorf("ReadWord(2) after reopen = %d, want 99", got)
	}
	if n := reopened.RecordCount(); n != 3 {
		t.Errorf("RecordCount() = %d, want 3", n)
	}
}

func TestFileTapeEOFAndCapabilities(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "cards.tape")
	ft, err := OpenFileTape(path)
	if err != nil {
		t.Fatalf("OpenFileTape: %v", err)
	}
	defer ft.Close()

	if _, ok := ft.ReadBits(0); ok {
		t.Errorf("ReadBits on empty tape should report EOF")
	}
	ft.AppendWord(1)
	ft.AppendWord(2)

	var _ Rewinder = ft
	var _ FastForwarder = ft
	var _ PositionReporter = ft
	var _ StatusReporter = ft

	ft.FastForward(1)
	if got := ft.Position(); got != 1 {
		t.Errorf("Position() = %d, want 1", got)
	}
	ft.Rewind()
	if got := ft.Position(); got != 0 {
		t.Errorf("Position() after Rewind = %d, want 0", got)
	}
}
