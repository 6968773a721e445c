package canvas

import (
	"bytes"
	"errors"
	"os"
	"testing"
)

func TestNewMemory(t *testing.T) {
	b := NewMemory(3, 2)
	defer b.Close()

	if len(b.Pix()) != 3*2*4 {
		t.Fatalf("len: got %d, want 24", len(b.Pix()))
	}
	if b.Backing() != Memory {
		t.Errorf("backing: got %q", b.Backing())
	}
	if err := b.Flush(); err != nil {
		t.Errorf("flush: %v", err)
	}
}

func TestDiskBuffer_Lifecycle(t *testing.T) {
	dir := t.TempDir()
	b, err := NewDisk(dir, 5, 4)
	if err != nil {
		t.Fatalf("new disk: %v", err)
	}

	info, err := os.Stat(b.Path())
	if err != nil {
		t.Fatalf("stat backing file: %v", err)
	}
	if info.Size() != 5*4*4 {
		t.Errorf("file size: got %d, want 80", info.Size())
	}
	if len(b.Pix()) != 80 {
		t.Fatalf("mapping len: got %d, want 80", len(b.Pix()))
	}

	Fill(b, [4]byte{1, 2, 3, 4})
	if err := b.Flush(); err != nil {
		t.Fatalf("flush: %v", err)
	}

	data, err := os.ReadFile(b.Path())
	if err != nil {
		t.Fatalf("read backing file: %v", err)
	}
	if !bytes.Equal(data, bytes.Repeat([]byte{1, 2, 3, 4}, 20)) {
		t.Errorf("flushed bytes do not match mapping")
	}

	if err := b.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	if _, err := os.Stat(b.Path()); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("backing file still present after close: %v", err)
	}
	if err := b.Close(); err != nil {
		t.Errorf("second close: %v", err)
	}
	if err := b.Flush(); !errors.Is(err, ErrClosed) {
		t.Errorf("flush after close: got %v, want ErrClosed", err)
	}
}

func TestNewDisk_BadDirLeavesNothing(t *testing.T) {
	if _, err := NewDisk("/nonexistent/collage-test-dir", 2, 2); err == nil {
		t.Fatal("expected error for missing directory")
	}
}

func TestFill(t *testing.T) {
	for _, size := range [][2]int{{1, 1}, {3, 1}, {7, 5}, {64, 33}} {
		b := NewMemory(size[0], size[1])
		Fill(b, [4]byte{255, 255, 255, 0})
		want := bytes.Repeat([]byte{255, 255, 255, 0}, size[0]*size[1])
		if !bytes.Equal(b.Pix(), want) {
			t.Errorf("%dx%d: fill mismatch", size[0], size[1])
		}
	}
}

func TestResolve(t *testing.T) {
	tests := []struct {
		b         Backing
		size, thr int64
		want      Backing
	}{
		{Memory, 1 << 40, 1, Memory},
		{Disk, 4, 1 << 20, Disk},
		{Auto, 100, 100, Memory},
		{Auto, 101, 100, Disk},
		{Auto, DefaultThreshold, 0, Memory},
		{Auto, DefaultThreshold + 1, 0, Disk},
	}
	for _, tt := range tests {
		if got := Resolve(tt.b, tt.size, tt.thr); got != tt.want {
			t.Errorf("Resolve(%q, %d, %d): got %q, want %q", tt.b, tt.size, tt.thr, got, tt.want)
		}
	}
}

func TestNew_AutoPicksDiskAboveThreshold(t *testing.T) {
	b, err := New(Auto, 10, 10, 100)
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	defer b.Close()
	if b.Backing() != Disk {
		t.Errorf("backing: got %q, want disk", b.Backing())
	}
}

func TestParseBacking(t *testing.T) {
	for in, want := range map[string]Backing{"": Auto, "AUTO": Auto, "memory": Memory, " Disk ": Disk} {
		got, err := ParseBacking(in)
		if err != nil || got != want {
			t.Errorf("ParseBacking(%q): got %q, %v", in, got, err)
		}
	}
	if _, err := ParseBacking("tape"); err == nil {
		t.Error("expected error for unknown backing")
	}
}
