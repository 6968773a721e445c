package collage

import (
	"errors"
	"image"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/AnyUserName/collage-cli/internal/canvas"
	"github.com/AnyUserName/collage-cli/internal/encoder"
	"github.com/AnyUserName/collage-cli/internal/layout"
	"golang.org/x/image/webp"
)

// truncatedBuffer reports more pixels than it holds.
type truncatedBuffer struct {
	closed bool
}

func (b *truncatedBuffer) Pix() []byte             { return make([]byte, 10) }
func (b *truncatedBuffer) Width() int              { return 4 }
func (b *truncatedBuffer) Height() int             { return 4 }
func (b *truncatedBuffer) Backing() canvas.Backing { return canvas.Memory }
func (b *truncatedBuffer) Flush() error            { return nil }
func (b *truncatedBuffer) Close() error            { b.closed = true; return nil }

type failingEncoder struct{}

func (failingEncoder) Format() string    { return "webp" }
func (failingEncoder) Extension() string { return "webp" }

func (failingEncoder) Encode(w io.Writer, _ image.Image, _ encoder.Options) error {
	w.Write([]byte("partial"))
	return errors.New("disk full")
}

func TestWriter_WebPRoundtripDimensions(t *testing.T) {
	refs := fixtures(t, [][2]int{{30, 20}, {20, 30}, {10, 10}, {64, 16}, {16, 64}})
	g, _ := layout.ComputeGrid(len(refs), 16)
	buf, err := canvas.NewDisk(t.TempDir(), g.Width, g.Height)
	if err != nil {
		t.Fatal(err)
	}
	composeInto(t, refs, g, buf)

	out := filepath.Join(t.TempDir(), "collage.webp")
	w := NewWriter(&encoder.WebPEncoder{}, encoder.Options{Lossless: true})
	if err := w.Write(buf, out); err != nil {
		t.Fatalf("write: %v", err)
	}

	if _, err := os.Stat(buf.Path()); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("canvas file not removed after write: %v", err)
	}

	f, err := os.Open(out)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	cfg, err := webp.DecodeConfig(f)
	if err != nil {
		t.Fatalf("decode config: %v", err)
	}
	if cfg.Width != g.Columns*16 || cfg.Height != g.Rows*16 {
		t.Errorf("size: got %dx%d, want %dx%d", cfg.Width, cfg.Height, g.Columns*16, g.Rows*16)
	}
	info, _ := os.Stat(out)
	if info.Mode().Perm() != 0o644 {
		t.Errorf("mode: got %v", info.Mode().Perm())
	}
}

func TestWriter_RejectsTruncatedBuffer(t *testing.T) {
	out := filepath.Join(t.TempDir(), "collage.webp")
	buf := &truncatedBuffer{}

	err := NewWriter(&encoder.WebPEncoder{}, encoder.Options{}).Write(buf, out)

	var encErr *EncodeError
	if !errors.As(err, &encErr) || encErr.Path != out {
		t.Fatalf("got %v, want *EncodeError for %s", err, out)
	}
	if !errors.Is(err, ErrBufferSize) {
		t.Errorf("got %v, want ErrBufferSize", err)
	}
	if !buf.closed {
		t.Error("buffer not released")
	}
	if _, err := os.Stat(out); !errors.Is(err, os.ErrNotExist) {
		t.Error("output written for truncated buffer")
	}
}

func TestWriter_MissingDirectory(t *testing.T) {
	out := filepath.Join(t.TempDir(), "no", "such", "dir", "collage.webp")
	buf := canvas.NewMemory(2, 2)

	err := NewWriter(&encoder.PNGEncoder{}, encoder.Options{}).Write(buf, out)
	var encErr *EncodeError
	if !errors.As(err, &encErr) {
		t.Fatalf("got %v, want *EncodeError", err)
	}
	if buf.Pix() != nil {
		t.Error("buffer not released")
	}
}

func TestWriter_FailedEncodeKeepsPreviousOutput(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "collage.webp")
	if err := os.WriteFile(out, []byte("previous"), 0o644); err != nil {
		t.Fatal(err)
	}

	err := NewWriter(failingEncoder{}, encoder.Options{}).Write(canvas.NewMemory(2, 2), out)
	if err == nil {
		t.Fatal("expected error")
	}

	data, _ := os.ReadFile(out)
	if string(data) != "previous" {
		t.Errorf("previous output clobbered: %q", data)
	}
	entries, _ := os.ReadDir(dir)
	if len(entries) != 1 {
		t.Errorf("temp files left behind: %d entries", len(entries))
	}
}
