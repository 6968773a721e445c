package encoder

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"testing"

	"golang.org/x/image/webp"
)

func testImage() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, 6, 4))
	for y := 0; y < 4; y++ {
		for x := 0; x < 6; x++ {
			img.SetNRGBA(x, y, color.NRGBA{R: uint8(x * 40), G: uint8(y * 60), B: 90, A: 255})
		}
	}
	// Top-left pixel is fully transparent canvas fill.
	img.SetNRGBA(0, 0, color.NRGBA{R: 255, G: 255, B: 255, A: 0})
	return img
}

func TestWebPEncoder_LosslessRoundtrip(t *testing.T) {
	var buf bytes.Buffer
	src := testImage()
	if err := (&WebPEncoder{}).Encode(&buf, src, Options{Lossless: true}); err != nil {
		t.Fatalf("encode: %v", err)
	}

	got, err := webp.Decode(&buf)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.Bounds() != src.Bounds() {
		t.Fatalf("bounds: got %v, want %v", got.Bounds(), src.Bounds())
	}
	r, g, b, a := got.At(3, 2).RGBA()
	want := src.NRGBAAt(3, 2)
	if uint8(r>>8) != want.R || uint8(g>>8) != want.G || uint8(b>>8) != want.B || uint8(a>>8) != 255 {
		t.Errorf("pixel (3,2): got %d,%d,%d,%d want %+v", r>>8, g>>8, b>>8, a>>8, want)
	}
	if _, _, _, a := got.At(0, 0).RGBA(); a != 0 {
		t.Errorf("pixel (0,0): alpha %d, want 0", a)
	}
}

func TestPNGEncoder(t *testing.T) {
	var buf bytes.Buffer
	if err := (&PNGEncoder{}).Encode(&buf, testImage(), Options{}); err != nil {
		t.Fatalf("encode: %v", err)
	}
	cfg, err := png.DecodeConfig(&buf)
	if err != nil {
		t.Fatalf("decode config: %v", err)
	}
	if cfg.Width != 6 || cfg.Height != 4 {
		t.Errorf("size: got %dx%d", cfg.Width, cfg.Height)
	}
}

func TestJPEGEncoder(t *testing.T) {
	var buf bytes.Buffer
	if err := (&JPEGEncoder{}).Encode(&buf, testImage(), Options{Quality: 500}); err != nil {
		t.Fatalf("encode: %v", err)
	}
	if _, err := jpeg.DecodeConfig(&buf); err != nil {
		t.Fatalf("decode config: %v", err)
	}
}

func TestRegistry_Resolve(t *testing.T) {
	r := NewRegistry()
	tests := []struct {
		format, path string
		want         string
	}{
		{"", "out.png", "webp"},
		{"webp", "out.png", "webp"},
		{"PNG", "out.webp", "png"},
		{"jpg", "out", "jpeg"},
		{"auto", "out.JPG", "jpeg"},
		{"auto", "out.png", "png"},
		{"auto", "out.collage", "webp"},
		{"auto", "out", "webp"},
	}
	for _, tt := range tests {
		enc, err := r.Resolve(tt.format, tt.path)
		if err != nil {
			t.Errorf("Resolve(%q, %q): %v", tt.format, tt.path, err)
			continue
		}
		if enc.Format() != tt.want {
			t.Errorf("Resolve(%q, %q): got %s, want %s", tt.format, tt.path, enc.Format(), tt.want)
		}
	}
	if _, err := r.Resolve("avif", "out.avif"); err == nil {
		t.Error("expected error for unsupported format")
	}
}

func TestRegistry_Available(t *testing.T) {
	r := NewRegistry()
	got := r.Available()
	if len(got) != 3 || got[0] != "webp" {
		t.Errorf("available: got %v", got)
	}
	if r.String() != "encoders: webp, png, jpeg" {
		t.Errorf("string: got %q", r.String())
	}
}
