package codec

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"strings"
	"testing"
)

func encodePNG(t *testing.T, w, h int, c color.NRGBA) []byte {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for i := 0; i < len(img.Pix); i += 4 {
		img.Pix[i], img.Pix[i+1], img.Pix[i+2], img.Pix[i+3] = c.R, c.G, c.B, c.A
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func TestDecode(t *testing.T) {
	c := New(false)
	img, err := c.Decode(bytes.NewReader(encodePNG(t, 30, 20, color.NRGBA{10, 20, 30, 255})))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 30 || b.Dy() != 20 {
		t.Errorf("bounds: got %v", b)
	}
}

func TestDecode_Garbage(t *testing.T) {
	c := New(false)
	if _, err := c.Decode(strings.NewReader("definitely not an image")); err == nil {
		t.Fatal("expected decode error")
	}
}

func TestDecodeFile_Missing(t *testing.T) {
	c := New(false)
	if _, err := c.DecodeFile("/nonexistent/image.jpg"); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestResize(t *testing.T) {
	c := New(false)
	src := image.NewNRGBA(image.Rect(5, 5, 305, 105))
	for i := 0; i < len(src.Pix); i += 4 {
		src.Pix[i], src.Pix[i+3] = 200, 255
	}

	out := c.Resize(src, 150, 50)
	if out.Rect != image.Rect(0, 0, 150, 50) {
		t.Fatalf("rect: got %v", out.Rect)
	}
	// A uniform source stays uniform under Lanczos.
	if got := out.NRGBAAt(75, 25); got.R < 199 || got.R > 201 || got.A < 254 {
		t.Errorf("center pixel: got %+v", got)
	}
}

func TestResize_ZeroFilterFallsBackToLanczos(t *testing.T) {
	c := &Codec{}
	src := image.NewNRGBA(image.Rect(0, 0, 4, 4))
	out := c.Resize(src, 2, 2)
	if out.Rect.Dx() != 2 || out.Rect.Dy() != 2 {
		t.Errorf("rect: got %v", out.Rect)
	}
}
