package encoder

import (
	"bufio"
	"image"
	"io"

	"github.com/chai2010/webp"
)

// WebPEncoder encodes images to WebP through libwebp.
type WebPEncoder struct{}

func (e *WebPEncoder) Format() string    { return "webp" }
func (e *WebPEncoder) Extension() string { return "webp" }

func (e *WebPEncoder) Encode(w io.Writer, img image.Image, opts Options) error {
	bw := bufio.NewWriterSize(w, 1<<20)
	err := webp.Encode(bw, straightRGBA(img), &webp.Options{
		Lossless: opts.Lossless,
		Quality:  float32(opts.quality()),
		// Keep the RGB of fully transparent pixels so output is byte-stable.
		Exact: true,
	})
	if err != nil {
		return err
	}
	return bw.Flush()
}

// straightRGBA hands libwebp the NRGBA bytes as-is. libwebp reads RGBA
// buffers as non-premultiplied, so relabelling avoids a premultiply pass
// that would destroy the colour of transparent pixels.
func straightRGBA(img image.Image) image.Image {
	if n, ok := img.(*image.NRGBA); ok {
		return &image.RGBA{Pix: n.Pix, Stride: n.Stride, Rect: n.Rect}
	}
	return img
}
