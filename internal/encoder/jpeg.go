package encoder

import (
	"image"
	"image/jpeg"
	"io"
)

// JPEGEncoder encodes images to JPEG using Go's standard library.
// JPEG has no alpha channel: transparent canvas areas come out as their RGB fill.
type JPEGEncoder struct{}

func (e *JPEGEncoder) Format() string    { return "jpeg" }
func (e *JPEGEncoder) Extension() string { return "jpg" }

func (e *JPEGEncoder) Encode(w io.Writer, img image.Image, opts Options) error {
	return jpeg.Encode(w, img, &jpeg.Options{Quality: opts.quality()})
}
