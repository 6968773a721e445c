package encoder

import (
	"image"
	"image/png"
	"io"
)

// PNGEncoder encodes images to PNG using Go's standard library. Always lossless.
type PNGEncoder struct{}

func (e *PNGEncoder) Format() string    { return "png" }
func (e *PNGEncoder) Extension() string { return "png" }

func (e *PNGEncoder) Encode(w io.Writer, img image.Image, _ Options) error {
	enc := &png.Encoder{CompressionLevel: png.BestSpeed}
	return enc.Encode(w, img)
}
