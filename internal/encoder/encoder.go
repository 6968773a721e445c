package encoder

import (
	"image"
	"io"
)

// DefaultQuality is used by lossy encoders when Options.Quality is unset.
const DefaultQuality = 82

// Options tune a single encode.
type Options struct {
	// Quality 1-100 for lossy output; 0 means DefaultQuality.
	Quality int
	// Lossless requests lossless output where the format supports both.
	Lossless bool
}

func (o Options) quality() int {
	if o.Quality <= 0 || o.Quality > 100 {
		return DefaultQuality
	}
	return o.Quality
}

// Encoder writes an image in one file format.
type Encoder interface {
	// Format returns the format name (e.g. "webp", "png", "jpeg").
	Format() string

	// Extension returns the canonical file extension without dot.
	Extension() string

	// Encode writes img to w.
	Encode(w io.Writer, img image.Image, opts Options) error
}
