// Package codec decodes source images and resamples them to cell size.
package codec

import (
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"os"

	"github.com/disintegration/imaging"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// Codec decodes any registered still-image format and resizes with a
// Lanczos filter.
type Codec struct {
	// AutoOrient applies the EXIF orientation tag when decoding.
	AutoOrient bool
	// Filter overrides the resampling filter; zero value means Lanczos.
	Filter imaging.ResampleFilter
}

// New returns a Codec using Lanczos resampling.
func New(autoOrient bool) *Codec {
	return &Codec{AutoOrient: autoOrient, Filter: imaging.Lanczos}
}

// Decode reads one image. Multi-frame formats yield their first frame.
func (c *Codec) Decode(r io.Reader) (image.Image, error) {
	img, err := imaging.Decode(r, imaging.AutoOrientation(c.AutoOrient))
	if err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	b := img.Bounds()
	if b.Dx() < 1 || b.Dy() < 1 {
		return nil, fmt.Errorf("decode: empty image %dx%d", b.Dx(), b.Dy())
	}
	return img, nil
}

// DecodeFile opens and decodes the image at path.
func (c *Codec) DecodeFile(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return c.Decode(f)
}

// Resize resamples img to exactly w x h straight-alpha RGBA8 pixels with
// bounds starting at (0,0).
func (c *Codec) Resize(img image.Image, w, h int) *image.NRGBA {
	filter := c.Filter
	if filter.Support == 0 && filter.Kernel == nil {
		filter = imaging.Lanczos
	}
	return imaging.Resize(img, w, h, filter)
}
