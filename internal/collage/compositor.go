// Package collage composites source images into a grid canvas and writes
// the finished collage.
package collage

import (
	"fmt"
	"image"
	"io"
	"log/slog"

	"github.com/AnyUserName/collage-cli/internal/canvas"
	"github.com/AnyUserName/collage-cli/internal/layout"
	"github.com/AnyUserName/collage-cli/internal/source"
)

// Background is the canvas fill: white with zero alpha. The colour is
// invisible to alpha-aware viewers but fixed so output bytes are stable.
var Background = [4]byte{255, 255, 255, 0}

// Decoder loads a source image and resamples it.
type Decoder interface {
	DecodeFile(path string) (image.Image, error)
	Resize(img image.Image, w, h int) *image.NRGBA
}

// Cell records what happened to one source image.
type Cell struct {
	Index     int
	Ref       source.ImageRef
	SrcWidth  int
	SrcHeight int
	Placement layout.Placement
	// Err is a *DecodeError when the image was skipped.
	Err error
}

// OK reports whether the image was composited.
func (c Cell) OK() bool { return c.Err == nil }

// Compositor draws images into a canvas one at a time, in order.
type Compositor struct {
	dec Decoder
	log *slog.Logger

	// OnCell, if set, is called after each image is handled.
	OnCell func(Cell)
}

// NewCompositor returns a compositor. A nil logger discards output.
func NewCompositor(dec Decoder, log *slog.Logger) *Compositor {
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Compositor{dec: dec, log: log}
}

// Compose fills buf with Background and then draws refs[i] into grid cell i.
//
// A source that fails to decode is logged and its cell left as background;
// the run continues. Errors are returned only when buf or g cannot hold
// the input.
func (c *Compositor) Compose(refs []source.ImageRef, g layout.Grid, buf canvas.Buffer) ([]Cell, error) {
	if len(refs) == 0 {
		return nil, ErrEmptyInput
	}
	if len(refs) > g.Cells() {
		return nil, fmt.Errorf("grid %dx%d has %d cells for %d images", g.Columns, g.Rows, g.Cells(), len(refs))
	}
	if buf.Width() != g.Width || buf.Height() != g.Height {
		return nil, fmt.Errorf("canvas %dx%d does not match grid %dx%d", buf.Width(), buf.Height(), g.Width, g.Height)
	}
	if int64(len(buf.Pix())) != g.BufferLen() {
		return nil, fmt.Errorf("%w: have %d bytes, want %d", ErrBufferSize, len(buf.Pix()), g.BufferLen())
	}

	canvas.Fill(buf, Background)

	cells := make([]Cell, 0, len(refs))
	for i, ref := range refs {
		cell := c.draw(i, ref, g, buf)
		cells = append(cells, cell)
		if c.OnCell != nil {
			c.OnCell(cell)
		}
	}
	return cells, nil
}

func (c *Compositor) draw(idx int, ref source.ImageRef, g layout.Grid, buf canvas.Buffer) Cell {
	cell := Cell{Index: idx, Ref: ref}

	img, err := c.dec.DecodeFile(ref.Path)
	if err != nil {
		cell.Err = &DecodeError{Path: ref.Path, Err: err}
		c.log.Warn("skipping unreadable image", "path", ref.Path, "index", idx, "err", err)
		return cell
	}

	b := img.Bounds()
	cell.SrcWidth, cell.SrcHeight = b.Dx(), b.Dy()
	cell.Placement = layout.ResolvePlacement(idx, cell.SrcWidth, cell.SrcHeight, g)
	p := cell.Placement

	resized := c.dec.Resize(img, p.Width, p.Height)
	Paste(buf.Pix(), buf.Width(), buf.Height(), resized, p.OffsetX, p.OffsetY)

	c.log.Debug("placed image",
		"path", ref.Path, "index", idx,
		"src", fmt.Sprintf("%dx%d", cell.SrcWidth, cell.SrcHeight),
		"scaled", fmt.Sprintf("%dx%d", p.Width, p.Height),
		"at", fmt.Sprintf("%d,%d", p.OffsetX, p.OffsetY))
	return cell
}

// Paste overwrites the w x h RGBA8 canvas pix with src, its top-left corner
// at (x0, y0). Pixels that would fall outside the canvas are dropped.
func Paste(pix []byte, w, h int, src *image.NRGBA, x0, y0 int) {
	if int64(len(pix)) < canvas.Size(w, h) {
		return
	}
	sr := src.Rect
	x1, y1 := 0, 0
	x2, y2 := sr.Dx(), sr.Dy()
	if x0 < 0 {
		x1 = -x0
	}
	if y0 < 0 {
		y1 = -y0
	}
	if x0+x2 > w {
		x2 = w - x0
	}
	if y0+y2 > h {
		y2 = h - y0
	}
	if x1 >= x2 || y1 >= y2 {
		return
	}

	stride := w * canvas.BytesPerPixel
	n := (x2 - x1) * canvas.BytesPerPixel
	for y := y1; y < y2; y++ {
		d := (y0+y)*stride + (x0+x1)*canvas.BytesPerPixel
		s := src.PixOffset(sr.Min.X+x1, sr.Min.Y+y)
		copy(pix[d:d+n], src.Pix[s:s+n])
	}
}
