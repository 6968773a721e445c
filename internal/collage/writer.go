package collage

import (
	"fmt"
	"image"

	"github.com/AnyUserName/collage-cli/internal/canvas"
	"github.com/AnyUserName/collage-cli/internal/encoder"
	"github.com/google/renameio"
)

// Writer persists a finished canvas.
type Writer struct {
	enc  encoder.Encoder
	opts encoder.Options
}

// NewWriter returns a writer encoding with enc.
func NewWriter(enc encoder.Encoder, opts encoder.Options) *Writer {
	return &Writer{enc: enc, opts: opts}
}

// Format returns the output format name.
func (w *Writer) Format() string { return w.enc.Format() }

// Write encodes buf to outputPath and releases buf, whatever the outcome.
// The output appears atomically: on failure no file is left at outputPath
// and any previous file there is untouched.
func (w *Writer) Write(buf canvas.Buffer, outputPath string) (err error) {
	defer func() {
		if cerr := buf.Close(); cerr != nil && err == nil {
			err = &EncodeError{Path: outputPath, Err: fmt.Errorf("release canvas: %w", cerr)}
		}
	}()

	width, height := buf.Width(), buf.Height()
	pix := buf.Pix()
	if want := canvas.Size(width, height); int64(len(pix)) != want {
		return &EncodeError{
			Path: outputPath,
			Err:  fmt.Errorf("%w: have %d bytes, want %d for %dx%d", ErrBufferSize, len(pix), want, width, height),
		}
	}
	if err := buf.Flush(); err != nil {
		return &EncodeError{Path: outputPath, Err: err}
	}

	img := &image.NRGBA{
		Pix:    pix,
		Stride: width * canvas.BytesPerPixel,
		Rect:   image.Rect(0, 0, width, height),
	}

	pending, err := renameio.TempFile("", outputPath)
	if err != nil {
		return &EncodeError{Path: outputPath, Err: err}
	}
	defer pending.Cleanup()

	if err := w.enc.Encode(pending, img, w.opts); err != nil {
		return &EncodeError{Path: outputPath, Err: fmt.Errorf("encode %s: %w", w.enc.Format(), err)}
	}
	if err := pending.Chmod(0o644); err != nil {
		return &EncodeError{Path: outputPath, Err: err}
	}
	if err := pending.CloseAtomicallyReplace(); err != nil {
		return &EncodeError{Path: outputPath, Err: err}
	}
	return nil
}
