package collage

import (
	"errors"
	"fmt"

	"github.com/AnyUserName/collage-cli/internal/layout"
)

var (
	// ErrEmptyInput means no qualifying images were found. It is not a
	// failure: the run ends without writing an output file.
	ErrEmptyInput = layout.ErrEmptyInput

	// ErrBufferSize means the canvas byte length does not match its
	// recorded dimensions, e.g. a truncated backing file.
	ErrBufferSize = errors.New("canvas buffer size mismatch")
)

// DiscoveryError reports an unreadable input directory. Fatal.
type DiscoveryError struct {
	Path string
	Err  error
}

func (e *DiscoveryError) Error() string {
	return fmt.Sprintf("discover images in %s: %v", e.Path, e.Err)
}

func (e *DiscoveryError) Unwrap() error { return e.Err }

// DecodeError reports one source image that could not be read or decoded.
// The compositor recovers from it and leaves the cell empty.
type DecodeError struct {
	Path string
	Err  error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode %s: %v", e.Path, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// EncodeError reports a failure to persist the collage. Fatal.
type EncodeError struct {
	Path string
	Err  error
}

func (e *EncodeError) Error() string {
	return fmt.Sprintf("write collage %s: %v", e.Path, e.Err)
}

func (e *EncodeError) Unwrap() error { return e.Err }
