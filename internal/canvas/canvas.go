// Package canvas provides the RGBA8 pixel store a collage is composited into.
//
// Two backings exist: a heap slice (Memory) and a memory-mapped temporary
// file (Disk). Both expose the same random-access byte view, so compositing
// code never knows which one it is writing to.
package canvas

import (
	"errors"
	"fmt"
	"strings"
)

// BytesPerPixel is the width of one straight RGBA8 pixel.
const BytesPerPixel = 4

// ErrClosed is returned by Flush after the buffer has been released.
var ErrClosed = errors.New("canvas buffer is closed")

// Buffer is a fixed-size RGBA8 pixel store of Width*Height*4 bytes.
type Buffer interface {
	// Pix returns the pixel bytes, row-major with stride Width*4.
	// The slice is invalid after Close.
	Pix() []byte

	Width() int
	Height() int

	// Backing reports which store holds the pixels.
	Backing() Backing

	// Flush forces pending writes to stable storage. It is a no-op for
	// heap buffers.
	Flush() error

	// Close releases the store. It is safe to call more than once.
	Close() error
}

// Backing selects the pixel store.
type Backing string

const (
	Auto   Backing = "auto"
	Memory Backing = "memory"
	Disk   Backing = "disk"
)

// ParseBacking parses a backing name, case-insensitively.
func ParseBacking(s string) (Backing, error) {
	switch b := Backing(strings.ToLower(strings.TrimSpace(s))); b {
	case "":
		return Auto, nil
	case Auto, Memory, Disk:
		return b, nil
	default:
		return "", fmt.Errorf("unknown canvas backing %q (want auto, memory or disk)", s)
	}
}

// DefaultThreshold is the canvas size above which Auto switches to Disk.
const DefaultThreshold int64 = 256 << 20

// Size returns the byte length of a w x h canvas.
func Size(w, h int) int64 {
	return int64(w) * int64(h) * BytesPerPixel
}

// Resolve picks the concrete backing for a canvas of the given size.
func Resolve(b Backing, size, threshold int64) Backing {
	if b != Auto && b != "" {
		return b
	}
	if threshold <= 0 {
		threshold = DefaultThreshold
	}
	if size > threshold {
		return Disk
	}
	return Memory
}

// New allocates a w x h buffer. Auto resolves to Disk when the canvas is
// larger than threshold bytes (DefaultThreshold when threshold <= 0).
func New(b Backing, w, h int, threshold int64) (Buffer, error) {
	if w < 1 || h < 1 {
		return nil, fmt.Errorf("invalid canvas size %dx%d", w, h)
	}
	switch Resolve(b, Size(w, h), threshold) {
	case Memory:
		return NewMemory(w, h), nil
	case Disk:
		return NewDisk("", w, h)
	default:
		return nil, fmt.Errorf("unknown canvas backing %q", b)
	}
}

// Fill sets every pixel of buf to c (R, G, B, A).
func Fill(buf Buffer, c [4]byte) {
	pix := buf.Pix()
	if len(pix) < BytesPerPixel {
		return
	}
	copy(pix, c[:])
	// Doubling copy: each pass duplicates everything written so far.
	for n := BytesPerPixel; n < len(pix); n *= 2 {
		copy(pix[n:], pix[:n])
	}
}
