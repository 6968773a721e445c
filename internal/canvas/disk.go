package canvas

import (
	"errors"
	"fmt"
	"os"

	mmap "github.com/edsrzf/mmap-go"
)

// DiskBuffer keeps the canvas in a memory-mapped temporary file, so peak
// resident memory stays bounded by what the kernel chooses to page in.
// The file is removed on Close.
type DiskBuffer struct {
	f      *os.File
	mapped mmap.MMap
	path   string
	w, h   int
}

// NewDisk creates a temporary file in dir (os.TempDir when empty), extends
// it to exactly w*h*4 bytes and maps it read-write. Pixels start zeroed.
// On error nothing is left behind.
func NewDisk(dir string, w, h int) (*DiskBuffer, error) {
	size := Size(w, h)
	if size <= 0 {
		return nil, fmt.Errorf("invalid canvas size %dx%d", w, h)
	}

	f, err := os.CreateTemp(dir, "collage-*.canvas")
	if err != nil {
		return nil, fmt.Errorf("create canvas file: %w", err)
	}
	path := f.Name()

	if err := f.Truncate(size); err != nil {
		f.Close()
		os.Remove(path)
		return nil, fmt.Errorf("extend canvas file to %d bytes: %w", size, err)
	}

	mapped, err := mmap.Map(f, mmap.RDWR, 0)
	if err != nil {
		f.Close()
		os.Remove(path)
		return nil, fmt.Errorf("map canvas file: %w", err)
	}

	return &DiskBuffer{f: f, mapped: mapped, path: path, w: w, h: h}, nil
}

func (b *DiskBuffer) Pix() []byte      { return b.mapped }
func (b *DiskBuffer) Width() int       { return b.w }
func (b *DiskBuffer) Height() int      { return b.h }
func (b *DiskBuffer) Backing() Backing { return Disk }

// Path returns the backing file path. The file no longer exists after Close.
func (b *DiskBuffer) Path() string { return b.path }

// Flush writes dirty pages of the mapping back to the file.
func (b *DiskBuffer) Flush() error {
	if b.mapped == nil {
		return ErrClosed
	}
	if err := b.mapped.Flush(); err != nil {
		return fmt.Errorf("flush canvas file: %w", err)
	}
	return nil
}

// Close unmaps, closes and deletes the backing file.
func (b *DiskBuffer) Close() error {
	var errs []error
	if b.mapped != nil {
		if err := b.mapped.Unmap(); err != nil {
			errs = append(errs, fmt.Errorf("unmap canvas: %w", err))
		}
		b.mapped = nil
	}
	if b.f != nil {
		if err := b.f.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close canvas file: %w", err))
		}
		b.f = nil
		if err := os.Remove(b.path); err != nil && !errors.Is(err, os.ErrNotExist) {
			errs = append(errs, fmt.Errorf("remove canvas file: %w", err))
		}
	}
	return errors.Join(errs...)
}
