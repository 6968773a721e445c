package canvas

type memoryBuffer struct {
	pix  []byte
	w, h int
}

// NewMemory returns a heap-resident buffer. Pixels start zeroed.
func NewMemory(w, h int) Buffer {
	return &memoryBuffer{
		pix: make([]byte, Size(w, h)),
		w:   w,
		h:   h,
	}
}

func (b *memoryBuffer) Pix() []byte      { return b.pix }
func (b *memoryBuffer) Width() int       { return b.w }
func (b *memoryBuffer) Height() int      { return b.h }
func (b *memoryBuffer) Backing() Backing { return Memory }

func (b *memoryBuffer) Flush() error {
	if b.pix == nil {
		return ErrClosed
	}
	return nil
}

func (b *memoryBuffer) Close() error {
	b.pix = nil
	return nil
}
