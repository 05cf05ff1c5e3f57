package delay

import "fmt"

// Line is a mono circular delay line with a monotonically advancing write head.
type Line struct {
	buffer   []float64
	writePos int
}

// New returns a delay line of fixed size.
func New(size int) (*Line, error) {
	if size <= 0 {
		return nil, fmt.Errorf("delay size must be > 0: %d", size)
	}
	return &Line{buffer: make([]float64, size)}, nil
}

// Len returns internal buffer size.
func (d *Line) Len() int {
	return len(d.buffer)
}

// Pos returns the slot the next Write will fill.
func (d *Line) Pos() int {
	return d.writePos
}

// Write writes one sample.
func (d *Line) Write(sample float64) {
	d.buffer[d.writePos] = sample
	d.writePos++
	if d.writePos >= len(d.buffer) {
		d.writePos = 0
	}
}

// Read reads an integer delay in samples; delay 1 is the latest write.
func (d *Line) Read(delay int) float64 {
	return d.Peek(-delay)
}

// Peek reads the slot offset positions from the write head, wrapped.
// Offsets in [0, Len()) see the oldest samples first.
func (d *Line) Peek(offset int) float64 {
	size := len(d.buffer)
	if size == 0 {
		return 0
	}
	i := (d.writePos + offset) % size
	if i < 0 {
		i += size
	}
	return d.buffer[i]
}

// Reset clears line state.
func (d *Line) Reset() {
	for i := range d.buffer {
		d.buffer[i] = 0
	}
	d.writePos = 0
}
