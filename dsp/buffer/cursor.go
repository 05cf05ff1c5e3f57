package buffer

// Cursor is an integer ring position that wraps modulo its size.
type Cursor struct {
	pos  int
	size int
}

// NewCursor returns a cursor at 0 over a ring of the given size.
func NewCursor(size int) Cursor {
	if size < 1 {
		size = 1
	}
	return Cursor{size: size}
}

// Pos returns the current position.
func (c *Cursor) Pos() int { return c.pos }

// Size returns the ring size.
func (c *Cursor) Size() int { return c.size }

// Advance moves one step forward, wrapping at the ring size.
func (c *Cursor) Advance() {
	c.pos++
	if c.pos >= c.size {
		c.pos = 0
	}
}

// Step moves n positions (n may be negative).
func (c *Cursor) Step(n int) {
	c.pos = c.Offset(n)
}

// Seek moves to p, wrapped into the ring.
func (c *Cursor) Seek(p int) {
	c.pos = wrap(p, c.size)
}

// Offset returns the wrapped position d steps from the cursor without moving it.
func (c *Cursor) Offset(d int) int {
	return wrap(c.pos+d, c.size)
}

func wrap(p, size int) int {
	if size <= 0 {
		return 0
	}
	p %= size
	if p < 0 {
		p += size
	}
	return p
}
