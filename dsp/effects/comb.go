package effects

import (
	"fmt"
	"math"

	"github.com/cwbudde/compakt/dsp/buffer"
	"github.com/cwbudde/compakt/dsp/core"
)

const (
	// CombMaxSeconds is the longest comb delay.
	CombMaxSeconds = 0.1

	defaultCombAmount = 0.01
)

// Comb is a feed-forward comb: output is input plus a delayed copy of the dry input.
type Comb struct {
	sampleRate float64
	ring       *buffer.Buffer
	cursor     buffer.Cursor

	amount float64
	frames int
}

// NewComb creates a comb filter with a CombMaxSeconds ring.
func NewComb(sampleRate float64) (*Comb, error) {
	if sampleRate <= 0 || math.IsNaN(sampleRate) || math.IsInf(sampleRate, 0) {
		return nil, fmt.Errorf("comb sample rate must be > 0: %f", sampleRate)
	}

	size := int(math.Floor(CombMaxSeconds * sampleRate))
	ring, err := buffer.New(size, core.Channels, sampleRate)
	if err != nil {
		return nil, fmt.Errorf("comb ring: %w", err)
	}

	c := &Comb{
		sampleRate: sampleRate,
		ring:       ring,
		cursor:     buffer.NewCursor(size),
	}
	c.SetAmount(defaultCombAmount)

	return c, nil
}

// SetAmount sets the delay as a fraction of CombMaxSeconds, clamped to [0, 1].
func (c *Comb) SetAmount(amount float64) {
	if math.IsNaN(amount) {
		return
	}
	c.amount = core.Clamp(amount, 0, 1)
	c.frames = int(math.Floor(c.amount * CombMaxSeconds * c.sampleRate))
}

// Amount returns the delay fraction.
func (c *Comb) Amount() float64 { return c.amount }

// DelayFrames returns the current delay in frames.
func (c *Comb) DelayFrames() int { return c.frames }

// Process returns in + tap and stores the dry input.
func (c *Comb) Process(in core.Sample) core.Sample {
	pos := c.cursor.Pos()
	out := in.Add(c.ring.Read(c.cursor.Offset(-c.frames)))
	c.ring.Write(pos, in)
	c.cursor.Advance()

	return out
}

// Reset clears comb state.
func (c *Comb) Reset() {
	c.ring.Zero()
	c.cursor.Seek(0)
}
