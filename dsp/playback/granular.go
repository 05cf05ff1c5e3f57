package playback

import (
	"math"

	"github.com/cwbudde/compakt/dsp/buffer"
	"github.com/cwbudde/compakt/dsp/core"
)

const defaultGrainSize = 256

// Granular reads grains from a borrowed buffer. A real-time cursor sweeps
// the whole buffer at its native rate; a grain cursor plays the region at
// the configured rate and jumps to the real-time cursor every grain.
type Granular struct {
	buf     *buffer.Buffer
	region  region
	rate    float64
	pos     float64
	gpos    float64
	size    int
	t       int
	forward bool
}

// GranularOption configures a Granular voice.
type GranularOption func(*Granular)

// WithGrainSize sets the grain length in frames (at least 1).
func WithGrainSize(frames int) GranularOption {
	return func(g *Granular) {
		g.SetGrainSize(frames)
	}
}

// NewGranular returns a forward voice at rate 1 with 256-frame grains.
func NewGranular(buf *buffer.Buffer, opts ...GranularOption) *Granular {
	g := &Granular{
		buf:     buf,
		region:  fullRegion(),
		rate:    1,
		size:    defaultGrainSize,
		forward: true,
	}

	for _, opt := range opts {
		if opt != nil {
			opt(g)
		}
	}

	return g
}

// SetBuffer swaps the borrowed buffer.
func (g *Granular) SetBuffer(b *buffer.Buffer) { g.buf = b }

// SetRegion sets the normalized grain range, clamped and ordered.
func (g *Granular) SetRegion(start, end float64) { g.region.set(start, end) }

// SetSpan sets the grain range from a start and a duration.
func (g *Granular) SetSpan(start, dur float64) { g.region.span(start, dur) }

// SetRate sets the grain playback rate, clamped at 0. NaN is ignored.
func (g *Granular) SetRate(rate float64) {
	if math.IsNaN(rate) {
		return
	}
	g.rate = math.Max(rate, 0)
}

// SetForward selects the grain direction.
func (g *Granular) SetForward(v bool) { g.forward = v }

// SetGrainSize sets the re-sync period in frames (at least 1).
func (g *Granular) SetGrainSize(frames int) { g.size = max(frames, 1) }

// GrainSize returns the re-sync period in frames.
func (g *Granular) GrainSize() int { return g.size }

// Position returns the real-time cursor.
func (g *Granular) Position() float64 { return g.pos }

// GrainPosition returns the grain cursor.
func (g *Granular) GrainPosition() float64 { return g.gpos }

// Process returns the frame under the grain cursor and advances both cursors.
func (g *Granular) Process() core.Sample {
	if g.buf.Empty() {
		return core.Sample{}
	}

	out := g.buf.Read(int(math.Floor(g.gpos)))
	n := float64(g.buf.Len())

	g.pos += g.buf.RateScale(1)
	for g.pos >= n {
		g.pos -= n
	}

	step := g.buf.RateScale(g.rate)
	if !g.forward {
		step = -step
	}
	g.gpos += step

	start, end := g.region.frames(g.buf.Len())
	switch {
	case g.forward && g.gpos > end:
		g.gpos = start
	case !g.forward && g.gpos < start:
		g.gpos = end
	}

	g.t++
	if g.t >= g.size {
		g.gpos = g.pos
		g.t = 0
	}

	return out
}
