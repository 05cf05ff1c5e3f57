package playback

import (
	"math"

	"github.com/cwbudde/compakt/dsp/buffer"
	"github.com/cwbudde/compakt/dsp/core"
)

// Sampler plays a region of a borrowed buffer at a variable rate.
type Sampler struct {
	buf     *buffer.Buffer
	region  region
	rate    float64
	pos     float64
	forward bool
	loop    bool
	active  bool
}

// NewSampler returns an idle forward looping sampler at rate 1 over the
// whole buffer.
func NewSampler(buf *buffer.Buffer) *Sampler {
	return &Sampler{
		buf:     buf,
		region:  fullRegion(),
		rate:    1,
		forward: true,
		loop:    true,
	}
}

// SetBuffer swaps the borrowed buffer. Playback state is kept; call
// Trigger to restart on the new buffer.
func (s *Sampler) SetBuffer(b *buffer.Buffer) { s.buf = b }

// Buffer returns the borrowed buffer.
func (s *Sampler) Buffer() *buffer.Buffer { return s.buf }

// SetRegion sets the normalized play range. Bounds are clamped to [0, 1]
// and swapped if reversed.
func (s *Sampler) SetRegion(start, end float64) { s.region.set(start, end) }

// SetSpan sets the range from a start and a duration, both normalized.
func (s *Sampler) SetSpan(start, dur float64) { s.region.span(start, dur) }

// Region returns the normalized play range.
func (s *Sampler) Region() (float64, float64) { return s.region.start, s.region.end }

// SetRate sets the playback rate (1 is native speed). Negative values are
// clamped to 0 and NaN is ignored; use SetForward for direction.
func (s *Sampler) SetRate(rate float64) {
	if math.IsNaN(rate) {
		return
	}
	s.rate = math.Max(rate, 0)
}

// Rate returns the playback rate.
func (s *Sampler) Rate() float64 { return s.rate }

// SetForward selects the play direction.
func (s *Sampler) SetForward(v bool) { s.forward = v }

// SetLoop selects looping or one-shot playback.
func (s *Sampler) SetLoop(v bool) { s.loop = v }

// Active reports whether the sampler is playing.
func (s *Sampler) Active() bool { return s.active }

// Position returns the fractional frame position.
func (s *Sampler) Position() float64 { return s.pos }

// Trigger seeks to the leading edge of the region for the current
// direction and starts playback. It is a no-op without a buffer.
func (s *Sampler) Trigger() {
	if s.buf.Empty() {
		return
	}

	start, end := s.region.frames(s.buf.Len())
	if s.forward {
		s.pos = start
	} else {
		s.pos = end
	}
	s.active = true
}

// Stop halts playback.
func (s *Sampler) Stop() { s.active = false }

// Process returns the frame at the current position and advances.
func (s *Sampler) Process() core.Sample {
	if s.buf.Empty() || !s.active {
		return core.Sample{}
	}

	out := s.buf.Read(int(math.Floor(s.pos)))

	step := s.buf.RateScale(s.rate)
	if !s.forward {
		step = -step
	}
	s.pos += step

	start, end := s.region.frames(s.buf.Len())
	switch {
	case s.forward && s.pos > end:
		if s.loop {
			s.pos = start
		} else {
			s.active = false
		}
	case !s.forward && s.pos < start:
		if s.loop {
			s.pos = end
		} else {
			s.active = false
		}
	}

	return out
}
