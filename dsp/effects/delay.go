package effects

import (
	"fmt"
	"math"

	"github.com/cwbudde/compakt/dsp/buffer"
	"github.com/cwbudde/compakt/dsp/core"
)

const (
	defaultDelayMix        = 0.5
	defaultDelayMaxSeconds = 2.0
)

// Delay is a stereo echo whose ring receives the crossfade of input and tap,
// so the mix amount also sets how much of each echo regenerates.
type Delay struct {
	sampleRate float64
	ring       *buffer.Buffer
	cursor     buffer.Cursor

	seconds float64
	frames  int
	mix     float64

	tap core.Sample
}

// NewDelay creates a delay able to reach maxSeconds at sampleRate.
// A maxSeconds of zero selects two seconds.
func NewDelay(sampleRate, maxSeconds float64) (*Delay, error) {
	if sampleRate <= 0 || math.IsNaN(sampleRate) || math.IsInf(sampleRate, 0) {
		return nil, fmt.Errorf("delay sample rate must be > 0: %f", sampleRate)
	}
	if maxSeconds == 0 {
		maxSeconds = defaultDelayMaxSeconds
	}
	if maxSeconds < 0 || math.IsNaN(maxSeconds) || math.IsInf(maxSeconds, 0) {
		return nil, fmt.Errorf("delay max time must be > 0: %f", maxSeconds)
	}

	size := int(math.Floor(maxSeconds * sampleRate))
	ring, err := buffer.New(size, core.Channels, sampleRate)
	if err != nil {
		return nil, fmt.Errorf("delay ring: %w", err)
	}

	return &Delay{
		sampleRate: sampleRate,
		ring:       ring,
		cursor:     buffer.NewCursor(size),
		mix:        defaultDelayMix,
	}, nil
}

// SetTime sets the tap distance in seconds, clamped to [0, MaxTime()].
func (d *Delay) SetTime(seconds float64) {
	if math.IsNaN(seconds) {
		return
	}
	d.seconds = core.Clamp(seconds, 0, d.MaxTime())
	d.frames = int(math.Floor(d.seconds * d.sampleRate))
}

// SetMix sets the input weight of the crossfade, clamped to [0, 1].
func (d *Delay) SetMix(mix float64) {
	if math.IsNaN(mix) {
		return
	}
	d.mix = core.Clamp(mix, 0, 1)
}

// Process reads the tap, writes input*mix + tap*(1-mix) back into the ring
// and returns that crossfade.
func (d *Delay) Process(in core.Sample) core.Sample {
	pos := d.cursor.Pos()
	d.tap = d.ring.Read(d.cursor.Offset(-d.frames))

	out := core.LinComb(in, d.mix, d.tap, 1-d.mix)
	d.ring.Write(pos, out)
	d.cursor.Advance()

	return out
}

// Tap returns the echo read by the last Process call.
func (d *Delay) Tap() core.Sample { return d.tap }

// Reset clears delay state.
func (d *Delay) Reset() {
	d.ring.Zero()
	d.cursor.Seek(0)
	d.tap = core.Sample{}
}

// Time returns delay time in seconds.
func (d *Delay) Time() float64 { return d.seconds }

// MaxTime returns the longest reachable delay in seconds.
func (d *Delay) MaxTime() float64 { return float64(d.ring.Len()) / d.sampleRate }

// Mix returns the input weight in [0, 1].
func (d *Delay) Mix() float64 { return d.mix }
