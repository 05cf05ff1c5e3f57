package pitch

import (
	"fmt"
	"math"

	"github.com/cwbudde/compakt/dsp/core"
	"github.com/cwbudde/compakt/dsp/delay"
	"github.com/cwbudde/compakt/dsp/interp"
)

const defaultDualTapLength = 5120

// DualTap is a time-domain pitch shifter. Each channel feeds a delay line
// read by two taps half a line apart; both taps drift by the pitch
// increment per frame and a triangular crossfade hides each tap's jump
// when it wraps.
type DualTap struct {
	lines  [core.Channels]*delay.Line
	peek   [core.Channels]func(int) float64
	taps   [core.Channels][2]float64
	mode   interp.Mode
	pitch  float64
	active bool
}

// DualTapOption configures a DualTap.
type DualTapOption func(*dualTapConfig)

type dualTapConfig struct {
	length int
	mode   interp.Mode
}

// WithLineLength sets the delay line length in frames (default 5120).
func WithLineLength(frames int) DualTapOption {
	return func(c *dualTapConfig) {
		c.length = frames
	}
}

// WithInterpolation sets how fractional tap positions are read. The
// default truncates.
func WithInterpolation(m interp.Mode) DualTapOption {
	return func(c *dualTapConfig) {
		c.mode = m
	}
}

// NewDualTap returns an active shifter at zero pitch increment.
func NewDualTap(opts ...DualTapOption) (*DualTap, error) {
	cfg := dualTapConfig{length: defaultDualTapLength}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	if cfg.length < 2 {
		return nil, fmt.Errorf("dual tap line length must be >= 2: %d", cfg.length)
	}

	d := &DualTap{active: true, mode: cfg.mode}
	for c := range core.Channels {
		line, err := delay.New(cfg.length)
		if err != nil {
			return nil, fmt.Errorf("dual tap: %w", err)
		}
		d.lines[c] = line
		d.peek[c] = line.Peek
		d.taps[c][1] = float64(cfg.length / 2)
	}

	return d, nil
}

// SetPitch sets the per-frame tap drift in [-1, 1]. Positive drifts raise
// the pitch. NaN is ignored.
func (d *DualTap) SetPitch(increment float64) {
	if math.IsNaN(increment) {
		return
	}
	d.pitch = core.Clamp(increment, -1, 1)
}

// Pitch returns the tap drift.
func (d *DualTap) Pitch() float64 { return d.pitch }

// SetActive enables processing. An inactive shifter passes input through
// and stops feeding its lines.
func (d *DualTap) SetActive(v bool) { d.active = v }

// Active reports whether the shifter processes input.
func (d *DualTap) Active() bool { return d.active }

// Interpolation returns the tap read mode.
func (d *DualTap) Interpolation() interp.Mode { return d.mode }

// Len returns the delay line length.
func (d *DualTap) Len() int { return d.lines[0].Len() }

// Process shifts one frame.
func (d *DualTap) Process(in core.Sample) core.Sample {
	if !d.active {
		return in
	}

	size := float64(d.Len())
	half := size / 2

	var out core.Sample
	for c := range core.Channels {
		line := d.lines[c]
		peek := d.peek[c]
		taps := &d.taps[c]

		taps[0] = wrapTap(taps[0]+d.pitch, size)
		taps[1] = wrapTap(taps[0]+half, size)

		fade := math.Abs((taps[0] - half) / half)
		v := (1-fade)*d.mode.Read(peek, taps[0]) + fade*d.mode.Read(peek, taps[1])

		out = out.With(c, v)
		line.Write(in.At(c))
	}

	return out
}

// Reset clears the lines and restores the initial tap positions.
func (d *DualTap) Reset() {
	half := float64(d.Len() / 2)
	for c := range core.Channels {
		d.lines[c].Reset()
		d.taps[c] = [2]float64{0, half}
	}
}

func wrapTap(v, size float64) float64 {
	for v >= size {
		v -= size
	}
	for v < 0 {
		v += size
	}
	return v
}
