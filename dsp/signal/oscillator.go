package signal

import (
	"fmt"
	"math"

	"github.com/cwbudde/compakt/dsp/core"
)

const defaultOscillatorFrequency = 440.0

// Oscillator is a sine phase accumulator. The phase is kept in cycles and
// wraps at 1.
type Oscillator struct {
	sampleRate float64
	freq       float64
	phase      float64
}

// NewOscillator returns a 440 Hz oscillator.
func NewOscillator(sampleRate float64) (*Oscillator, error) {
	if sampleRate <= 0 || math.IsNaN(sampleRate) || math.IsInf(sampleRate, 0) {
		return nil, fmt.Errorf("oscillator sample rate must be > 0: %f", sampleRate)
	}

	return &Oscillator{sampleRate: sampleRate, freq: defaultOscillatorFrequency}, nil
}

// SetFrequency sets the frequency in Hz, clamped to [0, Nyquist]. NaN is ignored.
func (o *Oscillator) SetFrequency(hz float64) {
	if math.IsNaN(hz) {
		return
	}
	o.freq = core.Clamp(hz, 0, o.sampleRate/2)
}

// Frequency returns the frequency in Hz.
func (o *Oscillator) Frequency() float64 { return o.freq }

// Phase returns the current phase in cycles, in [0, 1).
func (o *Oscillator) Phase() float64 { return o.phase }

// Reset returns the phase to zero.
func (o *Oscillator) Reset() { o.phase = 0 }

// Process emits the current value on both channels and advances one frame.
func (o *Oscillator) Process() core.Sample {
	v := math.Sin(2 * math.Pi * o.phase)

	o.phase += o.freq / o.sampleRate
	for o.phase >= 1 {
		o.phase--
	}

	return core.Mono(v)
}
