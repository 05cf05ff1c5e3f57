package biquad

import (
	"fmt"
	"math"

	"github.com/cwbudde/compakt/dsp/core"
)

const (
	defaultFilterFrequency = 1000.0
	defaultFilterResonance = 1.0
)

// Filter is a stereo biquad with independent history per channel.
type Filter struct {
	sampleRate float64
	mode       Mode
	freq       float64
	q          float64

	coeffs   Coefficients
	sections [core.Channels]Section
	designs  int
}

// NewFilter returns a low-pass at 1 kHz with Q 1.
func NewFilter(sampleRate float64) (*Filter, error) {
	if sampleRate <= 0 || math.IsNaN(sampleRate) || math.IsInf(sampleRate, 0) {
		return nil, fmt.Errorf("filter sample rate must be > 0: %f", sampleRate)
	}

	f := &Filter{
		sampleRate: sampleRate,
		mode:       LowPass,
		freq:       math.Min(defaultFilterFrequency, maxFrequency(sampleRate)),
		q:          defaultFilterResonance,
	}
	f.update()

	return f, nil
}

// Set changes mode and frequency together.
func (f *Filter) Set(mode Mode, freq float64) {
	freq = math.Min(sanitize(freq, MinFrequency), maxFrequency(f.sampleRate))
	if mode == f.mode && freq == f.freq {
		return
	}
	f.mode, f.freq = mode, freq
	f.update()
}

// SetMode changes the response type.
func (f *Filter) SetMode(mode Mode) { f.Set(mode, f.freq) }

// SetFrequency changes the cutoff, floored at MinFrequency and kept below Nyquist.
func (f *Filter) SetFrequency(freq float64) { f.Set(f.mode, freq) }

// SetResonance changes Q, floored at MinResonance.
func (f *Filter) SetResonance(q float64) {
	q = sanitize(q, MinResonance)
	if q == f.q {
		return
	}
	f.q = q
	f.update()
}

// Process filters one stereo frame.
func (f *Filter) Process(in core.Sample) core.Sample {
	return core.Stereo(
		f.sections[0].ProcessSample(in.L),
		f.sections[1].ProcessSample(in.R),
	)
}

// Reset clears both channel histories.
func (f *Filter) Reset() {
	for i := range f.sections {
		f.sections[i].Reset()
	}
}

// Mode returns the response type.
func (f *Filter) Mode() Mode { return f.mode }

// Frequency returns the cutoff in Hz.
func (f *Filter) Frequency() float64 { return f.freq }

// Resonance returns Q.
func (f *Filter) Resonance() float64 { return f.q }

// Coefficients returns the active coefficients.
func (f *Filter) Coefficients() Coefficients { return f.coeffs }

// MagnitudeDB returns the response of the active coefficients at freqHz.
func (f *Filter) MagnitudeDB(freqHz float64) float64 {
	return f.coeffs.MagnitudeDB(freqHz, f.sampleRate)
}

func (f *Filter) update() {
	f.designs++
	f.coeffs = Design(f.mode, f.freq, f.q, f.sampleRate)
	for i := range f.sections {
		f.sections[i].Coefficients = f.coeffs
	}
}

// maxFrequency keeps the cutoff just below Nyquist.
func maxFrequency(sampleRate float64) float64 {
	return sampleRate * 0.5 * 0.999
}

func sanitize(v, floor float64) float64 {
	if math.IsNaN(v) || v < floor {
		return floor
	}
	return v
}
