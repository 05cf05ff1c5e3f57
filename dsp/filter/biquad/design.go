package biquad

import "math"

// Mode selects the filter response.
type Mode int

const (
	LowPass Mode = iota
	HighPass
	BandPass
)

const (
	// MinFrequency is the lowest accepted cutoff in Hz.
	MinFrequency = 10.0
	// MinResonance is the lowest accepted Q.
	MinResonance = 0.001
)

// String returns a short mode label.
func (m Mode) String() string {
	switch m {
	case LowPass:
		return "lpf"
	case HighPass:
		return "hpf"
	case BandPass:
		return "bpf"
	default:
		return "unknown"
	}
}

// ModeFromIndex maps 0, 1, 2 to LowPass, HighPass, BandPass, clamping
// anything outside that range.
func ModeFromIndex(i int) Mode {
	switch {
	case i <= 0:
		return LowPass
	case i == 1:
		return HighPass
	default:
		return BandPass
	}
}

// Design returns normalized RBJ coefficients for mode at freq Hz with
// resonance q. freq is floored at MinFrequency and q at MinResonance.
// The band-pass numerator is scaled by q (constant skirt gain).
func Design(mode Mode, freq, q, sampleRate float64) Coefficients {
	freq = math.Max(freq, MinFrequency)
	q = math.Max(q, MinResonance)

	w0 := 2 * math.Pi * freq / sampleRate
	alpha := math.Sin(w0) / (2 * q)
	cosW0 := math.Cos(w0)

	a0 := 1 + alpha
	a1 := -2 * cosW0
	a2 := 1 - alpha

	var b0, b1, b2 float64
	switch mode {
	case HighPass:
		b0 = (1 + cosW0) * 0.5
		b1 = -(1 + cosW0)
		b2 = b0
	case BandPass:
		b0 = q * alpha
		b1 = 0
		b2 = -q * alpha
	default:
		b0 = (1 - cosW0) * 0.5
		b1 = 1 - cosW0
		b2 = b0
	}

	return Coefficients{
		B0: b0 / a0,
		B1: b1 / a0,
		B2: b2 / a0,
		A1: a1 / a0,
		A2: a2 / a0,
	}
}
