package core

// Channels is the fixed channel count of every signal path.
const Channels = 2

// Sample is one stereo frame. The zero value is silence.
type Sample struct {
	L, R float64
}

// Mono returns a Sample with v on both channels.
func Mono(v float64) Sample {
	return Sample{L: v, R: v}
}

// Stereo returns a Sample from separate channel values.
func Stereo(l, r float64) Sample {
	return Sample{L: l, R: r}
}

// At returns channel c (0 left, anything else right).
func (s Sample) At(c int) float64 {
	if c == 0 {
		return s.L
	}

	return s.R
}

// With returns s with channel c replaced by v.
func (s Sample) With(c int, v float64) Sample {
	if c == 0 {
		s.L = v
	} else {
		s.R = v
	}

	return s
}

// Add returns s + o per channel.
func (s Sample) Add(o Sample) Sample { return Sample{s.L + o.L, s.R + o.R} }

// Sub returns s - o per channel.
func (s Sample) Sub(o Sample) Sample { return Sample{s.L - o.L, s.R - o.R} }

// Mul returns s * o per channel.
func (s Sample) Mul(o Sample) Sample { return Sample{s.L * o.L, s.R * o.R} }

// Div returns s / o per channel.
func (s Sample) Div(o Sample) Sample { return Sample{s.L / o.L, s.R / o.R} }

// AddS adds a scalar to both channels.
func (s Sample) AddS(v float64) Sample { return Sample{s.L + v, s.R + v} }

// SubS subtracts a scalar from both channels.
func (s Sample) SubS(v float64) Sample { return Sample{s.L - v, s.R - v} }

// MulS scales both channels.
func (s Sample) MulS(v float64) Sample { return Sample{s.L * v, s.R * v} }

// DivS divides both channels by a scalar.
func (s Sample) DivS(v float64) Sample { return Sample{s.L / v, s.R / v} }

// Sum returns L + R.
func (s Sample) Sum() float64 { return s.L + s.R }

// Clip limits both channels to [min, max].
func (s Sample) Clip(min, max float64) Sample {
	return Sample{Clamp(s.L, min, max), Clamp(s.R, min, max)}
}

// Wrap folds both channels into [min, max] by modulo.
func (s Sample) Wrap(min, max float64) Sample {
	return Sample{Wrap(s.L, min, max), Wrap(s.R, min, max)}
}

// LinComb returns a*x + b*y per channel.
func LinComb(a Sample, x float64, b Sample, y float64) Sample {
	return Sample{a.L*x + b.L*y, a.R*x + b.R*y}
}
