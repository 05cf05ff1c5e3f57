package biquad

import "github.com/cwbudde/compakt/dsp/core"

// Coefficients of one normalized second-order section (a0 = 1):
//
//	y[n] = B0*x[n] + B1*x[n-1] + B2*x[n-2] - A1*y[n-1] - A2*y[n-2]
type Coefficients struct {
	B0, B1, B2 float64
	A1, A2     float64
}

// Section is one channel of Direct Form I history. Swapping Coefficients
// keeps the history, so cutoff sweeps do not click.
type Section struct {
	Coefficients

	x1, x2 float64
	y1, y2 float64
}

// NewSection returns a Section with zero history.
func NewSection(c Coefficients) *Section {
	return &Section{Coefficients: c}
}

// ProcessSample filters one sample. Output history below the denormal
// range is stored as zero, so a silent input settles to exact silence.
func (s *Section) ProcessSample(x float64) float64 {
	y := s.B0*x + s.B1*s.x1 + s.B2*s.x2 - s.A1*s.y1 - s.A2*s.y2

	s.x2, s.x1 = s.x1, x
	s.y2, s.y1 = s.y1, core.FlushDenormals(y)

	return y
}

// Reset clears the history.
func (s *Section) Reset() {
	s.x1, s.x2, s.y1, s.y2 = 0, 0, 0, 0
}

// State returns the history as [x1, x2, y1, y2].
func (s *Section) State() [4]float64 {
	return [4]float64{s.x1, s.x2, s.y1, s.y2}
}
