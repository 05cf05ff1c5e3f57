package pitch

import (
	"math"

	"github.com/cwbudde/compakt/dsp/core"
)

// Bin is the tracked state of one frequency bin. Frequency is measured in
// bins, so an exactly centered partial has Frequency equal to its index.
type Bin struct {
	Phase     float64
	Magnitude float64
	Frequency float64
}

// Spectral is the persistent phase-vocoder state of one channel.
//
// Analysis reflects the most recent input frame and keeps its phase for
// the next phase difference. Synthesis is rebuilt by every Shift and keeps
// the accumulated output phase. Both survive between hops.
type Spectral struct {
	Analysis  []Bin
	Synthesis []Bin

	frameSize int
}

// NewSpectral returns zeroed state for frames of frameSize samples.
func NewSpectral(frameSize int) *Spectral {
	bins := frameSize/2 + 1
	return &Spectral{
		Analysis:  make([]Bin, bins),
		Synthesis: make([]Bin, bins),
		frameSize: frameSize,
	}
}

// Bins returns the number of tracked bins, frameSize/2 + 1.
func (sp *Spectral) Bins() int { return len(sp.Analysis) }

// Analyze converts the first Bins() values of spec to magnitude and
// fractional-bin frequency, using the phase advance since the previous
// frame hop samples ago.
func (sp *Spectral) Analyze(spec []complex128, hop int) {
	expected := 2 * math.Pi * float64(hop) / float64(sp.frameSize)
	toBins := float64(sp.frameSize) / (2 * math.Pi * float64(hop))

	for k := range sp.Analysis {
		a := &sp.Analysis[k]
		re, im := real(spec[k]), imag(spec[k])
		phase := math.Atan2(im, re)

		diff := core.WrapPhase(phase - a.Phase - float64(k)*expected)

		a.Phase = phase
		a.Magnitude = magnitude(re, im)
		a.Frequency = float64(k) + diff*toBins
	}
}

// Shift remaps analysis bins into synthesis bins by factor. Each source
// bin lands on round(k*factor); magnitudes add up on collisions and the
// last source to land sets the frequency. Unreached bins stay silent.
func (sp *Spectral) Shift(factor float64) {
	for k := range sp.Synthesis {
		sp.Synthesis[k].Magnitude = 0
		sp.Synthesis[k].Frequency = 0
	}

	last := len(sp.Synthesis) - 1
	for k, a := range sp.Analysis {
		dst := int(math.Floor(float64(k)*factor + 0.5))
		if dst < 0 || dst > last {
			continue
		}
		sp.Synthesis[dst].Magnitude += a.Magnitude
		sp.Synthesis[dst].Frequency = a.Frequency * factor
	}
}

// Synthesize advances every synthesis phase by one hop at its tracked
// frequency and writes the full Hermitian spectrum of frameSize values
// into spec, ready for a real inverse transform.
func (sp *Spectral) Synthesize(spec []complex128, hop int) {
	expected := 2 * math.Pi * float64(hop) / float64(sp.frameSize)

	for k := range sp.Synthesis {
		s := &sp.Synthesis[k]
		bin := float64(k)
		s.Phase = core.WrapPhase(s.Phase + (s.Frequency-bin)*expected + bin*expected)

		sin, cos := math.Sincos(s.Phase)
		spec[k] = complex(s.Magnitude*cos, s.Magnitude*sin)
	}

	half := sp.frameSize / 2
	spec[0] = complex(real(spec[0]), 0)
	spec[half] = complex(real(spec[half]), 0)
	for k := 1; k < half; k++ {
		v := spec[k]
		spec[sp.frameSize-k] = complex(real(v), -imag(v))
	}
}

// Reset zeroes both bin arrays.
func (sp *Spectral) Reset() {
	clear(sp.Analysis)
	clear(sp.Synthesis)
}
