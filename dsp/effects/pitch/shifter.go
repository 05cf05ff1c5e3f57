package pitch

import (
	"fmt"
	"math"
	"sync/atomic"

	algofft "github.com/MeKo-Christian/algo-fft"
	"github.com/cwbudde/algo-vecmath"
	"github.com/cwbudde/compakt/dsp/core"
	"github.com/cwbudde/compakt/dsp/window"
)

const (
	defaultShifterFrameSize = 1024
	defaultShifterHop       = 256
	defaultOctaveRange      = 4.0
	minShifterFrameSize     = 64
	maxOctaveRange          = 8.0

	envelopeDecay = 0.9
	envelopeScale = 1.0 / 16
)

// Shifter is a streaming STFT phase-vocoder pitch shifter.
//
// Input is appended to a 2N history ring. Every H frames the last N
// samples are windowed, analyzed, remapped by the shift factor,
// resynthesized and overlap-added into a 2N output ring H samples ahead
// of the output read cursor, giving a fixed latency of N+H frames.
//
// Process performs no allocation. The shifter is single-goroutine except
// for Envelope and Faults, which may be called from any goroutine.
type Shifter struct {
	sampleRate float64
	frameSize  int
	hop        int
	octaves    float64
	control    float64
	factor     float64

	plan   *algofft.Plan[complex128]
	window []float64

	history  [core.Channels][]float64
	output   [core.Channels][]float64
	histPos  int
	readPos  int
	writePos int
	counter  int

	state    [core.Channels]*Spectral
	envelope [core.Channels][]atomic.Uint64
	faults   atomic.Uint64

	frame    []complex128
	spectrum []complex128
	scratch  []float64
}

// ShifterOption configures a Shifter.
type ShifterOption func(*Shifter)

// WithFrameSize sets the FFT size N (power of two, >= 64).
func WithFrameSize(n int) ShifterOption {
	return func(s *Shifter) {
		s.frameSize = n
	}
}

// WithHopSize sets the hop H (must divide N).
func WithHopSize(h int) ShifterOption {
	return func(s *Shifter) {
		s.hop = h
	}
}

// WithOctaveRange sets the shift reached at control +-1, in octaves.
func WithOctaveRange(octaves float64) ShifterOption {
	return func(s *Shifter) {
		s.octaves = octaves
	}
}

// NewShifter creates a shifter with N=1024, H=256 and a 4 octave range.
func NewShifter(sampleRate float64, opts ...ShifterOption) (*Shifter, error) {
	if sampleRate <= 0 || math.IsNaN(sampleRate) || math.IsInf(sampleRate, 0) {
		return nil, fmt.Errorf("pitch shifter sample rate must be > 0: %f", sampleRate)
	}

	s := &Shifter{
		sampleRate: sampleRate,
		frameSize:  defaultShifterFrameSize,
		hop:        defaultShifterHop,
		octaves:    defaultOctaveRange,
		factor:     1,
	}

	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}

	if err := s.validate(); err != nil {
		return nil, err
	}

	if err := s.rebuild(); err != nil {
		return nil, err
	}

	return s, nil
}

func (s *Shifter) validate() error {
	if s.frameSize < minShifterFrameSize || s.frameSize&(s.frameSize-1) != 0 {
		return fmt.Errorf("pitch shifter frame size must be power-of-two and >= %d: %d",
			minShifterFrameSize, s.frameSize)
	}
	if s.hop <= 0 || s.hop >= s.frameSize || s.frameSize%s.hop != 0 {
		return fmt.Errorf("pitch shifter: %w: size %d, hop %d", window.ErrInvalidHop, s.frameSize, s.hop)
	}
	if s.octaves < 0 || s.octaves > maxOctaveRange || math.IsNaN(s.octaves) {
		return fmt.Errorf("pitch shifter octave range must be in [0, %g]: %f", maxOctaveRange, s.octaves)
	}
	return nil
}

func (s *Shifter) rebuild() error {
	plan, err := algofft.NewPlan64(s.frameSize)
	if err != nil {
		return fmt.Errorf("pitch shifter: failed to create FFT plan: %w", err)
	}
	s.plan = plan

	w, err := window.Welch(s.frameSize)
	if err != nil {
		return fmt.Errorf("pitch shifter: %w", err)
	}
	s.window = w

	ring := 2 * s.frameSize
	bins := s.frameSize/2 + 1
	for c := range core.Channels {
		s.history[c] = make([]float64, ring)
		s.output[c] = make([]float64, ring)
		s.state[c] = NewSpectral(s.frameSize)
		s.envelope[c] = make([]atomic.Uint64, bins)
	}

	s.frame = make([]complex128, s.frameSize)
	s.spectrum = make([]complex128, s.frameSize)
	s.scratch = make([]float64, s.frameSize)

	s.resetCursors()

	return nil
}

func (s *Shifter) resetCursors() {
	s.histPos = 0
	s.readPos = 0
	s.writePos = 2 * s.hop
	s.counter = 0
}

// SampleRate returns the sample rate in Hz.
func (s *Shifter) SampleRate() float64 { return s.sampleRate }

// FrameSize returns N.
func (s *Shifter) FrameSize() int { return s.frameSize }

// Hop returns H.
func (s *Shifter) Hop() int { return s.hop }

// Bins returns the number of analysis bins, N/2+1.
func (s *Shifter) Bins() int { return s.frameSize/2 + 1 }

// Latency returns the input to output delay in frames, N+H.
func (s *Shifter) Latency() int { return s.frameSize + s.hop }

// BinFrequency returns the center frequency of bin k in Hz.
func (s *Shifter) BinFrequency(k int) float64 {
	return float64(k) * s.sampleRate / float64(s.frameSize)
}

// OverlapGain returns the steady-state gain of the identity resynthesis
// for each output phase modulo H.
func (s *Shifter) OverlapGain() []float64 {
	g, _ := window.OverlapGain(s.window, s.hop)
	return g
}

// SetShift sets the control value in [-1, 1]. The shift factor becomes
// 2^(octaves*control); 0 is unity. NaN is ignored.
func (s *Shifter) SetShift(control float64) {
	if math.IsNaN(control) {
		return
	}
	s.control = core.Clamp(control, -1, 1)
	s.factor = power2(s.octaves * s.control)
}

// Shift returns the control value.
func (s *Shifter) Shift() float64 { return s.control }

// Factor returns the frequency multiplier applied at each hop.
func (s *Shifter) Factor() float64 { return s.factor }

// Faults returns the number of channel hops skipped because a transform
// failed.
func (s *Shifter) Faults() uint64 { return s.faults.Load() }

// Envelope copies the smoothed magnitude envelope of channel ch into dst
// and returns the number of bins written.
func (s *Shifter) Envelope(ch int, dst []float64) int {
	env := s.envelope[core.ClampInt(ch, 0, core.Channels-1)]
	n := min(len(dst), len(env))
	for k := range n {
		dst[k] = math.Float64frombits(env[k].Load())
	}
	return n
}

// Spectral returns the phase-vocoder state of channel ch.
func (s *Shifter) Spectral(ch int) *Spectral {
	return s.state[core.ClampInt(ch, 0, core.Channels-1)]
}

// Process appends one frame and returns the frame due Latency() frames
// after its input.
func (s *Shifter) Process(in core.Sample) core.Sample {
	ring := 2 * s.frameSize

	s.history[0][s.histPos] = in.L
	s.history[1][s.histPos] = in.R
	s.histPos++
	if s.histPos >= ring {
		s.histPos = 0
	}

	out := core.Stereo(s.output[0][s.readPos], s.output[1][s.readPos])
	s.output[0][s.readPos] = 0
	s.output[1][s.readPos] = 0
	s.readPos++
	if s.readPos >= ring {
		s.readPos = 0
	}

	s.counter++
	if s.counter >= s.hop {
		s.counter = 0
		s.step()
	}

	return out
}

// step runs one analysis, shift and resynthesis hop on both channels.
func (s *Shifter) step() {
	n := s.frameSize
	ring := 2 * n
	start := s.histPos - n
	if start < 0 {
		start += ring
	}

	for c := range core.Channels {
		s.gather(s.history[c], start)
		vecmath.MulBlockInPlace(s.scratch, s.window)
		for i, v := range s.scratch {
			s.frame[i] = complex(v, 0)
		}

		if err := s.plan.Forward(s.spectrum, s.frame); err != nil {
			s.faults.Add(1)
			continue
		}

		st := s.state[c]
		st.Analyze(s.spectrum, s.hop)
		s.updateEnvelope(c, st)
		st.Shift(s.factor)
		st.Synthesize(s.spectrum, s.hop)

		// The inverse transform is normalized by 1/N.
		if err := s.plan.Inverse(s.frame, s.spectrum); err != nil {
			s.faults.Add(1)
			continue
		}

		for i, v := range s.frame {
			s.scratch[i] = real(v)
		}
		vecmath.MulBlockInPlace(s.scratch, s.window)
		s.scatter(s.output[c], s.writePos)
	}

	s.writePos += s.hop
	if s.writePos >= ring {
		s.writePos -= ring
	}
}

// gather copies n ring samples starting at start into scratch.
func (s *Shifter) gather(ring []float64, start int) {
	first := copy(s.scratch, ring[start:])
	if first < len(s.scratch) {
		copy(s.scratch[first:], ring)
	}
}

// scatter adds scratch into the ring starting at start, wrapping once.
func (s *Shifter) scatter(ring []float64, start int) {
	n := len(s.scratch)
	first := min(n, len(ring)-start)
	vecmath.AddBlockInPlace(ring[start:start+first], s.scratch[:first])
	if first < n {
		vecmath.AddBlockInPlace(ring[:n-first], s.scratch[first:])
	}
}

func (s *Shifter) updateEnvelope(c int, st *Spectral) {
	env := s.envelope[c]
	for k, a := range st.Analysis {
		prev := math.Float64frombits(env[k].Load())
		next := prev*envelopeDecay + a.Magnitude*envelopeScale*(1-envelopeDecay)
		env[k].Store(math.Float64bits(next))
	}
}

// Reset clears rings, spectral state and envelopes. The shift factor and
// fault count are kept.
func (s *Shifter) Reset() {
	for c := range core.Channels {
		clear(s.history[c])
		clear(s.output[c])
		s.state[c].Reset()
		for k := range s.envelope[c] {
			s.envelope[c][k].Store(0)
		}
	}
	s.resetCursors()
}
