// Package testutil holds deterministic signals and tolerance checks shared
// by the DSP and instrument tests.
package testutil

import (
	"math"
	"math/rand/v2"

	"github.com/cwbudde/compakt/dsp/core"
)

// DeterministicSine generates a deterministic sine wave.
func DeterministicSine(freqHz, sampleRate, amplitude float64, length int) []float64 {
	out := make([]float64, length)
	step := 2 * math.Pi * freqHz / sampleRate
	for i := range out {
		out[i] = amplitude * math.Sin(step*float64(i))
	}
	return out
}

// DeterministicNoise generates white noise with a fixed seed for reproducibility.
func DeterministicNoise(seed uint64, amplitude float64, length int) []float64 {
	out := make([]float64, length)
	rng := rand.New(rand.NewPCG(seed, seed))
	for i := range out {
		out[i] = (rng.Float64()*2 - 1) * amplitude
	}
	return out
}

// Impulse generates a unit impulse at the given position.
func Impulse(length, pos int) []float64 {
	out := make([]float64, length)
	if pos >= 0 && pos < length {
		out[pos] = 1
	}
	return out
}

// DC generates a constant-valued signal.
func DC(value float64, length int) []float64 {
	out := make([]float64, length)
	for i := range out {
		out[i] = value
	}
	return out
}

// Frames pairs two channels into stereo frames. The shorter channel is
// padded with silence; a nil right channel duplicates the left.
func Frames(l, r []float64) []core.Sample {
	if r == nil {
		r = l
	}
	out := make([]core.Sample, max(len(l), len(r)))
	for i := range out {
		var s core.Sample
		if i < len(l) {
			s.L = l[i]
		}
		if i < len(r) {
			s.R = r[i]
		}
		out[i] = s
	}
	return out
}

// Planar returns a driver-style block with chans copies of data.
func Planar(chans int, data []float64) [][]float32 {
	out := make([][]float32, chans)
	for c := range out {
		out[c] = make([]float32, len(data))
		for i, v := range data {
			out[c][i] = float32(v)
		}
	}
	return out
}

// Left returns the left channel of frames.
func Left(frames []core.Sample) []float64 {
	out := make([]float64, len(frames))
	for i, s := range frames {
		out[i] = s.L
	}
	return out
}

// Right returns the right channel of frames.
func Right(frames []core.Sample) []float64 {
	out := make([]float64, len(frames))
	for i, s := range frames {
		out[i] = s.R
	}
	return out
}

// Interleaved flattens frames into L R L R order, the layout a decoded
// file hands to buffer.Load.
func Interleaved(frames []core.Sample) []float64 {
	out := make([]float64, 0, 2*len(frames))
	for _, f := range frames {
		out = append(out, f.L, f.R)
	}
	return out
}
