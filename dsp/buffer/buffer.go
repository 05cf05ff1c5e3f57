package buffer

import (
	"errors"
	"fmt"
	"math"

	"github.com/cwbudde/compakt/dsp/core"
)

// ErrEmptySource is returned when a Source carries no frames.
var ErrEmptySource = errors.New("buffer: source has no frames")

// Source is decoded audio that a Buffer can adopt.
type Source interface {
	Channels() int
	SampleRate() float64
	Frames() int
	Interleaved() []float64
}

// Buffer is interleaved audio storage with channel and rate metadata.
type Buffer struct {
	data       []float64
	frames     int
	chans      int
	rate       float64
	engineRate float64
}

// New allocates a zeroed buffer of frames x chans recorded at the engine rate.
func New(frames, chans int, engineRate float64) (*Buffer, error) {
	if frames <= 0 {
		return nil, fmt.Errorf("buffer length must be > 0: %d", frames)
	}
	if chans < 1 || chans > core.Channels {
		return nil, fmt.Errorf("buffer channels must be in [1, %d]: %d", core.Channels, chans)
	}
	if err := validateRate(engineRate); err != nil {
		return nil, err
	}

	return &Buffer{
		data:       make([]float64, frames*chans),
		frames:     frames,
		chans:      chans,
		rate:       engineRate,
		engineRate: engineRate,
	}, nil
}

// Load returns a buffer adopting src, played back against engineRate.
func Load(src Source, engineRate float64) (*Buffer, error) {
	if err := validateRate(engineRate); err != nil {
		return nil, err
	}

	b := &Buffer{engineRate: engineRate}
	if err := b.Load(src); err != nil {
		return nil, err
	}

	return b, nil
}

// Load replaces the storage with a copy of src and captures its native rate,
// length and channel count. Sources with more than two channels keep the
// first two.
func (b *Buffer) Load(src Source) error {
	if src == nil || src.Frames() <= 0 {
		return ErrEmptySource
	}

	srcChans := src.Channels()
	if srcChans < 1 {
		return fmt.Errorf("buffer: source channels must be >= 1: %d", srcChans)
	}
	if err := validateRate(src.SampleRate()); err != nil {
		return err
	}

	frames := src.Frames()
	in := src.Interleaved()
	if len(in) < frames*srcChans {
		return fmt.Errorf("buffer: source holds %d samples, want %d", len(in), frames*srcChans)
	}

	chans := min(srcChans, core.Channels)
	data := make([]float64, frames*chans)
	for f := range frames {
		copy(data[f*chans:f*chans+chans], in[f*srcChans:f*srcChans+chans])
	}

	b.data = data
	b.frames = frames
	b.chans = chans
	b.rate = src.SampleRate()

	return nil
}

// Len returns the number of frames.
func (b *Buffer) Len() int {
	if b == nil {
		return 0
	}
	return b.frames
}

// Channels returns the stored channel count (1 or 2).
func (b *Buffer) Channels() int {
	if b == nil {
		return 0
	}
	return b.chans
}

// Rate returns the native sample rate of the stored audio.
func (b *Buffer) Rate() float64 {
	if b == nil {
		return 0
	}
	return b.rate
}

// EngineRate returns the live engine rate the buffer is played against.
func (b *Buffer) EngineRate() float64 {
	if b == nil {
		return 0
	}
	return b.engineRate
}

// Empty reports whether the buffer is nil or holds no frames.
func (b *Buffer) Empty() bool {
	return b == nil || b.frames == 0
}

// Samples returns the interleaved backing slice.
func (b *Buffer) Samples() []float64 {
	if b == nil {
		return nil
	}
	return b.data
}

// Read returns the frame at the clamped position. Mono frames are
// duplicated onto both channels.
func (b *Buffer) Read(pos int) core.Sample {
	if b.Empty() {
		return core.Sample{}
	}

	i := b.clamp(pos) * b.chans
	if b.chans == 1 {
		return core.Mono(b.data[i])
	}

	return core.Stereo(b.data[i], b.data[i+1])
}

// Read1 returns one channel of the frame at the clamped position.
func (b *Buffer) Read1(pos, ch int) float64 {
	if b.Empty() {
		return 0
	}

	ch = core.ClampInt(ch, 0, b.chans-1)
	return b.data[b.clamp(pos)*b.chans+ch]
}

// Write stores s at the clamped position. Mono buffers store L+R.
func (b *Buffer) Write(pos int, s core.Sample) {
	if b.Empty() {
		return
	}

	i := b.clamp(pos) * b.chans
	if b.chans == 1 {
		b.data[i] = s.Sum()
		return
	}

	b.data[i] = s.L
	b.data[i+1] = s.R
}

// RateScale converts a playback rate into frames per engine frame,
// compensating for a native rate that differs from the engine rate.
func (b *Buffer) RateScale(rate float64) float64 {
	if b.Empty() || b.engineRate <= 0 {
		return rate
	}
	return rate * (b.rate / b.engineRate)
}

// Zero clears the stored audio.
func (b *Buffer) Zero() {
	if b == nil {
		return
	}
	for i := range b.data {
		b.data[i] = 0
	}
}

func (b *Buffer) clamp(pos int) int {
	return core.ClampInt(pos, 0, b.frames-1)
}

func validateRate(rate float64) error {
	if rate <= 0 || math.IsNaN(rate) || math.IsInf(rate, 0) {
		return fmt.Errorf("buffer sample rate must be > 0: %f", rate)
	}
	return nil
}
