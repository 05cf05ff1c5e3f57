package buffer

import (
	"errors"
	"testing"

	"github.com/cwbudde/compakt/dsp/core"
)

type memSource struct {
	chans  int
	rate   float64
	frames int
	data   []float64
}

func (m memSource) Channels() int          { return m.chans }
func (m memSource) SampleRate() float64    { return m.rate }
func (m memSource) Frames() int            { return m.frames }
func (m memSource) Interleaved() []float64 { return m.data }

func TestNewValidation(t *testing.T) {
	if _, err := New(0, 2, 48000); err == nil {
		t.Fatal("expected error for zero length")
	}
	if _, err := New(8, 3, 48000); err == nil {
		t.Fatal("expected error for 3 channels")
	}
	if _, err := New(8, 2, 0); err == nil {
		t.Fatal("expected error for zero rate")
	}
}

func TestNewZeroFilled(t *testing.T) {
	b, err := New(8, 2, 48000)
	if err != nil {
		t.Fatal(err)
	}
	if b.Len() != 8 || b.Channels() != 2 || len(b.Samples()) != 16 {
		t.Fatalf("got len=%d chans=%d samples=%d", b.Len(), b.Channels(), len(b.Samples()))
	}
	for i, v := range b.Samples() {
		if v != 0 {
			t.Fatalf("Samples()[%d] = %v, want 0", i, v)
		}
	}
	if b.Rate() != 48000 || b.EngineRate() != 48000 {
		t.Fatalf("rate=%v engineRate=%v", b.Rate(), b.EngineRate())
	}
}

func TestReadClampsIndex(t *testing.T) {
	b, err := New(4, 2, 48000)
	if err != nil {
		t.Fatal(err)
	}
	for i := range 4 {
		b.Write(i, core.Stereo(float64(i), -float64(i)))
	}

	tests := []struct {
		pos  int
		want core.Sample
	}{
		{-100, core.Stereo(0, 0)},
		{-1, core.Stereo(0, 0)},
		{2, core.Stereo(2, -2)},
		{3, core.Stereo(3, -3)},
		{4, core.Stereo(3, -3)},
		{1 << 30, core.Stereo(3, -3)},
	}
	for _, tt := range tests {
		if got := b.Read(tt.pos); got != tt.want {
			t.Fatalf("Read(%d) = %+v, want %+v", tt.pos, got, tt.want)
		}
	}
	if got := b.Read1(99, 1); got != -3 {
		t.Fatalf("Read1(99, 1) = %v, want -3", got)
	}
	if got := b.Read1(0, 7); got != 0 {
		t.Fatalf("Read1 channel clamp: got %v want 0", got)
	}
}

func TestWriteClampsIndex(t *testing.T) {
	b, err := New(3, 2, 48000)
	if err != nil {
		t.Fatal(err)
	}
	b.Write(-5, core.Mono(1))
	b.Write(10, core.Mono(2))

	if got := b.Read(0); got != core.Mono(1) {
		t.Fatalf("Read(0) = %+v, want 1", got)
	}
	if got := b.Read(2); got != core.Mono(2) {
		t.Fatalf("Read(2) = %+v, want 2", got)
	}
}

func TestMonoWriteSumsAndReadDuplicates(t *testing.T) {
	b, err := New(4, 1, 48000)
	if err != nil {
		t.Fatal(err)
	}
	b.Write(2, core.Stereo(0.25, 0.5))

	if got := b.Samples()[2]; got != 0.75 {
		t.Fatalf("stored mono value = %v, want 0.75", got)
	}
	if got := b.Read(2); got != core.Mono(0.75) {
		t.Fatalf("Read(2) = %+v, want {0.75 0.75}", got)
	}
	if got := b.Read1(2, 1); got != 0.75 {
		t.Fatalf("Read1(2, 1) = %v, want 0.75", got)
	}
}

func TestRateScale(t *testing.T) {
	src := memSource{chans: 1, rate: 44100, frames: 2, data: []float64{1, 2}}
	b, err := Load(src, 48000)
	if err != nil {
		t.Fatal(err)
	}
	want := 2 * 44100.0 / 48000.0
	if got := b.RateScale(2); !core.NearlyEqual(got, want, 1e-12) {
		t.Fatalf("RateScale(2) = %v, want %v", got, want)
	}

	native, err := New(2, 2, 48000)
	if err != nil {
		t.Fatal(err)
	}
	if got := native.RateScale(1.5); got != 1.5 {
		t.Fatalf("native RateScale(1.5) = %v, want 1.5", got)
	}
}

func TestLoadKeepsFirstTwoChannels(t *testing.T) {
	src := memSource{
		chans:  3,
		rate:   22050,
		frames: 2,
		data:   []float64{1, 2, 3, 4, 5, 6},
	}
	b, err := Load(src, 48000)
	if err != nil {
		t.Fatal(err)
	}
	if b.Channels() != 2 || b.Len() != 2 || b.Rate() != 22050 {
		t.Fatalf("chans=%d len=%d rate=%v", b.Channels(), b.Len(), b.Rate())
	}
	if got := b.Read(1); got != core.Stereo(4, 5) {
		t.Fatalf("Read(1) = %+v, want {4 5}", got)
	}
}

func TestLoadReplacesStorage(t *testing.T) {
	b, err := New(16, 2, 48000)
	if err != nil {
		t.Fatal(err)
	}
	if err := b.Load(memSource{chans: 1, rate: 8000, frames: 3, data: []float64{7, 8, 9}}); err != nil {
		t.Fatal(err)
	}
	if b.Len() != 3 || b.Channels() != 1 || b.Rate() != 8000 || b.EngineRate() != 48000 {
		t.Fatalf("len=%d chans=%d rate=%v engine=%v", b.Len(), b.Channels(), b.Rate(), b.EngineRate())
	}
}

func TestLoadErrors(t *testing.T) {
	if _, err := Load(memSource{chans: 2, rate: 48000}, 48000); !errors.Is(err, ErrEmptySource) {
		t.Fatalf("expected ErrEmptySource, got %v", err)
	}
	short := memSource{chans: 2, rate: 48000, frames: 4, data: make([]float64, 3)}
	if _, err := Load(short, 48000); err == nil {
		t.Fatal("expected error for short interleaved data")
	}
}

func TestNilBufferIsSilent(t *testing.T) {
	var b *Buffer
	if !b.Empty() || b.Len() != 0 {
		t.Fatal("nil buffer should be empty")
	}
	if got := b.Read(3); got != (core.Sample{}) {
		t.Fatalf("nil Read = %+v", got)
	}
	b.Write(0, core.Mono(1))
	b.Zero()
	if got := b.RateScale(1.25); got != 1.25 {
		t.Fatalf("nil RateScale = %v", got)
	}
}
