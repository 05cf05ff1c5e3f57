package playback

import (
	"math"
	"testing"

	"github.com/cwbudde/compakt/dsp/buffer"
	"github.com/cwbudde/compakt/dsp/core"
	"github.com/cwbudde/compakt/internal/testutil"
)

// rampSource is a stereo source whose frame i holds (i, -i).
type rampSource struct {
	frames int
	rate   float64
}

func (r rampSource) Channels() int       { return 2 }
func (r rampSource) SampleRate() float64 { return r.rate }
func (r rampSource) Frames() int         { return r.frames }
func (r rampSource) Interleaved() []float64 {
	out := make([]float64, 2*r.frames)
	for i := range r.frames {
		out[2*i] = float64(i)
		out[2*i+1] = -float64(i)
	}
	return out
}

func newRamp(t *testing.T, frames int, nativeRate, engineRate float64) *buffer.Buffer {
	t.Helper()
	b, err := buffer.Load(rampSource{frames: frames, rate: nativeRate}, engineRate)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	return b
}

func TestSamplerWrapsOncePerSecond(t *testing.T) {
	const rate = 48000

	data := testutil.Interleaved(testutil.Frames(testutil.DeterministicSine(440, rate, 0.5, rate), nil))
	buf, err := buffer.Load(interleaved{data: data, rate: rate}, rate)
	if err != nil {
		t.Fatal(err)
	}

	s := NewSampler(buf)
	s.SetRate(1)
	s.SetRegion(0, 1)
	s.SetLoop(true)
	s.Trigger()

	wraps := 0
	prev := s.Position()
	for range rate {
		s.Process()
		if s.Position() < prev {
			wraps++
		}
		prev = s.Position()
	}

	if wraps != 1 {
		t.Fatalf("wrapped %d times, want 1", wraps)
	}
	if s.Position() != 0 || !s.Active() {
		t.Fatalf("after one second: pos=%v active=%v, want region start", s.Position(), s.Active())
	}
}

type interleaved struct {
	data []float64
	rate float64
}

func (s interleaved) Channels() int          { return 2 }
func (s interleaved) SampleRate() float64    { return s.rate }
func (s interleaved) Frames() int            { return len(s.data) / 2 }
func (s interleaved) Interleaved() []float64 { return s.data }

func TestSamplerOneShotStops(t *testing.T) {
	buf := newRamp(t, 100, 48000, 48000)
	s := NewSampler(buf)
	s.SetLoop(false)
	s.SetRegion(0.5, 0) // reversed bounds are ordered
	if start, end := s.Region(); start != 0 || end != 0.5 {
		t.Fatalf("region = [%v, %v]", start, end)
	}
	s.Trigger()

	for i := range 50 {
		got := s.Process()
		if got.L != float64(i) || got.R != -float64(i) {
			t.Fatalf("frame %d: got %+v", i, got)
		}
	}
	if s.Active() {
		t.Fatal("sampler still active past region end")
	}
	for range 5 {
		if got := s.Process(); got != (core.Sample{}) {
			t.Fatalf("inactive sampler returned %+v", got)
		}
	}

	s.Trigger()
	if !s.Active() || s.Position() != 0 {
		t.Fatal("re-trigger did not restart")
	}
}

func TestSamplerReverseAndRateScale(t *testing.T) {
	buf := newRamp(t, 11, 24000, 48000)
	s := NewSampler(buf)
	s.SetForward(false)
	s.SetLoop(false)
	s.Trigger()

	if s.Position() != 10 {
		t.Fatalf("reverse trigger at %v, want 10", s.Position())
	}
	want := []float64{10, 9, 9, 8, 8}
	for i, w := range want {
		if got := s.Process(); got.L != w {
			t.Fatalf("step %d: got %v, want %v", i, got.L, w)
		}
	}
}

func TestSamplerSpanAndSetters(t *testing.T) {
	s := NewSampler(nil)
	s.SetSpan(0.75, 0.5)
	if start, end := s.Region(); start != 0.75 || end != 1 {
		t.Fatalf("span region = [%v, %v]", start, end)
	}
	s.SetRate(-3)
	if s.Rate() != 0 {
		t.Fatalf("negative rate kept: %v", s.Rate())
	}
	s.SetRate(math.NaN())
	if s.Rate() != 0 {
		t.Fatalf("NaN rate applied: %v", s.Rate())
	}

	s.Trigger()
	if s.Active() {
		t.Fatal("trigger without buffer activated the sampler")
	}
	if got := s.Process(); got != (core.Sample{}) {
		t.Fatalf("nil buffer produced %+v", got)
	}
}

func TestLooperRecordThenPlay(t *testing.T) {
	l, err := NewLooper(8, 48000)
	if err != nil {
		t.Fatal(err)
	}
	if !l.Recording() {
		t.Fatal("looper should start recording")
	}

	for i := range 8 {
		in := core.Mono(float64(i + 1))
		if out := l.Process(in); out != in {
			t.Fatalf("record pass-through: got %+v", out)
		}
	}
	if l.WritePos() != 0 {
		t.Fatalf("write cursor did not wrap: %d", l.WritePos())
	}

	l.SetRecord(false)
	want := []float64{2, 3, 4, 5, 6, 7, 8, 1, 2}
	for i, w := range want {
		if got := l.Process(core.Sample{}); got.L != w {
			t.Fatalf("play step %d: got %v, want %v", i, got.L, w)
		}
	}
}

func TestLooperToggleContinuity(t *testing.T) {
	l, err := NewLooper(64, 48000)
	if err != nil {
		t.Fatal(err)
	}
	for i := range 20 {
		l.Process(core.Mono(float64(i)))
	}

	l.SetRecord(false)
	l.SetSpeed(0.37)
	for range 11 {
		l.Process(core.Sample{})
	}
	before := l.ReadPos()

	l.SetRecord(true)
	l.SetRecord(false)

	if l.ReadPos() != before {
		t.Fatalf("read cursor %v after toggle, want %v", l.ReadPos(), before)
	}
}

func TestLooperWindowAndReverse(t *testing.T) {
	l, err := NewLooper(10, 48000)
	if err != nil {
		t.Fatal(err)
	}
	for i := range 10 {
		l.Process(core.Mono(float64(i)))
	}
	l.SetRecord(false)
	l.SetWindow(0.5)
	l.SetSpeed(1)

	for range 4 {
		l.Process(core.Sample{})
	}
	if got := l.Process(core.Sample{}); got.L != 0 || l.ReadPos() != 0 {
		t.Fatalf("window wrap: got %v at %v", got.L, l.ReadPos())
	}

	l.SetSpeed(-1)
	if got := l.Process(core.Sample{}); l.ReadPos() != 4.5 || got.L != 4 {
		t.Fatalf("reverse wrap: pos=%v value=%v", l.ReadPos(), got.L)
	}

	l.Reset()
	if !l.Recording() || l.ReadPos() != 0 || l.WritePos() != 0 {
		t.Fatal("reset did not restore record mode")
	}

	if _, err := NewLooper(0, 48000); err == nil {
		t.Fatal("expected error for empty ring")
	}
}

func TestGranularResync(t *testing.T) {
	buf := newRamp(t, 1000, 48000, 48000)
	g := NewGranular(buf, WithGrainSize(10))
	g.SetRate(2)

	var got []float64
	for range 12 {
		got = append(got, g.Process().L)
	}

	want := []float64{0, 2, 4, 6, 8, 10, 12, 14, 16, 18, 10, 12}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("frame %d: got %v, want %v (all %v)", i, got[i], want[i], got)
		}
	}
	if g.Position() != 12 {
		t.Fatalf("real-time cursor = %v, want 12", g.Position())
	}
}

func TestGranularRegionAndSilence(t *testing.T) {
	buf := newRamp(t, 101, 48000, 48000)
	g := NewGranular(buf, WithGrainSize(1000))
	g.SetRegion(0.1, 0.2)
	g.SetRate(5)

	for range 200 {
		g.Process()
		if gp := g.GrainPosition(); gp > 20 && gp != 10 {
			t.Fatalf("grain cursor %v escaped region", gp)
		}
	}

	g.SetGrainSize(0)
	if g.GrainSize() != 1 {
		t.Fatalf("grain size floor: %d", g.GrainSize())
	}

	silent := NewGranular(nil)
	if got := silent.Process(); got != (core.Sample{}) {
		t.Fatalf("nil buffer produced %+v", got)
	}
}

func TestRecorderWraps(t *testing.T) {
	buf, err := buffer.New(4, 2, 48000)
	if err != nil {
		t.Fatal(err)
	}
	r := NewRecorder(buf)
	for i := range 6 {
		r.Process(core.Stereo(float64(i), float64(-i)))
	}
	if r.Pos() != 2 {
		t.Fatalf("pos = %d, want 2", r.Pos())
	}
	want := []float64{4, 5, 2, 3}
	for i, w := range want {
		if got := buf.Read(i); got.L != w || got.R != -w {
			t.Fatalf("frame %d: got %+v, want %v", i, got, w)
		}
	}

	r.SetBuffer(nil)
	r.Process(core.Mono(1)) // no-op
	if r.Pos() != 0 {
		t.Fatal("SetBuffer did not rewind")
	}
}
