// Package instrument wires the DSP units into the live compakt graph.
//
// A metronome retriggers a sampler on random kit hits. The hits run
// through the STFT pitch shifter, a comb, a filter and an optional delay.
// A post stage applies volume, bit crushing and the looper. The live
// input is captured for a granular voice and a dual-tap shifter.
package instrument

import (
	"errors"
	"fmt"
	"math"
	"math/rand/v2"

	"github.com/sirupsen/logrus"

	"github.com/cwbudde/compakt/dsp/buffer"
	"github.com/cwbudde/compakt/dsp/core"
	"github.com/cwbudde/compakt/dsp/effects"
	"github.com/cwbudde/compakt/dsp/effects/pitch"
	"github.com/cwbudde/compakt/dsp/engine"
	"github.com/cwbudde/compakt/dsp/filter/biquad"
	"github.com/cwbudde/compakt/dsp/interp"
	"github.com/cwbudde/compakt/dsp/playback"
	"github.com/cwbudde/compakt/dsp/signal"
	"github.com/cwbudde/compakt/internal/audiofile"
	"github.com/cwbudde/compakt/internal/control"
)

// Instrument is the per-frame graph. Frame and Block run on the audio
// callback; parameters arrive through the control.Set.
type Instrument struct {
	set *control.Set
	rng *rand.Rand
	kit []*buffer.Buffer

	metro   *signal.Metronome
	sampler *playback.Sampler
	shifter *pitch.Shifter
	comb    *effects.Comb
	filter  *biquad.Filter
	delay   *effects.Delay
	looper  *playback.Looper

	capture  *buffer.Buffer
	recorder *playback.Recorder
	grain    *playback.Granular
	dual     *pitch.DualTap

	p struct {
		pitch, freq, res, typ, comb, time, mix, metro *control.Param
		volume, bit, speed, length, loopSpeed         *control.Param
		grain, input, shift                           *control.Param
	}
	t struct {
		crush, delay, looper *control.Toggle
	}

	volume   float64
	bits     float64
	grainMix float64
	inputMix float64
	crush    bool
	delayOn  bool
	playing  bool
}

// LoadKit decodes the kit directory into buffers played at engineRate.
func LoadKit(dir string, engineRate float64) ([]*buffer.Buffer, error) {
	files, err := audiofile.LoadKit(dir)
	if err != nil {
		return nil, err
	}

	srcs := make([]kitSource, len(files))
	for i, f := range files {
		srcs[i] = f
	}
	return kitBuffers(srcs, engineRate)
}

type kitSource interface {
	buffer.Source
	Path() string
}

// kitBuffers skips sources without frames; the sampler plays silence
// rather than failing on them.
func kitBuffers(srcs []kitSource, engineRate float64) ([]*buffer.Buffer, error) {
	kit := make([]*buffer.Buffer, 0, len(srcs))
	for _, src := range srcs {
		b, err := buffer.Load(src, engineRate)
		if errors.Is(err, buffer.ErrEmptySource) {
			logrus.WithFields(logrus.Fields{
				"function": "LoadKit",
				"path":     src.Path(),
			}).Warn("skipping empty kit sample")
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("instrument: kit %s: %w", src.Path(), err)
		}
		kit = append(kit, b)
	}
	return kit, nil
}

// crushBits maps the bit param onto 1..16 bits, truncating.
func crushBits(v float64) float64 {
	return math.Floor(core.ScaleNorm(v, 1, 16))
}

// New builds the graph at the engine rate. set must come from NewSet.
// The sampler starts on the first kit buffer.
func New(cfg Config, rate float64, set *control.Set, kit []*buffer.Buffer) (*Instrument, error) {
	cc := core.ApplyProcessorOptions(core.WithSampleRate(rate))

	in := &Instrument{
		set: set,
		rng: rand.New(rand.NewPCG(cfg.Seed, cfg.Seed^0x9e3779b97f4a7c15)),
		kit: kit,
	}
	if err := in.bind(); err != nil {
		return nil, err
	}

	var err error
	if in.shifter, err = pitch.NewShifter(rate,
		pitch.WithFrameSize(cfg.FrameSize),
		pitch.WithHopSize(cfg.HopSize),
		pitch.WithOctaveRange(cfg.OctaveRange),
	); err != nil {
		return nil, fmt.Errorf("instrument: %w", err)
	}
	if in.comb, err = effects.NewComb(rate); err != nil {
		return nil, fmt.Errorf("instrument: %w", err)
	}
	if in.filter, err = biquad.NewFilter(rate); err != nil {
		return nil, fmt.Errorf("instrument: %w", err)
	}
	if in.delay, err = effects.NewDelay(rate, cfg.DelaySeconds); err != nil {
		return nil, fmt.Errorf("instrument: %w", err)
	}
	if in.looper, err = playback.NewLooper(cc.SecondsToFrames(cfg.LooperSeconds), rate); err != nil {
		return nil, fmt.Errorf("instrument: %w", err)
	}
	if in.capture, err = buffer.New(cc.SecondsToFrames(cfg.CaptureSeconds), core.Channels, rate); err != nil {
		return nil, fmt.Errorf("instrument: capture: %w", err)
	}
	mode, err := interp.ParseMode(cfg.DualTapInterp)
	if err != nil {
		return nil, fmt.Errorf("instrument: %w", err)
	}
	if in.dual, err = pitch.NewDualTap(
		pitch.WithLineLength(cfg.DualTapLength),
		pitch.WithInterpolation(mode),
	); err != nil {
		return nil, fmt.Errorf("instrument: %w", err)
	}

	in.metro = signal.NewMetronome(cc.SecondsToFrames(cfg.MetroSeconds))
	in.sampler = playback.NewSampler(nil)
	in.recorder = playback.NewRecorder(in.capture)
	in.grain = playback.NewGranular(in.capture, playback.WithGrainSize(cfg.GrainSize))

	if len(kit) > 0 {
		in.sampler.SetBuffer(kit[0])
		in.sampler.Trigger()
	}

	logrus.WithFields(logrus.Fields{
		"function": "New",
		"rate":     rate,
		"kit":      len(kit),
		"latency":  in.shifter.Latency(),
	}).Info("instrument ready")

	return in, nil
}

func (in *Instrument) bind() error {
	params := []struct {
		dst  **control.Param
		name string
	}{
		{&in.p.pitch, ParamPitch}, {&in.p.freq, ParamFreq}, {&in.p.res, ParamRes},
		{&in.p.typ, ParamType}, {&in.p.comb, ParamComb}, {&in.p.time, ParamTime},
		{&in.p.mix, ParamMix}, {&in.p.metro, ParamMetro}, {&in.p.volume, ParamVolume},
		{&in.p.bit, ParamBit}, {&in.p.speed, ParamSpeed}, {&in.p.length, ParamLength},
		{&in.p.loopSpeed, ParamLoopSpeed}, {&in.p.grain, ParamGrain},
		{&in.p.input, ParamInput}, {&in.p.shift, ParamShift},
	}
	for _, b := range params {
		p, err := in.set.Param(b.name)
		if err != nil {
			return fmt.Errorf("instrument: %w", err)
		}
		*b.dst = p
	}

	toggles := []struct {
		dst  **control.Toggle
		name string
	}{
		{&in.t.crush, ToggleCrush}, {&in.t.delay, ToggleDelay}, {&in.t.looper, ToggleLooper},
	}
	for _, b := range toggles {
		t, err := in.set.Toggle(b.name)
		if err != nil {
			return fmt.Errorf("instrument: %w", err)
		}
		*b.dst = t
	}
	return nil
}

// Block pushes the current parameter values into the units.
func (in *Instrument) Block(e *engine.Engine) {
	in.shifter.SetShift(core.Norm2Bi(in.p.pitch.Load()))

	mode := biquad.ModeFromIndex(int(math.Floor(in.p.typ.Load() * 2)))
	in.filter.Set(mode, in.p.freq.Load()*10000)
	in.filter.SetResonance(in.p.res.Load() * 50)

	in.comb.SetAmount(in.p.comb.Load())
	in.delay.SetTime(in.p.time.Load() * 2)
	in.delay.SetMix(in.p.mix.Load())
	in.metro.SetDuration(e.SecondsToFrames(in.p.metro.Load() * 0.5))

	speed := in.p.speed.Load() * 2
	in.sampler.SetRate(speed)
	in.grain.SetRate(speed)

	in.looper.SetWindow(in.p.length.Load())
	in.looper.SetSpeed(core.Norm2Bi(in.p.loopSpeed.Load()) * 4)

	in.volume = in.p.volume.Load()
	in.bits = crushBits(in.p.bit.Load())
	in.grainMix = in.p.grain.Load()
	in.inputMix = in.p.input.Load()
	in.dual.SetPitch(core.Norm2Bi(in.p.shift.Load()))
	in.dual.SetActive(in.inputMix > 0)

	in.crush = in.t.crush.Load()
	in.delayOn = in.t.delay.Load()
	if playing := in.t.looper.Load(); playing != in.playing {
		in.looper.SetRecord(!playing)
		in.playing = playing
	}
}

// Frame runs the graph for one frame.
func (in *Instrument) Frame(e *engine.Engine) {
	if in.metro.Process() {
		in.trigger()
	}

	var s core.Sample
	if in.sampler.Active() {
		s = in.sampler.Process()
	}

	s = in.shifter.Process(s)
	s = in.comb.Process(s)
	s = in.filter.Process(s)
	e.Out(s)

	in.delay.Process(s)
	if in.delayOn {
		e.Out(in.delay.Tap())
	}

	live := e.In()
	in.recorder.Process(live)
	g := in.grain.Process()
	if in.grainMix > 0 {
		e.Out(g.MulS(in.grainMix))
	}
	if in.inputMix > 0 {
		e.Out(in.dual.Process(live).MulS(in.inputMix))
	}

	p := e.Get().MulS(in.volume)
	if in.crush {
		p = effects.BitReduce(p, in.bits)
	}
	e.Set(in.looper.Process(p))
}

func (in *Instrument) trigger() {
	if len(in.kit) == 0 {
		return
	}
	in.sampler.SetBuffer(in.kit[in.rng.IntN(len(in.kit))])
	in.sampler.Trigger()
}

// Set returns the parameter registry.
func (in *Instrument) Set() *control.Set { return in.set }

// Shifter returns the STFT shifter for envelope and fault readout.
func (in *Instrument) Shifter() *pitch.Shifter { return in.shifter }

// Faults returns the skipped-hop count of the shifter.
func (in *Instrument) Faults() uint64 { return in.shifter.Faults() }

// Envelope copies the smoothed spectrum of channel ch into dst.
func (in *Instrument) Envelope(ch int, dst []float64) int {
	return in.shifter.Envelope(ch, dst)
}

// Latency returns the shifter latency in frames.
func (in *Instrument) Latency() int { return in.shifter.Latency() }

var (
	_ engine.Graph     = (*Instrument)(nil)
	_ engine.BlockHook = (*Instrument)(nil)
)

// Looping reports whether the looper is in play mode.
func (in *Instrument) Looping() bool { return in.playing }
