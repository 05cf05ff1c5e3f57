// Package engine runs the per-frame instrument loop inside the audio
// driver callback.
//
// The driver calls [Engine.Process] once per block with per-channel input
// and output slices that are valid only for that call. The engine zeroes
// the outputs, gives the graph one block-rate hook and then calls
// Graph.Frame once for every frame. Within Frame, the graph reads the
// live input through In and mixes into the output with Out and Set.
package engine

import (
	"fmt"
	"math"
	"sync/atomic"

	"github.com/cwbudde/compakt/dsp/core"
)

// Graph is the per-frame instrument.
type Graph interface {
	Frame(e *Engine)
}

// BlockHook is implemented by graphs that refresh state once per block,
// before the first frame.
type BlockHook interface {
	Block(e *Engine)
}

// Engine is the real-time scheduler. It is driven by a single callback
// goroutine; only Processed and Blocks may be read concurrently.
type Engine struct {
	cfg   core.ProcessorConfig
	graph Graph
	hook  BlockHook

	in  [][]float32
	out [][]float32

	pos    int
	frames int

	processed atomic.Uint64
	blocks    atomic.Uint64
}

// New returns an engine configured by opts (48 kHz, 256-frame blocks by
// default).
func New(opts ...core.ProcessorOption) (*Engine, error) {
	cfg := core.ApplyProcessorOptions(opts...)
	if cfg.SampleRate <= 0 || math.IsNaN(cfg.SampleRate) || math.IsInf(cfg.SampleRate, 0) {
		return nil, fmt.Errorf("engine sample rate must be > 0: %f", cfg.SampleRate)
	}
	if cfg.BlockSize <= 0 {
		return nil, fmt.Errorf("engine block size must be > 0: %d", cfg.BlockSize)
	}

	return &Engine{cfg: cfg}, nil
}

// Attach installs the graph. It must be called before the driver starts.
func (e *Engine) Attach(g Graph) {
	e.graph = g
	e.hook, _ = g.(BlockHook)
}

// Config returns the engine configuration.
func (e *Engine) Config() core.ProcessorConfig { return e.cfg }

// SampleRate returns the engine rate in Hz.
func (e *Engine) SampleRate() float64 { return e.cfg.SampleRate }

// BlockSize returns the nominal block size in frames.
func (e *Engine) BlockSize() int { return e.cfg.BlockSize }

// Process runs one block. Output channels are cleared first; missing input
// channels read as silence. Frames is the length of the first output
// channel.
func (e *Engine) Process(in, out [][]float32) {
	frames := 0
	if len(out) > 0 {
		frames = len(out[0])
	}
	for _, ch := range out {
		clear(ch)
	}

	e.in, e.out = in, out
	e.frames = frames
	e.pos = 0

	if e.graph != nil {
		if e.hook != nil {
			e.hook.Block(e)
		}
		for e.pos = 0; e.pos < frames; e.pos++ {
			e.graph.Frame(e)
		}
	}

	e.in, e.out = nil, nil
	e.processed.Add(uint64(frames))
	e.blocks.Add(1)
}

// Pos returns the frame index inside the current block.
func (e *Engine) Pos() int { return e.pos }

// Frames returns the length of the current block.
func (e *Engine) Frames() int { return e.frames }

// Every reports whether the current frame index is a multiple of n.
func (e *Engine) Every(n int) bool {
	return n > 0 && e.pos%n == 0
}

// In returns the live input frame.
func (e *Engine) In() core.Sample {
	return core.Stereo(sampleAt(e.in, 0, e.pos), sampleAt(e.in, 1, e.pos))
}

// Out adds s to the output frame.
func (e *Engine) Out(s core.Sample) {
	e.add(0, s.L)
	e.add(1, s.R)
}

// Set replaces the output frame with s.
func (e *Engine) Set(s core.Sample) {
	e.store(0, s.L)
	e.store(1, s.R)
}

// Get returns the output frame accumulated so far.
func (e *Engine) Get() core.Sample {
	return core.Stereo(sampleAt(e.out, 0, e.pos), sampleAt(e.out, 1, e.pos))
}

// SecondsToFrames converts seconds to whole frames, rounding down.
func (e *Engine) SecondsToFrames(sec float64) int {
	return e.cfg.SecondsToFrames(sec)
}

// FramesToSeconds converts frames to seconds.
func (e *Engine) FramesToSeconds(frames int) float64 {
	return e.cfg.FramesToSeconds(frames)
}

// Processed returns the total number of frames run.
func (e *Engine) Processed() uint64 { return e.processed.Load() }

// Blocks returns the number of Process calls.
func (e *Engine) Blocks() uint64 { return e.blocks.Load() }

func (e *Engine) add(c int, v float64) {
	if c < len(e.out) && e.pos < len(e.out[c]) {
		e.out[c][e.pos] += float32(v)
	}
}

func (e *Engine) store(c int, v float64) {
	if c < len(e.out) && e.pos < len(e.out[c]) {
		e.out[c][e.pos] = float32(v)
	}
}

func sampleAt(chans [][]float32, c, pos int) float64 {
	if c >= len(chans) || pos >= len(chans[c]) {
		return 0
	}
	return float64(chans[c][pos])
}
