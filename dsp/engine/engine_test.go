package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cwbudde/compakt/dsp/core"
)

type graphFunc func(e *Engine)

func (f graphFunc) Frame(e *Engine) { f(e) }

type countingGraph struct {
	blocks int
	frames []int
}

func (g *countingGraph) Block(e *Engine) {
	g.blocks++
	g.frames = append(g.frames, e.Frames())
}

func (g *countingGraph) Frame(*Engine) {}

func newEngine(t *testing.T, g Graph) *Engine {
	t.Helper()
	e, err := New(core.WithSampleRate(48000), core.WithBlockSize(8))
	require.NoError(t, err)
	if g != nil {
		e.Attach(g)
	}
	return e
}

func buffers(frames int) [][]float32 {
	return [][]float32{make([]float32, frames), make([]float32, frames)}
}

func TestNewDefaults(t *testing.T) {
	e, err := New(core.WithSampleRate(0), core.WithBlockSize(-1))
	require.NoError(t, err)
	assert.InDelta(t, 48000.0, e.SampleRate(), 0)
	assert.Equal(t, 256, e.BlockSize())
}

func TestProcessClearsOutputs(t *testing.T) {
	e := newEngine(t, nil)
	out := buffers(4)
	for c := range out {
		for i := range out[c] {
			out[c][i] = 9
		}
	}

	e.Process(buffers(4), out)

	for c := range out {
		assert.Equal(t, []float32{0, 0, 0, 0}, out[c])
	}
	assert.EqualValues(t, 4, e.Processed())
	assert.EqualValues(t, 1, e.Blocks())
}

func TestPassThrough(t *testing.T) {
	e := newEngine(t, graphFunc(func(e *Engine) { e.Out(e.In()) }))
	in := [][]float32{{1, 2, 3}, {-1, -2, -3}}
	out := buffers(3)

	e.Process(in, out)

	assert.Equal(t, in[0], out[0])
	assert.Equal(t, in[1], out[1])
}

func TestOutAccumulatesSetReplaces(t *testing.T) {
	e := newEngine(t, graphFunc(func(e *Engine) {
		e.Out(core.Mono(0.25))
		e.Out(core.Stereo(0.5, 1))
		if e.Pos() == 1 {
			e.Set(core.Mono(-1))
		}
		if e.Pos() == 2 {
			e.Out(e.Get())
		}
	}))
	out := buffers(3)

	e.Process(nil, out)

	assert.Equal(t, []float32{0.75, -1, 1.5}, out[0])
	assert.Equal(t, []float32{1.25, -1, 2.5}, out[1])
}

func TestMissingInputReadsSilence(t *testing.T) {
	var got []core.Sample
	e := newEngine(t, graphFunc(func(e *Engine) { got = append(got, e.In()) }))

	e.Process([][]float32{{0.5}}, buffers(2))

	require.Len(t, got, 2)
	assert.Equal(t, core.Stereo(0.5, 0), got[0])
	assert.Equal(t, core.Sample{}, got[1])
}

func TestBlockHookRunsOncePerCall(t *testing.T) {
	g := &countingGraph{}
	e := newEngine(t, g)

	e.Process(nil, buffers(16))
	e.Process(nil, buffers(5))

	assert.Equal(t, 2, g.blocks)
	assert.Equal(t, []int{16, 5}, g.frames)
	assert.EqualValues(t, 21, e.Processed())
}

func TestEvery(t *testing.T) {
	var hits []int
	e := newEngine(t, graphFunc(func(e *Engine) {
		if e.Every(4) {
			hits = append(hits, e.Pos())
		}
		assert.False(t, e.Every(0))
	}))

	e.Process(nil, buffers(10))

	assert.Equal(t, []int{0, 4, 8}, hits)
}

func TestTimeConversion(t *testing.T) {
	e := newEngine(t, nil)

	assert.Equal(t, 48000, e.SecondsToFrames(1))
	assert.Equal(t, 4799, e.SecondsToFrames(0.09999))
	assert.InDelta(t, 0.5, e.FramesToSeconds(24000), 1e-12)
}
