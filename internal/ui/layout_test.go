package ui

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cwbudde/compakt/internal/instrument"
)

func TestDefaultLayoutCoversInstrument(t *testing.T) {
	ws := DefaultLayout()
	assert.Len(t, ws, len(instrument.Params)+len(instrument.Toggles))

	w, h := ScreenSize()
	screen := Cell{0, 0, GridWidth, GridHeight}.Pixels()
	assert.Equal(t, w, screen.Dx())
	assert.Equal(t, h, screen.Dy())

	for i, a := range ws {
		require.True(t, a.Cell.Pixels().In(screen), "%s off screen", a.Name)
		require.False(t, a.Cell.Pixels().Overlaps(EnvelopeCell.Pixels()), "%s overlaps the envelope", a.Name)
		for _, b := range ws[i+1:] {
			require.False(t, a.Cell.Pixels().Overlaps(b.Cell.Pixels()), "%s overlaps %s", a.Name, b.Name)
		}
	}
}

func TestHitAndSliderValue(t *testing.T) {
	ws := DefaultLayout()

	i, ok := Hit(ws, 1*GridSize+5, 8*GridSize)
	require.True(t, ok)
	assert.Equal(t, instrument.ParamPitch, ws[i].Name)
	assert.Equal(t, Slider, ws[i].Kind)

	assert.InDelta(t, 1.0, SliderValue(ws[i], 0, 8*GridSize), 1e-12)
	assert.InDelta(t, 0.5, SliderValue(ws[i], 0, 10*GridSize), 1e-12)
	assert.InDelta(t, 0.0, SliderValue(ws[i], 0, 20*GridSize), 0)
	assert.InDelta(t, 1.0, SliderValue(ws[i], 0, 0), 0)

	i, ok = Hit(ws, 11*GridSize+1, 15*GridSize+1)
	require.True(t, ok)
	assert.Equal(t, instrument.ToggleLooper, ws[i].Name)
	assert.Equal(t, Button, ws[i].Kind)

	_, ok = Hit(ws, 0, 0)
	assert.False(t, ok)
}

func TestBars(t *testing.T) {
	env := []float64{0.1, 0.5, 2, 0, 0.3, 0.2}

	assert.Equal(t, []float64{0.5, 1, 0.3}, Bars(env, 3, nil))
	assert.Len(t, Bars(env, 12, nil), 12)
	assert.Empty(t, Bars(nil, 4, nil))
	assert.Empty(t, Bars(env, 0, nil))
}
