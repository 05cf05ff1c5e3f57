// Package ui draws the compakt control panel: a grid of vertical
// sliders and toggle buttons, the shifter's spectrum envelope and the
// current controller track.
package ui

import (
	"errors"
	"image"

	"github.com/cwbudde/compakt/dsp/core"
	"github.com/cwbudde/compakt/internal/instrument"
)

// ErrUnavailable is returned by Run in headless builds.
var ErrUnavailable = errors.New("ui: panel not built in (headless build)")

// Grid geometry in cells and pixels per cell.
const (
	GridSize   = 32
	GridWidth  = 32
	GridHeight = 18
)

// ScreenSize returns the logical panel size in pixels.
func ScreenSize() (int, int) { return GridSize * GridWidth, GridSize * GridHeight }

// Kind is a widget type.
type Kind int

const (
	Slider Kind = iota
	Button
)

// Cell is a rectangle in grid units.
type Cell struct{ X, Y, W, H int }

// Pixels returns the cell rectangle in screen pixels.
func (c Cell) Pixels() image.Rectangle {
	return image.Rect(c.X*GridSize, c.Y*GridSize, (c.X+c.W)*GridSize, (c.Y+c.H)*GridSize)
}

// Widget is one control bound to a parameter or toggle name.
type Widget struct {
	Name  string
	Label string
	Kind  Kind
	Cell  Cell
}

// EnvelopeCell is where the spectrum envelope is drawn.
var EnvelopeCell = Cell{1, 1, GridWidth - 2, 6}

// TrackCell shows the current controller track.
var TrackCell = Cell{GridWidth - 1, GridHeight - 1, 1, 1}

var positions = map[string]Cell{
	instrument.ParamPitch:     {1, 8, 1, 4},
	instrument.ParamFreq:      {3, 8, 1, 4},
	instrument.ParamRes:       {5, 8, 1, 4},
	instrument.ParamType:      {7, 8, 1, 4},
	instrument.ParamComb:      {9, 8, 1, 4},
	instrument.ParamTime:      {11, 8, 1, 4},
	instrument.ParamMix:       {13, 8, 1, 4},
	instrument.ParamMetro:     {15, 8, 1, 4},
	instrument.ParamGrain:     {17, 8, 1, 4},
	instrument.ParamInput:     {19, 8, 1, 4},
	instrument.ParamShift:     {21, 8, 1, 4},
	instrument.ParamVolume:    {GridWidth - 2, 8, 1, GridHeight - 9},
	instrument.ParamBit:       {1, 13, 1, 4},
	instrument.ParamSpeed:     {7, 13, 1, 4},
	instrument.ParamLength:    {13, 13, 1, 4},
	instrument.ParamLoopSpeed: {15, 13, 1, 4},

	instrument.ToggleCrush:  {3, 13, 1, 1},
	instrument.ToggleDelay:  {11, 13, 1, 1},
	instrument.ToggleLooper: {11, 15, 1, 1},
}

// DefaultLayout places every instrument parameter and toggle.
func DefaultLayout() []Widget {
	ws := make([]Widget, 0, len(instrument.Params)+len(instrument.Toggles))
	for _, p := range instrument.Params {
		if c, ok := positions[p.Name]; ok {
			ws = append(ws, Widget{Name: p.Name, Label: p.Label, Kind: Slider, Cell: c})
		}
	}
	for _, t := range instrument.Toggles {
		if c, ok := positions[t.Name]; ok {
			ws = append(ws, Widget{Name: t.Name, Label: t.Label, Kind: Button, Cell: c})
		}
	}
	return ws
}

// Hit returns the index of the widget under the pixel (x, y).
func Hit(ws []Widget, x, y int) (int, bool) {
	pt := image.Pt(x, y)
	for i, w := range ws {
		if pt.In(w.Cell.Pixels()) {
			return i, true
		}
	}
	return -1, false
}

// SliderValue maps a pixel to the value of a vertical slider: 1 at the
// top edge, 0 at the bottom. Points outside are clamped.
func SliderValue(w Widget, x, y int) float64 {
	r := w.Cell.Pixels()
	if r.Dy() == 0 {
		return 0
	}
	return core.Clamp(1-float64(y-r.Min.Y)/float64(r.Dy()), 0, 1)
}

// Bars maps an envelope onto width columns, taking the peak of the bins
// covered by each column, scaled into [0, 1].
func Bars(env []float64, width int, dst []float64) []float64 {
	dst = dst[:0]
	if width <= 0 || len(env) == 0 {
		return dst
	}
	for col := range width {
		lo := col * len(env) / width
		hi := max((col+1)*len(env)/width, lo+1)
		peak := 0.0
		for _, v := range env[lo:min(hi, len(env))] {
			peak = max(peak, v)
		}
		dst = append(dst, core.Clamp(peak, 0, 1))
	}
	return dst
}
