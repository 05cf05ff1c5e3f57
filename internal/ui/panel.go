//go:build !headless

package ui

import (
	"fmt"
	"image/color"
	"sync/atomic"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/basicfont"

	"github.com/cwbudde/compakt/internal/control"
)

var (
	colorBackground = color.RGBA{0x1d, 0x1f, 0x21, 0xff}
	colorForeground = color.RGBA{0xc5, 0xc8, 0xc6, 0xff}
	colorAccent     = color.RGBA{0xf0, 0xc6, 0x74, 0xff}
	colorDim        = color.RGBA{0x37, 0x3b, 0x41, 0xff}
)

// Source supplies the live readouts of the running instrument.
type Source interface {
	Envelope(ch int, dst []float64) int
	Faults() uint64
}

// Panel is the ebiten game. Widget edits are pushed as events so the
// control poller stays the single writer of the parameter set.
type Panel struct {
	set    *control.Set
	events *control.ChanSource
	src    Source
	track  func() int

	widgets []Widget
	drag    int
	env     []float64
	bars    []float64
	closed  atomic.Bool
}

// NewPanel returns a panel reading set and pushing edits into events.
// track reports the current controller track.
func NewPanel(set *control.Set, events *control.ChanSource, src Source, bins int, track func() int) *Panel {
	return &Panel{
		set:     set,
		events:  events,
		src:     src,
		track:   track,
		widgets: DefaultLayout(),
		drag:    -1,
		env:     make([]float64, bins),
	}
}

// Close makes the next Update end the game loop.
func (p *Panel) Close() { p.closed.Store(true) }

// Run opens the window and blocks until it is closed.
func (p *Panel) Run(title string) error {
	w, h := ScreenSize()
	ebiten.SetWindowSize(w, h)
	ebiten.SetWindowTitle(title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	return ebiten.RunGame(p)
}

// Update handles mouse input.
func (p *Panel) Update() error {
	if p.closed.Load() || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}

	x, y := ebiten.CursorPosition()
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		if i, ok := Hit(p.widgets, x, y); ok {
			w := p.widgets[i]
			if w.Kind == Button {
				p.events.Push(control.ToggleEvent(w.Name))
			} else {
				p.drag = i
			}
		}
	}
	if p.drag >= 0 {
		if !ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft) {
			p.drag = -1
			return nil
		}
		w := p.widgets[p.drag]
		p.events.Push(control.ParamEvent(w.Name, SliderValue(w, x, y)))
	}
	return nil
}

// Draw renders the panel.
func (p *Panel) Draw(screen *ebiten.Image) {
	screen.Fill(colorBackground)

	p.drawEnvelope(screen)
	for _, w := range p.widgets {
		v, err := p.set.Load(w.Name)
		if err != nil {
			continue
		}
		r := w.Cell.Pixels()
		switch w.Kind {
		case Slider:
			fillRect(screen, r.Min.X, r.Min.Y, r.Dx(), r.Dy(), colorDim)
			fh := int(v * float64(r.Dy()))
			fillRect(screen, r.Min.X, r.Max.Y-fh, r.Dx(), fh, colorForeground)
		case Button:
			c := colorDim
			if v > 0.5 {
				c = colorAccent
			}
			fillRect(screen, r.Min.X+2, r.Min.Y+2, r.Dx()-4, r.Dy()-4, c)
		}
		text.Draw(screen, w.Label, basicfont.Face7x13, r.Min.X, r.Min.Y-4, colorForeground)
	}

	tr := TrackCell.Pixels()
	if p.track != nil {
		text.Draw(screen, fmt.Sprint(p.track()+1), basicfont.Face7x13, tr.Min.X+12, tr.Min.Y+20, colorAccent)
	}
	if p.src != nil {
		if n := p.src.Faults(); n > 0 {
			text.Draw(screen, fmt.Sprintf("faults %d", n), basicfont.Face7x13, GridSize, tr.Min.Y+20, colorAccent)
		}
	}
}

func (p *Panel) drawEnvelope(screen *ebiten.Image) {
	r := EnvelopeCell.Pixels()
	fillRect(screen, r.Min.X, r.Min.Y, r.Dx(), r.Dy(), colorDim)
	if p.src == nil {
		return
	}

	half := r.Dy() / 2
	for ch := range 2 {
		n := p.src.Envelope(ch, p.env)
		p.bars = Bars(p.env[:n], r.Dx()/2, p.bars)
		base := r.Min.Y + (ch+1)*half
		for i, v := range p.bars {
			bh := int(v * float64(half))
			fillRect(screen, r.Min.X+2*i, base-bh, 2, bh, colorAccent)
		}
	}
}

// Layout fixes the logical screen size.
func (p *Panel) Layout(int, int) (int, int) { return ScreenSize() }

func fillRect(dst *ebiten.Image, x, y, w, h int, c color.Color) {
	if w <= 0 || h <= 0 {
		return
	}
	vector.DrawFilledRect(dst, float32(x), float32(y), float32(w), float32(h), c, false)
}
