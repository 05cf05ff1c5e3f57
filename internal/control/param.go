// Package control carries controller input from MIDI, keyboard, UI and Lua
// scripts into lock-free parameters read by the audio loop.
//
// A single poller goroutine writes every Param and Toggle. The audio
// callback only loads them, once per block.
package control

import (
	"errors"
	"fmt"
	"math"
	"sync/atomic"
)

// ErrUnknownParam is returned when a name is not registered in a Set.
var ErrUnknownParam = errors.New("control: unknown parameter")

// Param is a normalized control value in [0, 1].
type Param struct {
	name string
	def  float64
	bits atomic.Uint64
}

func newParam(name string, def float64) *Param {
	p := &Param{name: name, def: clampNorm(def, 0)}
	p.bits.Store(math.Float64bits(p.def))
	return p
}

// Name returns the parameter name.
func (p *Param) Name() string { return p.name }

// Default returns the initial value.
func (p *Param) Default() float64 { return p.def }

// Load returns the current value.
func (p *Param) Load() float64 { return math.Float64frombits(p.bits.Load()) }

// Store sets the value, clamped to [0, 1]. NaN is ignored.
func (p *Param) Store(v float64) {
	if math.IsNaN(v) {
		return
	}
	p.bits.Store(math.Float64bits(clampNorm(v, 0)))
}

// Add nudges the value by d.
func (p *Param) Add(d float64) { p.Store(p.Load() + d) }

// Reset restores the default.
func (p *Param) Reset() { p.Store(p.def) }

// Toggle is an on/off switch.
type Toggle struct {
	name string
	def  bool
	v    atomic.Bool
}

// Name returns the toggle name.
func (t *Toggle) Name() string { return t.name }

// Load reports whether the toggle is on.
func (t *Toggle) Load() bool { return t.v.Load() }

// Store sets the toggle.
func (t *Toggle) Store(v bool) { t.v.Store(v) }

// Flip inverts the toggle and returns the new state.
func (t *Toggle) Flip() bool {
	for {
		old := t.v.Load()
		if t.v.CompareAndSwap(old, !old) {
			return !old
		}
	}
}

// Reset restores the default.
func (t *Toggle) Reset() { t.v.Store(t.def) }

// Set is the registry of named parameters and toggles. Registration
// happens at startup; afterwards values are read and written atomically.
type Set struct {
	params  map[string]*Param
	toggles map[string]*Toggle
	porder  []*Param
	torder  []*Toggle
}

// NewSet returns an empty registry.
func NewSet() *Set {
	return &Set{
		params:  make(map[string]*Param),
		toggles: make(map[string]*Toggle),
	}
}

// AddParam registers a parameter. Registering an existing name returns it.
func (s *Set) AddParam(name string, def float64) *Param {
	if p, ok := s.params[name]; ok {
		return p
	}
	p := newParam(name, def)
	s.params[name] = p
	s.porder = append(s.porder, p)
	return p
}

// AddToggle registers a toggle. Registering an existing name returns it.
func (s *Set) AddToggle(name string, def bool) *Toggle {
	if t, ok := s.toggles[name]; ok {
		return t
	}
	t := &Toggle{name: name, def: def}
	t.v.Store(def)
	s.toggles[name] = t
	s.torder = append(s.torder, t)
	return t
}

// Param looks up a parameter.
func (s *Set) Param(name string) (*Param, error) {
	if p, ok := s.params[name]; ok {
		return p, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownParam, name)
}

// Toggle looks up a toggle.
func (s *Set) Toggle(name string) (*Toggle, error) {
	if t, ok := s.toggles[name]; ok {
		return t, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownParam, name)
}

// Params returns the parameters in registration order.
func (s *Set) Params() []*Param { return s.porder }

// Toggles returns the toggles in registration order.
func (s *Set) Toggles() []*Toggle { return s.torder }

// Store sets a parameter by name.
func (s *Set) Store(name string, v float64) error {
	p, err := s.Param(name)
	if err != nil {
		return err
	}
	p.Store(v)
	return nil
}

// Load reads a parameter or toggle by name. Toggles read as 0 or 1.
func (s *Set) Load(name string) (float64, error) {
	if p, ok := s.params[name]; ok {
		return p.Load(), nil
	}
	if t, ok := s.toggles[name]; ok {
		if t.Load() {
			return 1, nil
		}
		return 0, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownParam, name)
}

// Flip inverts a toggle by name.
func (s *Set) Flip(name string) (bool, error) {
	t, err := s.Toggle(name)
	if err != nil {
		return false, err
	}
	return t.Flip(), nil
}

// Reset restores every default.
func (s *Set) Reset() {
	for _, p := range s.porder {
		p.Reset()
	}
	for _, t := range s.torder {
		t.Reset()
	}
}

func clampNorm(v, nan float64) float64 {
	switch {
	case math.IsNaN(v):
		return nan
	case v < 0:
		return 0
	case v > 1:
		return 1
	}
	return v
}
