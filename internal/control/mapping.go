package control

import "fmt"

// Mapping turns a controller change on a track into parameter writes.
// prev is the last value seen for the same track and controller.
type Mapping interface {
	Control(track, ctrl int, value, prev float64) error
}

// MappingFunc adapts a function to Mapping.
type MappingFunc func(track, ctrl int, value, prev float64) error

// Control calls f.
func (f MappingFunc) Control(track, ctrl int, value, prev float64) error {
	return f(track, ctrl, value, prev)
}

// Binding attaches a controller to a parameter or a toggle.
type Binding struct {
	Track  int
	Ctrl   int
	Param  string
	Toggle string
}

// Bindings is a static controller table. Parameters follow the
// controller value; toggles flip on a rising edge (value above 0.5 while
// the previous value was below 0.5).
type Bindings struct {
	params  map[key]*Param
	toggles map[key]*Toggle
}

type key struct{ track, ctrl int }

// NewBindings resolves binds against set.
func NewBindings(set *Set, binds ...Binding) (*Bindings, error) {
	b := &Bindings{
		params:  make(map[key]*Param),
		toggles: make(map[key]*Toggle),
	}
	for _, bind := range binds {
		k := key{bind.Track, bind.Ctrl}
		switch {
		case bind.Param != "" && bind.Toggle != "":
			return nil, fmt.Errorf("control: binding %d/%d names both %q and %q",
				bind.Track, bind.Ctrl, bind.Param, bind.Toggle)
		case bind.Param != "":
			p, err := set.Param(bind.Param)
			if err != nil {
				return nil, err
			}
			b.params[k] = p
		case bind.Toggle != "":
			t, err := set.Toggle(bind.Toggle)
			if err != nil {
				return nil, err
			}
			b.toggles[k] = t
		default:
			return nil, fmt.Errorf("control: binding %d/%d is empty", bind.Track, bind.Ctrl)
		}
	}
	return b, nil
}

// Control applies the binding for track and ctrl, if any.
func (b *Bindings) Control(track, ctrl int, value, prev float64) error {
	k := key{track, ctrl}
	if p, ok := b.params[k]; ok {
		p.Store(value)
		return nil
	}
	if t, ok := b.toggles[k]; ok && RisingEdge(value, prev) {
		t.Flip()
	}
	return nil
}

// RisingEdge reports a button press.
func RisingEdge(value, prev float64) bool {
	return value > 0.5 && prev < 0.5
}
