package instrument

import "github.com/cwbudde/compakt/internal/control"

// Parameter names.
const (
	ParamPitch     = "pitch"
	ParamFreq      = "freq"
	ParamRes       = "res"
	ParamType      = "type"
	ParamComb      = "comb"
	ParamTime      = "time"
	ParamMix       = "mix"
	ParamMetro     = "metro"
	ParamVolume    = "volume"
	ParamBit       = "bit"
	ParamSpeed     = "speed"
	ParamLength    = "length"
	ParamLoopSpeed = "loopspeed"
	ParamGrain     = "grain"
	ParamInput     = "input"
	ParamShift     = "shift"

	ToggleCrush  = "crush"
	ToggleDelay  = "delay"
	ToggleLooper = "looper"
)

// ParamSpec is one row of the controller table.
type ParamSpec struct {
	Name    string
	Ctrl    int
	Default float64
	Label   string
}

// Params lists the normalized parameters with their track 0 controller.
var Params = []ParamSpec{
	{ParamPitch, 16, 0.5, "pit"},
	{ParamFreq, 17, 1, "frq"},
	{ParamRes, 18, 0.1, "res"},
	{ParamType, 19, 0, "t"},
	{ParamComb, 20, 0.1, "com"},
	{ParamTime, 21, 1, "del"},
	{ParamMix, 22, 0.5, "mix"},
	{ParamMetro, 23, 1, "met"},
	{ParamVolume, 7, 0, "vol"},
	{ParamBit, 0, 1, "bit"},
	{ParamSpeed, 2, 0.5, "spd"},
	{ParamLength, 5, 1, "dur"},
	{ParamLoopSpeed, 6, 0.75, "lsp"},
	{ParamGrain, 24, 0, "grn"},
	{ParamInput, 25, 0, "in"},
	{ParamShift, 26, 0.5, "shf"},
}

// ToggleSpec is a rising-edge switch.
type ToggleSpec struct {
	Name  string
	Ctrl  int
	Label string
}

// Toggles lists the switches with their track 0 controller.
var Toggles = []ToggleSpec{
	{ToggleCrush, 32, "csh"},
	{ToggleDelay, 37, "del"},
	{ToggleLooper, 69, "loo"},
}

// NewSet registers every parameter and toggle at its default.
func NewSet() *control.Set {
	set := control.NewSet()
	for _, p := range Params {
		set.AddParam(p.Name, p.Default)
	}
	for _, t := range Toggles {
		set.AddToggle(t.Name, false)
	}
	return set
}

// Bindings returns the default track 0 controller table.
func Bindings() []control.Binding {
	binds := make([]control.Binding, 0, len(Params)+len(Toggles))
	for _, p := range Params {
		binds = append(binds, control.Binding{Track: 0, Ctrl: p.Ctrl, Param: p.Name})
	}
	for _, t := range Toggles {
		binds = append(binds, control.Binding{Track: 0, Ctrl: t.Ctrl, Toggle: t.Name})
	}
	return binds
}

// DefaultMapping resolves Bindings against set.
func DefaultMapping(set *control.Set) (*control.Bindings, error) {
	return control.NewBindings(set, Bindings()...)
}
