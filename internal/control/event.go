package control

import "fmt"

// Kind selects how an Event is applied.
type Kind int

const (
	// Controller is a raw controller change routed through the Mapping
	// for the current track.
	Controller Kind = iota
	// SetParam stores Value into the named parameter.
	SetParam
	// NudgeParam adds Value to the named parameter.
	NudgeParam
	// FlipToggle inverts the named toggle.
	FlipToggle
	// StepTrack moves the current track by Value (+1 or -1), wrapping.
	StepTrack
	// Quit asks the application to shut down.
	Quit
)

func (k Kind) String() string {
	switch k {
	case Controller:
		return "controller"
	case SetParam:
		return "set"
	case NudgeParam:
		return "nudge"
	case FlipToggle:
		return "flip"
	case StepTrack:
		return "track"
	case Quit:
		return "quit"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Event is one control input.
type Event struct {
	Kind  Kind
	Ctrl  int
	Name  string
	Value float64
}

// ControllerEvent returns a controller change with value in [0, 1].
func ControllerEvent(ctrl int, value float64) Event {
	return Event{Kind: Controller, Ctrl: ctrl, Value: value}
}

// ParamEvent returns an absolute parameter change.
func ParamEvent(name string, value float64) Event {
	return Event{Kind: SetParam, Name: name, Value: value}
}

// ToggleEvent returns a toggle flip.
func ToggleEvent(name string) Event {
	return Event{Kind: FlipToggle, Name: name}
}

// MIDIControlChange decodes a raw channel message. Only control change
// messages (status 0xBn) are accepted; data2 is scaled by 1/127.
func MIDIControlChange(status, data1, data2 int64) (Event, bool) {
	if status&0xF0 != 0xB0 {
		return Event{}, false
	}
	if data1 < 0 || data1 >= MaxControllers {
		return Event{}, false
	}
	return ControllerEvent(int(data1), float64(data2&0x7F)/127), true
}
