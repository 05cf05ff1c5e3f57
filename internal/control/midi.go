package control

import (
	"errors"
	"fmt"
)

// ErrUnavailable is returned when the binary was built without MIDI
// support.
var ErrUnavailable = errors.New("control: MIDI support not built in (build with -tags portmidi)")

// MIDIDevice describes one MIDI port.
type MIDIDevice struct {
	ID        int
	Interface string
	Name      string
	Input     bool
	Output    bool
}

func (d MIDIDevice) String() string {
	dir := ""
	if d.Input {
		dir += "in"
	}
	if d.Output {
		if dir != "" {
			dir += "/"
		}
		dir += "out"
	}
	return fmt.Sprintf("device %d %s %s (%s)", d.ID, d.Interface, d.Name, dir)
}

// midiBufferSize bounds one read from the input stream.
const midiBufferSize = 8
