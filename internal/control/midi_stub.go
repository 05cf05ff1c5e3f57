//go:build !portmidi

package control

// ListMIDIDevices reports ErrUnavailable without the portmidi tag.
func ListMIDIDevices() ([]MIDIDevice, error) {
	return nil, ErrUnavailable
}

// MIDI is unavailable without the portmidi tag.
type MIDI struct{}

// OpenMIDI reports ErrUnavailable without the portmidi tag.
func OpenMIDI(int) (*MIDI, error) {
	return nil, ErrUnavailable
}

// Device returns the zero device.
func (*MIDI) Device() MIDIDevice { return MIDIDevice{} }

// Poll returns dst unchanged.
func (*MIDI) Poll(dst []Event) ([]Event, error) { return dst, nil }

// Close does nothing.
func (*MIDI) Close() error { return nil }
