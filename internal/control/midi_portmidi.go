//go:build portmidi

package control

import (
	"fmt"

	"github.com/rakyll/portmidi"
	"github.com/sirupsen/logrus"
)

// ListMIDIDevices enumerates the available MIDI ports.
func ListMIDIDevices() ([]MIDIDevice, error) {
	if err := portmidi.Initialize(); err != nil {
		return nil, fmt.Errorf("control: portmidi: %w", err)
	}
	defer portmidi.Terminate()

	n := portmidi.CountDevices()
	devs := make([]MIDIDevice, 0, n)
	for i := range n {
		info := portmidi.Info(portmidi.DeviceID(i))
		if info == nil {
			continue
		}
		devs = append(devs, MIDIDevice{
			ID:        i,
			Interface: info.Interface,
			Name:      info.Name,
			Input:     info.IsInputAvailable,
			Output:    info.IsOutputAvailable,
		})
	}
	return devs, nil
}

// MIDI is a controller source reading a portmidi input stream.
type MIDI struct {
	in  *portmidi.Stream
	dev MIDIDevice
}

// OpenMIDI opens input device id. Pending messages are discarded.
func OpenMIDI(id int) (*MIDI, error) {
	if err := portmidi.Initialize(); err != nil {
		return nil, fmt.Errorf("control: portmidi: %w", err)
	}

	info := portmidi.Info(portmidi.DeviceID(id))
	if info == nil {
		portmidi.Terminate()
		return nil, fmt.Errorf("control: no MIDI device %d", id)
	}

	in, err := portmidi.NewInputStream(portmidi.DeviceID(id), 1024)
	if err != nil {
		portmidi.Terminate()
		return nil, fmt.Errorf("control: open MIDI device %d: %w", id, err)
	}

	m := &MIDI{
		in:  in,
		dev: MIDIDevice{ID: id, Interface: info.Interface, Name: info.Name, Input: true},
	}
	for {
		ok, err := in.Poll()
		if err != nil || !ok {
			break
		}
		if _, err := in.Read(midiBufferSize); err != nil {
			break
		}
	}

	logrus.WithFields(logrus.Fields{
		"function":  "OpenMIDI",
		"id":        id,
		"interface": info.Interface,
		"name":      info.Name,
	}).Info("opened MIDI input")

	return m, nil
}

// Device returns the opened port.
func (m *MIDI) Device() MIDIDevice { return m.dev }

// Poll reads every pending control change.
func (m *MIDI) Poll(dst []Event) ([]Event, error) {
	for {
		ok, err := m.in.Poll()
		if err != nil {
			return dst, err
		}
		if !ok {
			return dst, nil
		}

		events, err := m.in.Read(midiBufferSize)
		if err != nil {
			return dst, err
		}
		for _, e := range events {
			if ev, ok := MIDIControlChange(e.Status, e.Data1, e.Data2); ok {
				dst = append(dst, ev)
			}
		}
	}
}

// Close closes the stream and terminates portmidi.
func (m *MIDI) Close() error {
	err := m.in.Close()
	portmidi.Terminate()
	return err
}
