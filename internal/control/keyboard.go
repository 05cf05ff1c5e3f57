package control

import (
	"io"
	"sync"

	"github.com/sirupsen/logrus"
	"golang.org/x/term"
)

// VolumeStep is the keyboard volume nudge.
const VolumeStep = 0.05

// Keyboard reads single key presses from a terminal. When fd refers to a
// terminal it is put in raw mode until Close.
type Keyboard struct {
	r      io.Reader
	fd     int
	state  *term.State
	events *ChanSource
	done   chan struct{}
	once   sync.Once
}

// NewKeyboard starts reading keys from r. fd is the terminal descriptor
// behind r, or -1.
func NewKeyboard(r io.Reader, fd int) (*Keyboard, error) {
	k := &Keyboard{
		r:      r,
		fd:     fd,
		events: NewChanSource(64),
		done:   make(chan struct{}),
	}

	if fd >= 0 && term.IsTerminal(fd) {
		st, err := term.MakeRaw(fd)
		if err != nil {
			return nil, err
		}
		k.state = st
	}

	go k.read()

	logrus.WithFields(logrus.Fields{
		"function": "NewKeyboard",
		"raw":      k.state != nil,
	}).Info("keyboard control enabled")

	return k, nil
}

func (k *Keyboard) read() {
	defer close(k.done)

	buf := make([]byte, 16)
	for {
		n, err := k.r.Read(buf)
		for _, b := range buf[:n] {
			for _, ev := range KeyEvents(b) {
				k.events.Push(ev)
			}
		}
		if err != nil {
			return
		}
	}
}

// Poll drains pending key events.
func (k *Keyboard) Poll(dst []Event) ([]Event, error) {
	return k.events.Poll(dst)
}

// Done is closed when the reader reaches end of input.
func (k *Keyboard) Done() <-chan struct{} { return k.done }

// Close restores the terminal. A read blocked on the terminal ends with
// the process.
func (k *Keyboard) Close() error {
	var err error
	k.once.Do(func() {
		k.events.Close()
		if k.state != nil {
			err = term.Restore(k.fd, k.state)
		}
	})
	return err
}

// KeyEvents translates one key into events.
func KeyEvents(b byte) []Event {
	switch b {
	case 'c':
		return []Event{ToggleEvent("crush")}
	case 'd':
		return []Event{ToggleEvent("delay")}
	case 'l':
		return []Event{ToggleEvent("looper")}
	case '[':
		return []Event{{Kind: StepTrack, Value: -1}}
	case ']':
		return []Event{{Kind: StepTrack, Value: 1}}
	case '-':
		return []Event{{Kind: NudgeParam, Name: "volume", Value: -VolumeStep}}
	case '=', '+':
		return []Event{{Kind: NudgeParam, Name: "volume", Value: VolumeStep}}
	case 'q', 0x03:
		return []Event{{Kind: Quit}}
	}
	return nil
}
