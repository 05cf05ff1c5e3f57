package playback

import (
	"fmt"
	"math"

	"github.com/cwbudde/compakt/dsp/buffer"
	"github.com/cwbudde/compakt/dsp/core"
)

// Looper records into its own stereo ring and plays it back.
//
// In record mode input is written at the write cursor and passed through.
// In play mode a fractional read cursor moves by speed inside the first
// length*window frames. Switching modes seeds the new cursor from the
// other one, so play -> record -> play without writes resumes exactly
// where it stopped.
type Looper struct {
	ring   *buffer.Buffer
	write  float64
	read   float64
	window float64
	speed  float64
	record bool
	value  core.Sample
}

// NewLooper returns a recording looper over a ring of frames frames.
func NewLooper(frames int, engineRate float64) (*Looper, error) {
	ring, err := buffer.New(frames, core.Channels, engineRate)
	if err != nil {
		return nil, fmt.Errorf("looper: %w", err)
	}

	return &Looper{
		ring:   ring,
		window: 1,
		speed:  1,
		record: true,
	}, nil
}

// SetRecord switches between record (true) and play (false).
func (l *Looper) SetRecord(record bool) {
	if record == l.record {
		return
	}

	if record {
		l.write = l.read
	} else {
		l.read = l.write
	}
	l.record = record
}

// Recording reports the current mode.
func (l *Looper) Recording() bool { return l.record }

// SetWindow sets the played fraction of the ring, clamped to [0, 1].
func (l *Looper) SetWindow(v float64) {
	if math.IsNaN(v) {
		return
	}
	l.window = core.Clamp(v, 0, 1)
}

// SetSpeed sets the read increment per frame. Negative plays backwards.
func (l *Looper) SetSpeed(v float64) {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return
	}
	l.speed = v
}

// ReadPos returns the fractional read cursor.
func (l *Looper) ReadPos() float64 { return l.read }

// WritePos returns the write cursor.
func (l *Looper) WritePos() int { return int(l.write) }

// Len returns the ring length in frames.
func (l *Looper) Len() int { return l.ring.Len() }

// Process records or plays one frame.
func (l *Looper) Process(in core.Sample) core.Sample {
	n := float64(l.ring.Len())

	if l.record {
		l.ring.Write(int(l.write), in)
		l.write++
		if l.write >= n {
			l.write = 0
		}

		return in
	}

	l.read += l.speed
	if l.read >= n*l.window {
		l.read = 0
	} else if l.read < 0 {
		l.read = (n - 1) * l.window
	}

	l.value = l.ring.Read(int(math.Floor(l.read)))

	return l.value
}

// Reset clears the ring and both cursors and returns to record mode.
func (l *Looper) Reset() {
	l.ring.Zero()
	l.write, l.read = 0, 0
	l.record = true
	l.value = core.Sample{}
}
