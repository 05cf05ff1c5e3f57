package signal

// Metronome counts frames and fires every Duration frames.
//
// The handler runs on the calling goroutine, which for the instrument is
// the audio callback: it must not block or allocate.
type Metronome struct {
	handler  func()
	count    int
	duration int
	active   bool
	oneshot  bool
}

// MetronomeOption configures a Metronome.
type MetronomeOption func(*Metronome)

// WithHandler sets the function invoked on every trigger.
func WithHandler(fn func()) MetronomeOption {
	return func(m *Metronome) {
		m.handler = fn
	}
}

// WithOneshot makes the metronome disarm itself after the first trigger.
func WithOneshot() MetronomeOption {
	return func(m *Metronome) {
		m.oneshot = true
	}
}

// NewMetronome returns an armed metronome firing every durationFrames
// frames (at least 1).
func NewMetronome(durationFrames int, opts ...MetronomeOption) *Metronome {
	m := &Metronome{active: true}
	m.SetDuration(durationFrames)

	for _, opt := range opts {
		if opt != nil {
			opt(m)
		}
	}

	return m
}

// SetDuration sets the period in frames, floored at 1. The running count
// is kept so a shortened period fires on the next frame.
func (m *Metronome) SetDuration(frames int) {
	m.duration = max(frames, 1)
}

// Duration returns the period in frames.
func (m *Metronome) Duration() int { return m.duration }

// SetOneshot toggles self-disarming.
func (m *Metronome) SetOneshot(v bool) { m.oneshot = v }

// Arm re-activates the metronome and restarts the count.
func (m *Metronome) Arm() {
	m.active = true
	m.count = 0
}

// Active reports whether the metronome is counting.
func (m *Metronome) Active() bool { return m.active }

// Process advances one frame and reports whether it fired.
func (m *Metronome) Process() bool {
	if !m.active {
		return false
	}

	m.count++
	if m.count < m.duration {
		return false
	}

	if m.handler != nil {
		m.handler()
	}
	if m.oneshot {
		m.active = false
	}
	m.count = 0

	return true
}

// CountTriggers advances span frames and returns how many triggers fired.
func (m *Metronome) CountTriggers(span int) int {
	n := 0
	for range span {
		if m.Process() {
			n++
		}
	}

	return n
}
