package control

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/sirupsen/logrus"
)

const (
	// MaxControllers is the controller number range.
	MaxControllers = 256
	// DefaultTracks is the number of controller pages.
	DefaultTracks = 4
	// DefaultInterval is the polling period.
	DefaultInterval = 16 * time.Millisecond

	// TrackDown and TrackUp step the current track on a rising edge.
	TrackDown = 61
	TrackUp   = 62
)

// Source is a non-blocking event producer. Poll appends pending events
// to dst.
type Source interface {
	Poll(dst []Event) ([]Event, error)
	Close() error
}

// PollerOption configures a Poller.
type PollerOption func(*Poller)

// WithInterval sets the polling period.
func WithInterval(d time.Duration) PollerOption {
	return func(p *Poller) {
		if d > 0 {
			p.interval = d
		}
	}
}

// WithTracks sets the number of tracks.
func WithTracks(n int) PollerOption {
	return func(p *Poller) {
		if n > 0 {
			p.tracks = n
		}
	}
}

// WithQuitHandler registers the function run for Quit events.
func WithQuitHandler(fn func()) PollerOption {
	return func(p *Poller) { p.onQuit = fn }
}

// WithTick registers a function run after every polling round.
func WithTick(fn func()) PollerOption {
	return func(p *Poller) { p.onTick = fn }
}

// Poller drains its sources on a fixed period and applies the events.
// It is the only writer of the parameters in its Set.
type Poller struct {
	set      *Set
	mapping  Mapping
	sources  []Source
	interval time.Duration
	tracks   int
	onQuit   func()
	onTick   func()

	track   atomic.Int32
	prev    [][MaxControllers]float64
	nav     [MaxControllers]float64
	pending []Event

	quit    chan struct{}
	done    chan struct{}
	started bool
	stop    sync.Once
	log     *logrus.Entry
}

// NewPoller returns a poller applying controller events through m.
func NewPoller(set *Set, m Mapping, opts ...PollerOption) *Poller {
	p := &Poller{
		set:      set,
		mapping:  m,
		interval: DefaultInterval,
		tracks:   DefaultTracks,
		quit:     make(chan struct{}),
		done:     make(chan struct{}),
		log:      logrus.WithField("component", "control.Poller"),
	}
	for _, opt := range opts {
		opt(p)
	}
	p.prev = make([][MaxControllers]float64, p.tracks)
	return p
}

// AddSource registers s. It must be called before Start.
func (p *Poller) AddSource(s Source) {
	if s != nil {
		p.sources = append(p.sources, s)
	}
}

// SetMapping replaces the mapping. It must be called before Start.
func (p *Poller) SetMapping(m Mapping) { p.mapping = m }

// Track returns the current track.
func (p *Poller) Track() int { return int(p.track.Load()) }

// Tracks returns the number of tracks.
func (p *Poller) Tracks() int { return p.tracks }

// Start launches the polling goroutine.
func (p *Poller) Start() {
	p.started = true
	go p.loop()
}

// Stop signals the goroutine and waits for it to exit. Sources are not
// closed.
func (p *Poller) Stop() {
	p.stop.Do(func() { close(p.quit) })
	if p.started {
		<-p.done
	}
}

func (p *Poller) loop() {
	defer close(p.done)

	t := time.NewTicker(p.interval)
	defer t.Stop()

	for {
		select {
		case <-p.quit:
			return
		case <-t.C:
			p.Poll()
		}
	}
}

// Poll runs one round: drain every source, then apply the events in
// order.
func (p *Poller) Poll() {
	p.pending = p.pending[:0]
	for _, s := range p.sources {
		var err error
		p.pending, err = s.Poll(p.pending)
		if err != nil {
			p.log.WithFields(logrus.Fields{
				"function": "Poll",
				"error":    err,
			}).Warn("control source failed")
		}
	}

	for _, ev := range p.pending {
		p.Handle(ev)
	}

	if p.onTick != nil {
		p.onTick()
	}
}

// Handle applies a single event.
func (p *Poller) Handle(ev Event) {
	var err error

	switch ev.Kind {
	case Controller:
		p.controller(ev.Ctrl, ev.Value)
	case SetParam:
		err = p.set.Store(ev.Name, ev.Value)
	case NudgeParam:
		var prm *Param
		if prm, err = p.set.Param(ev.Name); err == nil {
			prm.Add(ev.Value)
		}
	case FlipToggle:
		_, err = p.set.Flip(ev.Name)
	case StepTrack:
		p.step(ev.Value)
	case Quit:
		if p.onQuit != nil {
			p.onQuit()
		}
	}

	if err != nil {
		p.log.WithFields(logrus.Fields{
			"function": "Handle",
			"kind":     ev.Kind.String(),
			"error":    err,
		}).Warn("control event rejected")
	}
}

func (p *Poller) controller(ctrl int, value float64) {
	if ctrl < 0 || ctrl >= MaxControllers {
		return
	}

	if ctrl == TrackDown || ctrl == TrackUp {
		if RisingEdge(value, p.nav[ctrl]) {
			if ctrl == TrackUp {
				p.step(1)
			} else {
				p.step(-1)
			}
		}
		p.nav[ctrl] = value
		return
	}

	track := p.Track()
	if p.mapping != nil {
		if err := p.mapping.Control(track, ctrl, value, p.prev[track][ctrl]); err != nil {
			p.log.WithFields(logrus.Fields{
				"function": "controller",
				"track":    track,
				"ctrl":     ctrl,
				"error":    err,
			}).Warn("mapping failed")
		}
	}
	p.prev[track][ctrl] = value
}

func (p *Poller) step(d float64) {
	t := p.Track()
	switch {
	case d > 0:
		t = (t + 1) % p.tracks
	case d < 0:
		t = (t + p.tracks - 1) % p.tracks
	}
	p.track.Store(int32(t))
}

// ChanSource is an in-memory source fed by Push, used by the UI.
type ChanSource struct {
	ch      chan Event
	dropped atomic.Uint64
	closed  atomic.Bool
}

// NewChanSource returns a source buffering up to size events.
func NewChanSource(size int) *ChanSource {
	return &ChanSource{ch: make(chan Event, max(size, 1))}
}

// Push queues ev without blocking. Events are dropped when the buffer is
// full or the source is closed.
func (c *ChanSource) Push(ev Event) bool {
	if c.closed.Load() {
		return false
	}
	select {
	case c.ch <- ev:
		return true
	default:
		c.dropped.Add(1)
		return false
	}
}

// Dropped returns the number of events lost to a full buffer.
func (c *ChanSource) Dropped() uint64 { return c.dropped.Load() }

// Poll drains the queued events.
func (c *ChanSource) Poll(dst []Event) ([]Event, error) {
	for {
		select {
		case ev := <-c.ch:
			dst = append(dst, ev)
		default:
			return dst, nil
		}
	}
}

// Close stops accepting events.
func (c *ChanSource) Close() error {
	c.closed.Store(true)
	return nil
}
