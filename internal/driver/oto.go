//go:build !headless

package driver

import (
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/ebitengine/oto/v3"
	"github.com/sirupsen/logrus"
)

// Oto is an output-only driver. The processor sees silent input.
type Oto struct {
	cfg    Config
	ctx    *oto.Context
	blocks *blocks
	proc   atomic.Pointer[Processor]

	mu     sync.Mutex
	player *oto.Player
	log    *logrus.Entry
}

// NewOto creates the playback context. oto allows one context per
// process.
func NewOto(cfg Config) (*Oto, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	period := time.Duration(float64(cfg.Period) / cfg.SampleRate * float64(time.Second))
	ctx, ready, err := oto.NewContext(&oto.NewContextOptions{
		SampleRate:   int(cfg.SampleRate),
		ChannelCount: Channels,
		Format:       oto.FormatFloat32LE,
		BufferSize:   period,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: oto context: %v", ErrUnavailable, err)
	}
	<-ready

	return &Oto{
		cfg:    cfg,
		ctx:    ctx,
		blocks: newBlocks(cfg.Period),
		log:    logrus.WithField("component", "driver.Oto"),
	}, nil
}

// Read renders the next chunk for the player.
func (o *Oto) Read(b []byte) (int, error) {
	n := len(b) - len(b)%(4*Channels)
	p := o.proc.Load()
	if p == nil {
		clear(b[:n])
		return n, nil
	}
	o.blocks.run(*p, b[:n], nil, n/(4*Channels))
	return n, nil
}

// SampleRate returns the configured rate.
func (o *Oto) SampleRate() float64 { return o.cfg.SampleRate }

// Start begins playback through p.
func (o *Oto) Start(p Processor) error {
	o.mu.Lock()
	defer o.mu.Unlock()

	o.proc.Store(&p)
	if o.player == nil {
		o.player = o.ctx.NewPlayer(o)
	}
	o.player.Play()
	o.log.WithField("function", "Start").Info("audio started")
	return nil
}

// Stop closes the player.
func (o *Oto) Stop() error {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.player == nil {
		return ErrNotStarted
	}
	err := o.player.Close()
	o.player = nil
	o.proc.Store(nil)
	o.log.WithField("function", "Stop").Info("audio stopped")
	return err
}

// Close stops playback if needed and suspends the context.
func (o *Oto) Close() error {
	o.mu.Lock()
	playing := o.player != nil
	o.mu.Unlock()
	if playing {
		if err := o.Stop(); err != nil {
			return err
		}
	}
	return o.ctx.Suspend()
}
