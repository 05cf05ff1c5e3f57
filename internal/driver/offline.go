package driver

import (
	"fmt"
	"sync"
)

// Offline is a driver without a device: Render pumps the processor
// synchronously.
type Offline struct {
	cfg Config

	mu sync.Mutex
	p  Processor

	inV     [Channels][]float32
	outV    [Channels][]float32
	scratch [Channels][]float32
	zero    []float32
}

// NewOffline returns an offline driver running in cfg.Period blocks.
func NewOffline(cfg Config) (*Offline, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	o := &Offline{cfg: cfg, zero: make([]float32, cfg.Period)}
	for c := range o.scratch {
		o.scratch[c] = make([]float32, cfg.Period)
	}
	return o, nil
}

// SampleRate returns the configured rate.
func (o *Offline) SampleRate() float64 { return o.cfg.SampleRate }

// Period returns the block size.
func (o *Offline) Period() int { return o.cfg.Period }

// Start installs p.
func (o *Offline) Start(p Processor) error {
	o.mu.Lock()
	o.p = p
	o.mu.Unlock()
	return nil
}

// Stop removes the processor.
func (o *Offline) Stop() error {
	o.mu.Lock()
	o.p = nil
	o.mu.Unlock()
	return nil
}

// Close stops the driver.
func (o *Offline) Close() error { return o.Stop() }

// Render runs the processor over out in period-sized blocks, feeding the
// matching frames of in. Missing input channels or frames read as
// silence. The block count is len(out[0]).
func (o *Offline) Render(in, out [][]float32) error {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.p == nil {
		return ErrNotStarted
	}
	if len(out) < Channels || len(out[1]) < len(out[0]) {
		return fmt.Errorf("driver: render needs %d equal output channels", Channels)
	}

	frames := len(out[0])
	for off := 0; off < frames; off += o.cfg.Period {
		n := min(o.cfg.Period, frames-off)
		for c := range Channels {
			o.outV[c] = out[c][off : off+n]
			o.inV[c] = o.input(in, c, off, n)
		}
		o.p.Process(o.inV[:], o.outV[:])
	}
	return nil
}

// input returns frames [off, off+n) of channel c, padding whatever in
// does not cover with silence.
func (o *Offline) input(in [][]float32, c, off, n int) []float32 {
	if c >= len(in) || off >= len(in[c]) {
		return o.zero[:n]
	}
	if off+n <= len(in[c]) {
		return in[c][off : off+n]
	}

	buf := o.scratch[c][:n]
	k := copy(buf, in[c][off:])
	clear(buf[k:])
	return buf
}

// RenderFrames renders frames frames of output with silent input.
func (o *Offline) RenderFrames(frames int) ([][]float32, error) {
	out := [][]float32{make([]float32, frames), make([]float32, frames)}
	if err := o.Render(nil, out); err != nil {
		return nil, err
	}
	return out, nil
}
