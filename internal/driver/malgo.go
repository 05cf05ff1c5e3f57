//go:build !headless

package driver

import (
	"fmt"
	"strings"
	"sync/atomic"

	"github.com/gen2brain/malgo"
	"github.com/sirupsen/logrus"
)

// Malgo is a full-duplex stereo float32 device.
type Malgo struct {
	ctx    *malgo.AllocatedContext
	dev    *malgo.Device
	blocks *blocks
	proc   atomic.Pointer[Processor]
	rate   float64
	log    *logrus.Entry
}

// NewMalgo opens the default capture and playback devices.
func NewMalgo(cfg Config) (*Malgo, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	m := &Malgo{
		blocks: newBlocks(cfg.Period),
		log:    logrus.WithField("component", "driver.Malgo"),
	}

	ctx, err := malgo.InitContext(nil, malgo.ContextConfig{}, func(message string) {
		m.log.Debug(strings.TrimSpace(message))
	})
	if err != nil {
		return nil, fmt.Errorf("%w: malgo context: %v", ErrUnavailable, err)
	}
	m.ctx = ctx

	dc := malgo.DefaultDeviceConfig(malgo.Duplex)
	dc.PerformanceProfile = malgo.LowLatency
	dc.Capture.Format = malgo.FormatF32
	dc.Capture.Channels = Channels
	dc.Playback.Format = malgo.FormatF32
	dc.Playback.Channels = Channels
	dc.SampleRate = uint32(cfg.SampleRate)
	dc.PeriodSizeInFrames = uint32(cfg.Period)
	if cfg.Periods > 0 {
		dc.Periods = uint32(cfg.Periods)
	}
	dc.Alsa.NoMMap = 1

	dev, err := malgo.InitDevice(ctx.Context, dc, malgo.DeviceCallbacks{Data: m.data})
	if err != nil {
		m.closeContext()
		return nil, fmt.Errorf("driver: malgo device: %w", err)
	}
	m.dev = dev
	m.rate = float64(dev.SampleRate())
	if m.rate <= 0 {
		m.rate = cfg.SampleRate
	}

	return m, nil
}

func (m *Malgo) data(out, in []byte, frames uint32) {
	p := m.proc.Load()
	if p == nil {
		clear(out)
		return
	}
	m.blocks.run(*p, out, in, int(frames))
}

// SampleRate returns the rate the device runs at.
func (m *Malgo) SampleRate() float64 { return m.rate }

// Start connects p to the device.
func (m *Malgo) Start(p Processor) error {
	m.proc.Store(&p)
	if err := m.dev.Start(); err != nil {
		m.proc.Store(nil)
		return fmt.Errorf("driver: malgo start: %w", err)
	}
	m.log.WithField("function", "Start").Info("audio started")
	return nil
}

// Stop halts the device. The device thread has returned from its last
// callback when Stop returns.
func (m *Malgo) Stop() error {
	if !m.dev.IsStarted() {
		return ErrNotStarted
	}
	err := m.dev.Stop()
	m.proc.Store(nil)
	m.log.WithField("function", "Stop").Info("audio stopped")
	return err
}

// Close releases the device and the context.
func (m *Malgo) Close() error {
	if m.dev != nil {
		m.dev.Uninit()
		m.dev = nil
	}
	return m.closeContext()
}

func (m *Malgo) closeContext() error {
	if m.ctx == nil {
		return nil
	}
	err := m.ctx.Uninit()
	m.ctx.Free()
	m.ctx = nil
	return err
}
