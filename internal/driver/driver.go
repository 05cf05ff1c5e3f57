// Package driver connects a Processor to physical or offline audio I/O.
//
// Every backend delivers planar stereo float32 blocks to the processor
// from a single callback goroutine. After Stop returns no further
// callback runs, so the caller may release what the processor uses.
package driver

import (
	"errors"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
)

var (
	// ErrUnavailable is returned for a backend not compiled into the binary.
	ErrUnavailable = errors.New("driver: backend unavailable")
	// ErrNotStarted is returned when rendering before Start.
	ErrNotStarted = errors.New("driver: not started")
)

// Channels is the fixed stereo channel count of every backend.
const Channels = 2

// Processor runs one block. in and out are valid only during the call.
type Processor interface {
	Process(in, out [][]float32)
}

// ProcessorFunc adapts a function to Processor.
type ProcessorFunc func(in, out [][]float32)

// Process calls f.
func (f ProcessorFunc) Process(in, out [][]float32) { f(in, out) }

// Driver is an audio backend.
type Driver interface {
	SampleRate() float64
	Start(p Processor) error
	Stop() error
	Close() error
}

// Backend names a driver implementation.
type Backend string

const (
	BackendMalgo   Backend = "malgo"
	BackendOto     Backend = "oto"
	BackendOffline Backend = "offline"
)

// ParseBackend resolves a backend name.
func ParseBackend(s string) (Backend, error) {
	switch b := Backend(strings.ToLower(s)); b {
	case BackendMalgo, BackendOto, BackendOffline:
		return b, nil
	}
	return "", fmt.Errorf("driver: unknown backend %q", s)
}

// Config is the requested stream format.
type Config struct {
	SampleRate float64
	// Period is the block size in frames.
	Period int
	// Periods is the number of device periods (malgo only).
	Periods int
}

// DefaultConfig returns 48 kHz with 256-frame periods.
func DefaultConfig() Config {
	return Config{SampleRate: 48000, Period: 256, Periods: 3}
}

func (c Config) validate() error {
	if c.SampleRate <= 0 {
		return fmt.Errorf("driver: sample rate must be > 0: %f", c.SampleRate)
	}
	if c.Period <= 0 {
		return fmt.Errorf("driver: period must be > 0: %d", c.Period)
	}
	return nil
}

// Open creates the named backend.
func Open(b Backend, cfg Config) (Driver, error) {
	log := logrus.WithFields(logrus.Fields{
		"function": "Open",
		"backend":  string(b),
		"rate":     cfg.SampleRate,
		"period":   cfg.Period,
	})

	var (
		d   Driver
		err error
	)
	switch b {
	case BackendMalgo:
		d, err = NewMalgo(cfg)
	case BackendOto:
		d, err = NewOto(cfg)
	case BackendOffline:
		d, err = NewOffline(cfg)
	default:
		err = fmt.Errorf("driver: unknown backend %q", string(b))
	}
	if err != nil {
		log.WithField("error", err).Error("driver open failed")
		return nil, err
	}

	log.WithField("actual_rate", d.SampleRate()).Info("driver opened")
	return d, nil
}
