//go:build headless

package ui

import "github.com/cwbudde/compakt/internal/control"

// Source supplies the live readouts of the running instrument.
type Source interface {
	Envelope(ch int, dst []float64) int
	Faults() uint64
}

// Panel is a placeholder in headless builds.
type Panel struct{}

// NewPanel returns a panel whose Run reports ErrUnavailable.
func NewPanel(*control.Set, *control.ChanSource, Source, int, func() int) *Panel {
	return &Panel{}
}

// Close does nothing.
func (*Panel) Close() {}

// Run reports ErrUnavailable.
func (*Panel) Run(string) error { return ErrUnavailable }
