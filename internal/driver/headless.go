//go:build headless

package driver

import "fmt"

// Malgo is not available in headless builds.
type Malgo struct{ Offline }

// NewMalgo reports ErrUnavailable in headless builds.
func NewMalgo(Config) (*Malgo, error) {
	return nil, fmt.Errorf("%w: malgo (headless build)", ErrUnavailable)
}

// Oto is not available in headless builds.
type Oto struct{ Offline }

// NewOto reports ErrUnavailable in headless builds.
func NewOto(Config) (*Oto, error) {
	return nil, fmt.Errorf("%w: oto (headless build)", ErrUnavailable)
}
