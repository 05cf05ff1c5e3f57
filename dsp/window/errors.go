package window

import (
	"errors"
	"fmt"
)

// ErrInvalidHop is returned when a hop size does not divide the frame.
var ErrInvalidHop = errors.New("hop must be > 0 and divide the window length")

func validateLength(size int) error {
	if size <= 0 {
		return fmt.Errorf("window size must be > 0: %d", size)
	}
	return nil
}

func validateHop(size, hop int) error {
	if err := validateLength(size); err != nil {
		return err
	}
	if hop <= 0 || size%hop != 0 {
		return fmt.Errorf("%w: size %d, hop %d", ErrInvalidHop, size, hop)
	}
	return nil
}
