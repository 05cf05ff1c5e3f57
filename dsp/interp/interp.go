package interp

import (
	"fmt"
	"math"
)

// Mode selects how a fractional read position is resolved.
type Mode int

const (
	Truncate Mode = iota
	Linear
	Hermite
)

func (m Mode) String() string {
	switch m {
	case Truncate:
		return "truncate"
	case Linear:
		return "linear"
	case Hermite:
		return "hermite"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// ParseMode maps a mode name to its Mode.
func ParseMode(s string) (Mode, error) {
	for _, m := range []Mode{Truncate, Linear, Hermite} {
		if m.String() == s {
			return m, nil
		}
	}
	return Truncate, fmt.Errorf("interp: unknown mode %q", s)
}

// Linear2 interpolates from x0 to x1.
func Linear2(t, x0, x1 float64) float64 {
	return x0 + t*(x1-x0)
}

// Hermite4 computes cubic 4-point interpolation.
// It interpolates from x0 to x1 using neighbor points xm1 and x2.
func Hermite4(t, xm1, x0, x1, x2 float64) float64 {
	c0 := x0
	c1 := 0.5 * (x1 - xm1)
	c2 := xm1 - 2.5*x0 + 2*x1 - 0.5*x2
	c3 := 0.5*(x2-xm1) + 1.5*(x0-x1)
	return ((c3*t+c2)*t+c1)*t + c0
}

// Read resolves pos against an integer-indexed reader. at must accept any
// index, including pos-1 and pos+2 at the edges.
func (m Mode) Read(at func(int) float64, pos float64) float64 {
	i := math.Floor(pos)
	n := int(i)
	t := pos - i

	switch m {
	case Linear:
		return Linear2(t, at(n), at(n+1))
	case Hermite:
		return Hermite4(t, at(n-1), at(n), at(n+1), at(n+2))
	default:
		return at(n)
	}
}
