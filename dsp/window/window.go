package window

import (
	"fmt"
	"math"
	"strings"
)

// Type identifies a window function.
type Type int

const (
	TypeRectangular Type = iota
	TypeHann
	TypeHamming
	TypeBlackman
	TypeWelch
)

var typeNames = [...]string{
	TypeRectangular: "rectangular",
	TypeHann:        "hann",
	TypeHamming:     "hamming",
	TypeBlackman:    "blackman",
	TypeWelch:       "welch",
}

// Generalized cosine terms, a0 - a1 cos(x) + a2 cos(2x).
var cosineTerms = map[Type][]float64{
	TypeHann:     {0.5, -0.5},
	TypeHamming:  {0.54, -0.46},
	TypeBlackman: {0.42, -0.5, 0.08},
}

func (t Type) String() string {
	if t >= 0 && int(t) < len(typeNames) {
		return typeNames[t]
	}
	return fmt.Sprintf("Type(%d)", int(t))
}

// Types returns every window type in declaration order.
func Types() []Type {
	out := make([]Type, len(typeNames))
	for i := range out {
		out[i] = Type(i)
	}
	return out
}

// Parse returns the type whose name matches s, ignoring case and
// surrounding space.
func Parse(s string) (Type, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for i, n := range typeNames {
		if n == s {
			return Type(i), nil
		}
	}
	return TypeRectangular, fmt.Errorf("window: unknown type %q", s)
}

// Option configures window generation.
type Option func(*config)

type config struct {
	periodic bool
}

// WithPeriodic configures periodic form (FFT framing) instead of symmetric form.
func WithPeriodic() Option {
	return func(c *config) {
		c.periodic = true
	}
}

// Generate returns window coefficients of the given length.
func Generate(t Type, length int, opts ...Option) []float64 {
	if length <= 0 {
		return nil
	}

	var cfg config
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	den := float64(length - 1)
	if cfg.periodic {
		den = float64(length)
	}
	if length == 1 {
		den = 1
	}

	out := make([]float64, length)
	for i := range out {
		out[i] = eval(t, float64(i)/den)
	}
	return out
}

// Welch returns parabolic window coefficients, 1 - (2n/(N-1) - 1)^2 in
// symmetric form. The shifter frames with it.
func Welch(size int, opts ...Option) ([]float64, error) {
	return Generate(TypeWelch, size, opts...), validateLength(size)
}

// eval returns the window at normalized position x in [0, 1].
func eval(t Type, x float64) float64 {
	if t == TypeWelch {
		d := 2*x - 1
		return 1 - d*d
	}

	terms, ok := cosineTerms[t]
	if !ok {
		return 1
	}
	var sum float64
	for k, a := range terms {
		sum += a * math.Cos(2*math.Pi*float64(k)*x)
	}
	return sum
}
