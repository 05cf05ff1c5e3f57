//go:build !fastmath

package pitch

import "math"

const exactMath = true

// magnitude returns |re + i*im|.
func magnitude(re, im float64) float64 {
	return math.Hypot(re, im)
}

// power2 computes 2^x.
func power2(x float64) float64 {
	return math.Exp2(x)
}
