//go:build fastmath

package pitch

import "github.com/meko-christian/algo-approx"

const exactMath = false

// ln2 is the natural logarithm of 2.
const ln2 = 0.693147180559945309417232121458

// magnitude returns |re + i*im| using a fast square root.
func magnitude(re, im float64) float64 {
	return approx.FastSqrt(re*re + im*im)
}

// power2 computes 2^x as e^(x*ln2).
func power2(x float64) float64 {
	return approx.FastExp(x * ln2)
}
