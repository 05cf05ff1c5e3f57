package core

import "math"

const defaultEpsilon = 1e-12

// Clamp limits value to the inclusive range [min, max].
func Clamp(value, min, max float64) float64 {
	if min > max {
		min, max = max, min
	}

	if value < min {
		return min
	}

	if value > max {
		return max
	}

	return value
}

// ClampInt limits value to the inclusive range [min, max].
func ClampInt(value, min, max int) int {
	if value < min {
		return min
	}

	if value > max {
		return max
	}

	return value
}

// NearlyEqual reports whether a and b are equal within eps.
func NearlyEqual(a, b, eps float64) bool {
	if eps <= 0 {
		eps = defaultEpsilon
	}

	diff := math.Abs(a - b)
	if diff <= eps {
		return true
	}

	largest := math.Max(math.Abs(a), math.Abs(b))
	if largest == 0 {
		return diff <= eps
	}

	return diff/largest <= eps
}

// FlushDenormals converts tiny denormal-like values to exact zero.
// This can reduce denormal-related CPU slowdowns in hot DSP loops.
func FlushDenormals(x float64) float64 {
	const epsilon = 1e-30
	if x > -epsilon && x < epsilon {
		return 0
	}

	return x
}

// Norm2Bi maps a normalized control value in [0, 1] to [-1, 1].
func Norm2Bi(n float64) float64 {
	return n*2 - 1
}

// Bi2Norm maps a bipolar value in [-1, 1] to [0, 1].
func Bi2Norm(b float64) float64 {
	return (b + 1) * 0.5
}

// ScaleNorm maps n in [0, 1] linearly onto [min, max].
func ScaleNorm(n, min, max float64) float64 {
	return n*(max-min) + min
}

// Nearest snaps v down onto the grid of multiples of step.
func Nearest(v, step float64) float64 {
	if step == 0 {
		return v
	}

	return step * math.Floor(v/step)
}

// Wrap folds value into [min, max] by modulo over the range width.
// Values already inside the range are returned unchanged.
func Wrap(value, min, max float64) float64 {
	if min > max {
		min, max = max, min
	}

	width := max - min
	if width == 0 {
		return min
	}

	switch {
	case value < min:
		return max - math.Mod(min-value, width)
	case value > max:
		return min + math.Mod(value-max, width)
	default:
		return value
	}
}

// WrapPhase wraps an angle into [-pi, pi].
func WrapPhase(x float64) float64 {
	if x >= 0 {
		return math.Mod(x+math.Pi, 2*math.Pi) - math.Pi
	}

	return math.Mod(x-math.Pi, -2*math.Pi) + math.Pi
}
