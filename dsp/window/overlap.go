package window

import "github.com/cwbudde/algo-vecmath"

// OverlapGain returns the per-phase gain of weighted overlap-add with
// analysis and synthesis both using coeffs at the given hop:
//
//	g[r] = sum_j coeffs[r+j*hop]^2,  r in [0, hop)
//
// A steady-state frame-by-frame identity resynthesis scales sample n by
// g[n mod hop].
func OverlapGain(coeffs []float64, hop int) ([]float64, error) {
	if err := validateHop(len(coeffs), hop); err != nil {
		return nil, err
	}

	sq := make([]float64, len(coeffs))
	vecmath.MulBlock(sq, coeffs, coeffs)

	gain := make([]float64, hop)
	for off := 0; off < len(sq); off += hop {
		vecmath.AddBlockInPlace(gain, sq[off:off+hop])
	}

	return gain, nil
}

// MeanOverlapGain returns the average of OverlapGain over one hop, which
// equals sum(w^2)/hop.
func MeanOverlapGain(coeffs []float64, hop int) (float64, error) {
	gain, err := OverlapGain(coeffs, hop)
	if err != nil {
		return 0, err
	}

	return vecmath.Sum(gain) / float64(hop), nil
}
