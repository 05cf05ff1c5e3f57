package window

import "math"

// analysisOversample is the DTFT grid density in points per bin.
const analysisOversample = 16

// Analysis holds the spectral figures of a window that matter for STFT
// framing. Levels are relative to DC.
type Analysis struct {
	CoherentGain  float64 // sum(w) / N
	ENBW          float64 // equivalent noise bandwidth in bins
	ScallopLossdB float64 // level half a bin off center

	// MainLobeBins is the distance from DC to the first null.
	MainLobeBins      float64
	HighestSidelobedB float64
}

// Analyze evaluates the window's DTFT on a grid of analysisOversample
// points per bin up to Nyquist. An empty or zero-sum window yields the
// zero Analysis.
func Analyze(coeffs []float64) Analysis {
	n := len(coeffs)
	if n == 0 {
		return Analysis{}
	}

	var sum, sumSq float64
	for _, c := range coeffs {
		sum += c
		sumSq += c * c
	}
	if sum == 0 {
		return Analysis{}
	}

	points := n / 2 * analysisOversample
	mag := make([]float64, points+1)
	for i := range mag {
		mag[i] = powerAt(coeffs, float64(i)/float64(n*analysisOversample))
	}
	dc := mag[0]

	a := Analysis{
		CoherentGain: sum / float64(n),
		ENBW:         float64(n) * sumSq / (sum * sum),
	}
	if half := analysisOversample / 2; half < len(mag) {
		a.ScallopLossdB = powerDB(mag[half], dc)
	}

	null := firstNull(mag, dc)
	a.MainLobeBins = float64(null) / analysisOversample

	peak := 0.0
	for _, v := range mag[null:] {
		peak = max(peak, v)
	}
	a.HighestSidelobedB = powerDB(peak, dc)

	return a
}

// firstNull returns the first local minimum of the grid that lies below
// a tenth of DC. Flat-top main lobes ripple above that level.
func firstNull(mag []float64, dc float64) int {
	for i := 1; i < len(mag)-1; i++ {
		if mag[i] < 0.1*dc && mag[i] <= mag[i-1] && mag[i] <= mag[i+1] {
			return i
		}
	}
	return len(mag) - 1
}

// powerAt is |W(f)|^2 at normalized frequency f in cycles per sample.
func powerAt(coeffs []float64, f float64) float64 {
	var re, im float64
	for k, c := range coeffs {
		s, co := math.Sincos(2 * math.Pi * f * float64(k))
		re += c * co
		im -= c * s
	}
	return re*re + im*im
}

func powerDB(p, ref float64) float64 {
	if p <= 0 || ref <= 0 {
		return math.Inf(-1)
	}
	return 10 * math.Log10(p/ref)
}
