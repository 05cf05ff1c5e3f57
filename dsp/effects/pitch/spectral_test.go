package pitch

import (
	"math"
	"math/cmplx"
	"testing"
)

func TestSpectralAnalyzeTracksFrequency(t *testing.T) {
	const (
		n   = 16
		hop = 4
	)
	sp := NewSpectral(n)
	if sp.Bins() != 9 {
		t.Fatalf("bins = %d, want 9", sp.Bins())
	}

	expected := 2 * math.Pi * hop / n
	first := make([]complex128, n)
	second := make([]complex128, n)
	for k := range sp.Bins() {
		p0 := 0.1 * float64(k)
		first[k] = cmplx.Rect(float64(k+1), p0)
		// Advance by the nominal hop phase plus a deviation of 0.25 bins.
		second[k] = cmplx.Rect(float64(k+1), p0+float64(k)*expected+0.25*expected)
	}

	sp.Analyze(first, hop)
	sp.Analyze(second, hop)

	for k, b := range sp.Analysis {
		if math.Abs(b.Frequency-(float64(k)+0.25)) > 1e-9 {
			t.Fatalf("bin %d: frequency %v, want %v", k, b.Frequency, float64(k)+0.25)
		}
		if math.Abs(b.Magnitude-float64(k+1)) > 1e-12 {
			t.Fatalf("bin %d: magnitude %v", k, b.Magnitude)
		}
	}
}

func TestSpectralShiftUpLeavesGaps(t *testing.T) {
	sp := NewSpectral(16)
	for k := range sp.Analysis {
		sp.Analysis[k] = Bin{Magnitude: float64(k + 1), Frequency: float64(k)}
	}

	sp.Shift(2)

	for k, b := range sp.Synthesis {
		if k%2 == 1 {
			if b.Magnitude != 0 || b.Frequency != 0 {
				t.Fatalf("bin %d should be a gap, got %+v", k, b)
			}
			continue
		}
		src := k / 2
		if b.Magnitude != float64(src+1) || b.Frequency != float64(2*src) {
			t.Fatalf("bin %d: got %+v, want source bin %d", k, b, src)
		}
	}
}

func TestSpectralShiftDownAccumulates(t *testing.T) {
	sp := NewSpectral(16)
	for k := range sp.Analysis {
		sp.Analysis[k] = Bin{Magnitude: 1, Frequency: float64(k) + 0.1}
	}

	sp.Shift(0.5)

	// round(k/2): 0->0, 1,2->1, 3,4->2, 5,6->3, 7,8->4.
	wantMag := []float64{1, 2, 2, 2, 2, 0, 0, 0, 0}
	lastSrc := []int{0, 2, 4, 6, 8}
	for k, b := range sp.Synthesis {
		if b.Magnitude != wantMag[k] {
			t.Fatalf("bin %d: magnitude %v, want %v", k, b.Magnitude, wantMag[k])
		}
		if k < len(lastSrc) {
			want := (float64(lastSrc[k]) + 0.1) * 0.5
			if math.Abs(b.Frequency-want) > 1e-12 {
				t.Fatalf("bin %d: frequency %v, want %v (last write)", k, b.Frequency, want)
			}
		}
	}

	// Magnitudes do not carry over into the next shift.
	sp.Shift(1)
	for k, b := range sp.Synthesis {
		if b.Magnitude != 1 {
			t.Fatalf("bin %d: magnitude %v after identity shift", k, b.Magnitude)
		}
	}
}

func TestSpectralSynthesizeHermitian(t *testing.T) {
	const n = 16
	sp := NewSpectral(n)
	for k := range sp.Synthesis {
		sp.Synthesis[k] = Bin{Magnitude: 1, Frequency: float64(k) + 0.3}
	}

	spec := make([]complex128, n)
	sp.Synthesize(spec, 4)

	if imag(spec[0]) != 0 || imag(spec[n/2]) != 0 {
		t.Fatalf("DC/Nyquist not real: %v %v", spec[0], spec[n/2])
	}
	for k := 1; k < n/2; k++ {
		if spec[n-k] != cmplx.Conj(spec[k]) {
			t.Fatalf("bin %d not mirrored: %v vs %v", k, spec[n-k], spec[k])
		}
	}

	// The phase advanced by (frequency) * 2*pi*hop/n, wrapped.
	expected := 2 * math.Pi * 4 / n
	want := math.Remainder(3.3*expected, 2*math.Pi)
	if math.Abs(math.Remainder(sp.Synthesis[3].Phase-want, 2*math.Pi)) > 1e-12 {
		t.Fatalf("phase %v, want %v", sp.Synthesis[3].Phase, want)
	}

	sp.Reset()
	for _, b := range sp.Synthesis {
		if b != (Bin{}) {
			t.Fatal("reset left synthesis state")
		}
	}
}
