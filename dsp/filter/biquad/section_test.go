package biquad

import (
	"math"
	"testing"
)

// tolerance for floating-point comparisons.
const eps = 1e-12

func almostEqual(a, b, tol float64) bool {
	return math.Abs(a-b) <= tol
}

// passthrough returns coefficients for a unity gain passthrough (B0=1, all else 0).
func passthrough() Coefficients {
	return Coefficients{B0: 1}
}

func TestNewSection(t *testing.T) {
	c := Coefficients{B0: 1, B1: 2, B2: 3, A1: 4, A2: 5}
	s := NewSection(c)
	if s.Coefficients != c {
		t.Fatalf("coefficients mismatch: got %v, want %v", s.Coefficients, c)
	}
	if st := s.State(); st != [4]float64{} {
		t.Fatalf("initial state not zero: %v", st)
	}
}

func TestProcessSample_Passthrough(t *testing.T) {
	s := NewSection(passthrough())
	input := []float64{1, 0, -1, 0.5, 0.25}
	for i, x := range input {
		y := s.ProcessSample(x)
		if !almostEqual(y, x, eps) {
			t.Errorf("sample %d: got %v, want %v", i, y, x)
		}
	}
}

func TestProcessSample_DirectForm1(t *testing.T) {
	// Hand-traced with B0=0.25, B1=0.5, B2=0.25, A1=-0.2, A2=0.04 and x = [1, 0, 0, 0]:
	//
	// n=0: y = 0.25
	// n=1: y = 0.5 + 0.2*0.25 = 0.55
	// n=2: y = 0.25 + 0.2*0.55 - 0.04*0.25 = 0.35
	// n=3: y = 0.2*0.35 - 0.04*0.55 = 0.048
	s := NewSection(Coefficients{B0: 0.25, B1: 0.5, B2: 0.25, A1: -0.2, A2: 0.04})
	want := []float64{0.25, 0.55, 0.35, 0.048}
	for i, w := range want {
		x := 0.0
		if i == 0 {
			x = 1
		}
		if y := s.ProcessSample(x); !almostEqual(y, w, eps) {
			t.Fatalf("n=%d: got %.15f, want %.15f", i, y, w)
		}
	}

	st := s.State()
	if st[0] != 0 || st[1] != 0 || !almostEqual(st[2], 0.048, eps) || !almostEqual(st[3], 0.35, eps) {
		t.Fatalf("state after impulse: %v", st)
	}
}

func TestProcessSample_SettlesToSilence(t *testing.T) {
	s := NewSection(Design(LowPass, 1000, 1, 48000))
	s.ProcessSample(1)

	var y float64
	for range 200000 {
		y = s.ProcessSample(0)
	}
	if y != 0 || s.State() != [4]float64{} {
		t.Fatalf("tail did not settle: y=%v state=%v", y, s.State())
	}
}

func TestProcessSample_PureDelay(t *testing.T) {
	s := NewSection(Coefficients{B2: 1})
	input := []float64{1, 2, 3, 4, 5}
	want := []float64{0, 0, 1, 2, 3}
	for i, x := range input {
		if y := s.ProcessSample(x); y != want[i] {
			t.Fatalf("n=%d: got %v, want %v", i, y, want[i])
		}
	}
}

func TestReset(t *testing.T) {
	s := NewSection(Coefficients{B0: 0.25, B1: 0.5, B2: 0.25, A1: -0.2, A2: 0.04})
	for range 10 {
		s.ProcessSample(1)
	}
	s.Reset()
	if st := s.State(); st != [4]float64{} {
		t.Fatalf("state after reset: %v", st)
	}
	if y := s.ProcessSample(1); !almostEqual(y, 0.25, eps) {
		t.Fatalf("first sample after reset: got %v, want 0.25", y)
	}
}

func TestProcessSample_StabilityLongRun(t *testing.T) {
	s := NewSection(Design(LowPass, 20, 10, 48000))
	for i := range 200000 {
		y := s.ProcessSample(math.Sin(float64(i) * 0.01))
		if math.IsNaN(y) || math.IsInf(y, 0) || math.Abs(y) > 100 {
			t.Fatalf("unstable at %d: %v", i, y)
		}
	}
}
