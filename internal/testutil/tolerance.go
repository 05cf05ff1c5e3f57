package testutil

import (
	"fmt"
	"math"
	"testing"

	"github.com/cwbudde/compakt/dsp/core"
)

// RequireSliceNearlyEqual fails t if got and want differ in length or if
// any element pair exceeds eps (absolute tolerance).
func RequireSliceNearlyEqual(t *testing.T, got, want []float64, eps float64) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("length mismatch: got %d, want %d", len(got), len(want))
	}
	for i := range got {
		diff := math.Abs(got[i] - want[i])
		if diff > eps {
			t.Fatalf("index %d: got %v, want %v (diff %v > eps %v)", i, got[i], want[i], diff, eps)
		}
	}
}

// RequireFramesNearlyEqual is RequireSliceNearlyEqual over stereo frames.
func RequireFramesNearlyEqual(t *testing.T, got, want []core.Sample, eps float64) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("length mismatch: got %d, want %d", len(got), len(want))
	}
	for i := range got {
		if !core.NearlyEqual(got[i].L, want[i].L, eps) || !core.NearlyEqual(got[i].R, want[i].R, eps) {
			t.Fatalf("frame %d: got %+v, want %+v (eps %v)", i, got[i], want[i], eps)
		}
	}
}

// RequireFinite fails t if any element is NaN or Inf.
func RequireFinite(t *testing.T, data []float64) {
	t.Helper()
	for i, v := range data {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			t.Fatalf("index %d: non-finite value %v", i, v)
		}
	}
}

// RequireFiniteFrames fails t if any channel of any frame is NaN or Inf.
func RequireFiniteFrames(t *testing.T, frames []core.Sample) {
	t.Helper()
	for i, s := range frames {
		if math.IsNaN(s.L) || math.IsInf(s.L, 0) || math.IsNaN(s.R) || math.IsInf(s.R, 0) {
			t.Fatalf("frame %d: non-finite value %+v", i, s)
		}
	}
}

// MaxAbsDiff returns the maximum absolute difference between two slices.
// Returns an error if the slices differ in length.
func MaxAbsDiff(a, b []float64) (float64, error) {
	if len(a) != len(b) {
		return 0, fmt.Errorf("length mismatch: %d vs %d", len(a), len(b))
	}
	maxDiff := 0.0
	for i := range a {
		d := math.Abs(a[i] - b[i])
		if d > maxDiff {
			maxDiff = d
		}
	}
	return maxDiff, nil
}

// Peak returns the largest absolute sample on either channel.
func Peak(frames []core.Sample) float64 {
	p := 0.0
	for _, s := range frames {
		p = max(p, math.Abs(s.L), math.Abs(s.R))
	}
	return p
}
