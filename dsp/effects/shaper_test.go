package effects

import (
	"testing"

	"github.com/cwbudde/compakt/dsp/core"
)

func TestOverdrive(t *testing.T) {
	tests := []struct {
		in     core.Sample
		amount float64
		want   core.Sample
	}{
		{core.Stereo(0.25, -0.25), 2, core.Stereo(0.5, -0.5)},
		{core.Stereo(0.6, -0.6), 2, core.Stereo(1, -1)},
		{core.Stereo(3, 0), 1, core.Stereo(1, 0)},
	}
	for _, tt := range tests {
		if got := Overdrive(tt.in, tt.amount); got != tt.want {
			t.Fatalf("Overdrive(%+v, %v) = %+v, want %+v", tt.in, tt.amount, got, tt.want)
		}
	}
}

func TestFoldKeepsFixedLowerBound(t *testing.T) {
	tests := []struct {
		name   string
		x      float64
		amount float64
		want   float64
	}{
		{"inside", 0.3, 0.5, 0.3},
		{"above amount", 0.8, 0.5, 0.2},
		{"below amount mirror but above -1", -0.9, 0.5, -0.9},
		{"below -1", -1.5, 0.5, -2.5},
		{"below -1 unit amount", -1.25, 1, -3.25},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Fold(core.Mono(tt.x), tt.amount)
			if !core.NearlyEqual(got.L, tt.want, 1e-12) || got.L != got.R {
				t.Fatalf("Fold(%v, %v) = %+v, want %v", tt.x, tt.amount, got, tt.want)
			}
		})
	}
}

func TestBitReduce(t *testing.T) {
	got := BitReduce(core.Stereo(0.3, -0.3), 4)
	if got != core.Stereo(0.25, -0.5) {
		t.Fatalf("BitReduce: got %+v", got)
	}
	in := core.Stereo(0.123, 0.456)
	if got := BitReduce(in, 0); got != in {
		t.Fatalf("BitReduce with 0 bits should pass through, got %+v", got)
	}
	if got := BitReduce(core.Mono(0.7), 1); got != core.Mono(0) {
		t.Fatalf("BitReduce with 1 bit: got %+v", got)
	}
}
