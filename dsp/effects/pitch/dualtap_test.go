package pitch

import (
	"math"
	"testing"

	"github.com/cwbudde/compakt/dsp/core"
	"github.com/cwbudde/compakt/dsp/interp"
)

func TestDualTapZeroPitchDelaysHalfLine(t *testing.T) {
	d, err := NewDualTap(WithLineLength(16))
	if err != nil {
		t.Fatal(err)
	}

	for tm := range 64 {
		y := d.Process(core.Stereo(float64(tm+1), -float64(tm+1)))
		want := 0.0
		if tm >= 8 {
			want = float64(tm - 8 + 1)
		}
		if y.L != want || y.R != -want {
			t.Fatalf("t=%d: got %+v, want %v", tm, y, want)
		}
	}
}

func TestDualTapCrossfadeIsUnity(t *testing.T) {
	d, err := NewDualTap(WithLineLength(64))
	if err != nil {
		t.Fatal(err)
	}
	d.SetPitch(0.37)

	for range 64 {
		d.Process(core.Mono(1))
	}
	for tm := range 1000 {
		y := d.Process(core.Mono(1))
		if math.Abs(y.L-1) > 1e-12 || math.Abs(y.R-1) > 1e-12 {
			t.Fatalf("t=%d: constant input gave %+v", tm, y)
		}
	}
}

func TestDualTapSetters(t *testing.T) {
	d, err := NewDualTap()
	if err != nil {
		t.Fatal(err)
	}
	if d.Len() != 5120 || !d.Active() {
		t.Fatalf("defaults: len=%d active=%v", d.Len(), d.Active())
	}

	d.SetPitch(5)
	if d.Pitch() != 1 {
		t.Fatalf("pitch clamp: %v", d.Pitch())
	}
	d.SetPitch(math.NaN())
	if d.Pitch() != 1 {
		t.Fatalf("NaN applied: %v", d.Pitch())
	}

	d.SetActive(false)
	in := core.Stereo(0.3, -0.7)
	if got := d.Process(in); got != in {
		t.Fatalf("inactive: got %+v", got)
	}

	d.SetActive(true)
	d.Process(core.Mono(1))
	d.Reset()
	for range 3000 {
		if got := d.Process(core.Sample{}); got != (core.Sample{}) {
			t.Fatalf("reset left audio: %+v", got)
		}
	}

	if _, err := NewDualTap(WithLineLength(1)); err == nil {
		t.Fatal("expected error for line length 1")
	}
}

func TestDualTapInterpolatedRead(t *testing.T) {
	for _, m := range []interp.Mode{interp.Linear, interp.Hermite} {
		d, err := NewDualTap(WithLineLength(64), WithInterpolation(m))
		if err != nil {
			t.Fatal(err)
		}
		if d.Interpolation() != m {
			t.Fatalf("mode: got %v want %v", d.Interpolation(), m)
		}
		d.SetPitch(0.37)

		for range 64 {
			d.Process(core.Mono(0.5))
		}
		for tm := range 500 {
			y := d.Process(core.Mono(0.5))
			if math.Abs(y.L-0.5) > 1e-12 || math.Abs(y.R-0.5) > 1e-12 {
				t.Fatalf("%v t=%d: constant input gave %+v", m, tm, y)
			}
		}
	}

	d, err := NewDualTap()
	if err != nil {
		t.Fatal(err)
	}
	if d.Interpolation() != interp.Truncate {
		t.Fatalf("default mode: %v", d.Interpolation())
	}
}
