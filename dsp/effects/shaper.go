package effects

import "github.com/cwbudde/compakt/dsp/core"

// Overdrive scales by amount and hard-clips to [-1, 1].
func Overdrive(in core.Sample, amount float64) core.Sample {
	return in.MulS(amount).Clip(-1, 1)
}

// Fold reflects values above amount back below it. The lower bound is fixed
// at -1 regardless of amount, and values below it are reflected through
// -(amount - (x - amount)).
func Fold(in core.Sample, amount float64) core.Sample {
	return core.Stereo(fold1(in.L, amount), fold1(in.R, amount))
}

func fold1(x, amount float64) float64 {
	switch {
	case x > amount:
		return amount - (x - amount)
	case x < -1:
		return -(amount - (x - amount))
	default:
		return x
	}
}

// BitReduce snaps both channels down onto multiples of 1/bits.
// bits <= 0 passes the input through.
func BitReduce(in core.Sample, bits float64) core.Sample {
	if bits <= 0 {
		return in
	}
	step := 1 / bits
	return core.Stereo(core.Nearest(in.L, step), core.Nearest(in.R, step))
}
