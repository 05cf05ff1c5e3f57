package playback

import "github.com/cwbudde/compakt/dsp/core"

// region is a normalized [start, end] span of a buffer.
type region struct {
	start, end float64
}

func fullRegion() region { return region{start: 0, end: 1} }

// set clamps both bounds to [0, 1] and orders them.
func (r *region) set(start, end float64) {
	start, end = core.Clamp(start, 0, 1), core.Clamp(end, 0, 1)
	r.start, r.end = min(start, end), max(start, end)
}

// span sets start and start+dur, clamping the end to 1.
func (r *region) span(start, dur float64) {
	start = core.Clamp(start, 0, 1)
	r.start, r.end = start, core.Clamp(start+dur, 0, 1)
}

// frames returns the bounds as frame positions over a buffer of n frames.
func (r region) frames(n int) (float64, float64) {
	last := float64(n - 1)
	return r.start * last, r.end * last
}
