// Package biquad provides second-order IIR filtering for the instrument.
//
// [Design] derives RBJ cookbook [Coefficients] for low-pass, high-pass and
// band-pass modes. A [Section] runs the Direct Form I difference equation on
// one channel, and [Filter] keeps one section per channel, recomputing its
// coefficients only when mode, frequency or resonance change.
package biquad
