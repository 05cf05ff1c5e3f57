// Package interp provides fractional-position readers for delay-based DSP
// blocks.
//
//   - [Truncate]: drops the fraction (the cheapest, and the default)
//   - [Linear]:   2-point linear interpolation
//   - [Hermite]:  4-point cubic Hermite
package interp
