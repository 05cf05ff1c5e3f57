// Package effects provides the per-sample effect units of the instrument.
//
// Subpackages:
//   - github.com/cwbudde/compakt/dsp/effects/pitch
//
// Effects in this package:
//   - Delay: stereo echo writing the wet crossfade back into its ring.
//   - Comb: feed-forward comb writing the dry input back into its ring.
//   - Overdrive, Fold, BitReduce: stateless waveshapers.
//
// Setters clamp out-of-range values instead of failing so they can be called
// from the audio callback. Process methods never allocate.
package effects
