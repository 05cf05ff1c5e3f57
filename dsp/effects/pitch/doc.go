// Package pitch provides the instrument's streaming pitch shifters.
//
// Included processors:
//   - Shifter: STFT phase vocoder with per-bin frequency remapping and a
//     fixed N+H sample latency.
//   - DualTap: time-domain shifter with two crossfaded read taps.
//   - Processor: shared per-frame interface for both.
package pitch
