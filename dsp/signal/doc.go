// Package signal provides per-frame control sources: Oscillator, Gate and
// Metronome.
package signal
