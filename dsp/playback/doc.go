// Package playback holds the buffer-driven voices of the instrument:
// Sampler, Looper, Granular and Recorder.
//
// Sampler, Granular and Recorder borrow a *buffer.Buffer they never free;
// the Looper owns its ring. A nil or empty buffer yields silence. All
// types are single-goroutine and allocation-free per frame.
package playback
