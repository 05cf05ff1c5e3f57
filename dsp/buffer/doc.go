// Package buffer provides the owned audio storage every playback and
// recording unit reads and writes through.
//
// A Buffer holds interleaved frames with channel and native sample-rate
// metadata. Every index is clamped into [0, Len()-1] before use, so out of
// range requests saturate instead of faulting. Mono buffers duplicate on
// read and sum on write. A nil or empty Buffer reads as silence and ignores
// writes.
package buffer
