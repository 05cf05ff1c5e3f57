package driver

import (
	"encoding/binary"
	"math"
)

// blocks adapts interleaved float32LE device buffers of any length to
// planar period-sized processor calls. Scratch storage is allocated once.
type blocks struct {
	period int
	in     [Channels][]float32
	out    [Channels][]float32
	inV    [Channels][]float32
	outV   [Channels][]float32
}

func newBlocks(period int) *blocks {
	b := &blocks{period: max(period, 1)}
	for c := range Channels {
		b.in[c] = make([]float32, b.period)
		b.out[c] = make([]float32, b.period)
	}
	return b
}

// run processes frames stereo frames. out receives the interleaved
// result; a nil or short in reads as silence.
func (b *blocks) run(p Processor, out, in []byte, frames int) {
	frames = min(frames, len(out)/(4*Channels))

	for off := 0; off < frames; off += b.period {
		n := min(b.period, frames-off)
		for c := range Channels {
			b.inV[c] = b.in[c][:n]
			b.outV[c] = b.out[c][:n]
		}

		deinterleave(b.inV[:], in, off)
		p.Process(b.inV[:], b.outV[:])
		interleave(out, b.outV[:], off)
	}
}

func deinterleave(dst [][]float32, src []byte, off int) {
	for i := range dst[0] {
		for c := range dst {
			at := ((off+i)*Channels + c) * 4
			if at+4 > len(src) {
				dst[c][i] = 0
				continue
			}
			dst[c][i] = math.Float32frombits(binary.LittleEndian.Uint32(src[at:]))
		}
	}
}

func interleave(dst []byte, src [][]float32, off int) {
	for i := range src[0] {
		for c := range src {
			at := ((off+i)*Channels + c) * 4
			binary.LittleEndian.PutUint32(dst[at:], math.Float32bits(src[c][i]))
		}
	}
}
