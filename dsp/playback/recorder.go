package playback

import (
	"github.com/cwbudde/compakt/dsp/buffer"
	"github.com/cwbudde/compakt/dsp/core"
)

// Recorder writes its input into a borrowed buffer at a wrapping cursor.
type Recorder struct {
	buf *buffer.Buffer
	pos int
}

// NewRecorder returns a recorder over buf.
func NewRecorder(buf *buffer.Buffer) *Recorder {
	return &Recorder{buf: buf}
}

// SetBuffer swaps the target buffer and rewinds.
func (r *Recorder) SetBuffer(b *buffer.Buffer) {
	r.buf = b
	r.pos = 0
}

// Pos returns the next write position.
func (r *Recorder) Pos() int { return r.pos }

// Process stores one frame.
func (r *Recorder) Process(in core.Sample) {
	if r.buf.Empty() {
		return
	}

	r.buf.Write(r.pos, in)
	r.pos++
	if r.pos >= r.buf.Len() {
		r.pos = 0
	}
}
