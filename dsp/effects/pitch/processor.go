package pitch

import "github.com/cwbudde/compakt/dsp/core"

// Processor is the per-frame API shared by the shifters.
type Processor interface {
	Process(in core.Sample) core.Sample
	Reset()
}

var (
	_ Processor = (*Shifter)(nil)
	_ Processor = (*DualTap)(nil)
)
