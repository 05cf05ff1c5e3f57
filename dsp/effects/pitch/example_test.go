package pitch_test

import (
	"fmt"

	"github.com/cwbudde/compakt/dsp/effects/pitch"
)

func ExampleShifter_Latency() {
	s, err := pitch.NewShifter(48000)
	if err != nil {
		panic(err)
	}
	s.SetShift(0.25)

	fmt.Printf("N=%d H=%d latency=%d factor=%.1f\n", s.FrameSize(), s.Hop(), s.Latency(), s.Factor())

	// Output:
	// N=1024 H=256 latency=1280 factor=2.0
}
