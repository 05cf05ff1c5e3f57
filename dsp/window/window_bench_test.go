package window

import (
	"strconv"
	"testing"
)

func BenchmarkGenerate(b *testing.B) {
	for _, n := range []int{256, 1024, 4096} {
		b.Run("welch/"+strconv.Itoa(n), func(b *testing.B) {
			b.ReportAllocs()
			for b.Loop() {
				_ = Generate(TypeWelch, n)
			}
		})
	}
}

func BenchmarkOverlapGain(b *testing.B) {
	w := Generate(TypeWelch, 1024)
	b.ReportAllocs()
	for b.Loop() {
		_, _ = OverlapGain(w, 256)
	}
}
