package sauvola_test

import (
	"math/rand"
	"testing"

	"github.com/katalvlaran/blobcount/sauvola"
)

// BenchmarkThreshold compares both methods on a 512×512 scan with the
// default radius.
// Complexity: O(W×H) integral vs O(W×H×r²) naive.
func BenchmarkThreshold(b *testing.B) {
	rng := rand.New(rand.NewSource(42))
	src := randomGrid(b, rng, 512, 512, 255)

	for _, m := range []sauvola.Method{sauvola.Integral, sauvola.Naive} {
		opts := sauvola.DefaultOptions()
		opts.Method = m
		b.Run(m.String(), func(b *testing.B) {
			b.ReportAllocs()
			for i := 0; i < b.N; i++ {
				g := src.Clone()
				_ = sauvola.Threshold(g, opts)
			}
		})
	}
}
