package tom_test

import (
	"context"
	"testing"

	"github.com/jessica-ewald/JQ-coexpression-network/tom"
)

// BenchmarkDissimilarity measures the block-product transform on a
// mid-size network. Run with -benchmem to watch scratch allocation.
func BenchmarkDissimilarity(b *testing.B) {
	adj := randomAdjacency(400, 42)
	opts := tom.DefaultOptions()
	ctx := context.Background()

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := tom.Dissimilarity(ctx, adj, opts); err != nil {
			b.Fatal(err)
		}
	}
}

// BenchmarkDissimilaritySerial is the single-worker baseline for the
// benchmark above.
func BenchmarkDissimilaritySerial(b *testing.B) {
	adj := randomAdjacency(400, 42)
	opts := tom.Options{BlockSize: tom.DefaultBlockSize, Workers: 1}
	ctx := context.Background()

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := tom.Dissimilarity(ctx, adj, opts); err != nil {
			b.Fatal(err)
		}
	}
}
