package benchmarks

import (
	"fmt"
	"testing"

	bab "github.com/bits-and-blooms/bloom/v3"
	"github.com/cespare/xxhash/v2"
	atomicbloom "github.com/ericvolp12/atomic-bloom"
	"github.com/greatroar/blobloom"
	"github.com/jcalabro/rebloom"
)

const (
	benchItems  = 1_000_000
	benchFPRate = 0.01
)

// Pre-generate test data to avoid measuring string generation
var testKeys [][]byte
var testKeysStr []string

func init() {
	testKeys = make([][]byte, benchItems)
	testKeysStr = make([]string, benchItems)
	for i := range benchItems {
		s := fmt.Sprintf("key-%d", i)
		testKeys[i] = []byte(s)
		testKeysStr[i] = s
	}
}

func newRebloom(b *testing.B, h rebloom.Hasher) *rebloom.Filter {
	b.Helper()
	f, err := rebloom.NewWithEstimates(benchItems, benchFPRate, rebloom.WithHasher(h))
	if err != nil {
		b.Fatal(err)
	}
	return f
}

// ============================================================================
// Insert Benchmarks
// ============================================================================

func BenchmarkInsert_RebloomXXH3(b *testing.B) {
	f := newRebloom(b, rebloom.XXH3{})
	b.ResetTimer()
	for i := range b.N {
		f.Insert(testKeys[i%benchItems])
	}
}

func BenchmarkInsert_RebloomXXH3String(b *testing.B) {
	f := newRebloom(b, rebloom.XXH3{})
	b.ResetTimer()
	for i := range b.N {
		f.InsertString(testKeysStr[i%benchItems])
	}
}

func BenchmarkInsert_RebloomMurmur3(b *testing.B) {
	f := newRebloom(b, rebloom.Murmur3{})
	b.ResetTimer()
	for i := range b.N {
		f.Insert(testKeys[i%benchItems])
	}
}

func BenchmarkInsert_RebloomXXHash(b *testing.B) {
	f := newRebloom(b, rebloom.NewXXHash())
	b.ResetTimer()
	for i := range b.N {
		f.Insert(testKeys[i%benchItems])
	}
}

func BenchmarkInsert_BitsAndBlooms(b *testing.B) {
	f := bab.NewWithEstimates(benchItems, benchFPRate)
	b.ResetTimer()
	for i := range b.N {
		f.Add(testKeys[i%benchItems])
	}
}

func BenchmarkInsert_AtomicBloom(b *testing.B) {
	f := atomicbloom.NewWithEstimates(benchItems, benchFPRate)
	b.ResetTimer()
	for i := range b.N {
		f.Add(testKeys[i%benchItems])
	}
}

func BenchmarkInsert_Blobloom(b *testing.B) {
	f := blobloom.NewOptimized(blobloom.Config{
		Capacity: benchItems,
		FPRate:   benchFPRate,
	})
	b.ResetTimer()
	for i := range b.N {
		// blobloom requires pre-hashing
		h := xxhash.Sum64(testKeys[i%benchItems])
		f.Add(h)
	}
}

// ============================================================================
// Find Benchmarks
// ============================================================================

func BenchmarkFind_RebloomXXH3(b *testing.B) {
	f := newRebloom(b, rebloom.XXH3{})
	for i := range benchItems {
		f.Insert(testKeys[i])
	}
	b.ResetTimer()
	for i := range b.N {
		f.Find(testKeys[i%benchItems])
	}
}

func BenchmarkFind_RebloomXXH3String(b *testing.B) {
	f := newRebloom(b, rebloom.XXH3{})
	for i := range benchItems {
		f.Insert(testKeys[i])
	}
	b.ResetTimer()
	for i := range b.N {
		f.FindString(testKeysStr[i%benchItems])
	}
}

func BenchmarkFind_RebloomMurmur3(b *testing.B) {
	f := newRebloom(b, rebloom.Murmur3{})
	for i := range benchItems {
		f.Insert(testKeys[i])
	}
	b.ResetTimer()
	for i := range b.N {
		f.Find(testKeys[i%benchItems])
	}
}

func BenchmarkFind_BitsAndBlooms(b *testing.B) {
	f := bab.NewWithEstimates(benchItems, benchFPRate)
	for i := range benchItems {
		f.Add(testKeys[i])
	}
	b.ResetTimer()
	for i := range b.N {
		f.Test(testKeys[i%benchItems])
	}
}

func BenchmarkFind_AtomicBloom(b *testing.B) {
	f := atomicbloom.NewWithEstimates(benchItems, benchFPRate)
	for i := range benchItems {
		f.Add(testKeys[i])
	}
	b.ResetTimer()
	for i := range b.N {
		f.Test(testKeys[i%benchItems])
	}
}

func BenchmarkFind_Blobloom(b *testing.B) {
	f := blobloom.NewOptimized(blobloom.Config{
		Capacity: benchItems,
		FPRate:   benchFPRate,
	})
	// Pre-hash keys for fair comparison
	hashes := make([]uint64, benchItems)
	for i := range benchItems {
		hashes[i] = xxhash.Sum64(testKeys[i])
		f.Add(hashes[i])
	}
	b.ResetTimer()
	for i := range b.N {
		f.Has(hashes[i%benchItems])
	}
}

// ============================================================================
// Fill Level Benchmarks
// ============================================================================

// NumBitsSet and FalsePositiveRate must stay cheap enough to call on every
// operation.
func BenchmarkInsertWithRate_Rebloom(b *testing.B) {
	f := newRebloom(b, rebloom.XXH3{})
	b.ResetTimer()
	var rate float64
	for i := range b.N {
		f.Insert(testKeys[i%benchItems])
		rate = f.FalsePositiveRate()
	}
	b.ReportMetric(rate, "fprate")
}

func BenchmarkNumBitsSet_Rebloom(b *testing.B) {
	f := newRebloom(b, rebloom.XXH3{})
	for i := range benchItems {
		f.Insert(testKeys[i])
	}
	b.ResetTimer()
	var n uint64
	for range b.N {
		n += f.NumBitsSet()
	}
	_ = n
}

// ============================================================================
// Memory Allocation Benchmarks
// ============================================================================

func BenchmarkInsertAlloc_Rebloom(b *testing.B) {
	f := newRebloom(b, rebloom.XXH3{})
	b.ReportAllocs()
	b.ResetTimer()
	for i := range b.N {
		f.Insert(testKeys[i%benchItems])
	}
}

func BenchmarkInsertAlloc_RebloomString(b *testing.B) {
	f := newRebloom(b, rebloom.XXH3{})
	b.ReportAllocs()
	b.ResetTimer()
	for i := range b.N {
		f.InsertString(testKeysStr[i%benchItems])
	}
}

func BenchmarkInsertAlloc_BitsAndBlooms(b *testing.B) {
	f := bab.NewWithEstimates(benchItems, benchFPRate)
	b.ReportAllocs()
	b.ResetTimer()
	for i := range b.N {
		f.Add(testKeys[i%benchItems])
	}
}
