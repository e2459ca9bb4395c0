package benchmark_test

import (
	"bytes"
	"testing"

	"github.com/google/btree"

	"github.com/hupe1980/arenatree/testutil"
)

// ============================================================================
// Tree Benchmarks
// ============================================================================

// BenchmarkInsert measures single-insert throughput.
// Reports: ns/op, allocs, and keys/sec.
func BenchmarkInsert(b *testing.B) {
	for _, d := range distributions {
		b.Run(d.String(), func(b *testing.B) {
			keys := benchKeys(d, sizeMedium)
			t := openBenchTree(b, sizeMedium)

			b.ReportAllocs()
			b.ResetTimer()

			for i := 0; i < b.N; i++ {
				if i%sizeMedium == 0 && i > 0 {
					b.StopTimer()
					if err := t.Clear(); err != nil {
						b.Fatal(err)
					}
					b.StartTimer()
				}
				if _, err := t.Insert(keys[i%sizeMedium], nil); err != nil {
					b.Fatal(err)
				}
			}

			b.StopTimer()
			b.ReportMetric(float64(b.N)/b.Elapsed().Seconds(), "keys/sec")
		})
	}
}

// BenchmarkInsertSequential shows the unbalanced worst case: sorted input
// degenerates into a chain.
func BenchmarkInsertSequential(b *testing.B) {
	keys := benchKeys(testutil.Sequential, sizeSmall)
	t := openBenchTree(b, sizeSmall)

	b.ReportAllocs()
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		if i%sizeSmall == 0 && i > 0 {
			b.StopTimer()
			if err := t.Clear(); err != nil {
				b.Fatal(err)
			}
			b.StartTimer()
		}
		if _, err := t.Insert(keys[i%sizeSmall], nil); err != nil {
			b.Fatal(err)
		}
	}

	b.StopTimer()
	b.ReportMetric(float64(t.Height()), "height")
}

// BenchmarkFind measures point lookups in a populated tree.
func BenchmarkFind(b *testing.B) {
	for _, d := range distributions {
		b.Run(d.String(), func(b *testing.B) {
			keys := benchKeys(d, sizeMedium)
			t := openBenchTree(b, sizeMedium)
			fillTree(b, t, keys)

			b.ReportAllocs()
			b.ResetTimer()

			for i := 0; i < b.N; i++ {
				if _, err := t.Find(keys[i%sizeMedium]); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}

// BenchmarkFindAll measures duplicate retrieval under skew.
func BenchmarkFindAll(b *testing.B) {
	keys := benchKeys(testutil.Zipf, sizeMedium)
	t := openBenchTree(b, sizeMedium)
	fillTree(b, t, keys)

	var matches int

	b.ReportAllocs()
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		all, err := t.FindAll(keys[i%sizeMedium])
		if err != nil {
			b.Fatal(err)
		}
		matches += len(all)
	}

	b.StopTimer()
	b.ReportMetric(float64(matches)/float64(b.N), "matches/op")
}

// BenchmarkRemove measures identity removal followed by re-insertion, which
// keeps the tree size stable.
func BenchmarkRemove(b *testing.B) {
	keys := benchKeys(testutil.Uniform, sizeMedium)
	t := openBenchTree(b, sizeMedium*4)
	entries := fillTree(b, t, keys)

	b.ReportAllocs()
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		j := i % sizeMedium
		if _, err := t.Remove(entries[j]); err != nil {
			b.Fatal(err)
		}
		e, err := t.Insert(keys[j], nil)
		if err != nil {
			b.Fatal(err)
		}
		entries[j] = e

		// Removed nodes are not reused; start over before the arena fills up.
		if t.Arena().Pos() > t.Arena().Capacity()/2 {
			b.StopTimer()
			if err := t.Clear(); err != nil {
				b.Fatal(err)
			}
			entries = fillTree(b, t, keys)
			b.StartTimer()
		}
	}
}

// BenchmarkInorder measures full traversal.
func BenchmarkInorder(b *testing.B) {
	keys := benchKeys(testutil.Uniform, sizeMedium)
	t := openBenchTree(b, sizeMedium)
	fillTree(b, t, keys)

	b.ReportAllocs()
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		n := 0
		for range t.All() {
			n++
		}
		if n != sizeMedium {
			b.Fatalf("visited %d entries", n)
		}
	}
}

// ============================================================================
// Baseline
// ============================================================================

type btreeItem struct {
	key []byte
	seq int
}

func btreeLess(a, b btreeItem) bool {
	if c := bytes.Compare(a.key, b.key); c != 0 {
		return c < 0
	}
	return a.seq < b.seq
}

// BenchmarkBaselineBTreeInsert inserts the same keys into a heap-allocated
// B-tree for comparison with BenchmarkInsert.
func BenchmarkBaselineBTreeInsert(b *testing.B) {
	for _, d := range distributions {
		b.Run(d.String(), func(b *testing.B) {
			keys := benchKeys(d, sizeMedium)
			tr := btree.NewG(32, btreeLess)

			b.ReportAllocs()
			b.ResetTimer()

			for i := 0; i < b.N; i++ {
				if i%sizeMedium == 0 && i > 0 {
					b.StopTimer()
					tr.Clear(false)
					b.StartTimer()
				}
				tr.ReplaceOrInsert(btreeItem{key: keys[i%sizeMedium], seq: i})
			}

			b.StopTimer()
			b.ReportMetric(float64(b.N)/b.Elapsed().Seconds(), "keys/sec")
		})
	}
}
