package benchmark_test

import (
	"testing"

	"github.com/hupe1980/arenatree"
	"github.com/hupe1980/arenatree/bst"
	"github.com/hupe1980/arenatree/testutil"
)

// ============================================================================
// Benchmark Configuration
// ============================================================================

// Standard tree sizes.
const (
	sizeSmall  = 1_000
	sizeMedium = 100_000
)

// Seed for deterministic benchmarks - enables reproducible comparisons.
const benchSeed = 42

// Keyspace for uniform and Zipf keys. Zipf keys repeat heavily within it.
const keyspace = 1 << 20

const zipfSkew = 1.2

var distributions = []testutil.Distribution{testutil.Uniform, testutil.Zipf}

// ============================================================================
// Benchmark Helpers
// ============================================================================

func encodeKeys(keys []uint64) [][]byte {
	out := make([][]byte, len(keys))
	for i, k := range keys {
		out[i] = bst.Uint64Key(k)
	}
	return out
}

func benchKeys(d testutil.Distribution, n int) [][]byte {
	rng := testutil.NewRNG(benchSeed)
	return encodeKeys(rng.Keys(d, n, keyspace, zipfSkew))
}

// openBenchTree creates a facade tree sized for n entries.
func openBenchTree(b *testing.B, n int) *arenatree.Tree {
	b.Helper()

	capacity := uint64(max(n, 1)) * 256 //nolint:gosec // n is positive
	t, err := arenatree.New(bst.Lexical, arenatree.WithCapacity(max(capacity, 1<<20)))
	if err != nil {
		b.Fatal(err)
	}
	b.Cleanup(func() { _ = t.Close() })

	return t
}

func fillTree(b *testing.B, t *arenatree.Tree, keys [][]byte) []bst.Entry {
	b.Helper()

	entries := make([]bst.Entry, len(keys))
	for i, k := range keys {
		e, err := t.Insert(k, nil)
		if err != nil {
			b.Fatal(err)
		}
		entries[i] = e
	}
	return entries
}
