// Package testutil provides workload generators for tests and benchmarks.
//
// This package is intended for use in tests and benchmarks only.
//
// # Key Generation
//
//	rng := testutil.NewRNG(seed)
//	keys := rng.UniformKeys(1000, 1<<20)   // few duplicates
//	keys = rng.ZipfKeys(1000, 1<<20, 1.2)  // hot keys, many duplicates
//	keys = testutil.SequentialKeys(1000)   // degenerate chain
//
// Keys are uint64 values; encode them with bst.Uint64Key to preserve order.
package testutil
