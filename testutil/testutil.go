package testutil

import (
	"math/rand"
	"sync"
)

// Distribution selects how keys are drawn.
type Distribution int

const (
	// Uniform draws keys uniformly from the keyspace.
	Uniform Distribution = iota
	// Zipf draws keys with a power-law skew towards small values.
	Zipf
	// Sequential yields 0, 1, 2, ... which degenerates a BST into a chain.
	Sequential
)

// String returns the flag name of the distribution.
func (d Distribution) String() string {
	switch d {
	case Uniform:
		return "uniform"
	case Zipf:
		return "zipf"
	case Sequential:
		return "sequential"
	default:
		return "unknown"
	}
}

// ParseDistribution parses a name produced by Distribution.String.
func ParseDistribution(s string) (Distribution, bool) {
	for _, d := range []Distribution{Uniform, Zipf, Sequential} {
		if d.String() == s {
			return d, true
		}
	}
	return 0, false
}

// RNG struct encapsulates the random number generator and seed.
// It is thread-safe.
type RNG struct {
	rand *rand.Rand
	seed int64
	mu   sync.Mutex
}

// NewRNG creates a new RNG instance with the specified seed.
func NewRNG(seed int64) *RNG {
	return &RNG{
		rand: rand.New(rand.NewSource(seed)), //nolint:gosec // deterministic workloads
		seed: seed,
	}
}

// Reset resets the RNG to its initial seed.
func (r *RNG) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rand.Seed(r.seed)
}

// Seed returns the initial seed.
func (r *RNG) Seed() int64 {
	return r.seed
}

// Intn returns a non-negative pseudo-random number in [0,n).
func (r *RNG) Intn(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Intn(n)
}

// FillBytes fills dst with random bytes.
// Locks only once per call.
func (r *RNG) FillBytes(dst []byte) {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, _ = r.rand.Read(dst)
}

// Keys generates n keys in [0, keyspace) with the given distribution.
// s is the Zipf skew and is ignored by the other distributions.
func (r *RNG) Keys(d Distribution, n int, keyspace uint64, s float64) []uint64 {
	switch d {
	case Zipf:
		return r.ZipfKeys(n, keyspace, s)
	case Sequential:
		return SequentialKeys(n)
	default:
		return r.UniformKeys(n, keyspace)
	}
}

// UniformKeys generates n keys drawn uniformly from [0, keyspace).
func (r *RNG) UniformKeys(n int, keyspace uint64) []uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()

	keys := make([]uint64, n)
	for i := range n {
		keys[i] = r.uniformLocked(keyspace)
	}

	return keys
}

// ZipfKeys generates n keys in [0, keyspace) with Zipfian distribution.
// P(k) ∝ 1/(1+k)^s, so small keys repeat often. s must be greater than 1;
// smaller values are raised to 1.01.
func (r *RNG) ZipfKeys(n int, keyspace uint64, s float64) []uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()

	if s <= 1 {
		s = 1.01
	}
	if keyspace == 0 {
		keyspace = 1
	}
	z := rand.NewZipf(r.rand, s, 1, keyspace-1)

	keys := make([]uint64, n)
	for i := range n {
		keys[i] = z.Uint64()
	}

	return keys
}

// SequentialKeys returns 0, 1, ..., n-1.
func SequentialKeys(n int) []uint64 {
	keys := make([]uint64, n)
	for i := range n {
		keys[i] = uint64(i) //nolint:gosec // i is non-negative
	}
	return keys
}

// Shuffle pseudo-randomizes the order of keys in place.
func (r *RNG) Shuffle(keys []uint64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rand.Shuffle(len(keys), func(i, j int) {
		keys[i], keys[j] = keys[j], keys[i]
	})
}

func (r *RNG) uniformLocked(keyspace uint64) uint64 {
	if keyspace == 0 {
		return r.rand.Uint64()
	}
	if keyspace <= 1<<63 {
		return uint64(r.rand.Int63n(int64(keyspace))) //nolint:gosec // keyspace fits int64
	}
	return r.rand.Uint64() % keyspace
}
