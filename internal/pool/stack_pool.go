// Package pool provides object pools for allocation-free tree traversal.
package pool

import "sync"

const (
	// DefaultStackCapacity is the initial capacity of pooled stacks.
	// Enough for balanced trees of any practical size.
	DefaultStackCapacity = 64

	// MaxPooledStackCapacity caps the capacity of stacks returned to the
	// pool. Stacks grown by degenerate trees are left to the GC.
	MaxPooledStackCapacity = 1 << 16
)

var stackPool = sync.Pool{
	New: func() any {
		s := make([]uint64, 0, DefaultStackCapacity)
		return &s
	},
}

// GetStack retrieves an empty offset stack from the pool.
func GetStack() *[]uint64 {
	s := stackPool.Get().(*[]uint64) //nolint:forcetypeassert // pool only holds *[]uint64
	*s = (*s)[:0]
	return s
}

// PutStack returns a stack to the pool.
func PutStack(s *[]uint64) {
	if s == nil || cap(*s) > MaxPooledStackCapacity {
		return
	}
	*s = (*s)[:0]
	stackPool.Put(s)
}
