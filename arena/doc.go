// Package arena provides a virtual-memory-backed bump allocator.
//
// An Arena reserves its whole capacity as address space when it is created
// and commits physical pages lazily, contiguously, as the allocation offset
// grows. Rewinding the offset (PopTo, Pop, Clear) triggers a decommit policy
// with hysteresis: once more than DecommitSlackPages pages sit committed above
// the offset, about half of the committed pages are returned to the OS.
//
// # Allocation
//
//	a := arena.New(64 << 20)
//	defer a.Release()
//
//	off, buf := a.Alloc(128)              // zeroed, default alignment
//	_, raw := a.AllocNonZero(4096)        // caller overwrites it
//	_, node := arena.Push[header](a)      // typed, natural alignment
//
//	mark := a.Pos()
//	// ... temporary allocations ...
//	a.PopTo(mark)
//
// Offsets are stable for the lifetime of an allocation and can be turned back
// into memory with Bytes, Pointer or At.
//
// # Failure Model
//
// Precondition violations are programmer errors and panic: growing beyond
// the reserved capacity, rewinding past the current offset, invalid
// alignments, releasing twice, and any use after Release. The same holds for
// OS failures to reserve or commit memory and for a MemoryAcquirer refusing
// a commit.
//
// # Concurrency
//
// An Arena is owned by a single goroutine. It performs no locking.
package arena
