// Package mmap provides anonymous virtual-memory reservations with explicit
// page commit and decommit.
//
// # Overview
//
// A Reservation claims a contiguous range of address space without backing it
// by physical memory. Callers then commit page-aligned sub-ranges (making them
// readable and writable) as they need them, and decommit them again to hand
// the physical pages back to the operating system. The address range itself
// stays valid until Release.
//
// # Usage
//
//	r, err := mmap.Reserve(1 << 30)
//	if err != nil { ... }
//	defer r.Release()
//
//	// Back the first 64 KiB.
//	_ = r.Commit(0, 64<<10)
//	data := r.Bytes()[:64<<10]
//
//	// Give the last 32 KiB back to the OS.
//	_ = r.Decommit(32<<10, 32<<10)
//
// # Platform Support
//
//   - Unix (Linux, macOS, BSD): mmap(2) with PROT_NONE, mprotect(2) to commit,
//     madvise(2) + mprotect(2) to decommit, munmap(2) to release
//   - Windows: VirtualAlloc(MEM_RESERVE), VirtualAlloc(MEM_COMMIT),
//     VirtualFree(MEM_DECOMMIT), VirtualFree(MEM_RELEASE)
//
// # Thread Safety
//
// A Reservation is not safe for concurrent mutation. Reading or writing
// committed bytes from several goroutines is fine as long as no Commit,
// Decommit or Release runs concurrently.
package mmap
