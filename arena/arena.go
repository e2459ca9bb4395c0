package arena

import (
	"fmt"
	"log/slog"
	"unsafe"

	"github.com/hupe1980/arenatree/internal/conv"
	"github.com/hupe1980/arenatree/internal/mmap"
)

// MemoryAcquirer is an interface for acquiring memory.
// The arena acquires every page before committing it and releases every page
// it decommits.
type MemoryAcquirer interface {
	AcquireMemory(amount int64) error
	ReleaseMemory(amount int64)
}

const (
	// DefaultAlignment is the default memory alignment (8 bytes).
	DefaultAlignment = 8
	// DecommitSlackPages is the number of committed-but-unused pages tolerated
	// after a rewind before the arena hands pages back to the OS.
	DecommitSlackPages = 4
)

// Stats tracks arena memory usage metrics.
//
// Note on semantics:
//   - Allocs: cumulative allocation count
//   - BytesRequested: cumulative bytes requested by allocations (before alignment)
//   - BytesPadding: cumulative padding added for alignment
//   - Commits / Decommits: number of commit and decommit calls to the OS
//   - PagesCommitted / PagesDecommitted: cumulative page counts of those calls
//   - PeakCommitted: highest committed byte count ever reached
type Stats struct {
	Allocs           uint64
	BytesRequested   uint64
	BytesPadding     uint64
	Commits          uint64
	Decommits        uint64
	PagesCommitted   uint64
	PagesDecommitted uint64
	PeakCommitted    uint64
}

// Arena is a virtual-memory-backed bump allocator.
//
// It reserves its full capacity up front and commits pages lazily as the
// allocation offset advances. Rewinding the offset may decommit pages again.
// Individual allocations are never freed; memory is reclaimed only by
// rewinding (PopTo, Pop, Clear) or by Release.
//
// Arena is not safe for concurrent use.
type Arena struct {
	res       *mmap.Reservation
	data      []byte
	capacity  uint64
	committed uint64
	pos       uint64
	alignment uint64
	pageSize  uint64
	acquirer  MemoryAcquirer
	logger    *slog.Logger
	stats     Stats
	released  bool
}

// New reserves capacity bytes (rounded up to a whole number of pages) and
// commits the first page.
//
// New panics if the reservation or the initial commit fails: an arena that
// cannot secure its capacity has no degraded mode.
func New(capacity uint64, opts ...Option) *Arena {
	a := &Arena{
		alignment: DefaultAlignment,
		pageSize:  uint64(mmap.PageSize()),
	}

	for _, opt := range opts {
		opt(a)
	}

	if a.logger == nil {
		a.logger = slog.New(slog.DiscardHandler)
	}

	osPage := uint64(mmap.PageSize())
	if !isPowerOfTwo(a.pageSize) || a.pageSize%osPage != 0 {
		panic(fmt.Sprintf("arena: page size %d is not a power-of-two multiple of the OS page size %d", a.pageSize, osPage))
	}
	if !isPowerOfTwo(a.alignment) {
		panic(fmt.Sprintf("arena: alignment %d is not a power of two", a.alignment))
	}

	if _, err := conv.Uint64ToInt(capacity + a.pageSize); err != nil || capacity+a.pageSize < capacity {
		panic(fmt.Sprintf("arena: capacity %d too large", capacity))
	}
	a.capacity = max(alignUp(capacity, a.pageSize), a.pageSize)
	size := a.toInt(a.capacity)

	res, err := mmap.Reserve(size)
	if err != nil {
		panic(fmt.Errorf("arena: %w", err))
	}
	a.res = res
	a.data = res.Bytes()

	a.commit(a.pageSize)

	a.logger.Debug("arena created",
		"capacity", a.capacity,
		"page_size", a.pageSize,
		"alignment", a.alignment,
	)

	return a
}

// Alloc allocates size bytes at the default alignment and zeroes them.
// It returns the offset of the allocation and its bytes.
func (a *Arena) Alloc(size uint64) (uint64, []byte) {
	return a.alloc(size, a.alignment, true)
}

// AllocAligned allocates size zeroed bytes aligned to align.
// align must be a power of two; 0 is treated as 1.
func (a *Arena) AllocAligned(size, align uint64) (uint64, []byte) {
	if align == 0 {
		align = 1
	}
	return a.alloc(size, align, true)
}

// AllocNonZero allocates size bytes at the default alignment without zeroing
// them. Use it when the caller overwrites the whole allocation immediately.
func (a *Arena) AllocNonZero(size uint64) (uint64, []byte) {
	return a.alloc(size, a.alignment, false)
}

func (a *Arena) alloc(size, align uint64, zero bool) (uint64, []byte) {
	a.checkLive()
	if !isPowerOfTwo(align) {
		panic(fmt.Sprintf("arena: alignment %d is not a power of two", align))
	}

	addr := uint64(a.base()) + a.pos
	pad := (align - addr%align) % align

	total := pad + size
	end := a.pos + total
	if total < size || end < a.pos || end > a.capacity {
		panic(fmt.Sprintf("arena: out of capacity: pos=%d size=%d align=%d capacity=%d", a.pos, size, align, a.capacity))
	}

	if end > a.committed {
		a.commit(alignUp(end, a.pageSize))
	}

	if zero {
		// Padding is zeroed too.
		clear(a.data[a.pos:end])
	}

	off := a.pos + pad
	a.pos = end

	a.stats.Allocs++
	a.stats.BytesRequested += size
	a.stats.BytesPadding += pad

	return off, a.data[off:end:end]
}

// Pos returns the current allocation offset. It can be passed to PopTo later.
func (a *Arena) Pos() uint64 {
	return a.pos
}

// PopTo rewinds the allocation offset to pos, which must not exceed Pos.
// Everything allocated at or after pos becomes invalid.
func (a *Arena) PopTo(pos uint64) {
	a.checkLive()
	if pos > a.pos {
		panic(fmt.Sprintf("arena: pop to %d beyond current position %d", pos, a.pos))
	}
	a.pos = pos
	a.downsize()
}

// Pop rewinds the allocation offset by size bytes.
func (a *Arena) Pop(size uint64) {
	a.checkLive()
	if size > a.pos {
		panic(fmt.Sprintf("arena: pop of %d bytes exceeds current position %d", size, a.pos))
	}
	a.pos -= size
	a.downsize()
}

// Clear rewinds the arena to offset zero.
func (a *Arena) Clear() {
	a.PopTo(0)
}

// Release unmaps the whole reservation. Every slice and offset handed out by
// the arena becomes invalid. Releasing twice panics.
func (a *Arena) Release() {
	if a.released {
		panic("arena: release of released arena")
	}
	a.released = true

	committed := a.committed
	a.committed = 0
	a.pos = 0
	a.data = nil

	if err := a.res.Release(); err != nil {
		panic(fmt.Errorf("arena: release: %w", err))
	}

	if a.acquirer != nil {
		a.acquirer.ReleaseMemory(a.toInt64(committed))
	}

	a.logger.Debug("arena released", "capacity", a.capacity, "committed", committed)
}

// SetAlignment sets the alignment used by Alloc and AllocNonZero.
// n must be a power of two; 0 is treated as 1.
func (a *Arena) SetAlignment(n uint64) {
	if n == 0 {
		n = 1
	}
	if !isPowerOfTwo(n) {
		panic(fmt.Sprintf("arena: alignment %d is not a power of two", n))
	}
	a.alignment = n
}

// Alignment returns the default alignment.
func (a *Arena) Alignment() uint64 {
	return a.alignment
}

// Capacity returns the number of reserved bytes.
func (a *Arena) Capacity() uint64 {
	return a.capacity
}

// Committed returns the number of bytes currently backed by physical pages.
func (a *Arena) Committed() uint64 {
	return a.committed
}

// PageSize returns the commit granularity.
func (a *Arena) PageSize() uint64 {
	return a.pageSize
}

// Released reports whether Release has been called.
func (a *Arena) Released() bool {
	return a.released
}

// Stats returns the current arena statistics.
func (a *Arena) Stats() Stats {
	return a.stats
}

// Bytes returns the size bytes at off. The range must lie below Pos.
func (a *Arena) Bytes(off, size uint64) []byte {
	a.checkLive()
	end := off + size
	if end < off || end > a.pos {
		panic(fmt.Sprintf("arena: range [%d, %d) beyond current position %d", off, end, a.pos))
	}
	return a.data[off:end:end]
}

// Pointer returns a pointer to the byte at off. off must lie below Pos.
func (a *Arena) Pointer(off uint64) unsafe.Pointer {
	a.checkLive()
	if off >= a.pos {
		panic(fmt.Sprintf("arena: offset %d beyond current position %d", off, a.pos))
	}
	return unsafe.Add(unsafe.Pointer(unsafe.SliceData(a.data)), off) //nolint:gosec // unsafe is required for arena implementation
}

// Offset reports whether b lies entirely within live arena memory and, if so,
// returns its offset.
func (a *Arena) Offset(b []byte) (uint64, bool) {
	if a.released || len(b) == 0 {
		return 0, false
	}
	p := uint64(uintptr(unsafe.Pointer(unsafe.SliceData(b)))) //nolint:gosec // address comparison only
	base := uint64(a.base())
	n := uint64(len(b))
	if p < base || p+n > base+a.pos {
		return 0, false
	}
	return p - base, true
}

func (a *Arena) String() string {
	return fmt.Sprintf(
		"Arena{capacity: %.2f MB, committed: %.2f KB, pos: %d, page: %d, commits: %d, decommits: %d, allocs: %d}",
		float64(a.capacity)/(1024*1024),
		float64(a.committed)/1024,
		a.pos,
		a.pageSize,
		a.stats.Commits,
		a.stats.Decommits,
		a.stats.Allocs,
	)
}

// commit grows the committed region to target, which is page aligned.
// Pages are always committed contiguously from the current boundary.
func (a *Arena) commit(target uint64) {
	n := target - a.committed

	if a.acquirer != nil {
		if err := a.acquirer.AcquireMemory(a.toInt64(n)); err != nil {
			panic(fmt.Errorf("arena: commit %d bytes: %w", n, err))
		}
	}

	if err := a.res.Commit(a.toInt(a.committed), a.toInt(n)); err != nil {
		if a.acquirer != nil {
			a.acquirer.ReleaseMemory(a.toInt64(n))
		}
		panic(fmt.Errorf("arena: %w", err))
	}

	a.logger.Debug("arena commit", "from", a.committed, "to", target)

	a.committed = target
	a.stats.Commits++
	a.stats.PagesCommitted += n / a.pageSize
	a.stats.PeakCommitted = max(a.stats.PeakCommitted, a.committed)
}

// downsize hands roughly half of the committed pages back to the OS once the
// slack above pos exceeds DecommitSlackPages pages.
func (a *Arena) downsize() {
	if a.committed-a.pos <= DecommitSlackPages*a.pageSize {
		return
	}

	rem := (a.committed / a.pageSize / 2) * a.pageSize
	target := max(a.committed-rem, alignUp(a.pos, a.pageSize))
	if target >= a.committed {
		return
	}

	n := a.committed - target
	if err := a.res.Decommit(a.toInt(target), a.toInt(n)); err != nil {
		panic(fmt.Errorf("arena: %w", err))
	}

	if a.acquirer != nil {
		a.acquirer.ReleaseMemory(a.toInt64(n))
	}

	a.logger.Debug("arena decommit", "from", a.committed, "to", target, "pos", a.pos)

	a.committed = target
	a.stats.Decommits++
	a.stats.PagesDecommitted += n / a.pageSize
}

func (a *Arena) checkLive() {
	if a.released {
		panic("arena: use after release")
	}
}

func (a *Arena) base() uintptr {
	return uintptr(unsafe.Pointer(unsafe.SliceData(a.data))) //nolint:gosec // address arithmetic for alignment
}

// toInt converts a byte count bounded by capacity; capacity was checked to fit in int by New.
func (a *Arena) toInt(v uint64) int {
	return int(v) //nolint:gosec // v <= capacity <= MaxInt
}

func (a *Arena) toInt64(v uint64) int64 {
	n, err := conv.Uint64ToInt64(v)
	if err != nil {
		panic(fmt.Errorf("arena: %w", err))
	}
	return n
}

func alignUp(v, align uint64) uint64 {
	return (v + align - 1) &^ (align - 1)
}

func isPowerOfTwo(v uint64) bool {
	return v != 0 && v&(v-1) == 0
}
