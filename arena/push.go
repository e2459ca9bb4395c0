package arena

import (
	"fmt"
	"unsafe"
)

// The typed helpers below store T inside the arena, outside the Go heap.
// The garbage collector never scans arena memory, so T must not contain
// pointers, slices, strings, maps, channels, funcs or interfaces.

// Push allocates a zeroed T with its natural alignment.
func Push[T any](a *Arena) (uint64, *T) {
	var zero T
	off, b := a.alloc(uint64(unsafe.Sizeof(zero)), uint64(unsafe.Alignof(zero)), true)
	return off, (*T)(unsafe.Pointer(unsafe.SliceData(b))) //nolint:gosec // unsafe is required for arena implementation
}

// PushNonZero allocates a T with its natural alignment without zeroing it.
func PushNonZero[T any](a *Arena) (uint64, *T) {
	var zero T
	off, b := a.alloc(uint64(unsafe.Sizeof(zero)), uint64(unsafe.Alignof(zero)), false)
	return off, (*T)(unsafe.Pointer(unsafe.SliceData(b))) //nolint:gosec // unsafe is required for arena implementation
}

// PushArray allocates a zeroed array of n values of T.
func PushArray[T any](a *Arena, n int) (uint64, []T) {
	if n < 0 {
		panic(fmt.Sprintf("arena: negative array length %d", n))
	}
	var zero T
	size := uint64(unsafe.Sizeof(zero))
	total := size * uint64(n)
	if size != 0 && total/size != uint64(n) {
		panic(fmt.Sprintf("arena: array of %d x %d bytes overflows", n, size))
	}
	off, b := a.alloc(total, uint64(unsafe.Alignof(zero)), true)
	if n == 0 {
		return off, nil
	}
	return off, unsafe.Slice((*T)(unsafe.Pointer(unsafe.SliceData(b))), n) //nolint:gosec // unsafe is required for arena implementation
}

// At returns the T stored at off, which must have been returned by Push,
// PushNonZero or PushArray for the same T and must still lie below Pos.
func At[T any](a *Arena, off uint64) *T {
	var zero T
	a.Bytes(off, uint64(unsafe.Sizeof(zero)))
	return (*T)(a.Pointer(off))
}
