package arenatree

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned when no entry matches a key or an entry is not
	// linked into the tree.
	ErrNotFound = errors.New("not found")

	// ErrClosed is returned by operations on a closed Tree.
	ErrClosed = errors.New("tree closed")
)

// ErrInvalidCapacity indicates an arena capacity that cannot be reserved.
type ErrInvalidCapacity struct {
	Capacity uint64
}

func (e *ErrInvalidCapacity) Error() string {
	return fmt.Sprintf("invalid capacity: %d", e.Capacity)
}

// ErrInvalidPageSize indicates a page size that is not a power of two or not
// a multiple of the operating system page size.
type ErrInvalidPageSize struct {
	PageSize uint64
	OSPage   uint64
}

func (e *ErrInvalidPageSize) Error() string {
	return fmt.Sprintf("invalid page size: %d (os page size %d)", e.PageSize, e.OSPage)
}

func notFound(key []byte) error {
	return fmt.Errorf("%w: key %x", ErrNotFound, key)
}

// ErrInvalidAlignment indicates an alignment that is not a power of two.
type ErrInvalidAlignment struct {
	Alignment uint64
}

func (e *ErrInvalidAlignment) Error() string {
	return fmt.Sprintf("invalid alignment: %d", e.Alignment)
}
