package mmap

import "fmt"

// Reservation represents an anonymous address-space reservation.
// It owns the underlying byte slice and is responsible for unmapping it.
//
// Only committed pages may be touched; accessing a page that is reserved but
// not committed faults.
type Reservation struct {
	data     []byte
	size     int
	released bool
	// release is the platform-specific function to unmap the memory.
	release func([]byte) error
}

// PageSize returns the operating system page size.
func PageSize() int {
	return osPageSize()
}

// Reserve reserves size bytes of address space without committing any of it.
// size must be a positive multiple of PageSize.
func Reserve(size int) (*Reservation, error) {
	if size <= 0 || size%PageSize() != 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidSize, size)
	}

	data, release, err := osReserve(size)
	if err != nil {
		return nil, fmt.Errorf("mmap: reserve %d bytes: %w", size, err)
	}

	return &Reservation{
		data:    data,
		size:    size,
		release: release,
	}, nil
}

// Bytes returns the whole reserved range.
// Warning: only the committed parts may be accessed, and the slice is valid
// only until Release is called.
func (r *Reservation) Bytes() []byte {
	if r.released {
		return nil
	}
	return r.data
}

// Size returns the size of the reservation in bytes.
func (r *Reservation) Size() int {
	return r.size
}

// Released reports whether Release has been called.
func (r *Reservation) Released() bool {
	return r.released
}

// Commit makes [off, off+n) readable and writable.
func (r *Reservation) Commit(off, n int) error {
	b, err := r.span(off, n)
	if err != nil || b == nil {
		return err
	}
	if err := osCommit(b); err != nil {
		return fmt.Errorf("mmap: commit [%d, %d): %w", off, off+n, err)
	}
	return nil
}

// Decommit returns the physical pages backing [off, off+n) to the operating
// system and makes the range inaccessible again. Its contents are lost.
func (r *Reservation) Decommit(off, n int) error {
	b, err := r.span(off, n)
	if err != nil || b == nil {
		return err
	}
	if err := osDecommit(b); err != nil {
		return fmt.Errorf("mmap: decommit [%d, %d): %w", off, off+n, err)
	}
	return nil
}

// Release unmaps the whole reservation. It is idempotent.
func (r *Reservation) Release() error {
	if r.released {
		return nil
	}
	r.released = true
	if r.release != nil && r.data != nil {
		err := r.release(r.data)
		r.data = nil
		return err
	}
	return nil
}

func (r *Reservation) span(off, n int) ([]byte, error) {
	if r.released {
		return nil, ErrReleased
	}
	if off < 0 || n < 0 || off+n > r.size {
		return nil, ErrOutOfBounds
	}
	page := PageSize()
	if off%page != 0 || n%page != 0 {
		return nil, ErrUnaligned
	}
	if n == 0 {
		return nil, nil
	}
	return r.data[off : off+n : off+n], nil
}
