package mmap

import "errors"

var (
	// ErrReleased is returned when attempting to use a released reservation.
	ErrReleased = errors.New("mmap: reservation is released")
	// ErrInvalidSize is returned when the requested reservation size is invalid.
	ErrInvalidSize = errors.New("mmap: invalid size")
	// ErrOutOfBounds is returned when a range falls outside the reservation.
	ErrOutOfBounds = errors.New("mmap: out of bounds")
	// ErrUnaligned is returned when a range does not start and end on page boundaries.
	ErrUnaligned = errors.New("mmap: range not page aligned")
)
