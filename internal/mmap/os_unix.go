//go:build unix

package mmap

import (
	"golang.org/x/sys/unix"
)

func osPageSize() int {
	return unix.Getpagesize()
}

func osReserve(size int) ([]byte, func([]byte) error, error) {
	prot := unix.PROT_NONE
	flags := unix.MAP_ANON | unix.MAP_PRIVATE

	data, err := unix.Mmap(-1, 0, size, prot, flags)
	if err != nil {
		return nil, nil, err
	}

	return data, unix.Munmap, nil
}

func osCommit(data []byte) error {
	return unix.Mprotect(data, unix.PROT_READ|unix.PROT_WRITE)
}

func osDecommit(data []byte) error {
	// Drop the pages first; private anonymous pages read back as zero
	// if they are ever committed again.
	if err := unix.Madvise(data, unix.MADV_DONTNEED); err != nil {
		return err
	}
	return unix.Mprotect(data, unix.PROT_NONE)
}
