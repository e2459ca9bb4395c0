//go:build windows

package mmap

import (
	"os"
	"unsafe"

	"golang.org/x/sys/windows"
)

func osPageSize() int {
	return os.Getpagesize()
}

func osReserve(size int) ([]byte, func([]byte) error, error) {
	// MEM_RESERVE alone claims address space without charging the commit limit.
	addr, err := windows.VirtualAlloc(0, uintptr(size), windows.MEM_RESERVE, windows.PAGE_NOACCESS)
	if err != nil {
		return nil, nil, err
	}

	data := unsafe.Slice((*byte)(unsafe.Pointer(addr)), size) //nolint:gosec // address returned by VirtualAlloc

	return data, func([]byte) error {
		// VirtualFree with MEM_RELEASE frees the entire region
		return windows.VirtualFree(addr, 0, windows.MEM_RELEASE)
	}, nil
}

func osCommit(data []byte) error {
	_, err := windows.VirtualAlloc(addrOf(data), uintptr(len(data)), windows.MEM_COMMIT, windows.PAGE_READWRITE)
	return err
}

func osDecommit(data []byte) error {
	return windows.VirtualFree(addrOf(data), uintptr(len(data)), windows.MEM_DECOMMIT)
}

func addrOf(data []byte) uintptr {
	return uintptr(unsafe.Pointer(unsafe.SliceData(data))) //nolint:gosec // VirtualAlloc/VirtualFree take raw addresses
}
