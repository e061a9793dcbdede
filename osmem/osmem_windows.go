//go:build windows

package osmem

import (
	"fmt"
	"unsafe"

	"golang.org/x/sys/windows"
)

// Reserve allocates a committed but inaccessible region. Windows does
// not charge physical pages until they are touched.
func (System) Reserve(size int) ([]byte, error) {
	addr, err := windows.VirtualAlloc(0, uintptr(size),
		windows.MEM_RESERVE|windows.MEM_COMMIT, windows.PAGE_NOACCESS)
	if err != nil {
		return nil, fmt.Errorf("osmem: reserve %d bytes: %w", size, err)
	}
	return unsafe.Slice((*byte)(unsafe.Pointer(addr)), size), nil
}

// Release frees a region returned by Reserve. Pass the same slice,
// not a derived one.
func (System) Release(mem []byte) error {
	if len(mem) == 0 {
		return nil
	}
	addr := uintptr(unsafe.Pointer(&mem[0]))
	if err := windows.VirtualFree(addr, 0, windows.MEM_RELEASE); err != nil {
		return fmt.Errorf("osmem: release: %w", err)
	}
	return nil
}

// Protect applies prot to mem, which must be page-aligned.
func (System) Protect(mem []byte, prot Prot) error {
	if len(mem) == 0 {
		return nil
	}
	var old uint32
	addr := uintptr(unsafe.Pointer(&mem[0]))
	if err := windows.VirtualProtect(addr, uintptr(len(mem)), pageProt(prot), &old); err != nil {
		return fmt.Errorf("osmem: protect %s: %w", prot, err)
	}
	return nil
}

// Discard resets the range with MEM_RESET: the kernel may drop the
// physical pages, but the reservation and protection survive.
func (System) Discard(mem []byte) error {
	if len(mem) == 0 {
		return nil
	}
	addr := uintptr(unsafe.Pointer(&mem[0]))
	if _, err := windows.VirtualAlloc(addr, uintptr(len(mem)),
		windows.MEM_RESET, windows.PAGE_READWRITE); err != nil {
		return fmt.Errorf("osmem: discard: %w", err)
	}
	return nil
}

// pageProt maps the R/W/X bit set onto the closest PAGE_* constant.
// Windows has no write-only or write-execute pages, so Write implies
// Read here.
func pageProt(p Prot) uint32 {
	switch {
	case p&Exec != 0 && p&Write != 0:
		return windows.PAGE_EXECUTE_READWRITE
	case p&Exec != 0 && p&Read != 0:
		return windows.PAGE_EXECUTE_READ
	case p&Exec != 0:
		return windows.PAGE_EXECUTE
	case p&Write != 0:
		return windows.PAGE_READWRITE
	case p&Read != 0:
		return windows.PAGE_READONLY
	default:
		return windows.PAGE_NOACCESS
	}
}
