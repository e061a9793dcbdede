//go:build unix

package osmem

import (
	"fmt"

	"golang.org/x/sys/unix"
)

// Reserve maps an anonymous, inaccessible region. The kernel commits
// no physical pages until a range is protected and touched.
func (System) Reserve(size int) ([]byte, error) {
	mem, err := unix.Mmap(-1, 0, size, unix.PROT_NONE, unix.MAP_PRIVATE|unix.MAP_ANON)
	if err != nil {
		return nil, fmt.Errorf("osmem: reserve %d bytes: %w", size, err)
	}
	return mem, nil
}

// Release unmaps a region returned by Reserve. Pass the same slice,
// not a derived one.
func (System) Release(mem []byte) error {
	if len(mem) == 0 {
		return nil
	}
	if err := unix.Munmap(mem); err != nil {
		return fmt.Errorf("osmem: release: %w", err)
	}
	return nil
}

// Protect applies prot to mem, which must be page-aligned.
func (System) Protect(mem []byte, prot Prot) error {
	if len(mem) == 0 {
		return nil
	}
	if err := unix.Mprotect(mem, sysProt(prot)); err != nil {
		return fmt.Errorf("osmem: protect %s: %w", prot, err)
	}
	return nil
}

// Discard tells the kernel the contents of mem are no longer needed.
// The mapping stays; the next touch sees zero pages.
func (System) Discard(mem []byte) error {
	if len(mem) == 0 {
		return nil
	}
	if err := unix.Madvise(mem, unix.MADV_DONTNEED); err != nil {
		return fmt.Errorf("osmem: discard: %w", err)
	}
	return nil
}

func sysProt(p Prot) int {
	out := unix.PROT_NONE
	if p&Read != 0 {
		out |= unix.PROT_READ
	}
	if p&Write != 0 {
		out |= unix.PROT_WRITE
	}
	if p&Exec != 0 {
		out |= unix.PROT_EXEC
	}
	return out
}
