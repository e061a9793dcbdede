package pool

import "unsafe"

// BlockSize is the fixed allocation granularity. The consuming JIT
// requires 64 KiB alignment for its near-branch displacement math, so
// every request is rounded up to whole 64 KiB blocks.
const BlockSize = 64 * 1024

// blockCount returns the number of whole blocks needed to hold size
// bytes. blockCount(0) is 0, which Acquire and Release reject.
func blockCount(size int) int {
	if size <= 0 {
		return 0
	}
	return (size + BlockSize - 1) / BlockSize
}

// alignOffset returns the offset of the first BlockSize-aligned
// address inside buf. Reservations carry one block of slack, so the
// aligned base always leaves room for the full capacity behind it.
func alignOffset(buf []byte) int {
	base := uintptr(unsafe.Pointer(&buf[0]))
	aligned := (base + BlockSize - 1) &^ uintptr(BlockSize-1)
	return int(aligned - base)
}
