package pool

// occupancy tracks which blocks of the aligned region are in use.
// Entry i covers [i*BlockSize, (i+1)*BlockSize). A live multi-block
// allocation is a contiguous run of true entries.
type occupancy []bool

func newOccupancy(blocks int) occupancy {
	return make(occupancy, blocks)
}

// findRun returns the lowest starting index of a free run of n
// entries, or -1 if none exists. First fit: the lowest sufficiently
// large run wins, its length beyond n is never considered.
func (o occupancy) findRun(n int) int {
	if n <= 0 || n > len(o) {
		return -1
	}
scan:
	for start := 0; start+n <= len(o); start++ {
		for i := start; i < start+n; i++ {
			if o[i] {
				start = i // resume past the used block
				continue scan
			}
		}
		return start
	}
	return -1
}

// markRun sets n entries starting at start to used.
func (o occupancy) markRun(start, n int, used bool) {
	for i := start; i < start+n; i++ {
		o[i] = used
	}
}

// usedBlocks counts entries currently marked used.
func (o occupancy) usedBlocks() int {
	used := 0
	for _, b := range o {
		if b {
			used++
		}
	}
	return used
}
