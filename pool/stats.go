package pool

// Stats is a point-in-time snapshot of pool usage. It is diagnostic
// only; the pool never consults it for placement decisions.
type Stats struct {
	Capacity   int // total usable bytes
	BytesUsed  int
	BytesFree  int
	Blocks     int
	BlocksUsed int

	Acquires uint64 // successful Acquire calls
	Releases uint64 // successful Release calls, double releases included
	Failures uint64 // failed Acquire calls, exhaustion and protection
}

// Stats returns a snapshot of the usage accounting.
func (p *Pool) Stats() Stats {
	p.mu.Lock()
	defer p.mu.Unlock()
	used := p.occ.usedBlocks()
	return Stats{
		Capacity:   len(p.region),
		BytesUsed:  used * BlockSize,
		BytesFree:  len(p.region) - used*BlockSize,
		Blocks:     len(p.occ),
		BlocksUsed: used,
		Acquires:   p.acquires,
		Releases:   p.releases,
		Failures:   p.failures,
	}
}
