package pool

import (
	"fmt"
	"io"
	"log/slog"
	"sync"
	"unsafe"

	"github.com/execmem/poolkit/osmem"
)

// Pool is a fixed-block allocator over one reserved region. Blocks
// have exactly two states, free and used; Acquire flips a contiguous
// run to used and Release flips it back, both under a single mutex.
type Pool struct {
	mu     sync.Mutex
	buf    []byte // raw reservation, capacity+BlockSize bytes
	region []byte // block-aligned view of buf, exactly capacity bytes
	occ    occupancy
	mem    osmem.Manager
	log    *slog.Logger
	owned  bool // buf came from mem.Reserve; Close unmaps it
	closed bool

	acquires uint64
	releases uint64
	failures uint64
}

// New builds a pool of capacity usable bytes. capacity must be a
// positive multiple of BlockSize. Unless WithRegion supplies a
// backing region, New reserves capacity+BlockSize bytes through the
// configured manager; the extra block guarantees a BlockSize-aligned
// base exists inside the reservation.
func New(capacity int, opts ...Option) (*Pool, error) {
	if capacity < BlockSize || capacity%BlockSize != 0 {
		return nil, fmt.Errorf("%w: capacity %d is not a positive multiple of %d",
			ErrInvalidArg, capacity, BlockSize)
	}
	cfg := config{
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
		mem:    osmem.System{},
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	buf := cfg.region
	owned := false
	if buf == nil {
		var err error
		buf, err = cfg.mem.Reserve(capacity + BlockSize)
		if err != nil {
			return nil, fmt.Errorf("pool: reserve: %w", err)
		}
		owned = true
	} else if len(buf) < capacity+BlockSize {
		return nil, fmt.Errorf("%w: region is %d bytes, need %d",
			ErrInvalidArg, len(buf), capacity+BlockSize)
	}

	off := alignOffset(buf)
	if off+capacity > len(buf) {
		// Unreachable with a block of slack; guard the invariant
		// instead of trusting it.
		return nil, fmt.Errorf("%w: no aligned base inside region", ErrInvalidArg)
	}
	return &Pool{
		buf:    buf,
		region: buf[off : off+capacity : off+capacity],
		occ:    newOccupancy(capacity / BlockSize),
		mem:    cfg.mem,
		log:    cfg.logger,
		owned:  owned,
	}, nil
}

// Acquire returns a block-aligned range of at least size bytes with
// prot applied, rounding size up to whole blocks. The returned slice
// is the allocation handle: pass the same slice back to Release. Runs
// are placed first-fit, lowest address wins. On failure the error
// wraps ErrNoMemory or ErrProtect and the occupancy map is unchanged;
// the OS-level failure is not retried.
func (p *Pool) Acquire(size int, prot osmem.Prot) ([]byte, error) {
	n := blockCount(size)

	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return nil, ErrClosed
	}
	if n > 0 && size%BlockSize != 0 {
		// Callers are expected to request whole blocks; tolerate the
		// slip and round up.
		p.log.Warn("acquire size not a block multiple", "size", size, "blocks", n)
	}
	if n == 0 || n > len(p.occ) {
		p.failures++
		p.logUsage("acquire failed", "size", size, "blocks", n)
		return nil, fmt.Errorf("%w: %d bytes (%d blocks)", ErrNoMemory, size, n)
	}

	start := p.occ.findRun(n)
	if start < 0 {
		p.failures++
		p.logUsage("acquire failed", "size", size, "blocks", n)
		return nil, fmt.Errorf("%w: no free run of %d blocks", ErrNoMemory, n)
	}

	b := p.slice(start, n)
	if err := p.mem.Protect(b, prot); err != nil {
		// Run stays unmarked so a later call can still use it.
		p.failures++
		p.logUsage("acquire failed", "start", start, "blocks", n, "prot", prot.String(), "err", err)
		return nil, fmt.Errorf("%w: blocks %d+%d: %w", ErrProtect, start, n, err)
	}
	p.occ.markRun(start, n, true)
	p.acquires++
	p.logUsage("acquire", "start", start, "blocks", n, "prot", prot.String())
	return b, nil
}

// Release frees the blocks backing b and advises the OS that their
// physical pages may be reclaimed. b must be a handle returned by
// Acquire, or a prefix of one cut at a block boundary: exactly the
// blocks b covers are freed. Releasing an already-free range is
// tolerated and still succeeds, so Release is idempotent. A handle
// outside the pool fails with ErrInvalidArg and leaves the map
// untouched. An in-pool address that is not block aligned panics:
// Acquire never returns one, so it marks a foreign or corrupted
// pointer and the map can no longer be trusted.
func (p *Pool) Release(b []byte) error {
	n := blockCount(len(b))
	if n == 0 {
		return fmt.Errorf("%w: zero-sized release", ErrInvalidArg)
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return ErrClosed
	}
	if len(b)%BlockSize != 0 {
		p.log.Warn("release size not a block multiple", "size", len(b), "blocks", n)
	}

	base := uintptr(unsafe.Pointer(&p.region[0]))
	addr := uintptr(unsafe.Pointer(&b[0]))
	if addr < base || addr > base+uintptr(len(p.region)) {
		return fmt.Errorf("%w: address %#x outside pool", ErrInvalidArg, addr)
	}
	off := int(addr - base)
	if off+n*BlockSize > len(p.region) {
		return fmt.Errorf("%w: range %#x+%d overruns pool", ErrInvalidArg, addr, n*BlockSize)
	}
	if off%BlockSize != 0 {
		panic(fmt.Sprintf("pool: misaligned release address %#x (pool base %#x)", addr, base))
	}

	start := off / BlockSize
	if !p.occ[start] {
		// Double release. Harmless for the map, every entry in the
		// run is set free regardless of its prior value.
		p.log.Warn("releasing already-free block", "start", start, "blocks", n)
	}
	p.occ.markRun(start, n, false)
	p.releases++

	if err := p.mem.Discard(p.slice(start, n)); err != nil {
		// Advisory only: the blocks are free either way, the kernel
		// just keeps the physical pages a little longer.
		p.log.Warn("discard hint failed", "start", start, "blocks", n, "err", err)
	}
	p.logUsage("release", "start", start, "blocks", n)
	return nil
}

// Close releases the pool's reservation. Outstanding handles become
// invalid, and further calls return ErrClosed. A caller-supplied
// region (WithRegion) is left mapped. Close is idempotent.
func (p *Pool) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return nil
	}
	p.closed = true
	if !p.owned {
		return nil
	}
	if err := p.mem.Release(p.buf); err != nil {
		return fmt.Errorf("pool: close: %w", err)
	}
	return nil
}

// slice returns the full-sliced byte range of a block run, so callers
// cannot append into a neighboring block.
func (p *Pool) slice(start, n int) []byte {
	lo, hi := start*BlockSize, (start+n)*BlockSize
	return p.region[lo:hi:hi]
}

// logUsage emits the usage accounting line both operations end with.
// Callers hold p.mu.
func (p *Pool) logUsage(op string, args ...any) {
	used := p.occ.usedBlocks() * BlockSize
	args = append(args, "used", used, "avail", len(p.region)-used, "total", len(p.region))
	p.log.Debug(op, args...)
}
