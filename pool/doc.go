// Package pool implements a fixed-block memory pool over a single
// reserved region of address space.
//
// # Overview
//
// The pool exists to satisfy a placement constraint: a JIT needs new
// executable memory within the short relative-branch range of its own
// code, and general-purpose mappers cannot guarantee that proximity
// under ASLR or dense library mapping. A region reserved once, near
// the consumer's code, and carved into fixed 64 KiB blocks gives
// deterministic proximity while keeping physical memory proportional
// to actual use: released blocks stay reserved but their physical
// backing is handed back to the kernel.
//
// All accounting is in whole blocks. There is no sub-block
// allocation, no compaction, and exactly one region per Pool.
//
// # Usage
//
//	p, err := pool.New(16 * 1024 * 1024)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer p.Close()
//
//	code, err := p.Acquire(2*pool.BlockSize, osmem.Read|osmem.Write|osmem.Exec)
//	if err != nil {
//	    // fall back to a general-purpose mapper
//	}
//	// ... emit machine code into code ...
//	_ = p.Release(code)
//
// The []byte returned by Acquire is the allocation handle; pass the
// same slice back to Release. Acquire places runs first-fit, lowest
// address wins.
//
// # Concurrency
//
// A single mutex serializes Acquire, Release, Stats and Close, so a
// Pool is safe for concurrent use. Calls are expected to be rare
// (code-buffer growth events, not allocation traffic), so there is no
// finer-grained locking. The mutex is not re-entrant: calling back
// into the pool from code running while a pool call is on the stack
// of the same goroutine deadlocks.
package pool
