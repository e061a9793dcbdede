package pool

import "errors"

var (
	// ErrNoMemory is returned by Acquire when no free run of the
	// required length exists, or when the request is zero-sized.
	ErrNoMemory = errors.New("pool: out of memory")

	// ErrProtect is returned by Acquire when the OS rejects the
	// requested protection change. The candidate run stays free.
	ErrProtect = errors.New("pool: protection change failed")

	// ErrInvalidArg is returned by Release for a zero-sized handle or
	// one that lies outside the pool's region, and by New for a bad
	// capacity or region.
	ErrInvalidArg = errors.New("pool: invalid argument")

	// ErrClosed is returned once Close has released the region.
	ErrClosed = errors.New("pool: closed")
)
