//go:build !unix && !windows

package osmem

// Reserve falls back to a plain heap buffer when the platform offers
// no mapping primitives.
func (System) Reserve(size int) ([]byte, error) {
	return make([]byte, size), nil
}

// Release lets the garbage collector reclaim the buffer.
func (System) Release(mem []byte) error { return nil }

// Protect is a no-op: heap memory is always readable and writable.
func (System) Protect(mem []byte, prot Prot) error { return nil }

// Discard is a no-op: there is no backing to hand back.
func (System) Discard(mem []byte) error { return nil }
