//go:build unix

package pool_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/execmem/poolkit/pool"
)

// Test_System_EndToEnd runs against the real mmap-backed manager:
// acquire writable memory, touch every block, release, reuse.
func Test_System_EndToEnd(t *testing.T) {
	p, err := pool.New(4 * pool.BlockSize)
	require.NoError(t, err)
	defer p.Close()

	b, err := p.Acquire(2*pool.BlockSize, rw)
	require.NoError(t, err)
	for i := 0; i < len(b); i += pool.BlockSize {
		b[i] = 0x5A
	}

	require.NoError(t, p.Release(b))

	// The discarded range is handed out again and is writable after
	// re-protection.
	c, err := p.Acquire(2*pool.BlockSize, rw)
	require.NoError(t, err)
	assert.True(t, sameStart(b, c))
	c[0] = 0xA5
}
