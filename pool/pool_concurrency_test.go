package pool_test

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/execmem/poolkit/internal/testutil"
	"github.com/execmem/poolkit/pool"
)

// Test_Concurrent_AcquireRelease hammers a small pool from many
// goroutines. Exhaustion is expected under contention; corruption is
// not: afterwards every handle has been released and the map must be
// empty with matching counters.
func Test_Concurrent_AcquireRelease(t *testing.T) {
	const (
		blocks     = 8
		goroutines = 16
		iterations = 200
	)
	p, _ := testutil.NewTestPool(t, blocks)

	var wg sync.WaitGroup
	for g := 0; g < goroutines; g++ {
		wg.Add(1)
		go func(g int) {
			defer wg.Done()
			for i := 0; i < iterations; i++ {
				size := (1 + (g+i)%3) * pool.BlockSize
				b, err := p.Acquire(size, rw)
				if err != nil {
					if !errors.Is(err, pool.ErrNoMemory) {
						t.Errorf("unexpected acquire error: %v", err)
						return
					}
					continue
				}
				if err := p.Release(b); err != nil {
					t.Errorf("release: %v", err)
					return
				}
			}
		}(g)
	}
	wg.Wait()

	st := p.Stats()
	require.Zero(t, st.BlocksUsed, "all handles were released")
	assert.Equal(t, st.Acquires, st.Releases)
	assert.Equal(t, blocks*pool.BlockSize, st.BytesFree)
}

// Test_Concurrent_DistinctRuns holds allocations across goroutine
// boundaries and checks pairwise distinctness before releasing.
func Test_Concurrent_DistinctRuns(t *testing.T) {
	const blocks = 8
	p, _ := testutil.NewTestPool(t, blocks)

	var (
		mu      sync.Mutex
		handles [][]byte
		wg      sync.WaitGroup
	)
	for g := 0; g < blocks; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			b, err := p.Acquire(pool.BlockSize, rw)
			if err != nil {
				return
			}
			mu.Lock()
			handles = append(handles, b)
			mu.Unlock()
		}()
	}
	wg.Wait()

	// Every single-block acquire fits, so all of them succeeded.
	require.Len(t, handles, blocks)
	for i := range handles {
		for j := i + 1; j < len(handles); j++ {
			assert.False(t, sameStart(handles[i], handles[j]),
				"handles %d and %d overlap", i, j)
		}
	}
	for _, b := range handles {
		require.NoError(t, p.Release(b))
	}
	assert.Zero(t, p.Stats().BlocksUsed)
}
