package pool

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_Occupancy_FindRun_Empty(t *testing.T) {
	o := newOccupancy(8)
	assert.Equal(t, 0, o.findRun(1))
	assert.Equal(t, 0, o.findRun(8))
	assert.Equal(t, -1, o.findRun(9))
	assert.Equal(t, -1, o.findRun(0))
}

func Test_Occupancy_FindRun_FirstFit(t *testing.T) {
	o := newOccupancy(8)
	// Layout: X . . X . . . .
	o[0] = true
	o[3] = true

	// Both gaps fit a 2-run; the lower one must win even though the
	// upper gap is larger.
	assert.Equal(t, 1, o.findRun(2))
	assert.Equal(t, 4, o.findRun(3))
	assert.Equal(t, 4, o.findRun(4))
	assert.Equal(t, -1, o.findRun(5))
}

func Test_Occupancy_MarkRun(t *testing.T) {
	o := newOccupancy(6)
	o.markRun(1, 3, true)
	require.Equal(t, occupancy{false, true, true, true, false, false}, o)
	assert.Equal(t, 3, o.usedBlocks())

	// Clearing is unconditional, already-free entries stay free.
	o.markRun(0, 4, false)
	assert.Equal(t, 0, o.usedBlocks())
}

func Benchmark_FindRun_Fragmented(b *testing.B) {
	// Worst case: every other block used, so a 2-run never exists and
	// the scan walks the whole map.
	o := newOccupancy(1024)
	for i := 0; i < len(o); i += 2 {
		o[i] = true
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if o.findRun(2) != -1 {
			b.Fatal("unexpected free run")
		}
	}
}

func Test_Occupancy_FindRun_ScanSkipsUsedTail(t *testing.T) {
	o := newOccupancy(5)
	// . X X X .  : a 2-run does not exist
	o.markRun(1, 3, true)
	assert.Equal(t, -1, o.findRun(2))
	assert.Equal(t, 0, o.findRun(1))

	o.markRun(1, 1, false)
	// . . X X .
	assert.Equal(t, 0, o.findRun(2))
}
