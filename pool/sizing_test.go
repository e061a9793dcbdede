package pool

import (
	"testing"
	"unsafe"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_BlockCount(t *testing.T) {
	tests := []struct {
		name string
		size int
		want int
	}{
		{"zero", 0, 0},
		{"negative", -1, 0},
		{"one byte", 1, 1},
		{"half block", BlockSize / 2, 1},
		{"exact block", BlockSize, 1},
		{"block plus one", BlockSize + 1, 2},
		{"two blocks", 2 * BlockSize, 2},
		{"odd multi", 3*BlockSize - 1, 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, blockCount(tt.size))
		})
	}
}

func Test_AlignOffset(t *testing.T) {
	// Heap buffers land at arbitrary alignment; the offset must always
	// point at a BlockSize-aligned address inside the slack block.
	for i := 0; i < 8; i++ {
		buf := make([]byte, 2*BlockSize+i)
		off := alignOffset(buf)
		require.GreaterOrEqual(t, off, 0)
		require.Less(t, off, BlockSize)
		addr := uintptr(unsafe.Pointer(&buf[off]))
		assert.Zero(t, addr%BlockSize, "aligned base %#x not a block multiple", addr)
	}
}
