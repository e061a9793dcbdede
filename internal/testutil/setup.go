// Package testutil provides shared helpers for pool tests: a
// recording memory manager with failure injection, and a standard
// small-pool constructor.
package testutil

import (
	"sync"
	"testing"
	"unsafe"

	"github.com/stretchr/testify/require"

	"github.com/execmem/poolkit/osmem"
	"github.com/execmem/poolkit/pool"
)

// Call records one Manager operation: which op ran, the offset of the
// range within the reservation (-1 for reserve/release or foreign
// ranges), its length, and the protection for protect calls.
type Call struct {
	Op   string // "reserve", "release", "protect", "discard"
	Off  int
	Len  int
	Prot osmem.Prot
}

// FakeMem implements osmem.Manager on a plain heap buffer and records
// every call. Set ProtectErr or DiscardErr to make the corresponding
// operation fail.
type FakeMem struct {
	mu    sync.Mutex
	buf   []byte
	calls []Call

	ReserveErr error
	ProtectErr error
	DiscardErr error
}

func (m *FakeMem) Reserve(size int) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.ReserveErr != nil {
		return nil, m.ReserveErr
	}
	m.buf = make([]byte, size)
	m.calls = append(m.calls, Call{Op: "reserve", Off: -1, Len: size})
	return m.buf, nil
}

func (m *FakeMem) Release(mem []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, Call{Op: "release", Off: -1, Len: len(mem)})
	return nil
}

func (m *FakeMem) Protect(mem []byte, prot osmem.Prot) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.ProtectErr != nil {
		return m.ProtectErr
	}
	m.calls = append(m.calls, Call{Op: "protect", Off: m.offset(mem), Len: len(mem), Prot: prot})
	return nil
}

func (m *FakeMem) Discard(mem []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, Call{Op: "discard", Off: m.offset(mem), Len: len(mem)})
	return m.DiscardErr
}

// Calls returns a copy of the recorded calls.
func (m *FakeMem) Calls() []Call {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Call, len(m.calls))
	copy(out, m.calls)
	return out
}

// CallsTo returns only the recorded calls for one op.
func (m *FakeMem) CallsTo(op string) []Call {
	var out []Call
	for _, c := range m.Calls() {
		if c.Op == op {
			out = append(out, c)
		}
	}
	return out
}

// offset locates mem inside the reservation; -1 if it is foreign.
func (m *FakeMem) offset(mem []byte) int {
	if len(m.buf) == 0 || len(mem) == 0 {
		return -1
	}
	base := uintptr(unsafe.Pointer(&m.buf[0]))
	addr := uintptr(unsafe.Pointer(&mem[0]))
	if addr < base || addr >= base+uintptr(len(m.buf)) {
		return -1
	}
	return int(addr - base)
}

// NewTestPool builds a pool of the given number of minimum-size
// blocks over a fresh FakeMem and registers cleanup.
func NewTestPool(t *testing.T, blocks int) (*pool.Pool, *FakeMem) {
	t.Helper()
	m := &FakeMem{}
	p, err := pool.New(blocks*pool.BlockSize, pool.WithManager(m))
	require.NoError(t, err)
	t.Cleanup(func() { _ = p.Close() })
	return p, m
}
