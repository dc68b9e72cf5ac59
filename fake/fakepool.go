// Author: momentics <momentics@gmail.com>
// SPDX-License-Identifier: MIT

// Package fake provides in-memory paging pool stubs for testing code that
// consumes the api interfaces without standing up a real pool.
package fake

import (
	"sync"

	"github.com/momentics/pagebuf/api"
	"github.com/momentics/pagebuf/internal/alloc"
)

// Pool is a heap-backed api.PagingPool. Slots are resident by default;
// SetEvicted(true) makes non-forced reads miss deterministically, which
// real pools only do under memory pressure.
type Pool struct {
	mu      sync.Mutex
	evicted bool
	stats   api.PoolStats
}

var _ api.PagingPool = (*Pool)(nil)

// NewPool creates a fake pool with all slots resident.
func NewPool() *Pool { return &Pool{} }

// SetEvicted flips the simulated residency of every slot.
func (f *Pool) SetEvicted(evicted bool) {
	f.mu.Lock()
	f.evicted = evicted
	f.mu.Unlock()
}

// PageOut implements api.PagingPool.
func (f *Pool) PageOut(data []byte, reserved int) (api.Slot, error) {
	if reserved < len(data) {
		reserved = len(data)
	}
	buf := alloc.Alloc(reserved)
	copy(buf, data)

	f.mu.Lock()
	f.stats.SlotsLive++
	f.stats.BytesPagedOut += int64(len(data))
	f.mu.Unlock()
	return &fakeSlot{pool: f, data: buf}, nil
}

// Stats implements api.PagingPool.
func (f *Pool) Stats() api.PoolStats {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.stats
}

type fakeSlot struct {
	pool *Pool
	data []byte
}

func (s *fakeSlot) Bytes(force bool) []byte {
	s.pool.mu.Lock()
	evicted := s.pool.evicted
	s.pool.mu.Unlock()
	if evicted && !force {
		s.pool.mu.Lock()
		s.pool.stats.PrefetchHints++
		s.pool.mu.Unlock()
		return nil
	}
	if len(s.data) == 0 {
		return []byte{}
	}
	return s.data[:len(s.data):len(s.data)]
}

func (s *fakeSlot) CopyOut(dst []byte) int {
	return copy(dst, s.data)
}

func (s *fakeSlot) Len() int { return len(s.data) }

func (s *fakeSlot) Release() {
	s.pool.mu.Lock()
	s.pool.stats.SlotsLive--
	s.pool.mu.Unlock()
	s.data = nil
}
