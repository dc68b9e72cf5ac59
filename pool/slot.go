// File: pool/slot.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package pool

import (
	"sync/atomic"

	"github.com/momentics/pagebuf/api"
	"github.com/momentics/pagebuf/internal/assert"
)

// slot addresses a fixed span inside a page. The span start is aligned to
// alloc.Alignment, so every view handed out preserves the alignment contract.
type slot struct {
	p        *page
	off      int
	n        int // capacity reported to the buffer
	span     int // aligned span length returned to the free list
	released atomic.Bool
}

var _ api.Slot = (*slot)(nil)

// Bytes implements api.Slot.
func (s *slot) Bytes(force bool) []byte {
	if !assert.Check(!s.released.Load(), "slot used after release") {
		return nil
	}
	if s.n == 0 {
		return []byte{}
	}
	return s.p.bytes(s.off, s.n, force)
}

// CopyOut implements api.Slot.
func (s *slot) CopyOut(dst []byte) int {
	if !assert.Check(!s.released.Load(), "slot used after release") {
		return 0
	}
	if s.n == 0 || len(dst) == 0 {
		return 0
	}
	n := min(len(dst), s.n)
	s.p.copyOut(s.off, n, dst)
	return n
}

// Len implements api.Slot.
func (s *slot) Len() int { return s.n }

// Release implements api.Slot. Idempotent.
func (s *slot) Release() {
	if s.released.Swap(true) {
		return
	}
	if s.p == nil {
		return
	}
	s.p.mu.Lock()
	s.p.live--
	s.p.mu.Unlock()
	s.p.pool.freeSpan(span{p: s.p, off: s.off, n: s.span})
}
