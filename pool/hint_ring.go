// File: pool/hint_ring.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Bounded MPMC ring of page residency hints, fed by non-forced reads and
// drained by the prefetch worker. Sequence-numbered cells per the Dmitry
// Vyukov MPMC queue pattern; no locks on the hint path.

package pool

import "sync/atomic"

const cacheLinePad = 64

type hintRing struct {
	head  uint64
	_     [cacheLinePad]byte
	tail  uint64
	_     [cacheLinePad]byte
	mask  uint64
	cells []hintCell
}

type hintCell struct {
	sequence atomic.Uint64
	page     *page
}

// newHintRing creates a ring with capacity rounded up to a power of two
// by the caller (see normalize.PrefetchDepth).
func newHintRing(capacity int) *hintRing {
	r := &hintRing{
		mask:  uint64(capacity - 1),
		cells: make([]hintCell, capacity),
	}
	for i := range r.cells {
		r.cells[i].sequence.Store(uint64(i))
	}
	return r
}

// enqueue adds a hint; returns false if the ring is full.
func (r *hintRing) enqueue(p *page) bool {
	for {
		tail := atomic.LoadUint64(&r.tail)
		c := &r.cells[tail&r.mask]
		seq := c.sequence.Load()
		dif := int64(seq) - int64(tail)

		if dif == 0 {
			if atomic.CompareAndSwapUint64(&r.tail, tail, tail+1) {
				c.page = p
				c.sequence.Store(tail + 1)
				return true
			}
		} else if dif < 0 {
			return false // full
		}
	}
}

// dequeue removes the oldest hint; ok is false when empty.
func (r *hintRing) dequeue() (p *page, ok bool) {
	for {
		head := atomic.LoadUint64(&r.head)
		c := &r.cells[head&r.mask]
		seq := c.sequence.Load()
		dif := int64(seq) - int64(head+1)

		if dif == 0 {
			if atomic.CompareAndSwapUint64(&r.head, head, head+1) {
				p = c.page
				c.page = nil
				c.sequence.Store(head + r.mask + 1)
				return p, true
			}
		} else if dif < 0 {
			return nil, false // empty
		}
	}
}
