// File: pool/freelist.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// FIFO free list of released slot spans. First-fit with bounded rotation;
// oversized spans are split and the remainder re-queued. Guarded by Pool.mu.

package pool

import (
	"github.com/eapache/queue"

	"github.com/momentics/pagebuf/internal/alloc"
)

// span is a reusable byte range inside a page.
type span struct {
	p   *page
	off int
	n   int
}

type freeList struct {
	q *queue.Queue
}

func newFreeList() *freeList {
	return &freeList{q: queue.New()}
}

// take removes and returns a span of at least need bytes, splitting off any
// usable remainder. Scans each queued span at most once.
func (f *freeList) take(need int) (span, bool) {
	for i := f.q.Length(); i > 0; i-- {
		s := f.q.Remove().(span)
		if s.n < need {
			f.q.Add(s)
			continue
		}
		if rem := s.n - need; rem >= alloc.Alignment {
			f.q.Add(span{p: s.p, off: s.off + need, n: rem})
		}
		s.n = need
		return s, true
	}
	return span{}, false
}

func (f *freeList) put(s span) {
	f.q.Add(s)
}

func (f *freeList) len() int {
	return f.q.Length()
}
