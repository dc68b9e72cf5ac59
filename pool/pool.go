// File: pool/pool.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Pool implements api.PagingPool: the shared home of evicted buffer bytes.
// Slot spans are bump-allocated out of large pages; released spans recycle
// through a FIFO free list. Lock ordering: Pool.mu may be taken before a
// page mutex, never after; slot access paths take only the page mutex. The
// pool never calls back into a buffer.

package pool

import (
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/momentics/pagebuf/api"
	"github.com/momentics/pagebuf/internal/alloc"
)

// Pool is a shared paging pool. Construct with New; Close releases all pages
// and stops the prefetch worker.
type Pool struct {
	opts options

	mu    sync.Mutex
	pages []*page
	open  *page // current bump-allocation page
	free  *freeList

	ring   *hintRing
	notify chan struct{}
	stop   chan struct{}
	wg     sync.WaitGroup

	closed atomic.Bool
	stats  counters
}

type counters struct {
	pagesAllocated  atomic.Int64
	pagesResident   atomic.Int64
	pagesEvicted    atomic.Int64
	slotsLive       atomic.Int64
	bytesPagedOut   atomic.Int64
	bytesPagedIn    atomic.Int64
	prefetchHints   atomic.Int64
	prefetchDropped atomic.Int64
}

var _ api.PagingPool = (*Pool)(nil)

// New creates a paging pool and starts its prefetch worker.
func New(opts ...Option) *Pool {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	pl := &Pool{
		opts:   o,
		free:   newFreeList(),
		ring:   newHintRing(o.prefetchDepth),
		notify: make(chan struct{}, 1),
		stop:   make(chan struct{}),
	}
	pl.wg.Add(1)
	go pl.prefetchLoop()
	return pl
}

// PageOut implements api.PagingPool. Ownership of data moves into the pool;
// the returned slot has capacity reserved, of which the first len(data)
// bytes are the handed-over contents.
func (pl *Pool) PageOut(data []byte, reserved int) (api.Slot, error) {
	if pl.closed.Load() {
		return nil, api.ErrPoolClosed
	}
	if reserved < len(data) {
		reserved = len(data)
	}
	if reserved == 0 {
		return &slot{}, nil
	}
	need := alloc.AlignUp(reserved)

	pl.mu.Lock()
	s, ok := pl.free.take(need)
	if !ok {
		s = pl.carve(need)
	}
	pl.mu.Unlock()

	s.p.writeSlot(s.off, data)
	pl.stats.slotsLive.Add(1)
	pl.stats.bytesPagedOut.Add(int64(len(data)))
	return &slot{p: s.p, off: s.off, n: reserved, span: need}, nil
}

// carve finds room for a span of need bytes, growing the pool as necessary.
// Caller holds pl.mu.
func (pl *Pool) carve(need int) span {
	if need > pl.opts.pageSize {
		// Dedicated page for oversize spans; never becomes the open page.
		p := newPage(pl, len(pl.pages), need)
		p.used = need
		p.live++
		pl.pages = append(pl.pages, p)
		return span{p: p, off: 0, n: need}
	}
	if pl.open == nil || pl.open.size-pl.open.used < need {
		pl.open = newPage(pl, len(pl.pages), pl.opts.pageSize)
		pl.pages = append(pl.pages, pl.open)
	}
	p := pl.open
	s := span{p: p, off: p.used, n: need}
	p.used += need
	p.live++
	return s
}

// freeSpan returns a released slot span to the free list.
func (pl *Pool) freeSpan(s span) {
	pl.stats.slotsLive.Add(-1)
	if s.n == 0 || pl.closed.Load() {
		return
	}
	pl.mu.Lock()
	pl.free.put(s)
	pl.mu.Unlock()
}

// hint records that a page should become resident soon. Non-blocking;
// dropped silently when the ring is full.
func (pl *Pool) hint(p *page) {
	if pl.closed.Load() {
		return
	}
	if p.hinted.Swap(true) {
		return
	}
	if pl.ring.enqueue(p) {
		pl.stats.prefetchHints.Add(1)
		select {
		case pl.notify <- struct{}{}:
		default:
		}
		return
	}
	p.hinted.Store(false)
	pl.stats.prefetchDropped.Add(1)
}

// EvictAll evicts every resident page and returns the count evicted.
func (pl *Pool) EvictAll() int {
	return pl.evictOlder(0)
}

// EvictIdle evicts resident pages not accessed within idle.
func (pl *Pool) EvictIdle(idle time.Duration) int {
	return pl.evictOlder(idle)
}

func (pl *Pool) evictOlder(idle time.Duration) int {
	pl.mu.Lock()
	pages := make([]*page, len(pl.pages))
	copy(pages, pl.pages)
	pl.mu.Unlock()

	cutoff := time.Now().Add(-idle).UnixNano()
	n := 0
	for _, p := range pages {
		if p.lastUse.Load() > cutoff {
			continue
		}
		if p.evict() {
			n++
		}
	}
	return n
}

// Stats implements api.PagingPool.
func (pl *Pool) Stats() api.PoolStats {
	return api.PoolStats{
		PagesAllocated:  pl.stats.pagesAllocated.Load(),
		PagesResident:   pl.stats.pagesResident.Load(),
		PagesEvicted:    pl.stats.pagesEvicted.Load(),
		SlotsLive:       pl.stats.slotsLive.Load(),
		BytesPagedOut:   pl.stats.bytesPagedOut.Load(),
		BytesPagedIn:    pl.stats.bytesPagedIn.Load(),
		PrefetchHints:   pl.stats.prefetchHints.Load(),
		PrefetchDropped: pl.stats.prefetchDropped.Load(),
	}
}

// Close stops the prefetch worker and releases all page memory.
// Slots handed out earlier must not be used afterwards. Idempotent.
func (pl *Pool) Close() error {
	if pl.closed.Swap(true) {
		return nil
	}
	close(pl.stop)
	pl.wg.Wait()

	pl.mu.Lock()
	pages := pl.pages
	pl.pages = nil
	pl.open = nil
	pl.free = newFreeList()
	pl.mu.Unlock()

	for _, p := range pages {
		p.release()
	}
	pl.opts.log.Info("paging pool closed", zap.Int("pages", len(pages)))
	return nil
}
