// File: pool/page.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// A page is the unit of residency. Resident pages hold their bytes in an
// off-heap region from internal/alloc; evicted pages keep only a compressed
// snapshot. Slot handles address fixed spans inside a page.

package pool

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/klauspost/compress/s2"
	"go.uber.org/zap"

	"github.com/momentics/pagebuf/internal/alloc"
)

type page struct {
	pool *Pool
	id   int
	size int

	mu     sync.Mutex
	data   []byte // resident bytes; nil when evicted
	packed []byte // snapshot of evicted bytes; nil when resident
	used   int    // bump offset for new slots
	live   int    // live slot handles into this page

	lastUse atomic.Int64 // unix nanos of last access
	hinted  atomic.Bool  // queued for prefetch
}

func newPage(pl *Pool, id, size int) *page {
	data, err := alloc.Map(size)
	if err != nil {
		// Allocation failure is fatal by contract.
		panic("pagebuf: page allocation failed: " + err.Error())
	}
	p := &page{pool: pl, id: id, size: size, data: data}
	p.touch()
	pl.stats.pagesAllocated.Add(1)
	pl.stats.pagesResident.Add(1)
	return p
}

func (p *page) touch() {
	p.lastUse.Store(time.Now().UnixNano())
}

// bytes returns the span view [off, off+n), restoring the page when forced.
// A nil return means the page is evicted and a prefetch hint was filed.
func (p *page) bytes(off, n int, force bool) []byte {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.data == nil {
		if !force {
			p.pool.hint(p)
			return nil
		}
		p.restoreLocked()
	}
	p.touch()
	return p.data[off : off+n : off+n]
}

// copyOut copies n bytes starting at off into dst while holding the page
// lock, so the copy cannot race a concurrent eviction. Forces residency.
func (p *page) copyOut(off, n int, dst []byte) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.data == nil {
		p.restoreLocked()
	}
	p.touch()
	copy(dst, p.data[off:off+n])
}

// writeSlot copies src into the span starting at off, restoring first if the
// page was evicted in the meantime.
func (p *page) writeSlot(off int, src []byte) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.data == nil {
		p.restoreLocked()
	}
	p.touch()
	copy(p.data[off:], src)
}

// restore makes the page resident if it is not already.
func (p *page) restore() {
	p.mu.Lock()
	if p.data == nil {
		p.restoreLocked()
	}
	p.mu.Unlock()
}

// restoreLocked rebuilds the resident region from the evicted snapshot.
// Caller holds p.mu; p.data is nil.
func (p *page) restoreLocked() {
	data, err := alloc.Map(p.size)
	if err != nil {
		panic("pagebuf: page restore failed: " + err.Error())
	}
	if p.pool.opts.compress {
		if _, err := s2.Decode(data, p.packed); err != nil {
			panic("pagebuf: corrupt page snapshot: " + err.Error())
		}
	} else {
		copy(data, p.packed)
	}
	p.data = data
	p.packed = nil
	p.pool.stats.pagesResident.Add(1)
	p.pool.stats.pagesEvicted.Add(-1)
	p.pool.stats.bytesPagedIn.Add(int64(p.size))
	p.pool.opts.log.Debug("page restored",
		zap.Int("page", p.id), zap.Int("size", p.size))
}

// evict releases the resident region, keeping a snapshot for later restore.
// Reports whether the page transitioned from resident to evicted.
func (p *page) evict() bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.data == nil {
		return false
	}
	if p.pool.opts.compress {
		p.packed = s2.Encode(nil, p.data)
	} else {
		p.packed = append([]byte(nil), p.data...)
	}
	if err := alloc.Unmap(p.data); err != nil {
		panic("pagebuf: page unmap failed: " + err.Error())
	}
	p.data = nil
	p.pool.stats.pagesResident.Add(-1)
	p.pool.stats.pagesEvicted.Add(1)
	p.pool.opts.log.Debug("page evicted",
		zap.Int("page", p.id), zap.Int("packed", len(p.packed)))
	return true
}

// release drops all page memory. Caller guarantees no further access.
func (p *page) release() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.data != nil {
		_ = alloc.Unmap(p.data)
		p.data = nil
		p.pool.stats.pagesResident.Add(-1)
	} else if p.packed != nil {
		p.pool.stats.pagesEvicted.Add(-1)
	}
	p.packed = nil
}
