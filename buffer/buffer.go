// File: buffer/buffer.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package buffer

import (
	"sync"

	"github.com/momentics/pagebuf/api"
	"github.com/momentics/pagebuf/internal/alloc"
	"github.com/momentics/pagebuf/internal/assert"
)

// residency is the tagged backing-storage state of a Buffer.
// A nil residency means Empty: no capacity reserved, nothing allocated.
type residency interface {
	residency()
}

// resident: the buffer owns data outright; len(data) == reserved.
type resident struct {
	data []byte
}

// pagedOut: all reserved bytes live in a pool slot; no owned allocation.
type pagedOut struct {
	slot api.Slot
}

func (resident) residency() {}
func (pagedOut) residency() {}

// Buffer is a thread-safe, demand-paged byte buffer.
//
// The zero value is not ready for use; construct with New or NewWithSize.
// Independent Buffer instances never contend with each other: each carries
// its own lock and never shares backing storage with another buffer.
type Buffer struct {
	mu       sync.Mutex
	size     int
	reserved int
	res      residency
}

// New returns an empty buffer with no reserved capacity.
func New() *Buffer {
	return &Buffer{}
}

// NewWithSize returns a buffer of logical size n with uninitialized contents.
func NewWithSize(n int) *Buffer {
	if !assert.Check(n >= 0, "negative buffer size") {
		n = 0
	}
	b := &Buffer{size: n, reserved: n}
	if n > 0 {
		b.res = resident{data: alloc.Alloc(n)}
	}
	return b
}

// Clone returns a deep copy of b. The source is forced resident if paged out;
// the clone always owns a fresh resident region and never shares a pool slot
// with the source.
func (b *Buffer) Clone() *Buffer {
	b.mu.Lock()
	defer b.mu.Unlock()

	c := &Buffer{size: b.size, reserved: b.reserved}
	if b.reserved == 0 {
		return c
	}
	data := alloc.Alloc(b.reserved)
	switch r := b.res.(type) {
	case resident:
		copy(data, r.data)
	case pagedOut:
		n := r.slot.CopyOut(data)
		assert.Check(n == b.reserved, "short slot copy")
	}
	c.res = resident{data: data}
	return c
}

// Size returns the logical length in bytes.
func (b *Buffer) Size() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.size
}

// Reserved returns the reserved capacity in bytes.
func (b *Buffer) Reserved() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.reserved
}

// ReadPointer returns a read-only view of the logical contents.
//
// Resident buffers and empty buffers return immediately. For a paged-out
// buffer, force selects the contract: with force set the call blocks until
// the pool page is resident and never returns nil for a non-empty buffer;
// without it the call returns nil when the page is evicted, leaving a
// residency hint with the pool so a later read may succeed without blocking.
//
// The buffer stays paged out on this path; only the shared page is restored.
// A non-nil result starts on an alloc.Alignment boundary and remains valid
// until the next operation that may evict or reallocate the storage.
func (b *Buffer) ReadPointer(force bool) []byte {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.size == 0 {
		return nil
	}
	var view []byte
	switch r := b.res.(type) {
	case resident:
		view = r.data[:b.size:b.size]
	case pagedOut:
		p := r.slot.Bytes(force)
		if p == nil {
			assert.Check(!force, "forced slot read returned nil")
			return nil
		}
		view = p[:b.size:b.size]
	}
	assert.Check(alloc.Aligned(view), "read pointer misaligned")
	return view
}

// WritePointer returns a mutable view of the logical contents, paging the
// buffer in first if necessary. After this call the buffer always owns its
// storage: writers must never mutate shared pool pages in place.
//
// May block while the pool restores an evicted page. Returns nil only when
// the logical size is zero.
func (b *Buffer) WritePointer() []byte {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.pageIn()
	if b.size == 0 {
		return nil
	}
	r, ok := b.res.(resident)
	assert.Check(ok, "write pointer on non-resident buffer")
	if !ok {
		return nil
	}
	view := r.data[:b.size:b.size]
	assert.Check(alloc.Aligned(view), "write pointer misaligned")
	return view
}

// SetSize changes the logical length to n without reallocating.
// n must not exceed the reserved capacity; violating that is a fatal
// precondition failure in debug builds.
//
// A paged-out buffer is paged in first, so bytes beyond the old logical
// size that become visible are deterministic.
func (b *Buffer) SetSize(n int) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !assert.Check(n >= 0 && n <= b.reserved, "size beyond reserved capacity") {
		if n < 0 {
			n = 0
		} else {
			n = b.reserved
		}
	}
	if n == b.size {
		return
	}
	b.pageIn()
	b.size = n
}

// CleanRealloc changes the reserved capacity to n, preserving contents up to
// min(size, n). n must be at least the current logical size. When growing,
// trailing bytes are uninitialized.
func (b *Buffer) CleanRealloc(n int) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !assert.Check(n >= b.size, "realloc below logical size") {
		n = b.size
	}
	if n == b.reserved {
		return
	}
	b.pageIn()
	if n == 0 {
		b.res = nil
		b.reserved = 0
		return
	}
	data := alloc.Alloc(n)
	if r, ok := b.res.(resident); ok {
		copy(data, r.data[:min(b.size, n)])
	}
	b.res = resident{data: data}
	b.reserved = n
}

// UncleanRealloc changes the reserved capacity to n without preserving any
// content; the whole region may come back with arbitrary bytes. This is the
// fast path for callers about to overwrite the buffer entirely.
func (b *Buffer) UncleanRealloc(n int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if !assert.Check(n >= b.size, "realloc below logical size") {
		n = b.size
	}
	b.uncleanRealloc(n)
}

// Clear releases all storage and returns the buffer to the empty state.
func (b *Buffer) Clear() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.size = 0
	b.uncleanRealloc(0)
}

// Close releases all resources. Equivalent to Clear; the buffer may be
// reused afterwards but typically is not.
func (b *Buffer) Close() {
	b.Clear()
}

// PageOut hands the buffer contents to pool and drops the owned allocation,
// leaving only a slot reference. Already paged-out buffers are left as is.
// Empty buffers have nothing to hand over and stay empty.
//
// The contents remain transparently readable afterwards; the first write or
// resize pages the buffer back in.
func (b *Buffer) PageOut(pool api.PagingPool) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	switch r := b.res.(type) {
	case nil:
		return nil
	case pagedOut:
		return nil
	case resident:
		slot, err := pool.PageOut(r.data[:b.size], b.reserved)
		if err != nil {
			return err
		}
		assert.Check(slot != nil, "pool returned nil slot")
		b.res = pagedOut{slot: slot}
		return nil
	}
	return nil
}

// pageIn converts a paged-out buffer into a resident one: allocate a fresh
// owned region, copy the bytes out of the slot via a forced read, drop the
// slot. Callers hold b.mu. No-op unless currently paged out.
func (b *Buffer) pageIn() {
	p, ok := b.res.(pagedOut)
	if !ok {
		return
	}
	data := alloc.Alloc(b.reserved)
	n := p.slot.CopyOut(data)
	assert.Check(n == b.reserved, "short slot copy")
	p.slot.Release()
	b.res = resident{data: data}
}

// uncleanRealloc releases current storage and reserves n fresh bytes.
// Callers hold b.mu and guarantee n >= b.size.
func (b *Buffer) uncleanRealloc(n int) {
	if p, ok := b.res.(pagedOut); ok {
		p.slot.Release()
	}
	if n == 0 {
		b.res = nil
		b.reserved = 0
		return
	}
	b.res = resident{data: alloc.Alloc(n)}
	b.reserved = n
}
