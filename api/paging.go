// File: api/paging.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Paging contracts. A buffer that pages itself out hands its bytes to a
// PagingPool and keeps only a Slot handle; all later access goes through
// that handle until a write or resize forces the bytes back into an
// independently owned region.

package api

// Slot is a handle to one buffer's evicted bytes inside a paging pool page.
type Slot interface {
	// Bytes returns a view of the slot contents.
	//
	// With force set, the call blocks until the owning page is resident and
	// never returns nil for a non-empty slot. Without force, it returns nil
	// when the page is currently evicted and files a residency hint with the
	// pool so the page can be restored asynchronously.
	//
	// A non-nil result is aligned to alloc.Alignment and stays valid until
	// the next operation that may evict the owning page.
	Bytes(force bool) []byte

	// CopyOut copies the slot contents into dst, forcing residency first.
	// The copy happens atomically with respect to page eviction, unlike
	// reading through a Bytes view. Copies min(len(dst), Len()) bytes and
	// returns the count. This is the page-in path: buffers use it to pull
	// their bytes back into an independently owned region.
	CopyOut(dst []byte) int

	// Len returns the slot capacity in bytes.
	Len() int

	// Release returns the slot span to the pool for reuse.
	// The handle must not be used afterwards.
	Release()
}

// PagingPool accepts buffer contents for eviction and hands back slot handles.
type PagingPool interface {
	// PageOut moves ownership of data into the pool and returns a slot of
	// capacity reserved (reserved >= len(data); the tail beyond len(data) is
	// preserved as capacity, its content is unspecified).
	PageOut(data []byte, reserved int) (Slot, error)

	// Stats reports allocation and residency counters.
	Stats() PoolStats
}
