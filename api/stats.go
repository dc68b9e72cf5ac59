// File: api/stats.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package api

// PoolStats aggregates paging pool accounting.
type PoolStats struct {
	// Pages ever allocated by the pool.
	PagesAllocated int64
	// Pages currently holding compressed (evicted) data only.
	PagesEvicted int64
	// Pages currently resident.
	PagesResident int64
	// Slots handed out and not yet released.
	SlotsLive int64
	// Bytes handed to the pool via PageOut since startup.
	BytesPagedOut int64
	// Bytes restored by page-in (forced or prefetch) since startup.
	BytesPagedIn int64
	// Prefetch hints accepted from non-forced reads.
	PrefetchHints int64
	// Prefetch hints dropped because the hint queue was full.
	PrefetchDropped int64
}
