// Package pool
// Author: momentics <momentics@gmail.com>
//
// Shared paging pool for evicted buffer contents.
// Buffer bytes handed over via PageOut are packed into large aligned pages;
// a page can be evicted to a compressed off-heap snapshot under memory
// pressure and restored on demand, either synchronously (forced access) or
// asynchronously through the prefetch hint queue fed by non-forced reads.
// See pool.go, page.go, prefetch.go for implementation details.
package pool
