// Package buffer
// Author: momentics <momentics@gmail.com>
//
// Demand-paged raw byte buffers for large per-object binary data such as
// geometry vertex arrays. A Buffer behaves like an ordinary resizable byte
// array whose backing storage can be evicted into a shared paging pool and
// restored transparently on the next access, without changing logical size
// or pointer alignment guarantees.
//
// Residency is a tagged state: a buffer either owns its resident region
// outright or holds a slot handle into a pool page, never both. Every public
// operation runs under the instance lock; the instance lock is always taken
// before any pool-internal lock and the pool never calls back into a buffer.
package buffer
