// File: internal/normalize/normalizer.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Unified normalization routines for pool sizing parameters.
// Ensures page sizes and queue depths handed to the paging pool are valid
// powers of two within sane bounds, preventing silent misconfiguration.
// Should be used by ALL call sites constructing pool options.

package normalize

const (
	minPageSize     = 64 * 1024
	maxPageSize     = 64 * 1024 * 1024
	defaultPageSize = 1024 * 1024

	minPrefetchDepth     = 2
	defaultPrefetchDepth = 256
)

// PageSize validates and normalizes a requested pool page size.
// Non-positive requests fall back to the default; otherwise the value is
// clamped to [64KiB, 64MiB] and rounded up to a power of two.
func PageSize(requested int) int {
	if requested <= 0 {
		return defaultPageSize
	}
	if requested < minPageSize {
		requested = minPageSize
	}
	if requested > maxPageSize {
		requested = maxPageSize
	}
	return PowerOfTwo(requested)
}

// PrefetchDepth validates a prefetch hint queue capacity.
func PrefetchDepth(requested int) int {
	if requested <= 0 {
		return defaultPrefetchDepth
	}
	if requested < minPrefetchDepth {
		requested = minPrefetchDepth
	}
	return PowerOfTwo(requested)
}

// PowerOfTwo rounds n up to the next power of two. n must be positive.
func PowerOfTwo(n int) int {
	size := 1
	for size < n {
		size <<= 1
	}
	return size
}
