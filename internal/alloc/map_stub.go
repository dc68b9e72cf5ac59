//go:build !linux

// File: internal/alloc/map_stub.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Portable fallback: page storage comes from the Go heap and is released by GC.

package alloc

// Map allocates n bytes of aligned, zeroed memory.
func Map(n int) ([]byte, error) {
	return Alloc(n), nil
}

// Unmap is a no-op on heap-backed regions.
func Unmap(b []byte) error {
	return nil
}
