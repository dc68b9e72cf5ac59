//go:build linux

// File: internal/alloc/map_linux.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Linux off-heap page storage via anonymous mmap. Mappings are page-aligned
// by the kernel, which satisfies the Alignment contract. Unmapping returns
// the memory to the OS immediately instead of waiting for GC.

package alloc

import "golang.org/x/sys/unix"

// Map allocates n bytes of off-heap, zeroed memory.
func Map(n int) ([]byte, error) {
	if n == 0 {
		return nil, nil
	}
	return unix.Mmap(-1, 0, n,
		unix.PROT_READ|unix.PROT_WRITE,
		unix.MAP_PRIVATE|unix.MAP_ANONYMOUS)
}

// Unmap releases a region obtained from Map. The slice must be the exact
// value Map returned.
func Unmap(b []byte) error {
	if len(b) == 0 {
		return nil
	}
	return unix.Munmap(b)
}
