// File: internal/alloc/alloc.go
// Package alloc provides aligned memory allocation for buffers and pool pages.
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Heap allocations are over-allocated and resliced so the returned view starts
// on an Alignment boundary, which downstream SIMD and GPU-upload code requires.
// Off-heap page storage uses mmap on Linux (see map_linux.go).

package alloc

import "unsafe"

// Alignment is the mandated start-address alignment, in bytes, of every
// region handed out by this package.
const Alignment = 16

// Alloc returns a zeroed slice of length n whose backing array starts on an
// Alignment boundary. Alloc(0) returns nil.
func Alloc(n int) []byte {
	if n < 0 {
		panic("alloc: negative size")
	}
	if n == 0 {
		return nil
	}
	raw := make([]byte, n+Alignment)
	shift := 0
	if r := int(address(raw) % Alignment); r != 0 {
		shift = Alignment - r
	}
	return raw[shift : shift+n : shift+n]
}

// Aligned reports whether the slice start satisfies the Alignment contract.
// Nil and empty slices are trivially aligned.
func Aligned(b []byte) bool {
	if len(b) == 0 {
		return true
	}
	return address(b)%Alignment == 0
}

// AlignUp rounds n up to the next multiple of Alignment.
func AlignUp(n int) int {
	return (n + Alignment - 1) &^ (Alignment - 1)
}

func address(b []byte) uintptr {
	return uintptr(unsafe.Pointer(unsafe.SliceData(b)))
}
