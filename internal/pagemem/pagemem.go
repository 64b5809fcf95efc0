// Package pagemem allocates page-aligned byte regions for envelopes.
package pagemem

import "unsafe"

// PageSize is fixed regardless of the host page size so that envelope
// layouts are identical on every platform.
const PageSize = 4096

// Allocator hands out zeroed, PageSize-aligned regions whose length is a
// multiple of PageSize.
type Allocator interface {
	Alloc(size int) ([]byte, error)
	Free(b []byte) error
}

// RoundUp rounds n up to the next page boundary. Zero rounds to one page.
func RoundUp(n int) int {
	if n <= 0 {
		return PageSize
	}
	return ((n + PageSize - 1) / PageSize) * PageSize
}

// Aligned reports whether b starts on an align-byte boundary.
func Aligned(b []byte, align uintptr) bool {
	if len(b) == 0 || align == 0 {
		return true
	}
	return uintptr(unsafe.Pointer(unsafe.SliceData(b)))%align == 0
}

// Heap allocates from the Go heap. It over-allocates by one page and
// slices the aligned region out of the backing array.
type Heap struct{}

func (Heap) Alloc(size int) ([]byte, error) {
	size = RoundUp(size)
	backing := make([]byte, size+PageSize)
	off := 0
	if rem := uintptr(unsafe.Pointer(&backing[0])) % PageSize; rem != 0 {
		off = PageSize - int(rem)
	}
	return backing[off : off+size : off+size], nil
}

// Free is a no-op; the garbage collector reclaims the backing array.
func (Heap) Free([]byte) error {
	return nil
}
