package flatipc

import (
	"sync"

	"github.com/alexhholmes/flatipc/internal/pagemem"
)

// PageSize is the envelope alignment and size granularity.
const PageSize = pagemem.PageSize

// Allocator supplies zeroed, page-aligned envelope buffers.
type Allocator = pagemem.Allocator

var (
	allocMu      sync.RWMutex
	defaultAlloc Allocator = pagemem.Heap{}
)

// HeapAllocator returns an allocator backed by the Go heap.
func HeapAllocator() Allocator {
	return pagemem.Heap{}
}

// SharedAllocator returns an allocator backed by anonymous shared
// mappings, suitable for registration with a memory-sharing primitive.
// On platforms without mmap it behaves like HeapAllocator. Envelopes built
// on it must be released explicitly; a collected one leaks its mapping.
func SharedAllocator() Allocator {
	return pagemem.Shared{}
}

// DefaultAllocator returns the allocator used by IntoEnvelope.
func DefaultAllocator() Allocator {
	allocMu.RLock()
	defer allocMu.RUnlock()
	return defaultAlloc
}

// SetDefaultAllocator replaces the allocator used by IntoEnvelope. A nil
// allocator restores the heap allocator.
func SetDefaultAllocator(a Allocator) {
	if a == nil {
		a = pagemem.Heap{}
	}
	allocMu.Lock()
	defaultAlloc = a
	allocMu.Unlock()
}

// RoundUp returns the envelope size for a value of n bytes: n rounded up
// to a whole number of pages, and at least one page.
func RoundUp(n int) int {
	return pagemem.RoundUp(n)
}
