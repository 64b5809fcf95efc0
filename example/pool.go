package example

import (
	"sync"

	"github.com/alexhholmes/flatipc"
)

// PagePool is a custom allocator that recycles single-page envelope
// buffers. Multi-page requests go straight to the heap.
type PagePool struct {
	mu   sync.Mutex
	free [][]byte
	heap flatipc.Allocator
}

var _ flatipc.Allocator = (*PagePool)(nil)

func NewPagePool() *PagePool {
	return &PagePool{heap: flatipc.HeapAllocator()}
}

func (p *PagePool) Alloc(size int) ([]byte, error) {
	if flatipc.RoundUp(size) != flatipc.PageSize {
		return p.heap.Alloc(size)
	}

	p.mu.Lock()
	n := len(p.free)
	if n == 0 {
		p.mu.Unlock()
		return p.heap.Alloc(flatipc.PageSize)
	}
	b := p.free[n-1]
	p.free = p.free[:n-1]
	p.mu.Unlock()

	// Envelopes rely on zeroed padding
	clear(b)
	return b, nil
}

func (p *PagePool) Free(b []byte) error {
	if len(b) != flatipc.PageSize {
		return p.heap.Free(b)
	}
	p.mu.Lock()
	p.free = append(p.free, b)
	p.mu.Unlock()
	return nil
}

// Idle returns the number of pooled pages.
func (p *PagePool) Idle() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.free)
}
