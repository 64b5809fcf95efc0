//go:build unix

package pagemem

import (
	"fmt"

	"golang.org/x/sys/unix"
)

// Shared maps anonymous MAP_SHARED memory. Regions are page-aligned by the
// kernel and live outside the Go heap, which is why only flat values may
// be stored in them.
type Shared struct{}

func (Shared) Alloc(size int) ([]byte, error) {
	size = RoundUp(size)
	b, err := unix.Mmap(-1, 0, size, unix.PROT_READ|unix.PROT_WRITE, unix.MAP_ANON|unix.MAP_SHARED)
	if err != nil {
		return nil, fmt.Errorf("mmap %d bytes: %w", size, err)
	}
	return b, nil
}

func (Shared) Free(b []byte) error {
	if len(b) == 0 {
		return nil
	}
	if err := unix.Munmap(b); err != nil {
		return fmt.Errorf("munmap: %w", err)
	}
	return nil
}
