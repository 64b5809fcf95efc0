//go:build !unix

package pagemem

// Shared falls back to heap memory where anonymous shared mappings are not
// available.
type Shared struct {
	Heap
}
