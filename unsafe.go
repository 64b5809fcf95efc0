package flatipc

import (
	"unsafe"

	"github.com/alexhholmes/flatipc/internal/pagemem"
)

// All byte reinterpretation in this package goes through the three helpers
// below. Callers must only use them with types that passed CertifyType.

// bytesOf exposes the memory of *p as a byte slice of length size_of(T).
func bytesOf[T any](p *T) []byte {
	n := unsafe.Sizeof(*p)
	if n == 0 {
		return nil
	}
	return unsafe.Slice((*byte)(unsafe.Pointer(p)), n)
}

// viewOf reinterprets the start of b as a *T. It returns nil if b is too
// short or not aligned for T.
func viewOf[T any](b []byte) *T {
	var zero T
	if len(b) == 0 || uintptr(len(b)) < unsafe.Sizeof(zero) {
		return nil
	}
	if !pagemem.Aligned(b, unsafe.Alignof(zero)) {
		return nil
	}
	return (*T)(unsafe.Pointer(unsafe.SliceData(b)))
}

// castOf is viewOf without the length and alignment checks.
func castOf[T any](b []byte) *T {
	return (*T)(unsafe.Pointer(unsafe.SliceData(b)))
}

func sizeOf[T any]() int {
	var zero T
	return int(unsafe.Sizeof(zero))
}
