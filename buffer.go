package flatipc

import "fmt"

// ViewBuffer reinterprets data as a *T without copying. It fails with
// ErrBufferTooSmall if data is shorter than PaddedSize[T], with
// ErrSignatureMismatch if claimed is not T's signature, and with
// ErrMisaligned if data is not aligned for T.
func ViewBuffer[T Message](data []byte, claimed uint32) (*T, error) {
	if need := PaddedSize[T](); len(data) < need {
		return nil, fmt.Errorf("%w: have %d bytes, need %d", ErrBufferTooSmall, len(data), need)
	}
	var zero T
	if want := zero.Signature(); claimed != want {
		return nil, fmt.Errorf("%w: claimed %#08x, want %#08x", ErrSignatureMismatch, claimed, want)
	}
	if err := certifyOf[T](); err != nil {
		return nil, err
	}
	p := viewOf[T](data)
	if p == nil {
		return nil, ErrMisaligned
	}
	return p, nil
}

// FromBuffer is ViewBuffer with the failure cause collapsed: it returns a
// view of data only if the buffer is large enough and the signature
// matches, and (nil, false) otherwise. It never panics.
func FromBuffer[T Message](data []byte, claimed uint32) (*T, bool) {
	p, err := ViewBuffer[T](data, claimed)
	if err != nil {
		return nil, false
	}
	return p, true
}

// FromBufferUnchecked reinterprets data as a *T with no size, signature or
// alignment checks. The caller must already have verified all three, as a
// trusted dispatch path does after FromBuffer.
func FromBufferUnchecked[T Message](data []byte) *T {
	return castOf[T](data)
}
