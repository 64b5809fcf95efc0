package flatipc

import (
	"errors"
	"fmt"
	"reflect"
	"runtime"

	"go.uber.org/zap"

	"github.com/alexhholmes/flatipc/internal/pagemem"
	"github.com/alexhholmes/flatipc/lend"
)

// State is the lifecycle position of an Envelope.
type State uint8

const (
	StateOwned    State = iota // holds one live T
	StateLent                  // buffer lent read-only
	StateLentMut               // buffer lent mutably
	StateConsumed              // converted back with IntoOriginal
	StateDropped               // destructor ran
)

func (s State) String() string {
	switch s {
	case StateOwned:
		return "owned"
	case StateLent:
		return "lent"
	case StateLentMut:
		return "lent-mut"
	case StateConsumed:
		return "consumed"
	case StateDropped:
		return "dropped"
	default:
		return "unknown"
	}
}

// PaddedSize is size_of(T) rounded up to a whole number of pages.
func PaddedSize[T any]() int {
	return pagemem.RoundUp(sizeOf[T]())
}

// Envelope owns a page-aligned buffer holding exactly one T at offset 0.
// Bytes past size_of(T) are zero padding.
//
// An Envelope is single-owner and not safe for concurrent use. It must be
// released with Drop, Close or IntoOriginal: views from AsOriginal and Bytes
// do not keep it reachable, so a collected envelope never frees its buffer.
// Heap buffers are reclaimed by the garbage collector once the last view is
// gone; buffers from SharedAllocator or a pooling allocator leak.
type Envelope[T Message] struct {
	buf         []byte
	alloc       Allocator
	state       State
	dropPending bool
	cleanup     runtime.Cleanup
}

// leak describes an envelope collected without being released.
type leak struct {
	typ   string
	alloc string
	size  int
}

func (l leak) report() {
	Logger().Warn("envelope collected without Drop or IntoOriginal",
		zap.String("type", l.typ),
		zap.String("allocator", l.alloc),
		zap.Int("size", l.size))
}

// IntoEnvelope moves *v into a new envelope from the default allocator.
// On success *v is reset to its zero value without running its destructor;
// the envelope now owns the value.
func IntoEnvelope[T Message](v *T) (*Envelope[T], error) {
	return NewEnvelope(v, DefaultAllocator())
}

// NewEnvelope is IntoEnvelope with an explicit allocator.
func NewEnvelope[T Message](v *T, alloc Allocator) (*Envelope[T], error) {
	if v == nil {
		return nil, errors.New("flatipc: nil value")
	}
	if err := certifyOf[T](); err != nil {
		return nil, err
	}
	if alloc == nil {
		alloc = DefaultAllocator()
	}

	buf, err := alloc.Alloc(PaddedSize[T]())
	if err != nil {
		return nil, fmt.Errorf("allocate envelope: %w", err)
	}
	if !pagemem.Aligned(buf, PageSize) || len(buf) != PaddedSize[T]() {
		_ = alloc.Free(buf)
		return nil, fmt.Errorf("%w: allocator returned %d bytes", ErrMisaligned, len(buf))
	}

	n := copy(buf, bytesOf(v))
	clear(buf[n:])
	var zero T
	*v = zero

	e := &Envelope[T]{buf: buf, alloc: alloc}
	e.cleanup = runtime.AddCleanup(e, leak.report, leak{
		typ:   reflect.TypeFor[T]().String(),
		alloc: fmt.Sprintf("%T", alloc),
		size:  len(buf),
	})
	return e, nil
}

// Signature returns T's structural signature.
func (e *Envelope[T]) Signature() uint32 {
	var zero T
	return zero.Signature()
}

// Size returns the padded buffer length.
func (e *Envelope[T]) Size() int {
	return PaddedSize[T]()
}

// State returns the current lifecycle state.
func (e *Envelope[T]) State() State {
	return e.state
}

// Bytes returns the whole padded buffer, for registration with an external
// memory-sharing primitive. It is nil once the envelope is consumed or
// dropped.
func (e *Envelope[T]) Bytes() []byte {
	return e.buf
}

// AsOriginal returns a view of the embedded value without copying. Writes
// through the pointer change the envelope. The pointer must not be used
// after IntoOriginal or Drop; it is nil if either already happened.
func (e *Envelope[T]) AsOriginal() *T {
	if e.buf == nil {
		return nil
	}
	return viewOf[T](e.buf)
}

// IntoOriginal copies the value out and releases the buffer. T's
// destructor is not run; the returned value owns it now.
func (e *Envelope[T]) IntoOriginal() (T, error) {
	var v T
	if err := e.checkOwned(); err != nil {
		return v, err
	}
	copy(bytesOf(&v), e.buf)
	e.release(StateConsumed)
	return v, nil
}

// Drop runs T's destructor on the embedded value, if T implements Dropper,
// and releases the buffer. It does nothing if the envelope was already
// consumed or dropped. A Drop during a lend takes effect when the lend
// returns.
func (e *Envelope[T]) Drop() {
	switch e.state {
	case StateOwned:
	case StateLent, StateLentMut:
		Logger().Debug("drop deferred until lend returns", zap.Stringer("state", e.state))
		e.dropPending = true
		return
	default:
		return
	}
	if d, ok := any(viewOf[T](e.buf)).(Dropper); ok {
		d.Drop()
	}
	e.release(StateDropped)
}

// Close drops the envelope. It implements io.Closer.
func (e *Envelope[T]) Close() error {
	if e.state == StateLent || e.state == StateLentMut {
		return ErrEnvelopeBusy
	}
	e.Drop()
	return nil
}

// Lend grants the connection's read handler a view of the buffer for one
// synchronous call and returns the handler's reply.
func (e *Envelope[T]) Lend(t lend.Transport, conn lend.ConnectionID, opcode lend.Opcode, arg uintptr) (uintptr, uintptr, error) {
	if err := e.checkOwned(); err != nil {
		return 0, 0, err
	}
	e.state = StateLent
	defer e.endLend()
	return t.Lend(conn, opcode, e.Signature(), arg, e.buf)
}

// LendMut grants the connection's write handler mutable access to the
// buffer. Changes are visible through AsOriginal once it returns.
func (e *Envelope[T]) LendMut(t lend.Transport, conn lend.ConnectionID, opcode lend.Opcode, arg uintptr) (uintptr, uintptr, error) {
	if err := e.checkOwned(); err != nil {
		return 0, 0, err
	}
	e.state = StateLentMut
	defer e.endLend()
	return t.LendMut(conn, opcode, e.Signature(), arg, e.buf)
}

func (e *Envelope[T]) endLend() {
	e.state = StateOwned
	if e.dropPending {
		e.dropPending = false
		e.Drop()
	}
}

func (e *Envelope[T]) checkOwned() error {
	switch e.state {
	case StateOwned:
		return nil
	case StateLent, StateLentMut:
		return ErrEnvelopeBusy
	default:
		return fmt.Errorf("%w: %s", ErrEnvelopeClosed, e.state)
	}
}

func (e *Envelope[T]) release(s State) {
	e.cleanup.Stop()
	if err := e.alloc.Free(e.buf); err != nil {
		Logger().Warn("free envelope", zap.Error(err))
	}
	e.buf = nil
	e.state = s
}
