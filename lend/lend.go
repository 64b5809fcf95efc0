// Package lend is an in-process stand-in for a message-passing kernel's
// memory lending primitive. A lender hands a handler a view of its buffer
// for the duration of one synchronous call; the buffer is never copied and
// ownership never moves.
//
// Usage:
//
//	reg := lend.NewRegistry(lend.DefaultOptions())
//	conn := reg.Register(readHandler, writeHandler)
//	a0, a1, err := reg.LendMut(conn, opcode, signature, 0, buf)
package lend

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/cespare/xxhash/v2"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.uber.org/zap"
)

const instrumentationName = "github.com/alexhholmes/flatipc/lend"

var (
	ErrConnNotFound      = errors.New("lend: connection not found")
	ErrNoHandler         = errors.New("lend: no handler registered for this direction")
	ErrReadOnlyViolation = errors.New("lend: read handler modified a lent buffer")
)

// ConnectionID identifies a registered server.
type ConnectionID uint32

// Opcode selects the operation a handler performs.
type Opcode uint32

// Op is the call record a handler receives.
//
// Valid is filled in by the transport, not the caller: it is the number of
// bytes lent, always len(Buffer) here. A kernel transport reports the valid
// byte count of the lent pages in the same word.
type Op struct {
	Opcode    Opcode
	Signature uint32  // structural signature of the value in Buffer
	Arg       uintptr // caller-defined scalar
	Valid     uintptr // transport-set, never a caller argument
	Buffer    []byte
}

// Handler services one lend and returns a two-word reply. Read handlers
// must not write to op.Buffer; write handlers may, and their writes are
// visible to the lender once the call returns.
type Handler func(op Op) (uintptr, uintptr)

// Transport is the lending surface envelopes are written against. Registry
// implements it; a real kernel transport can replace it.
type Transport interface {
	Lend(conn ConnectionID, opcode Opcode, signature uint32, arg uintptr, buf []byte) (uintptr, uintptr, error)
	LendMut(conn ConnectionID, opcode Opcode, signature uint32, arg uintptr, buf []byte) (uintptr, uintptr, error)
}

// Options configures a Registry.
type Options struct {
	// Logger receives dispatch diagnostics. Defaults to a no-op logger.
	Logger *zap.Logger
	// MeterProvider supplies the meter. Defaults to otel.GetMeterProvider().
	MeterProvider metric.MeterProvider
	// VerifyReadOnly hashes the buffer around every read handler call and
	// fails the lend if the handler wrote to it.
	VerifyReadOnly bool
}

// DefaultOptions returns the default registry configuration.
func DefaultOptions() Options {
	return Options{
		VerifyReadOnly: true,
	}
}

type server struct {
	read  Handler
	write Handler
}

type mode string

const (
	modeLend    mode = "lend"
	modeLendMut mode = "lend_mut"
)

// Registry maps connections to handlers and dispatches lends.
//
// One mutex covers registration and dispatch and is held while a handler
// runs. A handler that lends back into the same Registry deadlocks.
type Registry struct {
	mu      sync.Mutex
	next    ConnectionID
	servers map[ConnectionID]server

	logger         *zap.Logger
	verifyReadOnly bool
	calls          metric.Int64Counter
	duration       metric.Float64Histogram
}

var _ Transport = (*Registry)(nil)

// NewRegistry creates an empty registry.
func NewRegistry(opts Options) *Registry {
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.MeterProvider == nil {
		opts.MeterProvider = otel.GetMeterProvider()
	}

	r := &Registry{
		next:           1,
		servers:        make(map[ConnectionID]server),
		logger:         opts.Logger,
		verifyReadOnly: opts.VerifyReadOnly,
	}

	meter := opts.MeterProvider.Meter(instrumentationName)
	var err error
	r.calls, err = meter.Int64Counter("flatipc.lend.calls",
		metric.WithUnit("{call}"),
		metric.WithDescription("Number of lend dispatches"),
	)
	if err != nil {
		r.logger.Warn("lend counter unavailable", zap.Error(err))
	}
	r.duration, err = meter.Float64Histogram("flatipc.lend.duration",
		metric.WithUnit("s"),
		metric.WithDescription("Time spent inside lend handlers"),
	)
	if err != nil {
		r.logger.Warn("lend histogram unavailable", zap.Error(err))
	}
	return r
}

// Register adds a server and returns its connection. Either handler may be
// nil, in which case lends in that direction fail with ErrNoHandler.
func (r *Registry) Register(read, write Handler) ConnectionID {
	r.mu.Lock()
	defer r.mu.Unlock()

	id := r.next
	r.next++
	r.servers[id] = server{read: read, write: write}

	r.logger.Debug("registered connection", zap.Uint32("conn", uint32(id)))
	return id
}

// Lend lets the connection's read handler see buf for the duration of the
// call.
func (r *Registry) Lend(conn ConnectionID, opcode Opcode, signature uint32, arg uintptr, buf []byte) (uintptr, uintptr, error) {
	return r.dispatch(modeLend, conn, opcode, signature, arg, buf)
}

// LendMut lets the connection's write handler modify buf in place.
func (r *Registry) LendMut(conn ConnectionID, opcode Opcode, signature uint32, arg uintptr, buf []byte) (uintptr, uintptr, error) {
	return r.dispatch(modeLendMut, conn, opcode, signature, arg, buf)
}

func (r *Registry) dispatch(m mode, conn ConnectionID, opcode Opcode, signature uint32, arg uintptr, buf []byte) (a0, a1 uintptr, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	start := time.Now()
	defer func() {
		r.record(m, time.Since(start), err)
	}()

	srv, ok := r.servers[conn]
	if !ok {
		return 0, 0, fmt.Errorf("%w: %d", ErrConnNotFound, conn)
	}
	h := srv.read
	if m == modeLendMut {
		h = srv.write
	}
	if h == nil {
		return 0, 0, fmt.Errorf("%w: %s on connection %d", ErrNoHandler, m, conn)
	}

	op := Op{
		Opcode:    opcode,
		Signature: signature,
		Arg:       arg,
		Valid:     uintptr(len(buf)),
		Buffer:    buf,
	}

	if m == modeLend && r.verifyReadOnly {
		before := xxhash.Sum64(buf)
		a0, a1 = h(op)
		if xxhash.Sum64(buf) != before {
			r.logger.Error("read handler wrote to lent buffer",
				zap.Uint32("conn", uint32(conn)),
				zap.Uint32("opcode", uint32(opcode)))
			return a0, a1, fmt.Errorf("%w: connection %d opcode %d", ErrReadOnlyViolation, conn, opcode)
		}
		return a0, a1, nil
	}

	a0, a1 = h(op)
	return a0, a1, nil
}

func (r *Registry) record(m mode, elapsed time.Duration, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
		r.logger.Debug("lend failed", zap.String("mode", string(m)), zap.Error(err))
	}
	attrs := metric.WithAttributes(
		attribute.String("mode", string(m)),
		attribute.String("outcome", outcome),
	)
	ctx := context.Background()
	if r.calls != nil {
		r.calls.Add(ctx, 1, attrs)
	}
	if r.duration != nil {
		r.duration.Record(ctx, elapsed.Seconds(), attrs)
	}
}
