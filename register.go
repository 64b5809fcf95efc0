package flatipc

import (
	"fmt"
	"reflect"
	"sync"

	"go.uber.org/zap"
)

var (
	typesMu sync.RWMutex
	bySig   = make(map[uint32][]reflect.Type)
)

// Register runs the runtime self-test on T and records it under its
// signature so that handlers can map a signature back to a type.
// Registering the same type twice is a no-op.
//
// Identical declarations in different packages share a signature and may
// both register. Two types from one package may not.
func Register[T Message]() error {
	var zero T
	t := reflect.TypeFor[T]()
	if err := CertifyType(t); err != nil {
		return err
	}
	sig := zero.Signature()

	typesMu.Lock()
	defer typesMu.Unlock()
	prev := bySig[sig]
	for _, p := range prev {
		if p == t {
			return nil
		}
		if p.PkgPath() == t.PkgPath() {
			return fmt.Errorf("%w: %s and %s share %#08x", ErrSignatureCollision, p, t, sig)
		}
	}
	bySig[sig] = append(prev, t)

	if len(prev) > 0 {
		Logger().Info("signature shared across packages",
			zap.String("type", t.String()),
			zap.Stringer("with", prev[0]),
			zap.Uint32("signature", sig))
	}
	Logger().Debug("registered flat type",
		zap.String("type", t.String()),
		zap.Uint32("signature", sig),
		zap.Int("padded_size", PaddedSize[T]()))
	return nil
}

// MustRegister is Register for package initialisation. It panics if T fails
// the self-test, turning a bad hand-written IPCSafe into a startup failure.
func MustRegister[T Message]() {
	if err := Register[T](); err != nil {
		panic(err)
	}
}

// TypeForSignature returns the type registered under sig. It reports false
// if no type, or more than one, carries sig; see TypesForSignature.
func TypeForSignature(sig uint32) (reflect.Type, bool) {
	typesMu.RLock()
	defer typesMu.RUnlock()
	ts := bySig[sig]
	if len(ts) != 1 {
		return nil, false
	}
	return ts[0], true
}

// TypesForSignature returns every type registered under sig, in
// registration order.
func TypesForSignature(sig uint32) []reflect.Type {
	typesMu.RLock()
	defer typesMu.RUnlock()
	return append([]reflect.Type(nil), bySig[sig]...)
}
