package flatipc

// Transmittable is the flat capability: a type whose every byte can be
// handed across a process boundary. Generated code implements it for each
// certified type; bounded buffer types implement it by hand.
type Transmittable interface {
	IPCSafe()
}

// Message is a certified type that can be wrapped in an Envelope.
type Message interface {
	Transmittable
	Signature() uint32
}

// Primitive is the set of fixed-size scalar kinds.
type Primitive interface {
	~bool |
		~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 | ~uintptr |
		~float32 | ~float64 | ~complex64 | ~complex128
}

// Dropper is implemented by types that need to run cleanup when an
// envelope holding them is dropped without being consumed.
type Dropper interface {
	Drop()
}

// ProvePrimitive is a compile-time proof obligation. Generated code
// instantiates it once per primitive leaf field.
func ProvePrimitive[T Primitive]() {}

// ProveFlat is a compile-time proof obligation for named field types. It
// only builds if T carries the flat capability.
func ProveFlat[T Transmittable]() {}

// Option is a flat optional value.
type Option[T any] struct {
	Some  bool
	Value T
}

func (Option[T]) IPCSafe() {}

// Some returns a present Option holding v.
func Some[T any](v T) Option[T] {
	return Option[T]{Some: true, Value: v}
}

// Get returns the value and whether it is present.
func (o Option[T]) Get() (T, bool) {
	return o.Value, o.Some
}

// Result is a flat success-or-failure value. Only one of Value and Err is
// meaningful, selected by Ok.
type Result[T, E any] struct {
	Ok    bool
	Value T
	Err   E
}

func (Result[T, E]) IPCSafe() {}

// Ok returns a successful Result.
func Ok[T, E any](v T) Result[T, E] {
	return Result[T, E]{Ok: true, Value: v}
}

// Fail returns a failed Result.
func Fail[T, E any](e E) Result[T, E] {
	return Result[T, E]{Err: e}
}
