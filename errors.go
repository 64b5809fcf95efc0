package flatipc

import (
	"errors"
	"strings"
)

var (
	// ErrUnsupportedFieldType is returned when a field of a candidate type
	// has a shape that cannot be transmitted byte-for-byte.
	ErrUnsupportedFieldType = errors.New("flatipc: unsupported field type")

	// ErrMissingLayoutDirective is returned when a candidate type does not
	// declare repr=C.
	ErrMissingLayoutDirective = errors.New("flatipc: missing repr=C layout directive")

	ErrBufferTooSmall     = errors.New("flatipc: buffer smaller than padded size")
	ErrSignatureMismatch  = errors.New("flatipc: signature mismatch")
	ErrMisaligned         = errors.New("flatipc: buffer misaligned for type")
	ErrEnvelopeClosed     = errors.New("flatipc: envelope consumed or dropped")
	ErrEnvelopeBusy       = errors.New("flatipc: envelope is lent")
	ErrSignatureCollision = errors.New("flatipc: signature already registered to another type")
)

// Shape classifies why a field type was rejected.
type Shape int

const (
	ShapeNone Shape = iota
	ShapePointer
	ShapeUnsafePointer
	ShapeInterface
	ShapeFunc
	ShapeChan
	ShapeVariable // slices, maps, strings
	ShapeInferred // [...]T
	ShapeBlank    // _
	ShapeOpaque
)

var shapeNames = [...]string{
	ShapeNone:          "none",
	ShapePointer:       "pointer",
	ShapeUnsafePointer: "raw pointer",
	ShapeInterface:     "interface object",
	ShapeFunc:          "function pointer",
	ShapeChan:          "channel",
	ShapeVariable:      "variable-length container",
	ShapeInferred:      "inferred type",
	ShapeBlank:         "blank type",
	ShapeOpaque:        "opaque type",
}

func (s Shape) String() string {
	if int(s) >= 0 && int(s) < len(shapeNames) {
		return shapeNames[s]
	}
	return "unknown"
}

// FieldError reports the first field of Type that failed certification.
type FieldError struct {
	Err    error
	Type   string
	Field  string // dotted path, empty for type-level failures
	GoType string
	Shape  Shape
}

func (e *FieldError) Error() string {
	var b strings.Builder
	b.WriteString(e.Err.Error())
	b.WriteString(": ")
	b.WriteString(e.Type)
	if e.Field != "" {
		b.WriteByte('.')
		b.WriteString(e.Field)
	}
	if e.GoType != "" {
		b.WriteString(" has type ")
		b.WriteString(e.GoType)
	}
	if e.Shape != ShapeNone {
		b.WriteString(" (")
		b.WriteString(e.Shape.String())
		b.WriteByte(')')
	}
	return b.String()
}

func (e *FieldError) Unwrap() error {
	return e.Err
}
