package flatipc_test

import (
	"errors"
	"reflect"
	"testing"
	"unsafe"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexhholmes/flatipc"
)

type nested struct {
	A [2]struct {
		B *int
	}
}

func TestCertifyType(t *testing.T) {
	tests := []struct {
		name      string
		typ       reflect.Type
		wantField string
		wantShape flatipc.Shape
	}{
		{"primitive", reflect.TypeFor[uint64](), "", flatipc.ShapeNone},
		{"array", reflect.TypeFor[[4][2]float32](), "", flatipc.ShapeNone},
		{"struct", reflect.TypeFor[point](), "", flatipc.ShapeNone},
		{"generic containers", reflect.TypeFor[view](), "", flatipc.ShapeNone},
		{"complex", reflect.TypeFor[struct{ C complex128 }](), "", flatipc.ShapeNone},
		{"pointer", reflect.TypeFor[leaky](), "P", flatipc.ShapePointer},
		{"unsafe pointer", reflect.TypeFor[struct{ U unsafe.Pointer }](), "U", flatipc.ShapeUnsafePointer},
		{"interface", reflect.TypeFor[struct{ I any }](), "I", flatipc.ShapeInterface},
		{"func", reflect.TypeFor[struct{ F func() }](), "F", flatipc.ShapeFunc},
		{"chan", reflect.TypeFor[struct{ C chan int }](), "C", flatipc.ShapeChan},
		{"slice", reflect.TypeFor[struct{ S []byte }](), "S", flatipc.ShapeVariable},
		{"map", reflect.TypeFor[struct{ M map[int]int }](), "M", flatipc.ShapeVariable},
		{"string", reflect.TypeFor[struct{ S string }](), "S", flatipc.ShapeVariable},
		{"nested", reflect.TypeFor[nested](), "A.B", flatipc.ShapePointer},
		{"top-level string", reflect.TypeFor[string](), "", flatipc.ShapeVariable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := flatipc.CertifyType(tt.typ)
			if tt.wantShape == flatipc.ShapeNone {
				assert.NoError(t, err)
				return
			}

			require.ErrorIs(t, err, flatipc.ErrUnsupportedFieldType)
			var fe *flatipc.FieldError
			require.True(t, errors.As(err, &fe))
			assert.Equal(t, tt.wantField, fe.Field)
			assert.Equal(t, tt.wantShape, fe.Shape)
		})
	}
}

func TestCertifyTypeCached(t *testing.T) {
	typ := reflect.TypeFor[leaky]()
	first := flatipc.CertifyType(typ)
	second := flatipc.CertifyType(typ)
	assert.Same(t, first, second)
}

func TestCertifyTypeNil(t *testing.T) {
	assert.ErrorIs(t, flatipc.CertifyType(nil), flatipc.ErrUnsupportedFieldType)
}

func TestFieldErrorMessage(t *testing.T) {
	err := flatipc.CertifyType(reflect.TypeFor[leaky]())
	assert.EqualError(t, err, "flatipc: unsupported field type: flatipc_test.leaky.P has type *int (pointer)")

	missing := &flatipc.FieldError{Err: flatipc.ErrMissingLayoutDirective, Type: "Point"}
	assert.EqualError(t, missing, "flatipc: missing repr=C layout directive: Point")
	assert.ErrorIs(t, missing, flatipc.ErrMissingLayoutDirective)
}

func TestShapeString(t *testing.T) {
	assert.Equal(t, "pointer", flatipc.ShapePointer.String())
	assert.Equal(t, "variable-length container", flatipc.ShapeVariable.String())
	assert.Equal(t, "unknown", flatipc.Shape(-1).String())
}
