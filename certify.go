package flatipc

import (
	"reflect"
	"sync"
)

var certified sync.Map // reflect.Type -> error (nil when flat)

// CertifyType reports whether t is flat: no pointers, no variable-length
// storage, and a fixed size. It is the runtime counterpart of the code
// generator's certifier and stops at the first offending field.
func CertifyType(t reflect.Type) error {
	if t == nil {
		return &FieldError{Err: ErrUnsupportedFieldType, Type: "<nil>", Shape: ShapeInterface}
	}
	if v, ok := certified.Load(t); ok {
		if v == nil {
			return nil
		}
		return v.(error)
	}
	err := certifyKind(t.String(), "", t)
	if err != nil {
		certified.Store(t, err)
		return err
	}
	certified.Store(t, nil)
	return nil
}

func certifyOf[T any]() error {
	return CertifyType(reflect.TypeFor[T]())
}

func certifyKind(root, path string, t reflect.Type) error {
	switch t.Kind() {
	case reflect.Bool,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr,
		reflect.Float32, reflect.Float64, reflect.Complex64, reflect.Complex128:
		return nil
	case reflect.Array:
		return certifyKind(root, path, t.Elem())
	case reflect.Struct:
		for i := 0; i < t.NumField(); i++ {
			f := t.Field(i)
			if err := certifyKind(root, joinPath(path, f.Name), f.Type); err != nil {
				return err
			}
		}
		return nil
	}
	return &FieldError{
		Err:    ErrUnsupportedFieldType,
		Type:   root,
		Field:  path,
		GoType: t.String(),
		Shape:  shapeOfKind(t.Kind()),
	}
}

func shapeOfKind(k reflect.Kind) Shape {
	switch k {
	case reflect.Pointer:
		return ShapePointer
	case reflect.UnsafePointer:
		return ShapeUnsafePointer
	case reflect.Interface:
		return ShapeInterface
	case reflect.Func:
		return ShapeFunc
	case reflect.Chan:
		return ShapeChan
	case reflect.Slice, reflect.Map, reflect.String:
		return ShapeVariable
	default:
		return ShapeOpaque
	}
}

func joinPath(path, name string) string {
	if path == "" {
		return name
	}
	return path + "." + name
}
