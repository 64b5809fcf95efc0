package analyzer

import (
	"errors"
	"testing"

	"github.com/alexhholmes/flatipc"
	"github.com/alexhholmes/flatipc/internal/parser"
)

// certifySource parses code as the body of package test and certifies the
// declaration called name against a registry of the whole file.
func certifySource(t *testing.T, code, name string) (*Certificate, error) {
	t.Helper()
	f, err := parser.ParseSource("test.go", "package test\n\n"+code)
	if err != nil {
		t.Fatalf("ParseSource() error: %v", err)
	}
	reg := NewTypeRegistry()
	reg.AddFile(f)
	decl, ok := reg.Lookup(name)
	if !ok {
		t.Fatalf("%s not found", name)
	}
	return Certify(decl, reg)
}

func TestCertify_Record(t *testing.T) {
	cert, err := certifySource(t, `
// @flatipc repr=C
type Point struct {
	X, Y int16
	Ok   bool
}`, "Point")
	if err != nil {
		t.Fatalf("Certify() error: %v", err)
	}

	want := []Obligation{
		{Field: "X", Type: "int16", Kind: Primitive},
		{Field: "Y", Type: "int16", Kind: Primitive},
		{Field: "Ok", Type: "bool", Kind: Primitive},
	}
	if len(cert.Obligations) != len(want) {
		t.Fatalf("got %d obligations, want %d: %+v", len(cert.Obligations), len(want), cert.Obligations)
	}
	for i := range want {
		if cert.Obligations[i] != want[i] {
			t.Errorf("obligations[%d] = %+v, want %+v", i, cert.Obligations[i], want[i])
		}
	}

	if cert.Canonical != "record Point{X int16;Y int16;Ok bool;}" {
		t.Errorf("Canonical = %q", cert.Canonical)
	}
	if cert.Signature != flatipc.SignatureOf(cert.Canonical) {
		t.Errorf("Signature = %#08x, want SignatureOf(Canonical)", cert.Signature)
	}
	if !cert.LayoutKnown || cert.Layout.Size != 6 {
		t.Errorf("Layout = %+v (known=%v), want size 6", cert.Layout, cert.LayoutKnown)
	}
	if cert.PaddedSize() != flatipc.PageSize {
		t.Errorf("PaddedSize() = %d, want %d", cert.PaddedSize(), flatipc.PageSize)
	}
}

func TestCertify_Nested(t *testing.T) {
	cert, err := certifySource(t, `
type Gid [4]uint32

// @flatipc repr=C
type Point struct {
	X, Y int16
}

// @flatipc repr=C
type Shape struct {
	Origin Point
	Owner  Gid
	Grid   [2][2]float32
	Box    struct {
		Min, Max Point
	}
	Ext    ext.Header
	Clip   flatipc.Option[Point]
	Either flatipc.Result[uint32, [2]uint8]
}`, "Shape")
	if err != nil {
		t.Fatalf("Certify() error: %v", err)
	}

	want := []Obligation{
		{Field: "Origin", Type: "Point", Kind: Flat},
		{Field: "Owner", Type: "uint32", Kind: Primitive},
		{Field: "Grid", Type: "float32", Kind: Primitive},
		{Field: "Box.Min", Type: "Point", Kind: Flat},
		{Field: "Box.Max", Type: "Point", Kind: Flat},
		{Field: "Ext", Type: "ext.Header", Kind: Flat},
		{Field: "Clip", Type: "flatipc.Option[Point]", Kind: Flat},
		{Field: "Clip", Type: "Point", Kind: Flat},
		{Field: "Either", Type: "flatipc.Result[uint32, [2]uint8]", Kind: Flat},
		{Field: "Either", Type: "uint32", Kind: Primitive},
		{Field: "Either", Type: "uint8", Kind: Primitive},
	}
	if len(cert.Obligations) != len(want) {
		t.Fatalf("got %d obligations, want %d: %+v", len(cert.Obligations), len(want), cert.Obligations)
	}
	for i := range want {
		if cert.Obligations[i] != want[i] {
			t.Errorf("obligations[%d] = %+v, want %+v", i, cert.Obligations[i], want[i])
		}
	}

	// ext.Header is outside the registry
	if cert.LayoutKnown {
		t.Errorf("LayoutKnown = true with a foreign field type")
	}
}

func TestCertify_Rejects(t *testing.T) {
	tests := []struct {
		name      string
		field     string
		wantField string
		wantShape flatipc.Shape
	}{
		{"pointer", "P *uint32", "P", flatipc.ShapePointer},
		{"unsafe pointer", "P unsafe.Pointer", "P", flatipc.ShapeUnsafePointer},
		{"interface", "I interface{ M() }", "I", flatipc.ShapeInterface},
		{"any", "I any", "I", flatipc.ShapeInterface},
		{"error", "E error", "E", flatipc.ShapeInterface},
		{"func", "F func()", "F", flatipc.ShapeFunc},
		{"chan", "C chan int", "C", flatipc.ShapeChan},
		{"slice", "S []byte", "S", flatipc.ShapeVariable},
		{"map", "M map[int]int", "M", flatipc.ShapeVariable},
		{"string", "S string", "S", flatipc.ShapeVariable},
		{"inferred array", "A [2][...]int", "A", flatipc.ShapeInferred},
		{"blank", "B _", "B", flatipc.ShapeBlank},
		{"array of pointers", "A [4]*int", "A", flatipc.ShapePointer},
		{"nested struct", "N struct{ Inner struct{ P *int } }", "N.Inner.P", flatipc.ShapePointer},
		{"generic argument", "O flatipc.Option[*int]", "O", flatipc.ShapePointer},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code := "// @flatipc repr=C\ntype Bad struct {\n\tOk uint8\n\t" + tt.field + "\n}"
			_, err := certifySource(t, code, "Bad")
			if err == nil {
				t.Fatal("Certify() expected error, got nil")
			}
			if !errors.Is(err, flatipc.ErrUnsupportedFieldType) {
				t.Errorf("error %v is not ErrUnsupportedFieldType", err)
			}
			var fe *flatipc.FieldError
			if !errors.As(err, &fe) {
				t.Fatalf("error %T is not *flatipc.FieldError", err)
			}
			if fe.Type != "Bad" || fe.Field != tt.wantField || fe.Shape != tt.wantShape {
				t.Errorf("FieldError = {Type:%s Field:%s Shape:%v}, want {Bad %s %v}",
					fe.Type, fe.Field, fe.Shape, tt.wantField, tt.wantShape)
			}
		})
	}
}

func TestCertify_FirstViolation(t *testing.T) {
	_, err := certifySource(t, `
// @flatipc repr=C
type Bad struct {
	A uint8
	B *uint8
	C string
}`, "Bad")
	var fe *flatipc.FieldError
	if !errors.As(err, &fe) {
		t.Fatalf("error %v is not *flatipc.FieldError", err)
	}
	if fe.Field != "B" {
		t.Errorf("reported field %s, want B", fe.Field)
	}
	if got, want := err.Error(), "flatipc: unsupported field type: Bad.B has type *uint8 (pointer)"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}

func TestCertify_MissingRepr(t *testing.T) {
	// Fields are never inspected without the directive
	_, err := certifySource(t, `
// @flatipc kind=union
type Raw struct {
	P *uint32
}`, "Raw")
	if !errors.Is(err, flatipc.ErrMissingLayoutDirective) {
		t.Fatalf("error = %v, want ErrMissingLayoutDirective", err)
	}
	if errors.Is(err, flatipc.ErrUnsupportedFieldType) {
		t.Error("fields were inspected before the directive check")
	}
}

func TestCertify_Variant(t *testing.T) {
	// Every case is certified, whichever one is active
	_, err := certifySource(t, "// @flatipc repr=C kind=variant\ntype Op struct {\n\tTag uint8\n\tNop struct{} `flatipc:\"case=0\"`\n\tBad []byte `flatipc:\"case=1\"`\n}", "Op")
	var fe *flatipc.FieldError
	if !errors.As(err, &fe) || fe.Field != "Bad" {
		t.Fatalf("error = %v, want FieldError on Bad", err)
	}

	cert, err := certifySource(t, "// @flatipc repr=C kind=variant\ntype Op struct {\n\tTag uint8\n\tNop struct{} `flatipc:\"case=0\"`\n\tMove [2]int32 `flatipc:\"case=1\"`\n}", "Op")
	if err != nil {
		t.Fatalf("Certify() error: %v", err)
	}
	if cert.Canonical != "variant Op{Tag uint8;Nop struct{}@0;Move [2]int32@1;}" {
		t.Errorf("Canonical = %q", cert.Canonical)
	}

	_, err = certifySource(t, "// @flatipc repr=C kind=variant\ntype Op struct {\n\tTag uint8\n}", "Op")
	if err == nil {
		t.Error("variant without cases should fail")
	}
}

func TestCertify_Union(t *testing.T) {
	_, err := certifySource(t, `
// @flatipc repr=C kind=union
type Raw struct {
	Word uint32
	Ptr  *uint32
}`, "Raw")
	var fe *flatipc.FieldError
	if !errors.As(err, &fe) || fe.Field != "Ptr" || fe.Shape != flatipc.ShapePointer {
		t.Fatalf("error = %v, want pointer FieldError on Ptr", err)
	}

	cert, err := certifySource(t, `
// @flatipc repr=C kind=union
type Raw struct {
	Word  uint32
	Bytes [4]byte
}`, "Raw")
	if err != nil {
		t.Fatalf("Certify() error: %v", err)
	}
	if len(cert.Obligations) != 2 {
		t.Errorf("got %d obligations, want 2", len(cert.Obligations))
	}
}

func TestCertify_Newtype(t *testing.T) {
	cert, err := certifySource(t, "// @flatipc repr=C\ntype Gid [4]uint32", "Gid")
	if err != nil {
		t.Fatalf("Certify() error: %v", err)
	}
	if len(cert.Obligations) != 1 || cert.Obligations[0] != (Obligation{Type: "uint32", Kind: Primitive}) {
		t.Errorf("Obligations = %+v", cert.Obligations)
	}

	_, err = certifySource(t, "// @flatipc repr=C\ntype Name string", "Name")
	var fe *flatipc.FieldError
	if !errors.As(err, &fe) || fe.Shape != flatipc.ShapeVariable {
		t.Errorf("error = %v, want variable-length FieldError", err)
	}
	if got, want := err.Error(), "flatipc: unsupported field type: Name has type string (variable-length container)"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}

func TestCertify_LocalAliasChain(t *testing.T) {
	cert, err := certifySource(t, `
type Word uint32
type Words [2]Word
type Bad [2]*Word

// @flatipc repr=C
type Msg struct {
	W Words
}

// @flatipc repr=C
type Broken struct {
	B Bad
}`, "Msg")
	if err != nil {
		t.Fatalf("Certify() error: %v", err)
	}
	if len(cert.Obligations) != 1 || cert.Obligations[0].Type != "uint32" {
		t.Errorf("Obligations = %+v, want one uint32", cert.Obligations)
	}
	if cert.Layout.Size != 8 {
		t.Errorf("Layout.Size = %d, want 8", cert.Layout.Size)
	}

	_, err = certifySource(t, `
type Word uint32
type Bad [2]*Word

// @flatipc repr=C
type Broken struct {
	B Bad
}`, "Broken")
	if !errors.Is(err, flatipc.ErrUnsupportedFieldType) {
		t.Errorf("error = %v, want ErrUnsupportedFieldType", err)
	}
}

func TestCertify_Nil(t *testing.T) {
	if _, err := Certify(nil, nil); err == nil {
		t.Error("Certify(nil) expected error")
	}
}
