// Package analyzer certifies that annotated declarations are flat: every
// field, recursively, is a fixed-size value with no pointers or
// variable-length storage.
//
// Certification is optimistic for types it cannot see. A named type from
// another package, or a generic instance, becomes a proof obligation that
// the generated code hands to the compiler.
package analyzer

import (
	"fmt"
	"go/ast"
	"go/types"

	"github.com/alexhholmes/flatipc"
	"github.com/alexhholmes/flatipc/internal/parser"
	"github.com/alexhholmes/flatipc/internal/signature"
)

// ObligationKind selects the generic proof function for an obligation.
type ObligationKind int

const (
	Primitive ObligationKind = iota // flatipc.ProvePrimitive[T]
	Flat                            // flatipc.ProveFlat[T]
)

func (k ObligationKind) String() string {
	switch k {
	case Primitive:
		return "primitive"
	case Flat:
		return "flat"
	default:
		return "unknown"
	}
}

// Obligation is one leaf type the compiler must accept.
type Obligation struct {
	Field string // dotted path from the declaration, empty for a newtype
	Type  string
	Kind  ObligationKind
}

// Certificate is the result of a successful certification.
type Certificate struct {
	Decl        *parser.TypeDecl
	Canonical   string
	Signature   uint32
	Obligations []Obligation
	Layout      Layout
	LayoutKnown bool // false when a field's type lives outside the registry
}

// PaddedSize is the envelope size for the declaration, or 0 if the layout
// is unknown.
func (c *Certificate) PaddedSize() int {
	if !c.LayoutKnown {
		return 0
	}
	return flatipc.RoundUp(c.Layout.Size)
}

// Certify checks decl and collects its proof obligations. It stops at the
// first offending field and returns a *flatipc.FieldError.
func Certify(decl *parser.TypeDecl, registry *TypeRegistry) (*Certificate, error) {
	if decl == nil {
		return nil, fmt.Errorf("declaration is nil")
	}
	if registry == nil {
		registry = NewTypeRegistry()
	}

	if decl.Anno == nil || decl.Anno.Repr != parser.ReprC {
		return nil, &flatipc.FieldError{Err: flatipc.ErrMissingLayoutDirective, Type: decl.Name}
	}

	if decl.Kind == parser.Variant && !hasCase(decl.Fields) {
		return nil, fmt.Errorf("%s: kind=variant declares no case fields", decl.Name)
	}

	c := &certifier{
		registry:  registry,
		typeName:  decl.Name,
		resolving: make(map[string]bool),
	}
	// Variant cases and union members are certified like record fields
	for _, f := range decl.Fields {
		if err := c.check(f.Name, f.Type); err != nil {
			return nil, err
		}
	}

	cert := &Certificate{
		Decl:        decl,
		Canonical:   signature.Canonical(decl),
		Obligations: c.obligations,
	}
	cert.Signature = flatipc.SignatureOf(cert.Canonical)

	if l, err := registry.DeclLayout(decl); err == nil {
		cert.Layout = l
		cert.LayoutKnown = true
	}
	return cert, nil
}

func hasCase(fields []parser.Field) bool {
	for _, f := range fields {
		if f.Case() >= 0 {
			return true
		}
	}
	return false
}

type certifier struct {
	registry    *TypeRegistry
	typeName    string
	obligations []Obligation
	resolving   map[string]bool // local types being expanded
}

func (c *certifier) check(path string, expr ast.Expr) error {
	switch t := expr.(type) {
	case *ast.Ident:
		return c.checkIdent(path, t)

	case *ast.SelectorExpr:
		if pkg, ok := t.X.(*ast.Ident); ok && pkg.Name == "unsafe" && t.Sel.Name == "Pointer" {
			return c.reject(path, expr, flatipc.ShapeUnsafePointer)
		}
		c.prove(path, expr, Flat)
		return nil

	case *ast.ArrayType:
		if t.Len == nil {
			return c.reject(path, expr, flatipc.ShapeVariable)
		}
		if _, ok := t.Len.(*ast.Ellipsis); ok {
			return c.reject(path, expr, flatipc.ShapeInferred)
		}
		return c.check(path, t.Elt)

	case *ast.StructType:
		for _, f := range t.Fields.List {
			names := f.Names
			if len(names) == 0 {
				names = []*ast.Ident{ast.NewIdent(parser.EmbeddedName(f.Type))}
			}
			for _, name := range names {
				if err := c.check(join(path, name.Name), f.Type); err != nil {
					return err
				}
			}
		}
		return nil

	case *ast.ParenExpr:
		return c.check(path, t.X)

	case *ast.IndexExpr:
		c.prove(path, expr, Flat)
		return c.check(path, t.Index)

	case *ast.IndexListExpr:
		c.prove(path, expr, Flat)
		for _, arg := range t.Indices {
			if err := c.check(path, arg); err != nil {
				return err
			}
		}
		return nil

	case *ast.StarExpr:
		return c.reject(path, expr, flatipc.ShapePointer)
	case *ast.InterfaceType:
		return c.reject(path, expr, flatipc.ShapeInterface)
	case *ast.FuncType:
		return c.reject(path, expr, flatipc.ShapeFunc)
	case *ast.ChanType:
		return c.reject(path, expr, flatipc.ShapeChan)
	case *ast.MapType:
		return c.reject(path, expr, flatipc.ShapeVariable)
	}

	return c.reject(path, expr, flatipc.ShapeOpaque)
}

func (c *certifier) checkIdent(path string, id *ast.Ident) error {
	switch id.Name {
	case "_":
		return c.reject(path, id, flatipc.ShapeBlank)
	case "string":
		return c.reject(path, id, flatipc.ShapeVariable)
	case "any", "error":
		return c.reject(path, id, flatipc.ShapeInterface)
	}

	if IsPrimitive(id.Name) {
		c.prove(path, id, Primitive)
		return nil
	}

	// Annotated types carry the marker themselves
	if _, ok := c.registry.Lookup(id.Name); ok {
		c.prove(path, id, Flat)
		return nil
	}

	if underlying, ok := c.registry.ResolveType(id.Name); ok {
		if c.resolving[id.Name] {
			return c.reject(path, id, flatipc.ShapeOpaque)
		}
		c.resolving[id.Name] = true
		defer delete(c.resolving, id.Name)
		return c.check(path, underlying)
	}

	c.prove(path, id, Flat)
	return nil
}

func (c *certifier) prove(path string, expr ast.Expr, kind ObligationKind) {
	c.obligations = append(c.obligations, Obligation{
		Field: path,
		Type:  types.ExprString(expr),
		Kind:  kind,
	})
}

func (c *certifier) reject(path string, expr ast.Expr, shape flatipc.Shape) error {
	return &flatipc.FieldError{
		Err:    flatipc.ErrUnsupportedFieldType,
		Type:   c.typeName,
		Field:  path,
		GoType: types.ExprString(expr),
		Shape:  shape,
	}
}

func join(path, name string) string {
	if path == "" {
		return name
	}
	return path + "." + name
}
