package analyzer

import (
	"fmt"
	"go/ast"
	goparser "go/parser"
	"go/token"
	"go/types"
	"strconv"

	"github.com/alexhholmes/flatipc/internal/parser"
)

// Layout is the native size and alignment of a type on a 64-bit target.
type Layout struct {
	Size  int
	Align int
}

var primitives = map[string]Layout{
	"bool":       {1, 1},
	"int8":       {1, 1},
	"uint8":      {1, 1},
	"byte":       {1, 1},
	"int16":      {2, 2},
	"uint16":     {2, 2},
	"int32":      {4, 4},
	"uint32":     {4, 4},
	"rune":       {4, 4},
	"float32":    {4, 4},
	"int64":      {8, 8},
	"uint64":     {8, 8},
	"float64":    {8, 8},
	"int":        {8, 8},
	"uint":       {8, 8},
	"uintptr":    {8, 8},
	"complex64":  {8, 4},
	"complex128": {16, 8},
}

// IsPrimitive reports whether name is a predeclared fixed-size scalar.
func IsPrimitive(name string) bool {
	_, ok := primitives[name]
	return ok
}

// SizeOf returns the size in bytes of a Go type spelled as source, e.g.
// "uint32" or "[16]byte". Named types need a TypeRegistry.
func SizeOf(goType string) (int, error) {
	expr, err := goparser.ParseExpr(goType)
	if err != nil {
		return 0, fmt.Errorf("invalid type: %s", goType)
	}
	l, err := NewTypeRegistry().LayoutOf(expr)
	if err != nil {
		return 0, err
	}
	return l.Size, nil
}

// TypeRegistry tracks annotated declarations and local non-struct types
// so that field types can be resolved by name.
type TypeRegistry struct {
	decls   map[string]*parser.TypeDecl // annotated declarations
	aliases map[string]ast.Expr         // type Gid [4]uint32 → [4]uint32
}

func NewTypeRegistry() *TypeRegistry {
	return &TypeRegistry{
		decls:   make(map[string]*parser.TypeDecl),
		aliases: make(map[string]ast.Expr),
	}
}

// Register adds an annotated declaration
func (r *TypeRegistry) Register(decl *parser.TypeDecl) {
	r.decls[decl.Name] = decl
}

// RegisterAlias adds a local non-struct type (e.g., type PageID uint64)
func (r *TypeRegistry) RegisterAlias(name string, underlying ast.Expr) {
	r.aliases[name] = underlying
}

// AddFile registers every declaration and non-struct type of f.
func (r *TypeRegistry) AddFile(f *parser.File) {
	for name, expr := range f.Aliases {
		r.RegisterAlias(name, expr)
	}
	for _, decl := range f.Types {
		r.Register(decl)
	}
}

// Lookup returns the annotated declaration called name
func (r *TypeRegistry) Lookup(name string) (*parser.TypeDecl, bool) {
	decl, ok := r.decls[name]
	return decl, ok
}

// ResolveType returns the underlying expression of a local non-struct
// type. It resolves one level only.
func (r *TypeRegistry) ResolveType(name string) (ast.Expr, bool) {
	expr, ok := r.aliases[name]
	return expr, ok
}

// LayoutOf computes the layout of expr. Types outside the registry, other
// than flatipc.Option and flatipc.Result, are unknown.
func (r *TypeRegistry) LayoutOf(expr ast.Expr) (Layout, error) {
	return r.layout(expr, make(map[string]bool))
}

// DeclLayout computes the layout of an annotated declaration.
func (r *TypeRegistry) DeclLayout(decl *parser.TypeDecl) (Layout, error) {
	return r.declLayout(decl, map[string]bool{decl.Name: true})
}

func (r *TypeRegistry) declLayout(decl *parser.TypeDecl, seen map[string]bool) (Layout, error) {
	if decl.Kind == parser.Newtype {
		return r.layout(decl.Fields[0].Type, seen)
	}
	members := make([]ast.Expr, len(decl.Fields))
	for i, f := range decl.Fields {
		members[i] = f.Type
	}
	return r.structLayout(members, seen)
}

func (r *TypeRegistry) layout(expr ast.Expr, seen map[string]bool) (Layout, error) {
	switch t := expr.(type) {
	case *ast.Ident:
		if l, ok := primitives[t.Name]; ok {
			return l, nil
		}
		if seen[t.Name] {
			return Layout{}, fmt.Errorf("recursive type: %s", t.Name)
		}
		seen[t.Name] = true
		defer delete(seen, t.Name)

		if decl, ok := r.Lookup(t.Name); ok {
			return r.declLayout(decl, seen)
		}
		if underlying, ok := r.ResolveType(t.Name); ok {
			return r.layout(underlying, seen)
		}
		return Layout{}, fmt.Errorf("unknown type: %s (not registered)", t.Name)

	case *ast.ArrayType:
		lit, ok := t.Len.(*ast.BasicLit)
		if !ok || lit.Kind != token.INT {
			return Layout{}, fmt.Errorf("array length must be an integer literal: %s", types.ExprString(t))
		}
		n, err := strconv.ParseInt(lit.Value, 0, 64)
		if err != nil {
			return Layout{}, fmt.Errorf("invalid array length: %s", lit.Value)
		}
		elem, err := r.layout(t.Elt, seen)
		if err != nil {
			return Layout{}, fmt.Errorf("array element: %w", err)
		}
		return Layout{Size: int(n) * elem.Size, Align: elem.Align}, nil

	case *ast.StructType:
		var members []ast.Expr
		for _, f := range t.Fields.List {
			n := max(len(f.Names), 1)
			for range n {
				members = append(members, f.Type)
			}
		}
		return r.structLayout(members, seen)

	case *ast.ParenExpr:
		return r.layout(t.X, seen)

	case *ast.IndexExpr:
		return r.instanceLayout(t.X, []ast.Expr{t.Index}, seen)

	case *ast.IndexListExpr:
		return r.instanceLayout(t.X, t.Indices, seen)
	}

	return Layout{}, fmt.Errorf("unknown type: %s", types.ExprString(expr))
}

// instanceLayout knows the two generic containers of the runtime package:
// Option[T] is {bool, T} and Result[T, E] is {bool, T, E}.
func (r *TypeRegistry) instanceLayout(generic ast.Expr, args []ast.Expr, seen map[string]bool) (Layout, error) {
	sel, ok := generic.(*ast.SelectorExpr)
	if ok {
		if pkg, isIdent := sel.X.(*ast.Ident); isIdent && pkg.Name == "flatipc" {
			switch {
			case sel.Sel.Name == "Option" && len(args) == 1,
				sel.Sel.Name == "Result" && len(args) == 2:
				return r.structLayout(append([]ast.Expr{ast.NewIdent("bool")}, args...), seen)
			}
		}
	}
	return Layout{}, fmt.Errorf("unknown generic type: %s", types.ExprString(generic))
}

func (r *TypeRegistry) structLayout(members []ast.Expr, seen map[string]bool) (Layout, error) {
	out := Layout{Align: 1}
	for _, m := range members {
		l, err := r.layout(m, seen)
		if err != nil {
			return Layout{}, err
		}
		out.Size = alignUp(out.Size, l.Align) + l.Size
		out.Align = max(out.Align, l.Align)
	}
	out.Size = alignUp(out.Size, out.Align)
	return out, nil
}

func alignUp(n, align int) int {
	return (n + align - 1) &^ (align - 1)
}
