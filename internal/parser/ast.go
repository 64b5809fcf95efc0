package parser

import (
	"errors"
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"
	"go/types"
	"os"
	"path/filepath"
	"reflect"
	"sort"
	"strconv"
	"strings"
)

// GeneratedSuffix marks files written by the generator. They are skipped
// when parsing a package.
const GeneratedSuffix = "_flatipc.go"

// File is the result of parsing one Go source file.
type File struct {
	Path    string
	Package string
	Imports []Import
	Types   []*TypeDecl         // declarations carrying @flatipc
	Aliases map[string]ast.Expr // every non-struct type declaration, by name
}

// Import is one import spec of the source file. Name is empty unless the
// import is renamed.
type Import struct {
	Name string
	Path string
}

// TypeDecl represents a type declaration with an @flatipc annotation
type TypeDecl struct {
	Name   string
	Anno   *Annotation
	Kind   DeclKind
	Fields []Field
	Pos    token.Position
}

// Field represents one named member of a declaration. A Newtype has a
// single field with an empty name holding the underlying type.
type Field struct {
	Name   string
	Type   ast.Expr
	GoType string
	Tag    *FieldTag
	Pos    token.Position
}

// Case returns the variant discriminant of the field, or -1.
func (f Field) Case() int {
	if f.Tag == nil {
		return -1
	}
	return f.Tag.Case
}

// ParseFile parses a Go source file and extracts types with @flatipc annotations
func ParseFile(filename string) (*File, error) {
	return ParseSource(filename, nil)
}

// ParseSource is ParseFile for in-memory source. src follows go/parser
// conventions: nil means read filename from disk.
func ParseSource(filename string, src any) (*File, error) {
	fset := token.NewFileSet()
	file, err := parser.ParseFile(fset, filename, src, parser.ParseComments)
	if err != nil {
		return nil, fmt.Errorf("parse error: %w", err)
	}

	f, errs := extractTypes(fset, file)
	f.Path = filename
	return f, errors.Join(errs...)
}

// ParseDir parses every non-test, non-generated Go file in dir, sorted by
// name.
func ParseDir(dir string) ([]*File, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read dir: %w", err)
	}

	var names []string
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasSuffix(name, ".go") ||
			strings.HasSuffix(name, "_test.go") || strings.HasSuffix(name, GeneratedSuffix) {
			continue
		}
		names = append(names, name)
	}
	sort.Strings(names)

	var files []*File
	var errs []error
	for _, name := range names {
		f, err := ParseFile(filepath.Join(dir, name))
		if f == nil {
			return nil, err
		}
		if err != nil {
			errs = append(errs, err)
		}
		files = append(files, f)
	}
	return files, errors.Join(errs...)
}

func extractTypes(fset *token.FileSet, file *ast.File) (*File, []error) {
	out := &File{
		Package: file.Name.Name,
		Aliases: make(map[string]ast.Expr),
	}
	var errs []error

	for _, imp := range file.Imports {
		path, err := strconv.Unquote(imp.Path.Value)
		if err != nil {
			continue
		}
		var name string
		if imp.Name != nil {
			name = imp.Name.Name
		}
		out.Imports = append(out.Imports, Import{Name: name, Path: path})
	}

	for _, decl := range file.Decls {
		genDecl, ok := decl.(*ast.GenDecl)
		if !ok || genDecl.Tok != token.TYPE {
			continue
		}

		for _, spec := range genDecl.Specs {
			typeSpec := spec.(*ast.TypeSpec)
			pos := fset.Position(typeSpec.Pos())

			if _, isStruct := typeSpec.Type.(*ast.StructType); !isStruct {
				out.Aliases[typeSpec.Name.Name] = typeSpec.Type
			}

			// A grouped declaration may annotate each spec or the group.
			doc := typeSpec.Doc
			if doc == nil && len(genDecl.Specs) == 1 {
				doc = genDecl.Doc
			}
			anno, found, err := extractAnnotation(doc)
			if err != nil {
				errs = append(errs, fmt.Errorf("%s: %s: %w", pos, typeSpec.Name.Name, err))
				continue
			}
			if !found {
				continue
			}

			td, err := buildDecl(fset, typeSpec, anno)
			if err != nil {
				errs = append(errs, fmt.Errorf("%s: %s: %w", pos, typeSpec.Name.Name, err))
				continue
			}
			td.Pos = pos
			out.Types = append(out.Types, td)
		}
	}

	return out, errs
}

func extractAnnotation(doc *ast.CommentGroup) (*Annotation, bool, error) {
	if doc == nil {
		return nil, false, nil
	}

	// Extract comment text lines
	var lines []string
	for _, comment := range doc.List {
		lines = append(lines, CleanComment(comment.Text))
	}

	return FindAnnotation(lines)
}

func buildDecl(fset *token.FileSet, spec *ast.TypeSpec, anno *Annotation) (*TypeDecl, error) {
	if spec.TypeParams != nil && len(spec.TypeParams.List) > 0 {
		return nil, fmt.Errorf("generic declarations cannot be certified; annotate an instantiation instead")
	}
	if spec.Assign.IsValid() {
		return nil, fmt.Errorf("type aliases cannot be annotated; annotate the aliased type")
	}

	td := &TypeDecl{
		Name: spec.Name.Name,
		Anno: anno,
		Kind: anno.Kind,
	}

	structType, ok := spec.Type.(*ast.StructType)
	if !ok {
		if anno.Kind != Record {
			return nil, fmt.Errorf("kind=%s requires a struct declaration", anno.Kind)
		}
		td.Kind = Newtype
		td.Fields = []Field{{
			Type:   spec.Type,
			GoType: typeToString(spec.Type),
			Pos:    fset.Position(spec.Type.Pos()),
		}}
		return td, nil
	}

	fields, err := extractFields(fset, structType)
	if err != nil {
		return nil, err
	}
	if err := checkCases(td.Kind, fields); err != nil {
		return nil, err
	}
	td.Fields = fields
	return td, nil
}

func extractFields(fset *token.FileSet, structType *ast.StructType) ([]Field, error) {
	var fields []Field

	for _, field := range structType.Fields.List {
		var tag *FieldTag
		if field.Tag != nil {
			st := reflect.StructTag(strings.Trim(field.Tag.Value, "`"))
			if raw, ok := st.Lookup("flatipc"); ok {
				parsed, err := ParseTag(raw)
				if err != nil {
					return nil, fmt.Errorf("field %s: %w", fieldLabel(field), err)
				}
				tag = parsed
			}
		}

		names := field.Names
		if len(names) == 0 {
			// Embedded field: named after its type.
			names = []*ast.Ident{ast.NewIdent(EmbeddedName(field.Type))}
		}
		for _, name := range names {
			fields = append(fields, Field{
				Name:   name.Name,
				Type:   field.Type,
				GoType: typeToString(field.Type),
				Tag:    tag,
				Pos:    fset.Position(name.Pos()),
			})
		}
	}

	return fields, nil
}

func checkCases(kind DeclKind, fields []Field) error {
	seen := make(map[int]string)
	for _, f := range fields {
		c := f.Case()
		if c < 0 {
			continue
		}
		if kind != Variant {
			return fmt.Errorf("field %s: case= is only valid with kind=variant", f.Name)
		}
		if prev, dup := seen[c]; dup {
			return fmt.Errorf("fields %s and %s share case %d", prev, f.Name, c)
		}
		seen[c] = f.Name
	}
	return nil
}

func fieldLabel(field *ast.Field) string {
	if len(field.Names) > 0 {
		return field.Names[0].Name
	}
	return EmbeddedName(field.Type)
}

// EmbeddedName returns the implicit field name of an embedded type:
// Point, *Point, pkg.Point and Option[T] are all named by their last
// identifier.
func EmbeddedName(expr ast.Expr) string {
	switch t := expr.(type) {
	case *ast.Ident:
		return t.Name
	case *ast.StarExpr:
		return EmbeddedName(t.X)
	case *ast.SelectorExpr:
		return t.Sel.Name
	case *ast.IndexExpr:
		return EmbeddedName(t.X)
	case *ast.IndexListExpr:
		return EmbeddedName(t.X)
	case *ast.ParenExpr:
		return EmbeddedName(t.X)
	default:
		return "_"
	}
}

// typeToString converts AST type expression to its canonical Go spelling
func typeToString(expr ast.Expr) string {
	return types.ExprString(expr)
}
