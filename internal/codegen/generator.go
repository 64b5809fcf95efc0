package codegen

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/tools/imports"

	"github.com/alexhholmes/flatipc/internal/analyzer"
	"github.com/alexhholmes/flatipc/internal/parser"
)

// RuntimeImport is the import path of the runtime package that generated
// code calls into.
const RuntimeImport = "github.com/alexhholmes/flatipc"

// reserved are the method names the generator adds to every type.
var reserved = map[string]bool{
	"IPCSafe":      true,
	"Signature":    true,
	"IntoEnvelope": true,
}

// Options configures a generated file.
type Options struct {
	Package string          // package clause
	Source  string          // base name of the annotated file, for the header
	Imports []parser.Import // imports of the annotated file; unused ones are pruned
}

// Generator generates the methods, proof obligations and signature of one
// certified type.
type Generator struct {
	cert *analyzer.Certificate
	name string
}

// NewGenerator creates a new code generator
func NewGenerator(cert *analyzer.Certificate) *Generator {
	return &Generator{cert: cert, name: cert.Decl.Name}
}

// Generate returns the generated code for this type (without package header/imports)
func (g *Generator) Generate() (string, error) {
	for _, f := range g.cert.Decl.Fields {
		if reserved[f.Name] {
			return "", fmt.Errorf("%s.%s collides with a generated method", g.name, f.Name)
		}
	}

	var out strings.Builder
	out.WriteString(g.GenerateSignature())
	out.WriteString("\n")
	out.WriteString(g.GenerateMethods())
	out.WriteString("\n")
	out.WriteString(g.GenerateObligations())
	return out.String(), nil
}

// SignatureVar is the package-level variable holding the signature.
func (g *Generator) SignatureVar() string {
	return lowerFirst(g.name) + "Signature"
}

// GenerateSignature generates the signature variable, computed at package
// initialisation from the canonical declaration.
func (g *Generator) GenerateSignature() string {
	var code strings.Builder
	fmt.Fprintf(&code, "// %s is the structural signature of %s.\n", g.SignatureVar(), g.name)
	fmt.Fprintf(&code, "var %s = flatipc.SignatureOf(%s)\n", g.SignatureVar(), strconv.Quote(g.cert.Canonical))
	return code.String()
}

// GenerateMethods generates the marker, Signature and IntoEnvelope methods
func (g *Generator) GenerateMethods() string {
	var code strings.Builder

	fmt.Fprintf(&code, "// IPCSafe marks %s as certified flat.\n", g.name)
	fmt.Fprintf(&code, "func (%s) IPCSafe() {}\n\n", g.name)

	fmt.Fprintf(&code, "// Signature returns the structural signature of %s.\n", g.name)
	fmt.Fprintf(&code, "func (%s) Signature() uint32 { return %s }\n\n", g.name, g.SignatureVar())

	code.WriteString("// IntoEnvelope moves v into a page-aligned envelope and zeroes v.\n")
	fmt.Fprintf(&code, "func (v *%s) IntoEnvelope() (*flatipc.Envelope[%s], error) {\n", g.name, g.name)
	code.WriteString("\treturn flatipc.IntoEnvelope(v)\n")
	code.WriteString("}\n")

	return code.String()
}

// GenerateObligations generates one generic instantiation per leaf field.
// The function is never called; it exists so that the compiler rejects a
// field type that is not flat.
func (g *Generator) GenerateObligations() string {
	var code strings.Builder

	code.WriteString("func _() {\n")
	if len(g.cert.Obligations) == 0 {
		fmt.Fprintf(&code, "\t// %s has no fields\n", g.name)
	}
	for _, ob := range g.cert.Obligations {
		fn := "ProveFlat"
		if ob.Kind == analyzer.Primitive {
			fn = "ProvePrimitive"
		}
		path := ob.Field
		if path == "" {
			path = g.name
		}
		fmt.Fprintf(&code, "\tflatipc.%s[%s]() // %s\n", fn, ob.Type, path)
	}
	code.WriteString("}\n")

	return code.String()
}

// GenerateFile assembles a complete, formatted Go file for certs.
func GenerateFile(certs []*analyzer.Certificate, opts Options) ([]byte, error) {
	if opts.Package == "" {
		return nil, fmt.Errorf("package name is required")
	}

	var src strings.Builder
	fmt.Fprintf(&src, "// Code generated by flatipcgen from %s. DO NOT EDIT.\n\n", opts.Source)
	fmt.Fprintf(&src, "package %s\n\n", opts.Package)

	src.WriteString("import (\n")
	fmt.Fprintf(&src, "\t%q\n", RuntimeImport)
	for _, imp := range opts.Imports {
		if imp.Path == RuntimeImport || imp.Name == "_" || imp.Name == "." {
			continue
		}
		if imp.Name != "" {
			fmt.Fprintf(&src, "\t%s %q\n", imp.Name, imp.Path)
		} else {
			fmt.Fprintf(&src, "\t%q\n", imp.Path)
		}
	}
	src.WriteString(")\n\n")

	for _, cert := range certs {
		code, err := NewGenerator(cert).Generate()
		if err != nil {
			return nil, err
		}
		src.WriteString(code)
		src.WriteString("\n")
	}

	if len(certs) > 0 {
		src.WriteString("func init() {\n")
		for _, cert := range certs {
			fmt.Fprintf(&src, "\tflatipc.MustRegister[%s]()\n", cert.Decl.Name)
		}
		src.WriteString("}\n")
	}

	out, err := imports.Process(opts.Source, []byte(src.String()), nil)
	if err != nil {
		return nil, fmt.Errorf("format generated code: %w\n%s", err, src.String())
	}
	return out, nil
}

// lowerFirst lowers a leading initialism as a unit: TextView → textView,
// IPCHeader → ipcHeader, ID → id.
func lowerFirst(name string) string {
	r := []rune(name)
	n := 0
	for n < len(r) && unicode.IsUpper(r[n]) {
		n++
	}
	if n > 1 && n < len(r) && unicode.IsLower(r[n]) {
		n--
	}
	for i := 0; i < n; i++ {
		r[i] = unicode.ToLower(r[i])
	}
	return string(r)
}
