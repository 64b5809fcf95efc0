// Package signature derives the structural fingerprint of an annotated
// declaration.
//
// The fingerprint is computed over a canonical text form of the
// declaration rather than its source bytes, so comments, blank lines and
// field grouping (A, B int32 versus two lines) never change it while
// renaming, retyping, reordering or renumbering a field always does.
package signature

import (
	"strconv"
	"strings"

	"github.com/alexhholmes/flatipc"
	"github.com/alexhholmes/flatipc/internal/parser"
)

// Canonical renders decl as
//
//	<kind> <Name>{<field> <type>[@<case>];...}
//
// e.g. "record Point{X int16;Y int16;}" or "newtype Gid{[4]uint32;}".
func Canonical(decl *parser.TypeDecl) string {
	var b strings.Builder
	b.WriteString(decl.Kind.String())
	b.WriteByte(' ')
	b.WriteString(decl.Name)
	b.WriteByte('{')
	for _, f := range decl.Fields {
		if f.Name != "" {
			b.WriteString(f.Name)
			b.WriteByte(' ')
		}
		b.WriteString(f.GoType)
		if c := f.Case(); c >= 0 {
			b.WriteByte('@')
			b.WriteString(strconv.Itoa(c))
		}
		b.WriteByte(';')
	}
	b.WriteByte('}')
	return b.String()
}

// Compute returns the 32-bit signature of decl. It is the value the
// generated Signature method returns at runtime.
func Compute(decl *parser.TypeDecl) uint32 {
	return flatipc.SignatureOf(Canonical(decl))
}
