package parser

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// DeclKind is the storage shape of an annotated declaration.
type DeclKind int

const (
	Record  DeclKind = iota // struct, fields laid out in order
	Variant                 // tagged variant, one case live at a time
	Union                   // overlapping storage
	Newtype                 // non-struct defined type, e.g. type Gid [4]uint32
)

func (k DeclKind) String() string {
	switch k {
	case Record:
		return "record"
	case Variant:
		return "variant"
	case Union:
		return "union"
	case Newtype:
		return "newtype"
	default:
		return "unknown"
	}
}

// ReprC is the only layout directive accepted.
const ReprC = "C"

// Annotation holds a parsed @flatipc directive
type Annotation struct {
	Repr string   // "C", or empty when the directive is missing
	Kind DeclKind // Record unless kind= says otherwise
}

// ErrNoAnnotation is returned by ParseAnnotation for lines without @flatipc.
var ErrNoAnnotation = errors.New("no @flatipc annotation found")

var (
	annotationRe = regexp.MustCompile(`^@flatipc(?:\s+(.*))?$`)
	pairRe       = regexp.MustCompile(`(\w+)=([\w-]+)`)
)

// ParseAnnotation parses an @flatipc annotation from comment text
//
// Expected format:
//
//	// @flatipc repr=C
//	// @flatipc repr=C kind=variant
//	// @flatipc repr=C kind=union
//
// Params are space-separated key=value pairs. repr is required for
// certification but its absence is reported by the certifier, not here.
func ParseAnnotation(comment string) (*Annotation, error) {
	matches := annotationRe.FindStringSubmatch(strings.TrimSpace(comment))
	if matches == nil {
		return nil, ErrNoAnnotation
	}

	anno := &Annotation{Kind: Record}
	if matches[1] == "" {
		return anno, nil
	}

	for _, pair := range pairRe.FindAllStringSubmatch(matches[1], -1) {
		key, value := pair[1], pair[2]

		switch key {
		case "repr":
			if value != ReprC {
				return nil, fmt.Errorf("unsupported repr %q (only repr=C is transmissible)", value)
			}
			anno.Repr = value

		case "kind":
			switch value {
			case "record":
				anno.Kind = Record
			case "variant":
				anno.Kind = Variant
			case "union":
				anno.Kind = Union
			default:
				return nil, fmt.Errorf("kind must be record, variant or union, got: %s", value)
			}

		default:
			return nil, fmt.Errorf("unknown parameter: %s", key)
		}
	}

	return anno, nil
}

// FindAnnotation searches comment lines for an @flatipc annotation.
// A line carrying the marker with bad parameters is an error, not a miss.
func FindAnnotation(comments []string) (*Annotation, bool, error) {
	for _, comment := range comments {
		anno, err := ParseAnnotation(comment)
		if errors.Is(err, ErrNoAnnotation) {
			continue
		}
		if err != nil {
			return nil, true, err
		}
		return anno, true, nil
	}
	return nil, false, nil
}

// CleanComment removes comment markers from a line
// "// @flatipc repr=C" → "@flatipc repr=C"
// "/* @flatipc repr=C */" → "@flatipc repr=C"
func CleanComment(line string) string {
	line = strings.TrimSpace(line)

	// Remove // prefix
	if strings.HasPrefix(line, "//") {
		line = strings.TrimPrefix(line, "//")
		return strings.TrimSpace(line)
	}

	// Remove /* */ wrapper
	if strings.HasPrefix(line, "/*") && strings.HasSuffix(line, "*/") {
		line = strings.TrimPrefix(line, "/*")
		line = strings.TrimSuffix(line, "*/")
		return strings.TrimSpace(line)
	}

	return line
}
