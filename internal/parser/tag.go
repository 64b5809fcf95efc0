package parser

import (
	"fmt"
	"strconv"
	"strings"
)

// FieldTag is the parsed `flatipc:"..."` struct tag of a field.
type FieldTag struct {
	Case int // variant discriminant, -1 if unset
}

// ParseTag parses flatipc struct tags
//
// Semantics:
//   - "case=N" : field is the payload of variant case N (N >= 0)
//
// Examples:
//
//	"case=0"  → payload of the first case
//	"case=12" → payload of case 12
func ParseTag(tag string) (*FieldTag, error) {
	if tag == "" {
		return nil, fmt.Errorf("empty flatipc tag")
	}

	f := &FieldTag{Case: -1}

	for _, part := range strings.Split(tag, ",") {
		key, value, ok := strings.Cut(part, "=")
		if !ok {
			return nil, fmt.Errorf("invalid tag parameter: %s", part)
		}

		switch key {
		case "case":
			n, err := strconv.Atoi(value)
			if err != nil {
				return nil, fmt.Errorf("invalid case: %s", value)
			}
			if n < 0 {
				return nil, fmt.Errorf("case must be non-negative, got: %d", n)
			}
			f.Case = n
		default:
			return nil, fmt.Errorf("unknown tag parameter: %s", key)
		}
	}

	return f, nil
}
