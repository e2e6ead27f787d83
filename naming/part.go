package naming

import (
	"errors"
	"fmt"
	"strings"
)

// Separators used when composing keys.
const (
	StateSeparator   = "_"
	TypeSeparator    = "$"
	VariantSeparator = "#"
)

// ErrInvalidPart is returned when a key part does not follow the naming
// convention.
var ErrInvalidPart = errors.New("invalid key part")

// reserved lists the characters that a key part must not contain. "_" is
// allowed since state names such as STATE_WAIT use it and the fallback never
// splits on it.
var reserved = []string{TypeSeparator, VariantSeparator}

// ValidatePart checks a single state, trigger type, variant or hook name.
// A part must
//  1. be non-empty,
//  2. only contain printable ASCII characters other than space,
//  3. not contain "$" or "#".
func ValidatePart(part string) error {
	if part == "" {
		return fmt.Errorf("%w: must not be empty", ErrInvalidPart)
	}

	for _, c := range part {
		if c <= ' ' || c > '~' {
			return fmt.Errorf("%w: %q contains character %q",
				ErrInvalidPart, part, c)
		}
	}

	for _, r := range reserved {
		if strings.Contains(part, r) {
			return fmt.Errorf("%w: %q must not contain %s",
				ErrInvalidPart, part, r)
		}
	}

	return nil
}

// NameMustBeValid panics if an element name is empty or contains whitespace.
// Element names label channels and links and are never composed into keys.
func NameMustBeValid(name string) {
	if name == "" {
		panic("name must not be empty")
	}

	if strings.ContainsAny(name, " \t\n") {
		panic("name " + name + " must not contain whitespace")
	}
}
