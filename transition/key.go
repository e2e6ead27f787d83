// Package transition composes preparation keys for FSM transitions and
// resolves them with a three-tier fallback.
package transition

import (
	"errors"
	"fmt"

	"github.com/sarchlab/momos/naming"
)

var (
	// ErrMalformedKey is returned for keys that cannot be composed.
	ErrMalformedKey = errors.New("malformed transition key")

	// ErrVariantWithoutType is returned when a key carries a variant but no
	// trigger type.
	ErrVariantWithoutType = fmt.Errorf("%w: variant given without type",
		ErrMalformedKey)

	// ErrAmbiguousKey is returned when two different transitions compose to
	// the same key, such as A_B to C and A to B_C.
	ErrAmbiguousKey = fmt.Errorf("%w: composes like another transition",
		ErrMalformedKey)
)

// A Key identifies a transition and, optionally, the trigger that causes it.
type Key struct {
	From    string
	To      string
	Type    string
	Variant string
}

// New creates the base key of a transition.
func New(from, to string) Key {
	return Key{From: from, To: to}
}

// WithType returns a copy of the key with the trigger type set.
func (k Key) WithType(t string) Key {
	k.Type = t
	return k
}

// WithVariant returns a copy of the key with the trigger variant set.
func (k Key) WithVariant(v string) Key {
	k.Variant = v
	return k
}

// Base returns the key without type and variant.
func (k Key) Base() Key {
	return Key{From: k.From, To: k.To}
}

// Typed returns the key without variant.
func (k Key) Typed() Key {
	return Key{From: k.From, To: k.To, Type: k.Type}
}

// String composes the key as from_to[$type[#variant]].
func (k Key) String() string {
	s := k.From + naming.StateSeparator + k.To

	if k.Type != "" {
		s += naming.TypeSeparator + k.Type
	}

	if k.Variant != "" {
		s += naming.VariantSeparator + k.Variant
	}

	return s
}

// Validate checks that every part of the key can be composed unambiguously.
func (k Key) Validate() error {
	if k.Variant != "" && k.Type == "" {
		return fmt.Errorf("%w (%s)", ErrVariantWithoutType, k)
	}

	parts := []struct {
		role, value string
		optional    bool
	}{
		{"from", k.From, false},
		{"to", k.To, false},
		{"type", k.Type, true},
		{"variant", k.Variant, true},
	}

	for _, p := range parts {
		if p.optional && p.value == "" {
			continue
		}

		if err := naming.ValidatePart(p.value); err != nil {
			return fmt.Errorf("%w: %s: %w", ErrMalformedKey, p.role, err)
		}
	}

	return nil
}
