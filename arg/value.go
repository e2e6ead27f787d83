// Package arg defines the values that are passed into and returned from
// registered callbacks.
package arg

import (
	"fmt"
	"log"
	"math"
)

// Kind tells which field of a Value is set.
type Kind int

// The closed set of argument kinds.
const (
	KindNone Kind = iota
	KindInt
	KindFloat
	KindBytes
	KindText
)

func (k Kind) String() string {
	switch k {
	case KindNone:
		return "none"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindBytes:
		return "bytes"
	case KindText:
		return "text"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// A Value is a tagged union of the argument kinds. The zero Value carries
// nothing.
type Value struct {
	kind  Kind
	i     int64
	f     float64
	bytes []byte
	text  string
}

// None returns the empty value.
func None() Value {
	return Value{}
}

// Int wraps an integer.
func Int(v int64) Value {
	return Value{kind: KindInt, i: v}
}

// Float wraps a floating-point number.
func Float(v float64) Value {
	return Value{kind: KindFloat, f: v}
}

// Bytes wraps a copy of a byte buffer.
func Bytes(v []byte) Value {
	b := make([]byte, len(v))
	copy(b, v)

	return Value{kind: KindBytes, bytes: b}
}

// Text wraps a string.
func Text(v string) Value {
	return Value{kind: KindText, text: v}
}

// Kind returns the kind of the value.
func (v Value) Kind() Kind {
	return v.kind
}

// IsNone returns true if the value carries nothing.
func (v Value) IsNone() bool {
	return v.kind == KindNone
}

// AsInt returns the integer if the value is an integer.
func (v Value) AsInt() (int64, bool) {
	if v.kind != KindInt {
		return 0, false
	}

	return v.i, true
}

// AsFloat returns the value as a float. Integers are widened.
func (v Value) AsFloat() (float64, bool) {
	switch v.kind {
	case KindFloat:
		return v.f, true
	case KindInt:
		return float64(v.i), true
	default:
		return 0, false
	}
}

// AsBytes returns a copy of the buffer if the value is a byte buffer.
func (v Value) AsBytes() ([]byte, bool) {
	if v.kind != KindBytes {
		return nil, false
	}

	b := make([]byte, len(v.bytes))
	copy(b, v.bytes)

	return b, true
}

// AsText returns the string if the value is text.
func (v Value) AsText() (string, bool) {
	if v.kind != KindText {
		return "", false
	}

	return v.text, true
}

// MustInt returns the integer and panics if the value is of another kind.
func (v Value) MustInt() int64 {
	i, ok := v.AsInt()
	if !ok {
		log.Panicf("argument is %s, not int", v.kind)
	}

	return i
}

// MustFloat returns the value as a float and panics if it is not numeric.
func (v Value) MustFloat() float64 {
	f, ok := v.AsFloat()
	if !ok {
		log.Panicf("argument is %s, not float", v.kind)
	}

	return f
}

// MustBytes returns a copy of the buffer and panics if the value is of
// another kind.
func (v Value) MustBytes() []byte {
	b, ok := v.AsBytes()
	if !ok {
		log.Panicf("argument is %s, not bytes", v.kind)
	}

	return b
}

// MustText returns the string and panics if the value is of another kind.
func (v Value) MustText() string {
	s, ok := v.AsText()
	if !ok {
		log.Panicf("argument is %s, not text", v.kind)
	}

	return s
}

// ByteAt returns the byte at index i of a byte-buffer value. The index is
// bounds-checked.
func (v Value) ByteAt(i int) (byte, bool) {
	if v.kind != KindBytes || i < 0 || i >= len(v.bytes) {
		return 0, false
	}

	return v.bytes[i], true
}

// Len returns the length of a byte buffer or text, and 0 for other kinds.
func (v Value) Len() int {
	switch v.kind {
	case KindBytes:
		return len(v.bytes)
	case KindText:
		return len(v.text)
	default:
		return 0
	}
}

// Equal reports whether two values have the same kind and content.
func (v Value) Equal(o Value) bool {
	if v.kind != o.kind {
		return false
	}

	switch v.kind {
	case KindNone:
		return true
	case KindInt:
		return v.i == o.i
	case KindFloat:
		return v.f == o.f || (math.IsNaN(v.f) && math.IsNaN(o.f))
	case KindBytes:
		return string(v.bytes) == string(o.bytes)
	case KindText:
		return v.text == o.text
	}

	return false
}

func (v Value) String() string {
	switch v.kind {
	case KindInt:
		return fmt.Sprintf("int(%d)", v.i)
	case KindFloat:
		return fmt.Sprintf("float(%g)", v.f)
	case KindBytes:
		return fmt.Sprintf("bytes(%x)", v.bytes)
	case KindText:
		return fmt.Sprintf("text(%q)", v.text)
	default:
		return "none"
	}
}
