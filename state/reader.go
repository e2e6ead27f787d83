// Package state exposes the discrete state of the FSM under test through a
// single registered callback.
package state

import (
	"log"

	"github.com/sarchlab/momos/arg"
	"github.com/sarchlab/momos/registry"
)

// Key is the registry key of the state reader.
const Key = "__state"

// Code is the type of a discrete FSM state: an integer or an enumeration
// defined on an integer.
type Code interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64
}

// Register registers read as the state reader. A later registration replaces
// an earlier one.
func Register[S Code](r *registry.Registry, read func() S) {
	r.Register(Key, func(arg.Value) arg.Value {
		return arg.Int(int64(read()))
	})
}

// Read calls the registered state reader. It returns false if no reader is
// registered.
func Read[S Code](r *registry.Registry) (S, bool) {
	out, found := r.Invoke(Key, arg.None())
	if !found {
		return 0, false
	}

	return S(out.MustInt()), true
}

// A Reader reads states of type S from a registry.
type Reader[S Code] struct {
	registry *registry.Registry
}

// NewReader creates a reader.
func NewReader[S Code](r *registry.Registry) Reader[S] {
	return Reader[S]{registry: r}
}

// Current returns the current state.
func (r Reader[S]) Current() (S, bool) {
	return Read[S](r.registry)
}

// MustCurrent returns the current state and panics if no reader is
// registered.
func (r Reader[S]) MustCurrent() S {
	s, found := r.Current()
	if !found {
		log.Panic("no state reader registered")
	}

	return s
}
