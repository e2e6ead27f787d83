// Package registry maps string keys to callbacks. Hooks, preparations and the
// state reader are all registered and resolved through a Registry.
package registry

import (
	"log/slog"
	"sort"

	"github.com/sarchlab/momos/arg"
)

// Func is a registered callback. It receives an input value and produces an
// output value; callbacks that need neither use arg.None().
type Func func(in arg.Value) arg.Value

// A Registry maps keys to callbacks. It is not safe for concurrent use; each
// test fixture owns its own Registry.
type Registry struct {
	logger     *slog.Logger
	components map[string]Func
}

// New creates an empty registry.
func New() *Registry {
	return Builder{}.Build()
}

// Register stores fn under key. An existing registration under the same key
// is replaced.
func (r *Registry) Register(key string, fn Func) {
	if fn == nil {
		panic("registry: nil callback for key " + key)
	}

	if _, exists := r.components[key]; exists {
		r.logger.Debug("component replaced", slog.String("key", key))
	}

	r.components[key] = fn
}

// Invoke calls the callback registered under key. It returns false, and does
// nothing, if no callback is registered.
func (r *Registry) Invoke(key string, in arg.Value) (arg.Value, bool) {
	fn, found := r.components[key]
	if !found {
		return arg.None(), false
	}

	return fn(in), true
}

// Has tells if a callback is registered under key.
func (r *Registry) Has(key string) bool {
	_, found := r.components[key]
	return found
}

// Keys returns all registered keys in lexical order.
func (r *Registry) Keys() []string {
	keys := make([]string, 0, len(r.components))
	for k := range r.components {
		keys = append(keys, k)
	}

	sort.Strings(keys)

	return keys
}

// Len returns the number of registered callbacks.
func (r *Registry) Len() int {
	return len(r.components)
}

// Logger returns the logger of the registry.
func (r *Registry) Logger() *slog.Logger {
	return r.logger
}
