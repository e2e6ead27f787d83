package registry

import (
	"fmt"
	"log/slog"
)

// A Registrar contributes callbacks to a registry. Test modules implement
// Registrar and are fed to a Builder so that registration happens in one
// explicit, ordered pass.
type Registrar interface {
	Register(r *Registry) error
}

// RegistrarFunc adapts a function to the Registrar interface.
type RegistrarFunc func(r *Registry) error

// Register calls f.
func (f RegistrarFunc) Register(r *Registry) error {
	return f(r)
}

// Builder can build registries.
type Builder struct {
	logger     *slog.Logger
	registrars []Registrar
}

// WithLogger sets the logger of the registry.
func (b Builder) WithLogger(logger *slog.Logger) Builder {
	b.logger = logger
	return b
}

// WithRegistrar appends registrars. Registrars run in the order they are
// given, so a later registrar overrides an earlier one on the same key.
func (b Builder) WithRegistrar(registrars ...Registrar) Builder {
	all := make([]Registrar, 0, len(b.registrars)+len(registrars))
	all = append(all, b.registrars...)
	all = append(all, registrars...)
	b.registrars = all

	return b
}

// Build creates an empty registry, without running the registrars.
func (b Builder) Build() *Registry {
	logger := b.logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Registry{
		logger:     logger,
		components: make(map[string]Func),
	}
}

// BuildAndRegister creates a registry and runs all registrars in order. It
// stops at the first registrar that fails.
func (b Builder) BuildAndRegister() (*Registry, error) {
	r := b.Build()

	if err := b.RegisterAll(r); err != nil {
		return nil, err
	}

	return r, nil
}

// RegisterAll runs the registrars of the builder against an existing
// registry.
func (b Builder) RegisterAll(r *Registry) error {
	for i, registrar := range b.registrars {
		if err := registrar.Register(r); err != nil {
			return fmt.Errorf("registrar %d: %w", i, err)
		}
	}

	r.logger.Debug("registration pass finished",
		slog.Int("registrars", len(b.registrars)),
		slog.Int("components", r.Len()))

	return nil
}
