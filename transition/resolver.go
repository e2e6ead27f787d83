package transition

import (
	"fmt"
	"log/slog"

	"github.com/sarchlab/momos/arg"
	"github.com/sarchlab/momos/hooking"
	"github.com/sarchlab/momos/registry"
)

// KeyPrefix is prepended to every transition key stored in the registry.
const KeyPrefix = "__prepare_"

// HookPosResolve marks the end of every resolution. The hook item is the
// requested Key and the detail is the Tier that matched.
var HookPosResolve = &hooking.HookPos{Name: "Resolve"}

// A Resolver registers preparations and finds the most specific one for a
// transition.
type Resolver struct {
	hooking.HookableBase

	registry    *registry.Registry
	logger      *slog.Logger
	transitions map[string]Key
}

// NewResolver creates a resolver on top of a registry.
func NewResolver(r *registry.Registry) *Resolver {
	return &Resolver{
		registry:    r,
		logger:      r.Logger(),
		transitions: make(map[string]Key),
	}
}

// Name returns the name of the resolver.
func (r *Resolver) Name() string {
	return "Resolver"
}

// Prepare registers fn as the preparation for k. Keys with malformed parts
// are rejected and nothing is registered, and so are keys whose composition
// collides with a different transition prepared earlier.
func (r *Resolver) Prepare(k Key, fn registry.Func) error {
	if err := k.Validate(); err != nil {
		return err
	}

	if err := r.mustNotCollide(k); err != nil {
		return err
	}

	r.transitions[k.Base().String()] = k.Base()
	r.registry.Register(KeyPrefix+k.String(), fn)

	return nil
}

// mustNotCollide checks that the base key of k is owned by no other
// transition.
func (r *Resolver) mustNotCollide(k Key) error {
	owner, taken := r.transitions[k.Base().String()]
	if !taken || owner == k.Base() {
		return nil
	}

	return fmt.Errorf("%w: %s to %s and %s to %s",
		ErrAmbiguousKey, k.From, k.To, owner.From, owner.To)
}

// Has tells if a preparation is registered under exactly k.
func (r *Resolver) Has(k Key) bool {
	return r.registry.Has(KeyPrefix + k.String())
}

// Resolve invokes the most specific preparation registered for k. It tries
// the full key, then the key without variant, then the base key, and stops at
// the first match. It never looks past the base key. Keys that compose
// like a different registered transition are rejected without invoking
// anything.
func (r *Resolver) Resolve(k Key, in arg.Value) (arg.Value, Tier, error) {
	if err := k.Validate(); err != nil {
		return arg.None(), TierNone, err
	}

	if err := r.mustNotCollide(k); err != nil {
		return arg.None(), TierNone, err
	}

	out, tier := r.resolve(k, in)

	if r.NumHooks() > 0 {
		r.InvokeHook(hooking.HookCtx{
			Domain: r,
			Pos:    HookPosResolve,
			Item:   k,
			Detail: tier,
		})
	}

	return out, tier, nil
}

func (r *Resolver) resolve(k Key, in arg.Value) (arg.Value, Tier) {
	if k.Variant != "" {
		if out, found := r.invoke(k, in); found {
			return out, TierVariant
		}
	}

	if k.Type != "" {
		if out, found := r.invoke(k.Typed(), in); found {
			return out, TierTyped
		}
	}

	if out, found := r.invoke(k.Base(), in); found {
		return out, TierBase
	}

	return arg.None(), TierNone
}

func (r *Resolver) invoke(k Key, in arg.Value) (arg.Value, bool) {
	return r.registry.Invoke(KeyPrefix+k.String(), in)
}

// Run resolves k and reports whether any preparation ran. Missing
// preparations and malformed keys are logged as warnings.
func (r *Resolver) Run(k Key, in arg.Value) bool {
	_, tier, err := r.Resolve(k, in)
	if err != nil {
		r.logger.Warn("cannot resolve preparation",
			slog.String("key", k.String()),
			slog.Any("error", err))

		return false
	}

	if !tier.Found() {
		r.logger.Warn("no preparation defined",
			slog.String("key", k.String()))

		return false
	}

	r.logger.Debug("preparation resolved",
		slog.String("key", k.String()),
		slog.String("tier", tier.String()))

	return true
}
