// Package lifecycle runs named hooks at fixed points of a test step, such as
// setup, per-step progress and teardown.
package lifecycle

import (
	"log/slog"

	"github.com/sarchlab/momos/arg"
	"github.com/sarchlab/momos/hooking"
	"github.com/sarchlab/momos/naming"
	"github.com/sarchlab/momos/registry"
)

// KeyPrefix is prepended to hook names in the registry.
const KeyPrefix = "__hook_"

// Names of the hooks that a test step runs.
const (
	HookSetup    = "setup"
	HookProgress = "progress"
	HookTeardown = "teardown"
)

// HookPosRun marks a lifecycle hook run. The item is the hook name and the
// detail tells if the callback was invoked.
var HookPosRun = &hooking.HookPos{Name: "Lifecycle Run"}

// HookPosSkip marks a hook run that was swallowed by a skip request.
var HookPosSkip = &hooking.HookPos{Name: "Lifecycle Skip"}

// Hooks runs lifecycle hooks registered in a registry and keeps the skip flag
// of every hook.
type Hooks struct {
	hooking.HookableBase

	registry *registry.Registry
	logger   *slog.Logger
	skipped  map[string]bool
}

// New creates Hooks on top of a registry.
func New(r *registry.Registry) *Hooks {
	return &Hooks{
		registry: r,
		logger:   r.Logger(),
		skipped:  make(map[string]bool),
	}
}

// Name returns the name of the hook set.
func (h *Hooks) Name() string {
	return "Hooks"
}

// Key returns the registry key of a hook name.
func Key(name string) string {
	return KeyPrefix + name
}

// Define registers fn as the hook called name.
func (h *Hooks) Define(name string, fn func()) error {
	if err := naming.ValidatePart(name); err != nil {
		return err
	}

	h.registry.Register(Key(name), func(arg.Value) arg.Value {
		fn()
		return arg.None()
	})

	return nil
}

// Run invokes the hook called name and tells if it was invoked. A pending
// skip request is consumed instead of invoking the hook. Undefined hooks are
// a no-op.
func (h *Hooks) Run(name string) bool {
	if h.skipped[name] {
		h.skipped[name] = false
		h.logger.Debug("hook skipped", slog.String("hook", name))
		h.notify(HookPosSkip, name, false)

		return false
	}

	_, invoked := h.registry.Invoke(Key(name), arg.None())
	h.notify(HookPosRun, name, invoked)

	return invoked
}

func (h *Hooks) notify(pos *hooking.HookPos, name string, invoked bool) {
	if h.NumHooks() == 0 {
		return
	}

	h.InvokeHook(hooking.HookCtx{
		Domain: h,
		Pos:    pos,
		Item:   name,
		Detail: invoked,
	})
}

// Skip makes the next Run of the hook called name do nothing.
func (h *Hooks) Skip(name string) {
	h.skipped[name] = true
}

// Skipped tells if a skip request for the hook is pending.
func (h *Hooks) Skipped(name string) bool {
	return h.skipped[name]
}

// ResetSkips drops all pending skip requests.
func (h *Hooks) ResetSkips() {
	clear(h.skipped)
}
