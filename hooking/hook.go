// Package hooking lets observers watch what the harness does: messages
// moving through channels, preparations being resolved, lifecycle hooks
// firing.
package hooking

// HookPos names a point where a harness part reports to its hooks, such as
// a channel push or a finished resolution.
type HookPos struct {
	Name string
}

// HookCtx describes one report.
type HookCtx struct {
	// Domain is the part that reports: a channel, the resolver or the
	// lifecycle hooks.
	Domain Hookable

	Pos *HookPos

	// Item is what the report is about. Channels pass a copy of the pushed or
	// popped message, or the number of dropped messages on clear. The
	// resolver passes the requested transition key and lifecycle hooks pass
	// the hook name.
	Item interface{}

	// Detail qualifies the item. The resolver passes the tier that matched
	// and lifecycle hooks pass whether the hook was invoked. Channels leave it
	// nil.
	Detail interface{}
}

// Hookable defines an object that accept Hooks.
type Hookable interface {
	// AcceptHook registers a hook.
	AcceptHook(hook Hook)

	// NumHooks returns the number of hooks registered.
	NumHooks() int

	// Hooks returns all the hooks registered.
	Hooks() []Hook
}

// Hook is a short piece of program that can be invoked by a hookable object.
type Hook interface {
	// Func determines what to do if hook is invoked.
	Func(ctx HookCtx)
}

// HookFunc adapts a plain function to the Hook interface. Since functions are
// not comparable, a HookFunc must be registered through a pointer if it may
// be registered more than once.
type HookFunc func(ctx HookCtx)

// Func calls f.
func (f HookFunc) Func(ctx HookCtx) {
	f(ctx)
}

// A HookableBase provides some utility function for other type that implement
// the Hookable interface.
type HookableBase struct {
	hookList []Hook
}

// NumHooks returns the number of hooks registered.
func (h *HookableBase) NumHooks() int {
	return len(h.hookList)
}

// Hooks returns all the hooks registered.
func (h *HookableBase) Hooks() []Hook {
	return h.hookList
}

// AcceptHook register a hook.
func (h *HookableBase) AcceptHook(hook Hook) {
	h.mustNotHaveDuplicatedHook(hook)
	h.hookList = append(h.hookList, hook)
}

func (h *HookableBase) mustNotHaveDuplicatedHook(hook Hook) {
	if _, isFunc := hook.(HookFunc); isFunc {
		return
	}

	for _, existing := range h.hookList {
		if _, isFunc := existing.(HookFunc); isFunc {
			continue
		}

		if existing == hook {
			panic("duplicated hook")
		}
	}
}

// InvokeHook triggers the register Hooks.
func (h *HookableBase) InvokeHook(ctx HookCtx) {
	for _, hook := range h.hookList {
		hook.Func(ctx)
	}
}
