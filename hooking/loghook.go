package hooking

import (
	"fmt"
	"log/slog"
)

// LogHook writes every hook invocation to a structured logger at debug
// level.
type LogHook struct {
	logger *slog.Logger
}

// NewLogHook creates a LogHook. A nil logger means slog.Default().
func NewLogHook(logger *slog.Logger) *LogHook {
	if logger == nil {
		logger = slog.Default()
	}

	return &LogHook{logger: logger}
}

// Func logs the hook context.
func (h *LogHook) Func(ctx HookCtx) {
	attrs := []any{
		slog.String("pos", ctx.Pos.Name),
		slog.String("item", fmt.Sprint(ctx.Item)),
	}

	if named, ok := ctx.Domain.(interface{ Name() string }); ok {
		attrs = append(attrs, slog.String("domain", named.Name()))
	}

	if ctx.Detail != nil {
		attrs = append(attrs, slog.String("detail", fmt.Sprint(ctx.Detail)))
	}

	h.logger.Debug("hook", attrs...)
}
