// Package harness provides the test fixture that owns one registry, one
// simulated link and one clock, and drives an FSM one transition at a time.
package harness

import (
	"io"
	"log/slog"

	"github.com/sarchlab/momos/arg"
	"github.com/sarchlab/momos/channel"
	"github.com/sarchlab/momos/lifecycle"
	"github.com/sarchlab/momos/naming"
	"github.com/sarchlab/momos/recording"
	"github.com/sarchlab/momos/registry"
	"github.com/sarchlab/momos/state"
	"github.com/sarchlab/momos/timing"
	"github.com/sarchlab/momos/transition"
)

// A Fixture is the context of one independent test run. Fixtures never share
// state, so several can be used in parallel.
type Fixture struct {
	naming.NamedBase

	logger   *slog.Logger
	clock    timing.Clock
	recorder recording.Recorder
	runID    string

	registry *registry.Registry
	resolver *transition.Resolver
	hooks    *lifecycle.Hooks
	link     *channel.Link

	caseID    string
	stepIndex int
}

// Registry returns the registry of the fixture.
func (f *Fixture) Registry() *registry.Registry {
	return f.registry
}

// Resolver returns the preparation resolver.
func (f *Fixture) Resolver() *transition.Resolver {
	return f.resolver
}

// Hooks returns the lifecycle hooks.
func (f *Fixture) Hooks() *lifecycle.Hooks {
	return f.hooks
}

// Link returns the simulated interface.
func (f *Fixture) Link() *channel.Link {
	return f.link
}

// Clock returns the time source.
func (f *Fixture) Clock() timing.Clock {
	return f.clock
}

// Logger returns the fixture logger.
func (f *Fixture) Logger() *slog.Logger {
	return f.logger
}

// RunID identifies this fixture's run in recordings.
func (f *Fixture) RunID() string {
	return f.runID
}

// Reset clears both directions of the link and every pending skip request.
// Call it between independent test cases.
func (f *Fixture) Reset() {
	f.link.Reset()
	f.hooks.ResetSkips()
}

// Prepare resolves and runs the preparation for k.
func (f *Fixture) Prepare(k transition.Key, in arg.Value) bool {
	return f.resolver.Run(k, in)
}

// Begin starts a test case: the fixture is reset and the setup hook runs.
func (f *Fixture) Begin(caseID string) {
	f.Reset()
	f.caseID = caseID
	f.stepIndex = 0

	f.logger.Debug("case started", slog.String("case", caseID))
	f.hooks.Run(lifecycle.HookSetup)
}

// End finishes the current test case by running the teardown hook and
// flushing the recorder.
func (f *Fixture) End() error {
	f.hooks.Run(lifecycle.HookTeardown)
	f.logger.Debug("case finished", slog.String("case", f.caseID))

	if f.recorder == nil {
		return nil
	}

	return f.recorder.Flush()
}

// Close flushes the recorder and releases it if it holds resources, such as
// the database of a SQLite recorder. The fixture must not be used afterwards.
func (f *Fixture) Close() error {
	if f.recorder == nil {
		return nil
	}

	if c, ok := f.recorder.(io.Closer); ok {
		return c.Close()
	}

	return f.recorder.Flush()
}

// ReadState reads the current FSM state through the registered state reader.
func ReadState[S state.Code](f *Fixture) (S, bool) {
	return state.Read[S](f.registry)
}
