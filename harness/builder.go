package harness

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/sarchlab/momos/channel"
	"github.com/sarchlab/momos/config"
	"github.com/sarchlab/momos/hooking"
	"github.com/sarchlab/momos/idgen"
	"github.com/sarchlab/momos/lifecycle"
	"github.com/sarchlab/momos/naming"
	"github.com/sarchlab/momos/recording"
	"github.com/sarchlab/momos/registry"
	"github.com/sarchlab/momos/timing"
	"github.com/sarchlab/momos/transition"
)

// A Registrar declares the hooks, preparations and state reader of one test
// module against a fixture.
type Registrar interface {
	Register(f *Fixture) error
}

// RegistrarFunc adapts a function to the Registrar interface.
type RegistrarFunc func(f *Fixture) error

// Register calls fn.
func (fn RegistrarFunc) Register(f *Fixture) error {
	return fn(f)
}

// Builder can build fixtures.
type Builder struct {
	logger          *slog.Logger
	clock           timing.Clock
	recorder        recording.Recorder
	channelCapacity int
	runIDs          idgen.Generator
	registrars      []Registrar
}

// WithLogger sets the logger shared by every part of the fixture.
func (b Builder) WithLogger(logger *slog.Logger) Builder {
	b.logger = logger
	return b
}

// WithClock sets the time source. The default is a manual clock at zero.
func (b Builder) WithClock(clock timing.Clock) Builder {
	b.clock = clock
	return b
}

// WithRecorder records every step into r.
func (b Builder) WithRecorder(r recording.Recorder) Builder {
	b.recorder = r
	return b
}

// WithChannelCapacity bounds the channels of the link.
func (b Builder) WithChannelCapacity(n int) Builder {
	b.channelCapacity = n
	return b
}

// WithRunIDGenerator sets where run IDs come from.
func (b Builder) WithRunIDGenerator(g idgen.Generator) Builder {
	b.runIDs = g
	return b
}

// WithRegistrar appends registrars. They run in order when the fixture is
// built.
func (b Builder) WithRegistrar(registrars ...Registrar) Builder {
	all := make([]Registrar, 0, len(b.registrars)+len(registrars))
	all = append(all, b.registrars...)
	all = append(all, registrars...)
	b.registrars = all

	return b
}

// Build creates a fixture called name and runs all registrars against it.
func (b Builder) Build(name string) (*Fixture, error) {
	naming.NameMustBeValid(name)

	logger := b.logger
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With(slog.String("fixture", name))

	clock := b.clock
	if clock == nil {
		clock = timing.NewManualClock(0)
	}

	runIDs := b.runIDs
	if runIDs == nil {
		runIDs = idgen.NewGlobal()
	}

	reg := registry.Builder{}.WithLogger(logger).Build()

	f := &Fixture{
		NamedBase: naming.MakeNamedBase(name),
		logger:    logger,
		clock:     clock,
		recorder:  b.recorder,
		runID:     runIDs.Generate(),
		registry:  reg,
		resolver:  transition.NewResolver(reg),
		hooks:     lifecycle.New(reg),
		link: channel.LinkBuilder{}.
			WithClock(clock).
			WithCapacity(b.channelCapacity).
			Build(name + ".Link"),
	}

	logHook := hooking.NewLogHook(logger)
	f.resolver.AcceptHook(logHook)
	f.hooks.AcceptHook(logHook)
	f.link.TX().AcceptHook(logHook)
	f.link.RX().AcceptHook(logHook)

	for i, r := range b.registrars {
		if err := r.Register(f); err != nil {
			return nil, fmt.Errorf("fixture %s: registrar %d: %w", name, i, err)
		}
	}

	logger.Debug("fixture built",
		slog.String("run", f.runID),
		slog.Int("components", reg.Len()))

	return f, nil
}

// BuilderFromConfig creates a builder configured by cfg. Log output goes to
// stderr at the configured level.
func BuilderFromConfig(cfg config.Config) (Builder, error) {
	level, err := cfg.SlogLevel()
	if err != nil {
		return Builder{}, err
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr,
		&slog.HandlerOptions{Level: level}))

	b := Builder{}.
		WithLogger(logger).
		WithChannelCapacity(cfg.ChannelCapacity)

	if cfg.ManualClock {
		b = b.WithClock(timing.NewManualClock(0))
	} else {
		b = b.WithClock(timing.NewWallClock())
	}

	if cfg.Record {
		r, err := recording.NewSQLiteRecorder(cfg.RecordPath, logger)
		if err != nil {
			return Builder{}, err
		}

		b = b.WithRecorder(r)
	}

	return b, nil
}
