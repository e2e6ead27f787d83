// Package config loads harness settings from the environment and .env files.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

var (
	// ErrLoadingEnvFile is returned when an explicitly named .env file cannot
	// be loaded.
	ErrLoadingEnvFile = errors.New("failed to load env file")

	// ErrParsingConfig is returned when environment variables cannot be
	// parsed into the config struct.
	ErrParsingConfig = errors.New("failed to parse environment variables into config")

	// ErrInvalidLogLevel is returned for unknown log level names.
	ErrInvalidLogLevel = errors.New("invalid log level")
)

// Config holds the settings of a harness fixture.
type Config struct {
	// LogLevel is one of debug, info, warn and error.
	LogLevel string `env:"MOMOS_LOG_LEVEL" envDefault:"info"`

	// Record turns on step recording into a SQLite database.
	Record bool `env:"MOMOS_RECORD" envDefault:"false"`

	// RecordPath is the database file. Empty means a generated name.
	RecordPath string `env:"MOMOS_RECORD_PATH"`

	// ManualClock selects a manually advanced clock instead of wall time.
	ManualClock bool `env:"MOMOS_MANUAL_CLOCK" envDefault:"true"`

	// ChannelCapacity bounds the simulated channels. Zero is unbounded.
	ChannelCapacity int `env:"MOMOS_CHANNEL_CAPACITY" envDefault:"0"`
}

// Load reads the given .env files, or the default .env if none is given,
// and parses the environment into a Config. A missing default .env is not an
// error; a missing named file is. Variables already set in the environment
// take precedence over .env files.
func Load(files ...string) (Config, error) {
	if len(files) == 0 {
		_ = godotenv.Load()
	} else if err := godotenv.Load(files...); err != nil {
		return Config{}, errors.Join(ErrLoadingEnvFile, err)
	}

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, errors.Join(ErrParsingConfig, err)
	}

	if cfg.ChannelCapacity < 0 {
		return Config{}, fmt.Errorf("%w: channel capacity %d is negative",
			ErrParsingConfig, cfg.ChannelCapacity)
	}

	return cfg, nil
}

// MustLoad works like Load but panics on failure.
func MustLoad(files ...string) Config {
	cfg, err := Load(files...)
	if err != nil {
		panic(fmt.Sprintf("failed to load configuration: %v", err))
	}

	return cfg
}

// SlogLevel converts LogLevel into a slog level.
func (c Config) SlogLevel() (slog.Level, error) {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("%w: %q", ErrInvalidLogLevel, c.LogLevel)
	}
}
