package model

import (
	"github.com/go-logr/logr"

	"github.com/cwbudde/algo-etc/optics/specio"
)

// Config holds collaborators shared by the model constructors.
type Config struct {
	Logger  logr.Logger
	Locator specio.Locator
}

// Option mutates a Config.
type Option func(*Config)

// DefaultConfig discards logs and opens files relative to the working
// directory.
func DefaultConfig() Config {
	return Config{Logger: logr.Discard()}
}

// WithLogger sets the logger.
func WithLogger(l logr.Logger) Option {
	return func(cfg *Config) {
		cfg.Logger = l
	}
}

// WithLocator sets the directories data files are searched in.
func WithLocator(l specio.Locator) Option {
	return func(cfg *Config) {
		cfg.Locator = l
	}
}

// ApplyOptions applies zero or more options to the default config.
func ApplyOptions(opts ...Option) Config {
	cfg := DefaultConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	return cfg
}
