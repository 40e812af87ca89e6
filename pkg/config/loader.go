package config

import (
	"errors"
	"fmt"
	"sync"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

var defaultEnvLoaded sync.Once

type options struct {
	prefix   string
	envFiles []string
}

// Option configures Load.
type Option func(*options)

// WithPrefix prepends prefix to every env tag of the struct, so the same
// config type can be loaded for several bindings, e.g. "STAFF_" and "GUEST_".
func WithPrefix(prefix string) Option {
	return func(o *options) {
		o.prefix = prefix
	}
}

// WithEnvFiles loads the given .env files before parsing. Unlike the default
// .env file, missing files are an error. Variables already present in the
// process environment win.
func WithEnvFiles(files ...string) Option {
	return func(o *options) {
		o.envFiles = append(o.envFiles, files...)
	}
}

// Load parses environment variables into v using `env` struct tags.
//
// The default .env file in the working directory is loaded once per process
// when present.
//
// Example:
//
//	type StoreConfig struct {
//		Table  string `env:"TABLE" envDefault:"people"`
//		Source string `env:"SOURCE" envDefault:"name"`
//	}
//
//	var cfg StoreConfig
//	err := config.Load(&cfg, config.WithPrefix("SHORTNAME_"))
func Load[T any](v *T, opts ...Option) error {
	if v == nil {
		return ErrNilPointer
	}

	o := &options{}
	for _, opt := range opts {
		opt(o)
	}

	defaultEnvLoaded.Do(func() {
		// The .env file is optional.
		_ = godotenv.Load()
	})

	if len(o.envFiles) > 0 {
		if err := godotenv.Load(o.envFiles...); err != nil {
			return errors.Join(ErrLoadingEnvFile, err)
		}
	}

	if err := env.ParseWithOptions(v, env.Options{Prefix: o.prefix}); err != nil {
		return errors.Join(ErrParsingConfig, err)
	}
	return nil
}

// MustLoad works like Load but panics if configuration loading fails.
func MustLoad[T any](v *T, opts ...Option) {
	if err := Load(v, opts...); err != nil {
		panic(fmt.Sprintf("failed to load required configuration: %v", err))
	}
}
