// Package config loads configuration structs from environment variables.
//
// It wraps github.com/joho/godotenv, which reads optional .env files into the
// process environment, and github.com/caarlos0/env/v11, which parses the
// environment into structs annotated with `env` and `envDefault` tags.
//
// # Usage
//
//	type AppConfig struct {
//		Env   string `env:"APP_ENV" envDefault:"development"`
//		Store string `env:"SHORTNAME_STORE" envDefault:"memory"`
//	}
//
//	var cfg AppConfig
//	if err := config.Load(&cfg); err != nil {
//		return err
//	}
//
// WithPrefix loads the same struct type under different variable prefixes and
// WithEnvFiles reads additional .env files. MustLoad panics on failure and is
// meant for configuration the process cannot start without.
//
// # Errors
//
// Failures are returned joined with ErrParsingConfig or ErrLoadingEnvFile and
// can be checked with errors.Is.
package config
