package main

import (
	"log/slog"
	"os"

	"github.com/dmitrymomot/shortname/pkg/config"
	"github.com/dmitrymomot/shortname/pkg/logger"
)

const (
	storeMemory   = "memory"
	storePostgres = "postgres"
	storeMongo    = "mongo"

	lockLocal = "local"
	lockRedis = "redis"

	// scopeField is the record field the --scope flag filters on.
	scopeField = "scope"
)

type appConfig struct {
	Env  string `env:"APP_ENV" envDefault:"development"`
	Name string `env:"APP_NAME" envDefault:"shortname"`

	Store  string `env:"SHORTNAME_STORE" envDefault:"memory"`      // memory, postgres or mongo
	Table  string `env:"SHORTNAME_TABLE" envDefault:"people"`      // Postgres table holding the records
	Source string `env:"SHORTNAME_SOURCE" envDefault:"name"`       // field holding the full name
	Target string `env:"SHORTNAME_TARGET" envDefault:"short_name"` // field receiving the short name
	Lock   string `env:"SHORTNAME_LOCK" envDefault:"local"`        // local or redis

	AutoAdjust bool `env:"SHORTNAME_AUTO_ADJUST" envDefault:"false"`
}

func loadConfig() (appConfig, error) {
	var cfg appConfig
	if err := config.Load(&cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func newLogger(cfg appConfig) *slog.Logger {
	log := logger.New(
		logger.WithEnvironment(cfg.Env, cfg.Name),
		logger.WithOutput(os.Stderr),
		logger.WithContextExtractors(logger.RunIDExtractor),
	)
	logger.SetAsDefault(log)
	return log
}
