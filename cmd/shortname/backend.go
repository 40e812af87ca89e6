package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/dmitrymomot/shortname/pkg/config"
	"github.com/dmitrymomot/shortname/pkg/logger"
	"github.com/dmitrymomot/shortname/pkg/mongo"
	"github.com/dmitrymomot/shortname/pkg/pg"
	"github.com/dmitrymomot/shortname/pkg/redis"
	"github.com/dmitrymomot/shortname/pkg/shortname"
)

// backend is an opened store plus the locker guarding it.
type backend struct {
	store   shortname.Store
	locker  shortname.Locker
	closers []func()
}

// pinger is implemented by stores and lockers talking to a server.
type pinger interface {
	Ping(ctx context.Context) error
}

func (b *backend) Close() {
	for i := len(b.closers) - 1; i >= 0; i-- {
		b.closers[i]()
	}
}

func openBackend(ctx context.Context, cfg appConfig, log *slog.Logger) (*backend, error) {
	b := &backend{}

	if err := b.openStore(ctx, cfg, log); err != nil {
		b.Close()
		return nil, err
	}
	if err := b.openLocker(ctx, cfg); err != nil {
		b.Close()
		return nil, err
	}

	log.LogAttrs(ctx, slog.LevelDebug, "backend ready",
		logger.Store(cfg.Store),
		slog.String("lock", cfg.Lock),
	)
	return b, nil
}

func (b *backend) openStore(ctx context.Context, cfg appConfig, log *slog.Logger) error {
	switch cfg.Store {
	case storeMemory:
		b.store = shortname.NewMemoryStore()
		return nil

	case storePostgres:
		var pgCfg pg.Config
		if err := config.Load(&pgCfg); err != nil {
			return err
		}
		pool, err := pg.Connect(ctx, pgCfg)
		if err != nil {
			return err
		}
		b.closers = append(b.closers, pool.Close)

		if err := pg.Migrate(ctx, pool, pgCfg, log.With(logger.Component("migrations"))); err != nil {
			return err
		}

		store, err := pg.NewEntityStore(pool, cfg.Table,
			[]string{cfg.Source, cfg.Target, scopeField},
			pg.WithOrderBy("created_at"),
		)
		if err != nil {
			return err
		}
		b.store = store
		return nil

	case storeMongo:
		var mongoCfg mongo.Config
		if err := config.Load(&mongoCfg); err != nil {
			return err
		}
		coll, err := mongo.NewCollection(ctx, mongoCfg)
		if err != nil {
			return err
		}
		b.closers = append(b.closers, func() {
			if err := coll.Database().Client().Disconnect(context.WithoutCancel(ctx)); err != nil {
				log.LogAttrs(ctx, slog.LevelWarn, "failed to disconnect from mongo", logger.Error(err))
			}
		})
		b.store = mongo.NewEntityStore(coll)
		return nil
	}

	return fmt.Errorf("%w: %q", ErrUnknownStore, cfg.Store)
}

func (b *backend) openLocker(ctx context.Context, cfg appConfig) error {
	switch cfg.Lock {
	case lockLocal:
		b.locker = shortname.NewLocalLocker()
		return nil

	case lockRedis:
		var redisCfg redis.Config
		if err := config.Load(&redisCfg); err != nil {
			return err
		}
		client, err := redis.Connect(ctx, redisCfg)
		if err != nil {
			return err
		}
		b.closers = append(b.closers, func() { _ = client.Close() })
		b.locker = redis.NewLocker(client, redisCfg)
		return nil
	}

	return fmt.Errorf("%w: %q", ErrUnknownLocker, cfg.Lock)
}

// check pings the store and the locker when they talk to a server.
func (b *backend) check(ctx context.Context) error {
	var errs []error
	for _, c := range []any{b.store, b.locker} {
		if p, ok := c.(pinger); ok {
			if err := p.Ping(ctx); err != nil {
				errs = append(errs, err)
			}
		}
	}
	return errors.Join(errs...)
}
