// Package pg provides PostgreSQL helpers built on the pgx/v5 driver and a
// shortname.Store implementation backed by a table.
//
// # Architecture
//
//   - Config – env-tagged connection, pool and migration settings, loaded
//     with github.com/caarlos0/env.
//   - Connect – opens a *pgxpool.Pool, retrying with linear back-off until
//     the database answers a ping.
//   - Migrate – applies goose migrations, either from MigrationsPath or the
//     embedded set that creates the people table.
//   - EntityStore – reads and writes records for short-name assignment. All
//     issues a single SELECT so a batch sees one consistent snapshot. Ping
//     verifies the records table is reachable.
//
// # Usage
//
//	var cfg pg.Config
//	if err := config.Load(&cfg); err != nil {
//	    return err
//	}
//
//	pool, err := pg.Connect(ctx, cfg)
//	if err != nil {
//	    return err
//	}
//	defer pool.Close()
//
//	if err := pg.Migrate(ctx, pool, cfg, slog.Default()); err != nil {
//	    return err
//	}
//
//	store, err := pg.NewEntityStore(pool, "people",
//	    []string{"name", "short_name", "scope"},
//	    pg.WithOrderBy("created_at"),
//	)
//	if err != nil {
//	    return err
//	}
//	assigner := shortname.New(store, shortname.NewBinding())
//	n, err := assigner.AdjustAll(ctx, shortname.Scope{"scope": "team-a"})
//
// # Error Handling
//
// IsNotFoundError and IsDuplicateKeyError classify pgx errors. Store query
// failures are joined with ErrQueryFailed.
package pg
