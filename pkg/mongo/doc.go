// Package mongo provides MongoDB connection management and a
// shortname.Store backed by a collection.
//
// Config is populated from environment variables via github.com/caarlos0/env.
// New connects with retries and a ping; NewCollection returns the configured
// records collection. EntityStore.Ping reports whether the deployment answers.
//
// # Usage
//
//	coll, err := mongo.NewCollection(ctx, cfg)
//	if err != nil {
//		return err
//	}
//
//	store := mongo.NewEntityStore(coll)
//	assigner := shortname.New(store, shortname.NewBinding())
//	n, err := assigner.AdjustAll(ctx, nil)
//
// Documents use the record ID as _id; every other string field is a record
// field. A batch reads the scope with a single Find, so concurrent writers
// during a batch are not isolated the way a single SQL statement is; callers
// needing that should serialize batches with a shortname.Locker.
package mongo
