// Package redis provides helpers for connecting to Redis with go-redis and a
// distributed shortname.Locker.
//
//   - Connect retries the initial connection within ConnectTimeout.
//   - Locker serializes short-name assignment across processes: the
//     "is this value free" check and the write happen under one lock per
//     target field and scope. Locker.Ping reports whether Redis answers.
//
// Configuration is described by Config, populated from environment variables
// via github.com/caarlos0/env.
//
// # Usage
//
//	client, err := redis.Connect(ctx, cfg)
//	if err != nil {
//	    return err
//	}
//	defer client.Close()
//
//	assigner := shortname.New(store, shortname.NewBinding(),
//	    shortname.WithLocker(redis.NewLocker(client, cfg)),
//	)
//
// Locks are plain SET NX keys with a TTL and a random token; release runs a
// Lua script that deletes the key only while it still holds that token.
// Releasing a lock that already expired returns ErrLockNotHeld.
package redis
