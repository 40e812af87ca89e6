package redis

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/dmitrymomot/shortname/pkg/shortname"
)

// releaseScript deletes the key only while it still holds our token, so an
// expired lock re-acquired by someone else is never released by us.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// Locker is a shortname.Locker shared by every process talking to the same
// Redis. Locks expire after a TTL so a crashed holder cannot block forever.
type Locker struct {
	client    redis.UniversalClient
	ttl       time.Duration
	retryWait time.Duration
	prefix    string
}

var _ shortname.Locker = (*Locker)(nil)

// NewLocker creates a Locker using the lock settings of cfg.
func NewLocker(client redis.UniversalClient, cfg Config) *Locker {
	l := &Locker{
		client:    client,
		ttl:       cfg.LockTTL,
		retryWait: cfg.LockRetryWait,
		prefix:    cfg.LockPrefix,
	}
	if l.ttl <= 0 {
		l.ttl = 30 * time.Second
	}
	if l.retryWait <= 0 {
		l.retryWait = 50 * time.Millisecond
	}
	return l
}

// Lock polls SET NX until the key is acquired or ctx is done.
func (l *Locker) Lock(ctx context.Context, key string) (shortname.Unlock, error) {
	key = l.prefix + key
	token := uuid.NewString()

	for {
		ok, err := l.client.SetNX(ctx, key, token, l.ttl).Result()
		if err != nil {
			return nil, errors.Join(shortname.ErrLockFailed, err)
		}
		if ok {
			return l.unlock(key, token), nil
		}

		select {
		case <-ctx.Done():
			return nil, errors.Join(shortname.ErrLockFailed, ctx.Err())
		case <-time.After(l.retryWait):
		}
	}
}

// Ping checks that Redis answers.
func (l *Locker) Ping(ctx context.Context) error {
	if err := l.client.Ping(ctx).Err(); err != nil {
		return errors.Join(ErrHealthcheckFailed, err)
	}
	return nil
}

func (l *Locker) unlock(key, token string) shortname.Unlock {
	return func(ctx context.Context) error {
		n, err := releaseScript.Run(ctx, l.client, []string{key}, token).Int()
		if err != nil {
			return err
		}
		if n == 0 {
			return ErrLockNotHeld
		}
		return nil
	}
}
