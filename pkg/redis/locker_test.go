package redis_test

import (
	"context"
	"os"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/shortname/pkg/redis"
	"github.com/dmitrymomot/shortname/pkg/shortname"
)

func TestLocker_UnreachableServer(t *testing.T) {
	client := goredis.NewClient(&goredis.Options{
		Addr:        "127.0.0.1:1",
		MaxRetries:  -1,
		DialTimeout: 100 * time.Millisecond,
	})
	t.Cleanup(func() { _ = client.Close() })

	locker := redis.NewLocker(client, redis.Config{})
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	unlock, err := locker.Lock(ctx, "shortname:short_name:*")
	assert.ErrorIs(t, err, shortname.ErrLockFailed)
	assert.Nil(t, unlock)
}

// Runs against a live server when REDIS_URL is set.
func TestLocker_MutualExclusion(t *testing.T) {
	url := os.Getenv("REDIS_URL")
	if url == "" || testing.Short() {
		t.Skip("REDIS_URL not set")
	}

	client, err := redis.Connect(context.Background(), redis.Config{
		ConnectionURL:  url,
		RetryAttempts:  1,
		ConnectTimeout: 2 * time.Second,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })

	locker := redis.NewLocker(client, redis.Config{
		LockTTL:       5 * time.Second,
		LockRetryWait: 5 * time.Millisecond,
		LockPrefix:    "test:" + t.Name() + ":",
	})

	var (
		inside  atomic.Int32
		overlap atomic.Bool
		wg      sync.WaitGroup
	)
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ctx := context.Background()
			unlock, err := locker.Lock(ctx, "k")
			if !assert.NoError(t, err) {
				return
			}
			if inside.Add(1) > 1 {
				overlap.Store(true)
			}
			time.Sleep(2 * time.Millisecond)
			inside.Add(-1)
			assert.NoError(t, unlock(ctx))
		}()
	}
	wg.Wait()
	assert.False(t, overlap.Load())
}

func TestLocker_PingUnreachable(t *testing.T) {
	client := goredis.NewClient(&goredis.Options{
		Addr:        "127.0.0.1:1",
		MaxRetries:  -1,
		DialTimeout: 100 * time.Millisecond,
	})
	t.Cleanup(func() { _ = client.Close() })

	err := redis.NewLocker(client, redis.Config{}).Ping(context.Background())
	assert.ErrorIs(t, err, redis.ErrHealthcheckFailed)
}
