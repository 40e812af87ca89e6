package shortname

import (
	"context"
	"errors"
	"sync"
)

// Unlock releases a lock obtained from a Locker.
type Unlock func(ctx context.Context) error

// Locker serializes the check-then-write sequence of assignments that target
// the same field within the same scope.
type Locker interface {
	Lock(ctx context.Context, key string) (Unlock, error)
}

// LocalLocker is a per-key, in-process Locker.
type LocalLocker struct {
	mu    sync.Mutex
	locks map[string]chan struct{}
}

// NewLocalLocker creates a ready-to-use in-process locker.
func NewLocalLocker() *LocalLocker {
	return &LocalLocker{locks: make(map[string]chan struct{})}
}

// Lock blocks until the key is free or ctx is done.
func (l *LocalLocker) Lock(ctx context.Context, key string) (Unlock, error) {
	l.mu.Lock()
	ch, ok := l.locks[key]
	if !ok {
		ch = make(chan struct{}, 1)
		l.locks[key] = ch
	}
	l.mu.Unlock()

	select {
	case ch <- struct{}{}:
	case <-ctx.Done():
		return nil, errors.Join(ErrLockFailed, ctx.Err())
	}

	var once sync.Once
	return func(context.Context) error {
		once.Do(func() { <-ch })
		return nil
	}, nil
}

// lockKey identifies the lock for one binding target within one scope.
func lockKey(target string, scope Scope) string {
	return "shortname:" + target + ":" + scope.Key()
}
