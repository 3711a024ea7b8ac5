// Package lock provides the exclusive per-account lock used by the transfer
// coordinator. Acquisition is always bounded by a timeout.
package lock

import (
	"context"
	"errors"
	"sync"
	"time"

	"golang.org/x/sync/semaphore"
)

// ErrTimeout is returned when the lock could not be taken in time.
var ErrTimeout = errors.New("lock acquisition timed out")

// Release gives the lock back. Calling it more than once is a no-op.
type Release func()

// Lock is an exclusive, non-reentrant lock with timed acquisition.
type Lock struct {
	sem *semaphore.Weighted
}

// New returns an unlocked Lock.
func New() *Lock {
	return &Lock{sem: semaphore.NewWeighted(1)}
}

// TryAcquire waits up to timeout for the lock. A non-positive timeout only
// succeeds if the lock is free right now.
func (l *Lock) TryAcquire(ctx context.Context, timeout time.Duration) (Release, error) {
	if timeout <= 0 {
		if !l.sem.TryAcquire(1) {
			return nil, ErrTimeout
		}
		return l.release(), nil
	}

	waitCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	if err := l.sem.Acquire(waitCtx, 1); err != nil {
		// Parent cancellation wins over our own deadline.
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, ErrTimeout
	}
	return l.release(), nil
}

func (l *Lock) release() Release {
	var once sync.Once
	return func() {
		once.Do(func() { l.sem.Release(1) })
	}
}
