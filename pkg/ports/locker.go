package ports

import (
	"context"
	"time"
)

// UnlockFunc is a function that releases a distributed lock.
type UnlockFunc func(ctx context.Context) error

// DistributedLocker coordinates access to one (session, tab) entry across
// multiple server replicas. In-process serialization alone is enough for a
// single instance; deployments sharing an external store opt in to this.
type DistributedLocker interface {
	// Lock acquires a distributed lock for the given key.
	// It blocks until the lock is acquired or the context is canceled.
	// The returned UnlockFunc MUST be called to release the lock.
	Lock(ctx context.Context, key string, ttl time.Duration) (UnlockFunc, error)
}
