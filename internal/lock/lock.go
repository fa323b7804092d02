package lock

import (
	"context"
	"errors"
	"time"
)

var (
	// ErrTimeout is returned when the lock could not be acquired within maxWait.
	ErrTimeout = errors.New("lock acquire timed out")
)

// Handle represents a held lock. Release must be called on every exit path;
// releasing an already expired or stolen lock is a no-op.
type Handle interface {
	Release(ctx context.Context) error
}

// Provider hands out named, time-bounded mutual-exclusion locks.
//
// Acquire blocks for up to maxWait trying to take the lock identified by key.
// A held lock auto-expires after maxHold so that a crashed holder cannot
// lock out a key permanently. Acquire returns ErrTimeout when the wait budget
// is exhausted, or the context error if ctx is cancelled first.
type Provider interface {
	Acquire(ctx context.Context, key string, maxWait, maxHold time.Duration) (Handle, error)
}
