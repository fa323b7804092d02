package lock

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryProviderAcquireRelease(t *testing.T) {
	p := NewMemoryProvider()
	ctx := context.Background()

	h, err := p.Acquire(ctx, "office-lock:a", 100*time.Millisecond, time.Second)
	require.NoError(t, err)

	// Same key is busy, a different key is not.
	_, err = p.Acquire(ctx, "office-lock:a", 30*time.Millisecond, time.Second)
	assert.ErrorIs(t, err, ErrTimeout)

	h2, err := p.Acquire(ctx, "office-lock:b", 30*time.Millisecond, time.Second)
	require.NoError(t, err)
	require.NoError(t, h2.Release(ctx))

	// Released key can be taken again.
	require.NoError(t, h.Release(ctx))
	h3, err := p.Acquire(ctx, "office-lock:a", 30*time.Millisecond, time.Second)
	require.NoError(t, err)
	require.NoError(t, h3.Release(ctx))
}

func TestMemoryProviderWaitsForRelease(t *testing.T) {
	p := NewMemoryProvider()
	ctx := context.Background()

	h, err := p.Acquire(ctx, "k", 50*time.Millisecond, time.Second)
	require.NoError(t, err)

	go func() {
		time.Sleep(40 * time.Millisecond)
		_ = h.Release(context.Background())
	}()

	// The waiter should get the lock once the holder releases within its budget.
	h2, err := p.Acquire(ctx, "k", 500*time.Millisecond, time.Second)
	require.NoError(t, err)
	require.NoError(t, h2.Release(ctx))
}

func TestMemoryProviderHoldExpiry(t *testing.T) {
	p := NewMemoryProvider()
	ctx := context.Background()

	stale, err := p.Acquire(ctx, "k", 50*time.Millisecond, 30*time.Millisecond)
	require.NoError(t, err)

	// After the hold budget passes, the key can be taken over.
	h, err := p.Acquire(ctx, "k", 500*time.Millisecond, time.Second)
	require.NoError(t, err)

	// A late release from the evicted holder must not free the new holder's lock.
	require.NoError(t, stale.Release(ctx))
	_, err = p.Acquire(ctx, "k", 30*time.Millisecond, time.Second)
	assert.ErrorIs(t, err, ErrTimeout)

	require.NoError(t, h.Release(ctx))
}

func TestMemoryProviderContextCancel(t *testing.T) {
	p := NewMemoryProvider()

	h, err := p.Acquire(context.Background(), "k", 50*time.Millisecond, time.Second)
	require.NoError(t, err)
	defer h.Release(context.Background())

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(20 * time.Millisecond)
		cancel()
	}()

	_, err = p.Acquire(ctx, "k", time.Minute, time.Second)
	assert.ErrorIs(t, err, context.Canceled)
}
