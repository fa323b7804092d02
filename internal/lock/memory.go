package lock

import (
	"context"
	"sync"
	"time"
)

// memoryProvider is an in-process Provider backed by a map of held keys.
// Suitable for single-instance deployments; use the Redis provider when the
// API runs on more than one node.
type memoryProvider struct {
	mu   sync.Mutex
	held map[string]memEntry
	seq  uint64

	retryInterval time.Duration
	now           func() time.Time
}

type memEntry struct {
	token     uint64
	expiresAt time.Time
}

// NewMemoryProvider creates an in-process lock provider.
func NewMemoryProvider() Provider {
	return &memoryProvider{
		held:          make(map[string]memEntry),
		retryInterval: 10 * time.Millisecond,
		now:           time.Now,
	}
}

func (p *memoryProvider) Acquire(ctx context.Context, key string, maxWait, maxHold time.Duration) (Handle, error) {
	deadline := p.now().Add(maxWait)

	for {
		if h, ok := p.tryAcquire(key, maxHold); ok {
			return h, nil
		}

		if !p.now().Before(deadline) {
			return nil, ErrTimeout
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(p.retryInterval):
		}
	}
}

// tryAcquire takes the lock if it is free or its holder's hold budget has
// expired. Expired entries are simply overwritten; the stale handle's token
// no longer matches, so its late Release cannot drop the new holder.
func (p *memoryProvider) tryAcquire(key string, maxHold time.Duration) (Handle, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if entry, ok := p.held[key]; ok && p.now().Before(entry.expiresAt) {
		return nil, false
	}

	p.seq++
	token := p.seq
	p.held[key] = memEntry{token: token, expiresAt: p.now().Add(maxHold)}

	return &memHandle{provider: p, key: key, token: token}, true
}

type memHandle struct {
	provider *memoryProvider
	key      string
	token    uint64
}

func (h *memHandle) Release(_ context.Context) error {
	h.provider.mu.Lock()
	defer h.provider.mu.Unlock()

	if entry, ok := h.provider.held[h.key]; ok && entry.token == h.token {
		delete(h.provider.held, h.key)
	}
	return nil
}
