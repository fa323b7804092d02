package lock

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// releaseScript deletes the key only if it still holds our token, so a lock
// that expired and was re-acquired by someone else is never released by us.
const releaseScript = `
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`

// redisProvider implements Provider on a Redis instance using SET NX PX.
// The key TTL is the hold budget; acquisition polls until maxWait runs out.
type redisProvider struct {
	client        *redis.Client
	retryInterval time.Duration
}

// NewRedisProvider creates a Redis-backed lock provider.
func NewRedisProvider(client *redis.Client) Provider {
	return &redisProvider{
		client:        client,
		retryInterval: 50 * time.Millisecond,
	}
}

func (p *redisProvider) Acquire(ctx context.Context, key string, maxWait, maxHold time.Duration) (Handle, error) {
	token := uuid.NewString()
	deadline := time.Now().Add(maxWait)

	for {
		ok, err := p.client.SetNX(ctx, key, token, maxHold).Result()
		if err != nil {
			return nil, fmt.Errorf("redis lock acquire failed: %w", err)
		}
		if ok {
			return &redisHandle{client: p.client, key: key, token: token}, nil
		}

		if !time.Now().Before(deadline) {
			return nil, ErrTimeout
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(p.retryInterval):
		}
	}
}

type redisHandle struct {
	client *redis.Client
	key    string
	token  string
}

func (h *redisHandle) Release(ctx context.Context) error {
	if err := h.client.Eval(ctx, releaseScript, []string{h.key}, h.token).Err(); err != nil {
		return fmt.Errorf("redis lock release failed: %w", err)
	}
	return nil
}
