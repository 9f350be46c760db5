package claimlock

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/chibox/chibox-server/internal/domain"
)

var releaseScript = redis.NewScript(scriptRelease)

// RedisLocker implements Locker with SET NX PX and a token-checked delete
type RedisLocker struct {
	client redis.UniversalClient
}

// NewRedisLocker creates a Locker backed by Redis
func NewRedisLocker(client redis.UniversalClient) *RedisLocker {
	return &RedisLocker{client: client}
}

// Acquire sets the key if absent. The random token guarantees only the holder can release it.
func (l *RedisLocker) Acquire(ctx context.Context, key string, ttl time.Duration) (Lease, error) {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	token := uuid.NewString()
	ok, err := l.client.SetNX(ctx, KeyPrefix+key, token, ttl).Result()
	if err != nil {
		return nil, fmt.Errorf(ErrMsgAcquireFailed, err)
	}
	if !ok {
		return nil, domain.ErrClaimInProgress
	}
	return &redisLease{client: l.client, key: KeyPrefix + key, token: token}, nil
}

type redisLease struct {
	client redis.UniversalClient
	key    string
	token  string
}

func (r *redisLease) Release(ctx context.Context) error {
	if err := releaseScript.Run(ctx, r.client, []string{r.key}, r.token).Err(); err != nil && err != redis.Nil {
		return fmt.Errorf(ErrMsgReleaseFailed, err)
	}
	return nil
}
