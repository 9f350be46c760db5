package claimlock

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/chibox/chibox-server/internal/domain"
	"github.com/chibox/chibox-server/internal/logger"
)

// Lease is a held claim. Release is safe to call more than once.
type Lease interface {
	Release(ctx context.Context) error
}

// Locker grants exclusive short-lived claims on a key.
// Acquire returns domain.ErrClaimInProgress when the key is already held.
type Locker interface {
	Acquire(ctx context.Context, key string, ttl time.Duration) (Lease, error)
}

// Key builds the lock key for an action performed by a user
func Key(action string, parts ...string) string {
	return action + KeySeparator + strings.Join(parts, KeySeparator)
}

// WithLock runs fn while holding the claim for key
func WithLock(ctx context.Context, l Locker, key string, ttl time.Duration, fn func() error) error {
	lease, err := l.Acquire(ctx, key, ttl)
	if err != nil {
		if errors.Is(err, domain.ErrClaimInProgress) {
			logger.FromContext(ctx).Debug(LogMsgLockContended, "key", key)
		}
		return err
	}
	defer func() {
		if rerr := lease.Release(context.WithoutCancel(ctx)); rerr != nil {
			logger.FromContext(ctx).Warn(LogMsgReleaseFailed, "key", key, "error", rerr)
		}
	}()

	return fn()
}
