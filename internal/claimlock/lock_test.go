package claimlock

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chibox/chibox-server/internal/domain"
)

func TestKey(t *testing.T) {
	assert.Equal(t, "game:plinko:user-1", Key(domain.ActionGame, "plinko", "user-1"))
	assert.Equal(t, "upgrade:user-1", Key(domain.ActionUpgrade, "user-1"))
}

func TestMemoryLocker_Exclusive(t *testing.T) {
	ctx := context.Background()
	l := NewMemoryLocker()

	lease, err := l.Acquire(ctx, "k", time.Minute)
	require.NoError(t, err)

	_, err = l.Acquire(ctx, "k", time.Minute)
	assert.ErrorIs(t, err, domain.ErrClaimInProgress)

	require.NoError(t, lease.Release(ctx))
	again, err := l.Acquire(ctx, "k", time.Minute)
	require.NoError(t, err)
	require.NoError(t, again.Release(ctx))
}

func TestMemoryLocker_Expiry(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	l := NewMemoryLocker()
	l.clock = func() time.Time { return now }

	stale, err := l.Acquire(ctx, "k", time.Second)
	require.NoError(t, err)

	now = now.Add(2 * time.Second)
	fresh, err := l.Acquire(ctx, "k", time.Second)
	require.NoError(t, err)

	// the stale holder must not release the new claim
	require.NoError(t, stale.Release(ctx))
	_, err = l.Acquire(ctx, "k", time.Second)
	assert.ErrorIs(t, err, domain.ErrClaimInProgress)

	require.NoError(t, fresh.Release(ctx))
}

func TestWithLock_SerializesConcurrentClaims(t *testing.T) {
	ctx := context.Background()
	l := NewMemoryLocker()

	var (
		wg       sync.WaitGroup
		entered  atomic.Int32
		rejected atomic.Int32
		gate     = make(chan struct{})
	)
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := WithLock(ctx, l, "k", time.Minute, func() error {
				entered.Add(1)
				<-gate
				return nil
			})
			if errors.Is(err, domain.ErrClaimInProgress) {
				rejected.Add(1)
			}
		}()
	}

	require.Eventually(t, func() bool { return entered.Load()+rejected.Load() == 10 }, time.Second, time.Millisecond)
	close(gate)
	wg.Wait()

	assert.Equal(t, int32(1), entered.Load())
	assert.Equal(t, int32(9), rejected.Load())
}

func TestWithLock_PropagatesError(t *testing.T) {
	l := NewMemoryLocker()
	boom := errors.New("boom")

	err := WithLock(context.Background(), l, "k", time.Minute, func() error { return boom })
	assert.ErrorIs(t, err, boom)

	// released after failure
	lease, err := l.Acquire(context.Background(), "k", time.Minute)
	require.NoError(t, err)
	require.NoError(t, lease.Release(context.Background()))
}
