package worker

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chibox/chibox-server/internal/domain"
	"github.com/chibox/chibox-server/internal/event"
	"github.com/chibox/chibox-server/internal/minigame"
	"github.com/chibox/chibox-server/internal/repository/memory"
	"github.com/chibox/chibox-server/internal/testing/leaktest"
)

func TestDailyResetWorker_RunOnce(t *testing.T) {
	clock := minigame.DefaultResetClock()
	// 10:00 MSK on Oct 17, so the game day began at 16:00 MSK on Oct 16.
	now := time.Date(2026, 10, 17, 7, 0, 0, 0, time.UTC)
	dayStart := clock.DayStart(now)

	store := memory.New()
	store.PutAttempt(domain.AttemptRecord{UserID: "u1", Game: domain.GamePlinko, DayStart: dayStart.Add(-24 * time.Hour), Used: 3, WonToday: true})
	store.PutAttempt(domain.AttemptRecord{UserID: "u2", Game: domain.GameSafe, DayStart: dayStart, Used: 1})

	bus := event.NewMemoryBus()
	var published []domain.DailyResetPayload
	bus.Subscribe(event.DailyReset, func(_ context.Context, evt event.Event) error {
		p, err := event.DecodePayload[domain.DailyResetPayload](evt.Payload)
		published = append(published, p)
		return err
	})

	w := NewDailyResetWorker(store, bus, clock, NewPool(1, 1, time.Second))
	w.now = func() time.Time { return now }

	affected, err := w.RunOnce(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(1), affected)

	require.Len(t, published, 1)
	assert.Equal(t, dayStart.Unix(), published[0].DayStart)
	assert.Equal(t, int64(1), published[0].RecordsAffected)

	rec, err := store.GetAttempt(context.Background(), "u1", domain.GamePlinko)
	require.NoError(t, err)
	assert.Equal(t, 0, rec.Used)
	assert.False(t, rec.WonToday)

	rec, err = store.GetAttempt(context.Background(), "u2", domain.GameSafe)
	require.NoError(t, err)
	assert.Equal(t, 1, rec.Used, "current-day record untouched")
}

func TestDailyResetWorker_Schedule(t *testing.T) {
	leaktest.CheckNoGoroutineLeak(t, func() {
		pool := NewPool(1, 1, time.Second)
		pool.Start()
		w := NewDailyResetWorker(memory.New(), nil, minigame.DefaultResetClock(), pool)
		assert.Equal(t, "0 16 * * *", w.Spec())

		require.NoError(t, w.Start())
		entries := w.cron.Entries()
		require.Len(t, entries, 1)
		next := entries[0].Next.In(minigame.DefaultResetClock().Location)
		assert.Equal(t, 16, next.Hour())
		assert.Equal(t, 0, next.Minute())

		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		require.NoError(t, w.Shutdown(ctx))
	})
}

func TestDailyResetWorker_BadHour(t *testing.T) {
	clock := minigame.DefaultResetClock()
	clock.Hour = 25
	w := NewDailyResetWorker(memory.New(), nil, clock, NewPool(1, 1, time.Second))
	assert.Error(t, w.Start())
}
