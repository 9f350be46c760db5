package worker

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/chibox/chibox-server/internal/event"
	"github.com/chibox/chibox-server/internal/logger"
	"github.com/chibox/chibox-server/internal/minigame"
	"github.com/chibox/chibox-server/internal/repository"
)

// DailyResetWorker clears mini-game attempt counters at the reset hour
type DailyResetWorker struct {
	attempts  repository.Attempts
	publisher event.Publisher
	clock     minigame.ResetClock
	pool      *Pool
	cron      *cron.Cron
	now       func() time.Time
}

// NewDailyResetWorker creates a worker; jobs run on pool so shutdown can wait for them
func NewDailyResetWorker(attempts repository.Attempts, publisher event.Publisher, clock minigame.ResetClock, pool *Pool) *DailyResetWorker {
	return &DailyResetWorker{
		attempts:  attempts,
		publisher: publisher,
		clock:     clock,
		pool:      pool,
		cron:      cron.New(cron.WithLocation(clock.Location)),
		now:       time.Now,
	}
}

// Spec returns the cron expression for the reset hour
func (w *DailyResetWorker) Spec() string {
	return fmt.Sprintf("0 %d * * *", w.clock.Hour)
}

// Start schedules the reset
func (w *DailyResetWorker) Start() error {
	if _, err := w.cron.AddFunc(w.Spec(), w.trigger); err != nil {
		return fmt.Errorf(ErrMsgScheduleFailed, err)
	}
	w.cron.Start()

	entries := w.cron.Entries()
	if len(entries) > 0 {
		logger.Info(LogMsgDailyResetScheduled, "next_reset_at", entries[0].Next, "spec", w.Spec())
	}
	return nil
}

func (w *DailyResetWorker) trigger() {
	w.pool.Enqueue(JobFunc{JobName: "daily_reset", Fn: func(ctx context.Context) error {
		_, err := w.RunOnce(ctx)
		return err
	}})
}

// RunOnce resets every attempt record from before the current game day
func (w *DailyResetWorker) RunOnce(ctx context.Context) (int64, error) {
	log := logger.FromContext(ctx)
	dayStart := w.clock.DayStart(w.now())
	log.Info(LogMsgDailyResetStarting, "day_start", dayStart)

	affected, err := w.attempts.ResetAttempts(ctx, dayStart)
	if err != nil {
		log.Error(LogMsgDailyResetFailed, "error", err)
		return 0, err
	}
	log.Info(LogMsgDailyResetCompleted, "records_affected", affected)

	if w.publisher != nil {
		if err := w.publisher.Publish(ctx, event.NewDailyResetEvent(dayStart, affected)); err != nil {
			log.Warn(LogMsgDailyResetPublishErr, "error", err)
		}
	}
	return affected, nil
}

// Shutdown stops the scheduler and waits for a running reset
func (w *DailyResetWorker) Shutdown(ctx context.Context) error {
	log := logger.FromContext(ctx)
	log.Info(LogMsgDailyResetStopping)

	stopped := w.cron.Stop()
	done := make(chan struct{})
	go func() {
		<-stopped.Done()
		w.pool.Stop()
		close(done)
	}()

	select {
	case <-done:
		log.Info(LogMsgDailyResetStopped)
		return nil
	case <-ctx.Done():
		log.Warn(LogMsgDailyResetTimeout)
		return ctx.Err()
	}
}
