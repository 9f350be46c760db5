// Package scheduler runs jobs on the worker pool at fixed intervals.
package scheduler

import (
	"sync"
	"time"

	"github.com/chibox/chibox-server/internal/logger"
	"github.com/chibox/chibox-server/internal/worker"
)

// Log messages
const (
	LogMsgJobScheduled = "Scheduled interval job"
	LogMsgJobSkipped   = "Worker queue full, skipping scheduled run"
	LogMsgStopped      = "Scheduler stopped"
)

// Scheduler manages scheduled jobs
type Scheduler struct {
	workerPool *worker.Pool
	quit       chan struct{}
	stopOnce   sync.Once
	wg         sync.WaitGroup
}

// New creates a new scheduler
func New(pool *worker.Pool) *Scheduler {
	return &Scheduler{
		workerPool: pool,
		quit:       make(chan struct{}),
	}
}

// Schedule registers a job to run every interval, starting one interval from now.
// A tick that finds the queue full is dropped; the next tick retries.
func (s *Scheduler) Schedule(interval time.Duration, job worker.Job) {
	logger.Info(LogMsgJobScheduled, "job", job.Name(), "interval", interval)

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				if !s.workerPool.Enqueue(job) {
					logger.Warn(LogMsgJobSkipped, "job", job.Name())
				}
			case <-s.quit:
				return
			}
		}
	}()
}

// Stop stops all scheduled jobs. Jobs already queued still run on the pool.
func (s *Scheduler) Stop() {
	s.stopOnce.Do(func() {
		close(s.quit)
		s.wg.Wait()
		logger.Info(LogMsgStopped)
	})
}
