package worker

import "time"

// ============================================================================
// Pool
// ============================================================================

const (
	DefaultPoolWorkers   = 2
	DefaultPoolQueueSize = 16
	DefaultJobTimeout    = 2 * time.Minute
)

// LogMsgWorkerJobFailed is logged when a worker fails to process a job
const (
	LogMsgWorkerJobFailed  = "Worker job failed"
	LogMsgWorkerQueueFull  = "Worker queue full, job dropped"
	LogMsgWorkerPoolClosed = "Worker pool stopped, job dropped"
)

// ============================================================================
// Daily Reset Worker
// ============================================================================

const (
	LogMsgDailyResetStarting   = "Daily reset starting"
	LogMsgDailyResetCompleted  = "Daily reset completed"
	LogMsgDailyResetFailed     = "Daily reset failed"
	LogMsgDailyResetScheduled  = "Daily reset scheduled"
	LogMsgDailyResetPublishErr = "Failed to publish daily reset event"
	LogMsgDailyResetStopping   = "Shutting down daily reset worker"
	LogMsgDailyResetStopped    = "Daily reset worker shutdown complete"
	LogMsgDailyResetTimeout    = "Daily reset worker shutdown timeout"

	ErrMsgScheduleFailed = "failed to schedule daily reset: %w"
)
