package eventlog

import (
	"context"
	"time"

	"github.com/chibox/chibox-server/internal/logger"
)

// Cleaner prunes activity older than a retention period. Service implements it.
type Cleaner interface {
	CleanupOldEvents(ctx context.Context, retentionDays int) (int64, error)
}

// CleanupJob prunes the activity log from the scheduler's worker pool
type CleanupJob struct {
	cleaner Cleaner
	days    int
	now     func() time.Time
}

// NewCleanupJob keeps retentionDays of history; values below 1 use DefaultRetentionDays
func NewCleanupJob(cleaner Cleaner, retentionDays int) *CleanupJob {
	if retentionDays < 1 {
		retentionDays = DefaultRetentionDays
	}
	return &CleanupJob{cleaner: cleaner, days: retentionDays, now: time.Now}
}

func (j *CleanupJob) Name() string {
	return JobNameCleanup
}

// RetentionDays is the history the job keeps
func (j *CleanupJob) RetentionDays() int {
	return j.days
}

func (j *CleanupJob) Process(ctx context.Context) error {
	log := logger.FromContext(ctx).With("job", JobNameCleanup, "retention_days", j.days)

	started := j.now()
	log.Info(LogMsgCleanupJobStarting, "cutoff", started.AddDate(0, 0, -j.days))

	deleted, err := j.cleaner.CleanupOldEvents(ctx, j.days)
	elapsed := j.now().Sub(started)
	if err != nil {
		log.Error(LogMsgCleanupJobFailed, "error", err, "duration", elapsed)
		return err
	}

	log.Info(LogMsgCleanupJobCompleted, "deleted_count", deleted, "duration", elapsed)
	return nil
}
