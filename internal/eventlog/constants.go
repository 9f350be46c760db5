package eventlog

import "time"

// History limits
const (
	DefaultHistoryLimit = 50
	MaxHistoryLimit     = 200
)

// Retention defaults
const (
	DefaultRetentionDays   = 30
	DefaultCleanupInterval = 24 * time.Hour
)

// JSON payload field keys
const (
	PayloadKeyUserID = "user_id"
)

// Job names
const (
	JobNameCleanup = "event_log_cleanup"
)

// Log messages - service events
const (
	LogMsgEventPayloadNotMap = "Event payload is not an object, skipping log"
	LogMsgFailedToLogEvent   = "Failed to log event"
	LogMsgEventLogged        = "Event logged"
	LogMsgSubscribed         = "Event log subscribed to events"
)

// Log messages - cleanup job
const (
	LogMsgCleanupJobStarting  = "Starting event log cleanup job"
	LogMsgCleanupJobFailed    = "Event log cleanup failed"
	LogMsgCleanupJobCompleted = "Event log cleanup completed"
)
