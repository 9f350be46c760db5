package event

import "time"

// Event schema versioning
const (
	// EventSchemaVersion is the current event schema version
	EventSchemaVersion = "1.0"
)

// Retry configuration constants
const (
	// RetryInitialDelaySeconds is the initial retry delay in seconds (2s)
	RetryInitialDelaySeconds = 2

	// RetryMaxAttempts is the default maximum number of retry attempts
	RetryMaxAttempts = 5
)

// NATS configuration constants
const (
	// DefaultSubjectPrefix namespaces every published subject
	DefaultSubjectPrefix = "chibox"

	// NATSMaxReconnects of -1 reconnects forever
	NATSMaxReconnects = -1

	// NATSReconnectWait is the pause between reconnect attempts, in seconds
	NATSReconnectWait = 2
)

// Dead letter file configuration
const (
	// DeadLetterFilePermissions is the file permission mode for dead-letter files
	DeadLetterFilePermissions = 0644

	// DeadLetterMaxLine bounds one dead-letter JSON line when reading back
	DeadLetterMaxLine = 1 << 20
)

// Error message constants
const (
	ErrMsgNATSConnectFailed  = "failed to connect to NATS: %w"
	ErrMsgNATSPublishFailed  = "failed to publish to NATS: %w"
	ErrMsgMarshalEventFailed = "failed to marshal event: %w"
	ErrMsgDecodePayload      = "failed to decode event payload: %w"
	ErrMsgDecodeWholeEvent   = "got a whole %s event where its payload was expected"
)

// Log message constants
const (
	LogMsgEventPublishFailed    = "Event publish failed, queuing for retry"
	LogMsgDeadLetterWriteFailed = "Failed to write to dead letter"
	LogMsgEventDeadLettered     = "Event dead-lettered"
	ErrMsgDeadLetterLine        = "dead-letter line %d: %w"
	LogMsgEventRetryExhausted   = "Event retry exhausted, writing to dead-letter"
	LogMsgEventRetryFailed      = "Event retry failed, scheduling next attempt"
	LogMsgEventRetrySucceeded   = "Event retry succeeded"
	LogMsgEventDroppedShutdown  = "Event dropped during shutdown"
	LogMsgShutdownTimeout       = "Resilient publisher shutdown timed out"
	LogMsgMirrorPublishFailed   = "Failed to mirror event"
	LogMsgDecodeFailed          = "Failed to decode remote event"
	LogMsgRemoteHandlerFailed   = "Remote event handler failed"
	LogMsgSubscribeFailed       = "Failed to subscribe to remote events"

	// Log message for handler errors
	LogMsgHandlerErrorFormat = "encountered %d errors while handling event %s: %v"
)

// CalculateRetryDelay calculates the exponential backoff delay for retry attempts.
// Implements exponential backoff: 2s, 4s, 8s, 16s, 32s
// Formula: initialDelay * 2^(attempt-1)
func CalculateRetryDelay(baseDelay time.Duration, attempt int) time.Duration {
	return baseDelay * time.Duration(1<<(attempt-1))
}
