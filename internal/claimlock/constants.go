package claimlock

import "time"

// =============================================================================
// Lock Defaults
// =============================================================================

const (
	// DefaultTTL bounds how long a crashed holder can block the key
	DefaultTTL = 10 * time.Second

	// KeyPrefix namespaces claim lock keys in Redis
	KeyPrefix = "claim:"

	// KeySeparator joins the action and the user id
	KeySeparator = ":"
)

// =============================================================================
// Redis Scripts
// =============================================================================

const (
	// scriptRelease deletes the key only if it still holds our token
	scriptRelease = `
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`
)

// =============================================================================
// Error Message Constants
// =============================================================================

const (
	ErrMsgAcquireFailed = "failed to acquire claim lock: %w"
	ErrMsgReleaseFailed = "failed to release claim lock: %w"
)

// =============================================================================
// Log Message Constants
// =============================================================================

const (
	LogMsgLockContended = "Claim lock is held by another request"
	LogMsgReleaseFailed = "Failed to release claim lock"
)
