package session

import "time"

const (
	DefaultTTL = 24 * time.Hour

	// KeyPrefix namespaces session records in Redis
	KeyPrefix = "session:"

	// MinSecretLength guards against trivially guessable HS256 keys
	MinSecretLength = 16
)

const (
	ErrMsgSecretTooShort = "jwt secret must be at least %d bytes"
	ErrMsgSignFailed     = "failed to sign session token: %w"
	ErrMsgStoreFailed    = "failed to store session: %w"
	ErrMsgLookupFailed   = "failed to look up session: %w"

	LogMsgInvalidToken = "Rejected session token"
	LogMsgRevoked      = "Session revoked"
)
