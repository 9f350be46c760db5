package middleware

// HTTP header and scheme
const (
	HeaderAuthorization = "Authorization"
	BearerPrefix        = "Bearer "
)

// Default Values
const (
	// EmptyUserID represents an empty or missing user ID
	EmptyUserID = ""
)

// Error messages written to clients
const (
	ErrMsgMissingToken = "missing bearer token"
	ErrMsgInvalidToken = "invalid or expired token"
	ErrMsgAuthFailed   = "authentication failed"
)

// Log Messages
const (
	LogMsgMissingToken   = "Request without bearer token"
	LogMsgTokenRejected  = "Bearer token rejected"
	LogMsgSessionLookup  = "Session lookup failed"
)
