package logger

// Log formats
const (
	LogFormatJSON = "json"
	LogFormatText = "text"
)

// Defaults used when config leaves a field empty
const (
	DefaultServiceName = "chibox-server"
	DefaultVersion     = "dev"
	DefaultEnvironment = "dev"
)

// logLevelWarningAlias is accepted next to slog's own level names
const logLevelWarningAlias = "warning"

// Log Attribute Keys
const (
	AttrKeyService     = "service"
	AttrKeyVersion     = "version"
	AttrKeyEnvironment = "environment"
	AttrKeyRequestID   = "request_id"
	AttrKeyUserID      = "user_id"
)
