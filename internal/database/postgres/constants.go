package postgres

// PostgreSQL error codes
const (
	pgUniqueViolation = "23505"
)

// Error messages
const (
	ErrMsgBeginTx       = "failed to begin transaction: %w"
	ErrMsgParseDecimal  = "failed to parse %s: %w"
	ErrMsgUserQuery     = "failed to load user: %w"
	ErrMsgCatalogQuery  = "failed to load catalog: %w"
	ErrMsgInventoryRead = "failed to load inventory: %w"
	ErrMsgAttemptQuery  = "failed to load attempts: %w"
	ErrMsgEventQuery    = "failed to load events: %w"
	ErrMsgWrite         = "failed to write %s: %w"
)
