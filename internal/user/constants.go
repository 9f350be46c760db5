package user

// ============================================================================
// Password Hashing
// ============================================================================

// Argon2id parameters; stored alongside each hash so they can change later
const (
	ArgonMemory      uint32 = 64 * 1024
	ArgonIterations  uint32 = 3
	ArgonParallelism uint8  = 2
	ArgonKeyLength   uint32 = 32
	ArgonSaltLength         = 16

	hashFormat = "$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s"
)

// ============================================================================
// Messages
// ============================================================================

const (
	ErrMsgUsernameLength   = "username must be between %d and %d characters"
	ErrMsgUsernameCharset  = "username may contain only letters, digits and underscores"
	ErrMsgPasswordLength   = "password must be at least %d characters"
	ErrMsgMalformedHash    = "malformed password hash"
	ErrMsgHashFailed       = "failed to hash password: %w"
	ErrMsgCreateUserFailed = "failed to create user: %w"

	LogMsgUserRegistered = "User registered"
	LogMsgLoginFailed    = "Login failed"
)
