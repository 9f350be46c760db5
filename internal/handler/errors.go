package handler

// Generic HTTP error messages for client responses.
// These messages do not expose internal error details.
// Both handlers and tests should reference these constants.
const (
	ErrMsgInvalidRequest        = "Invalid request body"
	ErrMsgInvalidRequestSummary = "Invalid request"
	ErrMsgMissingQueryParam     = "Missing %s query parameter"
	ErrMsgInvalidQueryParam     = "Invalid %s query parameter"
)

// User-facing messages derived from domain errors
const (
	ErrMsgGenericServerError    = "Something went wrong"
	ErrMsgUnauthorizedError     = "Authentication required"
	ErrMsgInvalidCredentials    = "Invalid username or password"
	ErrMsgUsernameTakenError    = "Username is already taken"
	ErrMsgUserNotFoundError     = "User not found"
	ErrMsgNotEnoughMoneyError   = "Not enough money"
	ErrMsgSubscriptionRequired  = "An active subscription is required"
	ErrMsgAttemptsExhausted     = "No attempts left today"
	ErrMsgAlreadyWonToday       = "You already won this game today"
	ErrMsgClaimInProgress       = "Another request is already in progress"
	ErrMsgUnknownGameError      = "Unknown game"
	ErrMsgInvalidUpgradeTarget  = "That item is not a valid upgrade target"
	ErrMsgItemNotOwnedError     = "You don't own that item"
	ErrMsgItemNotActiveError    = "That item is no longer in your inventory"
	ErrMsgItemNotFoundError     = "Item not found"
	ErrMsgCaseNotFoundError     = "Case not found"
	ErrMsgInventoryNotFoundErr  = "Inventory item not found"
	ErrMsgUnavailableError      = "Server is temporarily unavailable. Please try again later."
)

// Log messages
const (
	LogMsgDecodeFailed     = "Failed to decode request"
	LogMsgValidationFailed = "Request validation failed"
	LogMsgServiceError     = "Service call failed"
	LogMsgConfigError      = "Server configuration error"
	LogMsgEncodeFailed     = "Failed to encode JSON response"
	LogMsgWriteFailed      = "Failed to write response buffer"
	LogMsgReadinessFailed  = "Readiness check failed"
	LogMsgUserRegistered   = "User registered"
	LogMsgUserLoggedIn     = "User logged in"
	LogMsgUserLoggedOut    = "User logged out"
	LogMsgLogoutFailed     = "Failed to revoke session"
	LogMsgCaseOpened       = "Case opened"
	LogMsgItemSold         = "Item sold"
	LogMsgUpgradeRolled    = "Upgrade rolled"
	LogMsgGamePlayed       = "Mini-game played"
)

// Health check values
const (
	HealthStatusOK          = "ok"
	HealthStatusUnavailable = "unavailable"
)
