package domain

import "errors"

// Error message string constants - single source of truth for error messages
// Use these in assert.Contains() checks when testing error messages
const (
	// User errors
	ErrMsgUserNotFound        = "user not found"
	ErrMsgUsernameTaken       = "username is already taken"
	ErrMsgInvalidCredentials  = "invalid username or password"
	ErrMsgUnauthorized        = "unauthorized"
	ErrMsgInsufficientFunds   = "insufficient funds"
	ErrMsgSubscriptionNeeded  = "an active subscription is required"
	ErrMsgAttemptsExhausted   = "no attempts left for today"
	ErrMsgAlreadyWonToday     = "already won today"
	ErrMsgClaimInProgress     = "another request for this action is in progress"
	ErrMsgInvalidInput        = "invalid input"
	ErrMsgUnknownGame         = "unknown game"
	ErrMsgInvalidUpgrade      = "invalid upgrade target"
	ErrMsgUpgradeNoSources    = "at least one source item is required"
	ErrMsgItemNotOwned        = "item is not owned by user"
	ErrMsgItemNotActive       = "item is no longer in inventory"
	ErrMsgItemNotFound        = "item not found"
	ErrMsgCaseNotFound        = "case not found"
	ErrMsgInventoryNotFound   = "inventory item not found"
	ErrMsgDuplicateSourceItem = "source items must be distinct"

	// Database/System errors
	ErrMsgTxClosed         = "tx is closed"
	ErrMsgConnectionFailed = "connection failed"
)

// Common domain errors
// Wrap these errors with fmt.Errorf("%w: %s", domain.ErrXxx, details) for additional context.
var (
	// User errors
	ErrUserNotFound       = errors.New(ErrMsgUserNotFound)
	ErrUsernameTaken      = errors.New(ErrMsgUsernameTaken)
	ErrInvalidCredentials = errors.New(ErrMsgInvalidCredentials)
	ErrUnauthorized       = errors.New(ErrMsgUnauthorized)

	// Economy errors
	ErrInsufficientFunds = errors.New(ErrMsgInsufficientFunds)

	// Eligibility errors
	ErrSubscriptionRequired = errors.New(ErrMsgSubscriptionNeeded)
	ErrAttemptsExhausted    = errors.New(ErrMsgAttemptsExhausted)
	ErrAlreadyWonToday      = errors.New(ErrMsgAlreadyWonToday)
	ErrClaimInProgress      = errors.New(ErrMsgClaimInProgress)
	ErrUnknownGame          = errors.New(ErrMsgUnknownGame)

	// Item / inventory errors
	ErrItemNotFound          = errors.New(ErrMsgItemNotFound)
	ErrCaseNotFound          = errors.New(ErrMsgCaseNotFound)
	ErrInventoryItemNotFound = errors.New(ErrMsgInventoryNotFound)
	ErrItemNotOwned          = errors.New(ErrMsgItemNotOwned)
	ErrItemNotActive         = errors.New(ErrMsgItemNotActive)
	ErrInvalidUpgradeTarget  = errors.New(ErrMsgInvalidUpgrade)

	// Validation errors
	ErrInvalidInput = errors.New(ErrMsgInvalidInput)
)
