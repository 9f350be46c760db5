package caseopen

import "time"

// =============================================================================
// Defaults
// =============================================================================

const (
	// DefaultProtectionWindow is how many recent drops from the same case are avoided
	DefaultProtectionWindow = 3
	DefaultClaimLockTTL     = 10 * time.Second
)

// =============================================================================
// Log Message Constants
// =============================================================================

const (
	LogMsgCaseOpened        = "Case opened"
	LogMsgItemSold          = "Inventory item sold"
	LogMsgBonusLookupFailed = "Subscription bonus lookup failed, opening without bonus"
	LogMsgHistoryReadFailed = "Drop history unavailable, opening without protection"
	LogMsgHistoryWriteFail  = "Failed to record drop history"
	LogMsgPublishFailed     = "Failed to publish case event"
	LogMsgEmptyCase         = "Case has no items"
)

// =============================================================================
// Error Message Constants
// =============================================================================

const (
	ErrMsgBeginTxFailed = "failed to begin case transaction: %w"
	ErrMsgCommitFailed  = "failed to commit case transaction: %w"
	ErrMsgMissingID     = "id is required"
)
