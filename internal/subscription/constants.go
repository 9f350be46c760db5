package subscription

import "time"

// ============================================================================
// Tier Table Defaults
// ============================================================================

const (
	TierNone   = 0
	TierBronze = 1
	TierSilver = 2
	TierGold   = 3

	// DefaultFallbackTier is granted when a subscription prize lands on a user
	// without an active subscription
	DefaultFallbackTier = TierBronze
)

// ============================================================================
// Cache
// ============================================================================

const (
	DefaultCacheSize = 10000
	DefaultCacheTTL  = 5 * time.Minute
)

// ============================================================================
// Messages
// ============================================================================

const (
	ErrMsgDuplicateTier   = "duplicate subscription tier %d"
	ErrMsgInvalidTier     = "subscription tier level must be positive, got %d"
	ErrMsgInvalidFallback = "fallback tier %d is not in the table"
	ErrMsgNegativeQuota   = "tier %d has negative quota for %s"
	ErrMsgGetUser         = "failed to get user: %w"

	LogMsgInvalidated = "Subscription status invalidated"
)
