package upgrade

import "time"

// =============================================================================
// Chance Bounds
// =============================================================================

const (
	// MinChance and MaxChance clamp every final chance, in percent
	MinChance = 3.0
	MaxChance = 90.0

	// LowValueMaxPrice is the source total at or below which the low-value curve applies
	LowValueMaxPrice = 5.0

	// MinTargetRatio is the smallest target/source ratio for normal sources
	MinTargetRatio = 1.05

	// RatioTolerance absorbs float error when comparing against MinTargetRatio
	RatioTolerance = 1e-9

	// RollScale maps a [0,1) draw onto the percent scale
	RollScale = 100.0
)

// =============================================================================
// Cheap Target Bonus
// =============================================================================

const (
	CheapTargetBelow50  = 50.0
	CheapTargetBonus50  = 8.0
	CheapTargetBelow100 = 100.0
	CheapTargetBonus100 = 4.0
	MaxSourceItems      = 10
	DefaultClaimLockTTL = 10 * time.Second
)

// =============================================================================
// Log Message Constants
// =============================================================================

const (
	LogMsgUpgradeResolved = "Upgrade resolved"
	LogMsgPublishFailed   = "Failed to publish upgrade event"
)

// =============================================================================
// Error Message Constants
// =============================================================================

const (
	ErrMsgBeginTxFailed  = "failed to begin upgrade transaction: %w"
	ErrMsgCommitFailed   = "failed to commit upgrade: %w"
	ErrMsgTooManySources = "too many source items"
	ErrMsgMissingTarget  = "target item is required"

	ErrMsgEmptyCurve       = "upgrade chance curve is empty"
	ErrMsgCurveNotMonotone = "upgrade chance curve must have rising ratios and non-increasing chances"
	ErrMsgChanceBounds     = "upgrade chance bounds are inverted or outside 0..100"
	ErrMsgMinRatio         = "upgrade minimum ratio must be at least 1"
)
