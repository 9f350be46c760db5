package profitability

// ============================================================================
// Margin Analysis
// ============================================================================

const (
	// DefaultTargetMargin keeps 22.5% of the case price, a 77.5% return to player
	DefaultTargetMargin = 0.225

	// MarginTolerance is how far the margin may drift from the target and still be optimal
	MarginTolerance = 0.02

	// LossMargin is reported for cases sold at a non-positive price
	LossMargin = -1.0
)

// Recommendation actions
const (
	ActionKeep     = "keep"
	ActionRaise    = "raise_price_or_lower_rare_weights"
	ActionLower    = "lower_price_or_raise_rare_weights"
	ActionFixPrice = "set_positive_price"
)

// ============================================================================
// Weight Optimizer
// ============================================================================

const (
	LearningRate  = 0.5
	WeightFloor   = 1e-6
	EVTolerance   = 1.0
	MaxIterations = 100

	// MaxLogStep bounds a single multiplicative update to e^±MaxLogStep
	MaxLogStep = 2.0
)

// ============================================================================
// Messages
// ============================================================================

const (
	MsgKeep     = "Margin %.1f%% is within %.1f%% of the %.1f%% target."
	MsgRaise    = "Margin %.1f%% is below the %.1f%% target. Raise the price to %s or lower rare weights."
	MsgLower    = "Margin %.1f%% is above the %.1f%% target. Lower the price to %s or raise rare weights."
	MsgFixPrice = "Case price must be positive. Price it at %s."
)
