package reward

// ============================================================================
// Weight Modifier Defaults
// ============================================================================

// DefaultWeight is used for candidates whose drop weight is unset (zero).
const DefaultWeight = 1.0

// Price tier floors used by the default modifier.
const (
	TierLegendaryMinPrice = 5000.0
	TierEpicMinPrice      = 1000.0
	TierRareMinPrice      = 500.0
	TierUncommonMinPrice  = 100.0
)

// Bonus exponents applied to (1 + bonus/100) per tier.
const (
	TierLegendaryExponent = 3.0
	TierEpicExponent      = 2.0
	TierRareExponent      = 1.5
	TierUncommonExponent  = 1.0
	TierCommonExponent    = -0.5
)

// MaxBonusPercent caps the drop bonus accepted by the modifier.
const MaxBonusPercent = 500.0

// ============================================================================
// Tags
// ============================================================================

// TagRarity is the candidate tag holding the rarity/category name.
const TagRarity = "rarity"

// ============================================================================
// Error Messages
// ============================================================================

const (
	ErrMsgEmptyPool = "reward pool is empty"
)
