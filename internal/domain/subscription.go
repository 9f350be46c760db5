package domain

// SubscriptionTier describes the perks of a subscription level.
// Level 0 means no subscription.
type SubscriptionTier struct {
	Level        int     `json:"level"`
	Name         string  `json:"name"`
	BonusPercent float64 `json:"bonus_percent"`
}
