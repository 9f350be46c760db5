package subscription

import (
	"fmt"
	"sort"

	"github.com/chibox/chibox-server/internal/domain"
)

// Tier is one subscription level with its drop bonus and daily mini-game quotas
type Tier struct {
	domain.SubscriptionTier
	Quotas map[domain.Game]int `json:"quotas"`
}

// Table is the ordered set of tiers
type Table struct {
	Tiers    []Tier `json:"tiers"`
	Fallback int    `json:"fallback_tier"`
}

// DefaultTable returns the built-in Bronze/Silver/Gold tiers
func DefaultTable() Table {
	return Table{
		Tiers: []Tier{
			{
				SubscriptionTier: domain.SubscriptionTier{Level: TierBronze, Name: "Bronze", BonusPercent: 5},
				Quotas: map[domain.Game]int{
					domain.GamePlinko: 1, domain.GameSafe: 3, domain.GameSlot: 1,
					domain.GameRoulette: 1, domain.GameTower: 1,
				},
			},
			{
				SubscriptionTier: domain.SubscriptionTier{Level: TierSilver, Name: "Silver", BonusPercent: 10},
				Quotas: map[domain.Game]int{
					domain.GamePlinko: 2, domain.GameSafe: 5, domain.GameSlot: 2,
					domain.GameRoulette: 1, domain.GameTower: 1,
				},
			},
			{
				SubscriptionTier: domain.SubscriptionTier{Level: TierGold, Name: "Gold", BonusPercent: 20},
				Quotas: map[domain.Game]int{
					domain.GamePlinko: 3, domain.GameSafe: 10, domain.GameSlot: 3,
					domain.GameRoulette: 2, domain.GameTower: 2,
				},
			},
		},
		Fallback: DefaultFallbackTier,
	}
}

// Validate checks levels are unique and positive and the fallback exists
func (t Table) Validate() error {
	seen := make(map[int]bool, len(t.Tiers))
	for _, tier := range t.Tiers {
		if tier.Level <= 0 {
			return fmt.Errorf(ErrMsgInvalidTier, tier.Level)
		}
		if seen[tier.Level] {
			return fmt.Errorf(ErrMsgDuplicateTier, tier.Level)
		}
		seen[tier.Level] = true
		for g, q := range tier.Quotas {
			if q < 0 {
				return fmt.Errorf(ErrMsgNegativeQuota, tier.Level, g)
			}
		}
	}
	if !seen[t.Fallback] {
		return fmt.Errorf(ErrMsgInvalidFallback, t.Fallback)
	}
	return nil
}

// Tier looks up a level. Level 0 and unknown levels report false.
func (t Table) Tier(level int) (Tier, bool) {
	for _, tier := range t.Tiers {
		if tier.Level == level {
			return tier, true
		}
	}
	return Tier{}, false
}

// BonusPercent is the drop bonus of a level, 0 without a subscription
func (t Table) BonusPercent(level int) float64 {
	tier, ok := t.Tier(level)
	if !ok {
		return 0
	}
	return tier.BonusPercent
}

// Quotas returns the daily attempts per level for one game
func (t Table) Quotas(game domain.Game) map[int]int {
	out := make(map[int]int, len(t.Tiers))
	for _, tier := range t.Tiers {
		out[tier.Level] = tier.Quotas[game]
	}
	return out
}

// FallbackTier is the level started by a subscription prize
func (t Table) FallbackTier() int {
	return t.Fallback
}

// Levels returns the configured levels in ascending order
func (t Table) Levels() []int {
	out := make([]int, 0, len(t.Tiers))
	for _, tier := range t.Tiers {
		out = append(out, tier.Level)
	}
	sort.Ints(out)
	return out
}
