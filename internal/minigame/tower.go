package minigame

import (
	"errors"

	"github.com/chibox/chibox-server/internal/domain"
	"github.com/chibox/chibox-server/internal/reward"
)

// TowerConfig sets the reward band relative to a base price
type TowerConfig struct {
	MinMultiplier float64         `json:"min_multiplier"`
	MaxMultiplier float64         `json:"max_multiplier"`
	BasePrices    map[int]float64 `json:"base_prices"`
}

// DefaultTowerConfig rewards items worth 1.1x to 3x of a per-tier base price
func DefaultTowerConfig() TowerConfig {
	return TowerConfig{
		MinMultiplier: DefaultTowerMinMultiplier,
		MaxMultiplier: DefaultTowerMaxMultiplier,
		BasePrices:    map[int]float64{1: 50, 2: 100, 3: 200},
	}
}

// Validate checks the multipliers
func (c TowerConfig) Validate() error {
	if c.MinMultiplier < 1 || c.MaxMultiplier < c.MinMultiplier {
		return errors.New(ErrMsgTowerMultipliers)
	}
	return nil
}

// BasePrice returns the base price for a tier, falling back to the lowest configured tier
func (c TowerConfig) BasePrice(tier int) float64 {
	if p, ok := c.BasePrices[tier]; ok {
		return p
	}
	best, bestTier := 0.0, 0
	for t, p := range c.BasePrices {
		if bestTier == 0 || t < bestTier {
			best, bestTier = p, t
		}
	}
	return best
}

// TowerResult is a resolved tower defense reward
type TowerResult struct {
	BasePrice float64        `json:"base_price"`
	InBand    bool           `json:"in_band"`
	Item      domain.Item    `json:"item"`
	Outcome   domain.Outcome `json:"outcome"`
}

// SelectTowerReward uses the default multipliers
func SelectTowerReward(items []domain.Item, basePrice float64, rnd reward.RandomSource) (domain.Item, error) {
	res, err := DefaultTowerConfig().Select(items, basePrice, rnd)
	return res.Item, err
}

// Select draws by drop weight among items priced within the band. With an empty
// band it takes the cheapest item above base; with nothing above base the pool is empty.
func (c TowerConfig) Select(items []domain.Item, basePrice float64, rnd reward.RandomSource) (TowerResult, error) {
	lo, hi := basePrice*c.MinMultiplier, basePrice*c.MaxMultiplier

	var band []domain.Item
	var cheapest *domain.Item
	for i := range items {
		p := items[i].PriceFloat()
		if p >= lo && p <= hi {
			band = append(band, items[i])
		}
		if p > basePrice && (cheapest == nil || p < cheapest.PriceFloat()) {
			cheapest = &items[i]
		}
	}

	if len(band) > 0 {
		drawn, err := reward.Resolve(domain.Candidates(band), 0, rnd)
		if err != nil {
			return TowerResult{}, err
		}
		item := band[drawn.Index]
		return TowerResult{BasePrice: basePrice, InBand: true, Item: item, Outcome: domain.ItemOutcome(item.ID)}, nil
	}
	if cheapest == nil {
		return TowerResult{}, reward.ErrEmptyPool
	}
	return TowerResult{BasePrice: basePrice, Item: *cheapest, Outcome: domain.ItemOutcome(cheapest.ID)}, nil
}
