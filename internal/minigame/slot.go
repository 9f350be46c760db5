package minigame

import (
	"github.com/chibox/chibox-server/internal/domain"
	"github.com/chibox/chibox-server/internal/reward"
)

// SlotClass is a weighted spin class
type SlotClass struct {
	Name   string  `json:"name"`
	Weight float64 `json:"weight"`
}

// SlotConfig tunes the slot machine
type SlotConfig struct {
	Classes         []SlotClass `json:"classes"`
	JackpotMinPrice float64     `json:"jackpot_min_price"`
}

// DefaultSlotConfig is lose 75, win 20, jackpot 5
func DefaultSlotConfig() SlotConfig {
	return SlotConfig{
		Classes: []SlotClass{
			{Name: SlotLose, Weight: 75},
			{Name: SlotWin, Weight: 20},
			{Name: SlotJackpot, Weight: 5},
		},
		JackpotMinPrice: DefaultJackpotMinPrice,
	}
}

// SlotResult is a resolved spin. Winning reels show the same item three times.
type SlotResult struct {
	Class   string            `json:"class"`
	Reels   [SlotReels]string `json:"reels"`
	Roll    float64           `json:"rolled_value"`
	Item    *domain.Item      `json:"item,omitempty"`
	Outcome domain.Outcome    `json:"outcome"`
}

// PlaySlot rolls a class, then picks a prize item from the matching price band.
// A class whose band is empty falls back to a loss.
func PlaySlot(items []domain.Item, cfg SlotConfig, rnd reward.RandomSource) (SlotResult, error) {
	if len(items) == 0 {
		return SlotResult{}, reward.ErrEmptyPool
	}

	weights := make([]float64, len(cfg.Classes))
	for i, c := range cfg.Classes {
		weights[i] = c.Weight
	}
	class := SlotLose
	roll := rnd() * reward.TotalWeight(weights)
	if i := reward.SelectIndex(weights, roll); i >= 0 {
		class = cfg.Classes[i].Name
	}

	res := SlotResult{Class: class, Roll: roll, Outcome: domain.EmptyOutcome()}
	if class != SlotLose {
		pool := slotBand(items, class, cfg.JackpotMinPrice)
		if len(pool) > 0 {
			drawn, err := reward.Resolve(domain.Candidates(pool), 0, rnd)
			if err != nil {
				return SlotResult{}, err
			}
			item := pool[drawn.Index]
			res.Item = &item
			res.Outcome = domain.ItemOutcome(item.ID)
			res.Reels = [SlotReels]string{item.ID, item.ID, item.ID}
			return res, nil
		}
		res.Class = SlotLose
	}

	res.Reels = losingReels(items, rnd)
	return res, nil
}

func slotBand(items []domain.Item, class string, jackpotMin float64) []domain.Item {
	var out []domain.Item
	for _, it := range items {
		jackpot := it.PriceFloat() >= jackpotMin
		if (class == SlotJackpot) == jackpot {
			out = append(out, it)
		}
	}
	return out
}

// losingReels never shows three identical symbols
func losingReels(items []domain.Item, rnd reward.RandomSource) [SlotReels]string {
	n := len(items)
	a, b, c := pick(rnd, n), pick(rnd, n), pick(rnd, n)
	if n == 1 {
		return [SlotReels]string{items[a].ID, items[b].ID, BlankSymbol}
	}
	if a == b && b == c {
		c = (c + 1 + pick(rnd, n-1)) % n
	}
	return [SlotReels]string{items[a].ID, items[b].ID, items[c].ID}
}
