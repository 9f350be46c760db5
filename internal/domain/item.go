package domain

import (
	"github.com/shopspring/decimal"

	"github.com/chibox/chibox-server/internal/reward"
)

// Rarity labels used for grouping items in pools
const (
	RarityCommon    = "common"
	RarityUncommon  = "uncommon"
	RarityRare      = "rare"
	RarityEpic      = "epic"
	RarityLegendary = "legendary"
)

// Item is a catalog entry that can drop from cases and mini-games
type Item struct {
	ID           string          `json:"id" db:"item_id"`
	Name         string          `json:"name" db:"name"`
	Price        decimal.Decimal `json:"price" db:"price"`
	Rarity       string          `json:"rarity" db:"rarity"`
	DropWeight   float64         `json:"drop_weight" db:"drop_weight"`
	SlotEligible bool            `json:"slot_eligible" db:"slot_eligible"`
	ImageURL     string          `json:"image_url,omitempty" db:"image_url"`
}

// PriceFloat returns the price as float64 for the weighting core.
func (i Item) PriceFloat() float64 {
	return i.Price.InexactFloat64()
}

// Candidate converts the item into a selection candidate.
func (i Item) Candidate() reward.Candidate {
	c := reward.Candidate{
		ID:     i.ID,
		Weight: i.DropWeight,
		Price:  i.PriceFloat(),
	}
	if i.Rarity != "" {
		c.Tags = map[string]string{reward.TagRarity: i.Rarity}
	}
	return c
}

// Candidates converts a list of items, preserving order.
func Candidates(items []Item) []reward.Candidate {
	out := make([]reward.Candidate, len(items))
	for i, it := range items {
		out[i] = it.Candidate()
	}
	return out
}
