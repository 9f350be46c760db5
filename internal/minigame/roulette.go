package minigame

import (
	"github.com/chibox/chibox-server/internal/domain"
	"github.com/chibox/chibox-server/internal/reward"
)

// DefaultRouletteTable has nine segments in wheel order
func DefaultRouletteTable() Table {
	return Table{
		{Label: "empty", Weight: 30, Outcome: domain.EmptyOutcome()},
		{Label: "cash_10", Weight: 25, Outcome: domain.CashOutcome(10)},
		{Label: "cash_50", Weight: 12, Outcome: domain.CashOutcome(50)},
		{Label: "sub_1d", Weight: 10, Outcome: domain.SubscriptionOutcome(1)},
		{Label: "cash_100", Weight: 8, Outcome: domain.CashOutcome(100)},
		{Label: "sub_3d", Weight: 6, Outcome: domain.SubscriptionOutcome(3)},
		{Label: "item", Weight: 5, Outcome: domain.ItemOutcome("")},
		{Label: "cash_500", Weight: 3, Outcome: domain.CashOutcome(500)},
		{Label: "sub_7d", Weight: 1, Outcome: domain.SubscriptionOutcome(7)},
	}
}

// RouletteResult is a resolved spin
type RouletteResult struct {
	Segment int            `json:"segment"`
	Label   string         `json:"label"`
	Roll    float64        `json:"rolled_value"`
	Outcome domain.Outcome `json:"outcome"`
}

// PlayRoulette spins the wheel. Item segments carry an empty item id which the
// caller fills from the catalog.
func PlayRoulette(table Table, rnd reward.RandomSource) (RouletteResult, error) {
	e, i, roll, err := table.Draw(rnd)
	if err != nil {
		return RouletteResult{}, err
	}
	return RouletteResult{Segment: i, Label: e.Label, Roll: roll, Outcome: e.Outcome}, nil
}
