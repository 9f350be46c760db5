package minigame

import (
	"github.com/chibox/chibox-server/internal/domain"
	"github.com/chibox/chibox-server/internal/reward"
)

// DefaultPlinkoTable has 17 slots, symmetric, with the best prizes at the edges
func DefaultPlinkoTable() Table {
	return Table{
		{Label: "0", Weight: 2, Outcome: domain.SubscriptionOutcome(7)},
		{Label: "1", Weight: 3, Outcome: domain.CashOutcome(500)},
		{Label: "2", Weight: 4, Outcome: domain.CashOutcome(200)},
		{Label: "3", Weight: 6, Outcome: domain.SubscriptionOutcome(1)},
		{Label: "4", Weight: 9, Outcome: domain.CashOutcome(50)},
		{Label: "5", Weight: 12, Outcome: domain.CashOutcome(20)},
		{Label: "6", Weight: 15, Outcome: domain.CashOutcome(10)},
		{Label: "7", Weight: 18, Outcome: domain.CashOutcome(5)},
		{Label: "8", Weight: 24, Outcome: domain.EmptyOutcome()},
		{Label: "9", Weight: 18, Outcome: domain.CashOutcome(5)},
		{Label: "10", Weight: 15, Outcome: domain.CashOutcome(10)},
		{Label: "11", Weight: 12, Outcome: domain.CashOutcome(20)},
		{Label: "12", Weight: 9, Outcome: domain.CashOutcome(50)},
		{Label: "13", Weight: 6, Outcome: domain.SubscriptionOutcome(1)},
		{Label: "14", Weight: 4, Outcome: domain.CashOutcome(200)},
		{Label: "15", Weight: 3, Outcome: domain.CashOutcome(500)},
		{Label: "16", Weight: 2, Outcome: domain.SubscriptionOutcome(7)},
	}
}

// PlinkoResult is a resolved drop. Path has one L/R per row and its R count equals Slot.
type PlinkoResult struct {
	Slot    int            `json:"slot"`
	Path    string         `json:"path"`
	Roll    float64        `json:"rolled_value"`
	Outcome domain.Outcome `json:"outcome"`
}

// PlayPlinko picks the landing slot from the table, then builds a path that ends there
func PlayPlinko(table Table, rnd reward.RandomSource) (PlinkoResult, error) {
	e, slot, roll, err := table.Draw(rnd)
	if err != nil {
		return PlinkoResult{}, err
	}
	return PlinkoResult{
		Slot:    slot,
		Path:    PlinkoPath(slot, len(table)-1, rnd),
		Roll:    roll,
		Outcome: e.Outcome,
	}, nil
}

// PlinkoPath returns rows bounces with exactly slot rights, in random order.
// slot is clamped to [0, rows].
func PlinkoPath(slot, rows int, rnd reward.RandomSource) string {
	if rows < 0 {
		rows = 0
	}
	if slot < 0 {
		slot = 0
	}
	if slot > rows {
		slot = rows
	}

	path := make([]byte, rows)
	for i := range path {
		if i < slot {
			path[i] = PathRight
		} else {
			path[i] = PathLeft
		}
	}
	// Fisher-Yates keeps the right count
	for i := rows - 1; i > 0; i-- {
		j := pick(rnd, i+1)
		path[i], path[j] = path[j], path[i]
	}
	return string(path)
}
