package minigame

import (
	"github.com/chibox/chibox-server/internal/domain"
	"github.com/chibox/chibox-server/internal/reward"
)

// Entry is one weighted prize of a game table
type Entry struct {
	Label   string         `json:"label"`
	Outcome domain.Outcome `json:"outcome"`
	Weight  float64        `json:"weight"`
}

// Table is an ordered prize table. Order matters: roll boundaries follow it.
type Table []Entry

// Weights returns the entry weights in order
func (t Table) Weights() []float64 {
	w := make([]float64, len(t))
	for i, e := range t {
		w[i] = e.Weight
	}
	return w
}

// TotalWeight sums the usable weights
func (t Table) TotalWeight() float64 {
	return reward.TotalWeight(t.Weights())
}

// Resolve maps a roll in [0, TotalWeight) to an entry
func (t Table) Resolve(roll float64) (Entry, int, error) {
	if len(t) == 0 {
		return Entry{}, -1, reward.ErrEmptyPool
	}
	i := reward.SelectIndex(t.Weights(), roll)
	return t[i], i, nil
}

// Draw scales a random draw onto the table and resolves it
func (t Table) Draw(rnd reward.RandomSource) (Entry, int, float64, error) {
	roll := rnd() * t.TotalWeight()
	e, i, err := t.Resolve(roll)
	return e, i, roll, err
}

// pick returns an index in [0, n) from a [0,1) draw
func pick(rnd reward.RandomSource, n int) int {
	i := int(rnd() * float64(n))
	if i >= n {
		i = n - 1
	}
	if i < 0 {
		i = 0
	}
	return i
}
