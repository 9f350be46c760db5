package reward

import (
	"fmt"
	"math"
)

// TotalWeight sums the usable (finite, positive) weights.
func TotalWeight(weights []float64) float64 {
	total := 0.0
	for _, w := range weights {
		total += usable(w)
	}
	return total
}

// SelectIndex runs a cumulative-sum scan over weights. Candidate i owns the
// half-open interval [cum(i-1), cum(i)), so a roll landing exactly on a
// boundary belongs to the next candidate. Zero or invalid weights never win.
//
// When the total weight is not positive the first candidate is returned. A
// roll at or past the total resolves to the last candidate with weight.
// An empty slice returns -1.
func SelectIndex(weights []float64, roll float64) int {
	if len(weights) == 0 {
		return -1
	}

	cumulative := 0.0
	last := -1
	for i, w := range weights {
		w = usable(w)
		if w == 0 {
			continue
		}
		cumulative += w
		last = i
		if roll < cumulative {
			return i
		}
	}

	if last == -1 {
		return 0
	}
	return last
}

// Select picks a candidate for a caller-supplied roll in [0, TotalWeight(weights)).
// It is a pure function of its inputs.
func Select(candidates []Candidate, weights []float64, roll float64) (Candidate, int, error) {
	if len(candidates) == 0 {
		return Candidate{}, -1, ErrEmptyPool
	}
	if len(weights) != len(candidates) {
		return Candidate{}, -1, &ConfigurationError{
			Reason: fmt.Sprintf("weights length %d does not match %d candidates", len(weights), len(candidates)),
		}
	}

	idx := SelectIndex(weights, roll)
	return candidates[idx], idx, nil
}

// Resolve applies the default modifier and draws one candidate.
func Resolve(candidates []Candidate, bonusPercent float64, rnd RandomSource) (Result, error) {
	return DefaultModifier().Resolve(candidates, bonusPercent, rnd)
}

// Resolve applies the modifier for bonusPercent and draws one candidate using rnd.
func (m Modifier) Resolve(candidates []Candidate, bonusPercent float64, rnd RandomSource) (Result, error) {
	if len(candidates) == 0 {
		return Result{}, ErrEmptyPool
	}
	weights := m.Apply(candidates, bonusPercent)
	return draw(candidates, weights, rnd)
}

func draw(candidates []Candidate, weights []float64, rnd RandomSource) (Result, error) {
	roll := rnd() * TotalWeight(weights)
	selected, idx, err := Select(candidates, weights, roll)
	if err != nil {
		return Result{}, err
	}
	return Result{
		Selected:       selected,
		Index:          idx,
		Roll:           roll,
		AppliedWeights: weights,
	}, nil
}

func usable(w float64) float64 {
	if math.IsNaN(w) || math.IsInf(w, 0) || w <= 0 {
		return 0
	}
	return w
}
