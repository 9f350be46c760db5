package profitability

import (
	"math"

	"github.com/chibox/chibox-server/internal/reward"
)

// Optimization is the result of tuning category weights towards a target EV
type Optimization struct {
	TargetEV        float64            `json:"target_ev"`
	InitialEV       float64            `json:"initial_ev"`
	ExpectedValue   float64            `json:"expected_value"`
	Converged       bool               `json:"converged"`
	Iterations      int                `json:"iterations"`
	Weights         []float64          `json:"weights"`
	CategoryWeights map[string]float64 `json:"category_weights"`
}

type category struct {
	name    string
	members []int
	// share of each member inside the category, fixed during optimization
	split  []float64
	weight float64
	price  float64
}

// OptimizeWeights rescales whole categories (rarity tag, else item id) so the
// expected value approaches targetEV. Relative weights inside a category are
// kept. It returns the best weights seen within MaxIterations and never fails;
// an unreachable target simply does not converge.
func OptimizeWeights(pool []reward.Candidate, targetEV float64) Optimization {
	base := reward.BaseWeights(pool)
	cats := group(pool, base)

	opt := Optimization{TargetEV: targetEV}
	ev := categoryEV(cats)
	opt.InitialEV = ev

	best := snapshot(cats)
	bestGap := math.Abs(ev - targetEV)
	bestEV := ev

	for opt.Iterations < MaxIterations && bestGap > EVTolerance {
		variance := categoryVariance(cats, ev)
		if variance <= 0 || math.IsNaN(variance) {
			break
		}
		opt.Iterations++

		for i := range cats {
			if cats[i].weight == 0 {
				continue
			}
			step := -LearningRate * (ev - targetEV) * (cats[i].price - ev) / variance
			step = math.Max(-MaxLogStep, math.Min(MaxLogStep, step))
			cats[i].weight = math.Max(WeightFloor, cats[i].weight*math.Exp(step))
		}

		ev = categoryEV(cats)
		if gap := math.Abs(ev - targetEV); gap < bestGap {
			best, bestGap, bestEV = snapshot(cats), gap, ev
		}
	}

	opt.ExpectedValue = bestEV
	opt.Converged = bestGap <= EVTolerance
	opt.Weights = make([]float64, len(pool))
	opt.CategoryWeights = make(map[string]float64, len(cats))
	for i, c := range cats {
		opt.CategoryWeights[c.name] = best[i]
		for j, idx := range c.members {
			opt.Weights[idx] = best[i] * c.split[j]
		}
	}
	return opt
}

func group(pool []reward.Candidate, base []float64) []category {
	index := make(map[string]int)
	var cats []category
	for i, c := range pool {
		name := c.Category()
		k, ok := index[name]
		if !ok {
			k = len(cats)
			index[name] = k
			cats = append(cats, category{name: name})
		}
		cats[k].members = append(cats[k].members, i)
		cats[k].weight += base[i]
	}

	for k := range cats {
		c := &cats[k]
		c.split = make([]float64, len(c.members))
		sum := 0.0
		for j, idx := range c.members {
			if c.weight > 0 {
				c.split[j] = base[idx] / c.weight
			} else {
				c.split[j] = 1 / float64(len(c.members))
			}
			sum += c.split[j] * sanitize(pool[idx].Price)
		}
		c.price = sum
		if c.weight <= 0 {
			// a dead category stays dead
			c.weight = 0
		}
	}
	return cats
}

func categoryEV(cats []category) float64 {
	total, ev := 0.0, 0.0
	for _, c := range cats {
		total += c.weight
		ev += c.weight * c.price
	}
	if total <= 0 {
		return 0
	}
	return ev / total
}

func categoryVariance(cats []category, ev float64) float64 {
	total, v := 0.0, 0.0
	for _, c := range cats {
		total += c.weight
		d := c.price - ev
		v += c.weight * d * d
	}
	if total <= 0 {
		return 0
	}
	return v / total
}

func snapshot(cats []category) []float64 {
	out := make([]float64, len(cats))
	for i, c := range cats {
		out[i] = c.weight
	}
	return out
}
