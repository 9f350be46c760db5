package upgrade

import (
	"errors"
	"math"
	"sort"

	"github.com/chibox/chibox-server/internal/reward"
	"github.com/chibox/chibox-server/internal/utils"
)

// Knot is one point of a chance curve: at PriceRatio the base chance is Chance percent.
type Knot struct {
	Ratio  float64 `json:"ratio"`
	Chance float64 `json:"chance"`
}

// Curve is a piecewise-linear, non-increasing chance curve ordered by Ratio.
type Curve []Knot

// At interpolates the curve. Ratios outside the curve take the nearest end value.
func (c Curve) At(ratio float64) float64 {
	if len(c) == 0 {
		return MinChance
	}
	if math.IsNaN(ratio) || ratio <= c[0].Ratio {
		return c[0].Chance
	}
	last := c[len(c)-1]
	if ratio >= last.Ratio {
		return last.Chance
	}

	i := sort.Search(len(c), func(i int) bool { return c[i].Ratio >= ratio })
	lo, hi := c[i-1], c[i]
	return utils.Lerp(ratio, lo.Ratio, lo.Chance, hi.Ratio, hi.Chance)
}

// CheapBonus adds Bonus percentage points when the target price is below Below.
type CheapBonus struct {
	Below float64 `json:"below"`
	Bonus float64 `json:"bonus"`
}

// Calculator holds the tunable upgrade curves.
type Calculator struct {
	Normal      Curve        `json:"normal"`
	LowValue    Curve        `json:"low_value"`
	CheapBonus  []CheapBonus `json:"cheap_bonus"`
	LowValueMax float64      `json:"low_value_max"`
	MinRatio    float64      `json:"min_ratio"`
	MinChance   float64      `json:"min_chance"`
	MaxChance   float64      `json:"max_chance"`
}

// DefaultCalculator returns the production curves.
func DefaultCalculator() Calculator {
	return Calculator{
		Normal: Curve{
			{1.05, 80}, {1.2, 75}, {1.5, 60}, {2, 45},
			{3, 30}, {5, 18}, {10, 9}, {20, 4},
		},
		LowValue: Curve{
			{1.0, 85}, {1.5, 70}, {2, 55}, {3, 40},
			{5, 25}, {10, 12}, {20, 6},
		},
		CheapBonus: []CheapBonus{
			{Below: CheapTargetBelow50, Bonus: CheapTargetBonus50},
			{Below: CheapTargetBelow100, Bonus: CheapTargetBonus100},
		},
		LowValueMax: LowValueMaxPrice,
		MinRatio:    MinTargetRatio,
		MinChance:   MinChance,
		MaxChance:   MaxChance,
	}
}

// Chance is the breakdown of an upgrade probability, in percent.
type Chance struct {
	SourceTotalPrice float64 `json:"source_total_price"`
	TargetPrice      float64 `json:"target_price"`
	PriceRatio       float64 `json:"price_ratio"`
	BaseChance       float64 `json:"base_chance"`
	Bonus            float64 `json:"bonus"`
	FinalChance      float64 `json:"final_chance"`
}

// Attempt is a rolled upgrade.
type Attempt struct {
	Chance
	Roll    float64 `json:"rolled_value"`
	Success bool    `json:"success"`
}

// CalculateChance uses the default curves.
func CalculateChance(sourceTotalPrice, targetPrice float64) Chance {
	return DefaultCalculator().Calculate(sourceTotalPrice, targetPrice)
}

// IsValidTarget uses the default rules.
func IsValidTarget(sourceTotalPrice, targetPrice float64) bool {
	return DefaultCalculator().IsValidTarget(sourceTotalPrice, targetPrice)
}

// Calculate computes the chance to turn items worth sourceTotalPrice into one
// worth targetPrice. Callers must check IsValidTarget first.
func (c Calculator) Calculate(sourceTotalPrice, targetPrice float64) Chance {
	ratio := math.Inf(1)
	if sourceTotalPrice > 0 {
		ratio = targetPrice / sourceTotalPrice
	}

	curve := c.Normal
	if sourceTotalPrice <= c.LowValueMax {
		curve = c.LowValue
	}

	base := curve.At(ratio)
	bonus := c.bonusFor(targetPrice)

	return Chance{
		SourceTotalPrice: sourceTotalPrice,
		TargetPrice:      targetPrice,
		PriceRatio:       ratio,
		BaseChance:       base,
		Bonus:            bonus,
		FinalChance:      utils.Clamp(base+bonus, c.MinChance, c.MaxChance),
	}
}

// IsValidTarget reports whether targetPrice is an acceptable upgrade goal.
// Low-value sources only need a strictly pricier target; the rest need MinRatio.
func (c Calculator) IsValidTarget(sourceTotalPrice, targetPrice float64) bool {
	if math.IsNaN(sourceTotalPrice) || math.IsNaN(targetPrice) || sourceTotalPrice <= 0 {
		return false
	}
	if sourceTotalPrice <= c.LowValueMax {
		return targetPrice > sourceTotalPrice
	}
	return targetPrice >= sourceTotalPrice*c.MinRatio-RatioTolerance
}

func (c Calculator) bonusFor(targetPrice float64) float64 {
	// the tightest threshold wins
	best := 0.0
	bestBelow := math.Inf(1)
	for _, b := range c.CheapBonus {
		if targetPrice < b.Below && b.Below < bestBelow {
			best, bestBelow = b.Bonus, b.Below
		}
	}
	return best
}

// Roll draws against the final chance: success when roll < FinalChance.
func Roll(chance Chance, rnd reward.RandomSource) Attempt {
	roll := rnd() * RollScale
	return Attempt{
		Chance:  chance,
		Roll:    roll,
		Success: roll < chance.FinalChance,
	}
}

// Validate rejects curves that are empty, unordered or increasing, and inverted bounds.
func (c Calculator) Validate() error {
	for _, curve := range []Curve{c.Normal, c.LowValue} {
		if len(curve) == 0 {
			return errors.New(ErrMsgEmptyCurve)
		}
		for i := 1; i < len(curve); i++ {
			if curve[i].Ratio <= curve[i-1].Ratio || curve[i].Chance > curve[i-1].Chance {
				return errors.New(ErrMsgCurveNotMonotone)
			}
		}
	}
	if c.MinChance < 0 || c.MaxChance > RollScale || c.MinChance > c.MaxChance {
		return errors.New(ErrMsgChanceBounds)
	}
	if c.MinRatio < 1 {
		return errors.New(ErrMsgMinRatio)
	}
	return nil
}
