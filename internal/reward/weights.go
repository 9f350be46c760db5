package reward

import "math"

// PriceTier maps a price floor to the exponent applied to (1 + bonus/100).
type PriceTier struct {
	MinPrice float64 `json:"min_price"`
	Exponent float64 `json:"exponent"`
}

// Modifier turns base drop weights into bonus-adjusted weights.
// Tiers must be ordered by MinPrice descending; the first matching tier wins,
// and prices below every tier use BelowExponent.
type Modifier struct {
	Tiers         []PriceTier `json:"tiers"`
	BelowExponent float64     `json:"below_exponent"`
}

// DefaultModifier returns the production price tiers.
func DefaultModifier() Modifier {
	return Modifier{
		Tiers: []PriceTier{
			{MinPrice: TierLegendaryMinPrice, Exponent: TierLegendaryExponent},
			{MinPrice: TierEpicMinPrice, Exponent: TierEpicExponent},
			{MinPrice: TierRareMinPrice, Exponent: TierRareExponent},
			{MinPrice: TierUncommonMinPrice, Exponent: TierUncommonExponent},
		},
		BelowExponent: TierCommonExponent,
	}
}

// ModifyWeights applies the default modifier.
func ModifyWeights(candidates []Candidate, bonusPercent float64) []float64 {
	return DefaultModifier().Apply(candidates, bonusPercent)
}

// Apply returns one adjusted weight per candidate. Higher price tiers gain
// weight super-linearly with the bonus, cheap candidates lose share. The sum is
// not normalized; selection works on relative weights.
func (m Modifier) Apply(candidates []Candidate, bonusPercent float64) []float64 {
	bonus := sanitizeBonus(bonusPercent)
	out := make([]float64, len(candidates))
	for i, c := range candidates {
		base := BaseWeight(c.Weight)
		if bonus == 0 || base == 0 {
			out[i] = base
			continue
		}
		factor := math.Pow(1+bonus/100, m.exponentFor(sanitizePrice(c.Price)))
		out[i] = clampWeight(base * factor)
	}
	return out
}

// BaseWeights returns the unmodified weights (BaseWeight of each candidate).
func BaseWeights(candidates []Candidate) []float64 {
	out := make([]float64, len(candidates))
	for i, c := range candidates {
		out[i] = BaseWeight(c.Weight)
	}
	return out
}

// BaseWeight normalizes a configured drop weight: zero means unset and maps to
// DefaultWeight, malformed values (negative, NaN, Inf) map to 0.
func BaseWeight(w float64) float64 {
	switch {
	case w == 0:
		return DefaultWeight
	case math.IsNaN(w), math.IsInf(w, 0), w < 0:
		return 0
	default:
		return w
	}
}

func (m Modifier) exponentFor(price float64) float64 {
	for _, t := range m.Tiers {
		if price >= t.MinPrice {
			return t.Exponent
		}
	}
	return m.BelowExponent
}

func sanitizeBonus(b float64) float64 {
	if math.IsNaN(b) || b <= 0 {
		return 0
	}
	return math.Min(b, MaxBonusPercent)
}

func sanitizePrice(p float64) float64 {
	if math.IsNaN(p) || p < 0 {
		return 0
	}
	return p
}

func clampWeight(w float64) float64 {
	if math.IsNaN(w) || w < 0 {
		return 0
	}
	if math.IsInf(w, 1) {
		return math.MaxFloat64
	}
	return w
}
