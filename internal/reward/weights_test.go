package reward

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBaseWeight(t *testing.T) {
	tests := []struct {
		name     string
		weight   float64
		expected float64
	}{
		{name: "unset weight defaults to one", weight: 0, expected: 1},
		{name: "positive weight is kept", weight: 7.5, expected: 7.5},
		{name: "negative weight is clamped", weight: -3, expected: 0},
		{name: "NaN is clamped", weight: math.NaN(), expected: 0},
		{name: "infinity is clamped", weight: math.Inf(1), expected: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, BaseWeight(tt.weight))
		})
	}
}

func TestModifyWeights_ZeroBonusIsIdentity(t *testing.T) {
	candidates := []Candidate{
		{ID: "cheap", Weight: 50, Price: 10},
		{ID: "mid", Weight: 20, Price: 300},
		{ID: "top", Weight: 1, Price: 9000},
		{ID: "unset", Price: 100},
	}

	assert.Equal(t, []float64{50, 20, 1, 1}, ModifyWeights(candidates, 0))
	assert.Equal(t, BaseWeights(candidates), ModifyWeights(candidates, 0))
}

func TestModifyWeights_Idempotent(t *testing.T) {
	candidates := []Candidate{
		{ID: "a", Weight: 10, Price: 50},
		{ID: "b", Weight: 5, Price: 700},
		{ID: "c", Weight: 1, Price: 6000},
	}

	first := ModifyWeights(candidates, 25)
	second := ModifyWeights(candidates, 25)
	assert.Equal(t, first, second)
	assert.Equal(t, 10.0, candidates[0].Weight, "input must not be mutated")
}

func TestModifyWeights_Tiers(t *testing.T) {
	const bonus = 20.0
	factor := 1 + bonus/100

	tests := []struct {
		name     string
		price    float64
		expected float64
	}{
		{name: "legendary", price: 5000, expected: 10 * math.Pow(factor, 3)},
		{name: "epic", price: 1000, expected: 10 * math.Pow(factor, 2)},
		{name: "rare", price: 500, expected: 10 * math.Pow(factor, 1.5)},
		{name: "uncommon", price: 100, expected: 10 * factor},
		{name: "common loses share", price: 99.99, expected: 10 * math.Pow(factor, -0.5)},
		{name: "negative price treated as zero", price: -5, expected: 10 * math.Pow(factor, -0.5)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ModifyWeights([]Candidate{{ID: "x", Weight: 10, Price: tt.price}}, bonus)
			assert.InDelta(t, tt.expected, got[0], 1e-9)
		})
	}
}

func TestModifyWeights_MonotonicForExpensiveTiers(t *testing.T) {
	candidates := []Candidate{
		{ID: "uncommon", Weight: 3, Price: 150},
		{ID: "epic", Weight: 3, Price: 2500},
	}

	prev := ModifyWeights(candidates, 0)
	for _, bonus := range []float64{5, 10, 25, 50, 100, 300} {
		cur := ModifyWeights(candidates, bonus)
		for i := range cur {
			assert.GreaterOrEqual(t, cur[i], prev[i], "bonus %v candidate %d", bonus, i)
		}
		prev = cur
	}
}

func TestModifyWeights_InvalidBonus(t *testing.T) {
	candidates := []Candidate{{ID: "a", Weight: 4, Price: 5000}}

	assert.Equal(t, []float64{4}, ModifyWeights(candidates, -10))
	assert.Equal(t, []float64{4}, ModifyWeights(candidates, math.NaN()))
}

func TestModifyWeights_NeverNegative(t *testing.T) {
	candidates := []Candidate{
		{ID: "neg", Weight: -1, Price: 6000},
		{ID: "nan", Weight: math.NaN(), Price: 10},
		{ID: "ok", Weight: 2, Price: 10},
	}

	for _, w := range ModifyWeights(candidates, 80) {
		assert.GreaterOrEqual(t, w, 0.0)
	}
}

func TestModifier_CustomTiers(t *testing.T) {
	m := Modifier{
		Tiers:         []PriceTier{{MinPrice: 10, Exponent: 1}},
		BelowExponent: 0,
	}
	got := m.Apply([]Candidate{{ID: "a", Weight: 2, Price: 10}, {ID: "b", Weight: 2, Price: 1}}, 100)
	assert.InDelta(t, 4.0, got[0], 1e-12)
	assert.InDelta(t, 2.0, got[1], 1e-12)
}
