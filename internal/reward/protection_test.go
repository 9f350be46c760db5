package reward

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSelectWithProtection_ExcludesRecent(t *testing.T) {
	candidates := []Candidate{
		{ID: "a", Weight: 1},
		{ID: "b", Weight: 1},
		{ID: "c", Weight: 1},
	}
	weights := BaseWeights(candidates)

	for _, roll := range []float64{0, 0.25, 0.5, 0.99} {
		res, err := SelectWithProtection(candidates, weights, []string{"a", "b"}, 2, fixedSource(roll))
		require.NoError(t, err)
		assert.Equal(t, "c", res.Selected.ID)
		assert.False(t, res.ProtectionWaived)
		assert.Equal(t, []float64{0, 0, 1}, res.AppliedWeights)
	}
	assert.Equal(t, []float64{1, 1, 1}, weights, "caller weights must not be mutated")
}

func TestSelectWithProtection_WindowLimitsExclusion(t *testing.T) {
	candidates := []Candidate{{ID: "a", Weight: 1}, {ID: "b", Weight: 1}}

	// only the newest entry ("b") is inside a window of 1
	res, err := SelectWithProtection(candidates, BaseWeights(candidates), []string{"b", "a"}, 1, fixedSource(0.99))
	require.NoError(t, err)
	assert.Equal(t, "a", res.Selected.ID)
}

func TestSelectWithProtection_DisabledWindow(t *testing.T) {
	candidates := []Candidate{{ID: "a", Weight: 1}, {ID: "b", Weight: 1}}

	res, err := SelectWithProtection(candidates, BaseWeights(candidates), []string{"a"}, 0, fixedSource(0))
	require.NoError(t, err)
	assert.Equal(t, "a", res.Selected.ID)
	assert.False(t, res.ProtectionWaived)
}

func TestSelectWithProtection_FailOpen(t *testing.T) {
	candidates := []Candidate{{ID: "only", Weight: 5}}

	res, err := SelectWithProtection(candidates, BaseWeights(candidates), []string{"only"}, 3, fixedSource(0.4))
	require.NoError(t, err)
	assert.Equal(t, "only", res.Selected.ID)
	assert.True(t, res.ProtectionWaived)
	assert.Equal(t, []float64{5}, res.AppliedWeights)
}

func TestSelectWithProtection_EmptyPool(t *testing.T) {
	_, err := SelectWithProtection(nil, nil, []string{"x"}, 1, fixedSource(0))
	assert.ErrorIs(t, err, ErrEmptyPool)
}

func TestResolveWithProtection_AppliesBonus(t *testing.T) {
	candidates := []Candidate{
		{ID: "cheap", Weight: 1, Price: 10},
		{ID: "rare", Weight: 1, Price: 6000},
		{ID: "recent", Weight: 1, Price: 6000},
	}

	res, err := ResolveWithProtection(candidates, 100, []string{"recent"}, 5, fixedSource(0.5))
	require.NoError(t, err)
	assert.Equal(t, "rare", res.Selected.ID)
	assert.Zero(t, res.AppliedWeights[2])
	assert.InDelta(t, 8.0, res.AppliedWeights[1], 1e-9)
}
