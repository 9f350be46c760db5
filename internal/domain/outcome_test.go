package domain

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOutcome_MarshalJSON(t *testing.T) {
	tests := []struct {
		name     string
		outcome  Outcome
		expected string
	}{
		{name: "cash", outcome: CashOutcome(50), expected: `{"kind":"cash","amount":"50"}`},
		{name: "subscription", outcome: SubscriptionOutcome(7), expected: `{"kind":"subscription","days":7}`},
		{name: "item", outcome: ItemOutcome("knife"), expected: `{"kind":"item","item_id":"knife"}`},
		{name: "empty", outcome: EmptyOutcome(), expected: `{"kind":"empty"}`},
		{name: "zero value is empty", outcome: Outcome{}, expected: `{"kind":"empty"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := json.Marshal(tt.outcome)
			require.NoError(t, err)
			assert.JSONEq(t, tt.expected, string(data))
		})
	}
}

func TestOutcome_UnmarshalJSON(t *testing.T) {
	var o Outcome
	require.NoError(t, json.Unmarshal([]byte(`{"kind":"cash","amount":"200"}`), &o))
	assert.Equal(t, OutcomeCash, o.Kind)
	assert.True(t, o.Amount.Equal(decimal.NewFromInt(200)))

	assert.ErrorIs(t, json.Unmarshal([]byte(`{"kind":"cash"}`), &o), ErrInvalidInput)
	assert.ErrorIs(t, json.Unmarshal([]byte(`{"kind":"jackpot"}`), &o), ErrInvalidInput)
}

func TestOutcome_IsWin(t *testing.T) {
	assert.True(t, CashOutcome(5).IsWin())
	assert.True(t, SubscriptionOutcome(1).IsWin())
	assert.True(t, ItemOutcome("").IsWin())
	assert.False(t, EmptyOutcome().IsWin())
	assert.False(t, Outcome{}.IsWin())
}

func TestUser_ActiveTier(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	future := now.Add(time.Hour)
	past := now.Add(-time.Hour)

	assert.Equal(t, 2, User{SubscriptionTier: 2, SubscriptionExpiresAt: &future}.ActiveTier(now))
	assert.Equal(t, 0, User{SubscriptionTier: 2, SubscriptionExpiresAt: &past}.ActiveTier(now))
	assert.Equal(t, 0, User{SubscriptionTier: 2}.ActiveTier(now))
	assert.Equal(t, 0, User{SubscriptionExpiresAt: &future}.ActiveTier(now))
}

func TestUser_ExtendSubscription(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	t.Run("expired subscription restarts from now", func(t *testing.T) {
		u := User{}
		u.ExtendSubscription(3, 1, now)
		require.NotNil(t, u.SubscriptionExpiresAt)
		assert.Equal(t, now.AddDate(0, 0, 3), *u.SubscriptionExpiresAt)
		assert.Equal(t, 1, u.SubscriptionTier)
	})

	t.Run("active subscription is extended and keeps tier", func(t *testing.T) {
		exp := now.AddDate(0, 0, 2)
		u := User{SubscriptionTier: 3, SubscriptionExpiresAt: &exp}
		u.ExtendSubscription(7, 1, now)
		assert.Equal(t, now.AddDate(0, 0, 9), *u.SubscriptionExpiresAt)
		assert.Equal(t, 3, u.SubscriptionTier)
	})

	t.Run("non-positive days is a no-op", func(t *testing.T) {
		u := User{}
		u.ExtendSubscription(0, 1, now)
		assert.Nil(t, u.SubscriptionExpiresAt)
	})
}

func TestParseGame(t *testing.T) {
	g, err := ParseGame("plinko")
	require.NoError(t, err)
	assert.Equal(t, GamePlinko, g)

	_, err = ParseGame("tictactoe")
	assert.ErrorIs(t, err, ErrUnknownGame)
}
