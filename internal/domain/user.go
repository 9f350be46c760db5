package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// User represents a registered player
type User struct {
	ID                    string          `json:"id" db:"user_id"`
	Username              string          `json:"username" db:"username"`
	PasswordHash          string          `json:"-" db:"password_hash"`
	Balance               decimal.Decimal `json:"balance" db:"balance"`
	SubscriptionTier      int             `json:"subscription_tier" db:"subscription_tier"`
	SubscriptionExpiresAt *time.Time      `json:"subscription_expires_at,omitempty" db:"subscription_expires_at"`
	CreatedAt             time.Time       `json:"created_at" db:"created_at"`
}

// ActiveTier returns the subscription tier in effect at now, or 0 when the
// subscription is missing or expired.
func (u User) ActiveTier(now time.Time) int {
	if u.SubscriptionTier <= 0 || u.SubscriptionExpiresAt == nil || !now.Before(*u.SubscriptionExpiresAt) {
		return 0
	}
	return u.SubscriptionTier
}

// ExtendSubscription adds days to the subscription. An expired subscription
// restarts from now at fallbackTier; an active one keeps its tier.
func (u *User) ExtendSubscription(days, fallbackTier int, now time.Time) {
	if days <= 0 {
		return
	}
	start := now
	if u.ActiveTier(now) > 0 {
		start = *u.SubscriptionExpiresAt
	} else {
		u.SubscriptionTier = fallbackTier
	}
	expires := start.AddDate(0, 0, days)
	u.SubscriptionExpiresAt = &expires
}
