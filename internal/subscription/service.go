package subscription

import (
	"context"
	"fmt"
	"time"

	"github.com/chibox/chibox-server/internal/domain"
	"github.com/chibox/chibox-server/internal/event"
	"github.com/chibox/chibox-server/internal/logger"
	"github.com/chibox/chibox-server/internal/repository"
)

// Status is a user's subscription as seen at a point in time
type Status struct {
	Active       bool       `json:"active"`
	Level        int        `json:"level"`
	Name         string     `json:"name,omitempty"`
	BonusPercent float64    `json:"bonus_percent"`
	ExpiresAt    *time.Time `json:"expires_at,omitempty"`
}

// Service defines the interface for subscription lookups
type Service interface {
	// Status is served from cache when possible
	Status(ctx context.Context, userID string) (Status, error)
	// BonusPercent is the case drop bonus the user currently receives
	BonusPercent(ctx context.Context, userID string) (float64, error)
	Invalidate(userID string)
	Table() Table
	// Register invalidates cached statuses when a mini-game grants subscription days
	Register(bus event.Bus)
}

type service struct {
	users repository.User
	table Table
	cache *StatusCache
	now   func() time.Time
}

// NewService creates a new subscription service
func NewService(users repository.User, table Table, cacheTTL time.Duration) Service {
	if cacheTTL <= 0 {
		cacheTTL = DefaultCacheTTL
	}
	return &service{
		users: users,
		table: table,
		cache: NewStatusCache(DefaultCacheSize, cacheTTL),
		now:   time.Now,
	}
}

// StatusOf computes a status from a user row without caching
func (t Table) StatusOf(u *domain.User, now time.Time) Status {
	level := u.ActiveTier(now)
	tier, ok := t.Tier(level)
	if !ok {
		return Status{}
	}
	return Status{
		Active:       true,
		Level:        level,
		Name:         tier.Name,
		BonusPercent: tier.BonusPercent,
		ExpiresAt:    u.SubscriptionExpiresAt,
	}
}

func (s *service) Status(ctx context.Context, userID string) (Status, error) {
	now := s.now()
	if st, ok := s.cache.Get(userID); ok && (st.ExpiresAt == nil || now.Before(*st.ExpiresAt)) {
		return st, nil
	}

	u, err := s.users.GetUserByID(ctx, userID)
	if err != nil {
		return Status{}, fmt.Errorf(ErrMsgGetUser, err)
	}
	st := s.table.StatusOf(u, now)
	s.cache.Set(userID, st)
	return st, nil
}

func (s *service) BonusPercent(ctx context.Context, userID string) (float64, error) {
	st, err := s.Status(ctx, userID)
	if err != nil {
		return 0, err
	}
	return st.BonusPercent, nil
}

func (s *service) Invalidate(userID string) {
	s.cache.Invalidate(userID)
}

func (s *service) Table() Table {
	return s.table
}

func (s *service) Register(bus event.Bus) {
	bus.Subscribe(event.MinigamePlayed, s.handleMinigamePlayed)
}

func (s *service) handleMinigamePlayed(ctx context.Context, evt event.Event) error {
	p, err := event.DecodePayload[domain.MinigamePlayedPayload](evt.Payload)
	if err != nil {
		return err
	}
	if p.Outcome.Kind == domain.OutcomeSubscription {
		s.cache.Invalidate(p.UserID)
		logger.FromContext(ctx).Debug(LogMsgInvalidated, "user_id", p.UserID)
	}
	return nil
}
