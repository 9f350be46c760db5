package repository

import (
	"context"
	"time"

	"github.com/chibox/chibox-server/internal/domain"
)

// Attempts defines non-transactional access to daily mini-game attempts
type Attempts interface {
	// GetAttempt returns nil, nil when the user never played the game
	GetAttempt(ctx context.Context, userID string, game domain.Game) (*domain.AttemptRecord, error)
	// ResetAttempts clears counters of every record older than dayStart
	ResetAttempts(ctx context.Context, dayStart time.Time) (int64, error)
}
