package repository

import (
	"context"

	"github.com/chibox/chibox-server/internal/domain"
)

// User defines the interface for user persistence
type User interface {
	// CreateUser stores a new user and fills in ID and CreatedAt.
	// It returns domain.ErrUsernameTaken on a duplicate username.
	CreateUser(ctx context.Context, user *domain.User) error
	GetUserByID(ctx context.Context, userID string) (*domain.User, error)
	GetUserByUsername(ctx context.Context, username string) (*domain.User, error)
}
