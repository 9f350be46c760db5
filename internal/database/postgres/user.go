package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/chibox/chibox-server/internal/domain"
)

const userColumns = `user_id, username, password_hash, balance::text, subscription_tier, subscription_expires_at, created_at`

func scanUser(row pgx.Row) (*domain.User, error) {
	var (
		u       domain.User
		balance string
	)
	if err := row.Scan(&u.ID, &u.Username, &u.PasswordHash, &balance, &u.SubscriptionTier, &u.SubscriptionExpiresAt, &u.CreatedAt); err != nil {
		return nil, notFound(err, domain.ErrUserNotFound)
	}
	var err error
	if u.Balance, err = parseMoney("balance", balance); err != nil {
		return nil, err
	}
	return &u, nil
}

func (s *Store) CreateUser(ctx context.Context, user *domain.User) error {
	row := s.pool.QueryRow(ctx, `
		INSERT INTO users (username, password_hash, balance, subscription_tier, subscription_expires_at)
		VALUES ($1, $2, $3::text::numeric, $4, $5)
		RETURNING user_id, created_at`,
		user.Username, user.PasswordHash, user.Balance.String(), user.SubscriptionTier, user.SubscriptionExpiresAt)
	if err := row.Scan(&user.ID, &user.CreatedAt); err != nil {
		if isUniqueViolation(err) {
			return domain.ErrUsernameTaken
		}
		return fmt.Errorf(ErrMsgWrite, "user", err)
	}
	return nil
}

func (s *Store) GetUserByID(ctx context.Context, userID string) (*domain.User, error) {
	return getUser(ctx, s.pool, `SELECT `+userColumns+` FROM users WHERE user_id = $1`, userID)
}

func (s *Store) GetUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	return getUser(ctx, s.pool, `SELECT `+userColumns+` FROM users WHERE lower(username) = lower($1)`, username)
}

func getUser(ctx context.Context, q querier, sql string, arg string) (*domain.User, error) {
	u, err := scanUser(q.QueryRow(ctx, sql, arg))
	if err != nil && !errors.Is(err, domain.ErrUserNotFound) {
		return nil, fmt.Errorf(ErrMsgUserQuery, err)
	}
	return u, err
}
