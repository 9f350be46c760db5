package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/chibox/chibox-server/internal/domain"
)

const attemptSelect = `SELECT user_id, game, day_start, used, won_today FROM minigame_attempts WHERE user_id = $1 AND game = $2`

func getAttempt(ctx context.Context, q querier, sql, userID string, game domain.Game) (*domain.AttemptRecord, error) {
	var (
		rec  domain.AttemptRecord
		name string
	)
	err := q.QueryRow(ctx, sql, userID, string(game)).Scan(&rec.UserID, &name, &rec.DayStart, &rec.Used, &rec.WonToday)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf(ErrMsgAttemptQuery, err)
	}
	rec.Game = domain.Game(name)
	return &rec, nil
}

func (s *Store) GetAttempt(ctx context.Context, userID string, game domain.Game) (*domain.AttemptRecord, error) {
	return getAttempt(ctx, s.pool, attemptSelect, userID, game)
}

func (s *Store) ResetAttempts(ctx context.Context, dayStart time.Time) (int64, error) {
	tag, err := s.pool.Exec(ctx, `
		UPDATE minigame_attempts SET used = 0, won_today = false, day_start = $1
		WHERE day_start < $1`, dayStart)
	if err != nil {
		return 0, fmt.Errorf(ErrMsgWrite, "attempt reset", err)
	}
	return tag.RowsAffected(), nil
}
