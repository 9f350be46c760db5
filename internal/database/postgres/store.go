// Package postgres implements the repository interfaces on PostgreSQL.
package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/chibox/chibox-server/internal/repository"
)

var (
	_ repository.User      = (*Store)(nil)
	_ repository.Catalog   = (*Store)(nil)
	_ repository.Inventory = (*Store)(nil)
	_ repository.Attempts  = (*Store)(nil)
	_ repository.Economy   = (*Store)(nil)

	_ repository.CatalogWriter = (*Store)(nil)
)

// Store is the PostgreSQL repository
type Store struct {
	pool *pgxpool.Pool
}

// New creates a Store over an open pool
func New(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

// BeginTx opens a transaction for row-locking reward grants
func (s *Store) BeginTx(ctx context.Context) (repository.EconomyTx, error) {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgBeginTx, err)
	}
	return &economyTx{tx: tx}, nil
}
