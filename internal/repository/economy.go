package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/chibox/chibox-server/internal/domain"
)

// EconomyTx groups the row-locking reads and writes a single request performs
// while granting rewards. Rows read with ForUpdate stay locked until Commit or Rollback.
type EconomyTx interface {
	Tx

	// User operations
	GetUserForUpdate(ctx context.Context, userID string) (*domain.User, error)
	UpdateBalance(ctx context.Context, userID string, balance decimal.Decimal) error
	UpdateSubscription(ctx context.Context, userID string, tier int, expiresAt *time.Time) error

	// Catalog reads inside the transaction
	GetItemByID(ctx context.Context, itemID string) (*domain.Item, error)

	// Inventory operations
	InsertInventoryItem(ctx context.Context, item *domain.InventoryItem) error
	GetInventoryItemsForUpdate(ctx context.Context, userID string, inventoryIDs []string) ([]domain.InventoryItem, error)
	UpdateInventoryStatus(ctx context.Context, inventoryIDs []string, status domain.InventoryStatus) error

	// Attempt operations; GetAttemptForUpdate returns nil, nil when no record exists
	GetAttemptForUpdate(ctx context.Context, userID string, game domain.Game) (*domain.AttemptRecord, error)
	SaveAttempt(ctx context.Context, rec domain.AttemptRecord) error
}

// Economy opens reward-granting transactions
type Economy interface {
	BeginTx(ctx context.Context) (EconomyTx, error)
}
