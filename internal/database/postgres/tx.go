package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/chibox/chibox-server/internal/domain"
)

// economyTx wraps a pgx transaction; ForUpdate reads take row locks
type economyTx struct {
	tx pgx.Tx
}

func (t *economyTx) Commit(ctx context.Context) error   { return t.tx.Commit(ctx) }
func (t *economyTx) Rollback(ctx context.Context) error { return t.tx.Rollback(ctx) }

func (t *economyTx) GetUserForUpdate(ctx context.Context, userID string) (*domain.User, error) {
	return getUser(ctx, t.tx, `SELECT `+userColumns+` FROM users WHERE user_id = $1 FOR UPDATE`, userID)
}

func (t *economyTx) UpdateBalance(ctx context.Context, userID string, balance decimal.Decimal) error {
	if balance.IsNegative() {
		return domain.ErrInsufficientFunds
	}
	return t.execOne(ctx, domain.ErrUserNotFound, "balance",
		`UPDATE users SET balance = $2::text::numeric WHERE user_id = $1`, userID, balance.String())
}

func (t *economyTx) UpdateSubscription(ctx context.Context, userID string, tier int, expiresAt *time.Time) error {
	return t.execOne(ctx, domain.ErrUserNotFound, "subscription",
		`UPDATE users SET subscription_tier = $2, subscription_expires_at = $3 WHERE user_id = $1`, userID, tier, expiresAt)
}

func (t *economyTx) GetItemByID(ctx context.Context, itemID string) (*domain.Item, error) {
	return getItem(ctx, t.tx, itemID)
}

func (t *economyTx) InsertInventoryItem(ctx context.Context, inv *domain.InventoryItem) error {
	_, err := t.tx.Exec(ctx, `
		INSERT INTO inventory (inventory_id, user_id, item_id, price, status, source, case_id, created_at)
		VALUES ($1, $2, $3, $4::text::numeric, $5, $6, $7, $8)`,
		inv.ID, inv.UserID, inv.ItemID, inv.Price.String(), string(inv.Status), string(inv.Source), inv.CaseID, inv.CreatedAt)
	if err != nil {
		return fmt.Errorf(ErrMsgWrite, "inventory item", err)
	}
	return nil
}

// GetInventoryItemsForUpdate locks and returns the rows owned by userID; ids owned by others are omitted
func (t *economyTx) GetInventoryItemsForUpdate(ctx context.Context, userID string, inventoryIDs []string) ([]domain.InventoryItem, error) {
	return listInventory(ctx, t.tx, `
		SELECT `+inventoryColumns+` FROM inventory
		WHERE user_id = $1 AND inventory_id = ANY($2)
		ORDER BY inventory_id
		FOR UPDATE`, userID, inventoryIDs)
}

func (t *economyTx) UpdateInventoryStatus(ctx context.Context, inventoryIDs []string, status domain.InventoryStatus) error {
	tag, err := t.tx.Exec(ctx, `UPDATE inventory SET status = $2 WHERE inventory_id = ANY($1)`, inventoryIDs, string(status))
	if err != nil {
		return fmt.Errorf(ErrMsgWrite, "inventory status", err)
	}
	if tag.RowsAffected() != int64(len(inventoryIDs)) {
		return domain.ErrInventoryItemNotFound
	}
	return nil
}

func (t *economyTx) GetAttemptForUpdate(ctx context.Context, userID string, game domain.Game) (*domain.AttemptRecord, error) {
	return getAttempt(ctx, t.tx, attemptSelect+` FOR UPDATE`, userID, game)
}

func (t *economyTx) SaveAttempt(ctx context.Context, rec domain.AttemptRecord) error {
	_, err := t.tx.Exec(ctx, `
		INSERT INTO minigame_attempts (user_id, game, day_start, used, won_today)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (user_id, game) DO UPDATE SET
			day_start = EXCLUDED.day_start, used = EXCLUDED.used, won_today = EXCLUDED.won_today`,
		rec.UserID, string(rec.Game), rec.DayStart, rec.Used, rec.WonToday)
	if err != nil {
		return fmt.Errorf(ErrMsgWrite, "attempt", err)
	}
	return nil
}

func (t *economyTx) execOne(ctx context.Context, missing error, what, sql string, args ...any) error {
	tag, err := t.tx.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf(ErrMsgWrite, what, err)
	}
	if tag.RowsAffected() == 0 {
		return missing
	}
	return nil
}
