package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/chibox/chibox-server/internal/domain"
)

const inventoryColumns = `inventory_id, user_id, item_id, price::text, status, source, case_id, created_at`

func scanInventory(row pgx.Row) (domain.InventoryItem, error) {
	var (
		inv            domain.InventoryItem
		price          string
		status, source string
	)
	if err := row.Scan(&inv.ID, &inv.UserID, &inv.ItemID, &price, &status, &source, &inv.CaseID, &inv.CreatedAt); err != nil {
		return inv, err
	}
	inv.Status = domain.InventoryStatus(status)
	inv.Source = domain.InventorySource(source)
	var err error
	inv.Price, err = parseMoney("inventory price", price)
	return inv, err
}

func listInventory(ctx context.Context, q querier, sql string, args ...any) ([]domain.InventoryItem, error) {
	rows, err := q.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgInventoryRead, err)
	}
	defer rows.Close()

	var out []domain.InventoryItem
	for rows.Next() {
		inv, err := scanInventory(rows)
		if err != nil {
			return nil, fmt.Errorf(ErrMsgInventoryRead, err)
		}
		out = append(out, inv)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf(ErrMsgInventoryRead, err)
	}
	return out, nil
}

// ListInventory returns active items, newest first
func (s *Store) ListInventory(ctx context.Context, userID string) ([]domain.InventoryItem, error) {
	return listInventory(ctx, s.pool, `
		SELECT `+inventoryColumns+` FROM inventory
		WHERE user_id = $1 AND status = 'active'
		ORDER BY created_at DESC, inventory_id`, userID)
}
