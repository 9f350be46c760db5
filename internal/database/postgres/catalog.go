package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/chibox/chibox-server/internal/domain"
	"github.com/chibox/chibox-server/internal/repository"
)

const itemColumns = `i.item_id, i.name, i.price::text, i.rarity, i.drop_weight, i.slot_eligible, i.image_url`

func scanItem(row pgx.Row) (domain.Item, error) {
	var (
		it    domain.Item
		price string
	)
	if err := row.Scan(&it.ID, &it.Name, &price, &it.Rarity, &it.DropWeight, &it.SlotEligible, &it.ImageURL); err != nil {
		return it, err
	}
	var err error
	it.Price, err = parseMoney("price", price)
	return it, err
}

func getItem(ctx context.Context, q querier, itemID string) (*domain.Item, error) {
	it, err := scanItem(q.QueryRow(ctx, `SELECT `+itemColumns+` FROM items i WHERE i.item_id = $1`, itemID))
	if err != nil {
		return nil, notFound(err, domain.ErrItemNotFound)
	}
	return &it, nil
}

func listItems(ctx context.Context, q querier, sql string, args ...any) ([]domain.Item, error) {
	rows, err := q.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgCatalogQuery, err)
	}
	defer rows.Close()

	var out []domain.Item
	for rows.Next() {
		it, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf(ErrMsgCatalogQuery, err)
		}
		out = append(out, it)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf(ErrMsgCatalogQuery, err)
	}
	return out, nil
}

func (s *Store) GetItemByID(ctx context.Context, itemID string) (*domain.Item, error) {
	return getItem(ctx, s.pool, itemID)
}

func (s *Store) ListItems(ctx context.Context) ([]domain.Item, error) {
	return listItems(ctx, s.pool, `SELECT `+itemColumns+` FROM items i ORDER BY i.price, i.item_id`)
}

func (s *Store) ListSlotItems(ctx context.Context) ([]domain.Item, error) {
	return listItems(ctx, s.pool, `SELECT `+itemColumns+` FROM items i WHERE i.slot_eligible ORDER BY i.price, i.item_id`)
}

func (s *Store) GetCase(ctx context.Context, caseID string) (*domain.Case, error) {
	var (
		c     domain.Case
		price string
	)
	err := s.pool.QueryRow(ctx, `SELECT case_id, name, price::text, active FROM cases WHERE case_id = $1`, caseID).
		Scan(&c.ID, &c.Name, &price, &c.Active)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrCaseNotFound
		}
		return nil, fmt.Errorf(ErrMsgCatalogQuery, err)
	}
	if c.Price, err = parseMoney("case price", price); err != nil {
		return nil, err
	}
	return &c, nil
}

// GetCaseItems applies the per-case weight when it is set
func (s *Store) GetCaseItems(ctx context.Context, caseID string) ([]domain.Item, error) {
	if _, err := s.GetCase(ctx, caseID); err != nil {
		return nil, err
	}
	return listItems(ctx, s.pool, `
		SELECT i.item_id, i.name, i.price::text, i.rarity,
		       CASE WHEN ci.weight <> 0 THEN ci.weight ELSE i.drop_weight END,
		       i.slot_eligible, i.image_url
		FROM case_items ci
		JOIN items i ON i.item_id = ci.item_id
		WHERE ci.case_id = $1
		ORDER BY ci.position, i.item_id`, caseID)
}

// UpsertItem creates or updates a catalog item
func (s *Store) UpsertItem(ctx context.Context, it domain.Item) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO items (item_id, name, price, rarity, drop_weight, slot_eligible, image_url)
		VALUES ($1, $2, $3::text::numeric, $4, $5, $6, $7)
		ON CONFLICT (item_id) DO UPDATE SET
			name = EXCLUDED.name, price = EXCLUDED.price, rarity = EXCLUDED.rarity,
			drop_weight = EXCLUDED.drop_weight, slot_eligible = EXCLUDED.slot_eligible,
			image_url = EXCLUDED.image_url`,
		it.ID, it.Name, it.Price.String(), it.Rarity, it.DropWeight, it.SlotEligible, it.ImageURL)
	if err != nil {
		return fmt.Errorf(ErrMsgWrite, "item", err)
	}
	return nil
}

// UpsertCase replaces a case and its pool in one transaction
func (s *Store) UpsertCase(ctx context.Context, c domain.Case, entries []repository.CaseEntry) error {
	return pgx.BeginFunc(ctx, s.pool, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `
			INSERT INTO cases (case_id, name, price, active) VALUES ($1, $2, $3::text::numeric, $4)
			ON CONFLICT (case_id) DO UPDATE SET name = EXCLUDED.name, price = EXCLUDED.price, active = EXCLUDED.active`,
			c.ID, c.Name, c.Price.String(), c.Active); err != nil {
			return fmt.Errorf(ErrMsgWrite, "case", err)
		}
		if _, err := tx.Exec(ctx, `DELETE FROM case_items WHERE case_id = $1`, c.ID); err != nil {
			return fmt.Errorf(ErrMsgWrite, "case items", err)
		}
		for pos, e := range entries {
			if _, err := tx.Exec(ctx,
				`INSERT INTO case_items (case_id, item_id, weight, position) VALUES ($1, $2, $3, $4)`,
				c.ID, e.ItemID, e.Weight, pos); err != nil {
				return fmt.Errorf(ErrMsgWrite, "case item", err)
			}
		}
		return nil
	})
}
