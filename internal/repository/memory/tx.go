package memory

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"

	"github.com/chibox/chibox-server/internal/domain"
	"github.com/chibox/chibox-server/internal/repository"
)

var errTxClosed = errors.New(domain.ErrMsgTxClosed)

// BeginTx locks the store until Commit or Rollback
func (s *Store) BeginTx(ctx context.Context) (repository.EconomyTx, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	return &tx{s: s}, nil
}

// tx records undo steps so Rollback can restore the maps
type tx struct {
	s    *Store
	undo []func()
	done bool
}

func (t *tx) Commit(context.Context) error {
	if t.done {
		return errTxClosed
	}
	t.done = true
	t.undo = nil
	t.s.mu.Unlock()
	return nil
}

func (t *tx) Rollback(context.Context) error {
	if t.done {
		return errTxClosed
	}
	for i := len(t.undo) - 1; i >= 0; i-- {
		t.undo[i]()
	}
	t.done = true
	t.s.mu.Unlock()
	return nil
}

func (t *tx) GetUserForUpdate(_ context.Context, userID string) (*domain.User, error) {
	return t.s.userByID(userID)
}

func (t *tx) saveUser(userID string, mutate func(u *domain.User)) error {
	u, ok := t.s.users[userID]
	if !ok {
		return domain.ErrUserNotFound
	}
	prev := *u
	t.undo = append(t.undo, func() { *t.s.users[userID] = prev })
	mutate(u)
	return nil
}

func (t *tx) UpdateBalance(_ context.Context, userID string, balance decimal.Decimal) error {
	return t.saveUser(userID, func(u *domain.User) { u.Balance = balance })
}

func (t *tx) UpdateSubscription(_ context.Context, userID string, tier int, expiresAt *time.Time) error {
	return t.saveUser(userID, func(u *domain.User) {
		u.SubscriptionTier = tier
		u.SubscriptionExpiresAt = expiresAt
	})
}

func (t *tx) GetItemByID(_ context.Context, itemID string) (*domain.Item, error) {
	return t.s.itemByID(itemID)
}

func (t *tx) InsertInventoryItem(_ context.Context, item *domain.InventoryItem) error {
	if item.CreatedAt.IsZero() {
		item.CreatedAt = t.s.clock()
	}
	cp := *item
	id := item.ID
	t.s.inventory[id] = &cp
	t.undo = append(t.undo, func() { delete(t.s.inventory, id) })
	return nil
}

func (t *tx) GetInventoryItemsForUpdate(_ context.Context, userID string, inventoryIDs []string) ([]domain.InventoryItem, error) {
	out := make([]domain.InventoryItem, 0, len(inventoryIDs))
	for _, id := range inventoryIDs {
		inv, ok := t.s.inventory[id]
		if !ok || inv.UserID != userID {
			continue
		}
		out = append(out, *inv)
	}
	return out, nil
}

func (t *tx) UpdateInventoryStatus(_ context.Context, inventoryIDs []string, status domain.InventoryStatus) error {
	for _, id := range inventoryIDs {
		inv, ok := t.s.inventory[id]
		if !ok {
			return domain.ErrInventoryItemNotFound
		}
		prev := inv.Status
		t.undo = append(t.undo, func() { inv.Status = prev })
		inv.Status = status
	}
	return nil
}

func (t *tx) GetAttemptForUpdate(_ context.Context, userID string, game domain.Game) (*domain.AttemptRecord, error) {
	rec, ok := t.s.attempts[attemptKey{userID, game}]
	if !ok {
		return nil, nil
	}
	return &rec, nil
}

func (t *tx) SaveAttempt(_ context.Context, rec domain.AttemptRecord) error {
	key := attemptKey{rec.UserID, rec.Game}
	prev, existed := t.s.attempts[key]
	t.undo = append(t.undo, func() {
		if existed {
			t.s.attempts[key] = prev
		} else {
			delete(t.s.attempts, key)
		}
	})
	t.s.attempts[key] = rec
	return nil
}
