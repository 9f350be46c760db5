package caseopen

import (
	"context"
	"fmt"

	"github.com/chibox/chibox-server/internal/claimlock"
	"github.com/chibox/chibox-server/internal/domain"
	"github.com/chibox/chibox-server/internal/event"
	"github.com/chibox/chibox-server/internal/logger"
	"github.com/chibox/chibox-server/internal/repository"
)

// Sell credits the item's granted price back to the balance and marks it sold
func (s *service) Sell(ctx context.Context, userID, inventoryID string) (*domain.SaleResult, error) {
	if inventoryID == "" {
		return nil, fmt.Errorf("%w: %s", domain.ErrInvalidInput, ErrMsgMissingID)
	}

	var (
		sale   *domain.SaleResult
		itemID string
	)
	err := claimlock.WithLock(ctx, s.deps.Locker, claimlock.Key(domain.ActionSell, userID), s.lockTTL, func() error {
		var err error
		sale, itemID, err = s.sellTx(ctx, userID, inventoryID)
		return err
	})
	if err != nil {
		return nil, err
	}

	log := logger.FromContext(ctx)
	log.Info(LogMsgItemSold, "inventory_id", inventoryID, "amount", sale.Amount.String())

	evt := event.NewItemSoldEvent(domain.ItemSoldPayload{
		UserID:      userID,
		InventoryID: inventoryID,
		ItemID:      itemID,
		Amount:      sale.Amount.String(),
	})
	if perr := s.deps.Bus.Publish(ctx, evt); perr != nil {
		log.Warn(LogMsgPublishFailed, "error", perr)
	}
	return sale, nil
}

func (s *service) sellTx(ctx context.Context, userID, inventoryID string) (*domain.SaleResult, string, error) {
	tx, err := s.deps.Economy.BeginTx(ctx)
	if err != nil {
		return nil, "", fmt.Errorf(ErrMsgBeginTxFailed, err)
	}
	defer repository.SafeRollback(ctx, tx)

	user, err := tx.GetUserForUpdate(ctx, userID)
	if err != nil {
		return nil, "", err
	}

	items, err := tx.GetInventoryItemsForUpdate(ctx, userID, []string{inventoryID})
	if err != nil {
		return nil, "", err
	}
	if len(items) == 0 {
		return nil, "", domain.ErrInventoryItemNotFound
	}
	inv := items[0]
	if inv.Status != domain.InventoryActive {
		return nil, "", fmt.Errorf("%w: %s", domain.ErrItemNotActive, inv.ID)
	}

	if err := tx.UpdateInventoryStatus(ctx, []string{inv.ID}, domain.InventorySold); err != nil {
		return nil, "", err
	}
	balance := user.Balance.Add(inv.Price)
	if err := tx.UpdateBalance(ctx, userID, balance); err != nil {
		return nil, "", err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, "", fmt.Errorf(ErrMsgCommitFailed, err)
	}
	return &domain.SaleResult{InventoryID: inv.ID, Amount: inv.Price, Balance: balance}, inv.ItemID, nil
}
