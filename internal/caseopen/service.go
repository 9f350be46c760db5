package caseopen

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/chibox/chibox-server/internal/claimlock"
	"github.com/chibox/chibox-server/internal/domain"
	"github.com/chibox/chibox-server/internal/drophistory"
	"github.com/chibox/chibox-server/internal/event"
	"github.com/chibox/chibox-server/internal/logger"
	"github.com/chibox/chibox-server/internal/repository"
	"github.com/chibox/chibox-server/internal/reward"
	"github.com/chibox/chibox-server/internal/utils"
)

// BonusProvider returns the drop bonus a user currently receives
type BonusProvider interface {
	BonusPercent(ctx context.Context, userID string) (float64, error)
}

// CaseDetails is a case together with its drop pool
type CaseDetails struct {
	Case  domain.Case   `json:"case"`
	Items []domain.Item `json:"items"`
}

// Service defines the interface for case and inventory operations
type Service interface {
	GetCase(ctx context.Context, caseID string) (*CaseDetails, error)
	Open(ctx context.Context, userID, caseID string) (*domain.CaseOpening, error)
	Inventory(ctx context.Context, userID string) ([]domain.InventoryItem, error)
	Sell(ctx context.Context, userID, inventoryID string) (*domain.SaleResult, error)
}

// Deps are the collaborators of the case service
type Deps struct {
	Economy   repository.Economy
	Catalog   repository.Catalog
	Inventory repository.Inventory
	Bonuses   BonusProvider
	History   drophistory.Store
	Locker    claimlock.Locker
	Bus       event.Publisher
}

type service struct {
	deps     Deps
	modifier reward.Modifier
	window   int
	lockTTL  time.Duration
	rnd      reward.RandomSource // Injectable for testing
	now      func() time.Time
}

// NewService creates a case service; window is the duplicate-protection window
func NewService(deps Deps, window int) Service {
	return &service{
		deps:     deps,
		modifier: reward.DefaultModifier(),
		window:   window,
		lockTTL:  DefaultClaimLockTTL,
		rnd:      utils.SecureRandomFloat,
		now:      time.Now,
	}
}

func (s *service) GetCase(ctx context.Context, caseID string) (*CaseDetails, error) {
	c, err := s.activeCase(ctx, caseID)
	if err != nil {
		return nil, err
	}
	items, err := s.deps.Catalog.GetCaseItems(ctx, caseID)
	if err != nil {
		return nil, err
	}
	return &CaseDetails{Case: *c, Items: items}, nil
}

func (s *service) activeCase(ctx context.Context, caseID string) (*domain.Case, error) {
	if caseID == "" {
		return nil, fmt.Errorf("%w: %s", domain.ErrInvalidInput, ErrMsgMissingID)
	}
	c, err := s.deps.Catalog.GetCase(ctx, caseID)
	if err != nil {
		return nil, err
	}
	if !c.Active {
		return nil, domain.ErrCaseNotFound
	}
	return c, nil
}

// Open charges the case price and grants one item from the case pool
func (s *service) Open(ctx context.Context, userID, caseID string) (*domain.CaseOpening, error) {
	log := logger.FromContext(ctx)

	c, err := s.activeCase(ctx, caseID)
	if err != nil {
		return nil, err
	}
	pool, err := s.deps.Catalog.GetCaseItems(ctx, caseID)
	if err != nil {
		return nil, err
	}
	if len(pool) == 0 {
		log.Error(LogMsgEmptyCase, "case_id", caseID)
		return nil, reward.ErrEmptyPool
	}

	bonus, err := s.deps.Bonuses.BonusPercent(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, err
		}
		log.Warn(LogMsgBonusLookupFailed, "error", err)
		bonus = 0
	}

	var (
		opening  *domain.CaseOpening
		username string
	)
	// history is read and written under the claim lock so a concurrent open
	// never draws against a window missing the previous winner
	err = claimlock.WithLock(ctx, s.deps.Locker, claimlock.Key(domain.ActionCaseOpen, userID), s.lockTTL, func() error {
		recent, err := s.deps.History.Recent(ctx, userID, caseID, s.window)
		if err != nil {
			log.Warn(LogMsgHistoryReadFailed, "error", err)
			recent = nil
		}

		opening, username, err = s.openTx(ctx, userID, c, pool, bonus, recent)
		if err != nil {
			return err
		}

		if err := s.deps.History.Record(ctx, userID, caseID, opening.Item.ID); err != nil {
			log.Warn(LogMsgHistoryWriteFail, "error", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Info(LogMsgCaseOpened,
		"case_id", caseID,
		"item_id", opening.Item.ID,
		"bonus", bonus,
		"roll", opening.Roll,
		"protection_waived", opening.ProtectionWaived)

	evt := event.NewCaseOpenedEvent(domain.CaseOpenedPayload{
		UserID:       userID,
		Username:     username,
		CaseID:       caseID,
		ItemID:       opening.Item.ID,
		ItemName:     opening.Item.Name,
		ItemRarity:   opening.Item.Rarity,
		ItemPrice:    opening.Item.Price.String(),
		BonusPercent: bonus,
	})
	if perr := s.deps.Bus.Publish(ctx, evt); perr != nil {
		log.Warn(LogMsgPublishFailed, "error", perr)
	}

	return opening, nil
}

func (s *service) openTx(ctx context.Context, userID string, c *domain.Case, pool []domain.Item, bonus float64, recent []string) (*domain.CaseOpening, string, error) {
	tx, err := s.deps.Economy.BeginTx(ctx)
	if err != nil {
		return nil, "", fmt.Errorf(ErrMsgBeginTxFailed, err)
	}
	defer repository.SafeRollback(ctx, tx)

	user, err := tx.GetUserForUpdate(ctx, userID)
	if err != nil {
		return nil, "", err
	}
	if user.Balance.LessThan(c.Price) {
		return nil, "", domain.ErrInsufficientFunds
	}

	res, err := s.modifier.ResolveWithProtection(domain.Candidates(pool), bonus, recent, s.window, s.rnd)
	if err != nil {
		return nil, "", err
	}
	item := pool[res.Index]

	balance := user.Balance.Sub(c.Price)
	if err := tx.UpdateBalance(ctx, userID, balance); err != nil {
		return nil, "", err
	}

	caseID := c.ID
	granted := domain.InventoryItem{
		ID:        uuid.NewString(),
		UserID:    userID,
		ItemID:    item.ID,
		Price:     item.Price,
		Status:    domain.InventoryActive,
		Source:    domain.SourceCase,
		CaseID:    &caseID,
		CreatedAt: s.now(),
	}
	if err := tx.InsertInventoryItem(ctx, &granted); err != nil {
		return nil, "", err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, "", fmt.Errorf(ErrMsgCommitFailed, err)
	}

	return &domain.CaseOpening{
		CaseID:           c.ID,
		InventoryItem:    granted,
		Item:             item,
		Balance:          balance,
		BonusPercent:     bonus,
		Roll:             res.Roll,
		ProtectionWaived: res.ProtectionWaived,
	}, user.Username, nil
}

func (s *service) Inventory(ctx context.Context, userID string) ([]domain.InventoryItem, error) {
	return s.deps.Inventory.ListInventory(ctx, userID)
}
