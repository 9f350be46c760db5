package upgrade

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/chibox/chibox-server/internal/claimlock"
	"github.com/chibox/chibox-server/internal/domain"
	"github.com/chibox/chibox-server/internal/event"
	"github.com/chibox/chibox-server/internal/logger"
	"github.com/chibox/chibox-server/internal/repository"
	"github.com/chibox/chibox-server/internal/reward"
	"github.com/chibox/chibox-server/internal/utils"
)

// Result is the outcome of an upgrade request
type Result struct {
	Attempt Attempt               `json:"attempt"`
	Target  domain.Item           `json:"target"`
	Granted *domain.InventoryItem `json:"granted,omitempty"`
	Burned  []string              `json:"burned"`
}

// Service defines the interface for upgrade operations
type Service interface {
	// Preview validates a target and returns its chance without rolling
	Preview(sourceTotalPrice, targetPrice float64) (Chance, error)
	Upgrade(ctx context.Context, userID string, sourceInventoryIDs []string, targetItemID string) (*Result, error)
}

type service struct {
	repo    repository.Economy
	locker  claimlock.Locker
	bus     event.Publisher
	calc    Calculator
	lockTTL time.Duration
	rnd     reward.RandomSource // Injectable for testing
	now     func() time.Time
}

// NewService creates a new upgrade service
func NewService(repo repository.Economy, locker claimlock.Locker, bus event.Publisher, calc Calculator) Service {
	return &service{
		repo:    repo,
		locker:  locker,
		bus:     bus,
		calc:    calc,
		lockTTL: DefaultClaimLockTTL,
		rnd:     utils.SecureRandomFloat,
		now:     time.Now,
	}
}

func (s *service) Preview(sourceTotalPrice, targetPrice float64) (Chance, error) {
	if !s.calc.IsValidTarget(sourceTotalPrice, targetPrice) {
		return Chance{}, domain.ErrInvalidUpgradeTarget
	}
	return s.calc.Calculate(sourceTotalPrice, targetPrice), nil
}

// Upgrade burns the source items and, on success, grants the target item.
// Sources are consumed whether the roll wins or not.
func (s *service) Upgrade(ctx context.Context, userID string, sourceInventoryIDs []string, targetItemID string) (*Result, error) {
	if err := validateSources(sourceInventoryIDs); err != nil {
		return nil, err
	}
	if targetItemID == "" {
		return nil, fmt.Errorf("%w: %s", domain.ErrInvalidInput, ErrMsgMissingTarget)
	}

	var (
		res      *Result
		username string
	)
	err := claimlock.WithLock(ctx, s.locker, claimlock.Key(domain.ActionUpgrade, userID), s.lockTTL, func() error {
		var err error
		res, username, err = s.upgradeTx(ctx, userID, sourceInventoryIDs, targetItemID)
		return err
	})
	if err != nil {
		return nil, err
	}

	logger.FromContext(ctx).Info(LogMsgUpgradeResolved,
		"target", targetItemID,
		"chance", res.Attempt.FinalChance,
		"roll", res.Attempt.Roll,
		"success", res.Attempt.Success)

	evt := event.NewUpgradeCompletedEvent(domain.UpgradeCompletedPayload{
		UserID:       userID,
		Username:     username,
		TargetItemID: targetItemID,
		SourceCount:  len(sourceInventoryIDs),
		Chance:       res.Attempt.FinalChance,
		Success:      res.Attempt.Success,
	})
	if perr := s.bus.Publish(ctx, evt); perr != nil {
		logger.FromContext(ctx).Warn(LogMsgPublishFailed, "error", perr)
	}

	return res, nil
}

func (s *service) upgradeTx(ctx context.Context, userID string, sourceIDs []string, targetItemID string) (*Result, string, error) {
	tx, err := s.repo.BeginTx(ctx)
	if err != nil {
		return nil, "", fmt.Errorf(ErrMsgBeginTxFailed, err)
	}
	defer repository.SafeRollback(ctx, tx)

	user, err := tx.GetUserForUpdate(ctx, userID)
	if err != nil {
		return nil, "", err
	}

	sources, err := tx.GetInventoryItemsForUpdate(ctx, userID, sourceIDs)
	if err != nil {
		return nil, "", err
	}
	if len(sources) != len(sourceIDs) {
		return nil, "", domain.ErrItemNotOwned
	}

	sourceTotal := 0.0
	for _, inv := range sources {
		if inv.Status != domain.InventoryActive {
			return nil, "", fmt.Errorf("%w: %s", domain.ErrItemNotActive, inv.ID)
		}
		sourceTotal += inv.Price.InexactFloat64()
	}

	target, err := tx.GetItemByID(ctx, targetItemID)
	if err != nil {
		return nil, "", err
	}

	targetPrice := target.PriceFloat()
	if !s.calc.IsValidTarget(sourceTotal, targetPrice) {
		return nil, "", domain.ErrInvalidUpgradeTarget
	}

	attempt := Roll(s.calc.Calculate(sourceTotal, targetPrice), s.rnd)

	if err := tx.UpdateInventoryStatus(ctx, sourceIDs, domain.InventoryUpgraded); err != nil {
		return nil, "", err
	}

	res := &Result{Attempt: attempt, Target: *target, Burned: sourceIDs}
	if attempt.Success {
		granted := &domain.InventoryItem{
			ID:        uuid.NewString(),
			UserID:    userID,
			ItemID:    target.ID,
			Price:     target.Price,
			Status:    domain.InventoryActive,
			Source:    domain.SourceUpgrade,
			CreatedAt: s.now(),
		}
		if err := tx.InsertInventoryItem(ctx, granted); err != nil {
			return nil, "", err
		}
		res.Granted = granted
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, "", fmt.Errorf(ErrMsgCommitFailed, err)
	}
	return res, user.Username, nil
}

func validateSources(ids []string) error {
	if len(ids) == 0 {
		return fmt.Errorf("%w: %s", domain.ErrInvalidInput, domain.ErrMsgUpgradeNoSources)
	}
	if len(ids) > MaxSourceItems {
		return fmt.Errorf("%w: %s", domain.ErrInvalidInput, ErrMsgTooManySources)
	}
	seen := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		if id == "" {
			return fmt.Errorf("%w: empty source id", domain.ErrInvalidInput)
		}
		if _, dup := seen[id]; dup {
			return fmt.Errorf("%w: %s", domain.ErrInvalidInput, domain.ErrMsgDuplicateSourceItem)
		}
		seen[id] = struct{}{}
	}
	return nil
}
