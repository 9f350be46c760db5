package minigame

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/chibox/chibox-server/internal/claimlock"
	"github.com/chibox/chibox-server/internal/domain"
	"github.com/chibox/chibox-server/internal/event"
	"github.com/chibox/chibox-server/internal/logger"
	"github.com/chibox/chibox-server/internal/repository"
	"github.com/chibox/chibox-server/internal/reward"
	"github.com/chibox/chibox-server/internal/utils"
)

// TierPolicy supplies subscription perks
type TierPolicy interface {
	BonusPercent(level int) float64
	Quotas(game domain.Game) map[int]int
	FallbackTier() int
}

// ItemSource lists prize items, usually through the catalog cache
type ItemSource interface {
	ListItems(ctx context.Context) ([]domain.Item, error)
	ListSlotItems(ctx context.Context) ([]domain.Item, error)
}

// PlayInput carries game-specific input. Only Safe Cracker reads Guess.
type PlayInput struct {
	Guess string `json:"guess,omitempty"`
}

// PlayResult is returned after a play is committed
type PlayResult struct {
	Game                  domain.Game           `json:"game"`
	Outcome               domain.Outcome        `json:"outcome"`
	Item                  *domain.Item          `json:"item,omitempty"`
	Granted               *domain.InventoryItem `json:"granted,omitempty"`
	Balance               decimal.Decimal       `json:"balance"`
	SubscriptionExpiresAt *time.Time            `json:"subscription_expires_at,omitempty"`
	Eligibility           Eligibility           `json:"eligibility"`

	Plinko   *PlinkoResult   `json:"plinko,omitempty"`
	Slot     *SlotResult     `json:"slot,omitempty"`
	Safe     *SafeResult     `json:"safe,omitempty"`
	Roulette *RouletteResult `json:"roulette,omitempty"`
	Tower    *TowerResult    `json:"tower,omitempty"`
}

// Service defines the interface for mini-game operations
type Service interface {
	Play(ctx context.Context, userID string, game domain.Game, in PlayInput) (*PlayResult, error)
	Status(ctx context.Context, userID string, game domain.Game) (Eligibility, error)
}

type service struct {
	repo     repository.Economy
	users    repository.User
	attempts repository.Attempts
	items    ItemSource
	locker   claimlock.Locker
	bus      event.Publisher
	tiers    TierPolicy
	cfg      Config
	clock    ResetClock
	lockTTL  time.Duration
	rnd      reward.RandomSource // Injectable for testing
	now      func() time.Time
}

// NewService creates a new mini-game service
func NewService(
	repo repository.Economy,
	users repository.User,
	attempts repository.Attempts,
	items ItemSource,
	locker claimlock.Locker,
	bus event.Publisher,
	tiers TierPolicy,
	cfg Config,
	clock ResetClock,
) Service {
	return &service{
		repo:     repo,
		users:    users,
		attempts: attempts,
		items:    items,
		locker:   locker,
		bus:      bus,
		tiers:    tiers,
		cfg:      cfg,
		clock:    clock,
		lockTTL:  DefaultClaimLockTTL,
		rnd:      utils.SecureRandomFloat,
		now:      time.Now,
	}
}

func (s *service) Status(ctx context.Context, userID string, game domain.Game) (Eligibility, error) {
	user, err := s.users.GetUserByID(ctx, userID)
	if err != nil {
		return Eligibility{}, err
	}
	rec, err := s.attempts.GetAttempt(ctx, userID, game)
	if err != nil {
		return Eligibility{}, err
	}
	now := s.now()
	return s.clock.Evaluate(rec, user.ActiveTier(now), s.cfg.Rules(game, s.tiers.Quotas(game)), now)
}

// Play consumes one attempt and grants the resolved prize in a single transaction
func (s *service) Play(ctx context.Context, userID string, game domain.Game, in PlayInput) (*PlayResult, error) {
	if game == domain.GameSafe {
		if err := ValidateGuess(in.Guess); err != nil {
			return nil, err
		}
	}

	pool, err := s.prizePool(ctx, game)
	if err != nil {
		return nil, err
	}

	var (
		res      *PlayResult
		username string
	)
	key := claimlock.Key(domain.ActionGame, string(game), userID)
	err = claimlock.WithLock(ctx, s.locker, key, s.lockTTL, func() error {
		var err error
		res, username, err = s.playTx(ctx, userID, game, in, pool)
		return err
	})
	if err != nil {
		return nil, err
	}

	logger.FromContext(ctx).Info(LogMsgGamePlayed,
		"game", game,
		"outcome", res.Outcome.String(),
		"remaining", res.Eligibility.Remaining)

	evt := event.NewMinigamePlayedEvent(domain.MinigamePlayedPayload{
		UserID:   userID,
		Username: username,
		Game:     game,
		Outcome:  res.Outcome,
	})
	if perr := s.bus.Publish(ctx, evt); perr != nil {
		logger.FromContext(ctx).Warn(LogMsgPublishFailed, "error", perr)
	}
	return res, nil
}

// prizePool loads catalog items before taking locks; plinko needs none
func (s *service) prizePool(ctx context.Context, game domain.Game) ([]domain.Item, error) {
	var (
		items []domain.Item
		err   error
	)
	switch game {
	case domain.GamePlinko:
		return nil, nil
	case domain.GameTower:
		items, err = s.items.ListItems(ctx)
	case domain.GameSlot, domain.GameSafe, domain.GameRoulette:
		items, err = s.items.ListSlotItems(ctx)
	default:
		return nil, domain.ErrUnknownGame
	}
	if err != nil {
		return nil, fmt.Errorf(ErrMsgLoadSlotItems, err)
	}
	return items, nil
}

func (s *service) playTx(ctx context.Context, userID string, game domain.Game, in PlayInput, pool []domain.Item) (*PlayResult, string, error) {
	now := s.now()

	tx, err := s.repo.BeginTx(ctx)
	if err != nil {
		return nil, "", fmt.Errorf(ErrMsgBeginTxFailed, err)
	}
	defer repository.SafeRollback(ctx, tx)

	user, err := tx.GetUserForUpdate(ctx, userID)
	if err != nil {
		return nil, "", err
	}
	tier := user.ActiveTier(now)
	rules := s.cfg.Rules(game, s.tiers.Quotas(game))

	rec, err := tx.GetAttemptForUpdate(ctx, userID, game)
	if err != nil {
		return nil, "", err
	}
	elig, err := s.clock.Evaluate(rec, tier, rules, now)
	if err != nil {
		return nil, "", err
	}
	if err := elig.Err(); err != nil {
		return nil, "", err
	}

	res, err := s.resolve(game, in, pool, tier)
	if err != nil {
		return nil, "", fmt.Errorf(ErrMsgResolve, game, err)
	}
	if res.Outcome.Kind == domain.OutcomeItem && res.Outcome.ItemID == "" {
		drawn, err := reward.Resolve(domain.Candidates(pool), s.tiers.BonusPercent(tier), s.rnd)
		if err != nil {
			return nil, "", fmt.Errorf(ErrMsgResolve, game, err)
		}
		res.Outcome = domain.ItemOutcome(drawn.Selected.ID)
	}

	if err := s.applyOutcome(ctx, tx, user, res, now); err != nil {
		return nil, "", err
	}

	base := domain.AttemptRecord{UserID: userID, Game: game}
	if rec != nil {
		base = *rec
	}
	next := s.clock.Consume(base, res.Outcome.IsWin(), now)
	if err := tx.SaveAttempt(ctx, next); err != nil {
		return nil, "", err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, "", fmt.Errorf(ErrMsgCommitFailed, err)
	}

	res.Eligibility, _ = s.clock.Evaluate(&next, tier, rules, now)
	return res, user.Username, nil
}

func (s *service) resolve(game domain.Game, in PlayInput, pool []domain.Item, tier int) (*PlayResult, error) {
	res := &PlayResult{Game: game}
	switch game {
	case domain.GamePlinko:
		r, err := PlayPlinko(s.cfg.Plinko, s.rnd)
		if err != nil {
			return nil, err
		}
		res.Plinko, res.Outcome = &r, r.Outcome
	case domain.GameSlot:
		r, err := PlaySlot(pool, s.cfg.Slot, s.rnd)
		if err != nil {
			return nil, err
		}
		res.Slot, res.Outcome = &r, r.Outcome
	case domain.GameSafe:
		r, err := PlaySafe(in.Guess, s.cfg.Safe, s.rnd)
		if err != nil {
			return nil, err
		}
		res.Safe, res.Outcome = &r, r.Outcome
	case domain.GameRoulette:
		r, err := PlayRoulette(s.cfg.Roulette, s.rnd)
		if err != nil {
			return nil, err
		}
		res.Roulette, res.Outcome = &r, r.Outcome
	case domain.GameTower:
		r, err := s.cfg.Tower.Select(pool, s.cfg.Tower.BasePrice(tier), s.rnd)
		if err != nil {
			return nil, err
		}
		res.Tower, res.Outcome = &r, r.Outcome
	default:
		return nil, domain.ErrUnknownGame
	}
	return res, nil
}

func (s *service) applyOutcome(ctx context.Context, tx repository.EconomyTx, user *domain.User, res *PlayResult, now time.Time) error {
	out := res.Outcome
	switch out.Kind {
	case domain.OutcomeCash:
		user.Balance = user.Balance.Add(out.Amount)
		if err := tx.UpdateBalance(ctx, user.ID, user.Balance); err != nil {
			return err
		}
	case domain.OutcomeSubscription:
		user.ExtendSubscription(out.Days, s.tiers.FallbackTier(), now)
		if err := tx.UpdateSubscription(ctx, user.ID, user.SubscriptionTier, user.SubscriptionExpiresAt); err != nil {
			return err
		}
	case domain.OutcomeItem:
		item, err := tx.GetItemByID(ctx, out.ItemID)
		if err != nil {
			return err
		}
		granted := &domain.InventoryItem{
			ID:        uuid.NewString(),
			UserID:    user.ID,
			ItemID:    item.ID,
			Price:     item.Price,
			Status:    domain.InventoryActive,
			Source:    domain.SourceMinigame,
			CreatedAt: now,
		}
		if err := tx.InsertInventoryItem(ctx, granted); err != nil {
			return err
		}
		res.Item, res.Granted = item, granted
	}
	res.Balance = user.Balance
	res.SubscriptionExpiresAt = user.SubscriptionExpiresAt
	return nil
}
