package minigame

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chibox/chibox-server/internal/claimlock"
	"github.com/chibox/chibox-server/internal/domain"
	"github.com/chibox/chibox-server/internal/event"
	"github.com/chibox/chibox-server/internal/repository/memory"
	"github.com/chibox/chibox-server/internal/subscription"
)

const testUserID = "player-1"

var testNow = time.Date(2026, 6, 10, 15, 0, 0, 0, time.UTC)

type fixture struct {
	store  *memory.Store
	locker *claimlock.MemoryLocker
	events []domain.MinigamePlayedPayload
	svc    *service
}

func newFixture(t *testing.T, tier int, rnd func() float64) *fixture {
	t.Helper()

	f := &fixture{store: memory.New(), locker: claimlock.NewMemoryLocker()}

	u := domain.User{ID: testUserID, Username: "bob", Balance: decimal.NewFromInt(100)}
	if tier > 0 {
		expires := testNow.Add(72 * time.Hour)
		u.SubscriptionTier = tier
		u.SubscriptionExpiresAt = &expires
	}
	f.store.PutUser(u)
	f.store.AddItem(
		domain.Item{ID: "sticker", Name: "Sticker", Price: decimal.NewFromInt(70), DropWeight: 1, SlotEligible: true},
		domain.Item{ID: "gloves", Name: "Gloves", Price: decimal.NewFromInt(2500), DropWeight: 1, SlotEligible: true},
	)

	bus := event.NewMemoryBus()
	bus.Subscribe(event.MinigamePlayed, func(_ context.Context, e event.Event) error {
		p, err := event.DecodePayload[domain.MinigamePlayedPayload](e.Payload)
		if err != nil {
			return err
		}
		f.events = append(f.events, p)
		return nil
	})

	svc := NewService(f.store, f.store, f.store, f.store, f.locker, bus,
		subscription.DefaultTable(), DefaultConfig(), DefaultResetClock()).(*service)
	svc.rnd = rnd
	svc.now = func() time.Time { return testNow }
	f.svc = svc
	return f
}

func (f *fixture) user(t *testing.T) *domain.User {
	t.Helper()
	u, err := f.store.GetUserByID(context.Background(), testUserID)
	require.NoError(t, err)
	return u
}

func TestPlay_PlinkoCash(t *testing.T) {
	// slot 2 covers rolls [5, 9): cash 200
	f := newFixture(t, subscription.TierBronze, fixedSource(6.0/162))

	res, err := f.svc.Play(context.Background(), testUserID, domain.GamePlinko, PlayInput{})
	require.NoError(t, err)

	require.NotNil(t, res.Plinko)
	assert.Equal(t, 2, res.Plinko.Slot)
	assert.Equal(t, domain.CashOutcome(200), res.Outcome)
	assert.True(t, res.Balance.Equal(decimal.NewFromInt(300)))
	assert.True(t, f.user(t).Balance.Equal(decimal.NewFromInt(300)))

	assert.Equal(t, StateExhaustedOrWon, res.Eligibility.State)
	assert.Equal(t, 0, res.Eligibility.Remaining)

	require.Len(t, f.events, 1)
	assert.Equal(t, domain.GamePlinko, f.events[0].Game)
	assert.Equal(t, "bob", f.events[0].Username)

	_, err = f.svc.Play(context.Background(), testUserID, domain.GamePlinko, PlayInput{})
	assert.ErrorIs(t, err, domain.ErrAttemptsExhausted)
	assert.Len(t, f.events, 1)
}

func TestPlay_RequiresSubscription(t *testing.T) {
	f := newFixture(t, 0, fixedSource(0))

	_, err := f.svc.Play(context.Background(), testUserID, domain.GameRoulette, PlayInput{})
	assert.ErrorIs(t, err, domain.ErrSubscriptionRequired)

	rec, err := f.store.GetAttempt(context.Background(), testUserID, domain.GameRoulette)
	require.NoError(t, err)
	assert.Nil(t, rec)
}

func TestPlay_RouletteSubscriptionExtends(t *testing.T) {
	// sub_1d covers rolls [67, 77)
	f := newFixture(t, subscription.TierSilver, fixedSource(0.70))
	before := *f.user(t).SubscriptionExpiresAt

	res, err := f.svc.Play(context.Background(), testUserID, domain.GameRoulette, PlayInput{})
	require.NoError(t, err)
	assert.Equal(t, domain.SubscriptionOutcome(1), res.Outcome)

	u := f.user(t)
	assert.Equal(t, subscription.TierSilver, u.SubscriptionTier)
	assert.True(t, before.AddDate(0, 0, 1).Equal(*u.SubscriptionExpiresAt))
}

func TestPlay_RouletteItemFilledFromCatalog(t *testing.T) {
	f := newFixture(t, subscription.TierGold, fixedSource(0.92, 0))

	res, err := f.svc.Play(context.Background(), testUserID, domain.GameRoulette, PlayInput{})
	require.NoError(t, err)

	assert.Equal(t, domain.OutcomeItem, res.Outcome.Kind)
	assert.NotEmpty(t, res.Outcome.ItemID)
	require.NotNil(t, res.Granted)
	assert.Equal(t, domain.SourceMinigame, res.Granted.Source)

	inv, err := f.store.ListInventory(context.Background(), testUserID)
	require.NoError(t, err)
	require.Len(t, inv, 1)
	assert.Equal(t, res.Outcome.ItemID, inv[0].ItemID)
}

func TestPlay_SafeSingleWin(t *testing.T) {
	// first draw 0.02 lands in the cash band; later draws shape the code
	f := newFixture(t, subscription.TierBronze, fixedSource(0.02, 0.5, 0.5, 0.5, 0.5))
	ctx := context.Background()

	res, err := f.svc.Play(ctx, testUserID, domain.GameSafe, PlayInput{Guess: "123"})
	require.NoError(t, err)
	require.NotNil(t, res.Safe)
	assert.Equal(t, 2, res.Safe.Matches)
	assert.Equal(t, domain.CashOutcome(100), res.Outcome)
	assert.Equal(t, StateExhaustedOrWon, res.Eligibility.State)

	_, err = f.svc.Play(ctx, testUserID, domain.GameSafe, PlayInput{Guess: "123"})
	assert.ErrorIs(t, err, domain.ErrAlreadyWonToday)
}

func TestPlay_SafeRejectsBadGuess(t *testing.T) {
	f := newFixture(t, subscription.TierBronze, fixedSource(0))

	_, err := f.svc.Play(context.Background(), testUserID, domain.GameSafe, PlayInput{Guess: "12x"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestPlay_SlotJackpot(t *testing.T) {
	f := newFixture(t, subscription.TierBronze, fixedSource(0.99, 0))

	res, err := f.svc.Play(context.Background(), testUserID, domain.GameSlot, PlayInput{})
	require.NoError(t, err)
	require.NotNil(t, res.Slot)
	assert.Equal(t, SlotJackpot, res.Slot.Class)
	assert.Equal(t, domain.ItemOutcome("gloves"), res.Outcome)
	require.NotNil(t, res.Item)
	assert.Equal(t, "Gloves", res.Item.Name)
}

func TestPlay_TowerUsesTierBase(t *testing.T) {
	// bronze base is 50: only the 70 sticker falls in [55, 150]
	f := newFixture(t, subscription.TierBronze, fixedSource(0))

	res, err := f.svc.Play(context.Background(), testUserID, domain.GameTower, PlayInput{})
	require.NoError(t, err)
	require.NotNil(t, res.Tower)
	assert.True(t, res.Tower.InBand)
	assert.Equal(t, domain.ItemOutcome("sticker"), res.Outcome)
}

func TestPlay_ClaimInProgress(t *testing.T) {
	f := newFixture(t, subscription.TierGold, fixedSource(0))
	ctx := context.Background()

	lease, err := f.locker.Acquire(ctx, claimlock.Key(domain.ActionGame, string(domain.GamePlinko), testUserID), time.Minute)
	require.NoError(t, err)
	defer lease.Release(ctx)

	_, err = f.svc.Play(ctx, testUserID, domain.GamePlinko, PlayInput{})
	assert.ErrorIs(t, err, domain.ErrClaimInProgress)
}

func TestPlay_UnknownGame(t *testing.T) {
	f := newFixture(t, subscription.TierGold, fixedSource(0))
	_, err := f.svc.Play(context.Background(), testUserID, domain.Game("poker"), PlayInput{})
	assert.ErrorIs(t, err, domain.ErrUnknownGame)
}

func TestStatus(t *testing.T) {
	f := newFixture(t, subscription.TierGold, fixedSource(0.5))
	ctx := context.Background()

	e, err := f.svc.Status(ctx, testUserID, domain.GameSafe)
	require.NoError(t, err)
	assert.Equal(t, StateAttemptsAvailable, e.State)
	assert.Equal(t, 10, e.Remaining)

	_, err = f.svc.Play(ctx, testUserID, domain.GameSafe, PlayInput{Guess: "000"})
	require.NoError(t, err)

	e, err = f.svc.Status(ctx, testUserID, domain.GameSafe)
	require.NoError(t, err)
	assert.Equal(t, 9, e.Remaining)
	assert.Equal(t, 1, e.Used)
}

func TestStatus_StaleRecordAwaitsReset(t *testing.T) {
	f := newFixture(t, subscription.TierGold, fixedSource(0.5))
	ctx := context.Background()

	f.store.PutAttempt(domain.AttemptRecord{
		UserID:   testUserID,
		Game:     domain.GameSafe,
		DayStart: DayStart(testNow).Add(-GameDay),
		Used:     10,
		WonToday: true,
	})

	e, err := f.svc.Status(ctx, testUserID, domain.GameSafe)
	require.NoError(t, err)
	assert.Equal(t, StateNotYetReset, e.State)
	assert.True(t, e.CanPlay())
	assert.Equal(t, 0, e.Used)
	assert.Equal(t, 10, e.Remaining)

	_, err = f.svc.Play(ctx, testUserID, domain.GameSafe, PlayInput{Guess: "000"})
	require.NoError(t, err)

	e, err = f.svc.Status(ctx, testUserID, domain.GameSafe)
	require.NoError(t, err)
	assert.Equal(t, StateAttemptsAvailable, e.State)
	assert.Equal(t, 1, e.Used)
}
