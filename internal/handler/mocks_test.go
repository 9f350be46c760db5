package handler

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/chibox/chibox-server/internal/caseopen"
	"github.com/chibox/chibox-server/internal/domain"
	"github.com/chibox/chibox-server/internal/event"
	"github.com/chibox/chibox-server/internal/minigame"
	"github.com/chibox/chibox-server/internal/session"
	"github.com/chibox/chibox-server/internal/subscription"
	"github.com/chibox/chibox-server/internal/upgrade"
)

type mockUserService struct{ mock.Mock }

func (m *mockUserService) Register(ctx context.Context, username, password string) (*domain.User, error) {
	args := m.Called(ctx, username, password)
	u, _ := args.Get(0).(*domain.User)
	return u, args.Error(1)
}

func (m *mockUserService) Login(ctx context.Context, username, password string) (*domain.User, error) {
	args := m.Called(ctx, username, password)
	u, _ := args.Get(0).(*domain.User)
	return u, args.Error(1)
}

func (m *mockUserService) Profile(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	u, _ := args.Get(0).(*domain.User)
	return u, args.Error(1)
}

type mockSessions struct{ mock.Mock }

func (m *mockSessions) Issue(ctx context.Context, u *domain.User, clientIP, userAgent string) (*session.Token, error) {
	args := m.Called(ctx, u, clientIP, userAgent)
	t, _ := args.Get(0).(*session.Token)
	return t, args.Error(1)
}

func (m *mockSessions) Revoke(ctx context.Context, claims *session.Claims) error {
	return m.Called(ctx, claims).Error(0)
}

type mockSubscriptions struct{ mock.Mock }

func (m *mockSubscriptions) Status(ctx context.Context, userID string) (subscription.Status, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(subscription.Status), args.Error(1)
}

func (m *mockSubscriptions) BonusPercent(ctx context.Context, userID string) (float64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(float64), args.Error(1)
}

func (m *mockSubscriptions) Invalidate(userID string) { m.Called(userID) }
func (m *mockSubscriptions) Table() subscription.Table { return m.Called().Get(0).(subscription.Table) }
func (m *mockSubscriptions) Register(bus event.Bus) { m.Called(bus) }

type mockCaseService struct{ mock.Mock }

func (m *mockCaseService) GetCase(ctx context.Context, caseID string) (*caseopen.CaseDetails, error) {
	args := m.Called(ctx, caseID)
	d, _ := args.Get(0).(*caseopen.CaseDetails)
	return d, args.Error(1)
}

func (m *mockCaseService) Open(ctx context.Context, userID, caseID string) (*domain.CaseOpening, error) {
	args := m.Called(ctx, userID, caseID)
	o, _ := args.Get(0).(*domain.CaseOpening)
	return o, args.Error(1)
}

func (m *mockCaseService) Inventory(ctx context.Context, userID string) ([]domain.InventoryItem, error) {
	args := m.Called(ctx, userID)
	items, _ := args.Get(0).([]domain.InventoryItem)
	return items, args.Error(1)
}

func (m *mockCaseService) Sell(ctx context.Context, userID, inventoryID string) (*domain.SaleResult, error) {
	args := m.Called(ctx, userID, inventoryID)
	s, _ := args.Get(0).(*domain.SaleResult)
	return s, args.Error(1)
}

type mockUpgradeService struct{ mock.Mock }

func (m *mockUpgradeService) Preview(source, target float64) (upgrade.Chance, error) {
	args := m.Called(source, target)
	return args.Get(0).(upgrade.Chance), args.Error(1)
}

func (m *mockUpgradeService) Upgrade(ctx context.Context, userID string, sources []string, target string) (*upgrade.Result, error) {
	args := m.Called(ctx, userID, sources, target)
	r, _ := args.Get(0).(*upgrade.Result)
	return r, args.Error(1)
}

type mockGameService struct{ mock.Mock }

func (m *mockGameService) Play(ctx context.Context, userID string, game domain.Game, in minigame.PlayInput) (*minigame.PlayResult, error) {
	args := m.Called(ctx, userID, game, in)
	r, _ := args.Get(0).(*minigame.PlayResult)
	return r, args.Error(1)
}

func (m *mockGameService) Status(ctx context.Context, userID string, game domain.Game) (minigame.Eligibility, error) {
	args := m.Called(ctx, userID, game)
	return args.Get(0).(minigame.Eligibility), args.Error(1)
}
