package catalog

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/chibox/chibox-server/internal/domain"
)

type mockCatalog struct {
	mock.Mock
}

func (m *mockCatalog) GetItemByID(ctx context.Context, itemID string) (*domain.Item, error) {
	args := m.Called(ctx, itemID)
	if it := args.Get(0); it != nil {
		return it.(*domain.Item), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockCatalog) ListItems(ctx context.Context) ([]domain.Item, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Item), args.Error(1)
}

func (m *mockCatalog) ListSlotItems(ctx context.Context) ([]domain.Item, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Item), args.Error(1)
}

func (m *mockCatalog) GetCase(ctx context.Context, caseID string) (*domain.Case, error) {
	args := m.Called(ctx, caseID)
	if c := args.Get(0); c != nil {
		return c.(*domain.Case), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockCatalog) GetCaseItems(ctx context.Context, caseID string) ([]domain.Item, error) {
	args := m.Called(ctx, caseID)
	return args.Get(0).([]domain.Item), args.Error(1)
}

func TestCache_ListHitsRepositoryOnce(t *testing.T) {
	ctx := context.Background()
	repo := new(mockCatalog)
	items := []domain.Item{{ID: "a", Price: decimal.NewFromInt(5)}}
	repo.On("ListSlotItems", ctx).Return(items, nil).Once()

	c := New(repo, 0, time.Minute)
	for i := 0; i < 3; i++ {
		got, err := c.ListSlotItems(ctx)
		require.NoError(t, err)
		assert.Equal(t, items, got)
	}
	repo.AssertExpectations(t)
}

func TestCache_ReturnsCopies(t *testing.T) {
	ctx := context.Background()
	repo := new(mockCatalog)
	repo.On("GetCaseItems", ctx, "c1").Return([]domain.Item{{ID: "a"}, {ID: "b"}}, nil).Once()

	c := New(repo, 0, time.Minute)
	first, err := c.GetCaseItems(ctx, "c1")
	require.NoError(t, err)
	first[0].ID = "mutated"

	second, err := c.GetCaseItems(ctx, "c1")
	require.NoError(t, err)
	assert.Equal(t, "a", second[0].ID)
}

func TestCache_Invalidate(t *testing.T) {
	ctx := context.Background()
	repo := new(mockCatalog)
	repo.On("GetCase", ctx, "c1").Return(&domain.Case{ID: "c1", Name: "Old"}, nil).Once()
	repo.On("GetCase", ctx, "c1").Return(&domain.Case{ID: "c1", Name: "New"}, nil).Once()

	c := New(repo, 0, time.Minute)
	got, err := c.GetCase(ctx, "c1")
	require.NoError(t, err)
	assert.Equal(t, "Old", got.Name)

	c.Invalidate(ctx)
	got, err = c.GetCase(ctx, "c1")
	require.NoError(t, err)
	assert.Equal(t, "New", got.Name)
	repo.AssertExpectations(t)
}

func TestCache_ErrorsAreNotCached(t *testing.T) {
	ctx := context.Background()
	repo := new(mockCatalog)
	repo.On("GetItemByID", ctx, "x").Return(nil, domain.ErrItemNotFound).Once()
	repo.On("GetItemByID", ctx, "x").Return(&domain.Item{ID: "x"}, nil).Once()
	repo.On("ListItems", ctx).Return([]domain.Item(nil), errors.New("db down")).Once()

	c := New(repo, 0, time.Minute)
	_, err := c.GetItemByID(ctx, "x")
	assert.ErrorIs(t, err, domain.ErrItemNotFound)

	it, err := c.GetItemByID(ctx, "x")
	require.NoError(t, err)
	assert.Equal(t, "x", it.ID)

	_, err = c.ListItems(ctx)
	assert.ErrorContains(t, err, "db down")
	repo.AssertExpectations(t)
}

func TestCache_Expires(t *testing.T) {
	ctx := context.Background()
	repo := new(mockCatalog)
	repo.On("ListItems", ctx).Return([]domain.Item{{ID: "a"}}, nil).Twice()

	c := New(repo, 0, 20*time.Millisecond)
	_, err := c.ListItems(ctx)
	require.NoError(t, err)

	time.Sleep(60 * time.Millisecond)
	_, err = c.ListItems(ctx)
	require.NoError(t, err)
	repo.AssertExpectations(t)
}
