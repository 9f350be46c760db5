package eventlog

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/chibox/chibox-server/internal/domain"
	"github.com/chibox/chibox-server/internal/event"
)

// MockEventBus is a mock implementation of event.Bus
type MockEventBus struct {
	mock.Mock
}

func (m *MockEventBus) Publish(ctx context.Context, evt event.Event) error {
	args := m.Called(ctx, evt)
	return args.Error(0)
}

func (m *MockEventBus) Subscribe(eventType event.Type, handler event.Handler) {
	m.Called(eventType, handler)
}

func TestService_Subscribe(t *testing.T) {
	mockBus := new(MockEventBus)
	for _, et := range event.AllTypes {
		mockBus.On("Subscribe", et, mock.Anything).Return()
	}

	err := NewService(new(MockRepository)).Subscribe(mockBus)
	assert.NoError(t, err)
	mockBus.AssertExpectations(t)
}

func TestService_HandleEvent(t *testing.T) {
	ctx := context.Background()
	userID := "user123"

	t.Run("map payload", func(t *testing.T) {
		mockRepo := new(MockRepository)
		svc := NewService(mockRepo).(*service)
		payload := map[string]interface{}{"user_id": userID, "item_name": "AK-47 | Redline"}

		mockRepo.On("LogEvent", ctx, string(event.ItemSold), &userID, payload, mock.Anything).Return(nil)

		err := svc.handleEvent(ctx, event.Event{Type: event.ItemSold, Payload: payload})
		assert.NoError(t, err)
		mockRepo.AssertExpectations(t)
	})

	t.Run("struct payload is flattened", func(t *testing.T) {
		mockRepo := new(MockRepository)
		svc := NewService(mockRepo).(*service)

		mockRepo.On("LogEvent", ctx, string(event.CaseOpened), &userID,
			mock.MatchedBy(func(p map[string]interface{}) bool {
				return p["case_id"] == "starter" && p["item_id"] == "p250"
			}), mock.Anything).Return(nil)

		evt := event.NewCaseOpenedEvent(domain.CaseOpenedPayload{UserID: userID, CaseID: "starter", ItemID: "p250"})
		assert.NoError(t, svc.handleEvent(ctx, evt))
		mockRepo.AssertExpectations(t)
	})

	t.Run("no user", func(t *testing.T) {
		mockRepo := new(MockRepository)
		svc := NewService(mockRepo).(*service)

		mockRepo.On("LogEvent", ctx, string(event.DailyReset), (*string)(nil), mock.Anything, mock.Anything).Return(nil)

		assert.NoError(t, svc.handleEvent(ctx, event.NewDailyResetEvent(time.Now(), 3)))
		mockRepo.AssertExpectations(t)
	})

	t.Run("non-object payload is skipped", func(t *testing.T) {
		mockRepo := new(MockRepository)
		svc := NewService(mockRepo).(*service)

		assert.NoError(t, svc.handleEvent(ctx, event.Event{Type: event.ItemSold, Payload: "oops"}))
		mockRepo.AssertNotCalled(t, "LogEvent")
	})

	t.Run("repository error", func(t *testing.T) {
		mockRepo := new(MockRepository)
		svc := NewService(mockRepo).(*service)
		mockRepo.On("LogEvent", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
			Return(errors.New("insert failed"))

		assert.Error(t, svc.handleEvent(ctx, event.Event{Type: event.ItemSold, Payload: map[string]interface{}{}}))
	})
}

func TestService_History(t *testing.T) {
	tests := []struct {
		name      string
		limit     int
		wantLimit int
	}{
		{"default", 0, DefaultHistoryLimit},
		{"explicit", 10, 10},
		{"capped", 1000, MaxHistoryLimit},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockRepository)
			svc := NewService(mockRepo)
			userID := "u1"

			mockRepo.On("GetEvents", mock.Anything, EventFilter{UserID: &userID, Limit: tt.wantLimit}).
				Return([]Event{{ID: 1}}, nil)

			got, err := svc.History(context.Background(), userID, tt.limit)
			require.NoError(t, err)
			assert.Len(t, got, 1)
			mockRepo.AssertExpectations(t)
		})
	}
}

func TestService_CleanupOldEvents(t *testing.T) {
	mockRepo := new(MockRepository)
	svc := NewService(mockRepo).(*service)
	now := time.Date(2026, 3, 20, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return now }
	ctx := context.Background()

	mockRepo.On("CleanupOldEvents", ctx, now.AddDate(0, 0, -10)).Return(int64(5), nil).Once()
	mockRepo.On("CleanupOldEvents", ctx, now.AddDate(0, 0, -DefaultRetentionDays)).Return(int64(0), nil).Once()

	count, err := svc.CleanupOldEvents(ctx, 10)
	assert.NoError(t, err)
	assert.Equal(t, int64(5), count)

	_, err = svc.CleanupOldEvents(ctx, 0)
	assert.NoError(t, err)
	mockRepo.AssertExpectations(t)
}

func TestMemoryRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRepository()
	base := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	tick := 0
	repo.now = func() time.Time {
		tick++
		return base.Add(time.Duration(tick) * time.Hour)
	}

	alice, bob := "alice", "bob"
	require.NoError(t, repo.LogEvent(ctx, "case.opened", &alice, map[string]interface{}{"n": 1}, nil))
	require.NoError(t, repo.LogEvent(ctx, "item.sold", &bob, map[string]interface{}{"n": 2}, nil))
	require.NoError(t, repo.LogEvent(ctx, "item.sold", &alice, map[string]interface{}{"n": 3}, nil))
	require.NoError(t, repo.LogEvent(ctx, "daily_reset.complete", nil, map[string]interface{}{}, nil))

	got, err := repo.GetEvents(ctx, EventFilter{UserID: &alice})
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, 3, got[0].Payload["n"], "newest first")

	sold := "item.sold"
	got, err = repo.GetEvents(ctx, EventFilter{EventType: &sold, Limit: 1})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, alice, *got[0].UserID)

	removed, err := repo.CleanupOldEvents(ctx, base.Add(2*time.Hour+time.Minute))
	require.NoError(t, err)
	assert.Equal(t, int64(2), removed)

	got, err = repo.GetEvents(ctx, EventFilter{})
	require.NoError(t, err)
	assert.Len(t, got, 2)
}
