package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/chibox/chibox-server/internal/eventlog"
)

type mockHistory struct{ mock.Mock }

func (m *mockHistory) History(ctx context.Context, userID string, limit int) ([]eventlog.Event, error) {
	args := m.Called(ctx, userID, limit)
	e, _ := args.Get(0).([]eventlog.Event)
	return e, args.Error(1)
}

func TestHandleHistory(t *testing.T) {
	tests := []struct {
		name       string
		target     string
		userID     string
		setup      func(*mockHistory)
		wantStatus int
		wantEvents int
	}{
		{
			name:   "default limit",
			target: "/history",
			userID: testUserID,
			setup: func(m *mockHistory) {
				m.On("History", mock.Anything, testUserID, 0).Return([]eventlog.Event{{ID: 2, EventType: "item.sold"}, {ID: 1, EventType: "case.opened"}}, nil)
			},
			wantStatus: http.StatusOK,
			wantEvents: 2,
		},
		{
			name:   "explicit limit, empty",
			target: "/history?limit=5",
			userID: testUserID,
			setup: func(m *mockHistory) {
				m.On("History", mock.Anything, testUserID, 5).Return(nil, nil)
			},
			wantStatus: http.StatusOK,
			wantEvents: 0,
		},
		{name: "bad limit", target: "/history?limit=abc", userID: testUserID, wantStatus: http.StatusBadRequest},
		{name: "zero limit", target: "/history?limit=0", userID: testUserID, wantStatus: http.StatusBadRequest},
		{name: "unauthenticated", target: "/history", wantStatus: http.StatusUnauthorized},
		{
			name:   "service error",
			target: "/history",
			userID: testUserID,
			setup: func(m *mockHistory) {
				m.On("History", mock.Anything, testUserID, 0).Return(nil, errors.New("db down"))
			},
			wantStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := new(mockHistory)
			if tt.setup != nil {
				tt.setup(m)
			}
			h := NewHistoryHandlers(m)

			w := serve(http.MethodGet, "/history", tt.target, "", tt.userID, h.HandleHistory())
			require.Equal(t, tt.wantStatus, w.Code, w.Body.String())
			if tt.wantStatus == http.StatusOK {
				var resp HistoryResponse
				require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
				assert.NotNil(t, resp.Events)
				assert.Len(t, resp.Events, tt.wantEvents)
			}
			m.AssertExpectations(t)
		})
	}
}
