package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/chibox/chibox-server/internal/domain"
	"github.com/chibox/chibox-server/internal/session"
)

type mockAuth struct {
	mock.Mock
}

func (m *mockAuth) Validate(ctx context.Context, token string) (*session.Claims, error) {
	args := m.Called(ctx, token)
	if c := args.Get(0); c != nil {
		return c.(*session.Claims), args.Error(1)
	}
	return nil, args.Error(1)
}

func echoUser() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, ok := GetClaims(r.Context())
		if !ok {
			w.WriteHeader(http.StatusTeapot)
			return
		}
		_, _ = w.Write([]byte(GetUserID(r.Context()) + ":" + claims.SessionID))
	})
}

func TestRequireAuth(t *testing.T) {
	tests := []struct {
		name       string
		header     string
		setup      func(*mockAuth)
		wantStatus int
		wantBody   string
	}{
		{
			name:   "valid token",
			header: "Bearer good",
			setup: func(m *mockAuth) {
				m.On("Validate", mock.Anything, "good").Return(&session.Claims{UserID: "u1", SessionID: "s1"}, nil)
			},
			wantStatus: http.StatusOK,
			wantBody:   "u1:s1",
		},
		{
			name:   "scheme is case insensitive",
			header: "bearer good",
			setup: func(m *mockAuth) {
				m.On("Validate", mock.Anything, "good").Return(&session.Claims{UserID: "u1", SessionID: "s1"}, nil)
			},
			wantStatus: http.StatusOK,
			wantBody:   "u1:s1",
		},
		{name: "no header", wantStatus: http.StatusUnauthorized, wantBody: ErrMsgMissingToken},
		{name: "basic auth", header: "Basic dXNlcjpwYXNz", wantStatus: http.StatusUnauthorized, wantBody: ErrMsgMissingToken},
		{name: "empty bearer", header: "Bearer   ", wantStatus: http.StatusUnauthorized, wantBody: ErrMsgMissingToken},
		{
			name:   "revoked token",
			header: "Bearer old",
			setup: func(m *mockAuth) {
				m.On("Validate", mock.Anything, "old").Return(nil, domain.ErrUnauthorized)
			},
			wantStatus: http.StatusUnauthorized,
			wantBody:   ErrMsgInvalidToken,
		},
		{
			name:   "store outage",
			header: "Bearer good",
			setup: func(m *mockAuth) {
				m.On("Validate", mock.Anything, "good").Return(nil, errors.New("redis down"))
			},
			wantStatus: http.StatusInternalServerError,
			wantBody:   ErrMsgAuthFailed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			auth := &mockAuth{}
			if tt.setup != nil {
				tt.setup(auth)
			}

			req := httptest.NewRequest(http.MethodGet, "/api/v1/me", nil)
			if tt.header != "" {
				req.Header.Set(HeaderAuthorization, tt.header)
			}
			w := httptest.NewRecorder()

			RequireAuth(auth)(echoUser()).ServeHTTP(w, req)

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Contains(t, w.Body.String(), tt.wantBody)
			if tt.wantStatus == http.StatusUnauthorized {
				assert.NotEmpty(t, w.Header().Get("WWW-Authenticate"))
			}
			auth.AssertExpectations(t)
		})
	}
}

func TestGetUserID_Empty(t *testing.T) {
	assert.Equal(t, EmptyUserID, GetUserID(context.Background()))
	_, ok := GetClaims(context.Background())
	assert.False(t, ok)
}
