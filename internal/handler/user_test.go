package handler

import (
	"net/http"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/chibox/chibox-server/internal/domain"
	"github.com/chibox/chibox-server/internal/session"
	"github.com/chibox/chibox-server/internal/subscription"
)

func newUserHandlers() (*UserHandlers, *mockUserService, *mockSessions, *mockSubscriptions) {
	users, sessions, subs := &mockUserService{}, &mockSessions{}, &mockSubscriptions{}
	return NewUserHandlers(users, sessions, subs), users, sessions, subs
}

func TestHandleRegister(t *testing.T) {
	alice := &domain.User{ID: testUserID, Username: "alice", Balance: decimal.NewFromInt(100)}
	token := &session.Token{Token: "jwt", ExpiresAt: time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC)}

	tests := []struct {
		name       string
		body       string
		setup      func(*mockUserService, *mockSessions)
		wantStatus int
		wantBody   string
	}{
		{
			name: "created",
			body: `{"username":"alice","password":"correct-horse"}`,
			setup: func(u *mockUserService, s *mockSessions) {
				u.On("Register", mock.Anything, "alice", "correct-horse").Return(alice, nil)
				s.On("Issue", mock.Anything, alice, mock.Anything, mock.Anything).Return(token, nil)
			},
			wantStatus: http.StatusCreated,
			wantBody:   `"token":"jwt"`,
		},
		{
			name:       "short password",
			body:       `{"username":"alice","password":"short"}`,
			wantStatus: http.StatusBadRequest,
			wantBody:   `"password":"Must be at least 8"`,
		},
		{
			name:       "unknown field",
			body:       `{"username":"alice","password":"correct-horse","admin":true}`,
			wantStatus: http.StatusBadRequest,
			wantBody:   ErrMsgInvalidRequest,
		},
		{
			name: "taken",
			body: `{"username":"alice","password":"correct-horse"}`,
			setup: func(u *mockUserService, s *mockSessions) {
				u.On("Register", mock.Anything, "alice", "correct-horse").Return(nil, domain.ErrUsernameTaken)
			},
			wantStatus: http.StatusConflict,
			wantBody:   ErrMsgUsernameTakenError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, users, sessions, _ := newUserHandlers()
			if tt.setup != nil {
				tt.setup(users, sessions)
			}

			w := serve(http.MethodPost, "/register", "/register", tt.body, "", h.HandleRegister())

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Contains(t, w.Body.String(), tt.wantBody)
			users.AssertExpectations(t)
			sessions.AssertExpectations(t)
		})
	}
}

func TestHandleLogin(t *testing.T) {
	t.Run("wrong password is 401", func(t *testing.T) {
		h, users, _, _ := newUserHandlers()
		users.On("Login", mock.Anything, "alice", "wrong-password").Return(nil, domain.ErrInvalidCredentials)

		w := serve(http.MethodPost, "/login", "/login", `{"username":"alice","password":"wrong-password"}`, "", h.HandleLogin())

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.JSONEq(t, `{"error":"`+ErrMsgInvalidCredentials+`"}`, w.Body.String())
	})

	t.Run("issues token", func(t *testing.T) {
		h, users, sessions, _ := newUserHandlers()
		alice := &domain.User{ID: testUserID, Username: "alice"}
		users.On("Login", mock.Anything, "alice", "correct-horse").Return(alice, nil)
		sessions.On("Issue", mock.Anything, alice, mock.Anything, mock.Anything).Return(&session.Token{Token: "jwt"}, nil)

		w := serve(http.MethodPost, "/login", "/login", `{"username":"alice","password":"correct-horse"}`, "", h.HandleLogin())

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"token":"jwt"`)
		assert.NotContains(t, w.Body.String(), "password")
	})
}

func TestHandleLogout(t *testing.T) {
	t.Run("revokes session", func(t *testing.T) {
		h, _, sessions, _ := newUserHandlers()
		sessions.On("Revoke", mock.Anything, mock.MatchedBy(func(c *session.Claims) bool {
			return c.SessionID == "sess-1"
		})).Return(nil)

		w := serve(http.MethodPost, "/logout", "/logout", "", testUserID, h.HandleLogout())

		assert.Equal(t, http.StatusNoContent, w.Code)
		sessions.AssertExpectations(t)
	})

	t.Run("anonymous", func(t *testing.T) {
		h, _, _, _ := newUserHandlers()
		w := serve(http.MethodPost, "/logout", "/logout", "", "", h.HandleLogout())
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestHandleMe(t *testing.T) {
	h, users, _, subs := newUserHandlers()
	users.On("Profile", mock.Anything, testUserID).
		Return(&domain.User{ID: testUserID, Username: "alice", Balance: decimal.RequireFromString("42.50")}, nil)
	subs.On("Status", mock.Anything, testUserID).
		Return(subscription.Status{Active: true, Level: 2, Name: "Silver", BonusPercent: 10}, nil)

	w := serve(http.MethodGet, "/me", "/me", "", testUserID, h.HandleMe())

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"balance":"42.5"`)
	assert.Contains(t, w.Body.String(), `"name":"Silver"`)
}
