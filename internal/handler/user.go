package handler

import (
	"context"
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/chibox/chibox-server/internal/domain"
	"github.com/chibox/chibox-server/internal/logger"
	"github.com/chibox/chibox-server/internal/middleware"
	"github.com/chibox/chibox-server/internal/session"
	"github.com/chibox/chibox-server/internal/subscription"
	"github.com/chibox/chibox-server/internal/user"
)

// Sessions issues and revokes bearer tokens
type Sessions interface {
	Issue(ctx context.Context, user *domain.User, clientIP, userAgent string) (*session.Token, error)
	Revoke(ctx context.Context, claims *session.Claims) error
}

// CredentialsRequest is the body of register and login
type CredentialsRequest struct {
	Username string `json:"username" validate:"required,min=3,max=32"`
	Password string `json:"password" validate:"required,min=8,max=128"`
}

// AuthResponse is returned after register and login
type AuthResponse struct {
	User  *domain.User   `json:"user"`
	Token *session.Token `json:"session"`
}

// ProfileResponse is the authenticated user's profile
type ProfileResponse struct {
	ID           string              `json:"id"`
	Username     string              `json:"username"`
	Balance      decimal.Decimal     `json:"balance"`
	Subscription subscription.Status `json:"subscription"`
}

// UserHandlers serves account endpoints
type UserHandlers struct {
	users    user.Service
	sessions Sessions
	subs     subscription.Service
}

// NewUserHandlers creates the account handlers
func NewUserHandlers(users user.Service, sessions Sessions, subs subscription.Service) *UserHandlers {
	return &UserHandlers{users: users, sessions: sessions, subs: subs}
}

// HandleRegister creates an account and logs it in
// @Summary Register
// @Tags users
// @Accept json
// @Produce json
// @Param request body CredentialsRequest true "Credentials"
// @Success 201 {object} AuthResponse
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Username taken"
// @Router /api/v1/users/register [post]
func (h *UserHandlers) HandleRegister() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req CredentialsRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Register"); err != nil {
			return
		}

		u, err := h.users.Register(r.Context(), req.Username, req.Password)
		if err != nil {
			respondServiceError(w, r, "register", err)
			return
		}
		token, err := h.sessions.Issue(r.Context(), u, r.RemoteAddr, r.UserAgent())
		if err != nil {
			respondServiceError(w, r, "issue_session", err)
			return
		}

		logger.FromContext(r.Context()).Info(LogMsgUserRegistered, "user_id", u.ID, "username", u.Username)
		respondJSON(w, http.StatusCreated, AuthResponse{User: u, Token: token})
	}
}

// HandleLogin checks credentials and issues a session token
// @Summary Login
// @Tags users
// @Accept json
// @Produce json
// @Param request body CredentialsRequest true "Credentials"
// @Success 200 {object} AuthResponse
// @Failure 401 {object} ErrorResponse
// @Router /api/v1/users/login [post]
func (h *UserHandlers) HandleLogin() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req CredentialsRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Login"); err != nil {
			return
		}

		u, err := h.users.Login(r.Context(), req.Username, req.Password)
		if err != nil {
			respondServiceError(w, r, "login", err)
			return
		}
		token, err := h.sessions.Issue(r.Context(), u, r.RemoteAddr, r.UserAgent())
		if err != nil {
			respondServiceError(w, r, "issue_session", err)
			return
		}

		logger.FromContext(r.Context()).Info(LogMsgUserLoggedIn, "user_id", u.ID)
		respondJSON(w, http.StatusOK, AuthResponse{User: u, Token: token})
	}
}

// HandleLogout revokes the current session
// @Summary Logout
// @Tags users
// @Security BearerAuth
// @Success 204
// @Failure 401 {object} ErrorResponse
// @Router /api/v1/users/logout [post]
func (h *UserHandlers) HandleLogout() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok {
			respondError(w, http.StatusUnauthorized, ErrMsgUnauthorizedError)
			return
		}
		if err := h.sessions.Revoke(r.Context(), claims); err != nil {
			logger.FromContext(r.Context()).Error(LogMsgLogoutFailed, "error", err)
			respondError(w, http.StatusInternalServerError, ErrMsgGenericServerError)
			return
		}
		logger.FromContext(r.Context()).Info(LogMsgUserLoggedOut, "user_id", claims.UserID)
		w.WriteHeader(http.StatusNoContent)
	}
}

// HandleMe returns the profile, balance and subscription of the caller
// @Summary Current user
// @Tags users
// @Security BearerAuth
// @Produce json
// @Success 200 {object} ProfileResponse
// @Failure 401 {object} ErrorResponse
// @Router /api/v1/me [get]
func (h *UserHandlers) HandleMe() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := requireUser(w, r)
		if !ok {
			return
		}

		u, err := h.users.Profile(r.Context(), userID)
		if err != nil {
			respondServiceError(w, r, "profile", err)
			return
		}
		status, err := h.subs.Status(r.Context(), userID)
		if err != nil {
			respondServiceError(w, r, "subscription_status", err)
			return
		}

		respondJSON(w, http.StatusOK, ProfileResponse{
			ID:           u.ID,
			Username:     u.Username,
			Balance:      u.Balance,
			Subscription: status,
		})
	}
}
