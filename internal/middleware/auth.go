// Package middleware holds request-scoped HTTP middleware shared by the router.
package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/chibox/chibox-server/internal/domain"
	"github.com/chibox/chibox-server/internal/logger"
	"github.com/chibox/chibox-server/internal/session"
)

// Authenticator resolves a bearer token to session claims
type Authenticator interface {
	Validate(ctx context.Context, token string) (*session.Claims, error)
}

// contextKey is a custom type for context keys to avoid collisions
type contextKey string

const (
	// UserIDKey is the context key for user ID
	UserIDKey contextKey = "user_id"
	// ClaimsKey is the context key for the full session claims
	ClaimsKey contextKey = "session_claims"
)

// WithUserID adds user ID to request context
func WithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, UserIDKey, userID)
}

// GetUserID retrieves user ID from context
func GetUserID(ctx context.Context) string {
	if uid, ok := ctx.Value(UserIDKey).(string); ok {
		return uid
	}
	return EmptyUserID
}

// WithClaims stores the session claims and the user id they carry
func WithClaims(ctx context.Context, claims *session.Claims) context.Context {
	ctx = context.WithValue(ctx, ClaimsKey, claims)
	ctx = WithUserID(ctx, claims.UserID)
	return logger.WithUserID(ctx, claims.UserID)
}

// GetClaims returns the session claims set by RequireAuth
func GetClaims(ctx context.Context) (*session.Claims, bool) {
	claims, ok := ctx.Value(ClaimsKey).(*session.Claims)
	return claims, ok
}

// BearerToken extracts the token from an Authorization header
func BearerToken(r *http.Request) (string, bool) {
	h := r.Header.Get(HeaderAuthorization)
	if len(h) < len(BearerPrefix) || !strings.EqualFold(h[:len(BearerPrefix)], BearerPrefix) {
		return "", false
	}
	token := strings.TrimSpace(h[len(BearerPrefix):])
	return token, token != ""
}

// RequireAuth rejects requests without a live session
func RequireAuth(auth Authenticator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			log := logger.FromContext(r.Context())

			token, ok := BearerToken(r)
			if !ok {
				log.Debug(LogMsgMissingToken, "path", r.URL.Path)
				unauthorized(w, ErrMsgMissingToken)
				return
			}

			claims, err := auth.Validate(r.Context(), token)
			if err != nil {
				if errors.Is(err, domain.ErrUnauthorized) {
					log.Debug(LogMsgTokenRejected, "path", r.URL.Path)
					unauthorized(w, ErrMsgInvalidToken)
					return
				}
				log.Error(LogMsgSessionLookup, "error", err)
				writeError(w, http.StatusInternalServerError, ErrMsgAuthFailed)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithClaims(r.Context(), claims)))
		})
	}
}

func unauthorized(w http.ResponseWriter, msg string) {
	w.Header().Set("WWW-Authenticate", `Bearer realm="chibox"`)
	writeError(w, http.StatusUnauthorized, msg)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
