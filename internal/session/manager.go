// Package session issues and validates bearer tokens. Tokens are HS256 JWTs;
// a matching record in the session store keeps them revocable.
package session

import (
	"context"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/chibox/chibox-server/internal/domain"
	"github.com/chibox/chibox-server/internal/logger"
)

// Claims are carried inside every token
type Claims struct {
	UserID    string `json:"user_id"`
	Username  string `json:"username"`
	SessionID string `json:"session_id"`
	jwt.RegisteredClaims
}

// Token is handed to the client after login
type Token struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Manager signs, checks and revokes sessions
type Manager struct {
	store  Store
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewManager creates a session manager
func NewManager(store Store, secret string, ttl time.Duration) (*Manager, error) {
	if len(secret) < MinSecretLength {
		return nil, fmt.Errorf(ErrMsgSecretTooShort, MinSecretLength)
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Manager{store: store, secret: []byte(secret), ttl: ttl, now: time.Now}, nil
}

// Issue creates a session for user
func (m *Manager) Issue(ctx context.Context, user *domain.User, clientIP, userAgent string) (*Token, error) {
	now := m.now()
	expires := now.Add(m.ttl)
	sessionID := uuid.NewString()

	claims := &Claims{
		UserID:    user.ID,
		Username:  user.Username,
		SessionID: sessionID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID,
			ExpiresAt: jwt.NewNumericDate(expires),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgSignFailed, err)
	}

	rec := Record{UserID: user.ID, SessionID: sessionID, CreatedAt: now, ClientIP: clientIP, UserAgent: userAgent}
	if err := m.store.Save(ctx, rec, m.ttl); err != nil {
		return nil, fmt.Errorf(ErrMsgStoreFailed, err)
	}
	return &Token{Token: signed, ExpiresAt: expires}, nil
}

// Validate returns the claims of a live token or domain.ErrUnauthorized
func (m *Manager) Validate(ctx context.Context, token string) (*Claims, error) {
	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (interface{}, error) {
		return m.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(m.now))
	if err != nil || !parsed.Valid || claims.UserID == "" || claims.SessionID == "" {
		logger.FromContext(ctx).Debug(LogMsgInvalidToken, "error", err)
		return nil, domain.ErrUnauthorized
	}

	ok, err := m.store.Exists(ctx, claims.UserID, claims.SessionID)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgLookupFailed, err)
	}
	if !ok {
		return nil, domain.ErrUnauthorized
	}
	return claims, nil
}

// Revoke deletes the session behind claims
func (m *Manager) Revoke(ctx context.Context, claims *Claims) error {
	if err := m.store.Delete(ctx, claims.UserID, claims.SessionID); err != nil {
		return err
	}
	logger.FromContext(ctx).Info(LogMsgRevoked, "session_id", claims.SessionID)
	return nil
}
