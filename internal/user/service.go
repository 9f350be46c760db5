package user

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/shopspring/decimal"

	"github.com/chibox/chibox-server/internal/domain"
	"github.com/chibox/chibox-server/internal/logger"
	"github.com/chibox/chibox-server/internal/repository"
)

var usernamePattern = regexp.MustCompile(`^[A-Za-z0-9_]+$`)

// Service defines the interface for account operations
type Service interface {
	Register(ctx context.Context, username, password string) (*domain.User, error)
	// Login returns domain.ErrInvalidCredentials for unknown users and wrong passwords alike
	Login(ctx context.Context, username, password string) (*domain.User, error)
	Profile(ctx context.Context, userID string) (*domain.User, error)
}

type service struct {
	repo            repository.User
	startingBalance decimal.Decimal
	hash            func(string) (string, error)
}

// NewService creates a new user service
func NewService(repo repository.User, startingBalance decimal.Decimal) Service {
	return &service{
		repo:            repo,
		startingBalance: startingBalance,
		hash:            HashPassword,
	}
}

// ValidateCredentials checks registration input
func ValidateCredentials(username, password string) error {
	n := utf8.RuneCountInString(username)
	if n < domain.UsernameMinLength || n > domain.UsernameMaxLength {
		return fmt.Errorf("%w: "+ErrMsgUsernameLength, domain.ErrInvalidInput, domain.UsernameMinLength, domain.UsernameMaxLength)
	}
	if !usernamePattern.MatchString(username) {
		return fmt.Errorf("%w: %s", domain.ErrInvalidInput, ErrMsgUsernameCharset)
	}
	if utf8.RuneCountInString(password) < domain.PasswordMinLength {
		return fmt.Errorf("%w: "+ErrMsgPasswordLength, domain.ErrInvalidInput, domain.PasswordMinLength)
	}
	return nil
}

func (s *service) Register(ctx context.Context, username, password string) (*domain.User, error) {
	username = strings.TrimSpace(username)
	if err := ValidateCredentials(username, password); err != nil {
		return nil, err
	}

	hash, err := s.hash(password)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgHashFailed, err)
	}

	u := &domain.User{
		Username:     username,
		PasswordHash: hash,
		Balance:      s.startingBalance,
	}
	if err := s.repo.CreateUser(ctx, u); err != nil {
		if errors.Is(err, domain.ErrUsernameTaken) {
			return nil, err
		}
		return nil, fmt.Errorf(ErrMsgCreateUserFailed, err)
	}

	logger.FromContext(ctx).Info(LogMsgUserRegistered, "user_id", u.ID, "username", u.Username)
	return u, nil
}

func (s *service) Login(ctx context.Context, username, password string) (*domain.User, error) {
	u, err := s.repo.GetUserByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}

	ok, err := VerifyPassword(password, u.PasswordHash)
	if err != nil {
		logger.FromContext(ctx).Error(LogMsgLoginFailed, "user_id", u.ID, "error", err)
		return nil, domain.ErrInvalidCredentials
	}
	if !ok {
		return nil, domain.ErrInvalidCredentials
	}
	return u, nil
}

func (s *service) Profile(ctx context.Context, userID string) (*domain.User, error) {
	return s.repo.GetUserByID(ctx, userID)
}
