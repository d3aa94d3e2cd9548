package auth

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"hrportal/internal/platform/apperror"
)

var (
	ErrInvalidCredentials = apperror.New(apperror.CodeUnauthorized, "invalid credentials")
	ErrUserNotFound       = apperror.NotFound("user not found")
)

type UserStore interface {
	FindActiveUserByEmail(ctx context.Context, email string) (AuthUser, error)
	FindProfile(ctx context.Context, userID string) (Profile, error)
	UpdateLastLogin(ctx context.Context, userID string) error
}

type Service struct {
	store    UserStore
	secret   string
	tokenTTL time.Duration
}

func NewService(store UserStore, secret string, tokenTTL time.Duration) *Service {
	return &Service{store: store, secret: secret, tokenTTL: tokenTTL}
}

type LoginResult struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
	UserID    string    `json:"userId"`
	Role      string    `json:"role"`
}

func (s *Service) Login(ctx context.Context, email, password string) (LoginResult, error) {
	user, err := s.store.FindActiveUserByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		return LoginResult{}, ErrInvalidCredentials
	}
	if err := CheckPassword(user.Password, password); err != nil {
		return LoginResult{}, ErrInvalidCredentials
	}

	token, err := GenerateToken(s.secret, Claims{UserID: user.ID, RoleName: user.RoleName}, s.tokenTTL)
	if err != nil {
		return LoginResult{}, err
	}
	if err := s.store.UpdateLastLogin(ctx, user.ID); err != nil {
		slog.Warn("update last_login failed", "userId", user.ID, "err", err)
	}
	return LoginResult{
		Token:     token,
		ExpiresAt: time.Now().Add(s.tokenTTL),
		UserID:    user.ID,
		Role:      user.RoleName,
	}, nil
}

func (s *Service) Me(ctx context.Context, userID string) (Profile, error) {
	profile, err := s.store.FindProfile(ctx, userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Profile{}, ErrUserNotFound
		}
		return Profile{}, err
	}
	return profile, nil
}
