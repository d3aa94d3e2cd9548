package db

import (
	"context"
	"log/slog"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"

	"hrportal/internal/domain/auth"
)

// SeedAdmin creates the bootstrap HR account when both credentials are set.
// An existing user with that email is left untouched.
func SeedAdmin(ctx context.Context, pool *pgxpool.Pool, email, password string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || strings.TrimSpace(password) == "" {
		slog.Info("admin seed skipped", "reason", "credentials not configured")
		return nil
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return err
	}
	id, err := auth.NewStore(pool).EnsureUser(ctx, email, hash, auth.RoleHR)
	if err != nil {
		return err
	}
	slog.Info("admin user ready", "userId", id)
	return nil
}
