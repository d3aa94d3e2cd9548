package auth

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const UserStatusActive = "active"

type Store struct {
	DB *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{DB: db}
}

type AuthUser struct {
	ID       string
	Email    string
	RoleName string
	Password string
}

func (s *Store) FindActiveUserByEmail(ctx context.Context, email string) (AuthUser, error) {
	var out AuthUser
	err := s.DB.QueryRow(ctx, `
    SELECT id, email, role, password_hash
    FROM users
    WHERE email = $1 AND status = $2
  `, email, UserStatusActive).Scan(&out.ID, &out.Email, &out.RoleName, &out.Password)
	return out, err
}

// Profile is the public view of a user account.
type Profile struct {
	ID         string     `json:"id"`
	Email      string     `json:"email"`
	Role       string     `json:"role"`
	EmployeeID string     `json:"employeeId,omitempty"`
	LastLogin  *time.Time `json:"lastLogin,omitempty"`
}

func (s *Store) FindProfile(ctx context.Context, userID string) (Profile, error) {
	var out Profile
	err := s.DB.QueryRow(ctx, `
    SELECT u.id::text, u.email, u.role, COALESCE(e.id::text, ''), u.last_login
    FROM users u
    LEFT JOIN employees e ON e.user_id = u.id
    WHERE u.id = $1 AND u.status = $2
  `, userID, UserStatusActive).Scan(&out.ID, &out.Email, &out.Role, &out.EmployeeID, &out.LastLogin)
	return out, err
}

func (s *Store) UpdateLastLogin(ctx context.Context, userID string) error {
	_, err := s.DB.Exec(ctx, "UPDATE users SET last_login = now() WHERE id = $1", userID)
	return err
}

// EnsureUser returns the id of the user with email, creating it when missing.
func (s *Store) EnsureUser(ctx context.Context, email, passwordHash, role string) (string, error) {
	var id string
	err := s.DB.QueryRow(ctx, "SELECT id::text FROM users WHERE email = $1", email).Scan(&id)
	if err == nil {
		return id, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return "", err
	}
	if err := s.DB.QueryRow(ctx, `
    INSERT INTO users (email, password_hash, role)
    VALUES ($1,$2,$3)
    RETURNING id::text
  `, email, passwordHash, role).Scan(&id); err != nil {
		return "", err
	}
	return id, nil
}
