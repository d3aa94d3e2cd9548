// Package pgerr classifies PostgreSQL errors returned through pgx.
package pgerr

import (
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

const (
	codeUniqueViolation     = "23505"
	codeForeignKeyViolation = "23503"
	codeCheckViolation      = "23514"
)

func code(err error) (string, string) {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code, pgErr.ConstraintName
	}
	return "", ""
}

// IsUniqueViolation reports a unique violation, optionally restricted to one
// constraint name.
func IsUniqueViolation(err error, constraint string) bool {
	c, name := code(err)
	return c == codeUniqueViolation && (constraint == "" || constraint == name)
}

func IsForeignKeyViolation(err error) bool {
	c, _ := code(err)
	return c == codeForeignKeyViolation
}

func IsCheckViolation(err error) bool {
	c, _ := code(err)
	return c == codeCheckViolation
}

func IsNoRows(err error) bool {
	return errors.Is(err, pgx.ErrNoRows)
}

// NullIfEmpty turns an empty optional reference into SQL NULL.
func NullIfEmpty(value string) any {
	if value == "" {
		return nil
	}
	return value
}
