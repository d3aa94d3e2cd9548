package pgerr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

func TestClassification(t *testing.T) {
	unique := fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23505", ConstraintName: "employees_email_key"})
	fk := &pgconn.PgError{Code: "23503"}
	check := &pgconn.PgError{Code: "23514"}

	if !IsUniqueViolation(unique, "") || !IsUniqueViolation(unique, "employees_email_key") {
		t.Fatal("expected unique violation")
	}
	if IsUniqueViolation(unique, "employees_national_id_key") {
		t.Fatal("constraint filter should not match")
	}
	if !IsForeignKeyViolation(fk) || IsForeignKeyViolation(unique) {
		t.Fatal("foreign key classification wrong")
	}
	if !IsCheckViolation(check) {
		t.Fatal("expected check violation")
	}
	if !IsNoRows(fmt.Errorf("scan: %w", pgx.ErrNoRows)) || IsNoRows(errors.New("other")) {
		t.Fatal("no rows classification wrong")
	}
}

func TestNullIfEmpty(t *testing.T) {
	if NullIfEmpty("") != nil {
		t.Fatal("expected nil for empty value")
	}
	if NullIfEmpty("abc") != "abc" {
		t.Fatal("expected value passthrough")
	}
}
