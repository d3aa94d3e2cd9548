package apperror

import (
	"errors"
	"fmt"
	"testing"
)

func TestGetCode(t *testing.T) {
	base := NotFound("cycle not found")
	wrapped := fmt.Errorf("load cycle: %w", base)

	if got := GetCode(wrapped); got != CodeNotFound {
		t.Fatalf("expected not_found, got %q", got)
	}
	if got := GetCode(errors.New("boom")); got != CodeInternal {
		t.Fatalf("expected internal, got %q", got)
	}
	if got := GetCode(nil); got != "" {
		t.Fatalf("expected empty code for nil, got %q", got)
	}
}

func TestNewfMatchesBase(t *testing.T) {
	base := Validation("workload exceeded")
	err := Newf(base, "total workload would exceed 100%% (current %s%%)", "80")

	if !errors.Is(err, base) {
		t.Fatal("expected errors.Is to match the base error")
	}
	if err.Error() != "total workload would exceed 100% (current 80%)" {
		t.Fatalf("unexpected message %q", err.Error())
	}
	if GetCode(err) != CodeValidation {
		t.Fatalf("expected validation code, got %q", GetCode(err))
	}
}

func TestMessageHidesInternalErrors(t *testing.T) {
	if got := Message(errors.New("pq: connection refused")); got != "internal server error" {
		t.Fatalf("unexpected message %q", got)
	}
	if got := Message(Conflict("duplicate national id")); got != "duplicate national id" {
		t.Fatalf("unexpected message %q", got)
	}
}
