package commonerrors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestDomainError_IsMatchesDerivedErrors(t *testing.T) {
	cause := errors.New("duplicate key")
	err := fmt.Errorf("create poster: %w", ErrEmailTaken.WithCause(cause))

	if !errors.Is(err, ErrEmailTaken) {
		t.Fatal("expected derived error to match its sentinel")
	}
	if errors.Is(err, ErrUsernameTaken) {
		t.Fatal("expected different codes not to match")
	}
	if !errors.Is(err, cause) {
		t.Fatal("expected cause to stay reachable")
	}
}

func TestDomainError_WithMessage(t *testing.T) {
	err := ErrValidation.WithMessage("title is required")

	if err.Message() != "title is required" {
		t.Errorf("unexpected message %q", err.Message())
	}
	if err.HTTPStatus() != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", err.HTTPStatus())
	}
	if ErrValidation.Message() != "validation failed" {
		t.Error("expected sentinel to stay untouched")
	}
}

func TestAsDomainError(t *testing.T) {
	if _, ok := AsDomainError(errors.New("plain")); ok {
		t.Fatal("expected plain error not to be a domain error")
	}

	de, ok := AsDomainError(fmt.Errorf("wrap: %w", ErrPostNotFound))
	if !ok {
		t.Fatal("expected wrapped domain error")
	}
	if de.Category() != CategoryNotFound {
		t.Errorf("expected NOT_FOUND, got %s", de.Category())
	}
}
