package commonerrors

import (
	"errors"
	"fmt"
	"net/http"
)

type ErrorCategory string

const (
	CategoryValidation   ErrorCategory = "VALIDATION"
	CategoryNotFound     ErrorCategory = "NOT_FOUND"
	CategoryConflict     ErrorCategory = "CONFLICT"
	CategoryUnauthorized ErrorCategory = "UNAUTHORIZED"
	CategoryInternal     ErrorCategory = "INTERNAL"
)

type DomainError interface {
	error
	Code() string
	Category() ErrorCategory
	HTTPStatus() int
	Message() string
	Unwrap() error
	WithCause(cause error) DomainError
	WithMessage(message string) DomainError
}

type domainError struct {
	code     string
	category ErrorCategory
	status   int
	message  string
	cause    error
}

func (e *domainError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.message, e.cause)
	}
	return e.message
}

func (e *domainError) Code() string {
	return e.code
}

func (e *domainError) Category() ErrorCategory {
	return e.category
}

func (e *domainError) HTTPStatus() int {
	return e.status
}

func (e *domainError) Message() string {
	return e.message
}

func (e *domainError) Unwrap() error {
	return e.cause
}

// Is matches any domain error carrying the same code, so values derived
// through WithCause or WithMessage still compare equal to their sentinel.
func (e *domainError) Is(target error) bool {
	var de *domainError
	if !errors.As(target, &de) {
		return false
	}
	return de.code == e.code
}

func (e *domainError) WithCause(cause error) DomainError {
	return &domainError{
		code:     e.code,
		category: e.category,
		status:   e.status,
		message:  e.message,
		cause:    cause,
	}
}

func (e *domainError) WithMessage(message string) DomainError {
	return &domainError{
		code:     e.code,
		category: e.category,
		status:   e.status,
		message:  message,
		cause:    e.cause,
	}
}

func NewDomainError(code string, category ErrorCategory, status int, message string) DomainError {
	return &domainError{
		code:     code,
		category: category,
		status:   status,
		message:  message,
	}
}

func IsDomainError(err error) bool {
	var de DomainError
	return errors.As(err, &de)
}

func AsDomainError(err error) (DomainError, bool) {
	var de DomainError
	if errors.As(err, &de) {
		return de, true
	}
	return nil, false
}

var (
	ErrMissingRequiredEnv = NewDomainError(
		"MISSING_REQUIRED_ENV",
		CategoryValidation,
		http.StatusInternalServerError,
		"missing required environment variable",
	)

	ErrInvalidPayload = NewDomainError(
		"INVALID_PAYLOAD",
		CategoryValidation,
		http.StatusBadRequest,
		"invalid json payload",
	)

	ErrValidation = NewDomainError(
		"VALIDATION_FAILED",
		CategoryValidation,
		http.StatusBadRequest,
		"validation failed",
	)

	ErrEmailTaken = NewDomainError(
		"EMAIL_TAKEN",
		CategoryConflict,
		http.StatusConflict,
		"email already registered",
	)

	ErrUsernameTaken = NewDomainError(
		"USERNAME_TAKEN",
		CategoryConflict,
		http.StatusConflict,
		"username already taken",
	)

	ErrInvalidCredentials = NewDomainError(
		"INVALID_CREDENTIALS",
		CategoryUnauthorized,
		http.StatusUnauthorized,
		"wrong credentials",
	)

	ErrAccountNotFound = NewDomainError(
		"ACCOUNT_NOT_FOUND",
		CategoryNotFound,
		http.StatusNotFound,
		"user not found",
	)

	ErrPostNotFound = NewDomainError(
		"POST_NOT_FOUND",
		CategoryNotFound,
		http.StatusNotFound,
		"post not found",
	)

	ErrCommentNotFound = NewDomainError(
		"COMMENT_NOT_FOUND",
		CategoryNotFound,
		http.StatusNotFound,
		"comment not found",
	)

	ErrRouteNotFound = NewDomainError(
		"ROUTE_NOT_FOUND",
		CategoryNotFound,
		http.StatusNotFound,
		"route not found",
	)

	ErrPayloadTooLarge = NewDomainError(
		"PAYLOAD_TOO_LARGE",
		CategoryValidation,
		http.StatusRequestEntityTooLarge,
		"request body too large",
	)

	ErrMethodNotAllowed = NewDomainError(
		"METHOD_NOT_ALLOWED",
		CategoryValidation,
		http.StatusMethodNotAllowed,
		"method not allowed",
	)

	ErrRateLimited = NewDomainError(
		"RATE_LIMITED",
		CategoryValidation,
		http.StatusTooManyRequests,
		"rate limit exceeded",
	)

	ErrInternalError = NewDomainError(
		"INTERNAL_ERROR",
		CategoryInternal,
		http.StatusInternalServerError,
		"internal server error",
	)
)
