package util

import (
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/jackc/pgx/v5"
)

// Error codes in the portal's taxonomy.
const (
	CodeUnauthenticated   = "UNAUTHENTICATED"
	CodeInvalidCredential = "INVALID_CREDENTIAL"
	CodeForbidden         = "FORBIDDEN"
	CodeValidation        = "VALIDATION_FAILED"
	CodeNotFound          = "NOT_FOUND"
	CodeConflict          = "CONFLICT"
	CodeStoreError        = "STORE_ERROR"
)

// DomainError standardizes application errors. Message is what callers see;
// Code feeds metrics and logs.
type DomainError struct {
	Code       string
	Message    string
	HTTPStatus int
	Details    map[string]any
	Err        error
}

func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *DomainError) Unwrap() error {
	return e.Err
}

// NewUnauthenticated flags a missing or malformed credential. The caller-facing
// message stays "Unauthorized", matching the API contract.
func NewUnauthenticated() error {
	return &DomainError{Code: CodeUnauthenticated, Message: "Unauthorized", HTTPStatus: http.StatusUnauthorized}
}

// NewInvalidCredential flags a credential that failed verification.
func NewInvalidCredential() error {
	return &DomainError{Code: CodeInvalidCredential, Message: "Unauthorized", HTTPStatus: http.StatusUnauthorized}
}

// NewForbidden flags a role mismatch for an authenticated caller.
func NewForbidden(message string) error {
	return &DomainError{Code: CodeForbidden, Message: message, HTTPStatus: http.StatusForbidden}
}

// NewValidationError reports the offending fields of a rejected payload.
func NewValidationError(fields ...string) error {
	return &DomainError{
		Code:       CodeValidation,
		Message:    fmt.Sprintf("invalid or missing fields: %s", strings.Join(fields, ", ")),
		HTTPStatus: http.StatusBadRequest,
		Details:    map[string]any{"fields": fields},
	}
}

// NewBadRequest reports a malformed request outside field validation.
func NewBadRequest(message string) error {
	return &DomainError{Code: CodeValidation, Message: message, HTTPStatus: http.StatusBadRequest}
}

// NewNotFound reports an absent record.
func NewNotFound(resource string) error {
	return &DomainError{
		Code:       CodeNotFound,
		Message:    fmt.Sprintf("%s not found", resource),
		HTTPStatus: http.StatusNotFound,
	}
}

// NewConflict reports a uniqueness violation.
func NewConflict(message string) error {
	return &DomainError{Code: CodeConflict, Message: message, HTTPStatus: http.StatusConflict}
}

// NewStoreError wraps an opaque persistence failure as a generic 500.
func NewStoreError(err error) error {
	return &DomainError{
		Code:       CodeStoreError,
		Message:    "internal server error",
		HTTPStatus: http.StatusInternalServerError,
		Err:        err,
	}
}

// ToDomainError converts generic errors to DomainError. Missing rows surface
// as NOT_FOUND; everything else is an opaque store failure.
func ToDomainError(err error) *DomainError {
	if err == nil {
		return nil
	}
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr
	}
	if errors.Is(err, pgx.ErrNoRows) || errors.Is(err, sql.ErrNoRows) {
		if de, ok := NewNotFound("resource").(*DomainError); ok {
			return de
		}
	}
	if de, ok := NewStoreError(err).(*DomainError); ok {
		return de
	}
	return &DomainError{
		Code:       CodeStoreError,
		Message:    "internal server error",
		HTTPStatus: http.StatusInternalServerError,
		Err:        err,
	}
}

// MapError converts generic errors to the domain taxonomy.
func MapError(err error) error {
	if err == nil {
		return nil
	}
	return ToDomainError(err)
}
