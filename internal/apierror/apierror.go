// Package apierror provides standardized error response structures for the API.
// All errors returned to clients go through this package to ensure consistency
// and to prevent leaking internal details (stack traces, DB errors, etc.).
package apierror

import (
	"errors"
	"net/http"
)

// APIError is the canonical error envelope for all 4xx/5xx HTTP responses.
type APIError struct {
	Detail string `json:"detail"`
}

func New(msg string) *APIError {
	return &APIError{Detail: msg}
}

// Validation wraps multiple field errors.
type ValidationError struct {
	Detail string            `json:"detail"`
	Fields map[string]string `json:"fields"`
}

func NewValidation(fields map[string]string) *ValidationError {
	return &ValidationError{Detail: "Error de validacion", Fields: fields}
}

// ConflictError is the envelope for 409 responses. Conflicto carries the
// record that blocked the operation when there is one.
type ConflictError struct {
	Detail    string `json:"detail"`
	Conflicto any    `json:"conflicto,omitempty"`
}

// ── Error kinds ──────────────────────────────────────────────────────────────

// Kind classifies a service error. Anything that is not an *Error is a store
// or internal failure.
type Kind int

const (
	KindValidation Kind = iota + 1
	KindNotFound
	KindConflict
	KindUnauthorized
)

// Error is returned by services for every failure the caller can act on.
type Error struct {
	Kind      Kind
	Detail    string
	Fields    map[string]string
	Conflicto any
}

func (e *Error) Error() string { return e.Detail }

// Validation builds a KindValidation error. fields may be nil.
func Validation(detail string, fields map[string]string) *Error {
	return &Error{Kind: KindValidation, Detail: detail, Fields: fields}
}

func NotFound(detail string) *Error {
	return &Error{Kind: KindNotFound, Detail: detail}
}

// Conflict builds a KindConflict error; conflicto is echoed to the client.
func Conflict(detail string, conflicto any) *Error {
	return &Error{Kind: KindConflict, Detail: detail, Conflicto: conflicto}
}

func Unauthorized(detail string) *Error {
	return &Error{Kind: KindUnauthorized, Detail: detail}
}

// As extracts an *Error from err's chain.
func As(err error) (*Error, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}

// Is reports whether err carries the given kind.
func Is(err error, kind Kind) bool {
	e, ok := As(err)
	return ok && e.Kind == kind
}

// Status maps a kind to its HTTP status code.
func (k Kind) Status() int {
	switch k {
	case KindValidation:
		return http.StatusUnprocessableEntity
	case KindNotFound:
		return http.StatusNotFound
	case KindConflict:
		return http.StatusConflict
	case KindUnauthorized:
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

// Body returns the JSON envelope for e.
func (e *Error) Body() any {
	switch e.Kind {
	case KindValidation:
		if len(e.Fields) > 0 {
			return &ValidationError{Detail: e.Detail, Fields: e.Fields}
		}
	case KindConflict:
		return &ConflictError{Detail: e.Detail, Conflicto: e.Conflicto}
	}
	return New(e.Detail)
}
