// Package service provides business logic for the application:
// the glossary access guard, term pagination, and the ownership-checked
// mutation pipeline.
package service

import (
	"errors"
	"sort"
	"strings"
)

// Service errors. Handlers map these to wire codes; nothing else
// crosses the handler boundary untyped.
var (
	// ErrUnauthenticated means a protected operation was called without
	// a resolved identity.
	ErrUnauthenticated = errors.New("authentication required")

	// ErrNotFound means the resource does not exist. Only used where
	// existence is checked independent of ownership (the public read path).
	ErrNotFound = errors.New("resource not found")

	// ErrForbidden means the resource exists, is private, and the
	// caller is not the owner.
	ErrForbidden = errors.New("access denied")

	// ErrNotFoundOrUnauthorized is the merged outcome for owner-scoped
	// lookups. Distinguishing the two cases would leak resource
	// existence to non-owners, so we don't.
	ErrNotFoundOrUnauthorized = errors.New("resource not found or unauthorized")

	// ErrInvalidCredentials covers every sign-in failure uniformly to
	// prevent account enumeration.
	ErrInvalidCredentials = errors.New("invalid email or password")
)

// ValidationError carries field-level messages for inputs that fail
// shape or non-empty constraints.
type ValidationError struct {
	Fields map[string]string
}

// Error renders the field messages in deterministic order.
func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return "validation failed"
	}

	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	b.WriteString("validation failed: ")
	for i, k := range keys {
		if i > 0 {
			b.WriteString("; ")
		}
		b.WriteString(k)
		b.WriteString(": ")
		b.WriteString(e.Fields[k])
	}
	return b.String()
}

// invalid builds a single-field ValidationError.
func invalid(field, message string) *ValidationError {
	return &ValidationError{Fields: map[string]string{field: message}}
}

// outcome maps a service error to a metrics label.
func outcome(err error) string {
	var ve *ValidationError
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, ErrUnauthenticated):
		return "unauthenticated"
	case errors.Is(err, ErrNotFound):
		return "not_found"
	case errors.Is(err, ErrForbidden):
		return "forbidden"
	case errors.Is(err, ErrNotFoundOrUnauthorized):
		return "not_found_or_unauthorized"
	case errors.Is(err, ErrInvalidCredentials):
		return "invalid_credentials"
	case errors.As(err, &ve):
		return "validation_error"
	default:
		return "error"
	}
}
