package api

import (
	"errors"
	"fmt"
)

// Sentinel errors classifying API failures. Callers match them with
// errors.Is; the server-supplied detail text travels alongside in APIError.
var (
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("already exists")
	ErrValidation   = errors.New("validation rejected")
	ErrServer       = errors.New("server error")
	ErrUnavailable  = errors.New("server unavailable")
)

// APIError is an HTTP-level failure with the server's explanation attached.
// It unwraps to one of the sentinel errors above.
type APIError struct {
	Status int
	Detail string
	// Fields holds per-field messages from a validation rejection,
	// keyed by field name.
	Fields map[string]string

	kind error
}

func (e *APIError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("api: %s (status %d)", e.Detail, e.Status)
	}
	return fmt.Sprintf("api: %s (status %d)", e.kind, e.Status)
}

func (e *APIError) Unwrap() error { return e.kind }

// Message extracts a human-readable display message from an error,
// preferring the server-supplied detail when present.
func Message(err error) string {
	if err == nil {
		return ""
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Detail != "" {
		return apiErr.Detail
	}
	switch {
	case errors.Is(err, ErrUnavailable):
		return "server unavailable"
	case errors.Is(err, ErrUnauthorized):
		return "invalid credentials"
	default:
		return err.Error()
	}
}
