package client

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrUnavailable is returned when the server cannot be reached or
	// reports that it is temporarily unavailable.
	ErrUnavailable = errors.New("server unavailable")

	// ErrUnauthorized is returned when the token is missing, invalid or expired.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrNotFound is returned for a deck or card that does not exist or is
	// not visible to the caller.
	ErrNotFound = errors.New("not found")

	// ErrForbidden is returned when the caller's plan does not allow the
	// operation.
	ErrForbidden = errors.New("forbidden")
)

// APIError is an error response from the server.
type APIError struct {
	StatusCode int
	Message    string
	TraceID    string
}

// Error implements the error interface for APIError.
func (e *APIError) Error() string {
	if e.TraceID != "" {
		return fmt.Sprintf("%s (status %d, trace %s)", e.Message, e.StatusCode, e.TraceID)
	}
	return fmt.Sprintf("%s (status %d)", e.Message, e.StatusCode)
}

// Is matches the sentinel that corresponds to the status code.
func (e *APIError) Is(target error) bool {
	switch target {
	case ErrUnavailable:
		return e.StatusCode == http.StatusServiceUnavailable
	case ErrUnauthorized:
		return e.StatusCode == http.StatusUnauthorized
	case ErrNotFound:
		return e.StatusCode == http.StatusNotFound
	case ErrForbidden:
		return e.StatusCode == http.StatusForbidden
	}
	return false
}
