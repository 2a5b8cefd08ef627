package service

import (
	"errors"
	"fmt"

	"github.com/phrazzld/flashdeck/internal/store"
)

// Service-level sentinel errors. The API layer maps them to status codes.
var (
	// ErrNotOwned is returned for a deck that is missing or owned by someone
	// else. It is the store's deck-not-found error so both layers match.
	ErrNotOwned = store.ErrDeckNotFound

	// ErrDeckLimitReached is returned when a free-plan owner already has the
	// maximum number of decks.
	ErrDeckLimitReached = errors.New("deck limit reached")

	// ErrFeatureNotEnabled is returned when the caller lacks the grant an
	// operation needs.
	ErrFeatureNotEnabled = errors.New("feature not enabled for this account")

	// ErrDeckNotReadyForGeneration is returned when a deck lacks the title or
	// description that generation needs.
	ErrDeckNotReadyForGeneration = errors.New("deck is not ready for generation")

	// ErrGenerationUnavailable is returned when no generator is configured.
	ErrGenerationUnavailable = errors.New("card generation is not configured")
)

// ServiceError adds the failing operation to an error.
type ServiceError struct {
	Service   string
	Operation string
	Message   string
	Err       error
}

// Error implements the error interface for ServiceError.
func (e *ServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s service %s failed: %s: %v", e.Service, e.Operation, e.Message, e.Err)
	}
	return fmt.Sprintf("%s service %s failed: %s", e.Service, e.Operation, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *ServiceError) Unwrap() error {
	return e.Err
}

// NewDeckServiceError creates a ServiceError for the deck service.
func NewDeckServiceError(operation, message string, err error) *ServiceError {
	return &ServiceError{Service: "deck", Operation: operation, Message: message, Err: err}
}

// NewCardServiceError creates a ServiceError for the card service.
func NewCardServiceError(operation, message string, err error) *ServiceError {
	return &ServiceError{Service: "card", Operation: operation, Message: message, Err: err}
}
