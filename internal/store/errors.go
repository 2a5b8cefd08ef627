package store

import (
	"errors"
	"fmt"
)

// Sentinels returned by every store implementation.
var (
	// ErrNotFound is the root of every not-found error; ErrDeckNotFound and
	// ErrCardNotFound wrap it.
	ErrNotFound = errors.New("entity not found")

	// ErrDuplicate reports a unique constraint violation.
	ErrDuplicate = errors.New("entity already exists")

	// ErrInvalidEntity reports a record rejected by validation or a check
	// constraint. The domain.ValidationError, when there is one, is wrapped too.
	ErrInvalidEntity = errors.New("invalid entity")

	// ErrUnavailable is returned when storage could not be reached or the
	// operation timed out. Nothing in the store retries; callers decide.
	ErrUnavailable = errors.New("storage unavailable")

	// ErrDeckNotFound is returned when a deck does not exist or is not owned
	// by the acting identity. The two cases are deliberately indistinguishable.
	ErrDeckNotFound = fmt.Errorf("%w: deck", ErrNotFound)

	// ErrCardNotFound means the deck is owned but has no such card.
	ErrCardNotFound = fmt.Errorf("%w: card", ErrNotFound)
)

// IsNotFoundError reports whether err is any not-found error.
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsDuplicateError reports whether err is a duplicate error.
func IsDuplicateError(err error) bool {
	return errors.Is(err, ErrDuplicate)
}

// IsUnavailableError reports whether storage could not be reached.
func IsUnavailableError(err error) bool {
	return errors.Is(err, ErrUnavailable)
}

// StoreError adds the entity and operation to a failed store call.
type StoreError struct {
	Entity    string // "deck" or "card"
	Operation string // "create", "update", ...
	Message   string
	Err       error
}

// Error implements the error interface.
func (e *StoreError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf(
			"%s operation on %s failed: %s: %v",
			e.Operation,
			e.Entity,
			e.Message,
			e.Err,
		)
	}
	return fmt.Sprintf("%s operation on %s failed: %s", e.Operation, e.Entity, e.Message)
}

// Unwrap returns the cause.
func (e *StoreError) Unwrap() error {
	return e.Err
}

// NewStoreError builds a StoreError.
func NewStoreError(entity, operation, message string, err error) *StoreError {
	return &StoreError{
		Entity:    entity,
		Operation: operation,
		Message:   message,
		Err:       err,
	}
}
