package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"
	"github.com/phrazzld/flashdeck/internal/api/shared"
	"github.com/phrazzld/flashdeck/internal/domain"
	"github.com/phrazzld/flashdeck/internal/generation"
	"github.com/phrazzld/flashdeck/internal/reconcile"
	"github.com/phrazzld/flashdeck/internal/service"
	"github.com/phrazzld/flashdeck/internal/service/auth"
	"github.com/phrazzld/flashdeck/internal/store"
)

// User-facing messages shared by several handlers.
const (
	MsgDeckNotFound     = "Deck not found or you do not have access to it"
	MsgDeckLimitReached = "You've reached the 3 deck limit on the free plan. Upgrade to Pro for unlimited decks."
	MsgUpdateCards      = "Failed to update cards"
	MsgGenerateFailed   = "Failed to generate AI cards. Please try again."
	MsgUnexpected       = "An unexpected error occurred"
)

// MapErrorToStatusCode maps internal errors to appropriate HTTP status codes
// based on the error type. This prevents leaking internal error types or
// messages to clients.
func MapErrorToStatusCode(err error) int {
	switch {
	// A failed commit is reported as one failure whatever its causes were.
	case errors.Is(err, reconcile.ErrCommitFailed):
		return http.StatusInternalServerError

	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrExpiredToken),
		errors.Is(err, auth.ErrMissingToken):
		return http.StatusUnauthorized

	// A foreign deck is reported exactly like a missing one.
	case errors.Is(err, store.ErrDeckNotFound),
		errors.Is(err, store.ErrCardNotFound):
		return http.StatusNotFound

	case errors.Is(err, service.ErrDeckLimitReached),
		errors.Is(err, service.ErrFeatureNotEnabled):
		return http.StatusForbidden

	case errors.Is(err, domain.ErrValidation),
		errors.Is(err, store.ErrInvalidEntity),
		errors.Is(err, generation.ErrEmptyTopic):
		return http.StatusBadRequest

	case errors.Is(err, store.ErrDuplicate):
		return http.StatusConflict

	case errors.Is(err, generation.ErrInvalidResponse),
		errors.Is(err, generation.ErrContentBlocked):
		return http.StatusBadGateway

	case errors.Is(err, store.ErrUnavailable),
		errors.Is(err, generation.ErrTransientFailure),
		errors.Is(err, service.ErrGenerationUnavailable):
		return http.StatusServiceUnavailable

	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a sanitized, user-friendly error message
// based on the error type. This prevents leaking sensitive internal details.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return MsgUnexpected
	}

	var verr *domain.ValidationError
	switch {
	case errors.Is(err, reconcile.ErrCommitFailed):
		return MsgUpdateCards

	case errors.Is(err, auth.ErrExpiredToken):
		return "Token expired"
	case errors.Is(err, auth.ErrInvalidToken), errors.Is(err, auth.ErrMissingToken):
		return "Invalid token"

	case errors.Is(err, store.ErrDeckNotFound):
		return MsgDeckNotFound
	case errors.Is(err, store.ErrCardNotFound):
		return "Card not found"

	case errors.Is(err, service.ErrDeckLimitReached):
		return MsgDeckLimitReached
	case errors.Is(err, service.ErrFeatureNotEnabled):
		return "AI flashcard generation is not available on your plan"

	case errors.As(err, &verr):
		return validationMessage(verr)
	case errors.Is(err, store.ErrInvalidEntity):
		return "Invalid entity data"

	case errors.Is(err, store.ErrDuplicate):
		return "Entity already exists"

	case errors.Is(err, generation.ErrContentBlocked):
		return "The AI service declined to generate cards for this deck"
	case errors.Is(err, generation.ErrInvalidResponse),
		errors.Is(err, generation.ErrTransientFailure):
		return MsgGenerateFailed
	case errors.Is(err, service.ErrGenerationUnavailable):
		return "AI flashcard generation is not configured"

	case errors.Is(err, store.ErrUnavailable):
		return "Service temporarily unavailable. Please try again."

	default:
		return MsgUnexpected
	}
}

// validationMessage renders a domain validation error for clients. Messages
// written as full sentences are passed through unchanged.
func validationMessage(verr *domain.ValidationError) string {
	msg := verr.Message
	if msg == "" {
		return "Invalid input"
	}
	if first := []rune(msg)[0]; unicode.IsUpper(first) || verr.Field == "" {
		return msg
	}
	return fmt.Sprintf("%s %s", capitalize(verr.Field), msg)
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	r := []rune(strings.ReplaceAll(s, "_", " "))
	r[0] = unicode.ToUpper(r[0])
	return string(r)
}

// SanitizeValidationError turns validator output into a short message that
// names the first failing field.
func SanitizeValidationError(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return "Validation error"
	}

	fe := verrs[0]
	return fmt.Sprintf("Invalid %s: %s", strings.ToLower(fe.Field()), getValidationTagMessage(fe.Tag()))
}

// getValidationTagMessage maps validation tags to user-friendly error messages
func getValidationTagMessage(tag string) string {
	switch tag {
	case "required":
		return "required field"
	case "min":
		return "too short"
	case "max":
		return "too long"
	case "uuid":
		return "invalid ID format"
	case "oneof":
		return "invalid value"
	default:
		return "validation failed"
	}
}

// HandleAPIError writes err as a JSON error response. When err maps to a
// 500, fallback replaces the generic message if it is non-empty.
func HandleAPIError(w http.ResponseWriter, r *http.Request, err error, fallback string) {
	status := MapErrorToStatusCode(err)
	message := GetSafeErrorMessage(err)
	if status == http.StatusInternalServerError && fallback != "" {
		message = fallback
	}

	var opts []shared.ResponseOption
	if status == http.StatusForbidden {
		opts = append(opts, shared.WithElevatedLogLevel())
	}
	shared.RespondWithErrorAndLog(w, r, status, message, err, opts...)
}
