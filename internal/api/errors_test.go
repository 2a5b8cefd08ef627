package api

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/phrazzld/flashdeck/internal/domain"
	"github.com/phrazzld/flashdeck/internal/generation"
	"github.com/phrazzld/flashdeck/internal/reconcile"
	"github.com/phrazzld/flashdeck/internal/service"
	"github.com/phrazzld/flashdeck/internal/service/auth"
	"github.com/phrazzld/flashdeck/internal/store"
	"github.com/stretchr/testify/assert"
)

func TestMapErrorToStatusCode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want int
	}{
		{"deck not found", store.ErrDeckNotFound, http.StatusNotFound},
		{"wrapped not owned", service.NewCardServiceError("op", "msg", service.ErrNotOwned), http.StatusNotFound},
		{"card not found", store.ErrCardNotFound, http.StatusNotFound},
		{"expired token", auth.ErrExpiredToken, http.StatusUnauthorized},
		{"deck limit", service.ErrDeckLimitReached, http.StatusForbidden},
		{"feature", service.ErrFeatureNotEnabled, http.StatusForbidden},
		{"validation", domain.NewValidationError("front", "cannot be empty", domain.ErrEmptyContent), http.StatusBadRequest},
		{"invalid entity", store.ErrInvalidEntity, http.StatusBadRequest},
		{"empty topic", generation.ErrEmptyTopic, http.StatusBadRequest},
		{"duplicate", store.ErrDuplicate, http.StatusConflict},
		{"blocked", generation.ErrContentBlocked, http.StatusBadGateway},
		{"bad model output", generation.ErrInvalidResponse, http.StatusBadGateway},
		{"store unavailable", store.ErrUnavailable, http.StatusServiceUnavailable},
		{"generator not configured", service.ErrGenerationUnavailable, http.StatusServiceUnavailable},
		{"commit over unavailable store", &reconcile.CommitError{Requests: 3, Err: store.ErrUnavailable}, http.StatusInternalServerError},
		{"unknown", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.want, MapErrorToStatusCode(tc.err))
		})
	}
}

func TestGetSafeErrorMessage(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want string
	}{
		{"nil", nil, MsgUnexpected},
		{"not owned", fmt.Errorf("get: %w", service.ErrNotOwned), MsgDeckNotFound},
		{"limit", service.ErrDeckLimitReached, MsgDeckLimitReached},
		{"commit", &reconcile.CommitError{Requests: 1, Err: store.ErrDeckNotFound}, MsgUpdateCards},
		{"field message", domain.NewValidationError("front", "cannot be empty", domain.ErrEmptyContent), "Front cannot be empty"},
		{"sentence message", domain.NewValidationError("title", "Title is required", domain.ErrValidation), "Title is required"},
		{"snake case field", domain.NewValidationError("owner_id", "cannot be empty", domain.ErrInvalidID), "Owner id cannot be empty"},
		{"internal detail hidden", errors.New("pq: relation cards does not exist"), MsgUnexpected},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.want, GetSafeErrorMessage(tc.err))
		})
	}
}

func TestSanitizeValidationError(t *testing.T) {
	t.Parallel()

	v := validator.New(validator.WithRequiredStructEnabled())

	type payload struct {
		Title string `validate:"required,max=5"`
	}

	assert.Equal(t, "Invalid title: required field", SanitizeValidationError(v.Struct(payload{})))
	assert.Equal(t, "Invalid title: too long", SanitizeValidationError(v.Struct(payload{Title: "abcdef"})))
	assert.Equal(t, "Validation error", SanitizeValidationError(errors.New("other")))
}
