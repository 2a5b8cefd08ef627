package api

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/phrazzld/flashdeck/internal/api/shared"
	"github.com/phrazzld/flashdeck/internal/domain"
	"github.com/phrazzld/flashdeck/internal/redact"
)

// getPathUUID extracts and parses a UUID path parameter.
func getPathUUID(r *http.Request, paramName string) (uuid.UUID, error) {
	pathParam := chi.URLParam(r, paramName)
	if pathParam == "" {
		return uuid.Nil, domain.NewValidationError(paramName, "is required", domain.ErrValidation)
	}

	id, err := uuid.Parse(pathParam)
	if err != nil {
		return uuid.Nil, domain.NewValidationError(paramName, "has invalid format", domain.ErrInvalidID)
	}
	return id, nil
}

// requireOwner returns the authenticated owner or writes a 401.
func requireOwner(w http.ResponseWriter, r *http.Request, log *slog.Logger) (string, bool) {
	ownerID, ok := shared.OwnerFromContext(r.Context())
	if !ok {
		log.Warn("owner ID not found in request context")
		shared.RespondWithError(w, r, http.StatusUnauthorized, "Authentication required")
		return "", false
	}
	return ownerID, true
}

// handleOwnerAndPathUUIDs extracts the owner and every named UUID path
// parameter, writing an error response and returning false on failure.
func handleOwnerAndPathUUIDs(
	w http.ResponseWriter,
	r *http.Request,
	log *slog.Logger,
	paramNames ...string,
) (string, []uuid.UUID, bool) {
	ownerID, ok := requireOwner(w, r, log)
	if !ok {
		return "", nil, false
	}

	ids := make([]uuid.UUID, 0, len(paramNames))
	for _, name := range paramNames {
		id, err := getPathUUID(r, name)
		if err != nil {
			log.Debug("invalid path parameter", slog.String("param_name", name))
			HandleAPIError(w, r, err, "")
			return "", nil, false
		}
		ids = append(ids, id)
	}
	return ownerID, ids, true
}

// decodeAndValidate reads a JSON body into req and validates it. It writes
// a 400 and returns false on failure.
func decodeAndValidate(w http.ResponseWriter, r *http.Request, log *slog.Logger, req any) bool {
	if err := shared.DecodeJSON(w, r, req); err != nil {
		log.Debug("invalid request format", slog.String("error", redact.Error(err)))
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			shared.RespondWithError(w, r, http.StatusRequestEntityTooLarge, "Request body too large")
			return false
		}
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return false
	}

	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, SanitizeValidationError(err), err)
		return false
	}
	return true
}
