package api

import (
	"log/slog"
	"net/http"

	"github.com/phrazzld/flashdeck/internal/api/shared"
	"github.com/phrazzld/flashdeck/internal/platform/logger"
	"github.com/phrazzld/flashdeck/internal/service"
)

// DeckHandler handles deck-related HTTP requests
type DeckHandler struct {
	decks  service.DeckService
	logger *slog.Logger
}

// NewDeckHandler creates a new DeckHandler
func NewDeckHandler(decks service.DeckService, logger *slog.Logger) *DeckHandler {
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for DeckHandler")
	}

	return &DeckHandler{
		decks:  decks,
		logger: logger.With(slog.String("component", "deck_handler")),
	}
}

// CreateDeck handles POST /decks requests.
func (h *DeckHandler) CreateDeck(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	ownerID, ok := requireOwner(w, r, log)
	if !ok {
		return
	}

	var req CreateDeckRequest
	if !decodeAndValidate(w, r, log, &req) {
		return
	}

	deck, err := h.decks.CreateDeck(r.Context(), ownerID, shared.EntitlementsFromContext(r.Context()),
		req.Title, req.Description)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to create deck")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, deckToResponse(deck))
}

// ListDecks handles GET /decks requests.
func (h *DeckHandler) ListDecks(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	ownerID, ok := requireOwner(w, r, log)
	if !ok {
		return
	}

	decks, err := h.decks.ListDecks(r.Context(), ownerID)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to list decks")
		return
	}

	out := make([]DeckResponse, 0, len(decks))
	for _, d := range decks {
		out = append(out, deckToResponse(d))
	}
	shared.RespondWithJSON(w, r, http.StatusOK, out)
}

// GetDeck handles GET /decks/{deckID} requests.
func (h *DeckHandler) GetDeck(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	ownerID, ids, ok := handleOwnerAndPathUUIDs(w, r, log, "deckID")
	if !ok {
		return
	}

	deck, err := h.decks.GetDeck(r.Context(), ownerID, ids[0])
	if err != nil {
		HandleAPIError(w, r, err, "Failed to get deck")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, deckToResponse(deck))
}

// UpdateDeck handles PUT /decks/{deckID} requests.
func (h *DeckHandler) UpdateDeck(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	ownerID, ids, ok := handleOwnerAndPathUUIDs(w, r, log, "deckID")
	if !ok {
		return
	}

	var req UpdateDeckRequest
	if !decodeAndValidate(w, r, log, &req) {
		return
	}

	deck, err := h.decks.UpdateDeck(r.Context(), ownerID, ids[0], req.Title, req.Description)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to update deck")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, deckToResponse(deck))
}

// DeleteDeck handles DELETE /decks/{deckID} requests.
func (h *DeckHandler) DeleteDeck(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	ownerID, ids, ok := handleOwnerAndPathUUIDs(w, r, log, "deckID")
	if !ok {
		return
	}

	if err := h.decks.DeleteDeck(r.Context(), ownerID, ids[0]); err != nil {
		HandleAPIError(w, r, err, "Failed to delete deck")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
