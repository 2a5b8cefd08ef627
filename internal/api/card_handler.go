package api

import (
	"log/slog"
	"net/http"

	"github.com/phrazzld/flashdeck/internal/api/shared"
	"github.com/phrazzld/flashdeck/internal/domain"
	"github.com/phrazzld/flashdeck/internal/platform/logger"
	"github.com/phrazzld/flashdeck/internal/service"
)

// CardHandler handles card-related HTTP requests
type CardHandler struct {
	cards      service.CardService
	bulk       service.BulkEditService
	generation service.GenerationService
	logger     *slog.Logger
}

// NewCardHandler creates a new CardHandler
func NewCardHandler(
	cards service.CardService,
	bulk service.BulkEditService,
	generation service.GenerationService,
	logger *slog.Logger,
) *CardHandler {
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for CardHandler")
	}

	return &CardHandler{
		cards:      cards,
		bulk:       bulk,
		generation: generation,
		logger:     logger.With(slog.String("component", "card_handler")),
	}
}

// ListCards handles GET /decks/{deckID}/cards requests.
func (h *CardHandler) ListCards(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	ownerID, ids, ok := handleOwnerAndPathUUIDs(w, r, log, "deckID")
	if !ok {
		return
	}

	cards, err := h.cards.ListCards(r.Context(), ownerID, ids[0])
	if err != nil {
		HandleAPIError(w, r, err, "Failed to list cards")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, cardsToResponse(cards))
}

// CreateCard handles POST /decks/{deckID}/cards requests.
func (h *CardHandler) CreateCard(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	ownerID, ids, ok := handleOwnerAndPathUUIDs(w, r, log, "deckID")
	if !ok {
		return
	}

	var req CreateCardRequest
	if !decodeAndValidate(w, r, log, &req) {
		return
	}

	card, err := h.cards.CreateCard(r.Context(), ownerID, ids[0], req.Front, req.Back)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to create card")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, cardToResponse(card))
}

// GetCard handles GET /decks/{deckID}/cards/{cardID} requests.
func (h *CardHandler) GetCard(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	ownerID, ids, ok := handleOwnerAndPathUUIDs(w, r, log, "deckID", "cardID")
	if !ok {
		return
	}

	card, err := h.cards.GetCard(r.Context(), ownerID, ids[0], ids[1])
	if err != nil {
		HandleAPIError(w, r, err, "Failed to get card")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, cardToResponse(card))
}

// UpdateCard handles PATCH /decks/{deckID}/cards/{cardID} requests.
// Updating a card that is not in the deck succeeds without effect.
func (h *CardHandler) UpdateCard(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	ownerID, ids, ok := handleOwnerAndPathUUIDs(w, r, log, "deckID", "cardID")
	if !ok {
		return
	}

	var req UpdateCardRequest
	if !decodeAndValidate(w, r, log, &req) {
		return
	}

	upd := domain.CardUpdate{Front: req.Front, Back: req.Back}
	if err := h.cards.UpdateCard(r.Context(), ownerID, ids[0], ids[1], upd); err != nil {
		HandleAPIError(w, r, err, "Failed to update card")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// DeleteCard handles DELETE /decks/{deckID}/cards/{cardID} requests.
func (h *CardHandler) DeleteCard(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	ownerID, ids, ok := handleOwnerAndPathUUIDs(w, r, log, "deckID", "cardID")
	if !ok {
		return
	}

	if err := h.cards.DeleteCard(r.Context(), ownerID, ids[0], ids[1]); err != nil {
		HandleAPIError(w, r, err, "Failed to delete card")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// BulkEdit handles PATCH /decks/{deckID}/cards requests. The body is the
// edited state of the deck; only cards that differ from storage are written.
func (h *CardHandler) BulkEdit(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	ownerID, ids, ok := handleOwnerAndPathUUIDs(w, r, log, "deckID")
	if !ok {
		return
	}

	var req BulkEditRequest
	if !decodeAndValidate(w, r, log, &req) {
		return
	}

	edits := make([]service.CardEdit, 0, len(req.Cards))
	for _, c := range req.Cards {
		edits = append(edits, service.CardEdit{ID: c.ID, Front: c.Front, Back: c.Back})
	}

	res, err := h.bulk.BulkEdit(r.Context(), ownerID, ids[0], service.BulkEditRequest{
		Cards:      edits,
		DeletedIDs: req.DeletedCardIDs,
	})
	if err != nil {
		HandleAPIError(w, r, err, MsgUpdateCards)
		return
	}

	log.Debug("bulk edit applied",
		slog.Int("updated", res.Updated),
		slog.Int("deleted", res.Deleted))
	shared.RespondWithJSON(w, r, http.StatusOK, BulkEditResponse{Updated: res.Updated, Deleted: res.Deleted})
}

// GenerateCards handles POST /decks/{deckID}/cards/generate requests.
func (h *CardHandler) GenerateCards(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	ownerID, ids, ok := handleOwnerAndPathUUIDs(w, r, log, "deckID")
	if !ok {
		return
	}

	cards, err := h.generation.GenerateCards(r.Context(), ownerID, shared.EntitlementsFromContext(r.Context()), ids[0])
	if err != nil {
		HandleAPIError(w, r, err, MsgGenerateFailed)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, GenerateCardsResponse{
		Count: len(cards),
		Cards: cardsToResponse(cards),
	})
}
