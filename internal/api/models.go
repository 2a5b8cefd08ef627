package api

import (
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/flashdeck/internal/domain"
)

// CreateDeckRequest defines the payload for creating a deck.
type CreateDeckRequest struct {
	Title       string `json:"title"       validate:"required,max=255"`
	Description string `json:"description" validate:"max=2000"`
}

// UpdateDeckRequest defines the payload for replacing a deck's title and description.
type UpdateDeckRequest struct {
	Title       string `json:"title"       validate:"required,max=255"`
	Description string `json:"description" validate:"max=2000"`
}

// DeckResponse is the wire form of a deck.
type DeckResponse struct {
	ID          uuid.UUID `json:"id"`
	Title       string    `json:"title"`
	Description *string   `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// CreateCardRequest defines the payload for adding one card.
type CreateCardRequest struct {
	Front string `json:"front" validate:"required,max=2000"`
	Back  string `json:"back"  validate:"required,max=2000"`
}

// UpdateCardRequest carries a partial card change. Omitted sides are kept.
type UpdateCardRequest struct {
	Front *string `json:"front,omitempty" validate:"omitnil,min=1,max=2000"`
	Back  *string `json:"back,omitempty"  validate:"omitnil,min=1,max=2000"`
}

// CardResponse is the wire form of a card.
type CardResponse struct {
	ID        uuid.UUID `json:"id"`
	DeckID    uuid.UUID `json:"deck_id"`
	Front     string    `json:"front"`
	Back      string    `json:"back"`
	SortOrder *int      `json:"sort_order,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// BulkCard is the desired state of one card in a bulk edit.
type BulkCard struct {
	ID    uuid.UUID `json:"id"              validate:"required"`
	Front *string   `json:"front,omitempty" validate:"omitnil,min=1,max=2000"`
	Back  *string   `json:"back,omitempty"  validate:"omitnil,min=1,max=2000"`
}

// BulkEditRequest defines the payload for PATCH /decks/{deckID}/cards.
type BulkEditRequest struct {
	Cards          []BulkCard  `json:"cards"            validate:"dive"`
	DeletedCardIDs []uuid.UUID `json:"deleted_card_ids" validate:"dive,required"`
}

// BulkEditResponse reports how many cards a bulk edit touched.
type BulkEditResponse struct {
	Updated int `json:"updated"`
	Deleted int `json:"deleted"`
}

// GenerateCardsResponse lists the cards created by AI generation.
type GenerateCardsResponse struct {
	Count int            `json:"count"`
	Cards []CardResponse `json:"cards"`
}

// HealthResponse is returned by the health check.
type HealthResponse struct {
	Status string `json:"status"`
}

func deckToResponse(d *domain.Deck) DeckResponse {
	return DeckResponse{
		ID:          d.ID,
		Title:       d.Title,
		Description: d.Description,
		CreatedAt:   d.CreatedAt,
		UpdatedAt:   d.UpdatedAt,
	}
}

func cardToResponse(c *domain.Card) CardResponse {
	return CardResponse{
		ID:        c.ID,
		DeckID:    c.DeckID,
		Front:     c.Front,
		Back:      c.Back,
		SortOrder: c.SortOrder,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

func cardsToResponse(cards []*domain.Card) []CardResponse {
	out := make([]CardResponse, 0, len(cards))
	for _, c := range cards {
		out = append(out, cardToResponse(c))
	}
	return out
}
