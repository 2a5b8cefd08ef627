package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/phrazzld/flashdeck/internal/domain"
)

// DeckStore defines the interface for deck persistence.
// Every lookup is scoped by owner: a deck owned by someone else behaves
// exactly like a deck that does not exist and yields ErrDeckNotFound.
type DeckStore interface {
	// Create saves a new deck. The deck must pass domain validation.
	Create(ctx context.Context, deck *domain.Deck) error

	// Get retrieves a deck owned by ownerID.
	Get(ctx context.Context, deckID uuid.UUID, ownerID string) (*domain.Deck, error)

	// ListByOwner returns the owner's decks, newest first.
	ListByOwner(ctx context.Context, ownerID string) ([]*domain.Deck, error)

	// CountByOwner returns how many decks ownerID has.
	CountByOwner(ctx context.Context, ownerID string) (int, error)

	// Update saves title and description of a deck owned by deck.OwnerID.
	Update(ctx context.Context, deck *domain.Deck) error

	// Delete removes the deck and, through ON DELETE CASCADE, its cards.
	Delete(ctx context.Context, deckID uuid.UUID, ownerID string) error

	// WithTx returns a DeckStore bound to tx.
	WithTx(tx *sql.Tx) DeckStore
}
