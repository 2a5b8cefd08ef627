package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/phrazzld/flashdeck/internal/domain"
)

// CardStore defines the interface for card persistence.
//
// Every method first re-checks that deckID belongs to ownerID and returns
// ErrDeckNotFound otherwise. Ownership is never cached between calls.
type CardStore interface {
	// Create saves one card into an owned deck.
	Create(ctx context.Context, ownerID string, card *domain.Card) error

	// CreateMultiple saves cards that all belong to deckID.
	// It should run inside store.RunInTransaction so the insert is all or nothing:
	//
	//   err := store.RunInTransaction(ctx, db, func(ctx context.Context, tx *sql.Tx) error {
	//       return cardStore.WithTx(tx).CreateMultiple(ctx, ownerID, deckID, cards)
	//   })
	CreateMultiple(ctx context.Context, ownerID string, deckID uuid.UUID, cards []*domain.Card) error

	// Get retrieves one card. Returns ErrCardNotFound if the deck is owned
	// but holds no such card.
	Get(ctx context.Context, ownerID string, deckID, cardID uuid.UUID) (*domain.Card, error)

	// ListByDeck returns the deck's cards ordered by created_at descending,
	// ties broken by id descending.
	ListByDeck(ctx context.Context, ownerID string, deckID uuid.UUID) ([]*domain.Card, error)

	// Update applies the non-nil fields of upd. Updating a card that is not
	// in the deck is a no-op.
	Update(ctx context.Context, ownerID string, deckID, cardID uuid.UUID, upd domain.CardUpdate) error

	// Delete removes a card. Deleting a card that is not in the deck is a no-op.
	Delete(ctx context.Context, ownerID string, deckID, cardID uuid.UUID) error

	// WithTx returns a CardStore bound to tx.
	WithTx(tx *sql.Tx) CardStore
}
