package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/phrazzld/flashdeck/internal/domain"
	"github.com/phrazzld/flashdeck/internal/reconcile"
	"github.com/phrazzld/flashdeck/internal/store"
)

// storeCardWriter adapts a CardStore to reconcile.CardWriter for one owner.
// Each write goes through the store, which re-checks deck ownership.
type storeCardWriter struct {
	cards   store.CardStore
	ownerID string
}

var _ reconcile.CardWriter = (*storeCardWriter)(nil)

// NewStoreCardWriter returns a CardWriter that writes as ownerID.
func NewStoreCardWriter(cards store.CardStore, ownerID string) reconcile.CardWriter {
	return &storeCardWriter{cards: cards, ownerID: ownerID}
}

func (w *storeCardWriter) UpdateCard(ctx context.Context, deckID, cardID uuid.UUID, upd domain.CardUpdate) error {
	return w.cards.Update(ctx, w.ownerID, deckID, cardID, upd)
}

func (w *storeCardWriter) DeleteCard(ctx context.Context, deckID, cardID uuid.UUID) error {
	return w.cards.Delete(ctx, w.ownerID, deckID, cardID)
}
