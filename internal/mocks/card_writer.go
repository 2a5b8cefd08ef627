package mocks

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/phrazzld/flashdeck/internal/domain"
	"github.com/phrazzld/flashdeck/internal/reconcile"
)

// MockCardWriter implements reconcile.CardWriter and records every call.
// It is safe for the concurrent calls a commit makes.
type MockCardWriter struct {
	UpdateCardFn func(ctx context.Context, deckID, cardID uuid.UUID, upd domain.CardUpdate) error
	DeleteCardFn func(ctx context.Context, deckID, cardID uuid.UUID) error

	DefaultError error

	mu      sync.Mutex
	updates map[uuid.UUID]domain.CardUpdate
	deletes []uuid.UUID
}

var _ reconcile.CardWriter = (*MockCardWriter)(nil)

// UpdateCard implements the CardWriter.UpdateCard method
func (m *MockCardWriter) UpdateCard(ctx context.Context, deckID, cardID uuid.UUID, upd domain.CardUpdate) error {
	m.mu.Lock()
	if m.updates == nil {
		m.updates = make(map[uuid.UUID]domain.CardUpdate)
	}
	m.updates[cardID] = upd
	m.mu.Unlock()

	if m.UpdateCardFn != nil {
		return m.UpdateCardFn(ctx, deckID, cardID, upd)
	}
	return m.DefaultError
}

// DeleteCard implements the CardWriter.DeleteCard method
func (m *MockCardWriter) DeleteCard(ctx context.Context, deckID, cardID uuid.UUID) error {
	m.mu.Lock()
	m.deletes = append(m.deletes, cardID)
	m.mu.Unlock()

	if m.DeleteCardFn != nil {
		return m.DeleteCardFn(ctx, deckID, cardID)
	}
	return m.DefaultError
}

// Updates returns the recorded updates keyed by card ID.
func (m *MockCardWriter) Updates() map[uuid.UUID]domain.CardUpdate {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make(map[uuid.UUID]domain.CardUpdate, len(m.updates))
	for id, upd := range m.updates {
		out[id] = upd
	}
	return out
}

// Deletes returns the recorded deletions in call order.
func (m *MockCardWriter) Deletes() []uuid.UUID {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]uuid.UUID(nil), m.deletes...)
}
