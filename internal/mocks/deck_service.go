package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/phrazzld/flashdeck/internal/domain"
	"github.com/phrazzld/flashdeck/internal/service"
)

// MockDeckService implements service.DeckService for testing
type MockDeckService struct {
	CreateDeckFn func(
		ctx context.Context,
		ownerID string,
		ent domain.Entitlements,
		title, description string,
	) (*domain.Deck, error)
	ListDecksFn  func(ctx context.Context, ownerID string) ([]*domain.Deck, error)
	GetDeckFn    func(ctx context.Context, ownerID string, deckID uuid.UUID) (*domain.Deck, error)
	UpdateDeckFn func(ctx context.Context, ownerID string, deckID uuid.UUID, title, description string) (*domain.Deck, error)
	DeleteDeckFn func(ctx context.Context, ownerID string, deckID uuid.UUID) error

	// Default return values
	Deck         *domain.Deck
	Decks        []*domain.Deck
	DefaultError error
}

var _ service.DeckService = (*MockDeckService)(nil)

// CreateDeck implements the DeckService.CreateDeck method
func (m *MockDeckService) CreateDeck(
	ctx context.Context,
	ownerID string,
	ent domain.Entitlements,
	title, description string,
) (*domain.Deck, error) {
	if m.CreateDeckFn != nil {
		return m.CreateDeckFn(ctx, ownerID, ent, title, description)
	}
	return m.Deck, m.DefaultError
}

// ListDecks implements the DeckService.ListDecks method
func (m *MockDeckService) ListDecks(ctx context.Context, ownerID string) ([]*domain.Deck, error) {
	if m.ListDecksFn != nil {
		return m.ListDecksFn(ctx, ownerID)
	}
	return m.Decks, m.DefaultError
}

// GetDeck implements the DeckService.GetDeck method
func (m *MockDeckService) GetDeck(ctx context.Context, ownerID string, deckID uuid.UUID) (*domain.Deck, error) {
	if m.GetDeckFn != nil {
		return m.GetDeckFn(ctx, ownerID, deckID)
	}
	return m.Deck, m.DefaultError
}

// UpdateDeck implements the DeckService.UpdateDeck method
func (m *MockDeckService) UpdateDeck(
	ctx context.Context,
	ownerID string,
	deckID uuid.UUID,
	title, description string,
) (*domain.Deck, error) {
	if m.UpdateDeckFn != nil {
		return m.UpdateDeckFn(ctx, ownerID, deckID, title, description)
	}
	return m.Deck, m.DefaultError
}

// DeleteDeck implements the DeckService.DeleteDeck method
func (m *MockDeckService) DeleteDeck(ctx context.Context, ownerID string, deckID uuid.UUID) error {
	if m.DeleteDeckFn != nil {
		return m.DeleteDeckFn(ctx, ownerID, deckID)
	}
	return m.DefaultError
}
