package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/phrazzld/flashdeck/internal/domain"
	"github.com/phrazzld/flashdeck/internal/service"
)

// MockCardService implements service.CardService for testing
type MockCardService struct {
	// Custom behavior functions
	CreateCardFn func(ctx context.Context, ownerID string, deckID uuid.UUID, front, back string) (*domain.Card, error)
	ListCardsFn  func(ctx context.Context, ownerID string, deckID uuid.UUID) ([]*domain.Card, error)
	GetCardFn    func(ctx context.Context, ownerID string, deckID, cardID uuid.UUID) (*domain.Card, error)
	UpdateCardFn func(ctx context.Context, ownerID string, deckID, cardID uuid.UUID, upd domain.CardUpdate) error
	DeleteCardFn func(ctx context.Context, ownerID string, deckID, cardID uuid.UUID) error

	// Default return values
	Card         *domain.Card
	Cards        []*domain.Card
	DefaultError error
}

var _ service.CardService = (*MockCardService)(nil)

// CreateCard implements the CardService.CreateCard method
func (m *MockCardService) CreateCard(
	ctx context.Context,
	ownerID string,
	deckID uuid.UUID,
	front, back string,
) (*domain.Card, error) {
	if m.CreateCardFn != nil {
		return m.CreateCardFn(ctx, ownerID, deckID, front, back)
	}
	return m.Card, m.DefaultError
}

// ListCards implements the CardService.ListCards method
func (m *MockCardService) ListCards(ctx context.Context, ownerID string, deckID uuid.UUID) ([]*domain.Card, error) {
	if m.ListCardsFn != nil {
		return m.ListCardsFn(ctx, ownerID, deckID)
	}
	return m.Cards, m.DefaultError
}

// GetCard implements the CardService.GetCard method
func (m *MockCardService) GetCard(ctx context.Context, ownerID string, deckID, cardID uuid.UUID) (*domain.Card, error) {
	if m.GetCardFn != nil {
		return m.GetCardFn(ctx, ownerID, deckID, cardID)
	}
	return m.Card, m.DefaultError
}

// UpdateCard implements the CardService.UpdateCard method
func (m *MockCardService) UpdateCard(
	ctx context.Context,
	ownerID string,
	deckID, cardID uuid.UUID,
	upd domain.CardUpdate,
) error {
	if m.UpdateCardFn != nil {
		return m.UpdateCardFn(ctx, ownerID, deckID, cardID, upd)
	}
	return m.DefaultError
}

// DeleteCard implements the CardService.DeleteCard method
func (m *MockCardService) DeleteCard(ctx context.Context, ownerID string, deckID, cardID uuid.UUID) error {
	if m.DeleteCardFn != nil {
		return m.DeleteCardFn(ctx, ownerID, deckID, cardID)
	}
	return m.DefaultError
}

// MockBulkEditService implements service.BulkEditService for testing
type MockBulkEditService struct {
	BulkEditFn func(
		ctx context.Context,
		ownerID string,
		deckID uuid.UUID,
		req service.BulkEditRequest,
	) (*service.BulkEditResult, error)

	Result       *service.BulkEditResult
	DefaultError error
}

var _ service.BulkEditService = (*MockBulkEditService)(nil)

// BulkEdit implements the BulkEditService.BulkEdit method
func (m *MockBulkEditService) BulkEdit(
	ctx context.Context,
	ownerID string,
	deckID uuid.UUID,
	req service.BulkEditRequest,
) (*service.BulkEditResult, error) {
	if m.BulkEditFn != nil {
		return m.BulkEditFn(ctx, ownerID, deckID, req)
	}
	return m.Result, m.DefaultError
}

// MockGenerationService implements service.GenerationService for testing
type MockGenerationService struct {
	GenerateCardsFn func(
		ctx context.Context,
		ownerID string,
		ent domain.Entitlements,
		deckID uuid.UUID,
	) ([]*domain.Card, error)

	Cards        []*domain.Card
	DefaultError error
}

var _ service.GenerationService = (*MockGenerationService)(nil)

// GenerateCards implements the GenerationService.GenerateCards method
func (m *MockGenerationService) GenerateCards(
	ctx context.Context,
	ownerID string,
	ent domain.Entitlements,
	deckID uuid.UUID,
) ([]*domain.Card, error) {
	if m.GenerateCardsFn != nil {
		return m.GenerateCardsFn(ctx, ownerID, ent, deckID)
	}
	return m.Cards, m.DefaultError
}
