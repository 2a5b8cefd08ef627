package service

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
	"github.com/phrazzld/flashdeck/internal/domain"
	"github.com/phrazzld/flashdeck/internal/platform/logger"
	"github.com/phrazzld/flashdeck/internal/store"
)

// CardService provides single-card operations inside an owned deck.
type CardService interface {
	// CreateCard adds a card to the deck.
	CreateCard(ctx context.Context, ownerID string, deckID uuid.UUID, front, back string) (*domain.Card, error)

	// ListCards returns the deck's cards, newest first.
	ListCards(ctx context.Context, ownerID string, deckID uuid.UUID) ([]*domain.Card, error)

	// GetCard returns one card.
	GetCard(ctx context.Context, ownerID string, deckID, cardID uuid.UUID) (*domain.Card, error)

	// UpdateCard applies a partial change. Updating an absent card is a no-op.
	UpdateCard(ctx context.Context, ownerID string, deckID, cardID uuid.UUID, upd domain.CardUpdate) error

	// DeleteCard removes a card. Deleting an absent card is a no-op.
	DeleteCard(ctx context.Context, ownerID string, deckID, cardID uuid.UUID) error
}

type cardServiceImpl struct {
	cards  store.CardStore
	logger *slog.Logger
}

// NewCardService creates a CardService.
func NewCardService(cards store.CardStore, logger *slog.Logger) (CardService, error) {
	if cards == nil {
		return nil, domain.NewValidationError("cards", "cannot be nil", domain.ErrValidation)
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &cardServiceImpl{
		cards:  cards,
		logger: logger.With(slog.String("component", "card_service")),
	}, nil
}

func (s *cardServiceImpl) CreateCard(
	ctx context.Context,
	ownerID string,
	deckID uuid.UUID,
	front, back string,
) (*domain.Card, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	card, err := domain.NewCard(deckID, front, back)
	if err != nil {
		log.Debug("invalid card", slog.String("error", err.Error()))
		return nil, err
	}

	if err := s.cards.Create(ctx, ownerID, card); err != nil {
		return nil, NewCardServiceError("create_card", "failed to save card", err)
	}

	log.Info("card created",
		slog.String("deck_id", deckID.String()),
		slog.String("card_id", card.ID.String()))
	return card, nil
}

func (s *cardServiceImpl) ListCards(ctx context.Context, ownerID string, deckID uuid.UUID) ([]*domain.Card, error) {
	cards, err := s.cards.ListByDeck(ctx, ownerID, deckID)
	if err != nil {
		return nil, NewCardServiceError("list_cards", "failed to list cards", err)
	}
	return cards, nil
}

func (s *cardServiceImpl) GetCard(ctx context.Context, ownerID string, deckID, cardID uuid.UUID) (*domain.Card, error) {
	card, err := s.cards.Get(ctx, ownerID, deckID, cardID)
	if err != nil {
		return nil, NewCardServiceError("get_card", "failed to get card", err)
	}
	return card, nil
}

func (s *cardServiceImpl) UpdateCard(
	ctx context.Context,
	ownerID string,
	deckID, cardID uuid.UUID,
	upd domain.CardUpdate,
) error {
	if err := upd.Validate(); err != nil {
		return err
	}
	if err := s.cards.Update(ctx, ownerID, deckID, cardID, upd); err != nil {
		return NewCardServiceError("update_card", "failed to update card", err)
	}
	return nil
}

func (s *cardServiceImpl) DeleteCard(ctx context.Context, ownerID string, deckID, cardID uuid.UUID) error {
	if err := s.cards.Delete(ctx, ownerID, deckID, cardID); err != nil {
		return NewCardServiceError("delete_card", "failed to delete card", err)
	}
	return nil
}
