package service

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/phrazzld/flashdeck/internal/domain"
	"github.com/phrazzld/flashdeck/internal/generation"
	"github.com/phrazzld/flashdeck/internal/platform/logger"
	"github.com/phrazzld/flashdeck/internal/store"
)

// GenerationService fills a deck with AI-generated cards.
type GenerationService interface {
	// GenerateCards asks the generator for cards about the deck and stores
	// all of them in one transaction.
	GenerateCards(ctx context.Context, ownerID string, ent domain.Entitlements, deckID uuid.UUID) ([]*domain.Card, error)
}

type generationServiceImpl struct {
	decks     store.DeckStore
	cards     store.CardStore
	db        store.TxBeginner
	generator generation.Generator
	cardCount int
	logger    *slog.Logger
}

// NewGenerationService creates a GenerationService. A nil generator is
// allowed; every call then fails with ErrGenerationUnavailable.
func NewGenerationService(
	decks store.DeckStore,
	cards store.CardStore,
	db store.TxBeginner,
	generator generation.Generator,
	cardCount int,
	logger *slog.Logger,
) (GenerationService, error) {
	if decks == nil {
		return nil, domain.NewValidationError("decks", "cannot be nil", domain.ErrValidation)
	}
	if cards == nil {
		return nil, domain.NewValidationError("cards", "cannot be nil", domain.ErrValidation)
	}
	if db == nil {
		return nil, domain.NewValidationError("db", "cannot be nil", domain.ErrValidation)
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &generationServiceImpl{
		decks:     decks,
		cards:     cards,
		db:        db,
		generator: generator,
		cardCount: cardCount,
		logger:    logger.With(slog.String("component", "generation_service")),
	}, nil
}

func (s *generationServiceImpl) GenerateCards(
	ctx context.Context,
	ownerID string,
	ent domain.Entitlements,
	deckID uuid.UUID,
) ([]*domain.Card, error) {
	log := logger.FromContextOrDefault(ctx, s.logger).With(slog.String("deck_id", deckID.String()))

	if s.generator == nil {
		return nil, ErrGenerationUnavailable
	}
	if !ent.Has(domain.FeatureAIGeneration) {
		log.Info("generation requested without entitlement")
		return nil, ErrFeatureNotEnabled
	}

	deck, err := s.decks.Get(ctx, deckID, ownerID)
	if err != nil {
		return nil, NewCardServiceError("generate_cards", "failed to get deck", err)
	}

	description := deck.DescriptionText()
	if strings.TrimSpace(deck.Title) == "" {
		return nil, domain.NewValidationError("title",
			"Please add a title to this deck before generating cards with AI.", ErrDeckNotReadyForGeneration)
	}
	if strings.TrimSpace(description) == "" {
		return nil, domain.NewValidationError("description",
			"Please add a description to this deck before generating cards with AI.", ErrDeckNotReadyForGeneration)
	}

	req := generation.Request{
		Topic:            generation.Topic(deck.Title, description),
		Count:            s.cardCount,
		LanguageLearning: generation.IsLanguageLearningDeck(deck.Title, description),
	}

	pairs, err := s.generator.GenerateCards(ctx, req)
	if err != nil {
		log.Warn("card generation failed", slog.String("error", err.Error()))
		return nil, NewCardServiceError("generate_cards", "generator failed", err)
	}

	cards := make([]*domain.Card, 0, len(pairs))
	for i, p := range pairs {
		card, err := domain.NewCard(deckID, p.Question, p.Answer)
		if err != nil {
			return nil, NewCardServiceError("generate_cards", "generator returned an unusable card",
				fmt.Errorf("%w: card %d: %v", generation.ErrInvalidResponse, i, err))
		}
		cards = append(cards, card)
	}

	err = store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		return s.cards.WithTx(tx).CreateMultiple(ctx, ownerID, deckID, cards)
	})
	if err != nil {
		return nil, NewCardServiceError("generate_cards", "failed to save generated cards", err)
	}

	log.Info("generated cards saved",
		slog.Int("count", len(cards)),
		slog.Bool("language_learning", req.LanguageLearning))
	return cards, nil
}
