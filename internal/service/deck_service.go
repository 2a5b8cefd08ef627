package service

import (
	"context"
	"database/sql"
	"log/slog"

	"github.com/google/uuid"
	"github.com/phrazzld/flashdeck/internal/domain"
	"github.com/phrazzld/flashdeck/internal/platform/logger"
	"github.com/phrazzld/flashdeck/internal/store"
)

// DeckService provides deck operations scoped to one owner.
type DeckService interface {
	// CreateDeck creates a deck, enforcing the plan's deck limit.
	CreateDeck(ctx context.Context, ownerID string, ent domain.Entitlements, title, description string) (*domain.Deck, error)

	// ListDecks returns the owner's decks, newest first.
	ListDecks(ctx context.Context, ownerID string) ([]*domain.Deck, error)

	// GetDeck returns one owned deck.
	GetDeck(ctx context.Context, ownerID string, deckID uuid.UUID) (*domain.Deck, error)

	// UpdateDeck replaces title and description.
	UpdateDeck(ctx context.Context, ownerID string, deckID uuid.UUID, title, description string) (*domain.Deck, error)

	// DeleteDeck removes the deck and its cards.
	DeleteDeck(ctx context.Context, ownerID string, deckID uuid.UUID) error
}

type deckServiceImpl struct {
	decks  store.DeckStore
	db     store.TxBeginner
	logger *slog.Logger
}

// NewDeckService creates a DeckService.
// It returns an error if any of the required dependencies are nil.
func NewDeckService(decks store.DeckStore, db store.TxBeginner, logger *slog.Logger) (DeckService, error) {
	if decks == nil {
		return nil, domain.NewValidationError("decks", "cannot be nil", domain.ErrValidation)
	}
	if db == nil {
		return nil, domain.NewValidationError("db", "cannot be nil", domain.ErrValidation)
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &deckServiceImpl{
		decks:  decks,
		db:     db,
		logger: logger.With(slog.String("component", "deck_service")),
	}, nil
}

// CreateDeck counts and inserts inside one transaction so the limit check
// and the insert see the same data.
func (s *deckServiceImpl) CreateDeck(
	ctx context.Context,
	ownerID string,
	ent domain.Entitlements,
	title, description string,
) (*domain.Deck, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	deck, err := domain.NewDeck(ownerID, title, description)
	if err != nil {
		log.Debug("invalid deck", slog.String("error", err.Error()))
		return nil, err
	}

	err = store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		txDecks := s.decks.WithTx(tx)

		if limit, limited := ent.DeckLimit(); limited {
			count, err := txDecks.CountByOwner(ctx, ownerID)
			if err != nil {
				return NewDeckServiceError("create_deck", "failed to count decks", err)
			}
			if count >= limit {
				log.Info("deck limit reached",
					slog.String("owner_id", ownerID),
					slog.Int("limit", limit))
				return ErrDeckLimitReached
			}
		}

		if err := txDecks.Create(ctx, deck); err != nil {
			return NewDeckServiceError("create_deck", "failed to save deck", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Info("deck created", slog.String("deck_id", deck.ID.String()))
	return deck, nil
}

func (s *deckServiceImpl) ListDecks(ctx context.Context, ownerID string) ([]*domain.Deck, error) {
	decks, err := s.decks.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, NewDeckServiceError("list_decks", "failed to list decks", err)
	}
	return decks, nil
}

func (s *deckServiceImpl) GetDeck(ctx context.Context, ownerID string, deckID uuid.UUID) (*domain.Deck, error) {
	deck, err := s.decks.Get(ctx, deckID, ownerID)
	if err != nil {
		return nil, NewDeckServiceError("get_deck", "failed to get deck", err)
	}
	return deck, nil
}

func (s *deckServiceImpl) UpdateDeck(
	ctx context.Context,
	ownerID string,
	deckID uuid.UUID,
	title, description string,
) (*domain.Deck, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	deck, err := s.decks.Get(ctx, deckID, ownerID)
	if err != nil {
		return nil, NewDeckServiceError("update_deck", "failed to get deck", err)
	}

	if err := deck.Update(title, description); err != nil {
		log.Debug("invalid deck update", slog.String("error", err.Error()))
		return nil, err
	}

	if err := s.decks.Update(ctx, deck); err != nil {
		return nil, NewDeckServiceError("update_deck", "failed to save deck", err)
	}
	return deck, nil
}

func (s *deckServiceImpl) DeleteDeck(ctx context.Context, ownerID string, deckID uuid.UUID) error {
	if err := s.decks.Delete(ctx, deckID, ownerID); err != nil {
		return NewDeckServiceError("delete_deck", "failed to delete deck", err)
	}
	logger.FromContextOrDefault(ctx, s.logger).Info("deck deleted", slog.String("deck_id", deckID.String()))
	return nil
}
