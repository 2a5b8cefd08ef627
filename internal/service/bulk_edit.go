package service

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
	"github.com/phrazzld/flashdeck/internal/domain"
	"github.com/phrazzld/flashdeck/internal/platform/logger"
	"github.com/phrazzld/flashdeck/internal/reconcile"
	"github.com/phrazzld/flashdeck/internal/store"
)

// CardEdit is the desired state of one card. Nil fields are unchanged.
type CardEdit struct {
	ID    uuid.UUID
	Front *string
	Back  *string
}

// BulkEditRequest is a full edit pass over a deck.
type BulkEditRequest struct {
	Cards      []CardEdit
	DeletedIDs []uuid.UUID
}

// BulkEditResult reports how many requests the commit issued.
type BulkEditResult struct {
	Updated int
	Deleted int
}

// BulkEditService applies an edit pass to a deck in one commit.
type BulkEditService interface {
	// BulkEdit loads the deck, replays req into a reconciler and commits
	// only the cards that actually changed. On failure the returned error
	// wraps reconcile.ErrCommitFailed and storage may be partially updated.
	BulkEdit(ctx context.Context, ownerID string, deckID uuid.UUID, req BulkEditRequest) (*BulkEditResult, error)
}

type bulkEditServiceImpl struct {
	cards          store.CardStore
	maxConcurrency int
	logger         *slog.Logger
}

// NewBulkEditService creates a BulkEditService. maxConcurrency caps the
// writes in flight per commit; zero means no cap.
func NewBulkEditService(cards store.CardStore, maxConcurrency int, logger *slog.Logger) (BulkEditService, error) {
	if cards == nil {
		return nil, domain.NewValidationError("cards", "cannot be nil", domain.ErrValidation)
	}
	if maxConcurrency < 0 {
		return nil, domain.NewValidationError("maxConcurrency", "cannot be negative", domain.ErrValidation)
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &bulkEditServiceImpl{
		cards:          cards,
		maxConcurrency: maxConcurrency,
		logger:         logger.With(slog.String("component", "bulk_edit_service")),
	}, nil
}

func (s *bulkEditServiceImpl) BulkEdit(
	ctx context.Context,
	ownerID string,
	deckID uuid.UUID,
	req BulkEditRequest,
) (*BulkEditResult, error) {
	log := logger.FromContextOrDefault(ctx, s.logger).With(slog.String("deck_id", deckID.String()))

	// Reject the whole pass before anything is written.
	for _, edit := range req.Cards {
		upd := domain.CardUpdate{Front: edit.Front, Back: edit.Back}
		if err := upd.Validate(); err != nil {
			log.Debug("invalid bulk edit", slog.String("card_id", edit.ID.String()), slog.String("error", err.Error()))
			return nil, err
		}
	}

	snapshot, err := s.cards.ListByDeck(ctx, ownerID, deckID)
	if err != nil {
		return nil, NewCardServiceError("bulk_edit", "failed to load cards", err)
	}

	rec, err := reconcile.New(deckID, NewStoreCardWriter(s.cards, ownerID), log,
		reconcile.WithMaxConcurrency(s.maxConcurrency))
	if err != nil {
		return nil, NewCardServiceError("bulk_edit", "failed to start edit", err)
	}

	cards := make([]domain.Card, 0, len(snapshot))
	for _, c := range snapshot {
		cards = append(cards, *c)
	}
	if err := rec.BeginEdit(cards); err != nil {
		return nil, NewCardServiceError("bulk_edit", "failed to start edit", err)
	}

	for _, edit := range req.Cards {
		if edit.Front != nil {
			if err := rec.EditField(edit.ID, reconcile.FieldFront, *edit.Front); err != nil {
				return nil, err
			}
		}
		if edit.Back != nil {
			if err := rec.EditField(edit.ID, reconcile.FieldBack, *edit.Back); err != nil {
				return nil, err
			}
		}
	}
	for _, id := range req.DeletedIDs {
		if err := rec.MarkDeleted(id); err != nil {
			return nil, err
		}
	}

	plan := rec.Diff()
	log.Debug("bulk edit planned",
		slog.Int("updates", len(plan.Updates)),
		slog.Int("deletes", len(plan.Deletes)))

	if err := rec.Commit(ctx); err != nil {
		return nil, NewCardServiceError("bulk_edit", "failed to commit changes", err)
	}

	return &BulkEditResult{Updated: len(plan.Updates), Deleted: len(plan.Deletes)}, nil
}
