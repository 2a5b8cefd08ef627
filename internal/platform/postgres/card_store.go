package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/flashdeck/internal/domain"
	"github.com/phrazzld/flashdeck/internal/platform/logger"
	"github.com/phrazzld/flashdeck/internal/store"
)

// PostgresCardStore implements store.CardStore on PostgreSQL.
// Every method re-checks deck ownership before touching cards.
type PostgresCardStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresCardStore creates a card store on db, which may be a pool or a
// transaction. If logger is nil, the default logger is used.
func NewPostgresCardStore(db store.DBTX, logger *slog.Logger) *PostgresCardStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresCardStore{
		db:     db,
		logger: logger.With(slog.String("component", "card_store")),
	}
}

var _ store.CardStore = (*PostgresCardStore)(nil)

const cardColumns = `id, deck_id, front, back, sort_order, created_at, updated_at`

const insertCardQuery = `
	INSERT INTO cards (id, deck_id, front, back, sort_order, created_at, updated_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7)
`

// Create implements store.CardStore.Create.
func (s *PostgresCardStore) Create(ctx context.Context, ownerID string, card *domain.Card) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := card.Validate(); err != nil {
		log.Warn("card validation failed during create",
			slog.String("error", err.Error()),
			slog.String("card_id", card.ID.String()))
		return err
	}

	if err := ensureDeckOwned(ctx, s.db, card.DeckID, ownerID); err != nil {
		return err
	}

	if _, err := s.db.ExecContext(ctx, insertCardQuery, cardArgs(card)...); err != nil {
		log.Error("failed to create card",
			slog.String("error", err.Error()),
			slog.String("card_id", card.ID.String()))
		return MapError(err)
	}

	log.Debug("card created",
		slog.String("card_id", card.ID.String()),
		slog.String("deck_id", card.DeckID.String()))
	return nil
}

// CreateMultiple implements store.CardStore.CreateMultiple.
func (s *PostgresCardStore) CreateMultiple(
	ctx context.Context,
	ownerID string,
	deckID uuid.UUID,
	cards []*domain.Card,
) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if len(cards) == 0 {
		return nil
	}

	for i, card := range cards {
		if card.DeckID != deckID {
			return fmt.Errorf("%w: card %d belongs to deck %s", store.ErrInvalidEntity, i, card.DeckID)
		}
		if err := card.Validate(); err != nil {
			log.Warn("card validation failed during batch create",
				slog.Int("index", i),
				slog.String("error", err.Error()))
			return err
		}
	}

	if err := ensureDeckOwned(ctx, s.db, deckID, ownerID); err != nil {
		return err
	}

	stmt, err := s.db.PrepareContext(ctx, insertCardQuery)
	if err != nil {
		log.Error("failed to prepare card insert", slog.String("error", err.Error()))
		return MapError(err)
	}
	defer func() {
		if closeErr := stmt.Close(); closeErr != nil {
			log.Error("failed to close statement", slog.String("error", closeErr.Error()))
		}
	}()

	for _, card := range cards {
		if _, err := stmt.ExecContext(ctx, cardArgs(card)...); err != nil {
			log.Error("failed to insert card",
				slog.String("error", err.Error()),
				slog.String("card_id", card.ID.String()))
			return MapError(err)
		}
	}

	log.Info("cards created",
		slog.String("deck_id", deckID.String()),
		slog.Int("count", len(cards)))
	return nil
}

// Get implements store.CardStore.Get.
func (s *PostgresCardStore) Get(
	ctx context.Context,
	ownerID string,
	deckID, cardID uuid.UUID,
) (*domain.Card, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := ensureDeckOwned(ctx, s.db, deckID, ownerID); err != nil {
		return nil, err
	}

	query := `SELECT ` + cardColumns + ` FROM cards WHERE id = $1 AND deck_id = $2`
	card, err := scanCard(s.db.QueryRowContext(ctx, query, cardID, deckID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("card not found", slog.String("card_id", cardID.String()))
			return nil, store.ErrCardNotFound
		}
		log.Error("failed to get card",
			slog.String("error", err.Error()),
			slog.String("card_id", cardID.String()))
		return nil, MapError(err)
	}
	return card, nil
}

// ListByDeck implements store.CardStore.ListByDeck.
func (s *PostgresCardStore) ListByDeck(
	ctx context.Context,
	ownerID string,
	deckID uuid.UUID,
) ([]*domain.Card, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := ensureDeckOwned(ctx, s.db, deckID, ownerID); err != nil {
		return nil, err
	}

	query := `SELECT ` + cardColumns + `
		FROM cards
		WHERE deck_id = $1
		ORDER BY created_at DESC, id DESC
	`
	rows, err := s.db.QueryContext(ctx, query, deckID)
	if err != nil {
		log.Error("failed to list cards", slog.String("error", err.Error()))
		return nil, MapError(err)
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil {
			log.Error("failed to close rows", slog.String("error", closeErr.Error()))
		}
	}()

	cards := make([]*domain.Card, 0)
	for rows.Next() {
		card, err := scanCard(rows)
		if err != nil {
			log.Error("failed to scan card row", slog.String("error", err.Error()))
			return nil, MapError(err)
		}
		cards = append(cards, card)
	}
	if err := rows.Err(); err != nil {
		log.Error("error iterating card rows", slog.String("error", err.Error()))
		return nil, MapError(err)
	}

	log.Debug("listed cards",
		slog.String("deck_id", deckID.String()),
		slog.Int("count", len(cards)))
	return cards, nil
}

// Update implements store.CardStore.Update.
func (s *PostgresCardStore) Update(
	ctx context.Context,
	ownerID string,
	deckID, cardID uuid.UUID,
	upd domain.CardUpdate,
) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := upd.Validate(); err != nil {
		return err
	}

	if err := ensureDeckOwned(ctx, s.db, deckID, ownerID); err != nil {
		return err
	}

	if upd.IsEmpty() {
		return nil
	}

	query := `
		UPDATE cards
		SET front = COALESCE($1, front),
		    back = COALESCE($2, back),
		    updated_at = $3
		WHERE id = $4 AND deck_id = $5
	`
	result, err := s.db.ExecContext(ctx, query,
		upd.Front,
		upd.Back,
		time.Now().UTC(),
		cardID,
		deckID,
	)
	if err != nil {
		log.Error("failed to update card",
			slog.String("error", err.Error()),
			slog.String("card_id", cardID.String()))
		return MapError(err)
	}

	if n, err := result.RowsAffected(); err == nil && n == 0 {
		log.Debug("update matched no card", slog.String("card_id", cardID.String()))
	}
	return nil
}

// Delete implements store.CardStore.Delete.
func (s *PostgresCardStore) Delete(ctx context.Context, ownerID string, deckID, cardID uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := ensureDeckOwned(ctx, s.db, deckID, ownerID); err != nil {
		return err
	}

	result, err := s.db.ExecContext(ctx,
		`DELETE FROM cards WHERE id = $1 AND deck_id = $2`, cardID, deckID)
	if err != nil {
		log.Error("failed to delete card",
			slog.String("error", err.Error()),
			slog.String("card_id", cardID.String()))
		return MapError(err)
	}

	if n, err := result.RowsAffected(); err == nil && n == 0 {
		log.Debug("delete matched no card", slog.String("card_id", cardID.String()))
	}
	return nil
}

// WithTx implements store.CardStore.WithTx.
func (s *PostgresCardStore) WithTx(tx *sql.Tx) store.CardStore {
	return &PostgresCardStore{
		db:     tx,
		logger: s.logger,
	}
}

func cardArgs(card *domain.Card) []any {
	var sortOrder any
	if card.SortOrder != nil {
		sortOrder = int64(*card.SortOrder)
	}
	return []any{
		card.ID,
		card.DeckID,
		card.Front,
		card.Back,
		sortOrder,
		card.CreatedAt,
		card.UpdatedAt,
	}
}

func scanCard(row rowScanner) (*domain.Card, error) {
	var card domain.Card
	var sortOrder sql.NullInt64
	if err := row.Scan(
		&card.ID,
		&card.DeckID,
		&card.Front,
		&card.Back,
		&sortOrder,
		&card.CreatedAt,
		&card.UpdatedAt,
	); err != nil {
		return nil, err
	}
	if sortOrder.Valid {
		v := int(sortOrder.Int64)
		card.SortOrder = &v
	}
	return &card, nil
}
