package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/phrazzld/flashdeck/internal/domain"
	"github.com/phrazzld/flashdeck/internal/platform/logger"
	"github.com/phrazzld/flashdeck/internal/store"
)

// PostgresDeckStore implements store.DeckStore on PostgreSQL.
type PostgresDeckStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresDeckStore creates a deck store on db, which may be a pool or a
// transaction. If logger is nil, the default logger is used.
func NewPostgresDeckStore(db store.DBTX, logger *slog.Logger) *PostgresDeckStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresDeckStore{
		db:     db,
		logger: logger.With(slog.String("component", "deck_store")),
	}
}

var _ store.DeckStore = (*PostgresDeckStore)(nil)

const deckColumns = `id, owner_id, title, description, created_at, updated_at`

// Create implements store.DeckStore.Create.
func (s *PostgresDeckStore) Create(ctx context.Context, deck *domain.Deck) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := deck.Validate(); err != nil {
		log.Warn("deck validation failed during create",
			slog.String("error", err.Error()),
			slog.String("deck_id", deck.ID.String()))
		return err
	}

	query := `
		INSERT INTO decks (id, owner_id, title, description, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err := s.db.ExecContext(ctx, query,
		deck.ID,
		deck.OwnerID,
		deck.Title,
		deck.Description,
		deck.CreatedAt,
		deck.UpdatedAt,
	)
	if err != nil {
		log.Error("failed to create deck",
			slog.String("error", err.Error()),
			slog.String("deck_id", deck.ID.String()))
		return MapError(err)
	}

	log.Info("deck created",
		slog.String("deck_id", deck.ID.String()),
		slog.String("owner_id", deck.OwnerID))
	return nil
}

// Get implements store.DeckStore.Get.
func (s *PostgresDeckStore) Get(ctx context.Context, deckID uuid.UUID, ownerID string) (*domain.Deck, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `SELECT ` + deckColumns + ` FROM decks WHERE id = $1 AND owner_id = $2`

	deck, err := scanDeck(s.db.QueryRowContext(ctx, query, deckID, ownerID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("deck not found", slog.String("deck_id", deckID.String()))
			return nil, store.ErrDeckNotFound
		}
		log.Error("failed to get deck",
			slog.String("error", err.Error()),
			slog.String("deck_id", deckID.String()))
		return nil, MapError(err)
	}

	return deck, nil
}

// ListByOwner implements store.DeckStore.ListByOwner.
func (s *PostgresDeckStore) ListByOwner(ctx context.Context, ownerID string) ([]*domain.Deck, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `SELECT ` + deckColumns + `
		FROM decks
		WHERE owner_id = $1
		ORDER BY created_at DESC, id DESC
	`
	rows, err := s.db.QueryContext(ctx, query, ownerID)
	if err != nil {
		log.Error("failed to list decks", slog.String("error", err.Error()))
		return nil, MapError(err)
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil {
			log.Error("failed to close rows", slog.String("error", closeErr.Error()))
		}
	}()

	decks := make([]*domain.Deck, 0)
	for rows.Next() {
		deck, err := scanDeck(rows)
		if err != nil {
			log.Error("failed to scan deck row", slog.String("error", err.Error()))
			return nil, MapError(err)
		}
		decks = append(decks, deck)
	}
	if err := rows.Err(); err != nil {
		log.Error("error iterating deck rows", slog.String("error", err.Error()))
		return nil, MapError(err)
	}

	log.Debug("listed decks", slog.Int("count", len(decks)))
	return decks, nil
}

// CountByOwner implements store.DeckStore.CountByOwner.
func (s *PostgresDeckStore) CountByOwner(ctx context.Context, ownerID string) (int, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	var count int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM decks WHERE owner_id = $1`, ownerID).Scan(&count)
	if err != nil {
		log.Error("failed to count decks", slog.String("error", err.Error()))
		return 0, MapError(err)
	}
	return count, nil
}

// Update implements store.DeckStore.Update.
func (s *PostgresDeckStore) Update(ctx context.Context, deck *domain.Deck) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := deck.Validate(); err != nil {
		log.Warn("deck validation failed during update",
			slog.String("error", err.Error()),
			slog.String("deck_id", deck.ID.String()))
		return err
	}

	query := `
		UPDATE decks
		SET title = $1, description = $2, updated_at = $3
		WHERE id = $4 AND owner_id = $5
	`
	result, err := s.db.ExecContext(ctx, query,
		deck.Title,
		deck.Description,
		deck.UpdatedAt,
		deck.ID,
		deck.OwnerID,
	)
	if err != nil {
		log.Error("failed to update deck",
			slog.String("error", err.Error()),
			slog.String("deck_id", deck.ID.String()))
		return MapError(err)
	}

	if err := deckRowsAffected(result); err != nil {
		return err
	}

	log.Info("deck updated", slog.String("deck_id", deck.ID.String()))
	return nil
}

// Delete implements store.DeckStore.Delete.
func (s *PostgresDeckStore) Delete(ctx context.Context, deckID uuid.UUID, ownerID string) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	result, err := s.db.ExecContext(ctx,
		`DELETE FROM decks WHERE id = $1 AND owner_id = $2`, deckID, ownerID)
	if err != nil {
		log.Error("failed to delete deck",
			slog.String("error", err.Error()),
			slog.String("deck_id", deckID.String()))
		return MapError(err)
	}

	if err := deckRowsAffected(result); err != nil {
		return err
	}

	log.Info("deck deleted", slog.String("deck_id", deckID.String()))
	return nil
}

// WithTx implements store.DeckStore.WithTx.
func (s *PostgresDeckStore) WithTx(tx *sql.Tx) store.DeckStore {
	return &PostgresDeckStore{
		db:     tx,
		logger: s.logger,
	}
}

func deckRowsAffected(result sql.Result) error {
	if err := CheckRowsAffected(result, "deck"); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return store.ErrDeckNotFound
		}
		return err
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanDeck(row rowScanner) (*domain.Deck, error) {
	var deck domain.Deck
	var description sql.NullString
	if err := row.Scan(
		&deck.ID,
		&deck.OwnerID,
		&deck.Title,
		&description,
		&deck.CreatedAt,
		&deck.UpdatedAt,
	); err != nil {
		return nil, err
	}
	if description.Valid {
		deck.Description = &description.String
	}
	return &deck, nil
}

// ensureDeckOwned returns store.ErrDeckNotFound unless deckID exists and
// belongs to ownerID.
func ensureDeckOwned(ctx context.Context, db store.DBTX, deckID uuid.UUID, ownerID string) error {
	var one int
	err := db.QueryRowContext(ctx,
		`SELECT 1 FROM decks WHERE id = $1 AND owner_id = $2`, deckID, ownerID).Scan(&one)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return store.ErrDeckNotFound
		}
		return fmt.Errorf("checking deck ownership: %w", MapError(err))
	}
	return nil
}
