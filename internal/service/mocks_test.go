package service

import (
	"context"
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/phrazzld/flashdeck/internal/domain"
	"github.com/phrazzld/flashdeck/internal/generation"
	"github.com/phrazzld/flashdeck/internal/store"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockDeckStore mocks the store.DeckStore interface.
// WithTx returns the same mock so expectations span transactions.
type MockDeckStore struct {
	mock.Mock
}

func (m *MockDeckStore) Create(ctx context.Context, deck *domain.Deck) error {
	args := m.Called(ctx, deck)
	return args.Error(0)
}

func (m *MockDeckStore) Get(ctx context.Context, deckID uuid.UUID, ownerID string) (*domain.Deck, error) {
	args := m.Called(ctx, deckID, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Deck), args.Error(1)
}

func (m *MockDeckStore) ListByOwner(ctx context.Context, ownerID string) ([]*domain.Deck, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Deck), args.Error(1)
}

func (m *MockDeckStore) CountByOwner(ctx context.Context, ownerID string) (int, error) {
	args := m.Called(ctx, ownerID)
	return args.Int(0), args.Error(1)
}

func (m *MockDeckStore) Update(ctx context.Context, deck *domain.Deck) error {
	args := m.Called(ctx, deck)
	return args.Error(0)
}

func (m *MockDeckStore) Delete(ctx context.Context, deckID uuid.UUID, ownerID string) error {
	args := m.Called(ctx, deckID, ownerID)
	return args.Error(0)
}

func (m *MockDeckStore) WithTx(_ *sql.Tx) store.DeckStore {
	return m
}

// MockCardStore mocks the store.CardStore interface.
type MockCardStore struct {
	mock.Mock
}

func (m *MockCardStore) Create(ctx context.Context, ownerID string, card *domain.Card) error {
	args := m.Called(ctx, ownerID, card)
	return args.Error(0)
}

func (m *MockCardStore) CreateMultiple(
	ctx context.Context,
	ownerID string,
	deckID uuid.UUID,
	cards []*domain.Card,
) error {
	args := m.Called(ctx, ownerID, deckID, cards)
	return args.Error(0)
}

func (m *MockCardStore) Get(ctx context.Context, ownerID string, deckID, cardID uuid.UUID) (*domain.Card, error) {
	args := m.Called(ctx, ownerID, deckID, cardID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Card), args.Error(1)
}

func (m *MockCardStore) ListByDeck(ctx context.Context, ownerID string, deckID uuid.UUID) ([]*domain.Card, error) {
	args := m.Called(ctx, ownerID, deckID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Card), args.Error(1)
}

func (m *MockCardStore) Update(
	ctx context.Context,
	ownerID string,
	deckID, cardID uuid.UUID,
	upd domain.CardUpdate,
) error {
	args := m.Called(ctx, ownerID, deckID, cardID, upd)
	return args.Error(0)
}

func (m *MockCardStore) Delete(ctx context.Context, ownerID string, deckID, cardID uuid.UUID) error {
	args := m.Called(ctx, ownerID, deckID, cardID)
	return args.Error(0)
}

func (m *MockCardStore) WithTx(_ *sql.Tx) store.CardStore {
	return m
}

// MockGenerator mocks the generation.Generator interface.
type MockGenerator struct {
	mock.Mock
}

func (m *MockGenerator) GenerateCards(ctx context.Context, req generation.Request) ([]generation.Flashcard, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]generation.Flashcard), args.Error(1)
}

// newTxDB returns a sqlmock-backed *sql.DB for services that open transactions.
func newTxDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, sqlMock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() {
		require.NoError(t, sqlMock.ExpectationsWereMet())
		_ = db.Close()
	})
	return db, sqlMock
}

func strPtr(s string) *string {
	return &s
}
