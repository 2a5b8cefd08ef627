package service

import (
	"context"
	"fmt"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/phrazzld/flashdeck/internal/domain"
	"github.com/phrazzld/flashdeck/internal/generation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var aiPlan = domain.NewEntitlements(string(domain.FeatureAIGeneration))

func newGenerationFixture(
	t *testing.T,
	gen generation.Generator,
) (*MockDeckStore, *MockCardStore, GenerationService, sqlmock.Sqlmock) {
	t.Helper()
	db, sqlMock := newTxDB(t)
	decks, cards := &MockDeckStore{}, &MockCardStore{}
	svc, err := NewGenerationService(decks, cards, db, gen, 5, nil)
	require.NoError(t, err)
	return decks, cards, svc, sqlMock
}

func TestGenerateCards_SavesAllCards(t *testing.T) {
	t.Parallel()

	gen := &MockGenerator{}
	decks, cards, svc, sqlMock := newGenerationFixture(t, gen)

	deck, err := domain.NewDeck(testOwner, "Spanish Vocabulary", "Common words")
	require.NoError(t, err)
	decks.On("Get", mock.Anything, deck.ID, testOwner).Return(deck, nil)

	gen.On("GenerateCards", mock.Anything, generation.Request{
		Topic:            "Spanish Vocabulary - Description: Common words",
		Count:            5,
		LanguageLearning: true,
	}).Return([]generation.Flashcard{
		{Question: "hola", Answer: "hello"},
		{Question: "gato", Answer: "cat"},
	}, nil).Once()

	sqlMock.ExpectBegin()
	sqlMock.ExpectCommit()
	cards.On("CreateMultiple", mock.Anything, testOwner, deck.ID, mock.MatchedBy(func(cs []*domain.Card) bool {
		return len(cs) == 2 && cs[0].Front == "hola" && cs[1].Back == "cat"
	})).Return(nil).Once()

	created, err := svc.GenerateCards(context.Background(), testOwner, aiPlan, deck.ID)
	require.NoError(t, err)
	assert.Len(t, created, 2)
	for _, c := range created {
		assert.Equal(t, deck.ID, c.DeckID)
	}
	gen.AssertExpectations(t)
	cards.AssertExpectations(t)
}

func TestGenerateCards_Preconditions(t *testing.T) {
	t.Parallel()

	deckID := uuid.New()

	t.Run("no generator", func(t *testing.T) {
		t.Parallel()
		_, _, svc, _ := newGenerationFixture(t, nil)
		_, err := svc.GenerateCards(context.Background(), testOwner, aiPlan, deckID)
		assert.ErrorIs(t, err, ErrGenerationUnavailable)
	})

	t.Run("missing entitlement", func(t *testing.T) {
		t.Parallel()
		_, _, svc, _ := newGenerationFixture(t, &MockGenerator{})
		_, err := svc.GenerateCards(context.Background(), testOwner, domain.NewEntitlements(), deckID)
		assert.ErrorIs(t, err, ErrFeatureNotEnabled)
	})

	t.Run("missing description", func(t *testing.T) {
		t.Parallel()
		gen := &MockGenerator{}
		decks, _, svc, _ := newGenerationFixture(t, gen)
		deck, err := domain.NewDeck(testOwner, "Biology", "")
		require.NoError(t, err)
		decks.On("Get", mock.Anything, deck.ID, testOwner).Return(deck, nil)

		_, err = svc.GenerateCards(context.Background(), testOwner, aiPlan, deck.ID)
		assert.ErrorIs(t, err, ErrDeckNotReadyForGeneration)
		assert.ErrorIs(t, err, domain.ErrValidation)

		var verr *domain.ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Equal(t, "Please add a description to this deck before generating cards with AI.", verr.Message)
		gen.AssertNotCalled(t, "GenerateCards", mock.Anything, mock.Anything)
	})

	t.Run("deck not owned", func(t *testing.T) {
		t.Parallel()
		decks, _, svc, _ := newGenerationFixture(t, &MockGenerator{})
		decks.On("Get", mock.Anything, deckID, "intruder").Return(nil, ErrNotOwned)
		_, err := svc.GenerateCards(context.Background(), "intruder", aiPlan, deckID)
		assert.ErrorIs(t, err, ErrNotOwned)
	})
}

func TestGenerateCards_GeneratorFailures(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		pairs  []generation.Flashcard
		genErr error
		wantIs error
	}{
		{name: "transient", genErr: fmt.Errorf("%w: timeout", generation.ErrTransientFailure), wantIs: generation.ErrTransientFailure},
		{name: "blocked", genErr: generation.ErrContentBlocked, wantIs: generation.ErrContentBlocked},
		{
			name:   "oversized card",
			pairs:  []generation.Flashcard{{Question: string(make([]rune, domain.MaxCardTextLength+1)), Answer: "a"}},
			wantIs: generation.ErrInvalidResponse,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			gen := &MockGenerator{}
			decks, cards, svc, _ := newGenerationFixture(t, gen)
			deck, err := domain.NewDeck(testOwner, "Cells", "Organelles")
			require.NoError(t, err)
			decks.On("Get", mock.Anything, deck.ID, testOwner).Return(deck, nil)
			if tc.genErr != nil {
				gen.On("GenerateCards", mock.Anything, mock.Anything).Return(nil, tc.genErr)
			} else {
				gen.On("GenerateCards", mock.Anything, mock.Anything).Return(tc.pairs, nil)
			}

			_, err = svc.GenerateCards(context.Background(), testOwner, aiPlan, deck.ID)
			assert.ErrorIs(t, err, tc.wantIs)
			cards.AssertNotCalled(t, "CreateMultiple", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
		})
	}
}
