package domain

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func TestNewCard(t *testing.T) {
	t.Parallel()

	deckID := uuid.New()
	card, err := NewCard(deckID, "What is Go?", "A programming language")
	require.NoError(t, err)

	assert.NotEqual(t, uuid.Nil, card.ID)
	assert.Equal(t, deckID, card.DeckID)
	assert.Equal(t, "What is Go?", card.Front)
	assert.Equal(t, "A programming language", card.Back)
	assert.Nil(t, card.SortOrder)
	assert.False(t, card.CreatedAt.IsZero())
	assert.Equal(t, card.CreatedAt, card.UpdatedAt)
}

func TestCardValidate(t *testing.T) {
	t.Parallel()

	long := strings.Repeat("a", MaxCardTextLength+1)
	maxed := strings.Repeat("é", MaxCardTextLength)

	tests := []struct {
		name    string
		mutate  func(c *Card)
		wantErr error
	}{
		{name: "valid", mutate: func(c *Card) {}},
		{name: "max length in runes", mutate: func(c *Card) { c.Front = maxed; c.Back = maxed }},
		{name: "missing id", mutate: func(c *Card) { c.ID = uuid.Nil }, wantErr: ErrCardIDEmpty},
		{name: "missing deck", mutate: func(c *Card) { c.DeckID = uuid.Nil }, wantErr: ErrCardDeckIDEmpty},
		{name: "empty front", mutate: func(c *Card) { c.Front = "" }, wantErr: ErrCardFrontEmpty},
		{name: "empty back", mutate: func(c *Card) { c.Back = "" }, wantErr: ErrCardBackEmpty},
		{name: "front too long", mutate: func(c *Card) { c.Front = long }, wantErr: ErrCardFrontTooLong},
		{name: "back too long", mutate: func(c *Card) { c.Back = long }, wantErr: ErrCardBackTooLong},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			card := Card{ID: uuid.New(), DeckID: uuid.New(), Front: "front", Back: "back"}
			tc.mutate(&card)

			err := card.Validate()
			if tc.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tc.wantErr)
			assert.ErrorIs(t, err, ErrValidation)
		})
	}
}

func TestCardUpdate(t *testing.T) {
	t.Parallel()

	t.Run("empty update is a no-op", func(t *testing.T) {
		t.Parallel()
		card := Card{ID: uuid.New(), DeckID: uuid.New(), Front: "f", Back: "b"}
		before := card.UpdatedAt

		upd := CardUpdate{}
		assert.True(t, upd.IsEmpty())
		card.Apply(upd)
		assert.Equal(t, before, card.UpdatedAt)
	})

	t.Run("partial update touches only named fields", func(t *testing.T) {
		t.Parallel()
		card := Card{ID: uuid.New(), DeckID: uuid.New(), Front: "f", Back: "b"}

		card.Apply(CardUpdate{Back: strPtr("new back")})
		assert.Equal(t, "f", card.Front)
		assert.Equal(t, "new back", card.Back)
		assert.False(t, card.UpdatedAt.IsZero())
	})

	t.Run("validate checks present fields", func(t *testing.T) {
		t.Parallel()
		assert.NoError(t, CardUpdate{Front: strPtr("ok")}.Validate())
		assert.ErrorIs(t, CardUpdate{Front: strPtr("")}.Validate(), ErrCardFrontEmpty)
		assert.ErrorIs(t, CardUpdate{Back: strPtr("")}.Validate(), ErrCardBackEmpty)
	})
}

func TestValidationError(t *testing.T) {
	t.Parallel()

	err := NewValidationError("front", "is required", ErrEmptyContent)
	assert.Equal(t, "validation failed: front is required", err.Error())
	assert.True(t, errors.Is(err, ErrValidation))
	assert.True(t, errors.Is(err, ErrEmptyContent))

	var ve *ValidationError
	require.True(t, errors.As(error(err), &ve))
	assert.Equal(t, "front", ve.Field)

	bare := NewValidationError("", "bad input", nil)
	assert.Equal(t, "validation failed: bad input", bare.Error())
	assert.ErrorIs(t, bare, ErrValidation)
}
