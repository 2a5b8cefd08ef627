package domain

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDeck(t *testing.T) {
	t.Parallel()

	t.Run("valid deck", func(t *testing.T) {
		t.Parallel()
		deck, err := NewDeck("user_123", "Spanish", "Basic vocabulary")
		require.NoError(t, err)
		assert.Equal(t, "user_123", deck.OwnerID)
		assert.Equal(t, "Spanish", deck.Title)
		require.NotNil(t, deck.Description)
		assert.Equal(t, "Basic vocabulary", deck.DescriptionText())
	})

	t.Run("blank description becomes nil", func(t *testing.T) {
		t.Parallel()
		deck, err := NewDeck("user_123", "Spanish", "   \n\t")
		require.NoError(t, err)
		assert.Nil(t, deck.Description)
		assert.Equal(t, "", deck.DescriptionText())
	})

	t.Run("validation failures", func(t *testing.T) {
		t.Parallel()
		_, err := NewDeck("", "Spanish", "")
		assert.ErrorIs(t, err, ErrDeckOwnerEmpty)

		_, err = NewDeck("user_123", "", "")
		assert.ErrorIs(t, err, ErrDeckTitleEmpty)

		_, err = NewDeck("user_123", strings.Repeat("t", MaxDeckTitleLength+1), "")
		assert.ErrorIs(t, err, ErrDeckTitleTooLong)

		_, err = NewDeck("user_123", "Spanish", strings.Repeat("d", MaxDeckDescriptionLength+1))
		assert.ErrorIs(t, err, ErrDeckDescriptionTooLong)
		assert.ErrorIs(t, err, ErrValidation)
	})
}

func TestDeckUpdate(t *testing.T) {
	t.Parallel()

	deck, err := NewDeck("user_123", "Spanish", "Verbs")
	require.NoError(t, err)
	original := *deck

	err = deck.Update("", "whatever")
	assert.ErrorIs(t, err, ErrDeckTitleEmpty)
	assert.Equal(t, original, *deck, "failed update must leave the deck untouched")

	require.NoError(t, deck.Update("Spanish II", ""))
	assert.Equal(t, "Spanish II", deck.Title)
	assert.Nil(t, deck.Description)
	assert.Equal(t, original.ID, deck.ID)
	assert.Equal(t, original.OwnerID, deck.OwnerID)
}

func TestEntitlements(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		features  []string
		wantLimit bool
	}{
		{name: "no features", features: nil},
		{name: "free plan", features: []string{"3_deck_limit"}, wantLimit: true},
		{name: "pro plan", features: []string{"3_deck_limit", "unlimited_decks"}},
		{name: "unlimited only", features: []string{"unlimited_decks"}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			limit, limited := NewEntitlements(tc.features...).DeckLimit()
			assert.Equal(t, tc.wantLimit, limited)
			if tc.wantLimit {
				assert.Equal(t, FreePlanDeckLimit, limit)
			}
		})
	}

	e := NewEntitlements("ai_flashcard_generation", "")
	assert.True(t, e.Has(FeatureAIGeneration))
	assert.False(t, e.Has(FeatureUnlimitedDecks))
	assert.Equal(t, []string{"ai_flashcard_generation"}, e.Names())
}
