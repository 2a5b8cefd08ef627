package generation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsLanguageLearningDeck(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		title       string
		description string
		want        bool
	}{
		{name: "translation pattern", title: "Common phrases", description: "Translate from English", want: true},
		{name: "to language", title: "Words to Japanese", want: true},
		{name: "language with vocab", title: "German vocab", description: "Everyday words", want: true},
		{name: "language with learning", title: "Spanish", description: "Learning the basics", want: true},
		{name: "case insensitive", title: "FRENCH VOCABULARY", want: true},
		{name: "language without learning context", title: "French history", description: "Revolution and empire"},
		{name: "learning without language", title: "Learn biology", description: "Cells and organs"},
		{name: "learning word inside another word", title: "Greek", description: "Relearnt myths"},
		{name: "plain subject", title: "World capitals", description: "Europe"},
		{name: "empty", title: "", description: ""},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.want, IsLanguageLearningDeck(tc.title, tc.description))
		})
	}
}

func TestTopic(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "Capitals - Description: Europe", Topic("Capitals", "Europe"))
	assert.Equal(t, "Capitals", Topic("Capitals", "  "))
}

func TestRequestValidate(t *testing.T) {
	t.Parallel()

	req := Request{Topic: "Capitals"}
	require.NoError(t, req.Validate())
	assert.Equal(t, DefaultCardCount, req.Count)

	assert.ErrorIs(t, (&Request{Topic: " "}).Validate(), ErrEmptyTopic)
	assert.ErrorIs(t, (&Request{Topic: "x", Count: -1}).Validate(), ErrInvalidConfig)
}
