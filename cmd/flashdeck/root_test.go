package main

import (
	"encoding/json"
	"testing"

	"github.com/phrazzld/flashdeck/internal/api"
	"github.com/phrazzld/flashdeck/internal/client"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCommandHasSubcommands(t *testing.T) {
	cmd := newRootCommand()

	for _, name := range []string{"decks", "study", "edit", "generate"} {
		sub, _, err := cmd.Find([]string{name})
		require.NoError(t, err, name)
		assert.Equal(t, name, sub.Name())
	}

	for _, flag := range []string{"verbose", "format", "server-url", "token", "timeout", "max-concurrency"} {
		assert.NotNil(t, cmd.PersistentFlags().Lookup(flag), flag)
	}
}

func TestRootCommandRejectsBadInput(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		wantErr string
	}{
		{
			name:    "unknown format",
			args:    []string{"decks", "--format", "xml", "--token", "t"},
			wantErr: `invalid format "xml"`,
		},
		{
			name:    "missing token",
			args:    []string{"decks"},
			wantErr: "config validation failed",
		},
		{
			name:    "bad server url",
			args:    []string{"decks", "--token", "t", "--server-url", "not a url"},
			wantErr: "config validation failed",
		},
		{
			name:    "bad deck id",
			args:    []string{"study", "not-a-uuid", "--token", "t"},
			wantErr: `invalid deck ID "not-a-uuid"`,
		},
		{
			name:    "missing deck id",
			args:    []string{"edit", "--token", "t"},
			wantErr: "accepts 1 arg(s)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFakeAPI()
			_, err := execute(t, testDeps(f), "", tt.args...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestDecksCommand(t *testing.T) {
	f := newFakeAPI()
	f.decks = []api.DeckResponse{{ID: testDeckID, Title: "Spanish"}}

	t.Run("text", func(t *testing.T) {
		out, err := execute(t, testDeps(f), "", "decks", "--token", "t")
		require.NoError(t, err)
		assert.Contains(t, out, "Spanish")
		assert.Contains(t, out, "Total: 1 deck(s)")
	})

	t.Run("json", func(t *testing.T) {
		out, err := execute(t, testDeps(f), "", "decks", "--format", "json", "--token", "t")
		require.NoError(t, err)

		var got []api.DeckResponse
		require.NoError(t, json.Unmarshal([]byte(out), &got))
		require.Len(t, got, 1)
		assert.Equal(t, testDeckID, got[0].ID)
	})
}

func TestGenerateCommand(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		f := newFakeAPI()
		f.generated = &api.GenerateCardsResponse{
			Count: 1,
			Cards: []api.CardResponse{{ID: cardA, DeckID: testDeckID, Front: "perro", Back: "dog"}},
		}

		out, err := execute(t, testDeps(f), "", "generate", testDeckID.String(), "--token", "t")
		require.NoError(t, err)
		assert.Contains(t, out, "Generated 1 card(s).")
		assert.Contains(t, out, "perro")
	})

	t.Run("server message is shown as is", func(t *testing.T) {
		f := newFakeAPI()
		f.genErr = &client.APIError{StatusCode: 403, Message: "AI generation is not available on your plan"}

		_, err := execute(t, testDeps(f), "", "generate", testDeckID.String(), "--token", "t")
		require.Error(t, err)
		assert.Equal(t, "AI generation is not available on your plan", err.Error())
	})

	t.Run("transport failure", func(t *testing.T) {
		f := newFakeAPI()
		f.genErr = client.ErrUnavailable

		_, err := execute(t, testDeps(f), "", "generate", testDeckID.String(), "--token", "t")
		require.Error(t, err)
		assert.ErrorIs(t, err, client.ErrUnavailable)
	})
}
