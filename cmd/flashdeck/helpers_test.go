package main

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/flashdeck/internal/api"
	"github.com/phrazzld/flashdeck/internal/client"
	"github.com/phrazzld/flashdeck/internal/config"
	"github.com/phrazzld/flashdeck/internal/domain"
	"github.com/phrazzld/flashdeck/internal/mocks"
	"github.com/sebdah/goldie/v2"
)

var (
	testDeckID = uuid.MustParse("11111111-1111-1111-1111-111111111111")
	cardA      = uuid.MustParse("aaaaaaaa-aaaa-aaaa-aaaa-aaaaaaaaaaaa")
	cardB      = uuid.MustParse("bbbbbbbb-bbbb-bbbb-bbbb-bbbbbbbbbbbb")
	cardC      = uuid.MustParse("cccccccc-cccc-cccc-cccc-cccccccccccc")
)

// identityRand makes shuffles keep their input order.
type identityRand struct{}

func (identityRand) IntN(n int) int { return n - 1 }

func spanishCards() []domain.Card {
	at := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	mk := func(id uuid.UUID, front, back string) domain.Card {
		return domain.Card{ID: id, DeckID: testDeckID, Front: front, Back: back, CreatedAt: at, UpdatedAt: at}
	}
	return []domain.Card{
		mk(cardA, "hola", "hello"),
		mk(cardB, "adiós", "goodbye"),
		mk(cardC, "gato", "cat"),
	}
}

// fakeAPI is an in-memory deckAPI. Writes are recorded by the embedded
// MockCardWriter.
type fakeAPI struct {
	*mocks.MockCardWriter

	decks     []api.DeckResponse
	cards     []domain.Card
	generated *api.GenerateCardsResponse
	genErr    error

	mu sync.Mutex
	// failWrites makes this many write calls fail before writes succeed.
	// A negative value fails every write.
	failWrites int
	writeCalls int
}

func newFakeAPI() *fakeAPI {
	f := &fakeAPI{cards: spanishCards()}
	f.MockCardWriter = &mocks.MockCardWriter{
		UpdateCardFn: func(ctx context.Context, deckID, cardID uuid.UUID, upd domain.CardUpdate) error {
			return f.writeResult()
		},
		DeleteCardFn: func(ctx context.Context, deckID, cardID uuid.UUID) error {
			return f.writeResult()
		},
	}
	return f
}

func (f *fakeAPI) ListDecks(ctx context.Context) ([]api.DeckResponse, error) {
	return f.decks, nil
}

func (f *fakeAPI) ListCards(ctx context.Context, deckID uuid.UUID) ([]domain.Card, error) {
	if deckID != testDeckID {
		return nil, &client.APIError{StatusCode: 404, Message: "Deck not found"}
	}
	return append([]domain.Card(nil), f.cards...), nil
}

func (f *fakeAPI) GenerateCards(ctx context.Context, deckID uuid.UUID) (*api.GenerateCardsResponse, error) {
	return f.generated, f.genErr
}

func (f *fakeAPI) writeResult() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.writeCalls++
	if f.failWrites == 0 {
		return nil
	}
	if f.failWrites > 0 {
		f.failWrites--
	}
	return client.ErrUnavailable
}

func (f *fakeAPI) calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.writeCalls
}

func testDeps(f *fakeAPI) deps {
	return deps{
		newAPI: func(cfg config.ClientConfig, log *slog.Logger) (deckAPI, error) {
			return f, nil
		},
		rng: identityRand{},
		openEditor: func(ctx context.Context, path string, stdin io.Reader, stdout, stderr io.Writer) error {
			return errors.New("no editor in tests")
		},
	}
}

// execute runs the CLI with args and stdin, returning stdout and the error.
func execute(t *testing.T, d deps, stdin string, args ...string) (string, error) {
	t.Helper()
	t.Setenv("FLASHDECK_CLIENT_TOKEN", "")

	cmd := newRootCommandWith(d)
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)

	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func newGoldie(t *testing.T) *goldie.Goldie {
	return goldie.New(t,
		goldie.WithFixtureDir("testdata"),
		goldie.WithNameSuffix(".golden"),
	)
}
