package api_test

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/phrazzld/flashdeck/internal/api"
	"github.com/phrazzld/flashdeck/internal/api/middleware"
	"github.com/phrazzld/flashdeck/internal/api/shared"
	"github.com/phrazzld/flashdeck/internal/domain"
	"github.com/phrazzld/flashdeck/internal/mocks"
	"github.com/stretchr/testify/require"
)

const testOwner = "user_2abc"

// testServices bundles the mocked services behind a test router.
type testServices struct {
	decks      *mocks.MockDeckService
	cards      *mocks.MockCardService
	bulk       *mocks.MockBulkEditService
	generation *mocks.MockGenerationService
	jwt        *mocks.MockJWTService
}

func newTestServices(features ...string) *testServices {
	return &testServices{
		decks:      &mocks.MockDeckService{},
		cards:      &mocks.MockCardService{},
		bulk:       &mocks.MockBulkEditService{},
		generation: &mocks.MockGenerationService{},
		jwt:        mocks.NewMockJWTServiceForOwner(testOwner, features...),
	}
}

// router mounts the handlers the same way the server does.
func (s *testServices) router(t *testing.T) http.Handler {
	t.Helper()

	log := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
	deckHandler := api.NewDeckHandler(s.decks, log)
	cardHandler := api.NewCardHandler(s.cards, s.bulk, s.generation, log)
	authMiddleware := middleware.NewAuthMiddleware(s.jwt)

	r := chi.NewRouter()
	r.Use(middleware.TraceMiddleware(log))
	r.Route("/api", func(r chi.Router) {
		r.Use(authMiddleware.Authenticate)
		r.Get("/decks", deckHandler.ListDecks)
		r.Post("/decks", deckHandler.CreateDeck)
		r.Route("/decks/{deckID}", func(r chi.Router) {
			r.Get("/", deckHandler.GetDeck)
			r.Put("/", deckHandler.UpdateDeck)
			r.Delete("/", deckHandler.DeleteDeck)

			r.Get("/cards", cardHandler.ListCards)
			r.Post("/cards", cardHandler.CreateCard)
			r.Patch("/cards", cardHandler.BulkEdit)
			r.Post("/cards/generate", cardHandler.GenerateCards)
			r.Get("/cards/{cardID}", cardHandler.GetCard)
			r.Patch("/cards/{cardID}", cardHandler.UpdateCard)
			r.Delete("/cards/{cardID}", cardHandler.DeleteCard)
		})
	})
	return r
}

// do sends an authenticated request with an optional JSON body.
func do(t *testing.T, h http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		switch b := body.(type) {
		case string:
			buf.WriteString(b)
		default:
			require.NoError(t, json.NewEncoder(&buf).Encode(body))
		}
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Authorization", "Bearer test-token")
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func decodeError(t *testing.T, rr *httptest.ResponseRecorder) shared.ErrorResponse {
	t.Helper()
	var resp shared.ErrorResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	return resp
}

func testDeck(t *testing.T, title, description string) *domain.Deck {
	t.Helper()
	deck, err := domain.NewDeck(testOwner, title, description)
	require.NoError(t, err)
	return deck
}

func testCard(t *testing.T, deckID uuid.UUID, front, back string) *domain.Card {
	t.Helper()
	card, err := domain.NewCard(deckID, front, back)
	require.NoError(t, err)
	card.CreatedAt = time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)
	card.UpdatedAt = card.CreatedAt
	return card
}
