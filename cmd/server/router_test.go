package main

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/flashdeck/internal/api"
	"github.com/phrazzld/flashdeck/internal/config"
	"github.com/phrazzld/flashdeck/internal/domain"
	"github.com/phrazzld/flashdeck/internal/mocks"
	"github.com/phrazzld/flashdeck/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestApplication(t *testing.T) *application {
	t.Helper()

	return &application{
		config:            &config.Config{Server: config.ServerConfig{Port: 0, LogLevel: "debug"}},
		logger:            slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil)),
		jwtService:        mocks.NewMockJWTServiceForOwner("user_1"),
		deckService:       &mocks.MockDeckService{Decks: []*domain.Deck{}},
		cardService:       &mocks.MockCardService{},
		bulkEditService:   &mocks.MockBulkEditService{Result: &service.BulkEditResult{Updated: 2}},
		generationService: &mocks.MockGenerationService{DefaultError: service.ErrGenerationUnavailable},
	}
}

func TestHealth(t *testing.T) {
	t.Parallel()

	app := newTestApplication(t)
	rr := httptest.NewRecorder()
	app.setupRouter().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/health", nil))

	require.Equal(t, http.StatusOK, rr.Code)
	var resp api.HealthResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, "ok", resp.Status)
}

func TestRoutes(t *testing.T) {
	t.Parallel()

	deckID := uuid.NewString()
	tests := []struct {
		name       string
		method     string
		path       string
		body       string
		auth       bool
		wantStatus int
	}{
		{"list decks", http.MethodGet, "/api/decks", "", true, http.StatusOK},
		{"list decks without token", http.MethodGet, "/api/decks", "", false, http.StatusUnauthorized},
		{"bulk edit", http.MethodPatch, "/api/decks/" + deckID + "/cards", `{"cards":[]}`, true, http.StatusOK},
		{"generate without generator", http.MethodPost, "/api/decks/" + deckID + "/cards/generate", "", true, http.StatusServiceUnavailable},
		{"put card", http.MethodPut, "/api/decks/" + deckID + "/cards/" + uuid.NewString(), `{"front":"x"}`, true, http.StatusNoContent},
		{"unknown route", http.MethodGet, "/api/nope", "", true, http.StatusNotFound},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			app := newTestApplication(t)
			req := httptest.NewRequest(tc.method, tc.path, bytes.NewBufferString(tc.body))
			if tc.auth {
				req.Header.Set("Authorization", "Bearer dev")
			}
			rr := httptest.NewRecorder()
			app.setupRouter().ServeHTTP(rr, req)

			assert.Equal(t, tc.wantStatus, rr.Code)
		})
	}
}

func TestStartHTTPServerStopsOnCancel(t *testing.T) {
	t.Parallel()

	app := newTestApplication(t)
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() { done <- app.startHTTPServer(ctx, app.setupRouter()) }()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(shutdownTimeout + time.Second):
		t.Fatal("server did not shut down")
	}
}
