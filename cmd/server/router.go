package main

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/phrazzld/flashdeck/internal/api"
	apiMiddleware "github.com/phrazzld/flashdeck/internal/api/middleware"
	"github.com/phrazzld/flashdeck/internal/api/shared"
)

// requestTimeout bounds a single request. Bulk edits of large decks and AI
// generation are the slowest routes.
const requestTimeout = 90 * time.Second

// setupRouter creates and configures the application router with all routes and middleware.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RealIP)
	r.Use(apiMiddleware.TraceMiddleware(app.logger))
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(requestTimeout))

	deckHandler := api.NewDeckHandler(app.deckService, app.logger)
	cardHandler := api.NewCardHandler(app.cardService, app.bulkEditService, app.generationService, app.logger)
	authMiddleware := apiMiddleware.NewAuthMiddleware(app.jwtService)

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
			r.Put("/cards/{cardID}", cardHandler.UpdateCard)
			r.Delete("/cards/{cardID}", cardHandler.DeleteCard)
		})
	})

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		shared.RespondWithJSON(w, r, http.StatusOK, api.HealthResponse{Status: "ok"})
	})

	return r
}
