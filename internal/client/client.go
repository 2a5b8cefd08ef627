package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/flashdeck/internal/api"
	"github.com/phrazzld/flashdeck/internal/api/shared"
	"github.com/phrazzld/flashdeck/internal/config"
	"github.com/phrazzld/flashdeck/internal/domain"
	"github.com/phrazzld/flashdeck/internal/reconcile"
	"github.com/phrazzld/flashdeck/internal/redact"
)

// Client talks to the flashdeck server on behalf of one token holder.
type Client struct {
	baseURL *url.URL
	token   string
	http    *http.Client
	logger  *slog.Logger
}

var _ reconcile.CardWriter = (*Client)(nil)

// New creates a Client from cfg. A nil logger falls back to slog.Default().
func New(cfg config.ClientConfig, logger *slog.Logger) (*Client, error) {
	if strings.TrimSpace(cfg.Token) == "" {
		return nil, domain.NewValidationError("token", "cannot be empty", domain.ErrValidation)
	}

	base, err := url.Parse(strings.TrimRight(cfg.ServerURL, "/"))
	if err != nil || base.Scheme == "" || base.Host == "" {
		return nil, domain.NewValidationError("server_url", "must be an absolute URL", domain.ErrValidation)
	}

	if logger == nil {
		logger = slog.Default()
	}

	timeout := time.Duration(cfg.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 15 * time.Second
	}

	return &Client{
		baseURL: base,
		token:   cfg.Token,
		http:    &http.Client{Timeout: timeout},
		logger:  logger.With(slog.String("component", "api_client")),
	}, nil
}

// ListDecks returns the caller's decks.
func (c *Client) ListDecks(ctx context.Context) ([]api.DeckResponse, error) {
	var out []api.DeckResponse
	if err := c.do(ctx, http.MethodGet, "/api/decks", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetDeck returns one deck.
func (c *Client) GetDeck(ctx context.Context, deckID uuid.UUID) (*api.DeckResponse, error) {
	var out api.DeckResponse
	if err := c.do(ctx, http.MethodGet, "/api/decks/"+deckID.String(), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CreateDeck creates a deck.
func (c *Client) CreateDeck(ctx context.Context, title, description string) (*api.DeckResponse, error) {
	var out api.DeckResponse
	req := api.CreateDeckRequest{Title: title, Description: description}
	if err := c.do(ctx, http.MethodPost, "/api/decks", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListCards returns the cards of a deck as domain values, ready to seed a
// study session or an edit pass.
func (c *Client) ListCards(ctx context.Context, deckID uuid.UUID) ([]domain.Card, error) {
	var out []api.CardResponse
	if err := c.do(ctx, http.MethodGet, cardsPath(deckID), nil, &out); err != nil {
		return nil, err
	}

	cards := make([]domain.Card, 0, len(out))
	for _, r := range out {
		cards = append(cards, domain.Card{
			ID:        r.ID,
			DeckID:    r.DeckID,
			Front:     r.Front,
			Back:      r.Back,
			SortOrder: r.SortOrder,
			CreatedAt: r.CreatedAt,
			UpdatedAt: r.UpdatedAt,
		})
	}
	return cards, nil
}

// GenerateCards asks the server to generate cards for a deck with AI.
func (c *Client) GenerateCards(ctx context.Context, deckID uuid.UUID) (*api.GenerateCardsResponse, error) {
	var out api.GenerateCardsResponse
	if err := c.do(ctx, http.MethodPost, cardsPath(deckID)+"/generate", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateCard sends the changed sides of one card.
func (c *Client) UpdateCard(ctx context.Context, deckID, cardID uuid.UUID, upd domain.CardUpdate) error {
	req := api.UpdateCardRequest{Front: upd.Front, Back: upd.Back}
	return c.do(ctx, http.MethodPatch, cardsPath(deckID)+"/"+cardID.String(), req, nil)
}

// DeleteCard removes one card.
func (c *Client) DeleteCard(ctx context.Context, deckID, cardID uuid.UUID) error {
	return c.do(ctx, http.MethodDelete, cardsPath(deckID)+"/"+cardID.String(), nil, nil)
}

func cardsPath(deckID uuid.UUID) string {
	return "/api/decks/" + deckID.String() + "/cards"
}

// do sends one JSON request and decodes a JSON response into out when out
// is non-nil.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode %s %s request: %w", method, path, err)
		}
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL.JoinPath(path).String(), reader)
	if err != nil {
		return fmt.Errorf("build %s %s request: %w", method, path, err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		if errors.Is(ctx.Err(), context.Canceled) {
			return ctx.Err()
		}
		c.logger.Debug("request failed",
			slog.String("method", method),
			slog.String("path", path),
			slog.String("error", redact.Error(err)))
		return fmt.Errorf("%w: %s %s: %v", ErrUnavailable, method, path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	c.logger.Debug("request completed",
		slog.String("method", method),
		slog.String("path", path),
		slog.Int("status", resp.StatusCode),
		slog.Duration("duration", time.Since(start)))

	if resp.StatusCode >= http.StatusBadRequest {
		return decodeAPIError(resp)
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s %s response: %w", method, path, err)
	}
	return nil
}

func decodeAPIError(resp *http.Response) error {
	apiErr := &APIError{StatusCode: resp.StatusCode}

	var body shared.ErrorResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, 64<<10)).Decode(&body); err == nil {
		apiErr.Message = body.Error
		apiErr.TraceID = body.TraceID
	}
	if apiErr.Message == "" {
		apiErr.Message = http.StatusText(resp.StatusCode)
	}
	return apiErr
}
