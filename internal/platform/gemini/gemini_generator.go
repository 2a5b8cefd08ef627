package gemini

import (
	"bytes"
	"context"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"math/rand/v2"
	"strings"
	"text/template"
	"time"

	"github.com/phrazzld/flashdeck/internal/config"
	"github.com/phrazzld/flashdeck/internal/generation"
	"github.com/phrazzld/flashdeck/internal/platform/logger"
	"google.golang.org/genai"
)

//go:embed prompts/*.tmpl
var promptFS embed.FS

const (
	studyTemplate    = "study.tmpl"
	languageTemplate = "language.tmpl"
)

// modelClient is the part of genai.Models used by the generator.
type modelClient interface {
	GenerateContent(
		ctx context.Context,
		model string,
		contents []*genai.Content,
		config *genai.GenerateContentConfig,
	) (*genai.GenerateContentResponse, error)
}

// GeminiGenerator implements generation.Generator using the Gemini API.
type GeminiGenerator struct {
	logger  *slog.Logger
	config  config.LLMConfig
	prompts *template.Template
	client  modelClient
	// wait blocks for d or until ctx is done.
	wait func(ctx context.Context, d time.Duration) error
}

var _ generation.Generator = (*GeminiGenerator)(nil)

// NewGeminiGenerator creates a generator backed by a real Gemini client.
func NewGeminiGenerator(ctx context.Context, log *slog.Logger, cfg config.LLMConfig) (*GeminiGenerator, error) {
	if cfg.GeminiAPIKey == "" {
		return nil, fmt.Errorf("%w: gemini API key cannot be empty", generation.ErrInvalidConfig)
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.GeminiAPIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create Gemini client: %v", generation.ErrInvalidConfig, err)
	}

	return newGenerator(log, cfg, client.Models)
}

func newGenerator(log *slog.Logger, cfg config.LLMConfig, client modelClient) (*GeminiGenerator, error) {
	if client == nil {
		return nil, fmt.Errorf("%w: client cannot be nil", generation.ErrInvalidConfig)
	}
	if cfg.ModelName == "" {
		return nil, fmt.Errorf("%w: model name cannot be empty", generation.ErrInvalidConfig)
	}
	if log == nil {
		log = slog.Default()
	}

	prompts, err := template.ParseFS(promptFS, "prompts/*.tmpl")
	if err != nil {
		return nil, fmt.Errorf("%w: failed to parse prompt templates: %v", generation.ErrInvalidConfig, err)
	}

	return &GeminiGenerator{
		logger:  log.With(slog.String("component", "gemini_generator")),
		config:  cfg,
		prompts: prompts,
		client:  client,
		wait:    sleepContext,
	}, nil
}

// GenerateCards implements generation.Generator.
func (g *GeminiGenerator) GenerateCards(ctx context.Context, req generation.Request) ([]generation.Flashcard, error) {
	log := logger.FromContextOrDefault(ctx, g.logger)

	if err := req.Validate(); err != nil {
		return nil, err
	}

	prompt, err := g.createPrompt(req)
	if err != nil {
		return nil, err
	}

	log.Debug("generating flashcards",
		slog.Int("count", req.Count),
		slog.Bool("language_learning", req.LanguageLearning),
		slog.Int("prompt_length", len(prompt)))

	text, err := g.callWithRetry(ctx, log, prompt)
	if err != nil {
		return nil, err
	}

	cards, err := parseResponse(text)
	if err != nil {
		log.Warn("failed to parse Gemini response", slog.String("error", err.Error()))
		return nil, err
	}

	log.Info("flashcards generated", slog.Int("count", len(cards)))
	return cards, nil
}

func (g *GeminiGenerator) createPrompt(req generation.Request) (string, error) {
	name := studyTemplate
	if req.LanguageLearning {
		name = languageTemplate
	}

	var buf bytes.Buffer
	if err := g.prompts.ExecuteTemplate(&buf, name, req); err != nil {
		return "", fmt.Errorf("failed to execute prompt template: %w", err)
	}
	return buf.String(), nil
}

// callWithRetry calls the model, retrying transient failures with
// exponential backoff and jitter. Blocked or malformed responses are
// returned immediately.
func (g *GeminiGenerator) callWithRetry(ctx context.Context, log *slog.Logger, prompt string) (string, error) {
	maxRetries := max(g.config.MaxRetries, 0)
	baseDelay := time.Duration(g.config.RetryDelaySeconds) * time.Second
	genConfig := &genai.GenerateContentConfig{ResponseMIMEType: "application/json"}

	for attempt := 0; ; attempt++ {
		resp, err := g.client.GenerateContent(ctx, g.config.ModelName, genai.Text(prompt), genConfig)
		if err == nil {
			text, respErr := responseText(resp)
			if respErr == nil {
				log.Debug("Gemini call succeeded", slog.Int("attempt", attempt+1))
				return text, nil
			}
			log.Warn("Gemini returned an unusable response", slog.String("error", respErr.Error()))
			return "", respErr
		}

		if errors.Is(err, context.Canceled) {
			return "", fmt.Errorf("%w: %v", generation.ErrTransientFailure, err)
		}

		log.Error("Gemini call failed",
			slog.Int("attempt", attempt+1),
			slog.String("error", err.Error()))

		if attempt >= maxRetries {
			return "", fmt.Errorf("%w: exceeded maximum retry attempts (%d): %v",
				generation.ErrTransientFailure, maxRetries, err)
		}

		// delay = base * 2^attempt * [0.5, 1.0)
		backoff := float64(baseDelay) * math.Pow(2, float64(attempt))
		delay := time.Duration(backoff * (0.5 + rand.Float64()*0.5))

		log.Info("retrying Gemini call", slog.Duration("delay", delay))
		if err := g.wait(ctx, delay); err != nil {
			return "", fmt.Errorf("%w: %v", generation.ErrTransientFailure, err)
		}
	}
}

func responseText(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil {
		return "", fmt.Errorf("%w: nil response", generation.ErrInvalidResponse)
	}
	if resp.PromptFeedback != nil && resp.PromptFeedback.BlockReason != "" {
		return "", fmt.Errorf("%w: prompt blocked (%s)", generation.ErrContentBlocked, resp.PromptFeedback.BlockReason)
	}
	if len(resp.Candidates) == 0 {
		return "", fmt.Errorf("%w: no content generated", generation.ErrInvalidResponse)
	}

	candidate := resp.Candidates[0]
	if candidate.FinishReason == genai.FinishReasonSafety {
		return "", fmt.Errorf("%w: content blocked by safety filters", generation.ErrContentBlocked)
	}
	if candidate.Content == nil {
		return "", fmt.Errorf("%w: empty content in response", generation.ErrInvalidResponse)
	}

	var sb strings.Builder
	for _, part := range candidate.Content.Parts {
		if part != nil {
			sb.WriteString(part.Text)
		}
	}
	return sb.String(), nil
}

type responseSchema struct {
	Cards []generation.Flashcard `json:"cards"`
}

// parseResponse decodes the model's JSON, tolerating a markdown code fence.
func parseResponse(text string) ([]generation.Flashcard, error) {
	text = strings.TrimSpace(text)
	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(text, "```")

	var parsed responseSchema
	if err := json.Unmarshal([]byte(strings.TrimSpace(text)), &parsed); err != nil {
		return nil, fmt.Errorf("%w: failed to parse JSON response: %v", generation.ErrInvalidResponse, err)
	}
	if len(parsed.Cards) == 0 {
		return nil, fmt.Errorf("%w: no cards in response", generation.ErrInvalidResponse)
	}

	cards := make([]generation.Flashcard, 0, len(parsed.Cards))
	for i, c := range parsed.Cards {
		q, a := strings.TrimSpace(c.Question), strings.TrimSpace(c.Answer)
		if q == "" || a == "" {
			return nil, fmt.Errorf("%w: card %d is missing a side", generation.ErrInvalidResponse, i)
		}
		cards = append(cards, generation.Flashcard{Question: q, Answer: a})
	}
	return cards, nil
}

func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
