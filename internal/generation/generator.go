package generation

import (
	"context"
	"fmt"
	"strings"
)

// DefaultCardCount is the number of cards requested when a Request leaves Count unset.
const DefaultCardCount = 20

// Request describes one generation run.
type Request struct {
	// Topic is the subject handed to the model, see Topic.
	Topic string
	// Count is how many cards to ask for.
	Count int
	// LanguageLearning selects the plain translation prompt.
	LanguageLearning bool
}

// Validate checks the request and fills in defaults.
func (r *Request) Validate() error {
	if strings.TrimSpace(r.Topic) == "" {
		return ErrEmptyTopic
	}
	if r.Count < 0 {
		return fmt.Errorf("%w: card count must not be negative", ErrInvalidConfig)
	}
	if r.Count == 0 {
		r.Count = DefaultCardCount
	}
	return nil
}

// Flashcard is a single question/answer pair returned by a Generator.
type Flashcard struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// Generator produces flashcards for a topic.
type Generator interface {
	// GenerateCards returns the generated pairs. Errors wrap one of the
	// sentinels in this package so callers can tell transient failures
	// from rejected or malformed output.
	GenerateCards(ctx context.Context, req Request) ([]Flashcard, error)
}
