package domain

import (
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
)

// MaxCardTextLength is the maximum number of characters on either side of a card.
const MaxCardTextLength = 2000

// Card-specific validation errors
var (
	// ErrCardIDEmpty is returned when a card ID is empty or nil.
	ErrCardIDEmpty = NewValidationError("id", "cannot be empty", ErrInvalidID)

	// ErrCardDeckIDEmpty is returned when a card's deck ID is empty or nil.
	ErrCardDeckIDEmpty = NewValidationError("deck_id", "cannot be empty", ErrInvalidID)

	// ErrCardFrontEmpty is returned when a card has no front text.
	ErrCardFrontEmpty = NewValidationError("front", "is required", ErrEmptyContent)

	// ErrCardBackEmpty is returned when a card has no back text.
	ErrCardBackEmpty = NewValidationError("back", "is required", ErrEmptyContent)

	// ErrCardFrontTooLong is returned when the front exceeds MaxCardTextLength.
	ErrCardFrontTooLong = NewValidationError("front", "must be at most 2000 characters", ErrContentTooLong)

	// ErrCardBackTooLong is returned when the back exceeds MaxCardTextLength.
	ErrCardBackTooLong = NewValidationError("back", "must be at most 2000 characters", ErrContentTooLong)
)

// Card is a single question/answer pair belonging to a deck.
type Card struct {
	ID        uuid.UUID `json:"id"`
	DeckID    uuid.UUID `json:"deck_id"`
	Front     string    `json:"front"`
	Back      string    `json:"back"`
	SortOrder *int      `json:"sort_order,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewCard creates a new Card in deckID with a fresh ID and timestamps.
// Returns an error if validation fails.
func NewCard(deckID uuid.UUID, front, back string) (*Card, error) {
	now := time.Now().UTC()
	card := &Card{
		ID:        uuid.New(),
		DeckID:    deckID,
		Front:     front,
		Back:      back,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := card.Validate(); err != nil {
		return nil, err
	}

	return card, nil
}

// Validate checks if the Card has valid data.
func (c *Card) Validate() error {
	if c.ID == uuid.Nil {
		return ErrCardIDEmpty
	}

	if c.DeckID == uuid.Nil {
		return ErrCardDeckIDEmpty
	}

	if err := ValidateFront(c.Front); err != nil {
		return err
	}

	return ValidateBack(c.Back)
}

// ValidateFront checks the front text of a card.
func ValidateFront(front string) error {
	if front == "" {
		return ErrCardFrontEmpty
	}
	if utf8.RuneCountInString(front) > MaxCardTextLength {
		return ErrCardFrontTooLong
	}
	return nil
}

// ValidateBack checks the back text of a card.
func ValidateBack(back string) error {
	if back == "" {
		return ErrCardBackEmpty
	}
	if utf8.RuneCountInString(back) > MaxCardTextLength {
		return ErrCardBackTooLong
	}
	return nil
}

// CardUpdate carries a partial change to a card. Nil fields are left as is.
type CardUpdate struct {
	Front *string `json:"front,omitempty"`
	Back  *string `json:"back,omitempty"`
}

// IsEmpty reports whether the update changes nothing.
func (u CardUpdate) IsEmpty() bool {
	return u.Front == nil && u.Back == nil
}

// Validate checks every field present in the update.
func (u CardUpdate) Validate() error {
	if u.Front != nil {
		if err := ValidateFront(*u.Front); err != nil {
			return err
		}
	}
	if u.Back != nil {
		if err := ValidateBack(*u.Back); err != nil {
			return err
		}
	}
	return nil
}

// Apply writes the update onto the card and bumps UpdatedAt.
func (c *Card) Apply(u CardUpdate) {
	if u.IsEmpty() {
		return
	}
	if u.Front != nil {
		c.Front = *u.Front
	}
	if u.Back != nil {
		c.Back = *u.Back
	}
	c.UpdatedAt = time.Now().UTC()
}
