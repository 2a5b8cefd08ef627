package domain

import (
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
)

// Deck field limits.
const (
	MaxDeckTitleLength       = 255
	MaxDeckDescriptionLength = 2000
)

// Deck-specific validation errors
var (
	ErrDeckIDEmpty    = NewValidationError("id", "cannot be empty", ErrInvalidID)
	ErrDeckOwnerEmpty = NewValidationError("owner_id", "cannot be empty", ErrInvalidID)
	ErrDeckTitleEmpty = NewValidationError("title", "Title is required", ErrEmptyContent)

	ErrDeckTitleTooLong = NewValidationError(
		"title", "must be at most 255 characters", ErrContentTooLong)
	ErrDeckDescriptionTooLong = NewValidationError(
		"description", "Description is too long", ErrContentTooLong)
)

// Deck groups cards under a single owner. OwnerID is the opaque identity
// issued by the identity provider and never changes after creation.
type Deck struct {
	ID          uuid.UUID `json:"id"`
	OwnerID     string    `json:"owner_id"`
	Title       string    `json:"title"`
	Description *string   `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// NewDeck creates a validated Deck owned by ownerID.
// A blank description is stored as no description.
func NewDeck(ownerID, title, description string) (*Deck, error) {
	now := time.Now().UTC()
	deck := &Deck{
		ID:          uuid.New(),
		OwnerID:     ownerID,
		Title:       title,
		Description: NormalizeDescription(description),
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := deck.Validate(); err != nil {
		return nil, err
	}

	return deck, nil
}

// Validate checks if the Deck has valid data.
func (d *Deck) Validate() error {
	if d.ID == uuid.Nil {
		return ErrDeckIDEmpty
	}
	if d.OwnerID == "" {
		return ErrDeckOwnerEmpty
	}
	if err := ValidateDeckTitle(d.Title); err != nil {
		return err
	}
	if d.Description != nil {
		return ValidateDeckDescription(*d.Description)
	}
	return nil
}

// ValidateDeckTitle checks a deck title.
func ValidateDeckTitle(title string) error {
	if title == "" {
		return ErrDeckTitleEmpty
	}
	if utf8.RuneCountInString(title) > MaxDeckTitleLength {
		return ErrDeckTitleTooLong
	}
	return nil
}

// ValidateDeckDescription checks a deck description.
func ValidateDeckDescription(description string) error {
	if utf8.RuneCountInString(description) > MaxDeckDescriptionLength {
		return ErrDeckDescriptionTooLong
	}
	return nil
}

// NormalizeDescription maps a blank description to nil.
func NormalizeDescription(description string) *string {
	if strings.TrimSpace(description) == "" {
		return nil
	}
	return &description
}

// DescriptionText returns the description or an empty string.
func (d *Deck) DescriptionText() string {
	if d.Description == nil {
		return ""
	}
	return *d.Description
}

// Update replaces title and description and bumps UpdatedAt.
func (d *Deck) Update(title, description string) error {
	updated := *d
	updated.Title = title
	updated.Description = NormalizeDescription(description)
	if err := updated.Validate(); err != nil {
		return err
	}
	updated.UpdatedAt = time.Now().UTC()
	*d = updated
	return nil
}
