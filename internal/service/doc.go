// Package service holds the application use cases for decks and cards.
// Services coordinate domain types with the stores in internal/store,
// enforce ownership and plan limits, run bulk edits through the
// reconciler and call the card generator.
//
// Every operation takes the acting owner explicitly. A deck that is missing
// and a deck owned by someone else produce the same store.ErrDeckNotFound.
package service
