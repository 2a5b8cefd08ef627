// Package store declares the persistence contracts for decks and cards.
//
// Every card operation takes the acting owner ID and re-checks that the
// owner holds the deck, so callers never see another owner's records. A
// missing deck and a foreign deck produce the same ErrDeckNotFound.
package store
