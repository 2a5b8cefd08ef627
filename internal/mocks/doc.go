// Package mocks provides shared mock implementations for testing.
//
// Each mock has a function field per interface method. When a field is nil
// the mock returns its default values instead:
//
//	decks := &mocks.MockDeckService{
//	    GetDeckFn: func(ctx context.Context, ownerID string, deckID uuid.UUID) (*domain.Deck, error) {
//	        return nil, service.ErrNotOwned
//	    },
//	}
//
// When adding a new mock, name the file after the interface and keep the
// Fn-field plus defaults shape used here.
package mocks
