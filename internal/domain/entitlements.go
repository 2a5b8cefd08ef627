package domain

// Feature names a capability granted to an owner by the identity provider.
type Feature string

const (
	FeatureUnlimitedDecks Feature = "unlimited_decks"
	FeatureThreeDeckLimit Feature = "3_deck_limit"
	FeatureAIGeneration   Feature = "ai_flashcard_generation"
)

// FreePlanDeckLimit is the number of decks allowed under FeatureThreeDeckLimit.
const FreePlanDeckLimit = 3

// Entitlements is the set of features granted to the current caller.
type Entitlements map[Feature]struct{}

// NewEntitlements builds an Entitlements set from raw feature names.
// Empty names are ignored.
func NewEntitlements(features ...string) Entitlements {
	e := make(Entitlements, len(features))
	for _, f := range features {
		if f == "" {
			continue
		}
		e[Feature(f)] = struct{}{}
	}
	return e
}

// Has reports whether f is granted.
func (e Entitlements) Has(f Feature) bool {
	_, ok := e[f]
	return ok
}

// DeckLimit returns the maximum number of decks the caller may own and
// whether any limit applies.
func (e Entitlements) DeckLimit() (int, bool) {
	if e.Has(FeatureThreeDeckLimit) && !e.Has(FeatureUnlimitedDecks) {
		return FreePlanDeckLimit, true
	}
	return 0, false
}

// Names returns the granted feature names.
func (e Entitlements) Names() []string {
	names := make([]string, 0, len(e))
	for f := range e {
		names = append(names, string(f))
	}
	return names
}
