// Package generation defines how flashcards are produced by an external
// language model. It owns the Generator interface, the request shape and
// the heuristic that picks the translation prompt for language decks.
// The Gemini implementation lives in internal/platform/gemini.
package generation
