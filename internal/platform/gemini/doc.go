// Package gemini implements generation.Generator on top of Google's Gemini
// API through the google.golang.org/genai client.
//
// Prompts are embedded text templates, one for general study decks and one
// for language decks. Responses are requested as JSON and parsed into
// generation.Flashcard values. Transient API failures are retried with
// exponential backoff and jitter; blocked or malformed output is not.
package gemini
