// Package study implements the review session state machine: a single
// shuffled pass over a fixed snapshot of a deck's cards with per-card
// correct/incorrect outcomes.
//
// A Session is one of three states. Empty has no cards. Active has at least
// one unanswered position. Finished has an outcome recorded at every
// position and only Restart leaves it. Every transition that is not defined
// for the current state is a silent no-op, so input events that arrive late
// (a key press after the last card) can be applied without checks.
//
// The package performs no I/O. Cards are supplied once when the session is
// created and the caller's slice is never reordered.
package study
