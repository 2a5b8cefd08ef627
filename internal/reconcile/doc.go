// Package reconcile batches local edits and deletions of a deck's cards into
// a single commit against a CardWriter.
//
// A Reconciler holds the canonical snapshot of a deck, a working copy that
// the user edits, and a set of card IDs marked for deletion. Commit sends
// only the fields that changed, never updates a card that is also marked
// deleted, and issues every update and delete concurrently. The commit
// reports success only when every request succeeded; on failure the working
// copy and deletion set are kept so the caller can retry.
package reconcile
