// Package domain holds decks, cards, entitlements and their validation
// rules. It has no dependency on storage or transport.
package domain
