// Package postgres implements the store interfaces on PostgreSQL through
// the pgx stdlib driver, and owns the embedded goose migrations that create
// the decks and cards tables.
//
// Driver errors are translated with MapError so callers only ever see the
// store sentinels.
package postgres
