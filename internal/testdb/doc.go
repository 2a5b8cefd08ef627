//go:build integration

// Package testdb provides helpers for integration tests that need a real
// PostgreSQL database.
//
// Each test runs inside its own transaction, which is rolled back when the
// test finishes, so tests can run in parallel against the same schema:
//
//	func TestDeckStore(t *testing.T) {
//	    t.Parallel()
//	    db := testdb.GetTestDBWithT(t)
//
//	    testdb.WithTx(t, db, func(t *testing.T, tx *sql.Tx) {
//	        decks := postgres.NewPostgresDeckStore(tx, nil)
//	        // ...
//	    })
//	}
//
// Tests are skipped when neither DATABASE_URL nor FLASHDECK_TEST_DB_URL is set.
// The schema is migrated once per test binary with the embedded migrations.
package testdb
