//go:build integration

package testdb

import (
	"context"
	"database/sql"
	"sync"
	"testing"

	"github.com/phrazzld/flashdeck/internal/config"
	"github.com/phrazzld/flashdeck/internal/platform/postgres"
	"github.com/stretchr/testify/require"
)

var (
	migrateOnce sync.Once
	migrateErr  error
)

// GetTestDBWithT opens the test database, migrates it once per test binary
// and registers cleanup. The test is skipped when no database is configured.
func GetTestDBWithT(t *testing.T) *sql.DB {
	t.Helper()

	dbURL := GetTestDatabaseURL()
	if dbURL == "" {
		t.Skip("DATABASE_URL or FLASHDECK_TEST_DB_URL not set - skipping integration test")
	}

	ctx, cancel := context.WithTimeout(context.Background(), TestTimeout)
	defer cancel()

	db, err := postgres.Open(ctx, config.DatabaseConfig{
		URL:             dbURL,
		MaxOpenConns:    10,
		MaxIdleConns:    5,
		ConnMaxLifetime: 5,
	}, nil)
	require.NoError(t, err, "failed to connect to %s", maskDatabaseURL(dbURL))

	t.Cleanup(func() {
		if err := db.Close(); err != nil {
			t.Logf("warning: failed to close database: %v", err)
		}
	})

	migrateOnce.Do(func() {
		migrateErr = postgres.Migrate(context.Background(), db, postgres.MigrateUp, nil)
	})
	require.NoError(t, migrateErr, "failed to migrate test database")

	return db
}
