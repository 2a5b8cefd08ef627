//go:build integration

package testdb

import (
	"net/url"
	"os"
	"time"
)

// TestTimeout bounds connection checks made by this package.
const TestTimeout = 5 * time.Second

// databaseURLVars are consulted in order by GetTestDatabaseURL.
var databaseURLVars = []string{"DATABASE_URL", "FLASHDECK_TEST_DB_URL", "FLASHDECK_DATABASE_URL"}

// GetTestDatabaseURL returns the first database URL found in the environment.
func GetTestDatabaseURL() string {
	for _, name := range databaseURLVars {
		if v := os.Getenv(name); v != "" {
			return v
		}
	}
	return ""
}

// ShouldSkipDatabaseTest reports whether no database is configured.
func ShouldSkipDatabaseTest() bool {
	return GetTestDatabaseURL() == ""
}

// maskDatabaseURL hides the password of a connection URL for logging.
func maskDatabaseURL(dbURL string) string {
	u, err := url.Parse(dbURL)
	if err != nil || u.User == nil {
		return dbURL
	}
	if _, ok := u.User.Password(); ok {
		u.User = url.UserPassword(u.User.Username(), "xxxxx")
	}
	return u.String()
}
