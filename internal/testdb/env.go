//go:build integration

package testdb

import (
	"os"
	"testing"
)

// Environment variables consulted for test connection strings, in order.
var (
	postgresURLVars = []string{"QUESTION_TEST_DB_URL", "DATABASE_URL"}
	mongoURIVars    = []string{"QUESTION_TEST_MONGO_URI", "MONGO_URI"}
)

func firstEnv(names []string) string {
	for _, name := range names {
		if v := os.Getenv(name); v != "" {
			return v
		}
	}
	return ""
}

// isCIEnvironment reports whether tests run under a CI system.
func isCIEnvironment() bool {
	return os.Getenv("CI") != "" || os.Getenv("GITHUB_ACTIONS") != ""
}

// requireURL returns the first set variable or skips the test. In CI a
// missing URL is a failure.
func requireURL(t *testing.T, names []string) string {
	t.Helper()

	url := firstEnv(names)
	if url != "" {
		return url
	}
	if isCIEnvironment() {
		t.Fatalf("none of %v is set in CI", names)
	}
	t.Skipf("none of %v is set - skipping integration test", names)
	return ""
}

// PostgresURL returns the PostgreSQL test URL, skipping the test when unset.
func PostgresURL(t *testing.T) string {
	t.Helper()
	return requireURL(t, postgresURLVars)
}

// MongoURI returns the MongoDB test URI, skipping the test when unset.
func MongoURI(t *testing.T) string {
	t.Helper()
	return requireURL(t, mongoURIVars)
}
