//go:build integration

// Package testdb provides helpers for integration tests that run against
// real PostgreSQL and MongoDB deployments.
//
// PostgreSQL tests run inside a transaction that is rolled back when the test
// finishes, so tests can run in parallel on one schema:
//
//	func TestPaperStore(t *testing.T) {
//	    db := testdb.GetTestDB(t)
//	    testdb.WithTx(t, db, func(t *testing.T, tx *sql.Tx) {
//	        papers := postgres.NewPostgresPaperStore(tx, slog.Default())
//	        ...
//	    })
//	}
//
// MongoDB tests get a uniquely named database that is dropped on cleanup.
//
// # Environment Variables
//
//   - QUESTION_TEST_DB_URL or DATABASE_URL: PostgreSQL connection string
//   - QUESTION_TEST_MONGO_URI or MONGO_URI: MongoDB connection string
//
// Tests are skipped when the variable for their backend is unset, except in
// CI (CI or GITHUB_ACTIONS set), where a missing database fails the test.
package testdb
