//go:build integration

package testdb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/question-api/internal/platform/mongodb"
	"github.com/phrazzld/question-api/internal/platform/postgres"
	"github.com/phrazzld/question-api/internal/redact"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/mongo"
)

// TestTimeout bounds setup and teardown operations.
const TestTimeout = 10 * time.Second

// migrateOnce applies the schema once per test binary.
var (
	migrateOnce sync.Once
	migrateErr  error
)

// GetTestDB opens the PostgreSQL test database with the schema applied.
// The pool is closed when the test finishes.
func GetTestDB(t *testing.T) *sql.DB {
	t.Helper()

	url := PostgresURL(t)
	ctx, cancel := context.WithTimeout(context.Background(), TestTimeout)
	defer cancel()

	db, err := postgres.Open(ctx, url)
	require.NoError(t, err, "failed to open test database %s", redact.String(url))

	t.Cleanup(func() {
		if err := db.Close(); err != nil {
			t.Logf("Warning: failed to close test database: %v", err)
		}
	})

	migrateOnce.Do(func() {
		migrateErr = postgres.Migrate(ctx, db, postgres.MigrateUp, slog.Default())
	})
	require.NoError(t, migrateErr, "failed to migrate test database")

	return db
}

// WithTx runs fn inside a transaction that is always rolled back.
func WithTx(t *testing.T, db *sql.DB, fn func(t *testing.T, tx *sql.Tx)) {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), TestTimeout)
	defer cancel()

	tx, err := db.BeginTx(ctx, nil)
	require.NoError(t, err, "failed to begin transaction")

	defer func() {
		if err := tx.Rollback(); err != nil && !errors.Is(err, sql.ErrTxDone) {
			t.Logf("Warning: failed to rollback transaction: %v", err)
		}
	}()

	fn(t, tx)
}

// GetTestMongoDatabase returns a fresh MongoDB database with the store
// indexes created. The database is dropped when the test finishes.
func GetTestMongoDatabase(t *testing.T) *mongo.Database {
	t.Helper()

	uri := MongoURI(t)
	ctx, cancel := context.WithTimeout(context.Background(), TestTimeout)
	defer cancel()

	client, err := mongodb.Connect(ctx, uri)
	require.NoError(t, err, "failed to connect to test mongo %s", redact.String(uri))

	db := client.Database(fmt.Sprintf("question_api_test_%s", uuid.NewString()[:8]))
	require.NoError(t, mongodb.EnsureIndexes(ctx, db))

	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), TestTimeout)
		defer cancel()
		if err := db.Drop(ctx); err != nil {
			t.Logf("Warning: failed to drop test database: %v", err)
		}
		if err := client.Disconnect(ctx); err != nil {
			t.Logf("Warning: failed to disconnect from test mongo: %v", err)
		}
	})

	return db
}
