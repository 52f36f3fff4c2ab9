//go:build integration

package postgres_test

import (
	"database/sql"
	"log/slog"
	"testing"

	"github.com/google/uuid"
	"github.com/phrazzld/question-api/internal/platform/postgres"
	"github.com/phrazzld/question-api/internal/store/storetest"
	"github.com/phrazzld/question-api/internal/testdb"
)

func TestPostgresUserStore_Integration(t *testing.T) {
	t.Parallel()

	db := testdb.GetTestDB(t)
	testdb.WithTx(t, db, func(t *testing.T, tx *sql.Tx) {
		users := postgres.NewPostgresUserStore(tx, slog.Default())
		storetest.RunUserStoreTests(t, users, uuid.NewString())
	})
}

func TestPostgresPaperStore_Integration(t *testing.T) {
	t.Parallel()

	db := testdb.GetTestDB(t)
	testdb.WithTx(t, db, func(t *testing.T, tx *sql.Tx) {
		users := postgres.NewPostgresUserStore(tx, slog.Default())
		papers := postgres.NewPostgresPaperStore(tx, slog.Default())
		storetest.RunPaperStoreTests(t, papers, users, uuid.NewString())
	})
}
