package postgres

import (
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/require"
)

const (
	testPaperID  = "6f1c2a9e-3b55-4c1e-9d0b-2a7f1e4d5c61"
	testAuthorID = "0b7e4f3c-8d2a-4f6b-a1c9-5e3d2b1a0f98"
)

func newMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() {
		require.NoError(t, mock.ExpectationsWereMet())
		_ = db.Close()
	})
	return db, mock
}

func pgError(code string) error {
	return &pgconn.PgError{Code: code}
}
