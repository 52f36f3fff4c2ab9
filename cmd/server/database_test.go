package main

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/phrazzld/question-api/internal/platform/postgres"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestSetupStorage_UnsupportedDriver(t *testing.T) {
	t.Parallel()

	cfg := testConfig()
	cfg.Database.Driver = "sqlite"

	st, err := setupStorage(context.Background(), cfg, discardLogger())
	assert.Nil(t, st)
	assert.ErrorContains(t, err, `unsupported database driver "sqlite"`)
}

func TestRunMigrations_MongoOnlySupportsUp(t *testing.T) {
	t.Parallel()

	cfg := testConfig()

	err := runMigrations(context.Background(), cfg, postgres.MigrateDown, discardLogger())
	assert.ErrorContains(t, err, "not supported for the mongo driver")
}

func TestNewPostgresStorage(t *testing.T) {
	t.Parallel()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	mock.ExpectClose()

	st := newPostgresStorage(db, discardLogger())
	assert.IsType(t, &postgres.PostgresPaperStore{}, st.papers)
	assert.IsType(t, &postgres.PostgresUserStore{}, st.users)

	require.NoError(t, st.Close(context.Background()))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStorageClose_Nil(t *testing.T) {
	t.Parallel()

	var st *storage
	assert.NoError(t, st.Close(context.Background()))
}

func TestNewApplication(t *testing.T) {
	t.Parallel()

	cfg := testConfig()
	app, err := newApplication(cfg, discardLogger(), &storage{})
	require.NoError(t, err)
	assert.NotNil(t, app.jwtService)
	assert.NotNil(t, app.passwords)
	assert.Equal(t, 201, app.statusPolicy().Collection())

	cfg.Auth.JWTSecret = "short"
	_, err = newApplication(cfg, discardLogger(), &storage{})
	assert.ErrorContains(t, err, "failed to initialize JWT service")
}
