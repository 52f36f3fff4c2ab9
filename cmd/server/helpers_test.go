package main

import (
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/phrazzld/question-api/internal/config"
	"github.com/phrazzld/question-api/internal/mocks"
	"github.com/phrazzld/question-api/internal/service/auth"
	"github.com/stretchr/testify/require"
)

func testConfig() *config.Config {
	return &config.Config{
		Server: config.ServerConfig{
			Port:                   3000,
			LogLevel:               "info",
			LegacyStatusCodes:      true,
			ShutdownTimeoutSeconds: 1,
		},
		Database: config.DatabaseConfig{
			Driver: config.DriverMongo,
			URL:    "mongodb://localhost:27017",
			Name:   "question_api_test",
		},
		Auth: config.AuthConfig{
			JWTSecret:            strings.Repeat("s", 32),
			TokenLifetimeMinutes: 60,
			BcryptCost:           4,
		},
	}
}

// newTestApp builds an application around mock stores with a real JWT service.
func newTestApp(t *testing.T, papers *mocks.MockPaperStore, users *mocks.MockUserStore) *application {
	t.Helper()

	cfg := testConfig()
	jwtService, err := auth.NewJWTService(cfg.Auth)
	require.NoError(t, err)

	return &application{
		config:     cfg,
		logger:     slog.New(slog.NewTextHandler(io.Discard, nil)),
		storage:    &storage{papers: papers, users: users},
		papers:     papers,
		users:      users,
		jwtService: jwtService,
		passwords:  &mocks.MockPasswordHasher{},
	}
}
