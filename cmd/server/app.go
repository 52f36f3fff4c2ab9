package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/phrazzld/question-api/internal/api"
	"github.com/phrazzld/question-api/internal/config"
	"github.com/phrazzld/question-api/internal/service/auth"
	"github.com/phrazzld/question-api/internal/store"
)

// application holds the shared dependencies of the server and releases
// them on shutdown.
type application struct {
	config *config.Config
	logger *slog.Logger

	storage *storage
	papers  store.PaperStore
	users   store.UserStore

	jwtService auth.JWTService
	passwords  api.PasswordService
}

// newApplication wires services around an established storage connection.
func newApplication(cfg *config.Config, logger *slog.Logger, st *storage) (*application, error) {
	app := &application{
		config:  cfg,
		logger:  logger,
		storage: st,
		papers:  st.papers,
		users:   st.users,
	}

	var err error
	app.jwtService, err = auth.NewJWTService(cfg.Auth)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize JWT service: %w", err)
	}
	logger.Info("JWT authentication service initialized",
		"token_lifetime_minutes", cfg.Auth.TokenLifetimeMinutes)

	hasher := auth.NewBcryptHasher(cfg.Auth.BcryptCost)
	app.passwords = hasher
	logger.Debug("password hasher initialized", "bcrypt_cost", hasher.Cost())

	logger.Info("Application initialized successfully")
	return app, nil
}

// statusPolicy returns the configured response status policy.
func (app *application) statusPolicy() api.StatusPolicy {
	if app.config.Server.LegacyStatusCodes {
		return api.LegacyStatusPolicy()
	}
	return api.StrictStatusPolicy()
}

// Run serves HTTP until ctx is canceled or a signal arrives on signals,
// then shuts down gracefully.
func (app *application) Run(ctx context.Context, signals <-chan os.Signal) error {
	router := app.setupRouter()

	if err := app.startHTTPServer(ctx, router, signals); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

// cleanup handles graceful shutdown of application resources.
func (app *application) cleanup(ctx context.Context) {
	if err := app.storage.Close(ctx); err != nil {
		app.logger.Error("Error closing storage connection", "error", err)
	}
	app.logger.Info("Application shutdown completed")
}
