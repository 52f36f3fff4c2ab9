// Package main implements the entry point for the Question API server,
// which serves CRUD endpoints for papers and their authors.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
)

// apiVersion is reported in the OpenAPI document.
const apiVersion = "1.0.0"

func main() {
	migrateCmd := flag.String("migrate", "",
		"Run a database migration command (up, down, reset, status, version) and exit")
	flag.Parse()

	if err := run(context.Background(), *migrateCmd); err != nil {
		log.Fatalf("Question API failed: %v", err)
	}
}

// run loads configuration, sets up logging and either executes a migration
// command or serves HTTP until a shutdown signal arrives.
func run(ctx context.Context, migrateCmd string) error {
	cfg, err := loadAppConfig()
	if err != nil {
		return err
	}

	appLogger, err := setupAppLogger(cfg)
	if err != nil {
		return err
	}

	if migrateCmd != "" {
		if err := runMigrations(ctx, cfg, migrateCmd, appLogger); err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
		return nil
	}

	storage, err := setupStorage(ctx, cfg, appLogger)
	if err != nil {
		return err
	}

	app, err := newApplication(cfg, appLogger, storage)
	if err != nil {
		if closeErr := storage.Close(ctx); closeErr != nil {
			appLogger.Error("failed to close storage", slog.String("error", closeErr.Error()))
		}
		return err
	}

	return app.Run(ctx, shutdownSignals())
}
