package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/phrazzld/question-api/internal/config"
	"github.com/phrazzld/question-api/internal/platform/mongodb"
	"github.com/phrazzld/question-api/internal/platform/postgres"
	"github.com/phrazzld/question-api/internal/store"
	"go.mongodb.org/mongo-driver/mongo"
)

// storage bundles the resource stores with the connection backing them.
// The connection is opened once and shared by every request.
type storage struct {
	papers store.PaperStore
	users  store.UserStore
	close  func(ctx context.Context) error
}

// Close releases the underlying connection.
func (s *storage) Close(ctx context.Context) error {
	if s == nil || s.close == nil {
		return nil
	}
	return s.close(ctx)
}

// setupStorage connects to the configured backend and builds its stores.
func setupStorage(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*storage, error) {
	switch cfg.Database.Driver {
	case config.DriverMongo:
		return setupMongoStorage(ctx, cfg, logger)
	case config.DriverPostgres:
		return setupPostgresStorage(ctx, cfg, logger)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Database.Driver)
	}
}

func setupMongoStorage(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*storage, error) {
	client, err := mongodb.Connect(ctx, cfg.Database.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongo: %w", err)
	}

	db := client.Database(cfg.Database.Name)
	if err := mongodb.EnsureIndexes(ctx, db); err != nil {
		_ = client.Disconnect(ctx)
		return nil, err
	}
	logger.Info("MongoDB connection established", "database", cfg.Database.Name)

	return newMongoStorage(client, db, logger), nil
}

func newMongoStorage(client *mongo.Client, db *mongo.Database, logger *slog.Logger) *storage {
	return &storage{
		papers: mongodb.NewMongoPaperStore(db, logger),
		users:  mongodb.NewMongoUserStore(db, logger),
		close:  client.Disconnect,
	}
}

func setupPostgresStorage(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*storage, error) {
	db, err := postgres.Open(ctx, cfg.Database.URL)
	if err != nil {
		return nil, err
	}

	if cfg.Database.AutoMigrate {
		if err := postgres.Migrate(ctx, db, postgres.MigrateUp, logger); err != nil {
			_ = db.Close()
			return nil, err
		}
	}
	logger.Info("Database connection established", "auto_migrate", cfg.Database.AutoMigrate)

	return newPostgresStorage(db, logger), nil
}

func newPostgresStorage(db *sql.DB, logger *slog.Logger) *storage {
	return &storage{
		papers: postgres.NewPostgresPaperStore(db, logger),
		users:  postgres.NewPostgresUserStore(db, logger),
		close: func(context.Context) error {
			return db.Close()
		},
	}
}

// runMigrations executes a one-shot migration command. For MongoDB the only
// schema work is index creation, which "up" performs.
func runMigrations(ctx context.Context, cfg *config.Config, command string, logger *slog.Logger) error {
	switch cfg.Database.Driver {
	case config.DriverPostgres:
		db, err := postgres.Open(ctx, cfg.Database.URL)
		if err != nil {
			return err
		}
		defer func() {
			if err := db.Close(); err != nil {
				logger.Error("failed to close database connection", "error", err)
			}
		}()
		return postgres.Migrate(ctx, db, command, logger)

	case config.DriverMongo:
		if command != postgres.MigrateUp {
			return fmt.Errorf("migration command %q is not supported for the mongo driver", command)
		}
		client, err := mongodb.Connect(ctx, cfg.Database.URL)
		if err != nil {
			return fmt.Errorf("failed to connect to mongo: %w", err)
		}
		defer func() {
			if err := client.Disconnect(ctx); err != nil {
				logger.Error("failed to disconnect from mongo", "error", err)
			}
		}()
		return mongodb.EnsureIndexes(ctx, client.Database(cfg.Database.Name))

	default:
		return fmt.Errorf("unsupported database driver %q", cfg.Database.Driver)
	}
}
