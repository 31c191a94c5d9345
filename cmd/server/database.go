package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/phrazzld/tasktag-api/internal/config"
	"github.com/phrazzld/tasktag-api/internal/platform/memory"
	"github.com/phrazzld/tasktag-api/internal/platform/postgres"
	"github.com/phrazzld/tasktag-api/internal/platform/sqlite"
	"github.com/phrazzld/tasktag-api/internal/store"
)

// openTaskStore connects the configured backend and bootstraps its schema.
// The returned store owns the connection; closing it closes the database.
func openTaskStore(ctx context.Context, cfg config.DatabaseConfig, logger *slog.Logger) (store.TaskStore, error) {
	storeLogger := logger.With("component", "task_store", "driver", cfg.Driver)

	switch cfg.Driver {
	case config.DriverMemory:
		storeLogger.Warn("Using in-memory task store, tasks will not survive a restart")
		return memory.NewTaskStore(), nil

	case config.DriverPostgres:
		db, err := postgres.Open(ctx, cfg.URL)
		if err != nil {
			return nil, fmt.Errorf("failed to open postgres database: %w", err)
		}
		if err := bootstrap(ctx, db, postgres.Migrate, storeLogger); err != nil {
			return nil, err
		}
		return postgres.NewPostgresTaskStore(db, storeLogger), nil

	case config.DriverSQLite:
		db, err := sqlite.Open(ctx, cfg.URL)
		if err != nil {
			return nil, fmt.Errorf("failed to open sqlite database: %w", err)
		}
		if err := bootstrap(ctx, db, sqlite.Migrate, storeLogger); err != nil {
			return nil, err
		}
		return sqlite.NewSQLiteTaskStore(db, storeLogger), nil

	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}
}

type migrateFunc func(ctx context.Context, db *sql.DB, logger *slog.Logger) error

// bootstrap applies the schema and closes db when that fails.
func bootstrap(ctx context.Context, db *sql.DB, migrate migrateFunc, logger *slog.Logger) error {
	if err := migrate(ctx, db, logger); err != nil {
		if closeErr := db.Close(); closeErr != nil {
			logger.Error("Error closing database connection", "error", closeErr)
		}
		return fmt.Errorf("failed to bootstrap schema: %w", err)
	}
	logger.Info("Database connection established")
	return nil
}
