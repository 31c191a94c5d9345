// Package main implements the entry point for the task API server, which
// stores tasks, tags them through a language model and serves the client
// bundle.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/phrazzld/tasktag-api/internal/config"
	"github.com/phrazzld/tasktag-api/internal/platform/logger"
	"github.com/phrazzld/tasktag-api/internal/redact"
)

func main() {
	migrateOnly := flag.Bool("migrate-only", false, "bootstrap the database schema and exit")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, *migrateOnly); err != nil {
		slog.Error("server exited with error", "error", redact.Error(err))
		os.Exit(1)
	}
}

// run loads configuration, opens the task store and either stops after the
// schema bootstrap or serves until ctx is canceled.
func run(ctx context.Context, migrateOnly bool) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	log, err := logger.Setup(cfg.Server)
	if err != nil {
		return fmt.Errorf("failed to set up logger: %w", err)
	}

	log.Info("Server configuration loaded",
		"port", cfg.Server.Port,
		"log_level", cfg.Server.LogLevel,
		"database_driver", cfg.Database.Driver,
		"llm_provider", cfg.LLM.Provider,
		"llm_model", cfg.LLM.ModelName)

	tasks, err := openTaskStore(ctx, cfg.Database, log)
	if err != nil {
		return err
	}

	if migrateOnly {
		log.Info("Schema bootstrap complete, exiting")
		return tasks.Close()
	}

	app, err := newApplication(ctx, cfg, log, tasks)
	if err != nil {
		if closeErr := tasks.Close(); closeErr != nil {
			log.Error("Error closing task store", "error", closeErr)
		}
		return fmt.Errorf("failed to initialize application: %w", err)
	}

	return app.Run(ctx)
}
