package main

import (
	"context"
	"fmt"
	"log/slog"
	"net"

	"github.com/phrazzld/tasktag-api/internal/config"
	"github.com/phrazzld/tasktag-api/internal/domain"
	"github.com/phrazzld/tasktag-api/internal/enrichment"
	"github.com/phrazzld/tasktag-api/internal/platform/gemini"
	"github.com/phrazzld/tasktag-api/internal/platform/ollama"
	"github.com/phrazzld/tasktag-api/internal/service"
	"github.com/phrazzld/tasktag-api/internal/store"
)

// application holds all the shared application dependencies to simplify management
// and ensure proper cleanup on shutdown.
type application struct {
	config *config.Config
	logger *slog.Logger

	tasks       store.TaskStore
	taskService service.TaskService
}

// newApplication wires the enrichment chain and the task service around an
// already opened store. Ownership of tasks passes to the application only
// when it returns without error.
func newApplication(
	ctx context.Context,
	cfg *config.Config,
	logger *slog.Logger,
	tasks store.TaskStore,
) (*application, error) {
	generator, err := newTextGenerator(ctx, cfg.LLM, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize LLM provider: %w", err)
	}

	enricher, err := enrichment.New(cfg.LLM, generator, logger.With("component", "enricher"))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize enricher: %w", err)
	}
	logger.Info("Tag enrichment initialized",
		"provider", cfg.LLM.Provider,
		"timeout", cfg.LLM.Timeout(),
		"requests_per_minute", cfg.LLM.RequestsPerMinute,
		"cache_size", cfg.LLM.CacheSize)

	// Ids are timestamps; seeding from the store keeps them increasing across
	// restarts even if the clock moved backwards.
	ids := domain.NewIDGenerator()
	maxID, err := tasks.MaxID(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read highest task id: %w", err)
	}
	ids.Seed(maxID)

	taskService, err := service.NewTaskService(tasks, enricher, ids, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create task service: %w", err)
	}

	logger.Info("Application initialized successfully")
	return &application{
		config:      cfg,
		logger:      logger,
		tasks:       tasks,
		taskService: taskService,
	}, nil
}

func newTextGenerator(ctx context.Context, cfg config.LLMConfig, logger *slog.Logger) (enrichment.TextGenerator, error) {
	genLogger := logger.With("component", "llm_generator", "provider", cfg.Provider)

	switch cfg.Provider {
	case config.ProviderGemini:
		g, err := gemini.NewGenerator(ctx, genLogger, cfg, gemini.Options{})
		if err != nil {
			return nil, err
		}
		return g, nil
	case config.ProviderOllama:
		c, err := ollama.NewClient(cfg, nil, genLogger)
		if err != nil {
			return nil, err
		}
		return c, nil
	default:
		return nil, fmt.Errorf("%w: unsupported provider %q", enrichment.ErrInvalidConfig, cfg.Provider)
	}
}

// Run listens on the configured port and serves until ctx is canceled.
func (app *application) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", fmt.Sprintf(":%d", app.config.Server.Port))
	if err != nil {
		app.cleanup()
		return fmt.Errorf("failed to listen: %w", err)
	}
	return app.serve(ctx, ln, app.routes())
}

// cleanup handles graceful shutdown of application resources.
func (app *application) cleanup() {
	if err := app.tasks.Close(); err != nil {
		app.logger.Error("Error closing task store", "error", err)
	}
	app.logger.Info("Application shutdown completed")
}
