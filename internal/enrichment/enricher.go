package enrichment

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/phrazzld/tasktag-api/internal/config"
)

// Enricher produces classification tags for a task.
//
// This interface is the boundary between the task service and the language
// model. Implementations return a non-empty tag list or an error wrapping
// ErrEnrichment.
type Enricher interface {
	Enrich(ctx context.Context, title, description string) ([]string, error)
}

// TextGenerator sends a single prompt to a language model and returns its
// raw text reply. Provider adapters implement it.
type TextGenerator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// DefaultTimeout bounds a call when no timeout is configured.
const DefaultTimeout = 30 * time.Second

// Client is the Enricher backed by a TextGenerator.
type Client struct {
	generator TextGenerator
	prompt    *Prompt
	timeout   time.Duration
	logger    *slog.Logger
}

var _ Enricher = (*Client)(nil)

// NewClient creates a Client. A non-positive timeout selects DefaultTimeout.
func NewClient(generator TextGenerator, prompt *Prompt, timeout time.Duration, logger *slog.Logger) (*Client, error) {
	if generator == nil {
		return nil, fmt.Errorf("%w: text generator cannot be nil", ErrInvalidConfig)
	}
	if prompt == nil {
		return nil, fmt.Errorf("%w: prompt cannot be nil", ErrInvalidConfig)
	}
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	return &Client{
		generator: generator,
		prompt:    prompt,
		timeout:   timeout,
		logger:    logger,
	}, nil
}

// Enrich renders the prompt, calls the model under the client's timeout and
// parses the reply into tags.
func (c *Client) Enrich(ctx context.Context, title, description string) ([]string, error) {
	prompt, err := c.prompt.Render(title, description)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	callCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	start := time.Now()
	reply, err := c.generator.Generate(callCtx, prompt)
	elapsed := time.Since(start)
	if err != nil {
		err = classify(callCtx, err)
		c.logger.WarnContext(ctx, "language model call failed",
			"error", err,
			"duration_ms", elapsed.Milliseconds())
		return nil, err
	}

	tags, err := ParseTags(reply)
	if err != nil {
		c.logger.WarnContext(ctx, "language model reply had no usable tags",
			"reply_length", len(reply))
		return nil, err
	}

	c.logger.DebugContext(ctx, "task enriched",
		"tag_count", len(tags),
		"duration_ms", elapsed.Milliseconds())
	return tags, nil
}

// classify makes every generator failure part of the ErrEnrichment family.
func classify(ctx context.Context, err error) error {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
		if errors.Is(err, ErrTimeout) {
			return err
		}
		return fmt.Errorf("%w: %v", ErrTimeout, err)
	}
	if errors.Is(err, ErrEnrichment) {
		return err
	}
	return fmt.Errorf("%w: %v", ErrProviderUnavailable, err)
}

// New builds the configured Enricher chain around generator: the timeout
// bound Client, then the rate limiter and the cache when enabled.
func New(cfg config.LLMConfig, generator TextGenerator, logger *slog.Logger) (Enricher, error) {
	prompt, err := LoadPrompt(cfg.PromptTemplatePath)
	if err != nil {
		return nil, err
	}

	client, err := NewClient(generator, prompt, cfg.Timeout(), logger)
	if err != nil {
		return nil, err
	}

	var enricher Enricher = client
	if cfg.RequestsPerMinute > 0 {
		enricher = RateLimited(enricher, cfg.RequestsPerMinute)
	}
	if cfg.CacheSize > 0 {
		enricher, err = Cached(enricher, cfg.CacheSize)
		if err != nil {
			return nil, err
		}
	}

	return enricher, nil
}
