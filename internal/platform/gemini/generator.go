package gemini

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"google.golang.org/genai"

	"github.com/phrazzld/tasktag-api/internal/config"
	"github.com/phrazzld/tasktag-api/internal/enrichment"
)

// contentGenerator is the subset of *genai.Models the generator uses.
type contentGenerator interface {
	GenerateContent(
		ctx context.Context,
		model string,
		contents []*genai.Content,
		config *genai.GenerateContentConfig,
	) (*genai.GenerateContentResponse, error)
}

// Generator implements enrichment.TextGenerator using the Gemini API.
type Generator struct {
	logger *slog.Logger
	models contentGenerator
	model  string
}

var _ enrichment.TextGenerator = (*Generator)(nil)

// Options tweak the underlying genai client. Zero values use the defaults.
type Options struct {
	// BaseURL overrides the API endpoint.
	BaseURL string
	// HTTPClient replaces the transport used by the genai client.
	HTTPClient *http.Client
}

// NewGenerator creates a Generator from the LLM configuration.
func NewGenerator(ctx context.Context, logger *slog.Logger, cfg config.LLMConfig, opts Options) (*Generator, error) {
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}
	if cfg.GeminiAPIKey == "" {
		return nil, fmt.Errorf("%w: gemini API key cannot be empty", enrichment.ErrInvalidConfig)
	}
	if cfg.ModelName == "" {
		return nil, fmt.Errorf("%w: model name cannot be empty", enrichment.ErrInvalidConfig)
	}

	clientConfig := &genai.ClientConfig{
		APIKey:     cfg.GeminiAPIKey,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: opts.HTTPClient,
	}
	if opts.BaseURL != "" {
		clientConfig.HTTPOptions = genai.HTTPOptions{BaseURL: opts.BaseURL}
	}

	client, err := genai.NewClient(ctx, clientConfig)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create Gemini client: %v", enrichment.ErrInvalidConfig, err)
	}

	return newGenerator(logger, client.Models, cfg.ModelName), nil
}

func newGenerator(logger *slog.Logger, models contentGenerator, model string) *Generator {
	return &Generator{logger: logger, models: models, model: model}
}

// Generate sends prompt as a single user turn and returns the reply text.
func (g *Generator) Generate(ctx context.Context, prompt string) (string, error) {
	if strings.TrimSpace(prompt) == "" {
		return "", fmt.Errorf("%w: empty prompt", enrichment.ErrInvalidConfig)
	}

	g.logger.DebugContext(ctx, "making Gemini API call",
		"model", g.model,
		"prompt_length", len(prompt))

	resp, err := g.models.GenerateContent(ctx, g.model, genai.Text(prompt), &genai.GenerateContentConfig{
		// Low temperature keeps tag lists short and stable.
		Temperature: genai.Ptr[float32](0.2),
	})
	if err != nil {
		return "", fmt.Errorf("%w: %v", enrichment.ErrProviderUnavailable, err)
	}

	return g.extractText(ctx, resp)
}

func (g *Generator) extractText(ctx context.Context, resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil {
		return "", fmt.Errorf("%w: nil response", enrichment.ErrInvalidResponse)
	}
	if fb := resp.PromptFeedback; fb != nil && fb.BlockReason != "" {
		g.logger.WarnContext(ctx, "Gemini blocked the prompt", "block_reason", string(fb.BlockReason))
		return "", fmt.Errorf("%w: prompt blocked (%s)", enrichment.ErrContentBlocked, fb.BlockReason)
	}
	if len(resp.Candidates) == 0 {
		return "", fmt.Errorf("%w: no content generated", enrichment.ErrInvalidResponse)
	}

	switch reason := resp.Candidates[0].FinishReason; reason {
	case genai.FinishReasonSafety, genai.FinishReasonBlocklist, genai.FinishReasonProhibitedContent:
		g.logger.WarnContext(ctx, "Gemini blocked the reply", "finish_reason", string(reason))
		return "", fmt.Errorf("%w: reply blocked (%s)", enrichment.ErrContentBlocked, reason)
	}

	if resp.Candidates[0].Content == nil {
		return "", fmt.Errorf("%w: empty content in response", enrichment.ErrInvalidResponse)
	}

	text := resp.Text()
	if strings.TrimSpace(text) == "" {
		return "", fmt.Errorf("%w: empty text in response", enrichment.ErrInvalidResponse)
	}
	return text, nil
}
