package ollama

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/phrazzld/tasktag-api/internal/config"
	"github.com/phrazzld/tasktag-api/internal/enrichment"
)

// DefaultModel is used when no model name is configured.
const DefaultModel = "llama3.1"

// maxErrorBody caps how much of an error response is kept for the log.
const maxErrorBody = 4 << 10

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
	Stream   bool          `json:"stream"`
}

type chatResponse struct {
	Model   string      `json:"model"`
	Message chatMessage `json:"message"`
	Done    bool        `json:"done"`
	Error   string      `json:"error,omitempty"`
}

// Client talks to an Ollama server.
type Client struct {
	baseURL    string
	model      string
	httpClient *http.Client
	logger     *slog.Logger
}

var _ enrichment.TextGenerator = (*Client)(nil)

// NewClient creates a Client from the LLM configuration. A nil httpClient
// selects http.DefaultClient; request deadlines come from the context.
func NewClient(cfg config.LLMConfig, httpClient *http.Client, logger *slog.Logger) (*Client, error) {
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}
	base := strings.TrimRight(cfg.OllamaURL, "/")
	if base == "" {
		return nil, fmt.Errorf("%w: ollama URL cannot be empty", enrichment.ErrInvalidConfig)
	}
	if _, err := url.ParseRequestURI(base); err != nil {
		return nil, fmt.Errorf("%w: invalid ollama URL %q: %v", enrichment.ErrInvalidConfig, base, err)
	}
	model := cfg.ModelName
	if model == "" {
		model = DefaultModel
	}
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	return &Client{
		baseURL:    base,
		model:      model,
		httpClient: httpClient,
		logger:     logger,
	}, nil
}

// Generate sends prompt as a single user message and returns the reply.
func (c *Client) Generate(ctx context.Context, prompt string) (string, error) {
	body, err := json.Marshal(chatRequest{
		Model:    c.model,
		Messages: []chatMessage{{Role: "user", Content: prompt}},
		Stream:   false,
	})
	if err != nil {
		return "", fmt.Errorf("%w: failed to marshal request: %v", enrichment.ErrInvalidConfig, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/chat", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("%w: failed to create request: %v", enrichment.ErrInvalidConfig, err)
	}
	req.Header.Set("Content-Type", "application/json")

	c.logger.DebugContext(ctx, "making Ollama chat call", "model", c.model, "prompt_length", len(prompt))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		// Keep context errors visible so the caller can tell a timeout apart.
		return "", fmt.Errorf("%w: %w", enrichment.ErrProviderUnavailable, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		c.logger.WarnContext(ctx, "Ollama returned an error status",
			"status", resp.StatusCode,
			"body", string(snippet))
		return "", fmt.Errorf("%w: ollama status %d", enrichment.ErrProviderUnavailable, resp.StatusCode)
	}

	var out chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("%w: failed to decode response: %v", enrichment.ErrInvalidResponse, err)
	}
	if out.Error != "" {
		return "", fmt.Errorf("%w: %s", enrichment.ErrProviderUnavailable, out.Error)
	}
	if strings.TrimSpace(out.Message.Content) == "" {
		return "", fmt.Errorf("%w: empty message content", enrichment.ErrInvalidResponse)
	}

	return out.Message.Content, nil
}
