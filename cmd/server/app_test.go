package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phrazzld/tasktag-api/internal/config"
	"github.com/phrazzld/tasktag-api/internal/domain"
	"github.com/phrazzld/tasktag-api/internal/enrichment"
	"github.com/phrazzld/tasktag-api/internal/platform/logger"
	"github.com/phrazzld/tasktag-api/internal/platform/memory"
	"github.com/phrazzld/tasktag-api/internal/store"
)

func TestNewApplication(t *testing.T) {
	ctx := context.Background()
	log, _ := logger.NewTestLogger(t)

	t.Run("ollama provider", func(t *testing.T) {
		tasks := memory.NewTaskStore()
		app, err := newApplication(ctx, testConfig(t.TempDir()), log, tasks)
		require.NoError(t, err)
		assert.NotNil(t, app.taskService)
		assert.Same(t, tasks, app.tasks)
	})

	t.Run("gemini without key", func(t *testing.T) {
		cfg := testConfig(t.TempDir())
		cfg.LLM.Provider = config.ProviderGemini
		cfg.LLM.GeminiAPIKey = ""

		_, err := newApplication(ctx, cfg, log, memory.NewTaskStore())
		require.Error(t, err)
		assert.ErrorIs(t, err, enrichment.ErrInvalidConfig)
	})

	t.Run("gemini with key", func(t *testing.T) {
		cfg := testConfig(t.TempDir())
		cfg.LLM.Provider = config.ProviderGemini
		cfg.LLM.GeminiAPIKey = "test-key"
		cfg.LLM.ModelName = "gemini-2.0-flash"

		_, err := newApplication(ctx, cfg, log, memory.NewTaskStore())
		require.NoError(t, err)
	})

	t.Run("unknown provider", func(t *testing.T) {
		cfg := testConfig(t.TempDir())
		cfg.LLM.Provider = "openai"

		_, err := newApplication(ctx, cfg, log, memory.NewTaskStore())
		assert.ErrorIs(t, err, enrichment.ErrInvalidConfig)
	})

	t.Run("missing prompt template", func(t *testing.T) {
		cfg := testConfig(t.TempDir())
		cfg.LLM.PromptTemplatePath = filepath.Join(t.TempDir(), "absent.tmpl")

		_, err := newApplication(ctx, cfg, log, memory.NewTaskStore())
		assert.Error(t, err)
	})

	t.Run("closed store", func(t *testing.T) {
		tasks := memory.NewTaskStore()
		require.NoError(t, tasks.Close())

		_, err := newApplication(ctx, testConfig(t.TempDir()), log, tasks)
		assert.ErrorIs(t, err, store.ErrStorage)
	})
}

func TestNewApplicationSeedsIDsFromStore(t *testing.T) {
	ctx := context.Background()
	log, _ := logger.NewTestLogger(t)

	ollamaSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/chat", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"model":"llama3.1","message":{"role":"assistant","content":"chores, home"},"done":true}`))
	}))
	defer ollamaSrv.Close()

	// An id far in the future stands in for tasks written under a faster clock.
	future := time.Now().Add(24 * time.Hour).UnixMilli()
	tasks := memory.NewTaskStore()
	existing, err := domain.NewTask(future, "old", "", []string{"x"})
	require.NoError(t, err)
	require.NoError(t, tasks.Put(ctx, existing))

	cfg := testConfig(t.TempDir())
	cfg.LLM.OllamaURL = ollamaSrv.URL

	app, err := newApplication(ctx, cfg, log, tasks)
	require.NoError(t, err)

	task, err := app.taskService.Create(ctx, "Sweep floor", "kitchen")
	require.NoError(t, err)
	assert.Greater(t, task.ID, future)
	assert.Equal(t, []string{"chores", "home"}, task.Tags)
}

func TestServeShutsDownOnCancel(t *testing.T) {
	ta := newTestApp(t)

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- ta.app.serve(ctx, ln, ta.handler) }()

	url := "http://" + ln.Addr().String() + "/health"
	require.Eventually(t, func() bool {
		resp, err := http.Get(url)
		if err != nil {
			return false
		}
		defer resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, 5*time.Second, 20*time.Millisecond)

	cancel()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(10 * time.Second):
		t.Fatal("serve did not return after cancel")
	}

	// Shutdown releases the store.
	assert.ErrorIs(t, ta.tasks.Ping(context.Background()), store.ErrStorage)
}

func TestServeReportsListenerFailure(t *testing.T) {
	ta := newTestApp(t)

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	require.NoError(t, ln.Close())

	err = ta.app.serve(context.Background(), ln, ta.handler)
	require.Error(t, err)
	assert.False(t, errors.Is(err, http.ErrServerClosed))
	assert.ErrorIs(t, ta.tasks.Ping(context.Background()), store.ErrStorage)
}
