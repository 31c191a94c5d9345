package main

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/phrazzld/tasktag-api/internal/config"
	"github.com/phrazzld/tasktag-api/internal/domain"
	"github.com/phrazzld/tasktag-api/internal/platform/logger"
	"github.com/phrazzld/tasktag-api/internal/platform/memory"
	"github.com/phrazzld/tasktag-api/internal/service"
)

// stubEnricher tags a task with its lowercased title words, or fails with err.
type stubEnricher struct {
	mu    sync.Mutex
	calls int
	err   error
}

func (s *stubEnricher) Enrich(_ context.Context, title, _ string) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return strings.Fields(strings.ToLower(title)), nil
}

func (s *stubEnricher) Calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

type testApp struct {
	app      *application
	tasks    *memory.TaskStore
	enricher *stubEnricher
	handler  http.Handler
}

func testConfig(staticDir string) *config.Config {
	return &config.Config{
		Server: config.ServerConfig{
			Port:                   0,
			LogLevel:               "debug",
			StaticDir:              staticDir,
			ShutdownTimeoutSeconds: 5,
		},
		Database: config.DatabaseConfig{Driver: config.DriverMemory},
		LLM: config.LLMConfig{
			Provider:       config.ProviderOllama,
			ModelName:      "llama3.1",
			OllamaURL:      "http://127.0.0.1:1",
			TimeoutSeconds: 5,
		},
	}
}

// newTestApp builds an application on the memory store with a stub
// enricher and a static dir holding index.html and app.js.
func newTestApp(t *testing.T) *testApp {
	t.Helper()

	staticDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(staticDir, "index.html"), []byte("<html>index</html>"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(staticDir, "app.js"), []byte("console.log('app')"), 0o600))

	log, _ := logger.NewTestLogger(t)
	tasks := memory.NewTaskStore()
	enricher := &stubEnricher{}

	svc, err := service.NewTaskService(tasks, enricher, domain.NewIDGenerator(), log)
	require.NoError(t, err)

	app := &application{
		config:      testConfig(staticDir),
		logger:      log,
		tasks:       tasks,
		taskService: svc,
	}
	return &testApp{app: app, tasks: tasks, enricher: enricher, handler: app.routes()}
}

func (ta *testApp) do(t *testing.T, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	ta.handler.ServeHTTP(rec, req)
	return rec
}

