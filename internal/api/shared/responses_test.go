package shared

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phrazzld/tasktag-api/internal/platform/logger"
)

func TestRespondWithJSON(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()

	RespondWithJSON(rec, req, http.StatusCreated, map[string]int{"id": 7})

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"id":7}`, rec.Body.String())
}

func TestRespondWithText(t *testing.T) {
	rec := httptest.NewRecorder()

	RespondWithText(rec, http.StatusOK, "done")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/plain; charset=utf-8", rec.Header().Get("Content-Type"))
	assert.Equal(t, "done", rec.Body.String())
}

func TestRespondWithErrorIncludesTraceID(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req = req.WithContext(SetTraceID(req.Context()))
	rec := httptest.NewRecorder()

	RespondWithError(rec, req, http.StatusBadRequest, "bad input")

	require.Equal(t, http.StatusBadRequest, rec.Code)
	var body ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "bad input", body.Error)
	assert.Equal(t, GetTraceID(req.Context()), body.TraceID)
}

func TestRespondWithErrorAndLogRedacts(t *testing.T) {
	log, buf := logger.NewTestLogger(t)
	req := httptest.NewRequest(http.MethodGet, "/api/v1/tasks", nil)
	req = req.WithContext(logger.WithLogger(context.Background(), log))
	rec := httptest.NewRecorder()

	cause := errors.New("dial postgres://app:s3cret@db:5432/tasks failed")
	RespondWithErrorAndLog(rec, req, http.StatusInternalServerError, "Failed to list tasks", cause)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), "s3cret")
	assert.NotContains(t, rec.Body.String(), "postgres://")

	logged := buf.String()
	assert.Contains(t, logged, "API error response")
	assert.Contains(t, logged, `"level":"ERROR"`)
	assert.NotContains(t, logged, "s3cret")
}
