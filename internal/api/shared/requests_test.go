package shared

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sampleRequest struct {
	Name *string `json:"name" validate:"required"`
	Age  int     `json:"age"`
}

func TestDecodeJSON(t *testing.T) {
	tests := []struct {
		name        string
		requestBody string
		wantErr     bool
		errContains string
	}{
		{
			name:        "valid json",
			requestBody: `{"name": "test", "age": 30}`,
		},
		{
			name:        "invalid json",
			requestBody: `{"name": "test", "age": 30,}`,
			wantErr:     true,
			errContains: "invalid request body",
		},
		{
			name:        "empty body",
			requestBody: "",
			wantErr:     true,
			errContains: "empty",
		},
		{
			name:        "unknown field",
			requestBody: `{"name": "test", "nickname": "t"}`,
			wantErr:     true,
			errContains: "unknown field",
		},
		{
			name:        "trailing value",
			requestBody: `{"name": "a"} {"name": "b"}`,
			wantErr:     true,
			errContains: "single JSON object",
		},
		{
			name:        "oversized body",
			requestBody: `{"name": "` + strings.Repeat("x", MaxRequestBodyBytes) + `"}`,
			wantErr:     true,
			errContains: "invalid request body",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(tt.requestBody))
			rec := httptest.NewRecorder()

			var target sampleRequest
			err := DecodeJSON(rec, req, &target)

			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errContains)
				return
			}
			require.NoError(t, err)
			require.NotNil(t, target.Name)
			assert.Equal(t, "test", *target.Name)
			assert.Equal(t, 30, target.Age)
		})
	}
}

type selfValidating struct{ ok bool }

func (s selfValidating) Validate() error {
	if !s.ok {
		return assert.AnError
	}
	return nil
}

func TestValidateRequest(t *testing.T) {
	name := ""
	assert.NoError(t, ValidateRequest(&sampleRequest{Name: &name}), "empty string is present")
	assert.Error(t, ValidateRequest(&sampleRequest{}), "missing pointer field fails required")

	assert.NoError(t, ValidateRequest(selfValidating{ok: true}))
	assert.ErrorIs(t, ValidateRequest(selfValidating{ok: false}), assert.AnError)
}
