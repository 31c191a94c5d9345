package postgres_test

import (
	"database/sql"
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"

	"github.com/phrazzld/tasktag-api/internal/platform/postgres"
	"github.com/phrazzld/tasktag-api/internal/store"
)

func newPgError(code string) *pgconn.PgError {
	return &pgconn.PgError{
		Code:           code,
		Message:        "error message",
		TableName:      "tasks",
		ColumnName:     "title",
		ConstraintName: "tasks_id_check",
	}
}

func TestMapError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		err        error
		wantTarget error
		wantNil    bool
	}{
		{name: "nil", err: nil, wantNil: true},
		{name: "no rows", err: sql.ErrNoRows, wantTarget: store.ErrNotFound},
		{name: "wrapped no rows", err: fmt.Errorf("query: %w", sql.ErrNoRows), wantTarget: store.ErrNotFound},
		{name: "check violation", err: newPgError("23514"), wantTarget: store.ErrInvalidEntity},
		{name: "not null violation", err: newPgError("23502"), wantTarget: store.ErrInvalidEntity},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := postgres.MapError(tt.err)
			if tt.wantNil {
				assert.NoError(t, got)
				return
			}
			assert.True(t, errors.Is(got, tt.wantTarget), "got %v", got)
		})
	}
}

func TestMapErrorPassesThroughUnknownErrors(t *testing.T) {
	t.Parallel()

	original := errors.New("connection reset")
	assert.Same(t, original, postgres.MapError(original))

	undefined := newPgError("42P01")
	mapped := postgres.MapError(undefined)
	var pgErr *pgconn.PgError
	assert.True(t, errors.As(mapped, &pgErr))
	assert.Contains(t, mapped.Error(), "schema not initialized")
}

func TestViolationHelpers(t *testing.T) {
	t.Parallel()

	assert.True(t, postgres.IsCheckConstraintViolation(newPgError("23514")))
	assert.False(t, postgres.IsCheckConstraintViolation(newPgError("23502")))
	assert.True(t, postgres.IsNotNullViolation(fmt.Errorf("wrapped: %w", newPgError("23502"))))
	assert.False(t, postgres.IsNotNullViolation(nil))
}
