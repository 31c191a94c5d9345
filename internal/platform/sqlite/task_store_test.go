package sqlite_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phrazzld/tasktag-api/internal/domain"
	"github.com/phrazzld/tasktag-api/internal/platform/sqlite"
	"github.com/phrazzld/tasktag-api/internal/store"
	"github.com/phrazzld/tasktag-api/internal/store/storetest"
)

func openTestStore(t *testing.T, path string) *sqlite.SQLiteTaskStore {
	t.Helper()
	ctx := context.Background()

	db, err := sqlite.Open(ctx, path)
	require.NoError(t, err)
	require.NoError(t, sqlite.Migrate(ctx, db, nil))

	s := sqlite.NewSQLiteTaskStore(db, nil)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestSQLiteTaskStoreContract(t *testing.T) {
	storetest.RunTaskStoreTests(t, func(t *testing.T) store.TaskStore {
		return openTestStore(t, filepath.Join(t.TempDir(), "tasks.db"))
	})
}

func TestSQLiteTaskStoreSurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tasks.db")
	ctx := context.Background()

	first := openTestStore(t, path)
	task, err := domain.NewTask(1700000000000, "persist me", "across restarts", []string{"durable"})
	require.NoError(t, err)
	require.NoError(t, first.Put(ctx, task))
	require.NoError(t, first.Close())

	second := openTestStore(t, path)
	got, err := second.Get(ctx, task.ID)
	require.NoError(t, err)
	assert.Equal(t, "persist me", got.Title)
	assert.Equal(t, []string{"durable"}, got.Tags)

	maxID, err := second.MaxID(ctx)
	require.NoError(t, err)
	assert.Equal(t, task.ID, maxID)
}

func TestSQLiteTaskStorePreservesCreatedAt(t *testing.T) {
	s := openTestStore(t, filepath.Join(t.TempDir(), "tasks.db"))
	ctx := context.Background()

	task, err := domain.NewTask(3, "first", "", []string{"a"})
	require.NoError(t, err)
	require.NoError(t, s.Put(ctx, task))
	created := task.CreatedAt

	replacement, err := domain.NewTask(3, "second", "", []string{"b"})
	require.NoError(t, err)
	require.NoError(t, s.Put(ctx, replacement))

	got, err := s.Get(ctx, 3)
	require.NoError(t, err)
	assert.True(t, created.Equal(got.CreatedAt), "created_at changed: %v -> %v", created, got.CreatedAt)
}

func TestSQLiteTaskStoreReportsStorageErrors(t *testing.T) {
	s := openTestStore(t, filepath.Join(t.TempDir(), "tasks.db"))
	require.NoError(t, s.Close())

	_, err := s.List(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, store.ErrStorage))

	err = s.Put(context.Background(), &domain.Task{ID: 1, Title: "x"})
	assert.True(t, errors.Is(err, store.ErrStorage))
}
