// Package storetest holds the behavioural checks every store.TaskStore
// implementation must pass.
package storetest

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phrazzld/tasktag-api/internal/domain"
	"github.com/phrazzld/tasktag-api/internal/store"
)

// Factory returns an empty store for one subtest.
type Factory func(t *testing.T) store.TaskStore

// RunTaskStoreTests exercises s against the store.TaskStore contract.
func RunTaskStoreTests(t *testing.T, newStore Factory) {
	t.Helper()

	t.Run("empty list", func(t *testing.T) {
		s := newStore(t)
		tasks, err := s.List(context.Background())
		require.NoError(t, err)
		assert.NotNil(t, tasks)
		assert.Empty(t, tasks)

		maxID, err := s.MaxID(context.Background())
		require.NoError(t, err)
		assert.Zero(t, maxID)
	})

	t.Run("put then get round trip", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()
		task := mustTask(t, 1700000000001, "Buy milk", "2% please", []string{"groceries", "errand"})

		require.NoError(t, s.Put(ctx, task))

		got, err := s.Get(ctx, task.ID)
		require.NoError(t, err)
		assert.Equal(t, task.ID, got.ID)
		assert.Equal(t, "Buy milk", got.Title)
		assert.Equal(t, "2% please", got.Description)
		assert.False(t, got.Completed)
		assert.Equal(t, []string{"groceries", "errand"}, got.Tags)
		assert.False(t, got.CreatedAt.IsZero())
	})

	t.Run("empty tags stay non-nil", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()
		task := mustTask(t, 5, "t", "", nil)
		require.NoError(t, s.Put(ctx, task))

		got, err := s.Get(ctx, 5)
		require.NoError(t, err)
		assert.NotNil(t, got.Tags)
		assert.Empty(t, got.Tags)
	})

	t.Run("put replaces existing record", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()
		task := mustTask(t, 10, "old", "old desc", []string{"a"})
		require.NoError(t, s.Put(ctx, task))

		updated := mustTask(t, 10, "new", "new desc", []string{"b", "c"})
		updated.Completed = true
		require.NoError(t, s.Put(ctx, updated))

		got, err := s.Get(ctx, 10)
		require.NoError(t, err)
		assert.Equal(t, "new", got.Title)
		assert.Equal(t, "new desc", got.Description)
		assert.True(t, got.Completed)
		assert.Equal(t, []string{"b", "c"}, got.Tags)

		all, err := s.List(ctx)
		require.NoError(t, err)
		assert.Len(t, all, 1)
	})

	t.Run("get missing", func(t *testing.T) {
		s := newStore(t)
		_, err := s.Get(context.Background(), 42)
		require.Error(t, err)
		assert.True(t, errors.Is(err, store.ErrTaskNotFound))
		assert.True(t, store.IsNotFoundError(err))
	})

	t.Run("list is ordered by id", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()
		for _, id := range []int64{30, 10, 20} {
			require.NoError(t, s.Put(ctx, mustTask(t, id, "t", "d", []string{"x"})))
		}

		tasks, err := s.List(ctx)
		require.NoError(t, err)
		require.Len(t, tasks, 3)
		assert.Equal(t, []int64{10, 20, 30}, []int64{tasks[0].ID, tasks[1].ID, tasks[2].ID})

		maxID, err := s.MaxID(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(30), maxID)
	})

	t.Run("delete is idempotent and removes from list", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()
		require.NoError(t, s.Put(ctx, mustTask(t, 1, "keep", "", []string{"a"})))
		require.NoError(t, s.Put(ctx, mustTask(t, 2, "drop", "", []string{"b"})))

		require.NoError(t, s.Delete(ctx, 2))
		require.NoError(t, s.Delete(ctx, 2))
		require.NoError(t, s.Delete(ctx, 999))

		tasks, err := s.List(ctx)
		require.NoError(t, err)
		require.Len(t, tasks, 1)
		assert.Equal(t, int64(1), tasks[0].ID)

		_, err = s.Get(ctx, 2)
		assert.True(t, errors.Is(err, store.ErrTaskNotFound))
	})

	t.Run("rejects invalid task", func(t *testing.T) {
		s := newStore(t)
		err := s.Put(context.Background(), &domain.Task{ID: 0, Title: "x"})
		require.Error(t, err)
		assert.True(t, errors.Is(err, store.ErrInvalidEntity))

		err = s.Put(context.Background(), nil)
		assert.True(t, errors.Is(err, store.ErrInvalidEntity))
	})

	t.Run("returned tasks do not alias stored state", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()
		task := mustTask(t, 7, "t", "d", []string{"one"})
		require.NoError(t, s.Put(ctx, task))
		task.Tags[0] = "changed-after-put"

		got, err := s.Get(ctx, 7)
		require.NoError(t, err)
		got.Tags[0] = "changed-after-get"

		again, err := s.Get(ctx, 7)
		require.NoError(t, err)
		assert.Equal(t, []string{"one"}, again.Tags)
	})

	t.Run("ping", func(t *testing.T) {
		s := newStore(t)
		assert.NoError(t, s.Ping(context.Background()))
	})
}

func mustTask(t *testing.T, id int64, title, description string, tags []string) *domain.Task {
	t.Helper()
	task, err := domain.NewTask(id, title, description, tags)
	require.NoError(t, err)
	return task
}
