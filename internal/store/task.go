package store

import (
	"context"

	"github.com/phrazzld/tasktag-api/internal/domain"
)

// TaskStore defines the interface for task persistence.
// Every method hits the underlying medium; implementations must not cache
// records across calls.
type TaskStore interface {
	// List returns every stored task ordered by ascending ID, which is
	// creation order for server-assigned IDs.
	// Returns an empty slice when the store holds no tasks.
	List(ctx context.Context) ([]domain.Task, error)

	// Get retrieves a task by its ID.
	// Returns ErrTaskNotFound if the task does not exist.
	Get(ctx context.Context, id int64) (*domain.Task, error)

	// Put inserts the task or replaces the existing record with the same ID.
	// The write commits or fails atomically for that key.
	Put(ctx context.Context, task *domain.Task) error

	// Delete removes the task with the given ID. Deleting an absent ID is a
	// no-op and returns nil.
	Delete(ctx context.Context, id int64) error

	// MaxID returns the highest stored ID, or 0 for an empty store.
	MaxID(ctx context.Context) (int64, error)

	// Ping verifies the underlying medium is reachable.
	Ping(ctx context.Context) error

	// Close releases resources held by the store.
	Close() error
}
