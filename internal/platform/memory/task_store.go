// Package memory provides a process-local store.TaskStore. Contents are lost
// on restart; it backs ephemeral runs and tests.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/phrazzld/tasktag-api/internal/domain"
	"github.com/phrazzld/tasktag-api/internal/store"
)

// TaskStore keeps tasks in a map guarded by a RWMutex. Tasks are copied on
// the way in and out so callers never share memory with the store.
type TaskStore struct {
	mu     sync.RWMutex
	tasks  map[int64]domain.Task
	closed bool
}

var _ store.TaskStore = (*TaskStore)(nil)

// NewTaskStore returns an empty store.
func NewTaskStore() *TaskStore {
	return &TaskStore{tasks: make(map[int64]domain.Task)}
}

func (s *TaskStore) List(_ context.Context) ([]domain.Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if err := s.checkOpen("list"); err != nil {
		return nil, err
	}

	out := make([]domain.Task, 0, len(s.tasks))
	for _, t := range s.tasks {
		out = append(out, copyTask(t))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *TaskStore) Get(_ context.Context, id int64) (*domain.Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if err := s.checkOpen("get"); err != nil {
		return nil, err
	}

	t, ok := s.tasks[id]
	if !ok {
		return nil, store.ErrTaskNotFound
	}
	c := copyTask(t)
	return &c, nil
}

func (s *TaskStore) Put(_ context.Context, t *domain.Task) error {
	if t == nil {
		return fmt.Errorf("%w: task cannot be nil", store.ErrInvalidEntity)
	}
	if err := t.Validate(); err != nil {
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.checkOpen("put"); err != nil {
		return err
	}

	now := time.Now().UTC()
	t.UpdatedAt = now
	if existing, ok := s.tasks[t.ID]; ok {
		t.CreatedAt = existing.CreatedAt
	} else if t.CreatedAt.IsZero() {
		t.CreatedAt = now
	}
	s.tasks[t.ID] = copyTask(*t)
	return nil
}

func (s *TaskStore) Delete(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.checkOpen("delete"); err != nil {
		return err
	}
	delete(s.tasks, id)
	return nil
}

func (s *TaskStore) MaxID(_ context.Context) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if err := s.checkOpen("max_id"); err != nil {
		return 0, err
	}

	var maxID int64
	for id := range s.tasks {
		if id > maxID {
			maxID = id
		}
	}
	return maxID, nil
}

func (s *TaskStore) Ping(_ context.Context) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.checkOpen("ping")
}

// Close marks the store closed; later calls fail with a storage error.
func (s *TaskStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}

func (s *TaskStore) checkOpen(op string) error {
	if s.closed {
		return store.NewStoreError("task", op, "store is closed", nil)
	}
	return nil
}

func copyTask(t domain.Task) domain.Task {
	t.Tags = domain.CloneTags(t.Tags)
	return t
}
