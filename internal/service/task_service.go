package service

import (
	"context"
	"log/slog"

	"github.com/phrazzld/tasktag-api/internal/domain"
	"github.com/phrazzld/tasktag-api/internal/enrichment"
	"github.com/phrazzld/tasktag-api/internal/platform/logger"
	"github.com/phrazzld/tasktag-api/internal/store"
)

// UpdateTaskInput carries a PUT request after decoding.
type UpdateTaskInput struct {
	ID          int64
	Title       string
	Description string
	Completed   bool
	// StatusOnly marks an update that must keep Tags as given instead of
	// asking the enricher again.
	StatusOnly bool
	Tags       []string
}

// TaskService provides task-related operations.
type TaskService interface {
	// List returns every task in creation order.
	List(ctx context.Context) ([]domain.Task, error)

	// Create enriches the content, assigns a new ID and stores the task.
	Create(ctx context.Context, title, description string) (*domain.Task, error)

	// Update replaces an existing task. Full updates are re-enriched;
	// status-only updates keep the supplied tags.
	Update(ctx context.Context, in UpdateTaskInput) (*domain.Task, error)

	// Delete removes a task. Deleting an absent task succeeds.
	Delete(ctx context.Context, id int64) error

	// Ping reports whether the backing store is reachable.
	Ping(ctx context.Context) error
}

type taskServiceImpl struct {
	tasks    store.TaskStore
	enricher enrichment.Enricher
	ids      *domain.IDGenerator
	logger   *slog.Logger
}

// NewTaskService creates a TaskService.
// It returns an error if any of the required dependencies are nil.
func NewTaskService(
	tasks store.TaskStore,
	enricher enrichment.Enricher,
	ids *domain.IDGenerator,
	logger *slog.Logger,
) (TaskService, error) {
	switch {
	case tasks == nil:
		return nil, &TaskServiceError{Operation: "create_service", Message: "task store cannot be nil"}
	case enricher == nil:
		return nil, &TaskServiceError{Operation: "create_service", Message: "enricher cannot be nil"}
	case ids == nil:
		return nil, &TaskServiceError{Operation: "create_service", Message: "id generator cannot be nil"}
	case logger == nil:
		return nil, &TaskServiceError{Operation: "create_service", Message: "logger cannot be nil"}
	}

	return &taskServiceImpl{
		tasks:    tasks,
		enricher: enricher,
		ids:      ids,
		logger:   logger.With("component", "task_service"),
	}, nil
}

func (s *taskServiceImpl) log(ctx context.Context) *slog.Logger {
	return logger.FromContextOrDefault(ctx, s.logger)
}

func (s *taskServiceImpl) List(ctx context.Context) ([]domain.Task, error) {
	tasks, err := s.tasks.List(ctx)
	if err != nil {
		return nil, NewTaskServiceError("list_tasks", "failed to list tasks", err)
	}
	return tasks, nil
}

func (s *taskServiceImpl) Create(ctx context.Context, title, description string) (*domain.Task, error) {
	if !domain.HasContent(title, description) {
		return nil, domain.NewValidationError("task", "title or description is required", domain.ErrEmptyContent)
	}

	tags, err := s.enricher.Enrich(ctx, title, description)
	if err != nil {
		s.log(ctx).Warn("enrichment failed, task not created", "error", err)
		return nil, NewTaskServiceError("create_task", "failed to enrich task", err)
	}

	task, err := domain.NewTask(s.ids.Next(), title, description, tags)
	if err != nil {
		return nil, NewTaskServiceError("create_task", "failed to build task", err)
	}

	if err := s.tasks.Put(ctx, task); err != nil {
		s.log(ctx).Error("failed to store task", "task_id", task.ID, "error", err)
		return nil, NewTaskServiceError("create_task", "failed to store task", err)
	}

	s.log(ctx).Info("task created", "task_id", task.ID, "tag_count", len(task.Tags))
	return task, nil
}

func (s *taskServiceImpl) Update(ctx context.Context, in UpdateTaskInput) (*domain.Task, error) {
	if in.ID <= 0 {
		return nil, domain.NewValidationError("id", "must be a positive integer", domain.ErrInvalidID)
	}
	if in.StatusOnly && in.Tags == nil {
		return nil, domain.NewValidationError("tags", "are required for status-only updates", domain.ErrMissingTags)
	}
	if !in.StatusOnly && !domain.HasContent(in.Title, in.Description) {
		return nil, domain.NewValidationError("task", "title or description is required", domain.ErrEmptyContent)
	}

	// Checked first so an unknown ID never costs a model call.
	existing, err := s.tasks.Get(ctx, in.ID)
	if err != nil {
		return nil, NewTaskServiceError("update_task", "failed to load task", err)
	}

	tags := in.Tags
	if !in.StatusOnly {
		tags, err = s.enricher.Enrich(ctx, in.Title, in.Description)
		if err != nil {
			s.log(ctx).Warn("enrichment failed, task not updated", "task_id", in.ID, "error", err)
			return nil, NewTaskServiceError("update_task", "failed to enrich task", err)
		}
	}

	task := &domain.Task{
		ID:          in.ID,
		Title:       in.Title,
		Description: in.Description,
		Completed:   in.Completed,
		Tags:        domain.CloneTags(tags),
		CreatedAt:   existing.CreatedAt,
	}
	if err := s.tasks.Put(ctx, task); err != nil {
		s.log(ctx).Error("failed to store task", "task_id", task.ID, "error", err)
		return nil, NewTaskServiceError("update_task", "failed to store task", err)
	}

	s.log(ctx).Info("task updated",
		"task_id", task.ID,
		"status_only", in.StatusOnly,
		"completed", task.Completed)
	return task, nil
}

func (s *taskServiceImpl) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return domain.NewValidationError("id", "must be a positive integer", domain.ErrInvalidID)
	}
	if err := s.tasks.Delete(ctx, id); err != nil {
		s.log(ctx).Error("failed to delete task", "task_id", id, "error", err)
		return NewTaskServiceError("delete_task", "failed to delete task", err)
	}
	s.log(ctx).Info("task deleted", "task_id", id)
	return nil
}

func (s *taskServiceImpl) Ping(ctx context.Context) error {
	if err := s.tasks.Ping(ctx); err != nil {
		return NewTaskServiceError("ping", "store unreachable", err)
	}
	return nil
}
