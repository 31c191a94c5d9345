package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/phrazzld/tasktag-api/internal/domain"
	"github.com/phrazzld/tasktag-api/internal/platform/logger"
	"github.com/phrazzld/tasktag-api/internal/store"
)

const entityTask = "task"

// PostgresTaskStore implements the store.TaskStore interface using PostgreSQL.
type PostgresTaskStore struct {
	db     store.DBTX
	logger *slog.Logger
}

var _ store.TaskStore = (*PostgresTaskStore)(nil)

// NewPostgresTaskStore creates a new PostgresTaskStore. db is usually a
// *sql.DB; tests pass a *sql.Tx so every case rolls back.
func NewPostgresTaskStore(db store.DBTX, logger *slog.Logger) *PostgresTaskStore {
	if logger == nil {
		logger = slog.Default()
	}
	return &PostgresTaskStore{
		db:     db,
		logger: logger.With("component", "postgres_task_store"),
	}
}

// List returns all tasks ordered by ID.
func (s *PostgresTaskStore) List(ctx context.Context) ([]domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, title, description, completed, tags, created_at, updated_at
		FROM tasks
		ORDER BY id ASC
	`)
	if err != nil {
		log.Error("failed to list tasks", "error", err)
		return nil, store.NewStoreError(entityTask, "list", "failed to query tasks", MapError(err))
	}
	defer func() { _ = rows.Close() }()

	tasks := make([]domain.Task, 0)
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, store.NewStoreError(entityTask, "list", "failed to scan task", err)
		}
		tasks = append(tasks, *t)
	}
	if err := rows.Err(); err != nil {
		return nil, store.NewStoreError(entityTask, "list", "failed to iterate tasks", MapError(err))
	}

	return tasks, nil
}

// Get retrieves a task by its ID.
func (s *PostgresTaskStore) Get(ctx context.Context, id int64) (*domain.Task, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, title, description, completed, tags, created_at, updated_at
		FROM tasks
		WHERE id = $1
	`, id)

	t, err := scanTask(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrTaskNotFound
		}
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to get task", "task_id", id, "error", err)
		return nil, store.NewStoreError(entityTask, "get", "failed to fetch task", MapError(err))
	}
	return t, nil
}

// Put inserts the task or replaces the stored row with the same ID. The
// original created_at is preserved on replace, and both timestamps are
// written back into t.
func (s *PostgresTaskStore) Put(ctx context.Context, t *domain.Task) error {
	if t == nil {
		return fmt.Errorf("%w: task cannot be nil", store.ErrInvalidEntity)
	}
	if err := t.Validate(); err != nil {
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	tags, err := json.Marshal(domain.CloneTags(t.Tags))
	if err != nil {
		return store.NewStoreError(entityTask, "put", "failed to encode tags", err)
	}

	now := time.Now().UTC()
	created := t.CreatedAt
	if created.IsZero() {
		created = now
	}

	err = s.db.QueryRowContext(ctx, `
		INSERT INTO tasks (id, title, description, completed, tags, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (id) DO UPDATE SET
			title = EXCLUDED.title,
			description = EXCLUDED.description,
			completed = EXCLUDED.completed,
			tags = EXCLUDED.tags,
			updated_at = EXCLUDED.updated_at
		RETURNING created_at, updated_at
	`, t.ID, t.Title, t.Description, t.Completed, string(tags), created, now).Scan(&t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to put task", "task_id", t.ID, "error", err)
		mapped := MapError(err)
		if errors.Is(mapped, store.ErrInvalidEntity) {
			return mapped
		}
		return store.NewStoreError(entityTask, "put", "failed to upsert task", mapped)
	}

	return nil
}

// Delete removes a task. Deleting an absent ID is not an error.
func (s *PostgresTaskStore) Delete(ctx context.Context, id int64) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM tasks WHERE id = $1`, id)
	if err != nil {
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to delete task", "task_id", id, "error", err)
		return store.NewStoreError(entityTask, "delete", "failed to delete task", MapError(err))
	}

	if n, err := result.RowsAffected(); err == nil && n == 0 {
		logger.FromContextOrDefault(ctx, s.logger).Debug("delete of absent task", "task_id", id)
	}
	return nil
}

// MaxID returns the highest stored ID, or 0 when the table is empty.
func (s *PostgresTaskStore) MaxID(ctx context.Context) (int64, error) {
	var id int64
	if err := s.db.QueryRowContext(ctx, `SELECT COALESCE(MAX(id), 0) FROM tasks`).Scan(&id); err != nil {
		return 0, store.NewStoreError(entityTask, "max_id", "failed to read highest id", MapError(err))
	}
	return id, nil
}

// Ping verifies the database is reachable when the handle supports it.
func (s *PostgresTaskStore) Ping(ctx context.Context) error {
	p, ok := s.db.(interface{ PingContext(context.Context) error })
	if !ok {
		return nil
	}
	if err := p.PingContext(ctx); err != nil {
		return store.NewStoreError(entityTask, "ping", "database unreachable", err)
	}
	return nil
}

// Close closes the database handle when the store owns a *sql.DB.
func (s *PostgresTaskStore) Close() error {
	if c, ok := s.db.(interface{ Close() error }); ok {
		return c.Close()
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTask(row rowScanner) (*domain.Task, error) {
	var (
		t       domain.Task
		rawTags []byte
	)
	if err := row.Scan(&t.ID, &t.Title, &t.Description, &t.Completed, &rawTags, &t.CreatedAt, &t.UpdatedAt); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(rawTags, &t.Tags); err != nil {
		return nil, fmt.Errorf("failed to decode tags for task %d: %w", t.ID, err)
	}
	t.Tags = domain.CloneTags(t.Tags)
	return &t, nil
}
