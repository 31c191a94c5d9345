package sqlite

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

// SQLiteTaskStore implements store.TaskStore on SQLite.
type SQLiteTaskStore struct {
	db     store.DBTX
	logger *slog.Logger
}

var _ store.TaskStore = (*SQLiteTaskStore)(nil)

// NewSQLiteTaskStore creates a store over db.
func NewSQLiteTaskStore(db store.DBTX, logger *slog.Logger) *SQLiteTaskStore {
	if logger == nil {
		logger = slog.Default()
	}
	return &SQLiteTaskStore{db: db, logger: logger.With("component", "sqlite_task_store")}
}

func (s *SQLiteTaskStore) List(ctx context.Context) ([]domain.Task, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, title, description, completed, tags, created_at, updated_at
		FROM tasks
		ORDER BY id ASC
	`)
	if err != nil {
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to list tasks", "error", err)
		return nil, store.NewStoreError(entityTask, "list", "failed to query tasks", err)
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
		return nil, store.NewStoreError(entityTask, "list", "failed to iterate tasks", err)
	}
	return tasks, nil
}

func (s *SQLiteTaskStore) Get(ctx context.Context, id int64) (*domain.Task, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, title, description, completed, tags, created_at, updated_at
		FROM tasks
		WHERE id = ?
	`, id)

	t, err := scanTask(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrTaskNotFound
		}
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to get task", "task_id", id, "error", err)
		return nil, store.NewStoreError(entityTask, "get", "failed to fetch task", err)
	}
	return t, nil
}

// Put upserts t, keeping the stored created_at on replace.
func (s *SQLiteTaskStore) Put(ctx context.Context, t *domain.Task) error {
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

	var createdMs, updatedMs int64
	err = s.db.QueryRowContext(ctx, `
		INSERT INTO tasks (id, title, description, completed, tags, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (id) DO UPDATE SET
			title = excluded.title,
			description = excluded.description,
			completed = excluded.completed,
			tags = excluded.tags,
			updated_at = excluded.updated_at
		RETURNING created_at, updated_at
	`, t.ID, t.Title, t.Description, t.Completed, string(tags), created.UnixMilli(), now.UnixMilli()).
		Scan(&createdMs, &updatedMs)
	if err != nil {
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to put task", "task_id", t.ID, "error", err)
		return store.NewStoreError(entityTask, "put", "failed to upsert task", err)
	}

	t.CreatedAt = time.UnixMilli(createdMs).UTC()
	t.UpdatedAt = time.UnixMilli(updatedMs).UTC()
	return nil
}

func (s *SQLiteTaskStore) Delete(ctx context.Context, id int64) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM tasks WHERE id = ?`, id); err != nil {
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to delete task", "task_id", id, "error", err)
		return store.NewStoreError(entityTask, "delete", "failed to delete task", err)
	}
	return nil
}

func (s *SQLiteTaskStore) MaxID(ctx context.Context) (int64, error) {
	var id int64
	if err := s.db.QueryRowContext(ctx, `SELECT COALESCE(MAX(id), 0) FROM tasks`).Scan(&id); err != nil {
		return 0, store.NewStoreError(entityTask, "max_id", "failed to read highest id", err)
	}
	return id, nil
}

func (s *SQLiteTaskStore) Ping(ctx context.Context) error {
	p, ok := s.db.(interface{ PingContext(context.Context) error })
	if !ok {
		return nil
	}
	if err := p.PingContext(ctx); err != nil {
		return store.NewStoreError(entityTask, "ping", "database unreachable", err)
	}
	return nil
}

func (s *SQLiteTaskStore) Close() error {
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
		t                    domain.Task
		rawTags              string
		createdMs, updatedMs int64
	)
	if err := row.Scan(&t.ID, &t.Title, &t.Description, &t.Completed, &rawTags, &createdMs, &updatedMs); err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(rawTags), &t.Tags); err != nil {
		return nil, fmt.Errorf("failed to decode tags for task %d: %w", t.ID, err)
	}
	t.Tags = domain.CloneTags(t.Tags)
	t.CreatedAt = time.UnixMilli(createdMs).UTC()
	t.UpdatedAt = time.UnixMilli(updatedMs).UTC()
	return &t, nil
}
