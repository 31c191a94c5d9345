package domain

import (
	"strings"
	"time"
)

// Task is the sole persisted entity: a unit of work with a completion flag
// and a set of classification tags derived by enrichment.
type Task struct {
	ID          int64
	Title       string
	Description string
	Completed   bool
	Tags        []string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// NewTask builds a not-yet-completed task with the given id, content and
// tags. Tags are copied so later mutation of the input slice cannot leak
// into the task.
func NewTask(id int64, title, description string, tags []string) (*Task, error) {
	now := time.Now().UTC()
	t := &Task{
		ID:          id,
		Title:       title,
		Description: description,
		Completed:   false,
		Tags:        CloneTags(tags),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := t.Validate(); err != nil {
		return nil, err
	}
	return t, nil
}

// Validate checks the invariants every stored task must satisfy.
func (t *Task) Validate() error {
	if t.ID <= 0 {
		return NewValidationError("id", "must be a positive integer", ErrInvalidID)
	}
	return nil
}

// HasContent reports whether title or description carries any text.
func HasContent(title, description string) bool {
	return strings.TrimSpace(title) != "" || strings.TrimSpace(description) != ""
}

// CloneTags returns a copy of tags that is never nil.
func CloneTags(tags []string) []string {
	out := make([]string, len(tags))
	copy(out, tags)
	return out
}
