package api

import "github.com/phrazzld/tasktag-api/internal/domain"

// CreateTaskRequest is the POST /api/v1/tasks body. Both fields must be
// present; at least one must be non-blank.
type CreateTaskRequest struct {
	Title       *string `json:"title"       validate:"required"`
	Description *string `json:"description" validate:"required"`
}

// UpdateTaskRequest is the PUT /api/v1/tasks body.
type UpdateTaskRequest struct {
	ID              *int64  `json:"id"              validate:"required,gt=0"`
	NewTitle        *string `json:"newTitle"        validate:"required"`
	NewDescription  *string `json:"newDescription"  validate:"required"`
	NewCompleted    *bool   `json:"newCompleted"    validate:"required"`
	IsStatusUpdated *bool   `json:"isStatusUpdated" validate:"required"`
	// Tags is only read for status-only updates.
	Tags []string `json:"tags,omitempty"`
}

// TaskBody is the nested "task" object of every task response.
type TaskBody struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Completed   bool     `json:"completed"`
	Tags        []string `json:"tags"`
}

// TaskResponse is the wire form of a task.
type TaskResponse struct {
	ID   int64    `json:"id"`
	Task TaskBody `json:"task"`
}

// HealthResponse is returned by GET /health.
type HealthResponse struct {
	Status string `json:"status"`
}

func taskToResponse(t *domain.Task) TaskResponse {
	return TaskResponse{
		ID: t.ID,
		Task: TaskBody{
			Title:       t.Title,
			Description: t.Description,
			Completed:   t.Completed,
			// CloneTags never returns nil, so tags always encode as an array.
			Tags: domain.CloneTags(t.Tags),
		},
	}
}

func tasksToResponse(tasks []domain.Task) []TaskResponse {
	out := make([]TaskResponse, 0, len(tasks))
	for i := range tasks {
		out = append(out, taskToResponse(&tasks[i]))
	}
	return out
}
