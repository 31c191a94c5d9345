package api

import (
	"net/http"
	"strconv"

	"github.com/phrazzld/tasktag-api/internal/api/shared"
	"github.com/phrazzld/tasktag-api/internal/service"
)

// DeleteConfirmation is the plain-text body of a successful DELETE.
const DeleteConfirmation = "Task has been deleted successfully."

// TaskHandler handles task-related HTTP requests.
type TaskHandler struct {
	tasks service.TaskService
}

// NewTaskHandler creates a new TaskHandler.
func NewTaskHandler(tasks service.TaskService) *TaskHandler {
	return &TaskHandler{tasks: tasks}
}

// ListTasks handles GET /api/v1/tasks.
func (h *TaskHandler) ListTasks(w http.ResponseWriter, r *http.Request) {
	tasks, err := h.tasks.List(r.Context())
	if err != nil {
		respondWithServiceError(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, tasksToResponse(tasks))
}

// CreateTask handles POST /api/v1/tasks.
func (h *TaskHandler) CreateTask(w http.ResponseWriter, r *http.Request) {
	var req CreateTaskRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	task, err := h.tasks.Create(r.Context(), *req.Title, *req.Description)
	if err != nil {
		respondWithServiceError(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusCreated, taskToResponse(task))
}

// UpdateTask handles PUT /api/v1/tasks.
func (h *TaskHandler) UpdateTask(w http.ResponseWriter, r *http.Request) {
	var req UpdateTaskRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	task, err := h.tasks.Update(r.Context(), service.UpdateTaskInput{
		ID:          *req.ID,
		Title:       *req.NewTitle,
		Description: *req.NewDescription,
		Completed:   *req.NewCompleted,
		StatusOnly:  *req.IsStatusUpdated,
		Tags:        req.Tags,
	})
	if err != nil {
		respondWithServiceError(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, taskToResponse(task))
}

// DeleteTask handles DELETE /api/v1/tasks?id=N.
func (h *TaskHandler) DeleteTask(w http.ResponseWriter, r *http.Request) {
	raw := r.URL.Query().Get("id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, "Invalid task id", err)
		return
	}

	if err := h.tasks.Delete(r.Context(), id); err != nil {
		respondWithServiceError(w, r, err)
		return
	}
	shared.RespondWithText(w, http.StatusOK, DeleteConfirmation)
}

// Health handles GET /health. It reports 503 when the store cannot be reached.
func (h *TaskHandler) Health(w http.ResponseWriter, r *http.Request) {
	if err := h.tasks.Ping(r.Context()); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusServiceUnavailable, "Task storage is unavailable", err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, HealthResponse{Status: "ok"})
}

// decodeAndValidate writes a 400 and returns false when the body is unusable.
func decodeAndValidate(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := shared.DecodeJSON(w, r, v); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, "Invalid request format", err)
		return false
	}
	if err := shared.ValidateRequest(v); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, SanitizeValidationError(err), err)
		return false
	}
	return true
}

func respondWithServiceError(w http.ResponseWriter, r *http.Request, err error) {
	shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
}

// NotFound answers unknown /api/v1 paths with a JSON 404.
func NotFound(w http.ResponseWriter, r *http.Request) {
	shared.RespondWithError(w, r, http.StatusNotFound, "Resource not found")
}

// MethodNotAllowed answers known API paths hit with an unsupported method.
func MethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	shared.RespondWithError(w, r, http.StatusMethodNotAllowed, "Method not allowed")
}
