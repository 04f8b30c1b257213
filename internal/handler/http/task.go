package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/teamdesk-backend-go/internal/domain/task"
	"github.com/cmlabs-hris/teamdesk-backend-go/internal/handler/http/middleware"
	"github.com/cmlabs-hris/teamdesk-backend-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type TaskHandler interface {
	List(w http.ResponseWriter, r *http.Request)
	Assign(w http.ResponseWriter, r *http.Request)
	Split(w http.ResponseWriter, r *http.Request)
	UpdateProgress(w http.ResponseWriter, r *http.Request)
}

type taskHandlerImpl struct {
	taskService task.TaskService
}

func NewTaskHandler(taskService task.TaskService) TaskHandler {
	return &taskHandlerImpl{
		taskService: taskService,
	}
}

// List handles GET /tasks. The shape of the result depends on the caller's role.
func (h *taskHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	identity, err := middleware.IdentityFromContext(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	tasks, err := h.taskService.ListFor(r.Context(), identity)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, tasks)
}

// Assign handles POST /tasks
func (h *taskHandlerImpl) Assign(w http.ResponseWriter, r *http.Request) {
	identity, err := middleware.IdentityFromContext(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	var req task.AssignTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Assign decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	created, err := h.taskService.Assign(r.Context(), identity, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Task assigned successfully", created)
}

// Split handles POST /tasks/{id}/split
func (h *taskHandlerImpl) Split(w http.ResponseWriter, r *http.Request) {
	identity, err := middleware.IdentityFromContext(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	var req task.SplitTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Split decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.ParentTaskID = chi.URLParam(r, "id")

	result, err := h.taskService.Split(r.Context(), identity, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Task split successfully", result)
}

// UpdateProgress handles PATCH /tasks/{id}/progress
func (h *taskHandlerImpl) UpdateProgress(w http.ResponseWriter, r *http.Request) {
	identity, err := middleware.IdentityFromContext(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	var req task.UpdateProgressRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("UpdateProgress decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.TaskID = chi.URLParam(r, "id")

	updated, err := h.taskService.UpdateProgress(r.Context(), identity, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Task progress updated", updated)
}
