package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"team-planner-backend/pkg/middleware"
	"team-planner-backend/pkg/models"
	"team-planner-backend/pkg/services"
	"team-planner-backend/pkg/utils"
)

// TasksHandler serves task CRUD and the derived day views.
type TasksHandler struct {
	tasks *services.TaskService
}

func NewTasksHandler(tasks *services.TaskService) *TasksHandler {
	return &TasksHandler{tasks: tasks}
}

// GET /api/tasks?date=YYYY-MM-DD&sort=priority
func (h *TasksHandler) List(w http.ResponseWriter, r *http.Request) {
	user, err := middleware.RequireUser(r.Context())
	if err != nil {
		utils.WriteUnauthorizedResponse(w, "Authentication required")
		return
	}

	var tasks []models.Task
	if date := r.URL.Query().Get("date"); date != "" {
		tasks, err = h.tasks.ListForDate(user.Email, date)
	} else {
		tasks, err = h.tasks.ListForUser(user.Email)
	}
	if err != nil {
		writeServiceError(w, err)
		return
	}

	byPriority := r.URL.Query().Get("sort") == "priority"
	tasks = services.SortForDisplay(tasks, byPriority)

	utils.WriteSuccessResponse(w, map[string]interface{}{"tasks": tasks})
}

// POST /api/tasks
func (h *TasksHandler) Create(w http.ResponseWriter, r *http.Request) {
	user, err := middleware.RequireUser(r.Context())
	if err != nil {
		utils.WriteUnauthorizedResponse(w, "Authentication required")
		return
	}

	var req models.CreateTaskRequest
	if err := utils.ParseJSONBody(r, &req); err != nil {
		utils.WriteBadRequestResponse(w, "Invalid request body")
		return
	}

	task, err := h.tasks.Create(user.Email, req)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	utils.WriteCreatedResponse(w, map[string]interface{}{"task": task})
}

// DELETE /api/tasks/{id}
func (h *TasksHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if _, err := middleware.RequireUser(r.Context()); err != nil {
		utils.WriteUnauthorizedResponse(w, "Authentication required")
		return
	}

	id := strings.TrimSpace(chi.URLParam(r, "id"))
	if id == "" {
		utils.WriteBadRequestResponse(w, "task id required")
		return
	}

	// Deleting an absent id is a no-op by contract, not an error.
	if err := h.tasks.Delete(id); err != nil {
		writeServiceError(w, err)
		return
	}
	utils.WriteSuccessResponse(w, map[string]interface{}{"deleted": true, "id": id})
}

// POST /api/tasks/{id}/toggle
func (h *TasksHandler) ToggleCompleted(w http.ResponseWriter, r *http.Request) {
	if _, err := middleware.RequireUser(r.Context()); err != nil {
		utils.WriteUnauthorizedResponse(w, "Authentication required")
		return
	}

	id := strings.TrimSpace(chi.URLParam(r, "id"))
	if id == "" {
		utils.WriteBadRequestResponse(w, "task id required")
		return
	}

	task, err := h.tasks.ToggleCompleted(id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	utils.WriteSuccessResponse(w, map[string]interface{}{"task": task})
}

// GET /api/tasks/today
func (h *TasksHandler) Today(w http.ResponseWriter, r *http.Request) {
	user, err := middleware.RequireUser(r.Context())
	if err != nil {
		utils.WriteUnauthorizedResponse(w, "Authentication required")
		return
	}

	summary, err := h.tasks.TodaySummary(user.Email, time.Now())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	utils.WriteSuccessResponse(w, summary)
}
