package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/skillmatch-io/apiserver/internal/services"
	"github.com/skillmatch-io/apiserver/types"
)

// TaskHandler provides task posting and matching endpoints.
type TaskHandler struct {
	taskService *services.TaskService
}

func NewTaskHandler(taskService *services.TaskService) *TaskHandler {
	return &TaskHandler{taskService: taskService}
}

// TaskRouter registers task routes on the given router.
func TaskRouter(r chi.Router, taskService *services.TaskService) {
	handler := NewTaskHandler(taskService)

	r.With(RequireRole(types.RoleCompany)).Post("/post-task", handler.Post)
	r.With(RequireRole(types.RoleCompany)).Get("/tasks", handler.ListOwn)
	r.With(RequireRole(types.RoleCandidate)).Get("/match-tasks", handler.Matched)
}

type PostTaskRequest struct {
	Title         string `json:"title"`
	Description   string `json:"description"`
	RequiredSkill string `json:"requiredSkill"`
}

func (h *TaskHandler) Post(w http.ResponseWriter, r *http.Request) {
	identity, ok := identityFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "No token, authorization denied")
		return
	}

	var req PostTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	task, err := h.taskService.Post(
		r.Context(),
		identity.UserID,
		strings.TrimSpace(req.Title),
		strings.TrimSpace(req.Description),
		strings.TrimSpace(req.RequiredSkill),
	)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, task)
}

func (h *TaskHandler) ListOwn(w http.ResponseWriter, r *http.Request) {
	identity, ok := identityFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "No token, authorization denied")
		return
	}

	tasks, err := h.taskService.ListByCompany(r.Context(), identity.UserID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, tasks)
}

// Matched returns every open task annotated with the candidate's match
// score.
func (h *TaskHandler) Matched(w http.ResponseWriter, r *http.Request) {
	identity, ok := identityFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "No token, authorization denied")
		return
	}

	matched, err := h.taskService.MatchedForCandidate(r.Context(), identity.UserID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, matched)
}
