package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/skillmatch-io/apiserver/internal/services"
	"github.com/skillmatch-io/apiserver/types"
)

// SubmissionHandler provides task submission and hiring endpoints.
type SubmissionHandler struct {
	submissionService *services.SubmissionService
}

func NewSubmissionHandler(submissionService *services.SubmissionService) *SubmissionHandler {
	return &SubmissionHandler{submissionService: submissionService}
}

// SubmissionRouter registers task submission routes on the given
// router.
func SubmissionRouter(r chi.Router, submissionService *services.SubmissionService) {
	handler := NewSubmissionHandler(submissionService)

	r.With(RequireRole(types.RoleCandidate)).Post("/submit", handler.Submit)
	r.With(RequireRole(types.RoleCandidate)).Get("/my-submissions", handler.ListOwn)
	r.With(RequireRole(types.RoleCompany)).Get("/task-submissions", handler.ListForCompany)
	r.With(RequireRole(types.RoleCompany)).Get("/task-submissions/summary", handler.Summary)
	r.With(RequireRole(types.RoleCompany)).Patch("/hire/{submissionID}", handler.Hire)
}

type TaskSubmitRequest struct {
	TaskID   int    `json:"taskId"`
	Code     string `json:"code"`
	Language string `json:"language"`
}

// Submit runs the candidate's code for a task and records the attempt.
func (h *SubmissionHandler) Submit(w http.ResponseWriter, r *http.Request) {
	identity, ok := identityFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "No token, authorization denied")
		return
	}

	var req TaskSubmitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	outcome, err := h.submissionService.SubmitTask(r.Context(), identity.UserID, req.TaskID, req.Code, req.Language)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, GradeResponse{Msg: "Task submitted", GradeOutcome: outcome})
}

// ListOwn returns the caller's graded challenge attempts.
func (h *SubmissionHandler) ListOwn(w http.ResponseWriter, r *http.Request) {
	identity, ok := identityFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "No token, authorization denied")
		return
	}

	submissions, err := h.submissionService.ListChallengeSubmissionsForUser(r.Context(), identity.UserID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, submissions)
}

func (h *SubmissionHandler) ListForCompany(w http.ResponseWriter, r *http.Request) {
	identity, ok := identityFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "No token, authorization denied")
		return
	}

	submissions, err := h.submissionService.ListForCompany(r.Context(), identity.UserID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, submissions)
}

func (h *SubmissionHandler) Summary(w http.ResponseWriter, r *http.Request) {
	identity, ok := identityFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "No token, authorization denied")
		return
	}

	summaries, err := h.submissionService.SummarizeForCompany(r.Context(), identity.UserID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, summaries)
}

// Hire marks a submission's candidate as hired. Only the company that
// posted the task may hire against it.
func (h *SubmissionHandler) Hire(w http.ResponseWriter, r *http.Request) {
	identity, ok := identityFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "No token, authorization denied")
		return
	}

	submissionID, err := parseIDParam(r, "submissionID")
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid submission id")
		return
	}

	if err := h.submissionService.Hire(r.Context(), identity.UserID, submissionID); err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, MessageResponse{Msg: "Candidate hired successfully!"})
}

// AnonymousSubmissions lists a task's submissions without candidate
// identity. It is intentionally unauthenticated.
func AnonymousSubmissions(submissionService *services.SubmissionService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		taskID, err := parseIDParam(r, "taskID")
		if err != nil {
			writeError(w, http.StatusBadRequest, "Invalid task id")
			return
		}

		submissions, err := submissionService.AnonymousByTask(r.Context(), taskID)
		if err != nil {
			writeServiceError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, submissions)
	}
}
