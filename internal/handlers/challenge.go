package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/skillmatch-io/apiserver/internal/services"
	"github.com/skillmatch-io/apiserver/types"
)

// ChallengeHandler provides practice challenge endpoints.
type ChallengeHandler struct {
	challengeService  *services.ChallengeService
	submissionService *services.SubmissionService
}

func NewChallengeHandler(challengeService *services.ChallengeService, submissionService *services.SubmissionService) *ChallengeHandler {
	return &ChallengeHandler{
		challengeService:  challengeService,
		submissionService: submissionService,
	}
}

// ChallengeRouter registers challenge routes. All of them require a
// candidate caller.
func ChallengeRouter(r chi.Router, challengeService *services.ChallengeService, submissionService *services.SubmissionService) {
	handler := NewChallengeHandler(challengeService, submissionService)

	r.Use(RequireRole(types.RoleCandidate))
	r.Get("/", handler.List)
	r.Post("/submit", handler.Submit)
}

func (h *ChallengeHandler) List(w http.ResponseWriter, r *http.Request) {
	challenges, err := h.challengeService.List(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, challenges)
}

type ChallengeSubmitRequest struct {
	ChallengeID int    `json:"challengeId"`
	Code        string `json:"code"`
	Language    string `json:"language"`
}

// GradeResponse pairs a confirmation message with the grading outcome.
type GradeResponse struct {
	Msg string `json:"msg"`
	services.GradeOutcome
}

// Submit runs the candidate's code against the challenge and returns
// the verdict and score.
func (h *ChallengeHandler) Submit(w http.ResponseWriter, r *http.Request) {
	identity, ok := identityFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "No token, authorization denied")
		return
	}

	var req ChallengeSubmitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	outcome, err := h.submissionService.SubmitChallenge(r.Context(), identity.UserID, req.ChallengeID, req.Code, req.Language)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, GradeResponse{Msg: "Submission evaluated", GradeOutcome: outcome})
}
