package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/skillmatch-io/apiserver/internal/services"
	"github.com/skillmatch-io/apiserver/types"
)

// FeedbackHandler provides feedback and company profile endpoints.
type FeedbackHandler struct {
	feedbackService *services.FeedbackService
}

func NewFeedbackHandler(feedbackService *services.FeedbackService) *FeedbackHandler {
	return &FeedbackHandler{feedbackService: feedbackService}
}

// FeedbackRouter registers the authenticated feedback routes.
func FeedbackRouter(r chi.Router, feedbackService *services.FeedbackService) {
	handler := NewFeedbackHandler(feedbackService)

	r.With(RequireRole(types.RoleCompany)).Post("/company-profile", handler.SaveProfile)
	r.Post("/feedback", handler.Submit)
}

// PublicFeedbackRouter registers the unauthenticated reads.
func PublicFeedbackRouter(r chi.Router, feedbackService *services.FeedbackService) {
	handler := NewFeedbackHandler(feedbackService)

	r.Get("/company-profile/{companyID}", handler.GetProfile)
	r.Get("/feedback/{companyID}", handler.ListForCompany)
}

type CompanyProfileRequest struct {
	SalaryRange   string   `json:"salaryRange"`
	CultureValues []string `json:"cultureValues"`
	AboutCompany  string   `json:"aboutCompany"`
}

// SaveProfile creates or replaces the caller's company profile.
func (h *FeedbackHandler) SaveProfile(w http.ResponseWriter, r *http.Request) {
	identity, ok := identityFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "No token, authorization denied")
		return
	}

	var req CompanyProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	profile, err := h.feedbackService.SaveProfile(r.Context(), types.CompanyProfile{
		CompanyID:     identity.UserID,
		SalaryRange:   strings.TrimSpace(req.SalaryRange),
		CultureValues: req.CultureValues,
		AboutCompany:  strings.TrimSpace(req.AboutCompany),
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, profile)
}

func (h *FeedbackHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	companyID, err := parseIDParam(r, "companyID")
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid company id")
		return
	}

	profile, err := h.feedbackService.GetProfile(r.Context(), companyID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, profile)
}

type FeedbackRequest struct {
	CandidateID int    `json:"candidateId"`
	CompanyID   int    `json:"companyId"`
	Text        string `json:"feedbackText"`
	From        string `json:"from"`
}

// Submit stores one feedback entry between a candidate and a company.
// Either side may write; the from field records the author's role.
func (h *FeedbackHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var req FeedbackRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	feedback, err := h.feedbackService.Submit(r.Context(), types.Feedback{
		CandidateID: req.CandidateID,
		CompanyID:   req.CompanyID,
		Text:        strings.TrimSpace(req.Text),
		From:        req.From,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, feedback)
}

func (h *FeedbackHandler) ListForCompany(w http.ResponseWriter, r *http.Request) {
	companyID, err := parseIDParam(r, "companyID")
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid company id")
		return
	}

	feedback, err := h.feedbackService.ListForCompany(r.Context(), companyID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, feedback)
}
