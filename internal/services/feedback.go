package services

import (
	"context"

	"github.com/skillmatch-io/apiserver/types"
)

// FeedbackRepository defines persistence operations for feedback.
type FeedbackRepository interface {
	Create(ctx context.Context, feedback types.Feedback) (types.Feedback, error)
	ListByCompany(ctx context.Context, companyID int) ([]types.Feedback, error)
}

// CompanyProfileRepository defines persistence operations for company
// profiles.
type CompanyProfileRepository interface {
	Upsert(ctx context.Context, profile types.CompanyProfile) (types.CompanyProfile, error)
	GetByCompany(ctx context.Context, companyID int) (types.CompanyProfile, error)
}

// FeedbackService encapsulates feedback exchange and company profile
// use-cases.
type FeedbackService struct {
	feedback FeedbackRepository
	profiles CompanyProfileRepository
}

func NewFeedbackService(feedback FeedbackRepository, profiles CompanyProfileRepository) *FeedbackService {
	return &FeedbackService{feedback: feedback, profiles: profiles}
}

// SaveProfile creates or replaces the company's public profile.
func (s *FeedbackService) SaveProfile(ctx context.Context, profile types.CompanyProfile) (types.CompanyProfile, error) {
	if profile.SalaryRange == "" {
		return types.CompanyProfile{}, validationErr("Salary range is required")
	}
	return s.profiles.Upsert(ctx, profile)
}

// GetProfile returns a company's public profile.
func (s *FeedbackService) GetProfile(ctx context.Context, companyID int) (types.CompanyProfile, error) {
	return s.profiles.GetByCompany(ctx, companyID)
}

// Submit stores one feedback entry after validating its shape.
func (s *FeedbackService) Submit(ctx context.Context, feedback types.Feedback) (types.Feedback, error) {
	if feedback.Text == "" {
		return types.Feedback{}, validationErr("Feedback text is required")
	}
	if feedback.CandidateID < 1 || feedback.CompanyID < 1 {
		return types.Feedback{}, validationErr("Candidate and company are required")
	}
	if !types.ValidRole(feedback.From) {
		return types.Feedback{}, validationErr("From must be either candidate or company")
	}
	return s.feedback.Create(ctx, feedback)
}

// ListForCompany returns feedback involving a company.
func (s *FeedbackService) ListForCompany(ctx context.Context, companyID int) ([]types.Feedback, error) {
	return s.feedback.ListByCompany(ctx, companyID)
}
