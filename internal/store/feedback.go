package store

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/lib/pq"
	"github.com/skillmatch-io/apiserver/types"
)

// FeedbackRepository handles persistence for feedback entries.
type FeedbackRepository struct {
	db *sql.DB
}

func NewFeedbackRepository(db *sql.DB) *FeedbackRepository {
	return &FeedbackRepository{db: db}
}

func (r *FeedbackRepository) Create(ctx context.Context, feedback types.Feedback) (types.Feedback, error) {
	feedback.CreatedAt = time.Now()

	const query = `
		INSERT INTO feedback (candidate_id, company_id, feedback_text, author_role, created_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`
	if err := r.db.QueryRowContext(
		ctx,
		query,
		feedback.CandidateID,
		feedback.CompanyID,
		feedback.Text,
		feedback.From,
		feedback.CreatedAt,
	).Scan(&feedback.ID); err != nil {
		return types.Feedback{}, err
	}
	return feedback, nil
}

// ListByCompany returns feedback involving a company, with candidate
// names resolved for display.
func (r *FeedbackRepository) ListByCompany(ctx context.Context, companyID int) ([]types.Feedback, error) {
	const query = `
		SELECT f.id, f.candidate_id, f.company_id, f.feedback_text, f.author_role,
		       f.created_at, u.name
		FROM feedback f
		JOIN users u ON u.id = f.candidate_id
		WHERE f.company_id = $1
		ORDER BY f.created_at DESC`
	rows, err := r.db.QueryContext(ctx, query, companyID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := []types.Feedback{}
	for rows.Next() {
		var f types.Feedback
		if err := rows.Scan(
			&f.ID,
			&f.CandidateID,
			&f.CompanyID,
			&f.Text,
			&f.From,
			&f.CreatedAt,
			&f.CandidateName,
		); err != nil {
			return nil, err
		}
		entries = append(entries, f)
	}
	return entries, rows.Err()
}

// CompanyProfileRepository handles persistence for company profiles.
type CompanyProfileRepository struct {
	db *sql.DB
}

func NewCompanyProfileRepository(db *sql.DB) *CompanyProfileRepository {
	return &CompanyProfileRepository{db: db}
}

// Upsert creates or replaces the profile for a company. The unique
// constraint on company_id makes concurrent upserts safe.
func (r *CompanyProfileRepository) Upsert(ctx context.Context, profile types.CompanyProfile) (types.CompanyProfile, error) {
	now := time.Now()
	if profile.CultureValues == nil {
		profile.CultureValues = []string{}
	}

	const query = `
		INSERT INTO company_profiles (company_id, salary_range, culture_values,
		                              about_company, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $5)
		ON CONFLICT (company_id) DO UPDATE
		SET salary_range = EXCLUDED.salary_range,
			culture_values = EXCLUDED.culture_values,
			about_company = EXCLUDED.about_company,
			updated_at = EXCLUDED.updated_at
		RETURNING id, created_at, updated_at`
	if err := r.db.QueryRowContext(
		ctx,
		query,
		profile.CompanyID,
		profile.SalaryRange,
		pq.Array(profile.CultureValues),
		profile.AboutCompany,
		now,
	).Scan(&profile.ID, &profile.CreatedAt, &profile.UpdatedAt); err != nil {
		return types.CompanyProfile{}, err
	}
	return profile, nil
}

func (r *CompanyProfileRepository) GetByCompany(ctx context.Context, companyID int) (types.CompanyProfile, error) {
	const query = `
		SELECT id, company_id, salary_range, culture_values, about_company,
		       created_at, updated_at
		FROM company_profiles
		WHERE company_id = $1`
	var profile types.CompanyProfile
	err := r.db.QueryRowContext(ctx, query, companyID).Scan(
		&profile.ID,
		&profile.CompanyID,
		&profile.SalaryRange,
		pq.Array(&profile.CultureValues),
		&profile.AboutCompany,
		&profile.CreatedAt,
		&profile.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return types.CompanyProfile{}, ErrNotFound
		}
		return types.CompanyProfile{}, err
	}
	if profile.CultureValues == nil {
		profile.CultureValues = []string{}
	}
	return profile, nil
}
