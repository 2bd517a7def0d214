package types

import "time"

// Feedback is a free-form note exchanged between a candidate and a
// company after a hiring interaction.
type Feedback struct {
	// ID is the unique identifier of the feedback entry.
	ID int `json:"id" db:"id"`

	// CandidateID identifies the candidate side of the exchange.
	CandidateID int `json:"candidateId" db:"candidate_id"`

	// CompanyID identifies the company side of the exchange.
	CompanyID int `json:"companyId" db:"company_id"`

	// Text is the feedback body.
	Text string `json:"feedbackText" db:"feedback_text"`

	// From records which side authored the note, "candidate" or "company".
	From string `json:"from" db:"author_role"`

	// CandidateName is populated on reads for display.
	CandidateName string `json:"candidateName,omitempty" db:"-"`

	// CreatedAt is the timestamp when the feedback was submitted.
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// CompanyProfile is the public profile a company maintains alongside its
// task postings. One profile per company account.
type CompanyProfile struct {
	// ID is the unique identifier of the profile row.
	ID int `json:"id" db:"id"`

	// CompanyID identifies the owning company account.
	CompanyID int `json:"companyId" db:"company_id"`

	// SalaryRange is a free-form compensation band, e.g. "80k-120k".
	SalaryRange string `json:"salaryRange" db:"salary_range"`

	// CultureValues lists the company's self-described culture tags.
	CultureValues []string `json:"cultureValues" db:"culture_values"`

	// AboutCompany is a free-form description shown on the public page.
	AboutCompany string `json:"aboutCompany" db:"about_company"`

	// CreatedAt is the timestamp when the profile was first saved.
	CreatedAt time.Time `json:"created_at" db:"created_at"`

	// UpdatedAt is the timestamp of the most recent profile update.
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}
