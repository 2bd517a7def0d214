package types

import "time"

// Task represents a company-posted work item candidates can submit
// solutions for.
type Task struct {
	// ID is the unique identifier of the task.
	ID int `json:"id" db:"id"`

	// CompanyID identifies the company account that posted the task.
	CompanyID int `json:"companyId" db:"company_id"`

	// Title is the human-readable name of the task.
	Title string `json:"title" db:"title"`

	// Description contains the full task statement.
	Description string `json:"description" db:"description"`

	// RequiredSkill is the skill tag a candidate should hold for this
	// task. It drives the match score and is compared case-sensitively.
	RequiredSkill string `json:"requiredSkill" db:"required_skill"`

	// CreatedAt is the timestamp at which the task was posted.
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// MatchedTask is a task annotated with the caller's match score.
// The score annotates every task; nothing is filtered out.
type MatchedTask struct {
	Task

	// MatchScore is the coarse skill-fit signal for one candidate.
	MatchScore int `json:"matchScore"`
}
