package types

import "time"

// TaskSubmissionStatusHired marks a task submission whose author the
// company decided to hire.
const TaskSubmissionStatusHired = "hired"

// Submission represents a candidate's graded attempt at a challenge.
type Submission struct {
	// ID is the unique identifier of the submission.
	ID int `json:"id" db:"id"`

	// UserID identifies the candidate who made the submission.
	UserID int `json:"userId" db:"user_id"`

	// ChallengeID identifies the challenge this submission is for.
	ChallengeID int `json:"challengeId" db:"challenge_id"`

	// Code is the source code submitted by the candidate.
	Code string `json:"submittedCode" db:"code"`

	// Language is the identifier of the programming language used.
	Language string `json:"language" db:"language"`

	// Score is the grade awarded: 100 for an accepted run, 0 otherwise.
	Score int `json:"score" db:"score"`

	// Verdict is the judge's verdict description, e.g. "Accepted".
	Verdict string `json:"status" db:"verdict"`

	// CodeObjectKey is the object-storage key of the archived source,
	// empty when archiving is disabled.
	CodeObjectKey string `json:"-" db:"code_object_key"`

	// SubmittedAt is the timestamp when the submission was received.
	SubmittedAt time.Time `json:"submittedAt" db:"submitted_at"`
}

// TaskSubmission represents a candidate's graded attempt at a
// company-posted task.
type TaskSubmission struct {
	// ID is the unique identifier of the submission.
	ID int `json:"id" db:"id"`

	// TaskID identifies the task this submission is for.
	TaskID int `json:"taskId" db:"task_id"`

	// UserID identifies the candidate who made the submission.
	UserID int `json:"userId" db:"user_id"`

	// Code is the source code submitted by the candidate.
	Code string `json:"submittedCode" db:"code"`

	// Language is the identifier of the programming language used.
	Language string `json:"language" db:"language"`

	// Score is the grade awarded: 100 for an accepted run, 0 otherwise.
	Score int `json:"score" db:"score"`

	// Status is the judge's verdict description until the company acts on
	// the submission, after which it may become "hired".
	Status string `json:"status" db:"status"`

	// CodeObjectKey is the object-storage key of the archived source,
	// empty when archiving is disabled.
	CodeObjectKey string `json:"-" db:"code_object_key"`

	// SubmittedAt is the timestamp when the submission was received.
	SubmittedAt time.Time `json:"submittedAt" db:"submitted_at"`
}

// TaskSubmissionDetail joins a task submission with the candidate's
// identity and the task title for company review screens.
type TaskSubmissionDetail struct {
	TaskSubmission

	CandidateName  string `json:"candidateName"`
	CandidateEmail string `json:"candidateEmail"`
	TaskTitle      string `json:"taskTitle"`
}

// AnonymousSubmission is a task submission stripped of candidate identity,
// exposed on the public review endpoint.
type AnonymousSubmission struct {
	ID          int       `json:"id"`
	TaskID      int       `json:"taskId"`
	TaskTitle   string    `json:"taskTitle"`
	Code        string    `json:"submittedCode"`
	Language    string    `json:"language"`
	Score       int       `json:"score"`
	SubmittedAt time.Time `json:"submittedAt"`
}

// TaskSummary aggregates submission activity for one task.
type TaskSummary struct {
	TaskID           int    `json:"taskId"`
	TaskTitle        string `json:"taskTitle"`
	TotalSubmissions int    `json:"totalSubmissions"`
	AverageScore     int    `json:"averageScore"`
}
