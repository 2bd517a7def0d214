package store

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/skillmatch-io/apiserver/types"
)

// TaskSubmissionRepository handles persistence for task submissions.
type TaskSubmissionRepository struct {
	db *sql.DB
}

func NewTaskSubmissionRepository(db *sql.DB) *TaskSubmissionRepository {
	return &TaskSubmissionRepository{db: db}
}

func (r *TaskSubmissionRepository) Get(ctx context.Context, id int) (types.TaskSubmission, error) {
	const query = `
		SELECT id, task_id, user_id, code, language, score, status,
		       code_object_key, submitted_at
		FROM task_submissions
		WHERE id = $1`
	var s types.TaskSubmission
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&s.ID,
		&s.TaskID,
		&s.UserID,
		&s.Code,
		&s.Language,
		&s.Score,
		&s.Status,
		&s.CodeObjectKey,
		&s.SubmittedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return types.TaskSubmission{}, ErrNotFound
		}
		return types.TaskSubmission{}, err
	}
	return s, nil
}

func (r *TaskSubmissionRepository) Create(ctx context.Context, submission types.TaskSubmission) (types.TaskSubmission, error) {
	submission.SubmittedAt = time.Now()

	const query = `
		INSERT INTO task_submissions (task_id, user_id, code, language, score,
		                              status, code_object_key, submitted_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id`
	if err := r.db.QueryRowContext(
		ctx,
		query,
		submission.TaskID,
		submission.UserID,
		submission.Code,
		submission.Language,
		submission.Score,
		submission.Status,
		submission.CodeObjectKey,
		submission.SubmittedAt,
	).Scan(&submission.ID); err != nil {
		return types.TaskSubmission{}, err
	}
	return submission, nil
}

// UpdateStatus overwrites the submission status, e.g. marking it "hired".
func (r *TaskSubmissionRepository) UpdateStatus(ctx context.Context, id int, status string) error {
	const query = `UPDATE task_submissions SET status = $2 WHERE id = $1`
	result, err := r.db.ExecContext(ctx, query, id, status)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// ListByCompany returns every submission to the company's tasks, joined
// with candidate identity and task title for review.
func (r *TaskSubmissionRepository) ListByCompany(ctx context.Context, companyID int) ([]types.TaskSubmissionDetail, error) {
	const query = `
		SELECT s.id, s.task_id, s.user_id, s.code, s.language, s.score, s.status,
		       s.code_object_key, s.submitted_at, u.name, u.email, t.title
		FROM task_submissions s
		JOIN tasks t ON t.id = s.task_id
		JOIN users u ON u.id = s.user_id
		WHERE t.company_id = $1
		ORDER BY s.submitted_at DESC`
	rows, err := r.db.QueryContext(ctx, query, companyID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	details := []types.TaskSubmissionDetail{}
	for rows.Next() {
		var d types.TaskSubmissionDetail
		if err := rows.Scan(
			&d.ID,
			&d.TaskID,
			&d.UserID,
			&d.Code,
			&d.Language,
			&d.Score,
			&d.Status,
			&d.CodeObjectKey,
			&d.SubmittedAt,
			&d.CandidateName,
			&d.CandidateEmail,
			&d.TaskTitle,
		); err != nil {
			return nil, err
		}
		details = append(details, d)
	}
	return details, rows.Err()
}

// ListAnonymousByTask returns submissions for one task without any
// candidate identity attached.
func (r *TaskSubmissionRepository) ListAnonymousByTask(ctx context.Context, taskID int) ([]types.AnonymousSubmission, error) {
	const query = `
		SELECT s.id, s.task_id, t.title, s.code, s.language, s.score, s.submitted_at
		FROM task_submissions s
		JOIN tasks t ON t.id = s.task_id
		WHERE s.task_id = $1
		ORDER BY s.submitted_at DESC`
	rows, err := r.db.QueryContext(ctx, query, taskID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	submissions := []types.AnonymousSubmission{}
	for rows.Next() {
		var s types.AnonymousSubmission
		if err := rows.Scan(
			&s.ID,
			&s.TaskID,
			&s.TaskTitle,
			&s.Code,
			&s.Language,
			&s.Score,
			&s.SubmittedAt,
		); err != nil {
			return nil, err
		}
		submissions = append(submissions, s)
	}
	return submissions, rows.Err()
}

// SummarizeByCompany aggregates submission counts and rounded average
// scores per task for the company dashboard.
func (r *TaskSubmissionRepository) SummarizeByCompany(ctx context.Context, companyID int) ([]types.TaskSummary, error) {
	const query = `
		SELECT t.id, t.title,
		       COUNT(s.id),
		       COALESCE(ROUND(AVG(s.score)), 0)
		FROM tasks t
		LEFT JOIN task_submissions s ON s.task_id = t.id
		WHERE t.company_id = $1
		GROUP BY t.id, t.title
		ORDER BY t.created_at DESC`
	rows, err := r.db.QueryContext(ctx, query, companyID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	summaries := []types.TaskSummary{}
	for rows.Next() {
		var s types.TaskSummary
		if err := rows.Scan(&s.TaskID, &s.TaskTitle, &s.TotalSubmissions, &s.AverageScore); err != nil {
			return nil, err
		}
		summaries = append(summaries, s)
	}
	return summaries, rows.Err()
}
