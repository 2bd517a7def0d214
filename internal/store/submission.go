package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/skillmatch-io/apiserver/types"
)

// SubmissionRepository handles persistence for challenge submissions.
type SubmissionRepository struct {
	db *sql.DB
}

func NewSubmissionRepository(db *sql.DB) *SubmissionRepository {
	return &SubmissionRepository{db: db}
}

func (r *SubmissionRepository) Create(ctx context.Context, submission types.Submission) (types.Submission, error) {
	submission.SubmittedAt = time.Now()

	const query = `
		INSERT INTO challenge_submissions (user_id, challenge_id, code, language,
		                                   score, verdict, code_object_key, submitted_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id`
	if err := r.db.QueryRowContext(
		ctx,
		query,
		submission.UserID,
		submission.ChallengeID,
		submission.Code,
		submission.Language,
		submission.Score,
		submission.Verdict,
		submission.CodeObjectKey,
		submission.SubmittedAt,
	).Scan(&submission.ID); err != nil {
		return types.Submission{}, err
	}
	return submission, nil
}

func (r *SubmissionRepository) ListByUser(ctx context.Context, userID int) ([]types.Submission, error) {
	const query = `
		SELECT id, user_id, challenge_id, code, language, score, verdict,
		       code_object_key, submitted_at
		FROM challenge_submissions
		WHERE user_id = $1
		ORDER BY submitted_at DESC`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	submissions := []types.Submission{}
	for rows.Next() {
		var s types.Submission
		if err := rows.Scan(
			&s.ID,
			&s.UserID,
			&s.ChallengeID,
			&s.Code,
			&s.Language,
			&s.Score,
			&s.Verdict,
			&s.CodeObjectKey,
			&s.SubmittedAt,
		); err != nil {
			return nil, err
		}
		submissions = append(submissions, s)
	}
	return submissions, rows.Err()
}
