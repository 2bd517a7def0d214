package store

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/skillmatch-io/apiserver/types"
)

// ChallengeRepository handles persistence for challenges.
type ChallengeRepository struct {
	db *sql.DB
}

func NewChallengeRepository(db *sql.DB) *ChallengeRepository {
	return &ChallengeRepository{db: db}
}

func (r *ChallengeRepository) List(ctx context.Context) ([]types.Challenge, error) {
	const query = `
		SELECT id, title, description, type, input, expected_output,
		       boilerplate_code, language_tag, created_at
		FROM challenges
		ORDER BY id`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	challenges := []types.Challenge{}
	for rows.Next() {
		var c types.Challenge
		if err := rows.Scan(
			&c.ID,
			&c.Title,
			&c.Description,
			&c.Type,
			&c.Input,
			&c.ExpectedOutput,
			&c.BoilerplateCode,
			&c.LanguageTag,
			&c.CreatedAt,
		); err != nil {
			return nil, err
		}
		challenges = append(challenges, c)
	}
	return challenges, rows.Err()
}

func (r *ChallengeRepository) Get(ctx context.Context, id int) (types.Challenge, error) {
	const query = `
		SELECT id, title, description, type, input, expected_output,
		       boilerplate_code, language_tag, created_at
		FROM challenges
		WHERE id = $1`
	var c types.Challenge
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&c.ID,
		&c.Title,
		&c.Description,
		&c.Type,
		&c.Input,
		&c.ExpectedOutput,
		&c.BoilerplateCode,
		&c.LanguageTag,
		&c.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return types.Challenge{}, ErrNotFound
		}
		return types.Challenge{}, err
	}
	return c, nil
}

func (r *ChallengeRepository) Create(ctx context.Context, challenge types.Challenge) (types.Challenge, error) {
	challenge.CreatedAt = time.Now()

	const query = `
		INSERT INTO challenges (title, description, type, input, expected_output,
		                        boilerplate_code, language_tag, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id`
	if err := r.db.QueryRowContext(
		ctx,
		query,
		challenge.Title,
		challenge.Description,
		challenge.Type,
		challenge.Input,
		challenge.ExpectedOutput,
		challenge.BoilerplateCode,
		challenge.LanguageTag,
		challenge.CreatedAt,
	).Scan(&challenge.ID); err != nil {
		return types.Challenge{}, err
	}
	return challenge, nil
}
