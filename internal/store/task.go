package store

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/skillmatch-io/apiserver/types"
)

// TaskRepository handles persistence for company-posted tasks.
type TaskRepository struct {
	db *sql.DB
}

func NewTaskRepository(db *sql.DB) *TaskRepository {
	return &TaskRepository{db: db}
}

func (r *TaskRepository) Get(ctx context.Context, id int) (types.Task, error) {
	const query = `
		SELECT id, company_id, title, description, required_skill, created_at
		FROM tasks
		WHERE id = $1`
	var task types.Task
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&task.ID,
		&task.CompanyID,
		&task.Title,
		&task.Description,
		&task.RequiredSkill,
		&task.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return types.Task{}, ErrNotFound
		}
		return types.Task{}, err
	}
	return task, nil
}

func (r *TaskRepository) List(ctx context.Context) ([]types.Task, error) {
	const query = `
		SELECT id, company_id, title, description, required_skill, created_at
		FROM tasks
		ORDER BY created_at DESC`
	return r.queryTasks(ctx, query)
}

func (r *TaskRepository) ListByCompany(ctx context.Context, companyID int) ([]types.Task, error) {
	const query = `
		SELECT id, company_id, title, description, required_skill, created_at
		FROM tasks
		WHERE company_id = $1
		ORDER BY created_at DESC`
	return r.queryTasks(ctx, query, companyID)
}

func (r *TaskRepository) Create(ctx context.Context, task types.Task) (types.Task, error) {
	task.CreatedAt = time.Now()

	const query = `
		INSERT INTO tasks (company_id, title, description, required_skill, created_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`
	if err := r.db.QueryRowContext(
		ctx,
		query,
		task.CompanyID,
		task.Title,
		task.Description,
		task.RequiredSkill,
		task.CreatedAt,
	).Scan(&task.ID); err != nil {
		return types.Task{}, err
	}
	return task, nil
}

func (r *TaskRepository) queryTasks(ctx context.Context, query string, args ...any) ([]types.Task, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tasks := []types.Task{}
	for rows.Next() {
		var task types.Task
		if err := rows.Scan(
			&task.ID,
			&task.CompanyID,
			&task.Title,
			&task.Description,
			&task.RequiredSkill,
			&task.CreatedAt,
		); err != nil {
			return nil, err
		}
		tasks = append(tasks, task)
	}
	return tasks, rows.Err()
}
