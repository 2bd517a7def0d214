package services

import (
	"context"

	"github.com/skillmatch-io/apiserver/internal/match"
	"github.com/skillmatch-io/apiserver/types"
)

// TaskRepository defines persistence operations for tasks.
type TaskRepository interface {
	Get(ctx context.Context, id int) (types.Task, error)
	List(ctx context.Context) ([]types.Task, error)
	ListByCompany(ctx context.Context, companyID int) ([]types.Task, error)
	Create(ctx context.Context, task types.Task) (types.Task, error)
}

// TaskService encapsulates task posting and matching use-cases.
type TaskService struct {
	tasks TaskRepository
	users UserRepository
}

func NewTaskService(tasks TaskRepository, users UserRepository) *TaskService {
	return &TaskService{tasks: tasks, users: users}
}

// Post creates a task on behalf of a company.
func (s *TaskService) Post(ctx context.Context, companyID int, title, description, requiredSkill string) (types.Task, error) {
	if title == "" || description == "" {
		return types.Task{}, validationErr("Title and description are required")
	}
	return s.tasks.Create(ctx, types.Task{
		CompanyID:     companyID,
		Title:         title,
		Description:   description,
		RequiredSkill: requiredSkill,
	})
}

// ListByCompany returns the tasks a company has posted.
func (s *TaskService) ListByCompany(ctx context.Context, companyID int) ([]types.Task, error) {
	return s.tasks.ListByCompany(ctx, companyID)
}

// MatchedForCandidate annotates every task with the candidate's match
// score. Tasks are never filtered here; ranking is left to the caller.
func (s *TaskService) MatchedForCandidate(ctx context.Context, userID int) ([]types.MatchedTask, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	tasks, err := s.tasks.List(ctx)
	if err != nil {
		return nil, err
	}

	matched := make([]types.MatchedTask, 0, len(tasks))
	for _, task := range tasks {
		matched = append(matched, types.MatchedTask{
			Task:       task,
			MatchScore: match.Score(user.Skills, task.RequiredSkill),
		})
	}
	return matched, nil
}
