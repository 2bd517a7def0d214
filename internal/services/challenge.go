package services

import (
	"context"

	"github.com/skillmatch-io/apiserver/types"
)

// ChallengeRepository defines persistence operations for challenges.
type ChallengeRepository interface {
	List(ctx context.Context) ([]types.Challenge, error)
	Get(ctx context.Context, id int) (types.Challenge, error)
	Create(ctx context.Context, challenge types.Challenge) (types.Challenge, error)
}

// ChallengeService encapsulates challenge use-cases.
type ChallengeService struct {
	repo ChallengeRepository
}

func NewChallengeService(repo ChallengeRepository) *ChallengeService {
	return &ChallengeService{repo: repo}
}

func (s *ChallengeService) List(ctx context.Context) ([]types.Challenge, error) {
	return s.repo.List(ctx)
}

func (s *ChallengeService) Get(ctx context.Context, id int) (types.Challenge, error) {
	return s.repo.Get(ctx, id)
}

func (s *ChallengeService) Create(ctx context.Context, challenge types.Challenge) (types.Challenge, error) {
	if challenge.Title == "" {
		return types.Challenge{}, validationErr("Title is required")
	}
	if challenge.LanguageTag == "" {
		return types.Challenge{}, validationErr("Language tag is required")
	}
	return s.repo.Create(ctx, challenge)
}
