package services

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"github.com/skillmatch-io/apiserver/internal/judge"
	"github.com/skillmatch-io/apiserver/internal/mq"
	"github.com/skillmatch-io/apiserver/internal/storage"
	"github.com/skillmatch-io/apiserver/types"
)

// Grading constants: an accepted run earns acceptedScore, anything else
// zero. A skill tag is awarded at passingScore or above.
const (
	acceptedScore = 100
	passingScore  = 80
)

// SubmissionRepository defines persistence operations for challenge
// submissions.
type SubmissionRepository interface {
	Create(ctx context.Context, submission types.Submission) (types.Submission, error)
	ListByUser(ctx context.Context, userID int) ([]types.Submission, error)
}

// TaskSubmissionRepository defines persistence operations for task
// submissions.
type TaskSubmissionRepository interface {
	Get(ctx context.Context, id int) (types.TaskSubmission, error)
	Create(ctx context.Context, submission types.TaskSubmission) (types.TaskSubmission, error)
	UpdateStatus(ctx context.Context, id int, status string) error
	ListByCompany(ctx context.Context, companyID int) ([]types.TaskSubmissionDetail, error)
	ListAnonymousByTask(ctx context.Context, taskID int) ([]types.AnonymousSubmission, error)
	SummarizeByCompany(ctx context.Context, companyID int) ([]types.TaskSummary, error)
}

// Grader produces a verdict for one run of submitted code.
type Grader interface {
	Grade(ctx context.Context, req judge.Request) (judge.Result, error)
}

// GradeOutcome is what the candidate sees after submitting.
type GradeOutcome struct {
	Status string `json:"status"`
	Score  int    `json:"score"`
}

// SubmissionService orchestrates grading: it calls the external judge,
// persists the result, awards skills, archives the code, and publishes
// graded events.
type SubmissionService struct {
	challenges      ChallengeRepository
	tasks           TaskRepository
	submissions     SubmissionRepository
	taskSubmissions TaskSubmissionRepository
	users           UserRepository
	grader          Grader
	archive         *storage.Archive
	events          *mq.MQ
	logger          zerolog.Logger
}

func NewSubmissionService(
	challenges ChallengeRepository,
	tasks TaskRepository,
	submissions SubmissionRepository,
	taskSubmissions TaskSubmissionRepository,
	users UserRepository,
	grader Grader,
	archive *storage.Archive,
	events *mq.MQ,
	logger zerolog.Logger,
) *SubmissionService {
	return &SubmissionService{
		challenges:      challenges,
		tasks:           tasks,
		submissions:     submissions,
		taskSubmissions: taskSubmissions,
		users:           users,
		grader:          grader,
		archive:         archive,
		events:          events,
		logger:          logger,
	}
}

// SubmitChallenge grades a challenge attempt. The challenge's sample
// input and expected output drive the run. A passing score appends the
// challenge's language tag to the candidate's skill set, idempotently.
func (s *SubmissionService) SubmitChallenge(ctx context.Context, userID, challengeID int, code, language string) (GradeOutcome, error) {
	langID, err := validateSubmission(code, language)
	if err != nil {
		return GradeOutcome{}, err
	}

	challenge, err := s.challenges.Get(ctx, challengeID)
	if err != nil {
		return GradeOutcome{}, err
	}

	result, err := s.grader.Grade(ctx, judge.Request{
		SourceCode:     code,
		LanguageID:     langID,
		Stdin:          challenge.Input,
		ExpectedOutput: challenge.ExpectedOutput,
	})
	if err != nil {
		return GradeOutcome{}, err
	}

	score := 0
	if result.Accepted() {
		score = acceptedScore
	}

	submission, err := s.submissions.Create(ctx, types.Submission{
		UserID:        userID,
		ChallengeID:   challengeID,
		Code:          code,
		Language:      language,
		Score:         score,
		Verdict:       result.Verdict,
		CodeObjectKey: s.archiveCode(ctx, "challenge", code),
	})
	if err != nil {
		return GradeOutcome{}, err
	}

	skillAwarded := ""
	if score >= passingScore && challenge.LanguageTag != "" {
		if err := s.users.AppendSkill(ctx, userID, challenge.LanguageTag); err != nil {
			return GradeOutcome{}, err
		}
		skillAwarded = challenge.LanguageTag
	}

	s.publishGraded(ctx, mq.SubmissionGradedEvent{
		Kind:         "challenge",
		SubmissionID: submission.ID,
		UserID:       userID,
		Score:        score,
		Verdict:      result.Verdict,
		SkillAwarded: skillAwarded,
		GradedAt:     time.Now(),
	})

	return GradeOutcome{Status: result.Verdict, Score: score}, nil
}

// SubmitTask grades an attempt at a company task. Task runs have no
// fixed input; the judge only executes the code.
func (s *SubmissionService) SubmitTask(ctx context.Context, userID, taskID int, code, language string) (GradeOutcome, error) {
	langID, err := validateSubmission(code, language)
	if err != nil {
		return GradeOutcome{}, err
	}

	if _, err := s.tasks.Get(ctx, taskID); err != nil {
		return GradeOutcome{}, err
	}

	result, err := s.grader.Grade(ctx, judge.Request{
		SourceCode: code,
		LanguageID: langID,
	})
	if err != nil {
		return GradeOutcome{}, err
	}

	score := 0
	if result.Accepted() {
		score = acceptedScore
	}

	submission, err := s.taskSubmissions.Create(ctx, types.TaskSubmission{
		TaskID:        taskID,
		UserID:        userID,
		Code:          code,
		Language:      language,
		Score:         score,
		Status:        result.Verdict,
		CodeObjectKey: s.archiveCode(ctx, "task", code),
	})
	if err != nil {
		return GradeOutcome{}, err
	}

	s.publishGraded(ctx, mq.SubmissionGradedEvent{
		Kind:         "task",
		SubmissionID: submission.ID,
		UserID:       userID,
		Score:        score,
		Verdict:      result.Verdict,
		GradedAt:     time.Now(),
	})

	return GradeOutcome{Status: result.Verdict, Score: score}, nil
}

// Hire marks a submission's candidate as hired. Only the company that
// posted the task may do so.
func (s *SubmissionService) Hire(ctx context.Context, companyID, submissionID int) error {
	submission, err := s.taskSubmissions.Get(ctx, submissionID)
	if err != nil {
		return err
	}

	task, err := s.tasks.Get(ctx, submission.TaskID)
	if err != nil {
		return err
	}
	if task.CompanyID != companyID {
		return ErrNotTaskOwner
	}

	return s.taskSubmissions.UpdateStatus(ctx, submissionID, types.TaskSubmissionStatusHired)
}

// ListChallengeSubmissionsForUser returns the candidate's own graded
// challenge attempts, newest first.
func (s *SubmissionService) ListChallengeSubmissionsForUser(ctx context.Context, userID int) ([]types.Submission, error) {
	return s.submissions.ListByUser(ctx, userID)
}

// ListForCompany returns submissions to the company's tasks with
// candidate identity attached.
func (s *SubmissionService) ListForCompany(ctx context.Context, companyID int) ([]types.TaskSubmissionDetail, error) {
	return s.taskSubmissions.ListByCompany(ctx, companyID)
}

// SummarizeForCompany aggregates per-task submission counts and scores.
func (s *SubmissionService) SummarizeForCompany(ctx context.Context, companyID int) ([]types.TaskSummary, error) {
	return s.taskSubmissions.SummarizeByCompany(ctx, companyID)
}

// AnonymousByTask returns submissions for one task without candidate
// identity.
func (s *SubmissionService) AnonymousByTask(ctx context.Context, taskID int) ([]types.AnonymousSubmission, error) {
	return s.taskSubmissions.ListAnonymousByTask(ctx, taskID)
}

func validateSubmission(code, language string) (int, error) {
	if code == "" {
		return 0, validationErr("Submitted code is required")
	}
	if language == "" {
		return 0, validationErr("Language is required")
	}
	langID, ok := judge.LanguageID(language)
	if !ok {
		return 0, validationErr("Unsupported language")
	}
	return langID, nil
}

// archiveCode is best-effort: grading does not fail when the archive
// store is down. Returns the object key, or empty when disabled/failed.
func (s *SubmissionService) archiveCode(ctx context.Context, kind, code string) string {
	if s.archive == nil {
		return ""
	}
	key, err := s.archive.PutCode(ctx, kind, code)
	if err != nil {
		s.logger.Warn().Err(err).Str("kind", kind).Msg("failed to archive submission code")
		return ""
	}
	return key
}

// publishGraded is best-effort: a broker outage never fails a grade.
func (s *SubmissionService) publishGraded(ctx context.Context, event mq.SubmissionGradedEvent) {
	if s.events == nil {
		return
	}
	if _, err := s.events.PublishSubmissionGraded(ctx, event); err != nil {
		s.logger.Warn().Err(err).Int("submission_id", event.SubmissionID).Msg("failed to publish graded event")
	}
}
