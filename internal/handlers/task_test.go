package handlers

import (
	"context"
	"net/http"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"github.com/skillmatch-io/apiserver/internal/auth"
	"github.com/skillmatch-io/apiserver/internal/services"
	"github.com/skillmatch-io/apiserver/internal/store"
	"github.com/skillmatch-io/apiserver/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memTaskRepo struct {
	nextID int
	tasks  map[int]types.Task
}

func newMemTaskRepo() *memTaskRepo {
	return &memTaskRepo{nextID: 1, tasks: map[int]types.Task{}}
}

func (m *memTaskRepo) Get(_ context.Context, id int) (types.Task, error) {
	task, ok := m.tasks[id]
	if !ok {
		return types.Task{}, store.ErrNotFound
	}
	return task, nil
}

func (m *memTaskRepo) List(context.Context) ([]types.Task, error) {
	out := make([]types.Task, 0, len(m.tasks))
	for id := 1; id < m.nextID; id++ {
		if task, ok := m.tasks[id]; ok {
			out = append(out, task)
		}
	}
	return out, nil
}

func (m *memTaskRepo) ListByCompany(_ context.Context, companyID int) ([]types.Task, error) {
	out := []types.Task{}
	for id := 1; id < m.nextID; id++ {
		if task, ok := m.tasks[id]; ok && task.CompanyID == companyID {
			out = append(out, task)
		}
	}
	return out, nil
}

func (m *memTaskRepo) Create(_ context.Context, task types.Task) (types.Task, error) {
	task.ID = m.nextID
	m.nextID++
	m.tasks[task.ID] = task
	return task, nil
}

func TestPostTaskAndMatchScores(t *testing.T) {
	tokens := auth.NewTokenService("task-handler-test-secret")
	users := newMemUserRepo()
	taskService := services.NewTaskService(newMemTaskRepo(), users)
	userService := services.NewUserService(users, tokens, 4, zerolog.Nop())

	router := chi.NewRouter()
	router.Route("/auth", func(r chi.Router) {
		AuthRouter(r, userService, tokens)
	})
	router.Route("/api", func(r chi.Router) {
		r.Use(RequireAuth(tokens))
		TaskRouter(r, taskService)
	})

	ctx := context.Background()

	company, err := users.Create(ctx, types.User{Name: "Acme", Email: "hr@acme.com", Role: types.RoleCompany})
	require.NoError(t, err)
	candidate, err := users.Create(ctx, types.User{
		Name: "Ada", Email: "ada@x.com", Role: types.RoleCandidate, Skills: []string{"python"},
	})
	require.NoError(t, err)

	companyToken, err := tokens.Issue(company.ID, types.RoleCompany)
	require.NoError(t, err)
	candidateToken, err := tokens.Issue(candidate.ID, types.RoleCandidate)
	require.NoError(t, err)

	rec := doJSON(t, router, http.MethodPost, "/api/post-task",
		`{"title":"Scraper","description":"Build a scraper","requiredSkill":"python"}`, companyToken)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doJSON(t, router, http.MethodPost, "/api/post-task",
		`{"title":"Dashboard","description":"Build a dashboard","requiredSkill":"javascript"}`, companyToken)
	require.Equal(t, http.StatusCreated, rec.Code)

	// Candidates cannot post tasks.
	rec = doJSON(t, router, http.MethodPost, "/api/post-task",
		`{"title":"X","description":"Y","requiredSkill":"go"}`, candidateToken)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = doJSON(t, router, http.MethodGet, "/api/match-tasks", "", candidateToken)
	require.Equal(t, http.StatusOK, rec.Code)

	var matched []types.MatchedTask
	require.NoError(t, jsonDecode(rec, &matched))
	require.Len(t, matched, 2)
	assert.Equal(t, "Scraper", matched[0].Title)
	assert.Equal(t, 90, matched[0].MatchScore)
	assert.Equal(t, "Dashboard", matched[1].Title)
	assert.Equal(t, 30, matched[1].MatchScore)

	rec = doJSON(t, router, http.MethodGet, "/api/tasks", "", companyToken)
	require.Equal(t, http.StatusOK, rec.Code)

	var own []types.Task
	require.NoError(t, jsonDecode(rec, &own))
	assert.Len(t, own, 2)
}
