package services

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/skillmatch-io/apiserver/internal/auth"
	"github.com/skillmatch-io/apiserver/internal/store"
	"github.com/skillmatch-io/apiserver/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeUserRepo is an in-memory UserRepository with a unique email index.
type fakeUserRepo struct {
	nextID  int
	byID    map[int]types.User
	byEmail map[string]int
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{
		nextID:  1,
		byID:    map[int]types.User{},
		byEmail: map[string]int{},
	}
}

func (f *fakeUserRepo) GetByID(_ context.Context, id int) (types.User, error) {
	user, ok := f.byID[id]
	if !ok {
		return types.User{}, store.ErrNotFound
	}
	return user, nil
}

func (f *fakeUserRepo) GetByEmail(_ context.Context, email string) (types.User, error) {
	id, ok := f.byEmail[email]
	if !ok {
		return types.User{}, store.ErrNotFound
	}
	return f.byID[id], nil
}

func (f *fakeUserRepo) Create(_ context.Context, user types.User) (types.User, error) {
	if _, exists := f.byEmail[user.Email]; exists {
		return types.User{}, store.ErrDuplicate
	}
	user.ID = f.nextID
	f.nextID++
	if user.Skills == nil {
		user.Skills = []string{}
	}
	f.byID[user.ID] = user
	f.byEmail[user.Email] = user.ID
	return user, nil
}

func (f *fakeUserRepo) AppendSkill(_ context.Context, userID int, skillTag string) error {
	user, ok := f.byID[userID]
	if !ok {
		return store.ErrNotFound
	}
	for _, skill := range user.Skills {
		if skill == skillTag {
			return nil
		}
	}
	user.Skills = append(user.Skills, skillTag)
	f.byID[userID] = user
	return nil
}

func newUserService(repo *fakeUserRepo) *UserService {
	tokens := auth.NewTokenService("user-service-test-secret")
	// Minimum bcrypt cost keeps the tests fast.
	return NewUserService(repo, tokens, 4, zerolog.Nop())
}

func TestRegisterThenLogin(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newUserService(repo)
	ctx := context.Background()

	err := svc.Register(ctx, "Ada", "ada@x.com", "Abcdef1!", types.RoleCandidate)
	require.NoError(t, err)

	token, user, err := svc.Login(ctx, "ada@x.com", "Abcdef1!")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, "Ada", user.Name)
	assert.Equal(t, types.RoleCandidate, user.Role)

	identity, err := auth.NewTokenService("user-service-test-secret").Verify(token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, identity.UserID)
	assert.Equal(t, types.RoleCandidate, identity.Role)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newUserService(repo)
	ctx := context.Background()

	require.NoError(t, svc.Register(ctx, "Ada", "ada@x.com", "Abcdef1!", types.RoleCandidate))

	err := svc.Register(ctx, "Eve", "ada@x.com", "Zyxwvu9!", types.RoleCompany)
	assert.ErrorIs(t, err, ErrEmailTaken)

	// The original record is untouched.
	existing, err := repo.GetByEmail(ctx, "ada@x.com")
	require.NoError(t, err)
	assert.Equal(t, "Ada", existing.Name)
	assert.Equal(t, types.RoleCandidate, existing.Role)
}

func TestRegisterValidation(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newUserService(repo)
	ctx := context.Background()

	tests := []struct {
		name     string
		userName string
		email    string
		password string
		role     string
	}{
		{name: "missing fields", userName: "", email: "a@x.com", password: "Abcdef1!", role: types.RoleCandidate},
		{name: "bad email", userName: "Ada", email: "nope", password: "Abcdef1!", role: types.RoleCandidate},
		{name: "weak password short", userName: "Ada", email: "a@x.com", password: "abc", role: types.RoleCandidate},
		{name: "weak password no upper", userName: "Ada", email: "a@x.com", password: "alllowercase1", role: types.RoleCandidate},
		{name: "bad role", userName: "Ada", email: "a@x.com", password: "Abcdef1!", role: "admin"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := svc.Register(ctx, tt.userName, tt.email, tt.password, tt.role)
			var vErr *ValidationError
			assert.ErrorAs(t, err, &vErr)
		})
	}

	// Nothing was persisted by the rejected attempts.
	assert.Empty(t, repo.byID)
}

func TestLoginIndistinguishableFailures(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newUserService(repo)
	ctx := context.Background()

	require.NoError(t, svc.Register(ctx, "Ada", "ada@x.com", "Abcdef1!", types.RoleCandidate))

	_, _, unknownErr := svc.Login(ctx, "nouser@x.com", "whatever1A")
	_, _, wrongPassErr := svc.Login(ctx, "ada@x.com", "Wrongpass1")

	assert.ErrorIs(t, unknownErr, ErrInvalidCredentials)
	assert.ErrorIs(t, wrongPassErr, ErrInvalidCredentials)
	assert.Equal(t, unknownErr, wrongPassErr)
}

func TestAppendSkillIdempotent(t *testing.T) {
	repo := newFakeUserRepo()
	ctx := context.Background()

	user, err := repo.Create(ctx, types.User{Name: "Ada", Email: "ada@x.com", Role: types.RoleCandidate})
	require.NoError(t, err)

	require.NoError(t, repo.AppendSkill(ctx, user.ID, "python"))
	require.NoError(t, repo.AppendSkill(ctx, user.ID, "python"))

	got, err := repo.GetByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"python"}, got.Skills)
}
