package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
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

type memUserRepo struct {
	nextID  int
	byID    map[int]types.User
	byEmail map[string]int
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{nextID: 1, byID: map[int]types.User{}, byEmail: map[string]int{}}
}

func (m *memUserRepo) GetByID(_ context.Context, id int) (types.User, error) {
	user, ok := m.byID[id]
	if !ok {
		return types.User{}, store.ErrNotFound
	}
	return user, nil
}

func (m *memUserRepo) GetByEmail(_ context.Context, email string) (types.User, error) {
	id, ok := m.byEmail[email]
	if !ok {
		return types.User{}, store.ErrNotFound
	}
	return m.byID[id], nil
}

func (m *memUserRepo) Create(_ context.Context, user types.User) (types.User, error) {
	if _, exists := m.byEmail[user.Email]; exists {
		return types.User{}, store.ErrDuplicate
	}
	user.ID = m.nextID
	m.nextID++
	m.byID[user.ID] = user
	m.byEmail[user.Email] = user.ID
	return user, nil
}

func (m *memUserRepo) AppendSkill(_ context.Context, userID int, skillTag string) error {
	user, ok := m.byID[userID]
	if !ok {
		return store.ErrNotFound
	}
	for _, skill := range user.Skills {
		if skill == skillTag {
			return nil
		}
	}
	user.Skills = append(user.Skills, skillTag)
	m.byID[userID] = user
	return nil
}

func newAuthRouter() chi.Router {
	tokens := auth.NewTokenService("auth-handler-test-secret")
	userService := services.NewUserService(newMemUserRepo(), tokens, 4, zerolog.Nop())

	r := chi.NewRouter()
	r.Route("/auth", func(r chi.Router) {
		AuthRouter(r, userService, tokens)
	})
	return r
}

func doJSON(t *testing.T, router chi.Router, method, target, body, token string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func jsonDecode(rec *httptest.ResponseRecorder, value any) error {
	return json.Unmarshal(rec.Body.Bytes(), value)
}

func TestSignupLoginMe(t *testing.T) {
	router := newAuthRouter()

	rec := doJSON(t, router, http.MethodPost, "/auth/signup",
		`{"name":"Ada","email":"ada@x.com","password":"Abcdef1!","role":"candidate"}`, "")
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Contains(t, rec.Body.String(), "User registered successfully")
	// Signup never returns a token.
	assert.NotContains(t, rec.Body.String(), "token")

	rec = doJSON(t, router, http.MethodPost, "/auth/login",
		`{"email":"ada@x.com","password":"Abcdef1!"}`, "")
	require.Equal(t, http.StatusOK, rec.Code)

	var loginResp LoginResponse
	require.NoError(t, jsonDecode(rec, &loginResp))
	assert.NotEmpty(t, loginResp.Token)
	assert.Equal(t, "Ada", loginResp.User.Name)
	assert.Equal(t, types.RoleCandidate, loginResp.User.Role)

	rec = doJSON(t, router, http.MethodGet, "/auth/me", "", loginResp.Token)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"ada@x.com"`)
	// The password hash never leaves the server.
	assert.NotContains(t, rec.Body.String(), "password")
}

func TestSignupDuplicateEmailConflicts(t *testing.T) {
	router := newAuthRouter()

	body := `{"name":"Ada","email":"ada@x.com","password":"Abcdef1!","role":"candidate"}`
	require.Equal(t, http.StatusCreated, doJSON(t, router, http.MethodPost, "/auth/signup", body, "").Code)

	rec := doJSON(t, router, http.MethodPost, "/auth/signup", body, "")
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Contains(t, rec.Body.String(), "User already exists")
}

func TestSignupRejectsWeakPassword(t *testing.T) {
	router := newAuthRouter()

	rec := doJSON(t, router, http.MethodPost, "/auth/signup",
		`{"name":"Ada","email":"ada@x.com","password":"short","role":"candidate"}`, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestLoginBadCredentials(t *testing.T) {
	router := newAuthRouter()

	require.Equal(t, http.StatusCreated, doJSON(t, router, http.MethodPost, "/auth/signup",
		`{"name":"Ada","email":"ada@x.com","password":"Abcdef1!","role":"candidate"}`, "").Code)

	unknown := doJSON(t, router, http.MethodPost, "/auth/login", `{"email":"no@x.com","password":"Abcdef1!"}`, "")
	wrongPass := doJSON(t, router, http.MethodPost, "/auth/login", `{"email":"ada@x.com","password":"Wrongpass1"}`, "")

	// Unknown email and wrong password are indistinguishable.
	assert.Equal(t, http.StatusBadRequest, unknown.Code)
	assert.Equal(t, http.StatusBadRequest, wrongPass.Code)
	assert.Equal(t, unknown.Body.String(), wrongPass.Body.String())
}

func TestMeRequiresToken(t *testing.T) {
	router := newAuthRouter()

	rec := doJSON(t, router, http.MethodGet, "/auth/me", "", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "No token, authorization denied")
}
