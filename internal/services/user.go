package services

import (
	"context"
	"errors"

	"github.com/rs/zerolog"
	"github.com/skillmatch-io/apiserver/internal/auth"
	"github.com/skillmatch-io/apiserver/internal/store"
	"github.com/skillmatch-io/apiserver/types"
	"golang.org/x/crypto/bcrypt"
)

// UserRepository defines persistence operations for users.
type UserRepository interface {
	GetByID(ctx context.Context, id int) (types.User, error)
	GetByEmail(ctx context.Context, email string) (types.User, error)
	Create(ctx context.Context, user types.User) (types.User, error)
	AppendSkill(ctx context.Context, userID int, skillTag string) error
}

// UserService encapsulates registration, login, and account lookups.
type UserService struct {
	repo       UserRepository
	tokens     *auth.TokenService
	bcryptCost int
	logger     zerolog.Logger
}

func NewUserService(repo UserRepository, tokens *auth.TokenService, bcryptCost int, logger zerolog.Logger) *UserService {
	if bcryptCost == 0 {
		bcryptCost = bcrypt.DefaultCost
	}
	return &UserService{
		repo:       repo,
		tokens:     tokens,
		bcryptCost: bcryptCost,
		logger:     logger,
	}
}

// Register validates input, hashes the password, and creates the account.
// No token is issued; the caller logs in separately. The plaintext is
// discarded as soon as the hash is computed.
func (s *UserService) Register(ctx context.Context, name, email, password, role string) error {
	if name == "" || email == "" || password == "" || role == "" {
		return validationErr("All fields are required")
	}
	if !auth.ValidEmail(email) {
		return validationErr("Invalid email format")
	}
	if ok, reason := auth.ValidatePassword(password); !ok {
		return validationErr(reason)
	}
	if !types.ValidRole(role) {
		return validationErr("Role must be either candidate or company")
	}

	if _, err := s.repo.GetByEmail(ctx, email); err == nil {
		return ErrEmailTaken
	} else if !errors.Is(err, store.ErrNotFound) {
		return err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if err != nil {
		return err
	}

	_, err = s.repo.Create(ctx, types.User{
		Name:         name,
		Email:        email,
		Role:         role,
		PasswordHash: string(hashed),
	})
	if err != nil {
		// The unique index wins the check-then-insert race.
		if errors.Is(err, store.ErrDuplicate) {
			return ErrEmailTaken
		}
		return err
	}

	s.logger.Info().Str("email", email).Str("role", role).Msg("user registered")
	return nil
}

// Login verifies credentials and issues a token. An unknown email and a
// wrong password produce the same error.
func (s *UserService) Login(ctx context.Context, email, password string) (string, types.User, error) {
	if email == "" || password == "" {
		return "", types.User{}, validationErr("Email and password are required")
	}
	if !auth.ValidEmail(email) {
		return "", types.User{}, validationErr("Invalid email format")
	}

	user, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return "", types.User{}, ErrInvalidCredentials
		}
		return "", types.User{}, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", types.User{}, ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(user.ID, user.Role)
	if err != nil {
		return "", types.User{}, err
	}
	return token, user, nil
}

func (s *UserService) GetByID(ctx context.Context, id int) (types.User, error) {
	return s.repo.GetByID(ctx, id)
}
