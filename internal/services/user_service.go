package services

import (
	"context"
	"errors"
	"strings"

	"github.com/kanhadewangan/trpc-blog/internal/auth"
	"github.com/kanhadewangan/trpc-blog/internal/models"
	repo "github.com/kanhadewangan/trpc-blog/internal/repository"
	"github.com/kanhadewangan/trpc-blog/internal/worker"
)

const invalidCredentialsMsg = "Invalid email or password"

type UserService struct {
	users repo.Users
	logs  repo.AuditLogs
	wp    *worker.Pool
}

func NewUserService(users repo.Users, logs repo.AuditLogs, wp *worker.Pool) *UserService {
	return &UserService{users: users, logs: logs, wp: wp}
}

// CreateAccount inserts a new user with the password hashed at rest. A
// duplicate email surfaces as models.ErrConflict from the store.
func (s *UserService) CreateAccount(ctx context.Context, name, email, password string, age int) (int64, error) {
	hash, err := auth.HashPassword(password)
	if err != nil {
		return 0, err
	}
	id, err := s.users.Create(ctx, strings.TrimSpace(name), strings.TrimSpace(email), hash, age)
	if err != nil {
		return 0, err
	}
	recordAudit(s.wp, s.logs, "user", id, "created", map[string]any{"email": email})
	return id, nil
}

// Authenticate reports the outcome as a tagged result, never an error: a
// missing user and a wrong password are indistinguishable to the caller.
func (s *UserService) Authenticate(ctx context.Context, email, password string) (models.AuthResult, error) {
	u, err := s.users.GetByEmail(ctx, email)
	if errors.Is(err, models.ErrNotFound) {
		return models.AuthResult{Success: false, Error: invalidCredentialsMsg}, nil
	}
	if err != nil {
		return models.AuthResult{}, err
	}
	if auth.VerifyPassword(password, u.PasswordHash) != nil {
		return models.AuthResult{Success: false, Error: invalidCredentialsMsg}, nil
	}
	return models.AuthResult{Success: true, Email: u.Email}, nil
}

// GetByID returns zero or one users; an absent id is an empty result, not
// an error.
func (s *UserService) GetByID(ctx context.Context, id int64) ([]models.User, error) {
	u, err := s.users.GetByID(ctx, id)
	if errors.Is(err, models.ErrNotFound) {
		return []models.User{}, nil
	}
	if err != nil {
		return nil, err
	}
	return []models.User{u}, nil
}
