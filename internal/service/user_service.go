package service

import (
	"context"
	"errors"

	dom "github.com/smowhabuth/SKBday/internal/domain"
	"github.com/smowhabuth/SKBday/internal/repo"
	"github.com/smowhabuth/SKBday/internal/utils"

	"github.com/jackc/pgx/v5"
)

var ErrInvalidCredentials = errors.New("invalid access code")
var ErrCodeTaken = errors.New("access code already taken")

// UserService handles access-code auth and user provisioning.
type UserService struct {
	repo repo.UserRepo
}

// NewUserService returns a new UserService.
func NewUserService(repo repo.UserRepo) *UserService {
	return &UserService{repo: repo}
}

// Authenticate resolves an access code to its user. The code is the whole
// credential: exact match, no case folding, no hashing. An unknown code is
// ErrInvalidCredentials; anything else is a store fault and passes through.
func (s *UserService) Authenticate(ctx context.Context, code string) (dom.User, error) {
	if code == "" {
		return dom.User{}, ErrInvalidCredentials
	}
	u, err := s.repo.GetByAccessCode(ctx, code)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return dom.User{}, ErrInvalidCredentials
		}
		return dom.User{}, err
	}
	return u, nil
}

// Create adds a user with the given code. Duplicate codes map to ErrCodeTaken.
func (s *UserService) Create(ctx context.Context, name, code string) (dom.User, error) {
	u, err := s.repo.Create(ctx, name, code)
	if err != nil {
		if utils.IsPGUniqueViolation(err) {
			return dom.User{}, ErrCodeTaken
		}
		return dom.User{}, err
	}
	return u, nil
}

// Upsert creates or renames the user for code. Idempotent by access code.
func (s *UserService) Upsert(ctx context.Context, name, code string) (dom.User, error) {
	return s.repo.Upsert(ctx, name, code)
}

// List returns all users.
func (s *UserService) List(ctx context.Context) ([]dom.User, error) {
	return s.repo.List(ctx)
}

// GetByAccessCode returns the user for code, or ErrNotFound.
func (s *UserService) GetByAccessCode(ctx context.Context, code string) (dom.User, error) {
	u, err := s.repo.GetByAccessCode(ctx, code)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return dom.User{}, ErrNotFound
		}
		return dom.User{}, err
	}
	return u, nil
}
