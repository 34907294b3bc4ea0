// Package executor manages the people tasks can be assigned to
package executor

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/thenoetrevino/taskboard/internal/models"
)

const maxNameLength = 100

// Loose address check; the server validates again
var emailRegex = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// Repository is the part of the remote store executors live in
type Repository interface {
	ListExecutors(ctx context.Context) ([]models.Executor, error)
	CreateExecutor(ctx context.Context, name, email string) (models.Executor, error)
}

// Service defines all executor-related business operations
type Service interface {
	ListExecutors(ctx context.Context) ([]models.Executor, error)
	CreateExecutor(ctx context.Context, req CreateExecutorRequest) (models.Executor, error)
}

// CreateExecutorRequest encapsulates data for creating an executor
type CreateExecutorRequest struct {
	Name  string
	Email string // optional
}

type service struct {
	repo Repository
}

// NewService creates a new executor service
func NewService(repo Repository) Service {
	return &service{repo: repo}
}

// ListExecutors returns every executor ordered by name
func (s *service) ListExecutors(ctx context.Context) ([]models.Executor, error) {
	executors, err := s.repo.ListExecutors(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list executors: %w", err)
	}
	return executors, nil
}

// CreateExecutor validates and stores a new executor
func (s *service) CreateExecutor(ctx context.Context, req CreateExecutorRequest) (models.Executor, error) {
	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.TrimSpace(req.Email)
	if err := validateCreateExecutor(req); err != nil {
		return models.Executor{}, err
	}

	e, err := s.repo.CreateExecutor(ctx, req.Name, req.Email)
	if err != nil {
		return models.Executor{}, fmt.Errorf("failed to create executor: %w", err)
	}
	return e, nil
}

func validateCreateExecutor(req CreateExecutorRequest) error {
	if req.Name == "" {
		return ErrEmptyName
	}
	if len(req.Name) > maxNameLength {
		return ErrNameTooLong
	}
	if req.Email != "" && !emailRegex.MatchString(req.Email) {
		return ErrInvalidEmail
	}
	return nil
}
