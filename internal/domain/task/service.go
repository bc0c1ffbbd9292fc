package task

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rpggio/sitecord/internal/domain/message"
	"github.com/rpggio/sitecord/internal/repository"
)

// Service handles manual task operations.
type Service struct {
	repo   Repository
	logger *slog.Logger
}

// NewService creates a new task service.
func NewService(repo Repository, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{repo: repo, logger: logger}
}

// CreateRequest defines task creation inputs.
type CreateRequest struct {
	ProjectID  string
	TradeID    string
	Name       string
	Status     message.Status
	Dependency *string
	StartDate  string
	EndDate    string
}

// Create adds a task to a project. Project, trade and name are required.
func (s *Service) Create(ctx context.Context, req CreateRequest) (*Task, error) {
	if strings.TrimSpace(req.ProjectID) == "" ||
		strings.TrimSpace(req.TradeID) == "" ||
		strings.TrimSpace(req.Name) == "" {
		return nil, ErrInvalidInput
	}
	for _, d := range []string{req.StartDate, req.EndDate} {
		if d == "" {
			continue
		}
		if _, err := time.Parse(DateLayout, d); err != nil {
			return nil, ErrInvalidInput
		}
	}

	now := time.Now().UTC()
	today := now.Format(DateLayout)

	status := req.Status
	if status == "" {
		status = message.StatusNotStarted
	}
	if !status.Valid() {
		return nil, ErrInvalidInput
	}

	t := &Task{
		ID:         uuid.NewString(),
		ProjectID:  req.ProjectID,
		TradeID:    req.TradeID,
		Name:       strings.TrimSpace(req.Name),
		Status:     status,
		Progress:   progressForStatus(status),
		Dependency: req.Dependency,
		StartDate:  orDefault(req.StartDate, today),
		EndDate:    orDefault(req.EndDate, today),
		Version:    1,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if err := s.repo.Create(ctx, t); err != nil {
		if errors.Is(err, repository.ErrForeignKeyViolation) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("creating task: %w", err)
	}
	return t, nil
}

// ListByProject returns a project's tasks.
func (s *Service) ListByProject(ctx context.Context, projectID string) ([]Task, error) {
	if strings.TrimSpace(projectID) == "" {
		return nil, ErrInvalidInput
	}
	return s.repo.ListByProject(ctx, projectID)
}

func progressForStatus(status message.Status) int {
	if status == message.StatusCompleted {
		return 100
	}
	return 0
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
