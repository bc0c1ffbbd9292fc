package mocks

import (
	"context"
	"time"

	"github.com/rpggio/sitecord/internal/domain/project"
	"github.com/rpggio/sitecord/internal/domain/task"
	"github.com/rpggio/sitecord/internal/domain/trade"
	"github.com/rpggio/sitecord/internal/domain/triage"
	"github.com/stretchr/testify/mock"
)

// ProjectRepository is a mock for project.Repository.
type ProjectRepository struct {
	mock.Mock
}

func (m *ProjectRepository) Create(ctx context.Context, proj *project.Project) error {
	args := m.Called(ctx, proj)
	return args.Error(0)
}

func (m *ProjectRepository) Get(ctx context.Context, id string) (*project.Project, error) {
	args := m.Called(ctx, id)
	if proj, ok := args.Get(0).(*project.Project); ok {
		return proj, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *ProjectRepository) List(ctx context.Context) ([]project.Project, error) {
	args := m.Called(ctx)
	if list, ok := args.Get(0).([]project.Project); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

// TradeRepository is a mock for trade.Repository.
type TradeRepository struct {
	mock.Mock
}

func (m *TradeRepository) Create(ctx context.Context, tr *trade.Trade) error {
	args := m.Called(ctx, tr)
	return args.Error(0)
}

func (m *TradeRepository) Get(ctx context.Context, id string) (*trade.Trade, error) {
	args := m.Called(ctx, id)
	if tr, ok := args.Get(0).(*trade.Trade); ok {
		return tr, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *TradeRepository) List(ctx context.Context) ([]trade.Trade, error) {
	args := m.Called(ctx)
	if list, ok := args.Get(0).([]trade.Trade); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

// TaskRepository is a mock for task.Repository.
type TaskRepository struct {
	mock.Mock
}

func (m *TaskRepository) Create(ctx context.Context, t *task.Task) error {
	args := m.Called(ctx, t)
	return args.Error(0)
}

func (m *TaskRepository) Get(ctx context.Context, projectID, id string) (*task.Task, error) {
	args := m.Called(ctx, projectID, id)
	if t, ok := args.Get(0).(*task.Task); ok {
		return t, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *TaskRepository) ListByProject(ctx context.Context, projectID string) ([]task.Task, error) {
	args := m.Called(ctx, projectID)
	if list, ok := args.Get(0).([]task.Task); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *TaskRepository) ListByProjectTrade(ctx context.Context, projectID, tradeID string) ([]task.Task, error) {
	args := m.Called(ctx, projectID, tradeID)
	if list, ok := args.Get(0).([]task.Task); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *TaskRepository) FirstByTrade(ctx context.Context, tradeID string) (*task.Task, error) {
	args := m.Called(ctx, tradeID)
	if t, ok := args.Get(0).(*task.Task); ok {
		return t, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *TaskRepository) Update(ctx context.Context, t *task.Task, expectedVersion int64) error {
	args := m.Called(ctx, t, expectedVersion)
	return args.Error(0)
}

// TriageRepository is a mock for triage.Repository.
type TriageRepository struct {
	mock.Mock
}

func (m *TriageRepository) Create(ctx context.Context, rec *triage.Record) error {
	args := m.Called(ctx, rec)
	return args.Error(0)
}

func (m *TriageRepository) List(ctx context.Context, opts triage.ListOptions) ([]triage.Record, error) {
	args := m.Called(ctx, opts)
	if list, ok := args.Get(0).([]triage.Record); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *TriageRepository) CountSince(ctx context.Context, since time.Time) (int, error) {
	args := m.Called(ctx, since)
	return args.Int(0), args.Error(1)
}

// ClaimsRepository is a mock for account.Repository.
type ClaimsRepository struct {
	mock.Mock
}

func (m *ClaimsRepository) SetClaim(ctx context.Context, uid, key, value string) error {
	args := m.Called(ctx, uid, key, value)
	return args.Error(0)
}

func (m *ClaimsRepository) Claims(ctx context.Context, uid string) (map[string]string, error) {
	args := m.Called(ctx, uid)
	if claims, ok := args.Get(0).(map[string]string); ok {
		return claims, args.Error(1)
	}
	return nil, args.Error(1)
}
