package task_test

import (
	"context"
	"testing"

	"github.com/rpggio/sitecord/internal/domain/message"
	"github.com/rpggio/sitecord/internal/domain/task"
	"github.com/rpggio/sitecord/internal/repository"
	"github.com/rpggio/sitecord/internal/repository/mocks"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestTaskService_Create(t *testing.T) {
	ctx := context.Background()

	repo := &mocks.TaskRepository{}
	repo.On("Create", ctx, mock.Anything).Return(nil)

	svc := task.NewService(repo, nil)
	created, err := svc.Create(ctx, task.CreateRequest{
		ProjectID: "p1",
		TradeID:   "tr1",
		Name:      " Rough Plumbing ",
		StartDate: "2026-04-01",
	})
	require.NoError(t, err)
	require.Equal(t, "Rough Plumbing", created.Name)
	require.Equal(t, message.StatusNotStarted, created.Status)
	require.Equal(t, 0, created.Progress)
	require.Equal(t, "2026-04-01", created.StartDate)
	require.NotEmpty(t, created.EndDate)
	require.Equal(t, int64(1), created.Version)
}

func TestTaskService_CreateValidation(t *testing.T) {
	ctx := context.Background()
	svc := task.NewService(&mocks.TaskRepository{}, nil)

	_, err := svc.Create(ctx, task.CreateRequest{ProjectID: "p1", Name: "x"})
	require.ErrorIs(t, err, task.ErrInvalidInput)

	_, err = svc.Create(ctx, task.CreateRequest{ProjectID: "p1", TradeID: "tr1", Name: "x", EndDate: "04/01/2026"})
	require.ErrorIs(t, err, task.ErrInvalidInput)

	_, err = svc.Create(ctx, task.CreateRequest{ProjectID: "p1", TradeID: "tr1", Name: "x", Status: "Almost"})
	require.ErrorIs(t, err, task.ErrInvalidInput)
}

func TestTaskService_CreateUnknownProject(t *testing.T) {
	ctx := context.Background()

	repo := &mocks.TaskRepository{}
	repo.On("Create", ctx, mock.Anything).Return(repository.ErrForeignKeyViolation)

	svc := task.NewService(repo, nil)
	_, err := svc.Create(ctx, task.CreateRequest{ProjectID: "nope", TradeID: "tr1", Name: "x"})
	require.ErrorIs(t, err, task.ErrProjectNotFound)
}
