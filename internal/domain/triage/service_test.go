package triage_test

import (
	"context"
	"errors"
	"testing"

	"github.com/rpggio/sitecord/internal/domain/message"
	"github.com/rpggio/sitecord/internal/domain/triage"
	"github.com/rpggio/sitecord/internal/repository/mocks"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestTriageService_Record(t *testing.T) {
	ctx := context.Background()

	repo := &mocks.TriageRepository{}
	repo.On("Create", ctx, mock.MatchedBy(func(r *triage.Record) bool {
		return r.Reason == triage.ReasonProjectNotFound &&
			r.AttemptedTradeID != nil && *r.AttemptedTradeID == "tr1" &&
			r.FallbackTried == nil
	})).Return(nil).Once()

	svc := triage.NewService(repo, nil)
	rec := svc.Record(ctx, triage.Entry{
		From:             "+15551234567",
		Body:             "done",
		Parsed:           message.Parsed{Status: message.StatusCompleted},
		AttemptedTradeID: "tr1",
	})
	require.NotNil(t, rec)
	require.NotEmpty(t, rec.ID)
	repo.AssertExpectations(t)
}

func TestTriageService_RecordSwallowsErrors(t *testing.T) {
	ctx := context.Background()

	repo := &mocks.TriageRepository{}
	repo.On("Create", ctx, mock.Anything).Return(errors.New("disk full"))

	svc := triage.NewService(repo, nil)
	require.Nil(t, svc.Record(ctx, triage.Entry{Body: "hello"}))
}

func TestTriageService_ListDefaultsLimit(t *testing.T) {
	ctx := context.Background()

	repo := &mocks.TriageRepository{}
	repo.On("List", ctx, triage.ListOptions{Limit: 50}).Return([]triage.Record{}, nil)

	svc := triage.NewService(repo, nil)
	_, err := svc.List(ctx, triage.ListOptions{})
	require.NoError(t, err)
	repo.AssertExpectations(t)
}
