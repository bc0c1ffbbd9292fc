package intake_test

import (
	"context"
	"errors"
	"testing"

	"github.com/rpggio/sitecord/internal/domain/message"
	"github.com/rpggio/sitecord/internal/domain/task"
	"github.com/rpggio/sitecord/internal/domain/triage"
	"github.com/rpggio/sitecord/internal/intake"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type resolverMock struct {
	mock.Mock
}

func (m *resolverMock) ProjectByAddress(ctx context.Context, where string) (string, error) {
	args := m.Called(where)
	return args.String(0), args.Error(1)
}

func (m *resolverMock) ProjectByMessage(ctx context.Context, body string) (string, error) {
	args := m.Called(body)
	return args.String(0), args.Error(1)
}

func (m *resolverMock) TradeByPhone(ctx context.Context, from string) (string, error) {
	args := m.Called(from)
	return args.String(0), args.Error(1)
}

func (m *resolverMock) ProjectByTradeTasks(ctx context.Context, tradeID string) string {
	args := m.Called(tradeID)
	return args.String(0)
}

type reconcilerMock struct {
	mock.Mock
}

func (m *reconcilerMock) Reconcile(ctx context.Context, req task.ReconcileRequest) (*task.ReconcileResult, error) {
	args := m.Called(req)
	if res, ok := args.Get(0).(*task.ReconcileResult); ok {
		return res, args.Error(1)
	}
	return nil, args.Error(1)
}

type triageMock struct {
	mock.Mock
}

func (m *triageMock) Record(ctx context.Context, e triage.Entry) *triage.Record {
	args := m.Called(e)
	if rec, ok := args.Get(0).(*triage.Record); ok {
		return rec
	}
	return nil
}

const (
	sender = "+15551234567"
	body   = "Finished with plumbing at 92 Turtleback Road"
)

func TestHandle_DirectAddressMatch(t *testing.T) {
	resolver := &resolverMock{}
	reconciler := &reconcilerMock{}
	triageLog := &triageMock{}

	resolver.On("TradeByPhone", sender).Return("tr1", nil)
	resolver.On("ProjectByAddress", "92 Turtleback Road").Return("p1", nil)
	reconciler.On("Reconcile", mock.MatchedBy(func(req task.ReconcileRequest) bool {
		return req.ProjectID == "p1" && req.TradeID == "tr1" &&
			req.Parsed.Status == message.StatusCompleted && req.Body == body && req.From == sender
	})).Return(&task.ReconcileResult{Action: task.ActionUpdated, Task: &task.Task{ID: "t1"}}, nil)

	svc := intake.NewService(resolver, reconciler, triageLog, nil)
	out, err := svc.Handle(context.Background(), message.Inbound{From: sender, Body: body})
	require.NoError(t, err)
	require.Equal(t, "task_updated", out.Action)
	require.Equal(t, "p1", out.ProjectID)
	require.Equal(t, "t1", out.TaskID)
	require.Empty(t, out.FallbackTried)

	resolver.AssertNotCalled(t, "ProjectByMessage", mock.Anything)
	triageLog.AssertNotCalled(t, "Record", mock.Anything)
}

func TestHandle_MessageAddressFallback(t *testing.T) {
	resolver := &resolverMock{}
	reconciler := &reconcilerMock{}

	msg := "Freedom ave plumbing is 50% done"
	resolver.On("TradeByPhone", sender).Return("", nil)
	resolver.On("ProjectByAddress", mock.Anything).Return("", nil)
	resolver.On("ProjectByMessage", msg).Return("p2", nil)
	reconciler.On("Reconcile", mock.MatchedBy(func(req task.ReconcileRequest) bool {
		return req.ProjectID == "p2" && req.TradeID == ""
	})).Return(&task.ReconcileResult{Action: task.ActionCreated, Task: &task.Task{ID: "t9"}}, nil)

	svc := intake.NewService(resolver, reconciler, &triageMock{}, nil)
	out, err := svc.Handle(context.Background(), message.Inbound{From: sender, Body: msg})
	require.NoError(t, err)
	require.Equal(t, "task_created", out.Action)
	require.Equal(t, triage.FallbackMessageAddress, out.FallbackTried)
	resolver.AssertNotCalled(t, "ProjectByTradeTasks", mock.Anything)
}

func TestHandle_TradeTasksFallback(t *testing.T) {
	resolver := &resolverMock{}
	reconciler := &reconcilerMock{}

	resolver.On("TradeByPhone", sender).Return("tr1", nil)
	resolver.On("ProjectByAddress", mock.Anything).Return("", nil)
	resolver.On("ProjectByMessage", "all done").Return("", nil)
	resolver.On("ProjectByTradeTasks", "tr1").Return("p3")
	reconciler.On("Reconcile", mock.MatchedBy(func(req task.ReconcileRequest) bool {
		return req.ProjectID == "p3" && req.TradeID == "tr1"
	})).Return(&task.ReconcileResult{Action: task.ActionUpdated, Task: &task.Task{ID: "t3"}}, nil)

	svc := intake.NewService(resolver, reconciler, &triageMock{}, nil)
	out, err := svc.Handle(context.Background(), message.Inbound{From: sender, Body: "all done"})
	require.NoError(t, err)
	require.Equal(t, triage.FallbackTradeTasks, out.FallbackTried)
	require.Equal(t, "p3", out.ProjectID)
}

func TestHandle_UnresolvedIsTriaged(t *testing.T) {
	resolver := &resolverMock{}
	reconciler := &reconcilerMock{}
	triageLog := &triageMock{}

	resolver.On("TradeByPhone", sender).Return("tr1", nil)
	resolver.On("ProjectByAddress", mock.Anything).Return("", nil)
	resolver.On("ProjectByMessage", mock.Anything).Return("", nil)
	resolver.On("ProjectByTradeTasks", "tr1").Return("")
	triageLog.On("Record", mock.MatchedBy(func(e triage.Entry) bool {
		return e.From == sender && e.Body == "hello" &&
			e.Reason == triage.ReasonProjectNotFound &&
			e.AttemptedTradeID == "tr1" && e.FallbackTried == ""
	})).Return(&triage.Record{ID: "m1"}).Once()

	svc := intake.NewService(resolver, reconciler, triageLog, nil)
	out, err := svc.Handle(context.Background(), message.Inbound{From: sender, Body: "hello"})
	require.NoError(t, err)
	require.Equal(t, intake.ActionTriaged, out.Action)
	require.Equal(t, "m1", out.TriageID)
	triageLog.AssertExpectations(t)
	reconciler.AssertNotCalled(t, "Reconcile", mock.Anything)
}

func TestHandle_TriageWriteFailureStillHandled(t *testing.T) {
	resolver := &resolverMock{}
	triageLog := &triageMock{}

	resolver.On("TradeByPhone", mock.Anything).Return("", nil)
	resolver.On("ProjectByAddress", mock.Anything).Return("", nil)
	resolver.On("ProjectByMessage", mock.Anything).Return("", nil)
	triageLog.On("Record", mock.Anything).Return(nil)

	svc := intake.NewService(resolver, &reconcilerMock{}, triageLog, nil)
	out, err := svc.Handle(context.Background(), message.Inbound{From: sender, Body: "x"})
	require.NoError(t, err)
	require.Equal(t, intake.ActionTriaged, out.Action)
	require.Empty(t, out.TriageID)
}

func TestHandle_LookupErrorReturned(t *testing.T) {
	resolver := &resolverMock{}

	resolver.On("TradeByPhone", mock.Anything).Return("", errors.New("store unavailable"))
	resolver.On("ProjectByAddress", mock.Anything).Return("", nil)

	svc := intake.NewService(resolver, &reconcilerMock{}, &triageMock{}, nil)
	_, err := svc.Handle(context.Background(), message.Inbound{From: sender, Body: body})
	require.Error(t, err)
}

func TestHandle_ReconcileErrorReturned(t *testing.T) {
	resolver := &resolverMock{}
	reconciler := &reconcilerMock{}

	resolver.On("TradeByPhone", mock.Anything).Return("", nil)
	resolver.On("ProjectByAddress", mock.Anything).Return("p1", nil)
	reconciler.On("Reconcile", mock.Anything).Return(nil, errors.New("read-only"))

	svc := intake.NewService(resolver, reconciler, &triageMock{}, nil)
	_, err := svc.Handle(context.Background(), message.Inbound{From: sender, Body: body})
	require.Error(t, err)
}
