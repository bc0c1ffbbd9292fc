package digest

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rpggio/sitecord/internal/repository/mocks"
	"github.com/stretchr/testify/require"
)

func TestScheduler_RunNowAdvancesWindow(t *testing.T) {
	ctx := context.Background()
	t0 := time.Date(2026, 3, 14, 7, 0, 0, 0, time.UTC)
	t1 := t0.Add(24 * time.Hour)

	repo := &mocks.TriageRepository{}
	repo.On("CountSince", ctx, time.Time{}).Return(3, nil).Once()
	repo.On("CountSince", ctx, t0).Return(1, nil).Once()

	s := NewScheduler(repo, "0 7 * * *", nil)
	clock := t0
	s.now = func() time.Time { return clock }

	n, err := s.RunNow(ctx)
	require.NoError(t, err)
	require.Equal(t, 3, n)

	clock = t1
	n, err = s.RunNow(ctx)
	require.NoError(t, err)
	require.Equal(t, 1, n)
	repo.AssertExpectations(t)
}

func TestScheduler_RunNowErrorKeepsWindow(t *testing.T) {
	ctx := context.Background()

	repo := &mocks.TriageRepository{}
	repo.On("CountSince", ctx, time.Time{}).Return(0, errors.New("locked")).Once()
	repo.On("CountSince", ctx, time.Time{}).Return(2, nil).Once()

	s := NewScheduler(repo, "@daily", nil)

	_, err := s.RunNow(ctx)
	require.Error(t, err)

	n, err := s.RunNow(ctx)
	require.NoError(t, err)
	require.Equal(t, 2, n)
}

func TestScheduler_StartStop(t *testing.T) {
	s := NewScheduler(&mocks.TriageRepository{}, "*/5 * * * *", nil)
	require.NoError(t, s.Start(context.Background()))
	require.NoError(t, s.Start(context.Background()))
	s.Stop()
	s.Stop()
}

func TestScheduler_InvalidSchedule(t *testing.T) {
	s := NewScheduler(&mocks.TriageRepository{}, "every tuesday", nil)
	require.Error(t, s.Start(context.Background()))
}
