package trade_test

import (
	"context"
	"testing"

	"github.com/rpggio/sitecord/internal/domain/trade"
	"github.com/rpggio/sitecord/internal/repository/mocks"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestTradeService_Create(t *testing.T) {
	ctx := context.Background()

	repo := &mocks.TradeRepository{}
	repo.On("Create", ctx, mock.Anything).Return(nil)

	svc := trade.NewService(repo, nil)
	tr, err := svc.Create(ctx, trade.CreateRequest{Name: "Ace Plumbing", Phone: "(555) 123-4567"})
	require.NoError(t, err)
	require.NotEmpty(t, tr.ID)
	require.Equal(t, "(555) 123-4567", tr.Phone)
}

func TestTradeService_CreateRequiresDigits(t *testing.T) {
	ctx := context.Background()

	svc := trade.NewService(&mocks.TradeRepository{}, nil)
	_, err := svc.Create(ctx, trade.CreateRequest{Name: "Ace Plumbing", Phone: "call office"})
	require.ErrorIs(t, err, trade.ErrInvalidInput)

	_, err = svc.Create(ctx, trade.CreateRequest{Phone: "5551234567"})
	require.ErrorIs(t, err, trade.ErrInvalidInput)
}
