package task

import (
	"context"

	"github.com/rpggio/sitecord/internal/domain/trade"
)

// Repository provides persistence for tasks nested under projects.
type Repository interface {
	Create(ctx context.Context, t *Task) error
	Get(ctx context.Context, projectID, id string) (*Task, error)
	ListByProject(ctx context.Context, projectID string) ([]Task, error)
	ListByProjectTrade(ctx context.Context, projectID, tradeID string) ([]Task, error)
	// FirstByTrade returns any one task assigned to the trade, across all
	// projects, or repository.ErrNotFound.
	FirstByTrade(ctx context.Context, tradeID string) (*Task, error)
	// Update writes t only if the stored version still equals expectedVersion.
	Update(ctx context.Context, t *Task, expectedVersion int64) error
}

// TradeRepository looks up the trade behind a resolved trade ID.
type TradeRepository interface {
	Get(ctx context.Context, id string) (*trade.Trade, error)
}
