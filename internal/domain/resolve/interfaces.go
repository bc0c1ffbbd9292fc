package resolve

import (
	"context"

	"github.com/rpggio/sitecord/internal/domain/project"
	"github.com/rpggio/sitecord/internal/domain/task"
	"github.com/rpggio/sitecord/internal/domain/trade"
)

// ProjectRepository lists every project for a full scan.
type ProjectRepository interface {
	List(ctx context.Context) ([]project.Project, error)
}

// TradeRepository lists every trade for a full scan.
type TradeRepository interface {
	List(ctx context.Context) ([]trade.Trade, error)
}

// TaskRepository finds tasks across all projects by trade.
type TaskRepository interface {
	FirstByTrade(ctx context.Context, tradeID string) (*task.Task, error)
}
