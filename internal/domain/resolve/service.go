package resolve

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/rpggio/sitecord/internal/repository"
)

// Service resolves message fragments and senders to stored entities. Every
// lookup is a full scan of its collection; an empty ID means no match.
type Service struct {
	projects ProjectRepository
	trades   TradeRepository
	tasks    TaskRepository
	logger   *slog.Logger
}

// NewService creates a new resolver.
func NewService(projects ProjectRepository, trades TradeRepository, tasks TaskRepository, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{projects: projects, trades: trades, tasks: tasks, logger: logger}
}

// ProjectByAddress returns the first project whose address matches where.
func (s *Service) ProjectByAddress(ctx context.Context, where string) (string, error) {
	if where == "" {
		return "", nil
	}
	projects, err := s.projects.List(ctx)
	if err != nil {
		return "", fmt.Errorf("listing projects: %w", err)
	}
	for _, p := range projects {
		if MatchAddress(where, p.Address) {
			return p.ID, nil
		}
	}
	return "", nil
}

// ProjectByMessage returns the first project whose address the body mentions.
func (s *Service) ProjectByMessage(ctx context.Context, body string) (string, error) {
	if body == "" {
		return "", nil
	}
	projects, err := s.projects.List(ctx)
	if err != nil {
		return "", fmt.Errorf("listing projects: %w", err)
	}
	for _, p := range projects {
		if MatchAddressInMessage(body, p.Address) {
			return p.ID, nil
		}
	}
	return "", nil
}

// TradeByPhone returns the trade whose phone is a suffix of the sender's,
// preferring the longest stored number.
func (s *Service) TradeByPhone(ctx context.Context, from string) (string, error) {
	trades, err := s.trades.List(ctx)
	if err != nil {
		return "", fmt.Errorf("listing trades: %w", err)
	}
	bestID, bestLen := "", 0
	for _, t := range trades {
		n, ok := MatchPhone(from, t.Phone)
		if ok && n > bestLen {
			bestID, bestLen = t.ID, n
		}
	}
	return bestID, nil
}

// ProjectByTradeTasks infers a project from any task assigned to the trade.
// Store failures are logged and treated as no match.
func (s *Service) ProjectByTradeTasks(ctx context.Context, tradeID string) string {
	if tradeID == "" {
		return ""
	}
	t, err := s.tasks.FirstByTrade(ctx, tradeID)
	if err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			s.logger.Warn("fallback by trade id failed", "trade_id", tradeID, "error", err)
		}
		return ""
	}
	return t.ProjectID
}
