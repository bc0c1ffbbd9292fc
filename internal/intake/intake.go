// Package intake turns inbound text messages into task updates.
package intake

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/rpggio/sitecord/internal/domain/message"
	"github.com/rpggio/sitecord/internal/domain/task"
	"github.com/rpggio/sitecord/internal/domain/triage"
	"golang.org/x/sync/errgroup"
)

// ActionTriaged marks messages that were recorded for manual follow-up.
const ActionTriaged = "triaged"

// Resolver finds the project and trade a message refers to.
type Resolver interface {
	ProjectByAddress(ctx context.Context, where string) (string, error)
	ProjectByMessage(ctx context.Context, body string) (string, error)
	TradeByPhone(ctx context.Context, from string) (string, error)
	ProjectByTradeTasks(ctx context.Context, tradeID string) string
}

// Reconciler writes the task update for a resolved message.
type Reconciler interface {
	Reconcile(ctx context.Context, req task.ReconcileRequest) (*task.ReconcileResult, error)
}

// Triage records messages that resolved to no project.
type Triage interface {
	Record(ctx context.Context, e triage.Entry) *triage.Record
}

// Outcome summarises how one message was handled.
type Outcome struct {
	Parsed        message.Parsed `json:"parsed"`
	ProjectID     string         `json:"project_id,omitempty"`
	TradeID       string         `json:"trade_id,omitempty"`
	FallbackTried string         `json:"fallback_tried,omitempty"`
	Action        string         `json:"action"`
	TaskID        string         `json:"task_id,omitempty"`
	TriageID      string         `json:"triage_id,omitempty"`
}

// Service runs the intake pipeline.
type Service struct {
	resolver   Resolver
	reconciler Reconciler
	triage     Triage
	logger     *slog.Logger
}

// NewService creates a new intake service.
func NewService(resolver Resolver, reconciler Reconciler, triage Triage, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		resolver:   resolver,
		reconciler: reconciler,
		triage:     triage,
		logger:     logger,
	}
}

// Handle parses and applies one inbound message. Unmatched messages are
// triaged and still count as handled; an error means a store call failed
// before anything could be recorded.
func (s *Service) Handle(ctx context.Context, in message.Inbound) (*Outcome, error) {
	parsed := message.Parse(in.Body)
	out := &Outcome{Parsed: parsed}

	var tradeID, projectID string
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		id, err := s.resolver.TradeByPhone(gctx, in.From)
		if err != nil {
			return fmt.Errorf("resolving trade: %w", err)
		}
		tradeID = id
		return nil
	})
	g.Go(func() error {
		id, err := s.resolver.ProjectByAddress(gctx, parsed.Where)
		if err != nil {
			return fmt.Errorf("resolving project by address: %w", err)
		}
		projectID = id
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	out.TradeID = tradeID

	if projectID == "" {
		id, err := s.resolver.ProjectByMessage(ctx, in.Body)
		if err != nil {
			return nil, fmt.Errorf("resolving project by message: %w", err)
		}
		if id != "" {
			projectID = id
			out.FallbackTried = triage.FallbackMessageAddress
		}
	}

	if projectID == "" && tradeID != "" {
		if id := s.resolver.ProjectByTradeTasks(ctx, tradeID); id != "" {
			projectID = id
			out.FallbackTried = triage.FallbackTradeTasks
		}
	}

	if projectID == "" {
		rec := s.triage.Record(ctx, triage.Entry{
			From:             in.From,
			Body:             in.Body,
			Parsed:           parsed,
			Reason:           triage.ReasonProjectNotFound,
			AttemptedTradeID: tradeID,
			FallbackTried:    out.FallbackTried,
		})
		out.Action = ActionTriaged
		if rec != nil {
			out.TriageID = rec.ID
		}
		return out, nil
	}
	out.ProjectID = projectID

	res, err := s.reconciler.Reconcile(ctx, task.ReconcileRequest{
		ProjectID: projectID,
		TradeID:   tradeID,
		Parsed:    parsed,
		Body:      in.Body,
		From:      in.From,
	})
	if err != nil {
		return nil, err
	}
	out.Action = string(res.Action)
	out.TaskID = res.Task.ID

	s.logger.Debug("message handled",
		"from", in.From, "project_id", projectID, "trade_id", tradeID,
		"action", out.Action, "fallback", out.FallbackTried)
	return out, nil
}
