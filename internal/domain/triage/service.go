package triage

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/rpggio/sitecord/internal/domain/message"
)

const defaultListLimit = 50

// Service records and lists unresolved messages.
type Service struct {
	repo   Repository
	logger *slog.Logger
}

// NewService creates a new triage service.
func NewService(repo Repository, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{repo: repo, logger: logger}
}

// Entry describes a message that could not be placed on a project.
type Entry struct {
	From             string
	Body             string
	Parsed           message.Parsed
	Reason           string
	AttemptedTradeID string
	FallbackTried    string
}

// Record stores the entry. It never fails; a write error is logged and the
// returned record is nil.
func (s *Service) Record(ctx context.Context, e Entry) *Record {
	reason := e.Reason
	if reason == "" {
		reason = ReasonProjectNotFound
	}
	rec := &Record{
		ID:               uuid.NewString(),
		From:             e.From,
		Body:             e.Body,
		Parsed:           e.Parsed,
		Reason:           reason,
		AttemptedTradeID: optional(e.AttemptedTradeID),
		FallbackTried:    optional(e.FallbackTried),
		CreatedAt:        time.Now().UTC(),
	}
	if err := s.repo.Create(ctx, rec); err != nil {
		s.logger.Error("failed to record triage message", "from", e.From, "reason", reason, "error", err)
		return nil
	}
	s.logger.Info("message triaged", "triage_id", rec.ID, "from", rec.From, "reason", rec.Reason)
	return rec
}

// List returns triage records, newest first.
func (s *Service) List(ctx context.Context, opts ListOptions) ([]Record, error) {
	if opts.Limit <= 0 {
		opts.Limit = defaultListLimit
	}
	return s.repo.List(ctx, opts)
}

// CountSince counts triage records created at or after since.
func (s *Service) CountSince(ctx context.Context, since time.Time) (int, error) {
	return s.repo.CountSince(ctx, since)
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
