package task

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rpggio/sitecord/internal/domain/message"
	"github.com/rpggio/sitecord/internal/repository"
)

// Action describes what a reconcile did.
type Action string

const (
	ActionUpdated Action = "task_updated"
	ActionCreated Action = "task_created"
)

// maxUpdateAttempts bounds retries when a conditional update loses a race.
const maxUpdateAttempts = 3

// ReconcileRequest carries a parsed message resolved to a project.
type ReconcileRequest struct {
	ProjectID string
	// TradeID is empty when the sender did not resolve to a trade.
	TradeID string
	Parsed  message.Parsed
	Body    string
	From    string
}

// ReconcileResult reports the task that was written.
type ReconcileResult struct {
	Action Action
	Task   *Task
}

// Reconciler applies parsed status updates to a project's tasks.
type Reconciler struct {
	tasks  Repository
	trades TradeRepository
	now    func() time.Time
	logger *slog.Logger
}

// NewReconciler creates a reconciler.
func NewReconciler(tasks Repository, trades TradeRepository, logger *slog.Logger) *Reconciler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Reconciler{
		tasks:  tasks,
		trades: trades,
		now:    func() time.Time { return time.Now().UTC() },
		logger: logger,
	}
}

// WithClock replaces the reconciler's time source.
func (r *Reconciler) WithClock(now func() time.Time) *Reconciler {
	r.now = now
	return r
}

// EffectiveStatus derives the status and progress to write. A reported
// percentage decides the status; otherwise the parsed status is used,
// defaulting to In Progress.
func EffectiveStatus(parsed message.Parsed) (message.Status, *int) {
	if parsed.Progress != nil {
		pct := message.ClampPercent(*parsed.Progress)
		return StatusForProgress(pct), &pct
	}
	if parsed.Status != "" {
		return parsed.Status, nil
	}
	return message.StatusInProgress, nil
}

// StatusForProgress maps a percentage onto the status it implies.
func StatusForProgress(pct int) message.Status {
	switch {
	case pct >= 100:
		return message.StatusCompleted
	case pct <= 0:
		return message.StatusNotStarted
	default:
		return message.StatusInProgress
	}
}

// Reconcile updates the matching task for the sender's trade, or creates a
// new task when no match is found. Lookup and update failures are logged and
// fall through to creation; only a failed create is returned.
func (r *Reconciler) Reconcile(ctx context.Context, req ReconcileRequest) (*ReconcileResult, error) {
	status, progress := EffectiveStatus(req.Parsed)

	if req.TradeID != "" {
		updated, err := r.updateExisting(ctx, req, status, progress)
		if err != nil {
			r.logger.Warn("task lookup/update failed",
				"project_id", req.ProjectID, "trade_id", req.TradeID, "error", err)
		}
		if updated != nil {
			return &ReconcileResult{Action: ActionUpdated, Task: updated}, nil
		}
	}

	created, err := r.create(ctx, req, status, progress)
	if err != nil {
		return nil, err
	}
	return &ReconcileResult{Action: ActionCreated, Task: created}, nil
}

func (r *Reconciler) updateExisting(ctx context.Context, req ReconcileRequest, status message.Status, progress *int) (*Task, error) {
	tradeName, err := r.tradeName(ctx, req.TradeID)
	if err != nil {
		return nil, err
	}

	for attempt := 1; attempt <= maxUpdateAttempts; attempt++ {
		candidates, err := r.tasks.ListByProjectTrade(ctx, req.ProjectID, req.TradeID)
		if err != nil {
			return nil, fmt.Errorf("listing trade tasks: %w", err)
		}

		matched := MatchTask(candidates, req.Parsed.Task, req.Body, tradeName)
		if matched == nil {
			return nil, nil
		}

		now := r.now()
		next := *matched
		next.Status = status
		if progress != nil {
			next.Progress = *progress
		}
		next.UpdatedAt = now
		next.UpdatedFromSMSAt = &now
		next.Version = matched.Version + 1

		err = r.tasks.Update(ctx, &next, matched.Version)
		if err == nil {
			r.logger.Info("task updated from sms",
				"project_id", next.ProjectID, "task_id", next.ID, "status", next.Status, "progress", next.Progress)
			return &next, nil
		}
		if !errors.Is(err, repository.ErrConflict) {
			return nil, fmt.Errorf("updating task: %w", err)
		}
		r.logger.Debug("task update conflict, retrying", "task_id", matched.ID, "attempt", attempt)
	}
	return nil, fmt.Errorf("updating task: %w", repository.ErrConflict)
}

func (r *Reconciler) tradeName(ctx context.Context, tradeID string) (string, error) {
	tr, err := r.trades.Get(ctx, tradeID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", nil
		}
		return "", fmt.Errorf("loading trade: %w", err)
	}
	return tr.Name, nil
}

// MatchTask picks the task a message refers to. A task whose name and the
// parsed task text contain one another wins; failing that, when the body
// names the trade and the trade has exactly one task, that task is used.
func MatchTask(candidates []Task, parsedTask, body, tradeName string) *Task {
	want := strings.ToLower(parsedTask)
	if want != "" {
		for i := range candidates {
			name := strings.ToLower(candidates[i].Name)
			if name == "" {
				continue
			}
			if strings.Contains(name, want) || strings.Contains(want, name) {
				return &candidates[i]
			}
		}
	}

	if tradeName != "" && len(candidates) == 1 &&
		strings.Contains(strings.ToLower(body), strings.ToLower(tradeName)) {
		return &candidates[0]
	}
	return nil
}

func (r *Reconciler) create(ctx context.Context, req ReconcileRequest, status message.Status, progress *int) (*Task, error) {
	now := r.now()
	today := now.Format(DateLayout)

	tradeID := req.TradeID
	if tradeID == "" {
		tradeID = Unassigned
	}

	pct := 0
	switch {
	case progress != nil:
		pct = *progress
	case req.Parsed.Status == message.StatusCompleted:
		pct = 100
	}

	t := &Task{
		ID:        uuid.NewString(),
		ProjectID: req.ProjectID,
		TradeID:   tradeID,
		Name:      req.Parsed.Task,
		Status:    status,
		Progress:  pct,
		Notes:     notesFor(req.Parsed, req.Body),
		StartDate: today,
		EndDate:   today,
		Source:    SourceSMS,
		From:      req.From,
		Version:   1,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := r.tasks.Create(ctx, t); err != nil {
		return nil, fmt.Errorf("creating task: %w", err)
	}

	r.logger.Info("task created from sms",
		"project_id", t.ProjectID, "task_id", t.ID, "trade_id", t.TradeID, "status", t.Status)
	return t, nil
}

func notesFor(parsed message.Parsed, body string) string {
	if parsed.Task == "" {
		return body
	}
	if parsed.Where == "" {
		return parsed.Task
	}
	return parsed.Task + " @ " + parsed.Where
}
