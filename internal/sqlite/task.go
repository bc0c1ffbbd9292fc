package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/rpggio/sitecord/internal/domain/task"
	"github.com/rpggio/sitecord/internal/repository"
)

// TaskRepository implements task.Repository for SQLite
type TaskRepository struct {
	db *DB
}

// NewTaskRepository creates a new TaskRepository
func NewTaskRepository(db *DB) *TaskRepository {
	return &TaskRepository{db: db}
}

const taskColumns = `
	id, project_id, trade_id, name, status, progress, dependency, notes,
	start_date, end_date, source, sender, version, created_at, updated_at,
	updated_from_sms_at
`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTask(row rowScanner) (*task.Task, error) {
	var t task.Task
	var smsAt sql.NullTime
	err := row.Scan(
		&t.ID,
		&t.ProjectID,
		&t.TradeID,
		&t.Name,
		&t.Status,
		&t.Progress,
		&t.Dependency,
		&t.Notes,
		&t.StartDate,
		&t.EndDate,
		&t.Source,
		&t.From,
		&t.Version,
		&t.CreatedAt,
		&t.UpdatedAt,
		&smsAt,
	)
	if err != nil {
		return nil, err
	}
	if smsAt.Valid {
		at := smsAt.Time
		t.UpdatedFromSMSAt = &at
	}
	return &t, nil
}

// Create inserts a task under its project
func (r *TaskRepository) Create(ctx context.Context, t *task.Task) error {
	query := `
		INSERT INTO tasks (` + taskColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := r.db.ExecContext(ctx, query,
		t.ID,
		t.ProjectID,
		t.TradeID,
		t.Name,
		t.Status,
		t.Progress,
		t.Dependency,
		t.Notes,
		t.StartDate,
		t.EndDate,
		t.Source,
		t.From,
		t.Version,
		t.CreatedAt,
		t.UpdatedAt,
		t.UpdatedFromSMSAt,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return repository.ErrForeignKeyViolation
		}
		if isUniqueViolation(err) {
			return repository.ErrDuplicate
		}
		return fmt.Errorf("failed to create task: %w", err)
	}
	return nil
}

// Get retrieves a task by project and ID
func (r *TaskRepository) Get(ctx context.Context, projectID, id string) (*task.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks WHERE project_id = ? AND id = ?`

	t, err := scanTask(r.db.QueryRowContext(ctx, query, projectID, id))
	if err == sql.ErrNoRows {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get task: %w", err)
	}
	return t, nil
}

// ListByProject returns a project's tasks in creation order
func (r *TaskRepository) ListByProject(ctx context.Context, projectID string) ([]task.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks WHERE project_id = ? ORDER BY created_at ASC, id ASC`
	return r.list(ctx, query, projectID)
}

// ListByProjectTrade returns the tasks a trade holds on a project
func (r *TaskRepository) ListByProjectTrade(ctx context.Context, projectID, tradeID string) ([]task.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks WHERE project_id = ? AND trade_id = ? ORDER BY created_at ASC, id ASC`
	return r.list(ctx, query, projectID, tradeID)
}

// FirstByTrade returns the earliest task assigned to a trade on any project
func (r *TaskRepository) FirstByTrade(ctx context.Context, tradeID string) (*task.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks WHERE trade_id = ? ORDER BY created_at ASC, id ASC LIMIT 1`

	t, err := scanTask(r.db.QueryRowContext(ctx, query, tradeID))
	if err == sql.ErrNoRows {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find task by trade: %w", err)
	}
	return t, nil
}

// Update writes the mutable task fields if the stored version matches
func (r *TaskRepository) Update(ctx context.Context, t *task.Task, expectedVersion int64) error {
	query := `
		UPDATE tasks
		SET status = ?, progress = ?, updated_at = ?, updated_from_sms_at = ?, version = ?
		WHERE id = ? AND project_id = ? AND version = ?
	`

	result, err := r.db.ExecContext(ctx, query,
		t.Status,
		t.Progress,
		t.UpdatedAt,
		t.UpdatedFromSMSAt,
		t.Version,
		t.ID,
		t.ProjectID,
		expectedVersion,
	)
	if err != nil {
		return fmt.Errorf("failed to update task: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		var exists bool
		checkQuery := `SELECT EXISTS(SELECT 1 FROM tasks WHERE id = ? AND project_id = ?)`
		if err := r.db.QueryRowContext(ctx, checkQuery, t.ID, t.ProjectID).Scan(&exists); err != nil {
			return fmt.Errorf("failed to check task existence: %w", err)
		}
		if !exists {
			return repository.ErrNotFound
		}
		return repository.ErrConflict
	}

	return nil
}

func (r *TaskRepository) list(ctx context.Context, query string, args ...any) ([]task.Task, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	defer rows.Close()

	var tasks []task.Task
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan task: %w", err)
		}
		tasks = append(tasks, *t)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating task rows: %w", err)
	}
	return tasks, nil
}
