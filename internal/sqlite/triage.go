package sqlite

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/rpggio/sitecord/internal/domain/triage"
)

// TriageRepository implements triage.Repository for SQLite
type TriageRepository struct {
	db *DB
}

// NewTriageRepository creates a new TriageRepository
func NewTriageRepository(db *DB) *TriageRepository {
	return &TriageRepository{db: db}
}

// Create appends a triage record
func (r *TriageRepository) Create(ctx context.Context, rec *triage.Record) error {
	parsed, err := json.Marshal(rec.Parsed)
	if err != nil {
		return fmt.Errorf("failed to encode parsed message: %w", err)
	}

	query := `
		INSERT INTO inbound_messages (
			id, sender, body, parsed, reason, attempted_trade_id, fallback_tried, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err = r.db.ExecContext(ctx, query,
		rec.ID,
		rec.From,
		rec.Body,
		string(parsed),
		rec.Reason,
		rec.AttemptedTradeID,
		rec.FallbackTried,
		rec.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create triage record: %w", err)
	}
	return nil
}

// List returns triage records, newest first
func (r *TriageRepository) List(ctx context.Context, opts triage.ListOptions) ([]triage.Record, error) {
	query := `
		SELECT id, sender, body, parsed, reason, attempted_trade_id, fallback_tried, created_at
		FROM inbound_messages
	`
	args := []any{}
	if opts.Since != nil {
		query += ` WHERE created_at >= ?`
		args = append(args, *opts.Since)
	}
	query += ` ORDER BY created_at DESC, id DESC`
	if opts.Limit > 0 {
		query += ` LIMIT ?`
		args = append(args, opts.Limit)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list triage records: %w", err)
	}
	defer rows.Close()

	var records []triage.Record
	for rows.Next() {
		var rec triage.Record
		var parsed string
		if err := rows.Scan(
			&rec.ID,
			&rec.From,
			&rec.Body,
			&parsed,
			&rec.Reason,
			&rec.AttemptedTradeID,
			&rec.FallbackTried,
			&rec.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan triage record: %w", err)
		}
		if err := json.Unmarshal([]byte(parsed), &rec.Parsed); err != nil {
			return nil, fmt.Errorf("failed to decode parsed message for %s: %w", rec.ID, err)
		}
		records = append(records, rec)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating triage rows: %w", err)
	}
	return records, nil
}

// CountSince counts records created at or after since
func (r *TriageRepository) CountSince(ctx context.Context, since time.Time) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM inbound_messages WHERE created_at >= ?`, since,
	).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("failed to count triage records: %w", err)
	}
	return n, nil
}
