package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/rpggio/sitecord/internal/domain/trade"
	"github.com/rpggio/sitecord/internal/repository"
)

// TradeRepository implements trade.Repository for SQLite
type TradeRepository struct {
	db *DB
}

// NewTradeRepository creates a new TradeRepository
func NewTradeRepository(db *DB) *TradeRepository {
	return &TradeRepository{db: db}
}

// Create creates a new trade
func (r *TradeRepository) Create(ctx context.Context, tr *trade.Trade) error {
	query := `
		INSERT INTO trades (id, name, phone, contact, created_at)
		VALUES (?, ?, ?, ?, ?)
	`

	_, err := r.db.ExecContext(ctx, query, tr.ID, tr.Name, tr.Phone, tr.Contact, tr.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return repository.ErrDuplicate
		}
		return fmt.Errorf("failed to create trade: %w", err)
	}
	return nil
}

// Get retrieves a trade by ID
func (r *TradeRepository) Get(ctx context.Context, id string) (*trade.Trade, error) {
	query := `
		SELECT id, name, phone, contact, created_at
		FROM trades
		WHERE id = ?
	`

	var tr trade.Trade
	err := r.db.QueryRowContext(ctx, query, id).Scan(&tr.ID, &tr.Name, &tr.Phone, &tr.Contact, &tr.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get trade: %w", err)
	}
	return &tr, nil
}

// List returns every trade in creation order
func (r *TradeRepository) List(ctx context.Context) ([]trade.Trade, error) {
	query := `
		SELECT id, name, phone, contact, created_at
		FROM trades
		ORDER BY created_at ASC, id ASC
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list trades: %w", err)
	}
	defer rows.Close()

	var trades []trade.Trade
	for rows.Next() {
		var tr trade.Trade
		if err := rows.Scan(&tr.ID, &tr.Name, &tr.Phone, &tr.Contact, &tr.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan trade: %w", err)
		}
		trades = append(trades, tr)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating trade rows: %w", err)
	}
	return trades, nil
}
