package sqlite

import (
	"context"
	"fmt"
	"time"
)

// ClaimsRepository implements account.Repository for SQLite
type ClaimsRepository struct {
	db *DB
}

// NewClaimsRepository creates a new ClaimsRepository
func NewClaimsRepository(db *DB) *ClaimsRepository {
	return &ClaimsRepository{db: db}
}

// SetClaim stores or replaces one claim for a user
func (r *ClaimsRepository) SetClaim(ctx context.Context, uid, key, value string) error {
	query := `
		INSERT INTO user_claims (uid, claim, value, updated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(uid, claim) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
	`
	if _, err := r.db.ExecContext(ctx, query, uid, key, value, time.Now().UTC()); err != nil {
		return fmt.Errorf("failed to set claim: %w", err)
	}
	return nil
}

// Claims returns all claims for a user
func (r *ClaimsRepository) Claims(ctx context.Context, uid string) (map[string]string, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT claim, value FROM user_claims WHERE uid = ?`, uid)
	if err != nil {
		return nil, fmt.Errorf("failed to list claims: %w", err)
	}
	defer rows.Close()

	claims := map[string]string{}
	for rows.Next() {
		var k, v string
		if err := rows.Scan(&k, &v); err != nil {
			return nil, fmt.Errorf("failed to scan claim: %w", err)
		}
		claims[k] = v
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating claim rows: %w", err)
	}
	return claims, nil
}
