package triage

import (
	"context"
	"time"
)

// Repository appends and reads triage records.
type Repository interface {
	Create(ctx context.Context, rec *Record) error
	List(ctx context.Context, opts ListOptions) ([]Record, error)
	CountSince(ctx context.Context, since time.Time) (int, error)
}
