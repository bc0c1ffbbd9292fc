package trade

import "context"

// Repository provides persistence for trades.
type Repository interface {
	Create(ctx context.Context, tr *Trade) error
	Get(ctx context.Context, id string) (*Trade, error)
	List(ctx context.Context) ([]Trade, error)
}
