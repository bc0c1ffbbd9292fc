package trade

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

// Service handles trade operations.
type Service struct {
	repo   Repository
	logger *slog.Logger
}

// NewService creates a new trade service.
func NewService(repo Repository, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{repo: repo, logger: logger}
}

// CreateRequest defines trade creation inputs.
type CreateRequest struct {
	ID      string
	Name    string
	Phone   string
	Contact string
}

// Create registers a trade. The phone must contain at least one digit so it
// can later be matched against inbound senders.
func (s *Service) Create(ctx context.Context, req CreateRequest) (*Trade, error) {
	if strings.TrimSpace(req.Name) == "" || message.NormalizePhone(req.Phone) == "" {
		return nil, ErrInvalidInput
	}

	id := req.ID
	if strings.TrimSpace(id) == "" {
		id = uuid.NewString()
	}

	tr := &Trade{
		ID:        id,
		Name:      strings.TrimSpace(req.Name),
		Phone:     strings.TrimSpace(req.Phone),
		Contact:   strings.TrimSpace(req.Contact),
		CreatedAt: time.Now().UTC(),
	}
	if err := s.repo.Create(ctx, tr); err != nil {
		return nil, fmt.Errorf("creating trade: %w", err)
	}

	s.logger.Info("trade created", "trade_id", tr.ID, "name", tr.Name)
	return tr, nil
}

// Get fetches a trade by ID.
func (s *Service) Get(ctx context.Context, id string) (*Trade, error) {
	tr, err := s.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrTradeNotFound
		}
		return nil, fmt.Errorf("getting trade: %w", err)
	}
	return tr, nil
}

// List returns all trades.
func (s *Service) List(ctx context.Context) ([]Trade, error) {
	return s.repo.List(ctx)
}
