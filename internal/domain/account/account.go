package account

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
)

// RoleClaim is the claim key carrying a user's role.
const RoleClaim = "role"

// DefaultRole is assigned to every newly created user.
const DefaultRole = "Project Manager"

// ErrInvalidInput indicates a missing user ID.
var ErrInvalidInput = errors.New("invalid account input")

// Repository stores custom claims per user.
type Repository interface {
	SetClaim(ctx context.Context, uid, key, value string) error
	Claims(ctx context.Context, uid string) (map[string]string, error)
}

// Service assigns claims to users of the identity provider.
type Service struct {
	repo   Repository
	logger *slog.Logger
}

// NewService creates a new account service.
func NewService(repo Repository, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{repo: repo, logger: logger}
}

// OnUserCreated gives a new user the default role.
func (s *Service) OnUserCreated(ctx context.Context, uid string) error {
	uid = strings.TrimSpace(uid)
	if uid == "" {
		return ErrInvalidInput
	}
	if err := s.repo.SetClaim(ctx, uid, RoleClaim, DefaultRole); err != nil {
		return fmt.Errorf("setting role claim: %w", err)
	}
	s.logger.Info("role assigned", "uid", uid, "role", DefaultRole)
	return nil
}

// Claims returns the claims stored for a user.
func (s *Service) Claims(ctx context.Context, uid string) (map[string]string, error) {
	return s.repo.Claims(ctx, uid)
}
