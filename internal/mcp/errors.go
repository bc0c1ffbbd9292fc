package mcp

import (
	"errors"
	"fmt"

	"github.com/rpggio/sitecord/internal/domain/project"
	"github.com/rpggio/sitecord/internal/domain/task"
	"github.com/rpggio/sitecord/internal/domain/trade"
	"github.com/rpggio/sitecord/internal/repository"
)

// APIError represents an MCP error response.
type APIError struct {
	Code         string `json:"code"`
	Message      string `json:"message"`
	RecoveryHint string `json:"recovery_hint,omitempty"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// MapError maps domain errors to MCP error codes. Unknown errors map to nil.
func MapError(err error) *APIError {
	if err == nil {
		return nil
	}
	switch {
	case errors.Is(err, project.ErrInvalidInput),
		errors.Is(err, trade.ErrInvalidInput),
		errors.Is(err, task.ErrInvalidInput):
		return &APIError{Code: "INVALID_INPUT", Message: err.Error(), RecoveryHint: "Check required fields and date format (YYYY-MM-DD)"}
	case errors.Is(err, project.ErrProjectNotFound), errors.Is(err, task.ErrProjectNotFound):
		return &APIError{Code: "PROJECT_NOT_FOUND", Message: "project not found", RecoveryHint: "Call list_projects for valid IDs"}
	case errors.Is(err, trade.ErrTradeNotFound):
		return &APIError{Code: "TRADE_NOT_FOUND", Message: "trade not found", RecoveryHint: "Call list_trades for valid IDs"}
	case errors.Is(err, repository.ErrDuplicate):
		return &APIError{Code: "DUPLICATE", Message: "an entity with this ID already exists", RecoveryHint: "Omit the ID to generate one"}
	default:
		return nil
	}
}
