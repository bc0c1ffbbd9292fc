package triage

import (
	"time"

	"github.com/rpggio/sitecord/internal/domain/message"
)

// ReasonProjectNotFound marks messages that resolved to no project.
const ReasonProjectNotFound = "project_not_found"

// Fallback labels recorded on triage records.
const (
	FallbackMessageAddress = "by_message_contains_address"
	FallbackTradeTasks     = "by_trade_tasks"
)

// Record is an unresolved inbound message kept for manual follow-up.
type Record struct {
	ID               string         `json:"id"`
	From             string         `json:"from"`
	Body             string         `json:"body"`
	Parsed           message.Parsed `json:"parsed"`
	Reason           string         `json:"reason"`
	AttemptedTradeID *string        `json:"attempted_trade_id"`
	FallbackTried    *string        `json:"fallback_tried"`
	CreatedAt        time.Time      `json:"created_at"`
}

// ListOptions filters triage listings.
type ListOptions struct {
	Since *time.Time
	Limit int
}
