package task

import (
	"time"

	"github.com/rpggio/sitecord/internal/domain/message"
)

// Unassigned is the trade ID given to tasks created without a resolved trade.
const Unassigned = "unassigned"

// SourceSMS marks tasks created by the inbound message pipeline.
const SourceSMS = "sms"

// DateLayout is the calendar-date format used for start and end dates.
const DateLayout = "2006-01-02"

// Task is a unit of work on a project, owned by a trade.
type Task struct {
	ID               string         `json:"id"`
	ProjectID        string         `json:"project_id"`
	TradeID          string         `json:"trade_id"`
	Name             string         `json:"name,omitempty"`
	Status           message.Status `json:"status"`
	Progress         int            `json:"progress"`
	Dependency       *string        `json:"dependency"`
	Notes            string         `json:"notes,omitempty"`
	StartDate        string         `json:"start_date"`
	EndDate          string         `json:"end_date"`
	Source           string         `json:"source,omitempty"`
	From             string         `json:"from,omitempty"`
	Version          int64          `json:"version"`
	CreatedAt        time.Time      `json:"created_at"`
	UpdatedAt        time.Time      `json:"updated_at"`
	UpdatedFromSMSAt *time.Time     `json:"updated_from_sms_at,omitempty"`
}
