package message

import "time"

// Status is the canonical task status label.
type Status string

const (
	StatusCompleted    Status = "Completed"
	StatusInProgress   Status = "In Progress"
	StatusDelayed      Status = "Delayed"
	StatusNotStarted   Status = "Not Started"
	StatusJobSiteReady Status = "Job Site Ready"
)

// Valid reports whether s is one of the canonical labels.
func (s Status) Valid() bool {
	switch s {
	case StatusCompleted, StatusInProgress, StatusDelayed, StatusNotStarted, StatusJobSiteReady:
		return true
	}
	return false
}

// Inbound is a text message as received by the webhook.
type Inbound struct {
	From       string    `json:"from"`
	Body       string    `json:"body"`
	ReceivedAt time.Time `json:"received_at"`
}

// Parsed is the structured update extracted from a message body.
// Empty strings and a nil Progress mean the field was not found.
type Parsed struct {
	Status   Status `json:"status,omitempty"`
	Task     string `json:"task,omitempty"`
	Where    string `json:"where,omitempty"`
	Progress *int   `json:"progress_pct,omitempty"`
}

// Empty reports whether nothing was extracted.
func (p Parsed) Empty() bool {
	return p.Status == "" && p.Task == "" && p.Where == "" && p.Progress == nil
}
