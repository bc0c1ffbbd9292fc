package mcp

type CreateProjectParams struct {
	ID      string `json:"id,omitempty" jsonschema:"project identifier, generated when omitted"`
	Name    string `json:"name" jsonschema:"project display name"`
	Address string `json:"address" jsonschema:"job site street address used to match messages"`
	Client  string `json:"client" jsonschema:"client name"`
}

type ListProjectsParams struct{}

type CreateTradeParams struct {
	ID      string `json:"id,omitempty" jsonschema:"trade identifier, generated when omitted"`
	Name    string `json:"name" jsonschema:"trade or company name"`
	Phone   string `json:"phone" jsonschema:"phone number messages arrive from"`
	Contact string `json:"contact,omitempty" jsonschema:"contact person"`
}

type ListTradesParams struct{}

type CreateTaskParams struct {
	ProjectID  string  `json:"project_id" jsonschema:"project the task belongs to"`
	TradeID    string  `json:"trade_id" jsonschema:"trade responsible for the task"`
	Name       string  `json:"name" jsonschema:"task name"`
	Status     string  `json:"status,omitempty" jsonschema:"initial status, defaults to Not Started"`
	Dependency *string `json:"dependency,omitempty" jsonschema:"ID of a task this one depends on"`
	StartDate  string  `json:"start_date,omitempty" jsonschema:"YYYY-MM-DD, defaults to today"`
	EndDate    string  `json:"end_date,omitempty" jsonschema:"YYYY-MM-DD, defaults to today"`
}

type ListTasksParams struct {
	ProjectID string `json:"project_id" jsonschema:"project to list tasks for"`
}

type ListTriageParams struct {
	Since string `json:"since,omitempty" jsonschema:"RFC 3339 timestamp; only newer records are returned"`
	Limit int    `json:"limit,omitempty" jsonschema:"maximum number of records, default 50"`
}

type ParseMessageParams struct {
	Body string `json:"body" jsonschema:"message text to parse"`
}

type IngestMessageParams struct {
	From string `json:"from" jsonschema:"sender phone number"`
	Body string `json:"body" jsonschema:"message text"`
}
