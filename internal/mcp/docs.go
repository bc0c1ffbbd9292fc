package mcp

import (
	"context"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

const serverInstructions = `sitecord turns subcontractor text messages into construction task updates.

Core concepts:
- Project: a job site, identified for messages by its street address.
- Trade: a subcontractor, identified for messages by the sender's phone number.
- Task: scheduled work on a project owned by a trade. Status is one of
  Completed, In Progress, Delayed, Not Started, Job Site Ready; progress is 0-100.
- Triage: messages that matched no project, kept for manual follow-up.

Typical workflow:
1) Set up: create_project, create_trade, then create_task for the schedule.
2) Check parsing: parse_message shows what a text would extract, without writing.
3) Replay: ingest_message runs a text through the live pipeline (same as the SMS webhook).
4) Follow up: list_triage shows messages that need a human; list_tasks shows current state.

Docs:
- sitecord://docs/message-formats
- sitecord://docs/matching
`

type docResource struct {
	URI         string
	Name        string
	Title       string
	Description string
	Content     string
}

var docResources = []docResource{
	{
		URI:         "sitecord://docs/message-formats",
		Name:        "docs_message_formats",
		Title:       "Recognised message formats",
		Description: "The sentence shapes and status words the parser understands.",
		Content: `# Message formats

Messages are whitespace-normalised and matched case-insensitively. The first
matching form wins.

1. Status first: ` + "`<status> [with] <task> at|@ <where>`" + `
   - "Finished with plumbing at 92 Turtleback Road"
2. Address first: ` + "`<number> <street...> <task> [is <pct>[%]] <status>`" + `
   - "92 turtleback plumbing is 100% done"
3. Keyword: any status word anywhere, plus the first ` + "`<n>%`" + ` if present.
   - "drywall 40% blocked by inspector"

## Status words

| Word | Status |
|---|---|
| finished, complete, completed, done | Completed |
| started, begin, began, resumed, in-progress | In Progress |
| paused, delayed, blocked | Delayed |

A reported percentage overrides the word: 100 or more is Completed, 0 or less
is Not Started, anything between is In Progress.
`,
	},
	{
		URI:         "sitecord://docs/matching",
		Name:        "docs_matching",
		Title:       "How messages find their project and task",
		Description: "Project, trade and task resolution order, and when a message is triaged.",
		Content: `# Matching

## Trade
The sender's digits are compared with every trade phone's digits; a trade
matches when the sender ends with the stored number. The longest stored
number wins.

## Project
1. The parsed location, normalised, is contained in the project address or
   the address in it.
2. Otherwise the whole message is checked for the address or enough of its
   words (recorded as ` + "`by_message_contains_address`" + `).
3. Otherwise, when the trade is known, the project of that trade's earliest
   task is used (recorded as ` + "`by_trade_tasks`" + `).
4. Otherwise the message is written to triage with reason ` + "`project_not_found`" + `.

## Task
With a known trade, the first task of that trade on the project whose name
matches the parsed task is updated. A single candidate also matches when the
message names the trade. With no match, a new task is created.
`,
	},
}

func registerDocResources(server *sdkmcp.Server) {
	for _, doc := range docResources {
		doc := doc

		server.AddResource(&sdkmcp.Resource{
			URI:         doc.URI,
			Name:        doc.Name,
			Title:       doc.Title,
			Description: doc.Description,
			MIMEType:    "text/markdown",
			Size:        int64(len(doc.Content)),
		}, func(_ context.Context, req *sdkmcp.ReadResourceRequest) (*sdkmcp.ReadResourceResult, error) {
			uri := doc.URI
			if req != nil && req.Params != nil && req.Params.URI != "" {
				uri = req.Params.URI
			}
			return &sdkmcp.ReadResourceResult{
				Contents: []*sdkmcp.ResourceContents{{
					URI:      uri,
					MIMEType: "text/markdown",
					Text:     doc.Content,
				}},
			}, nil
		})
	}
}
