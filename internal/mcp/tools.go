package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rpggio/sitecord/internal/domain/message"
	"github.com/rpggio/sitecord/internal/domain/project"
	"github.com/rpggio/sitecord/internal/domain/task"
	"github.com/rpggio/sitecord/internal/domain/trade"
	"github.com/rpggio/sitecord/internal/domain/triage"
)

// registerTools adds the operator tool catalog to the server.
func registerTools(server *sdkmcp.Server, svc Services, now func() time.Time) {
	// Projects
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "create_project",
		Description: "Create a job site project. Inbound messages are matched to projects by address.",
	}, func(ctx context.Context, _ *sdkmcp.CallToolRequest, in CreateProjectParams) (*sdkmcp.CallToolResult, any, error) {
		p, err := svc.Projects.Create(ctx, project.CreateRequest{
			ID:      in.ID,
			Name:    in.Name,
			Address: in.Address,
			Client:  in.Client,
		})
		if err != nil {
			return errorResult(err)
		}
		return jsonResult(p)
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "list_projects",
		Description: "List all projects in creation order",
	}, func(ctx context.Context, _ *sdkmcp.CallToolRequest, _ ListProjectsParams) (*sdkmcp.CallToolResult, any, error) {
		list, err := svc.Projects.List(ctx)
		if err != nil {
			return errorResult(err)
		}
		return jsonResult(map[string]any{"projects": orEmpty(list)})
	})

	// Trades
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "create_trade",
		Description: "Register a trade (subcontractor). Senders are matched to trades by phone number.",
	}, func(ctx context.Context, _ *sdkmcp.CallToolRequest, in CreateTradeParams) (*sdkmcp.CallToolResult, any, error) {
		tr, err := svc.Trades.Create(ctx, trade.CreateRequest{
			ID:      in.ID,
			Name:    in.Name,
			Phone:   in.Phone,
			Contact: in.Contact,
		})
		if err != nil {
			return errorResult(err)
		}
		return jsonResult(tr)
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "list_trades",
		Description: "List all registered trades",
	}, func(ctx context.Context, _ *sdkmcp.CallToolRequest, _ ListTradesParams) (*sdkmcp.CallToolResult, any, error) {
		list, err := svc.Trades.List(ctx)
		if err != nil {
			return errorResult(err)
		}
		return jsonResult(map[string]any{"trades": orEmpty(list)})
	})

	// Tasks
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "create_task",
		Description: "Add a scheduled task to a project",
	}, func(ctx context.Context, _ *sdkmcp.CallToolRequest, in CreateTaskParams) (*sdkmcp.CallToolResult, any, error) {
		t, err := svc.Tasks.Create(ctx, task.CreateRequest{
			ProjectID:  in.ProjectID,
			TradeID:    in.TradeID,
			Name:       in.Name,
			Status:     message.Status(in.Status),
			Dependency: in.Dependency,
			StartDate:  in.StartDate,
			EndDate:    in.EndDate,
		})
		if err != nil {
			return errorResult(err)
		}
		return jsonResult(t)
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "list_tasks",
		Description: "List tasks for a project, including updates applied from text messages",
	}, func(ctx context.Context, _ *sdkmcp.CallToolRequest, in ListTasksParams) (*sdkmcp.CallToolResult, any, error) {
		list, err := svc.Tasks.ListByProject(ctx, in.ProjectID)
		if err != nil {
			return errorResult(err)
		}
		return jsonResult(map[string]any{"tasks": orEmpty(list)})
	})

	// Triage
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "list_triage",
		Description: "List messages that could not be matched to a project, newest first",
	}, func(ctx context.Context, _ *sdkmcp.CallToolRequest, in ListTriageParams) (*sdkmcp.CallToolResult, any, error) {
		opts := triage.ListOptions{Limit: in.Limit}
		if in.Since != "" {
			since, err := time.Parse(time.RFC3339, in.Since)
			if err != nil {
				return errorResult(&APIError{Code: "INVALID_INPUT", Message: fmt.Sprintf("since: %v", err)})
			}
			opts.Since = &since
		}
		list, err := svc.Triage.List(ctx, opts)
		if err != nil {
			return errorResult(err)
		}
		return jsonResult(map[string]any{"records": orEmpty(list)})
	})

	// Messages
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "parse_message",
		Description: "Show what the message parser extracts from a text without storing anything",
	}, func(_ context.Context, _ *sdkmcp.CallToolRequest, in ParseMessageParams) (*sdkmcp.CallToolResult, any, error) {
		parsed := message.Parse(in.Body)
		status, progress := task.EffectiveStatus(parsed)
		return jsonResult(map[string]any{
			"parsed":           parsed,
			"effective_status": status,
			"progress":         progress,
		})
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "ingest_message",
		Description: "Run a message through the same pipeline as the SMS webhook and report the outcome",
	}, func(ctx context.Context, _ *sdkmcp.CallToolRequest, in IngestMessageParams) (*sdkmcp.CallToolResult, any, error) {
		out, err := svc.Intake.Handle(ctx, message.Inbound{
			From:       in.From,
			Body:       in.Body,
			ReceivedAt: now().UTC(),
		})
		if err != nil {
			return errorResult(err)
		}
		return jsonResult(out)
	})
}

func jsonResult(v any) (*sdkmcp.CallToolResult, any, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, nil, fmt.Errorf("encode result: %w", err)
	}
	return &sdkmcp.CallToolResult{
		Content: []sdkmcp.Content{&sdkmcp.TextContent{Text: string(data)}},
	}, nil, nil
}

func errorResult(err error) (*sdkmcp.CallToolResult, any, error) {
	apiErr, ok := err.(*APIError)
	if !ok {
		apiErr = MapError(err)
	}
	if apiErr == nil {
		apiErr = &APIError{Code: "INTERNAL", Message: err.Error()}
	}
	data, _ := json.Marshal(apiErr)
	return &sdkmcp.CallToolResult{
		IsError: true,
		Content: []sdkmcp.Content{&sdkmcp.TextContent{Text: string(data)}},
	}, nil, nil
}

func orEmpty[T any](list []T) []T {
	if list == nil {
		return []T{}
	}
	return list
}
