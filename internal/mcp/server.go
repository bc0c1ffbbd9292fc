package mcp

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rpggio/sitecord/internal/domain/message"
	"github.com/rpggio/sitecord/internal/domain/project"
	"github.com/rpggio/sitecord/internal/domain/task"
	"github.com/rpggio/sitecord/internal/domain/trade"
	"github.com/rpggio/sitecord/internal/domain/triage"
	"github.com/rpggio/sitecord/internal/intake"
)

// ProjectService defines project operations needed by MCP.
type ProjectService interface {
	Create(ctx context.Context, req project.CreateRequest) (*project.Project, error)
	List(ctx context.Context) ([]project.Project, error)
}

// TradeService defines trade operations needed by MCP.
type TradeService interface {
	Create(ctx context.Context, req trade.CreateRequest) (*trade.Trade, error)
	List(ctx context.Context) ([]trade.Trade, error)
}

// TaskService defines task operations needed by MCP.
type TaskService interface {
	Create(ctx context.Context, req task.CreateRequest) (*task.Task, error)
	ListByProject(ctx context.Context, projectID string) ([]task.Task, error)
}

// TriageService defines triage operations needed by MCP.
type TriageService interface {
	List(ctx context.Context, opts triage.ListOptions) ([]triage.Record, error)
}

// IntakeService runs an inbound message through the pipeline.
type IntakeService interface {
	Handle(ctx context.Context, in message.Inbound) (*intake.Outcome, error)
}

// Services contains all domain services needed by MCP.
type Services struct {
	Projects ProjectService
	Trades   TradeService
	Tasks    TaskService
	Triage   TriageService
	Intake   IntakeService
}

// Config contains server configuration.
type Config struct {
	Services Services
	Version  string
	Logger   *slog.Logger
	Now      func() time.Time
}

// NewServer creates and configures an MCP server with all tools and middleware.
func NewServer(cfg Config) *sdkmcp.Server {
	version := cfg.Version
	if version == "" {
		version = "dev"
	}
	server := sdkmcp.NewServer(&sdkmcp.Implementation{
		Name:    "sitecord",
		Version: version,
	}, &sdkmcp.ServerOptions{
		Instructions: serverInstructions,
		Logger:       cfg.Logger,
	})

	registerDocResources(server)

	server.AddReceivingMiddleware(trafficLoggingMiddleware(cfg.Logger, "inbound"))
	server.AddSendingMiddleware(trafficLoggingMiddleware(cfg.Logger, "outbound"))

	now := cfg.Now
	if now == nil {
		now = time.Now
	}
	registerTools(server, cfg.Services, now)

	return server
}

// NewHTTPHandler serves the MCP server over the streamable HTTP transport.
func NewHTTPHandler(server *sdkmcp.Server) http.Handler {
	return sdkmcp.NewStreamableHTTPHandler(func(*http.Request) *sdkmcp.Server {
		return server
	}, nil)
}
