// Package testserver runs the full HTTP stack against an in-memory store.
package testserver

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rpggio/sitecord/internal/domain/account"
	"github.com/rpggio/sitecord/internal/domain/project"
	"github.com/rpggio/sitecord/internal/domain/resolve"
	"github.com/rpggio/sitecord/internal/domain/task"
	"github.com/rpggio/sitecord/internal/domain/trade"
	"github.com/rpggio/sitecord/internal/domain/triage"
	"github.com/rpggio/sitecord/internal/intake"
	"github.com/rpggio/sitecord/internal/mcp"
	"github.com/rpggio/sitecord/internal/sqlite"
	"github.com/rpggio/sitecord/internal/transport"
	"github.com/stretchr/testify/require"
)

type TestServer struct {
	Server *httptest.Server
	DB     *sqlite.DB
	Token  string

	Projects *project.Service
	Trades   *trade.Service
	Tasks    *task.Service
	Triage   *triage.Service
	Accounts *account.Service
}

// New starts a server with the webhooks and, when token is non-empty, the
// MCP endpoint behind that bearer token.
func New(t *testing.T, token string) *TestServer {
	t.Helper()

	db, err := sqlite.New(":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	require.NoError(t, db.RunMigrations())

	projectRepo := sqlite.NewProjectRepository(db)
	tradeRepo := sqlite.NewTradeRepository(db)
	taskRepo := sqlite.NewTaskRepository(db)
	triageRepo := sqlite.NewTriageRepository(db)
	claimsRepo := sqlite.NewClaimsRepository(db)

	ts := &TestServer{
		DB:       db,
		Token:    token,
		Projects: project.NewService(projectRepo, nil),
		Trades:   trade.NewService(tradeRepo, nil),
		Tasks:    task.NewService(taskRepo, nil),
		Triage:   triage.NewService(triageRepo, nil),
		Accounts: account.NewService(claimsRepo, nil),
	}

	intakeSvc := intake.NewService(
		resolve.NewService(projectRepo, tradeRepo, taskRepo, nil),
		task.NewReconciler(taskRepo, tradeRepo, nil),
		ts.Triage,
		nil,
	)

	opts := transport.Options{
		Intake:         intakeSvc,
		Accounts:       ts.Accounts,
		RequestTimeout: 10 * time.Second,
	}
	if token != "" {
		opts.MCP = mcp.NewHTTPHandler(mcp.NewServer(mcp.Config{
			Services: mcp.Services{
				Projects: ts.Projects,
				Trades:   ts.Trades,
				Tasks:    ts.Tasks,
				Triage:   ts.Triage,
				Intake:   intakeSvc,
			},
			Version: "test",
		}))
		opts.MCPToken = token
	}

	ts.Server = httptest.NewServer(transport.NewServer(opts))
	t.Cleanup(func() {
		ts.Server.Close()
		db.Close()
	})
	return ts
}

// SeedProject creates a project and returns its ID.
func (ts *TestServer) SeedProject(t *testing.T, name, address string) string {
	t.Helper()
	p, err := ts.Projects.Create(context.Background(), project.CreateRequest{
		Name: name, Address: address, Client: "Test Client",
	})
	require.NoError(t, err)
	return p.ID
}

// SeedTrade creates a trade and returns its ID.
func (ts *TestServer) SeedTrade(t *testing.T, name, phone string) string {
	t.Helper()
	tr, err := ts.Trades.Create(context.Background(), trade.CreateRequest{Name: name, Phone: phone})
	require.NoError(t, err)
	return tr.ID
}

// SeedTask creates a task and returns it.
func (ts *TestServer) SeedTask(t *testing.T, projectID, tradeID, name string) *task.Task {
	t.Helper()
	tk, err := ts.Tasks.Create(context.Background(), task.CreateRequest{
		ProjectID: projectID, TradeID: tradeID, Name: name,
	})
	require.NoError(t, err)
	return tk
}

// AuthClient returns an HTTP client that sends the bearer token.
func (ts *TestServer) AuthClient() *http.Client {
	return &http.Client{Transport: &bearerTransport{token: ts.Token, base: http.DefaultTransport}}
}

type bearerTransport struct {
	token string
	base  http.RoundTripper
}

func (b *bearerTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	req = req.Clone(req.Context())
	req.Header.Set("Authorization", "Bearer "+b.token)
	return b.base.RoundTrip(req)
}
