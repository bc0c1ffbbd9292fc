package testserver_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"testing"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rpggio/sitecord/internal/domain/message"
	"github.com/rpggio/sitecord/internal/domain/triage"
	"github.com/rpggio/sitecord/internal/testserver"
	"github.com/stretchr/testify/require"
)

func postSMS(t *testing.T, ts *testserver.TestServer, from, body string) *http.Response {
	t.Helper()
	resp, err := http.PostForm(ts.Server.URL+"/sms", url.Values{"From": {from}, "Body": {body}})
	require.NoError(t, err)
	resp.Body.Close()
	return resp
}

func TestSMSWebhookUpdatesTask(t *testing.T) {
	ts := testserver.New(t, "")
	ctx := context.Background()

	projectID := ts.SeedProject(t, "Turtleback", "92 Turtleback Road")
	tradeID := ts.SeedTrade(t, "Ace Plumbing", "(555) 123-4567")
	existing := ts.SeedTask(t, projectID, tradeID, "Plumbing")

	resp := postSMS(t, ts, "+15551234567", "92 turtleback plumbing is 100% done")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	tasks, err := ts.Tasks.ListByProject(ctx, projectID)
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	require.Equal(t, existing.ID, tasks[0].ID)
	require.Equal(t, message.StatusCompleted, tasks[0].Status)
	require.Equal(t, 100, tasks[0].Progress)
}

func TestSMSWebhookTriagesUnknownSite(t *testing.T) {
	ts := testserver.New(t, "")

	resp := postSMS(t, ts, "+15550009999", "just checking in, no update")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	records, err := ts.Triage.List(context.Background(), triage.ListOptions{})
	require.NoError(t, err)
	require.Len(t, records, 1)
	require.True(t, records[0].Parsed.Empty())
	require.Equal(t, triage.ReasonProjectNotFound, records[0].Reason)
}

func TestUserCreatedHookAssignsRole(t *testing.T) {
	ts := testserver.New(t, "")

	resp, err := http.Post(ts.Server.URL+"/hooks/user-created", "application/json", jsonBody(t, map[string]string{"uid": "u1"}))
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusNoContent, resp.StatusCode)

	claims, err := ts.Accounts.Claims(context.Background(), "u1")
	require.NoError(t, err)
	require.Equal(t, "Project Manager", claims["role"])
}

func TestMCPOverHTTP(t *testing.T) {
	ts := testserver.New(t, "secret")
	ctx := context.Background()
	ts.SeedProject(t, "Oak", "12 Oak St")

	client := sdkmcp.NewClient(&sdkmcp.Implementation{Name: "functional", Version: "0.0.1"}, nil)
	cs, err := client.Connect(ctx, &sdkmcp.StreamableClientTransport{
		Endpoint:   ts.Server.URL + "/mcp",
		HTTPClient: ts.AuthClient(),
	}, nil)
	require.NoError(t, err)
	t.Cleanup(func() { cs.Close() })

	res, err := cs.CallTool(ctx, &sdkmcp.CallToolParams{Name: "list_projects", Arguments: map[string]any{}})
	require.NoError(t, err)
	require.False(t, res.IsError)

	var out struct {
		Projects []struct {
			Address string `json:"address"`
		} `json:"projects"`
	}
	require.NoError(t, json.Unmarshal([]byte(res.Content[0].(*sdkmcp.TextContent).Text), &out))
	require.Len(t, out.Projects, 1)
	require.Equal(t, "12 Oak St", out.Projects[0].Address)
}

func TestMCPRequiresToken(t *testing.T) {
	ts := testserver.New(t, "secret")

	resp, err := http.Post(ts.Server.URL+"/mcp", "application/json", jsonBody(t, map[string]any{"jsonrpc": "2.0", "method": "ping", "id": 1}))
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func jsonBody(t *testing.T, v any) *bytes.Reader {
	t.Helper()
	data, err := json.Marshal(v)
	require.NoError(t, err)
	return bytes.NewReader(data)
}
