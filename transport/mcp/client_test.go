package mcp

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/chenchaotao666/xian-game-2025-sub000/api"
	"github.com/chenchaotao666/xian-game-2025-sub000/game/blackboard"
	"github.com/chenchaotao666/xian-game-2025-sub000/game/config"
	"github.com/chenchaotao666/xian-game-2025-sub000/game/service"
	"github.com/chenchaotao666/xian-game-2025-sub000/game/session"
	"github.com/chenchaotao666/xian-game-2025-sub000/game/state"
)

func TestNewClient(t *testing.T) {
	baseURL := "http://localhost:8080"
	client := NewClient(baseURL)

	if client == nil {
		t.Fatal("Expected client to be created")
	}
	if client.baseURL != baseURL {
		t.Errorf("Expected baseURL %s, got %s", baseURL, client.baseURL)
	}
	if client.httpClient == nil {
		t.Error("Expected HTTP client to be initialized")
	}
	if client.mcpServer == nil {
		t.Error("Expected MCP server to be initialized")
	}
}

// createBackedClient spins up the real REST API over a live agent and points
// an MCP client at it
func createBackedClient(t *testing.T) (*Client, *session.Manager, *config.Manager) {
	t.Helper()

	cfg := config.DefaultConfig()
	row := strings.Repeat(".", 12)
	layout := make([]string, 12)
	for i := range layout {
		layout[i] = row
	}
	cfg.Layout = layout

	agent, err := service.NewAgent(cfg, 1)
	if err != nil {
		t.Fatalf("NewAgent failed: %v", err)
	}

	snapshot := &state.Snapshot{
		Round: 4,
		Players: []state.Player{
			{ID: 1, Supplies: 200, Heroes: []state.Hero{{
				ID: 101, Position: &state.Position{X: 2, Y: 2},
				Life: 1000, MaxLife: 1000, Attack: 300, Alive: true, Owner: 1,
			}}},
			{ID: 2, Supplies: 200, Heroes: []state.Hero{{
				ID: 201, Position: &state.Position{X: 4, Y: 2},
				Life: 250, MaxLife: 1000, Attack: 100, Alive: true, Owner: 2,
			}}},
		},
	}
	if _, err := agent.ProcessTurn(snapshot); err != nil {
		t.Fatalf("ProcessTurn failed: %v", err)
	}

	configs, err := config.NewManager(t.TempDir())
	if err != nil {
		t.Fatalf("NewManager failed: %v", err)
	}

	matches := session.NewManager()
	restServer := httptest.NewServer(api.NewServer(agent, matches, configs))
	t.Cleanup(restServer.Close)

	return NewClient(restServer.URL), matches, configs
}

func callTool(t *testing.T, handler func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error), args map[string]interface{}) string {
	t.Helper()
	request := mcp.CallToolRequest{
		Params: mcp.CallToolParams{
			Arguments: args,
		},
	}

	result, err := handler(context.Background(), request)
	if err != nil {
		t.Fatalf("tool handler failed: %v", err)
	}
	if result == nil || len(result.Content) == 0 {
		t.Fatal("expected content in result")
	}
	text, ok := result.Content[0].(mcp.TextContent)
	if !ok {
		t.Fatal("expected text content in result")
	}
	if result.IsError {
		t.Fatalf("tool returned error: %s", text.Text)
	}
	return text.Text
}

func TestHandleAgentStatus(t *testing.T) {
	client, _, _ := createBackedClient(t)

	text := callTool(t, client.handleAgentStatus, map[string]interface{}{})
	for _, want := range []string{"Round: 4", "Player: 1", "Grid: 12x12"} {
		if !strings.Contains(text, want) {
			t.Errorf("expected %q in output, got: %s", want, text)
		}
	}
}

func TestHandleCurrentStrategy(t *testing.T) {
	client, _, _ := createBackedClient(t)

	text := callTool(t, client.handleCurrentStrategy, map[string]interface{}{})
	if !strings.Contains(text, string(blackboard.FocusFire)) {
		t.Errorf("expected focus_fire in output, got: %s", text)
	}
	if !strings.Contains(text, "Priority:") {
		t.Errorf("expected priority line, got: %s", text)
	}
}

func TestHandleStrategyHistory(t *testing.T) {
	client, _, _ := createBackedClient(t)

	text := callTool(t, client.handleStrategyHistory, map[string]interface{}{"limit": float64(5)})
	if !strings.Contains(text, "Round 4") {
		t.Errorf("expected round 4 entry, got: %s", text)
	}
	if !strings.Contains(text, "pending") {
		t.Errorf("expected pending outcome, got: %s", text)
	}
}

func TestHandleMatches(t *testing.T) {
	client, matches, _ := createBackedClient(t)
	if _, err := matches.Begin("m1", "contest", 1); err != nil {
		t.Fatalf("Begin failed: %v", err)
	}

	text := callTool(t, client.handleListMatches, map[string]interface{}{})
	if !strings.Contains(text, "m1") {
		t.Errorf("expected match m1 listed, got: %s", text)
	}

	text = callTool(t, client.handleGetMatch, map[string]interface{}{"match_id": "m1"})
	if !strings.Contains(text, "Match m1") {
		t.Errorf("expected match header, got: %s", text)
	}
}

func TestHandleGetMatch_MissingID(t *testing.T) {
	client, _, _ := createBackedClient(t)

	request := mcp.CallToolRequest{
		Params: mcp.CallToolParams{Arguments: map[string]interface{}{}},
	}
	result, err := client.handleGetMatch(context.Background(), request)
	if err != nil {
		t.Fatalf("handler failed: %v", err)
	}
	if !result.IsError {
		t.Error("expected error result for missing match_id")
	}
}

func TestHandleDescribeMap(t *testing.T) {
	client, _, configs := createBackedClient(t)

	cfg := config.DefaultConfig()
	cfg.Name = "river"
	if err := configs.SaveConfig("river", cfg); err != nil {
		t.Fatalf("SaveConfig failed: %v", err)
	}

	text := callTool(t, client.handleDescribeMap, map[string]interface{}{"config_name": "river"})
	if !strings.Contains(text, "river") {
		t.Errorf("expected map name in output, got: %s", text)
	}
	if !strings.Contains(text, "Legend:") {
		t.Errorf("expected legend in output, got: %s", text)
	}
}

func TestAPICall_ErrorResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"error":"no such thing"}`))
	}))
	defer server.Close()

	client := NewClient(server.URL)
	err := client.apiCall("GET", "/api/status", nil, nil)
	if err == nil || !strings.Contains(err.Error(), "no such thing") {
		t.Errorf("expected wrapped API error, got %v", err)
	}
}
