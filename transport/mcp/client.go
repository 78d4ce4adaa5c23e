package mcp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// Client is a thin MCP client that proxies to the debug REST API
type Client struct {
	baseURL    string
	httpClient *http.Client
	mcpServer  *server.MCPServer
}

// NewClient creates a new MCP client that calls the REST API
func NewClient(baseURL string) *Client {
	c := &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}

	c.initMCPServer()
	return c
}

// initMCPServer initializes the MCP server with all tools
func (c *Client) initMCPServer() {
	c.mcpServer = server.NewMCPServer(
		"Grid Strategy Agent",
		"1.0.0",
		server.WithToolCapabilities(true),
		server.WithInstructions(`Grid Strategy Agent - MCP Interface

This is a thin client that proxies all requests to the agent's debug REST API.

The agent plays a turn-based grid strategy contest. Each turn it evaluates
focus-fire, advance/gather, stronghold-capture, and city-siege candidates and
commits to the highest-priority one.

AVAILABLE TOOLS:
- agent_status: Current round, strategy, and grid info
- current_strategy: The active decision with priority, confidence, and reasoning
- strategy_history: Recent decisions and their outcomes
- list_matches: Recorded matches
- get_match: One match's full per-turn decision trail
- list_configs: Available map configurations
- describe_map: A configuration's terrain layout

All tools are read-only: the contest server drives the agent, not you.`),
	)

	c.registerTools()
}

// registerTools registers all MCP tools
func (c *Client) registerTools() {
	c.mcpServer.AddTool(mcp.Tool{
		Name:        "agent_status",
		Description: "Get the agent's current status: round, player ID, active strategy, and grid dimensions",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, c.handleAgentStatus)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "current_strategy",
		Description: "Get the active strategy decision with its priority, confidence, and reasoning",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, c.handleCurrentStrategy)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "strategy_history",
		Description: "Get the agent's recent strategy decisions and their recorded outcomes",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"limit": map[string]interface{}{
					"type":        "integer",
					"description": "Maximum number of entries to return",
				},
			},
		},
	}, c.handleStrategyHistory)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "list_matches",
		Description: "List recorded matches, newest first",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"limit": map[string]interface{}{
					"type":        "integer",
					"description": "Maximum number of matches to return",
				},
			},
		},
	}, c.handleListMatches)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "get_match",
		Description: "Get one match's full per-turn decision trail",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"match_id": map[string]interface{}{
					"type":        "string",
					"description": "Match ID to retrieve",
				},
			},
			Required: []string{"match_id"},
		},
	}, c.handleGetMatch)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "list_configs",
		Description: "List available map configurations",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, c.handleListConfigs)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "describe_map",
		Description: "Show a configuration's terrain layout (. plain, M mount, W water, F flag, B base)",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"config_name": map[string]interface{}{
					"type":        "string",
					"description": "Name of the configuration to describe",
				},
			},
			Required: []string{"config_name"},
		},
	}, c.handleDescribeMap)
}

// GetMCPServer returns the underlying MCP server for serving
func (c *Client) GetMCPServer() *server.MCPServer {
	return c.mcpServer
}

// Helper methods for API calls

func (c *Client) apiCall(method, path string, body interface{}, result interface{}) error {
	url := c.baseURL + path

	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reqBody = bytes.NewBuffer(data)
	}

	req, err := http.NewRequest(method, url, reqBody)
	if err != nil {
		return err
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		var errResp map[string]string
		json.NewDecoder(resp.Body).Decode(&errResp)
		if msg, ok := errResp["error"]; ok {
			return fmt.Errorf("%s", msg)
		}
		return fmt.Errorf("API error: %d", resp.StatusCode)
	}

	if result != nil {
		return json.NewDecoder(resp.Body).Decode(result)
	}

	return nil
}

// Local views of the REST responses. The REST types carry an interface-typed
// details payload that cannot be decoded generically, so these keep only the
// fields the text rendering needs.

type decisionView struct {
	Kind       string   `json:"kind"`
	Priority   float64  `json:"priority"`
	Confidence int      `json:"confidence"`
	Reason     string   `json:"reason"`
	Steps      []string `json:"steps"`
}

type historyEntryView struct {
	Round      int     `json:"round"`
	Kind       string  `json:"kind"`
	Priority   float64 `json:"priority"`
	Confidence int     `json:"confidence"`
	Reason     string  `json:"reason"`
	Outcome    string  `json:"outcome"`
}

type statusView struct {
	Round      int                `json:"round"`
	MyPlayerID int                `json:"my_player_id"`
	Strategy   string             `json:"strategy"`
	Decision   *decisionView      `json:"decision"`
	History    []historyEntryView `json:"history"`
	ConfigName string             `json:"config_name"`
	GridWidth  int                `json:"grid_width"`
	GridHeight int                `json:"grid_height"`
}

type turnView struct {
	Round      int     `json:"round"`
	Strategy   string  `json:"strategy"`
	Priority   float64 `json:"priority"`
	Confidence int     `json:"confidence"`
	Reason     string  `json:"reason"`
	Outcome    string  `json:"outcome"`
	ElapsedMS  int64   `json:"elapsed_ms"`
}

type matchView struct {
	ID         string     `json:"id"`
	ConfigName string     `json:"config_name"`
	MyPlayerID int        `json:"my_player_id"`
	Result     string     `json:"result"`
	StartedAt  time.Time  `json:"started_at"`
	Turns      []turnView `json:"turns"`
}

type configInfoView struct {
	ConfigID    string `json:"config_id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	GridWidth   int    `json:"grid_width"`
	GridHeight  int    `json:"grid_height"`
}

type configView struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Layout      []string `json:"layout"`
}

// Tool handlers

func (c *Client) handleAgentStatus(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var status statusView
	if err := c.apiCall("GET", "/api/status", nil, &status); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := fmt.Sprintf("Round: %d\nPlayer: %d\nStrategy: %s\nConfig: %s\nGrid: %dx%d\n",
		status.Round, status.MyPlayerID, status.Strategy,
		status.ConfigName, status.GridWidth, status.GridHeight)
	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleCurrentStrategy(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var response struct {
		Round      int      `json:"round"`
		Strategy   string   `json:"strategy"`
		Priority   float64  `json:"priority"`
		Confidence int      `json:"confidence"`
		Reason     string   `json:"reason"`
		Steps      []string `json:"steps"`
	}
	if err := c.apiCall("GET", "/api/strategy", nil, &response); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Round %d: %s\n", response.Round, response.Strategy)
	fmt.Fprintf(&b, "Priority: %.1f | Confidence: %d\n", response.Priority, response.Confidence)
	if response.Reason != "" {
		fmt.Fprintf(&b, "Reason: %s\n", response.Reason)
	}
	if len(response.Steps) > 0 {
		b.WriteString("Plan:\n")
		for _, step := range response.Steps {
			fmt.Fprintf(&b, "- %s\n", step)
		}
	}
	return mcp.NewToolResultText(b.String()), nil
}

func (c *Client) handleStrategyHistory(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path := "/api/history"
	if args, ok := request.Params.Arguments.(map[string]interface{}); ok {
		if limit, ok := args["limit"].(float64); ok && limit > 0 {
			path = fmt.Sprintf("%s?limit=%d", path, int(limit))
		}
	}

	var response struct {
		Count   int                `json:"count"`
		History []historyEntryView `json:"history"`
	}
	if err := c.apiCall("GET", path, nil, &response); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Strategy History (%d entries):\n\n", response.Count)
	for _, entry := range response.History {
		outcome := entry.Outcome
		if outcome == "" {
			outcome = "pending"
		}
		fmt.Fprintf(&b, "Round %d: %s (priority %.1f, confidence %d) — %s\n",
			entry.Round, entry.Kind, entry.Priority, entry.Confidence, outcome)
	}
	return mcp.NewToolResultText(b.String()), nil
}

func (c *Client) handleListMatches(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path := "/api/matches"
	if args, ok := request.Params.Arguments.(map[string]interface{}); ok {
		if limit, ok := args["limit"].(float64); ok && limit > 0 {
			path = fmt.Sprintf("%s?limit=%d", path, int(limit))
		}
	}

	var response struct {
		Count   int         `json:"count"`
		Matches []matchView `json:"matches"`
	}
	if err := c.apiCall("GET", path, nil, &response); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Matches (%d):\n\n", response.Count)
	for _, m := range response.Matches {
		fmt.Fprintf(&b, "- %s: %s as player %d on %s, %d turns (started %s)\n",
			m.ID, m.Result, m.MyPlayerID, m.ConfigName, len(m.Turns),
			m.StartedAt.Format("2006-01-02 15:04:05"))
	}
	return mcp.NewToolResultText(b.String()), nil
}

func (c *Client) handleGetMatch(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, ok := request.Params.Arguments.(map[string]interface{})
	if !ok {
		return mcp.NewToolResultError("match_id is required"), nil
	}
	matchID, _ := args["match_id"].(string)
	if matchID == "" {
		return mcp.NewToolResultError("match_id is required"), nil
	}

	var m matchView
	if err := c.apiCall("GET", fmt.Sprintf("/api/matches/%s", matchID), nil, &m); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Match %s: %s as player %d on %s\n\n", m.ID, m.Result, m.MyPlayerID, m.ConfigName)
	for _, turn := range m.Turns {
		outcome := turn.Outcome
		if outcome == "" {
			outcome = "pending"
		}
		fmt.Fprintf(&b, "Round %d: %s (priority %.1f, confidence %d, %dms) — %s\n",
			turn.Round, turn.Strategy, turn.Priority, turn.Confidence, turn.ElapsedMS, outcome)
		if turn.Reason != "" {
			fmt.Fprintf(&b, "  %s\n", turn.Reason)
		}
	}
	return mcp.NewToolResultText(b.String()), nil
}

func (c *Client) handleListConfigs(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var configs []configInfoView
	if err := c.apiCall("GET", "/api/configs", nil, &configs); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var b strings.Builder
	b.WriteString("Available Configurations:\n\n")
	for _, cfg := range configs {
		fmt.Fprintf(&b, "• %s (%s)\n  %s\n  Grid: %dx%d\n\n",
			cfg.Name, cfg.ConfigID, cfg.Description, cfg.GridWidth, cfg.GridHeight)
	}
	return mcp.NewToolResultText(b.String()), nil
}

func (c *Client) handleDescribeMap(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, ok := request.Params.Arguments.(map[string]interface{})
	if !ok {
		return mcp.NewToolResultError("config_name is required"), nil
	}
	configName, _ := args["config_name"].(string)
	if configName == "" {
		return mcp.NewToolResultError("config_name is required"), nil
	}

	var cfg configView
	if err := c.apiCall("GET", fmt.Sprintf("/api/configs/%s", configName), nil, &cfg); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Map %q", cfg.Name)
	if cfg.Description != "" {
		fmt.Fprintf(&b, " — %s", cfg.Description)
	}
	b.WriteString("\n\n")
	for _, row := range cfg.Layout {
		b.WriteString(row)
		b.WriteString("\n")
	}
	b.WriteString("\nLegend: . plain | M mount | W water | F flag | B base\n")
	return mcp.NewToolResultText(b.String()), nil
}
