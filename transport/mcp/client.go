package mcp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/hexfield/expedition/game/engine"
	"github.com/hexfield/expedition/game/service"
)

// Client is a thin MCP client that proxies to the REST API
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
		"Hex Expedition Game",
		"1.0.0",
		server.WithToolCapabilities(true),
		server.WithInstructions(`Hex Expedition Game - MCP Interface

This is a thin client that proxies all requests to the REST API server.

GAME OBJECTIVE:
Explore a hexagonal wilderness from your home camp, gather resources
into your pack, and manage your action points (AP).

AVAILABLE TOOLS:
- game_state: Get the current player state
- move: Step one tile (n/ne/se/s/sw/nw) - requires intent explanation
- gather: Harvest the current tile's resources
- home_action: Work at the home camp (home tile only)
- restore_ap: Reset action points to maximum
- reset_game: Reset the expedition to its start
- action_history: View past actions
- create_session: Create a new game session
- get_session: Get session details
- list_sessions: List all active sessions
- list_maps: List available maps
- game_instructions: Get comprehensive game instructions and rules
- describe_tile: Get detailed info about a specific map tile

NOTE: The 'intent' parameter on the move tool serves as rubber duck debugging - explain your reasoning!`),
	)

	c.registerTools()
}

// registerTools registers all MCP tools
func (c *Client) registerTools() {
	// Session management
	c.mcpServer.AddTool(mcp.Tool{
		Name:        "create_session",
		Description: "Create a new game session with optional map selection",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"map_id": map[string]interface{}{
					"type":        "string",
					"description": "ID of the map to play (optional, defaults to the reference map)",
				},
			},
		},
	}, c.handleCreateSession)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "list_sessions",
		Description: "List all active game sessions",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, c.handleListSessions)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "get_session",
		Description: "Get details of a specific session",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": map[string]interface{}{
					"type":        "string",
					"description": "Session ID to retrieve",
				},
			},
			Required: []string{"session_id"},
		},
	}, c.handleGetSession)

	// Game operations
	c.mcpServer.AddTool(mcp.Tool{
		Name:        "game_state",
		Description: "Get the current player state",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": map[string]interface{}{
					"type":        "string",
					"description": "Session ID",
				},
			},
			Required: []string{"session_id"},
		},
	}, c.handleGameState)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "move",
		Description: "Move the player one tile in a hex direction (costs 1 AP)",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": map[string]interface{}{
					"type":        "string",
					"description": "Session ID",
				},
				"direction": map[string]interface{}{
					"type":        "string",
					"enum":        []string{"n", "ne", "se", "s", "sw", "nw"},
					"description": "Hex direction to move",
				},
				"intent": map[string]interface{}{
					"type":        "string",
					"description": "Brief explanation of the intent behind this move (serves as a rubber duck to help explain your reasoning)",
				},
			},
			Required: []string{"session_id", "direction"},
		},
	}, c.handleMove)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "gather",
		Description: "Gather the current tile's resources into the pack (costs 2 AP; not at home)",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": map[string]interface{}{
					"type":        "string",
					"description": "Session ID",
				},
			},
			Required: []string{"session_id"},
		},
	}, c.handleGather)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "home_action",
		Description: "Work at the home camp (costs 2 AP; home tile only)",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": map[string]interface{}{
					"type":        "string",
					"description": "Session ID",
				},
			},
			Required: []string{"session_id"},
		},
	}, c.handleHomeAction)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "restore_ap",
		Description: "Restore action points to the maximum (always succeeds)",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": map[string]interface{}{
					"type":        "string",
					"description": "Session ID",
				},
			},
			Required: []string{"session_id"},
		},
	}, c.handleRestoreAP)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "reset_game",
		Description: "Reset the expedition to its starting state",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": map[string]interface{}{
					"type":        "string",
					"description": "Session ID",
				},
			},
			Required: []string{"session_id"},
		},
	}, c.handleReset)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "action_history",
		Description: "Get action history for a session",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": map[string]interface{}{
					"type":        "string",
					"description": "Session ID",
				},
				"page": map[string]interface{}{
					"type":        "integer",
					"description": "Page number",
				},
				"limit": map[string]interface{}{
					"type":        "integer",
					"description": "Items per page",
				},
			},
			Required: []string{"session_id"},
		},
	}, c.handleActionHistory)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "list_maps",
		Description: "List available expedition maps",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, c.handleListMaps)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "game_instructions",
		Description: "Get comprehensive game instructions and rules",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, c.handleGameInstructions)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "describe_tile",
		Description: "Get detailed information about a specific map tile by its axial coordinates, including terrain and gatherable resources.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": map[string]interface{}{
					"type":        "string",
					"description": "Session ID",
				},
				"q": map[string]interface{}{
					"type":        "integer",
					"description": "Axial q coordinate of the tile",
				},
				"r": map[string]interface{}{
					"type":        "integer",
					"description": "Axial r coordinate of the tile",
				},
			},
			Required: []string{"session_id", "q", "r"},
		},
	}, c.handleDescribeTile)
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

// Tool handlers

func (c *Client) handleCreateSession(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	mapID, _ := args["map_id"].(string)

	body := map[string]string{}
	if mapID != "" {
		body["map_id"] = mapID
	}

	var session service.SessionInfo
	err := c.apiCall("POST", "/api/sessions", body, &session)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := fmt.Sprintf("Created session: %s\nMap: %s\n", session.ID, session.MapName)
	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleListSessions(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var response struct {
		Count    int                   `json:"count"`
		Sessions []service.SessionInfo `json:"sessions"`
	}

	err := c.apiCall("GET", "/api/sessions", nil, &response)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := fmt.Sprintf("Active Sessions (%d):\n\n", response.Count)
	for _, s := range response.Sessions {
		result += fmt.Sprintf("- %s (Map: %s, Created: %s)\n",
			s.ID, s.MapName, s.CreatedAt.Format("15:04:05"))
	}

	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleGetSession(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	sessionID, _ := args["session_id"].(string)

	var session service.SessionInfo
	err := c.apiCall("GET", fmt.Sprintf("/api/sessions/%s", sessionID), nil, &session)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := formatSessionInfo(&session)
	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleGameState(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	sessionID, _ := args["session_id"].(string)

	var state engine.PlayerState
	err := c.apiCall("GET", fmt.Sprintf("/api/sessions/%s/state", sessionID), nil, &state)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := formatPlayerState(&state)
	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleMove(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	sessionID, _ := args["session_id"].(string)
	direction, _ := args["direction"].(string)
	intent, _ := args["intent"].(string)

	// Intent parameter serves as rubber duck debugging - we don't need to process it further
	_ = intent

	body := map[string]interface{}{
		"direction": direction,
	}

	var outcome service.ActionOutcome
	err := c.apiCall("POST", fmt.Sprintf("/api/sessions/%s/move", sessionID), body, &outcome)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatOutcome(&outcome)), nil
}

func (c *Client) handleGather(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return c.simpleAction(request, "gather")
}

func (c *Client) handleHomeAction(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return c.simpleAction(request, "home-action")
}

func (c *Client) handleRestoreAP(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return c.simpleAction(request, "restore-ap")
}

// simpleAction proxies the bodyless action endpoints
func (c *Client) simpleAction(request mcp.CallToolRequest, endpoint string) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	sessionID, _ := args["session_id"].(string)

	var outcome service.ActionOutcome
	err := c.apiCall("POST", fmt.Sprintf("/api/sessions/%s/%s", sessionID, endpoint), map[string]string{}, &outcome)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatOutcome(&outcome)), nil
}

func (c *Client) handleReset(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	sessionID, _ := args["session_id"].(string)

	var response struct {
		Message string              `json:"message"`
		State   *engine.PlayerState `json:"state"`
	}

	err := c.apiCall("POST", fmt.Sprintf("/api/sessions/%s/reset", sessionID), nil, &response)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := fmt.Sprintf("%s\n\n%s", response.Message, formatPlayerState(response.State))
	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleActionHistory(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	sessionID, _ := args["session_id"].(string)

	params := "?"
	if page, ok := args["page"].(float64); ok {
		params += fmt.Sprintf("page=%d&", int(page))
	}
	if limit, ok := args["limit"].(float64); ok {
		params += fmt.Sprintf("limit=%d&", int(limit))
	}

	var history service.HistoryResponse
	err := c.apiCall("GET", fmt.Sprintf("/api/sessions/%s/history%s", sessionID, params), nil, &history)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatHistory(&history)), nil
}

func (c *Client) handleListMaps(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var maps []service.MapInfo
	err := c.apiCall("GET", "/api/maps", nil, &maps)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := "Available Maps:\n\n"
	for _, m := range maps {
		result += fmt.Sprintf("• %s (%s)\n  %s\n  Tiles: %d, Max AP: %d\n\n",
			m.Name, m.MapID, m.Description, m.TileCount, m.MaxAP)
	}

	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleGameInstructions(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	instructions := `Hex Expedition Game - Complete Instructions

GAME OBJECTIVE:
Explore a bounded hexagonal wilderness from your home camp, gather
resources into a persistent pack, and manage your per-session action
point (AP) budget.

GAME MECHANICS:
• Movement: each step to an adjacent hex tile costs 1 AP
• Gathering: harvesting the current tile costs 2 AP and adds the
  tile's full yield to your pack; tiles never deplete
• Home action: working at the home camp costs 2 AP (home tile only)
• Restore: restore_ap resets your AP to the maximum (8); it is a hard
  reset, never additive, and always succeeds

COORDINATES AND DIRECTIONS:
Tiles use axial hex coordinates (q, r). The six directions and their
offsets are:
  n  = (0,-1)   ne = (+1,-1)   se = (+1,0)
  s  = (0,+1)   sw = (-1,+1)   nw = (-1,0)
Home camp is at (0,0).

ACTION FAILURES:
Failed actions never change your state and never end the game. The
reason codes are:
• insufficient_ap - the action costs more AP than you have
• invalid_destination - the target tile is off the map
• invalid_location - gather at home, or home_action away from home
• nothing_to_gather - the current tile has an empty yield

TERRAIN:
• home - your camp; the only tile for home_action, never gatherable
• plain, forest, mountain, water, far_plain - wilderness tiles whose
  yields depend on the map (wood, herbs, stone, iron, fish, water,
  wheat)
Some tiles yield nothing; gathering there fails with
nothing_to_gather. Use describe_tile before spending AP.

STRATEGY NOTES:
• Plan round trips: moving out costs the same AP as moving back
• A gather costs 2 AP; budget for it before leaving home
• Yields are deterministic: the same tile gives the same resources
  every time
• restore_ap discards any remaining AP, so spend down first
• There is no game over: you can always restore_ap and keep exploring

SESSION MANAGEMENT:
- Multiple game sessions can run simultaneously
- Each session has a unique 4-character ID
- Sessions maintain independent state and map
- Use session-specific tools for multi-game management`

	return mcp.NewToolResultText(instructions), nil
}

func (c *Client) handleDescribeTile(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	sessionID, _ := args["session_id"].(string)
	qf, qok := args["q"].(float64)
	rf, rok := args["r"].(float64)
	if !qok || !rok {
		return mcp.NewToolResultError("q and r must be integers"), nil
	}
	q, r := int(qf), int(rf)

	// The session payload carries the full map config.
	var session service.SessionInfo
	err := c.apiCall("GET", fmt.Sprintf("/api/sessions/%s", sessionID), nil, &session)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if session.MapConfig == nil {
		return mcp.NewToolResultError("session has no map data"), nil
	}

	var tile *engine.TileConfig
	for i := range session.MapConfig.Tiles {
		tc := &session.MapConfig.Tiles[i]
		if tc.Q == q && tc.R == r {
			tile = tc
			break
		}
	}

	if tile == nil {
		return mcp.NewToolResultText(fmt.Sprintf(
			"Tile (%d,%d): off the map. Moving there fails with invalid_destination.", q, r)), nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Tile at (%d,%d):\n", q, r)
	fmt.Fprintf(&b, "Terrain: %s\n", tile.Terrain)
	if q == session.PlayerState.Position.Q && r == session.PlayerState.Position.R {
		b.WriteString("This is your current position.\n")
	}
	if tile.Terrain == "home" {
		b.WriteString("Home camp: home_action works here; gathering does not.\n")
	} else if len(tile.Yield) > 0 {
		b.WriteString("Gather yield (per gather, 2 AP):\n")
		for _, res := range sortedYieldKeys(tile.Yield) {
			fmt.Fprintf(&b, "  %s x%d\n", res, tile.Yield[res])
		}
	} else {
		b.WriteString("Nothing to gather here (empty yield).\n")
	}

	return mcp.NewToolResultText(b.String()), nil
}

// Formatting helpers

func formatSessionInfo(session *service.SessionInfo) string {
	return fmt.Sprintf("Session: %s\nMap: %s\nCreated: %s\n\n%s",
		session.ID, session.MapName,
		session.CreatedAt.Format("2006-01-02 15:04:05"),
		formatPlayerState(&session.PlayerState))
}

func formatPlayerState(state *engine.PlayerState) string {
	if state == nil {
		return "No player state available"
	}

	var result strings.Builder

	fmt.Fprintf(&result, "Position: (%d,%d) | AP: %d/%d | Actions: %d\n",
		state.Position.Q, state.Position.R,
		state.ActionPoints, state.MaxAP, state.TotalActions)

	if len(state.Inventory) > 0 {
		result.WriteString("Pack:\n")
		for _, res := range sortedInventoryKeys(state.Inventory) {
			fmt.Fprintf(&result, "  %s x%d\n", res, state.Inventory[res])
		}
	} else {
		result.WriteString("Pack: empty\n")
	}

	if state.Message != "" {
		fmt.Fprintf(&result, "Message: %s", state.Message)
	}

	return result.String()
}

func formatOutcome(outcome *service.ActionOutcome) string {
	var b strings.Builder

	res := outcome.Result
	if res.Success {
		fmt.Fprintf(&b, "OK %s\n", res.Action)
	} else {
		fmt.Fprintf(&b, "FAILED %s (%s)\n", res.Action, res.Reason)
	}
	fmt.Fprintf(&b, "%s\n", res.Message)

	if len(res.Gathered) > 0 {
		b.WriteString("Gathered:\n")
		for _, r := range sortedInventoryKeys(res.Gathered) {
			fmt.Fprintf(&b, "  %s x%d\n", r, res.Gathered[r])
		}
	}

	if len(outcome.PossibleMoves) > 0 {
		fmt.Fprintf(&b, "Possible moves: %s\n", strings.Join(outcome.PossibleMoves, ","))
	}
	if outcome.CanGather {
		b.WriteString("Gather available here (2 AP)\n")
	}
	if outcome.CanHomeAction {
		b.WriteString("Home action available (2 AP)\n")
	}

	if len(outcome.Neighbors) > 0 {
		b.WriteString("Neighbors:\n")
		for _, n := range outcome.Neighbors {
			if n.Exists {
				fmt.Fprintf(&b, "  %s -> (%d,%d) %s\n", n.Direction, n.Coord.Q, n.Coord.R, n.Terrain)
			} else {
				fmt.Fprintf(&b, "  %s -> off the map\n", n.Direction)
			}
		}
	}

	if outcome.ReturnRisk != "" {
		fmt.Fprintf(&b, "Return risk: %s\n", outcome.ReturnRisk)
	}

	b.WriteString("\n")
	b.WriteString(formatPlayerState(&outcome.PlayerState))
	return b.String()
}

func formatHistory(history *service.HistoryResponse) string {
	result := fmt.Sprintf("Action History (Page %d/%d) — Total: %d\n\n",
		history.Page, history.TotalPages, history.TotalActions)

	for _, action := range history.Actions {
		status := "OK"
		if !action.Success {
			status = "FAIL"
		}
		line := fmt.Sprintf("%d. %s", action.ActionNumber, action.Action)
		if action.Direction != "" {
			line += fmt.Sprintf(" %s", action.Direction)
		}
		line += fmt.Sprintf(" (%d,%d)->(%d,%d) [AP: %d] %s\n",
			action.FromPosition.Q, action.FromPosition.R,
			action.ToPosition.Q, action.ToPosition.R,
			action.ActionPoints, status)
		result += line
	}

	return result
}

func sortedYieldKeys(yield map[string]int) []string {
	keys := make([]string, 0, len(yield))
	for k := range yield {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func sortedInventoryKeys[K ~string](m map[K]int) []K {
	keys := make([]K, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}
