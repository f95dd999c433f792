// Package mcp provides the Model Context Protocol interface for the hex
// expedition game.
//
// The package is a thin client: every tool call is proxied to the REST
// API server, so the MCP process carries no game state of its own and
// any number of MCP clients can share one server.
//
// MCP Tools:
//
// The package exposes the following tools for AI agents:
//   - game_state: Get the current player state
//   - move: Step one tile in a hex direction (with an intent note)
//   - gather: Harvest the current tile's resources
//   - home_action: Work at the home camp
//   - restore_ap: Reset action points to the maximum
//   - reset_game: Reset the expedition to its start
//   - action_history: Retrieve action history with pagination
//   - create_session: Create a new game session with map selection
//   - get_session: Get specific session details
//   - list_sessions: List all active sessions
//   - list_maps: List available expedition maps
//   - game_instructions: Full rules, directions, and failure reasons
//   - describe_tile: Inspect a tile by its axial (q,r) coordinates
//
// Usage:
//
//	client := mcp.NewClient("http://localhost:8080")
//	server.ServeStdio(client.GetMCPServer())
//
// AI Integration:
//
// The MCP interface enables AI agents to plan expeditions, budget
// action points, and manage multiple concurrent sessions. The move
// tool's intent parameter asks the agent to state its reasoning before
// each step.
package mcp
