// Package api provides the REST API server for the hex expedition game.
//
// The api package implements:
//   - Session lifecycle endpoints (create, get, list, delete)
//   - Game action endpoints (move, gather, home-action, restore-ap, reset)
//   - Action history with pagination
//   - Map listing, retrieval, and upload
//   - A multi-session overview endpoint
//   - WebSocket upgrade with session validation
//
// API Endpoints:
//
//	POST   /api/sessions                    - Create a new session
//	GET    /api/sessions                    - List sessions (sort, order, limit)
//	GET    /api/sessions/overview           - Compact multi-session view
//	GET    /api/sessions/{id}               - Get session details
//	DELETE /api/sessions/{id}               - Delete a session
//	GET    /api/sessions/{id}/state         - Get the player state
//	POST   /api/sessions/{id}/move          - Move (body: {"direction": "n"})
//	POST   /api/sessions/{id}/gather        - Gather the current tile
//	POST   /api/sessions/{id}/home-action   - Work at the home camp
//	POST   /api/sessions/{id}/restore-ap    - Restore action points
//	POST   /api/sessions/{id}/reset         - Reset the expedition
//	GET    /api/sessions/{id}/history       - Action history (page, limit, order)
//	GET    /api/maps                        - List available maps
//	POST   /api/maps                        - Save a new map
//	GET    /api/maps/{name}                 - Get a map configuration
//	GET    /api/health                      - Health check
//	GET    /ws?session={id}                 - WebSocket upgrade
//
// Error Handling:
//
// Domain failures (insufficient AP, off-map moves, gathering an empty
// tile) are HTTP 200 responses carrying a failed ActionOutcome; HTTP
// error codes are reserved for infrastructure problems: 400 for
// malformed input, 404 for unknown sessions or maps, 500 otherwise.
//
// After every successful action dispatch the server broadcasts the new
// player state to the session's WebSocket clients and writes one
// compact log line.
package api
