// Package websocket provides the WebSocket transport for the hex
// expedition game.
//
// The websocket package implements:
//   - Session-aware WebSocket connections
//   - Player snapshot broadcasting after each action
//   - Connection lifecycle management with ping/pong keepalive
//
// Architecture:
//
// The package uses a hub-and-spoke model where a central Hub manages
// all WebSocket connections. Each client connection is handled by a
// pair of goroutines for reading and writing.
//
// Message Protocol:
//
// Outgoing messages are JSON-encoded Message values carrying the
// session ID, an event name, and the full player snapshot after each
// state change. Incoming messages are ignored; clients act through
// the REST API and watch over the socket.
//
// Session Integration:
//
// Clients specify their session ID via query parameter (?session=ab12)
// when establishing the connection. Snapshots are broadcast only to
// clients connected to the same session.
//
// Usage:
//
//	hub := websocket.NewHub()
//	go hub.Run()
//
//	// After each action:
//	hub.BroadcastToSession(sessionID, snapshot)
package websocket
