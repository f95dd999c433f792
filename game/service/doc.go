// Package service provides the business logic layer for the hex
// expedition game.
//
// The service package implements:
//   - Multi-session game management
//   - Map loading and listing
//   - Action execution and outcome assembly
//   - Session lifecycle management
//   - Action history tracking
//
// Core Interfaces:
//
// GameService is the main service interface providing high-level game
// operations. SessionManager handles session creation, retrieval, and
// lifecycle. MapManager manages authored map loading and validation.
//
// Architecture:
//
// The service layer sits between the transport layer (HTTP/WebSocket/
// MCP/TUI) and the game engine, providing session isolation and
// orchestration. Each session maintains its own game engine instance
// with independent state.
//
// Usage:
//
//	sessionMgr := session.NewManager()
//	mapMgr := config.NewManager("maps")
//	gameService := service.NewGameService(sessionMgr, mapMgr)
//
//	// Create a new session
//	sessionInfo, err := gameService.CreateSession(ctx, "verdant_reach")
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	// Execute actions
//	outcome, err := gameService.Move(ctx, sessionInfo.ID, "n")
//
// Session Management:
//
// Sessions are identified by unique 4-character IDs and maintain
// independent player state. Multiple sessions can run concurrently on
// different maps. Sessions track creation time, last access time, and
// action history.
package service
