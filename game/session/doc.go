// Package session provides in-memory session management for the hex
// expedition game.
//
// The session package implements:
//   - Thread-safe session storage and retrieval
//   - Unique session ID generation
//   - Session lifecycle management
//   - Session cleanup and expiration
//
// Core Types:
//
// Manager is the main session manager that handles all session
// operations. Sessions live in memory only and expire after a period
// of inactivity; there is no on-disk persistence.
//
// Session Identifiers:
//
// Sessions use 4-character hex IDs for easy reference, generated with
// cryptographic randomness. Lookup is case-insensitive.
//
// Concurrency:
//
// The session manager is thread-safe. Multiple goroutines can safely
// create, retrieve, and modify different sessions simultaneously.
//
// Usage:
//
//	manager := session.NewManager()
//
//	// Create a new session
//	sess, err := manager.Create("", mapConfig)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	// Retrieve existing session
//	sess, err = manager.Get(sessionID)
package session
