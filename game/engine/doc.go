// Package engine provides the core game logic for the hex expedition
// game.
//
// The engine package implements the game mechanics including:
//   - Movement across the fixed hexagonal map
//   - The action-point economy (move, gather, home action, restore)
//   - The persistent session inventory
//   - Player state management and action history
//   - Map configuration loading and validation
//
// Core Types:
//
// The Engine interface defines the main contract for game operations,
// implemented by GameEngine. PlayerState represents the current player
// state, while MapConfig defines the authored map loaded from JSON or
// YAML files.
//
// Usage:
//
//	config := engine.DefaultMapConfig()
//
//	gameEngine, err := engine.NewEngine(config)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	// Move the player
//	result := gameEngine.Move(hexmap.North)
//	state := gameEngine.GetState()
//
// Game Rules:
//
// The player occupies one tile of a bounded hexagonal map and spends a
// per-session action-point budget to move between adjacent tiles or to
// harvest tile-specific resources into a persistent inventory. Moving
// costs 1 AP, gathering and the home-only action cost 2 AP each, and
// RestoreAP resets the budget to its maximum. Every action either
// applies completely or is rejected with a reason; failed actions never
// mutate player state.
package engine
