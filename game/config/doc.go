// Package config provides map configuration management for the hex
// expedition game.
//
// The config package handles:
//   - Loading authored maps from JSON and YAML files
//   - Map validation and verification
//   - Default map management
//   - Map discovery and listing
//
// Map Format:
//
// Maps are stored as JSON or YAML files in the maps directory. Each
// map defines:
//   - The tile set as a list of {q, r, terrain, yield} entries
//   - The action point budget
//   - Message templates for the various game events
//
// The built-in reference map, the Verdant Reach, is a 52-tile world in
// six concentric rings around the home camp and is used whenever the
// maps directory holds nothing loadable.
//
// Usage:
//
//	manager := config.NewManager("maps")
//
//	// Load specific map
//	mapConfig, err := manager.LoadMap("verdant_reach")
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	// Get default map
//	defaultMap := manager.GetDefault()
//
//	// List available maps
//	maps, err := manager.ListMaps()
//
// Validation:
//
// All maps are validated for:
//   - Known terrain and resource names
//   - Exactly one home tile with an empty yield table
//   - No duplicate coordinates
//   - Connectivity from the home tile
//   - Required message templates and AP constraints
package config
