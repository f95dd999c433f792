package engine

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/hexfield/expedition/game/hexmap"
)

// ValidateMapConfig validates a map configuration for correctness and
// playability: required fields, tile-set invariants (exactly one home
// with an empty yield table, no duplicate coordinates, known terrain
// and resource names, positive yields), and connectivity from home.
func ValidateMapConfig(config *MapConfig) error {
	if config.Name == "" {
		return fmt.Errorf("config validation: name is required")
	}
	if config.Description == "" {
		return fmt.Errorf("config validation: description is required")
	}

	if config.MaxAP < 1 || config.MaxAP > 100 {
		return fmt.Errorf("config validation: max_ap must be between 1 and 100, got %d", config.MaxAP)
	}

	if len(config.Tiles) < MinMapTiles || len(config.Tiles) > MaxMapTiles {
		return fmt.Errorf("config validation: tile count must be between %d and %d, got %d",
			MinMapTiles, MaxMapTiles, len(config.Tiles))
	}

	seen := make(map[hexmap.Coordinate]bool, len(config.Tiles))
	homeCount := 0
	var home hexmap.Coordinate

	for i, tc := range config.Tiles {
		coord := hexmap.Coordinate{Q: tc.Q, R: tc.R}
		if seen[coord] {
			return fmt.Errorf("config validation: duplicate tile at (%d,%d)", tc.Q, tc.R)
		}
		seen[coord] = true

		terrain := hexmap.Terrain(tc.Terrain)
		if !terrain.Valid() {
			return fmt.Errorf("config validation: tile %d has unknown terrain %q", i+1, tc.Terrain)
		}

		if terrain == hexmap.Home {
			homeCount++
			home = coord
			if len(tc.Yield) > 0 {
				return fmt.Errorf("config validation: home tile at (%d,%d) must have an empty yield table", tc.Q, tc.R)
			}
		}

		for res, amount := range tc.Yield {
			if !hexmap.Resource(res).Valid() {
				return fmt.Errorf("config validation: tile at (%d,%d) yields unknown resource %q", tc.Q, tc.R, res)
			}
			if amount <= 0 {
				return fmt.Errorf("config validation: tile at (%d,%d) has non-positive yield %d for %q", tc.Q, tc.R, amount, res)
			}
		}
	}

	if homeCount != 1 {
		return fmt.Errorf("config validation: map must contain exactly one home tile, got %d", homeCount)
	}

	if config.Messages.Welcome == "" {
		return fmt.Errorf("config validation: messages.welcome is required")
	}

	// Connectivity: every tile must be reachable from home by moves.
	reachable := map[hexmap.Coordinate]bool{home: true}
	frontier := []hexmap.Coordinate{home}
	for len(frontier) > 0 {
		curr := frontier[0]
		frontier = frontier[1:]
		for _, d := range hexmap.Directions {
			n := curr.Neighbor(d)
			if seen[n] && !reachable[n] {
				reachable[n] = true
				frontier = append(frontier, n)
			}
		}
	}
	if len(reachable) != len(config.Tiles) {
		return fmt.Errorf("config validation: %d tiles are unreachable from home",
			len(config.Tiles)-len(reachable))
	}

	return nil
}

// BuildMap constructs the immutable tile map from a validated config
func BuildMap(config *MapConfig) *hexmap.Map {
	tiles := make([]hexmap.Tile, 0, len(config.Tiles))
	for _, tc := range config.Tiles {
		tile := hexmap.Tile{
			Coord:   hexmap.Coordinate{Q: tc.Q, R: tc.R},
			Terrain: hexmap.Terrain(tc.Terrain),
		}
		if len(tc.Yield) > 0 {
			tile.Yield = make(map[hexmap.Resource]int, len(tc.Yield))
			for res, amount := range tc.Yield {
				tile.Yield[hexmap.Resource(res)] = amount
			}
		}
		tiles = append(tiles, tile)
	}
	return hexmap.New(tiles)
}

// LoadMapConfig loads and validates a map configuration from a JSON
// or YAML file, chosen by extension.
func LoadMapConfig(filename string) (*MapConfig, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}

	var config MapConfig
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &config); err != nil {
			return nil, fmt.Errorf("failed to parse map file %q: %w", filename, err)
		}
	default:
		if err := json.Unmarshal(data, &config); err != nil {
			return nil, fmt.Errorf("failed to parse map file %q: %w", filename, err)
		}
	}

	if err := ValidateMapConfig(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

// defaultMessages returns the built-in status message set
func defaultMessages() Messages {
	return Messages{
		Welcome:            "Welcome to the Verdant Reach! Explore, gather, and return home.",
		Moved:              "You walk to the next tile",
		Gathered:           "You gather from the land",
		HomeAction:         "You work at the alchemy bench",
		APRestored:         "A night's rest restores your action points",
		InsufficientAP:     "Not enough action points",
		InvalidDestination: "The wilds end here; there is no tile that way",
		NothingAtHome:      "Nothing to gather at home",
		MustBeAtHome:       "Must be at home base",
		NothingToGather:    "Nothing to gather here",
	}
}

// DefaultMapConfig returns the built-in reference map: 52 tiles in six
// concentric rings around the home tile at the origin. The inner ring
// is plains, the second mixes plains and forest, the third holds the
// mountain range and the lake shore, and a farmland arm stretches
// north through rings four to six.
func DefaultMapConfig() *MapConfig {
	plain := map[string]int{"wood": 3, "herbs": 1}
	forest := map[string]int{"wood": 5, "herbs": 2}
	mountain := map[string]int{"stone": 4, "iron": 2}
	lake := map[string]int{"fish": 2, "water": 3}
	farm := map[string]int{"wheat": 4, "herbs": 1}

	tiles := []TileConfig{
		{Q: 0, R: 0, Terrain: "home"},

		// Ring 1: plains all around home.
		{Q: 0, R: -1, Terrain: "plain", Yield: plain},
		{Q: 1, R: -1, Terrain: "plain", Yield: plain},
		{Q: 1, R: 0, Terrain: "plain", Yield: plain},
		{Q: 0, R: 1, Terrain: "plain", Yield: plain},
		{Q: -1, R: 1, Terrain: "plain", Yield: plain},
		{Q: -1, R: 0, Terrain: "plain", Yield: plain},

		// Ring 2: forest to the north and west, plains elsewhere.
		// Two trampled plains yield nothing.
		{Q: 0, R: -2, Terrain: "forest", Yield: forest},
		{Q: 1, R: -2, Terrain: "forest", Yield: forest},
		{Q: 2, R: -2, Terrain: "forest", Yield: forest},
		{Q: 2, R: -1, Terrain: "plain", Yield: plain},
		{Q: 2, R: 0, Terrain: "plain"},
		{Q: 1, R: 1, Terrain: "plain", Yield: plain},
		{Q: 0, R: 2, Terrain: "plain", Yield: plain},
		{Q: -1, R: 2, Terrain: "plain"},
		{Q: -2, R: 2, Terrain: "forest", Yield: forest},
		{Q: -2, R: 1, Terrain: "forest", Yield: map[string]int{"wood": 4, "herbs": 2}},
		{Q: -2, R: 0, Terrain: "forest", Yield: forest},
		{Q: -1, R: -1, Terrain: "plain", Yield: plain},

		// Ring 3: mountains east, the lake south, deep forest west.
		{Q: 0, R: -3, Terrain: "mountain", Yield: mountain},
		{Q: 1, R: -3, Terrain: "mountain", Yield: mountain},
		{Q: 2, R: -3, Terrain: "mountain", Yield: map[string]int{"stone": 4, "iron": 1}},
		{Q: 3, R: -3, Terrain: "mountain", Yield: map[string]int{"stone": 5, "iron": 2}},
		{Q: 3, R: -2, Terrain: "mountain", Yield: mountain},
		{Q: 3, R: -1, Terrain: "mountain", Yield: map[string]int{"stone": 3, "iron": 3}},
		{Q: 3, R: 0, Terrain: "mountain", Yield: mountain},
		{Q: 2, R: 1, Terrain: "water", Yield: lake},
		{Q: 1, R: 2, Terrain: "water", Yield: lake},
		{Q: 0, R: 3, Terrain: "water", Yield: map[string]int{"fish": 3, "water": 3}},
		{Q: -1, R: 3, Terrain: "water", Yield: lake},
		{Q: -2, R: 3, Terrain: "water", Yield: lake},
		{Q: -3, R: 3, Terrain: "water", Yield: map[string]int{"fish": 2, "water": 2}},
		{Q: -3, R: 2, Terrain: "forest", Yield: forest},
		{Q: -3, R: 1, Terrain: "forest", Yield: map[string]int{"wood": 5, "herbs": 3}},
		{Q: -3, R: 0, Terrain: "forest", Yield: map[string]int{"wood": 6, "herbs": 2}},
		{Q: -2, R: -1, Terrain: "forest", Yield: forest},
		{Q: -1, R: -2, Terrain: "forest", Yield: forest},

		// Rings 4-6: the farmland arm north of the mountains.
		{Q: 0, R: -4, Terrain: "far_plain", Yield: farm},
		{Q: 1, R: -4, Terrain: "far_plain", Yield: farm},
		{Q: 2, R: -4, Terrain: "far_plain", Yield: farm},
		{Q: 3, R: -4, Terrain: "far_plain", Yield: farm},
		{Q: 4, R: -4, Terrain: "far_plain", Yield: farm},
		{Q: 4, R: -3, Terrain: "far_plain", Yield: farm},
		{Q: 4, R: -2, Terrain: "far_plain", Yield: farm},
		{Q: 4, R: -1, Terrain: "far_plain", Yield: farm},
		{Q: 0, R: -5, Terrain: "far_plain", Yield: farm},
		{Q: 1, R: -5, Terrain: "far_plain", Yield: farm},
		{Q: 2, R: -5, Terrain: "far_plain", Yield: map[string]int{"wheat": 5, "herbs": 1}},
		{Q: 3, R: -5, Terrain: "far_plain", Yield: farm},
		{Q: 4, R: -5, Terrain: "far_plain", Yield: farm},
		{Q: 0, R: -6, Terrain: "far_plain", Yield: map[string]int{"wheat": 6}},
		{Q: 1, R: -6, Terrain: "far_plain", Yield: map[string]int{"wheat": 6}},
	}

	return &MapConfig{
		Name:        "Verdant Reach",
		Description: "The reference expedition map: 52 tiles in six rings around the home camp",
		MaxAP:       MaxActionPoints,
		Tiles:       tiles,
		Messages:    defaultMessages(),
	}
}
