package engine

import (
	"github.com/hexfield/expedition/game/hexmap"
)

const (
	// MaxActionPoints is the per-session AP budget. RestoreAP resets
	// to this value; no action can push AP above it.
	MaxActionPoints = 8

	// AP costs per operation.
	MoveCost       = 1
	GatherCost     = 2
	HomeActionCost = 2

	// Validation constants.
	MinMapTiles         = 7 // home plus one full ring
	MaxMapTiles         = 512
	WebSocketBufferSize = 256
)

// FailureReason classifies why an action was rejected. All failures
// are local and recoverable; a failed action never mutates state.
type FailureReason string

const (
	InsufficientAP     FailureReason = "insufficient_ap"
	InvalidDestination FailureReason = "invalid_destination"
	InvalidLocation    FailureReason = "invalid_location"
	NothingToGather    FailureReason = "nothing_to_gather"
)

// ActionType names one of the four engine operations.
type ActionType string

const (
	ActionMove      ActionType = "move"
	ActionGather    ActionType = "gather"
	ActionHome      ActionType = "home_action"
	ActionRestoreAP ActionType = "restore_ap"
)

// PlayerState represents the complete mutable player state. It is
// owned exclusively by the engine; callers receive snapshots.
type PlayerState struct {
	Position     hexmap.Coordinate       `json:"position"`
	ActionPoints int                     `json:"action_points"`
	MaxAP        int                     `json:"max_ap"`
	Inventory    map[hexmap.Resource]int `json:"inventory"`
	Message      string                  `json:"message"`
	MapName      string                  `json:"map_name"`
	TotalActions int                     `json:"total_actions"`

	History []ActionRecord `json:"action_history"`
}

// ActionResult is the structured outcome of a single action. Domain
// failures are values here, never Go errors.
type ActionResult struct {
	Action       ActionType              `json:"action"`
	Success      bool                    `json:"success"`
	Reason       FailureReason           `json:"reason,omitempty"`
	Message      string                  `json:"message"`
	Position     hexmap.Coordinate       `json:"position"`
	ActionPoints int                     `json:"action_points"`
	Gathered     map[hexmap.Resource]int `json:"gathered,omitempty"`
}

// ActionRecord is a single entry in the session's action history.
type ActionRecord struct {
	Action       ActionType        `json:"action"`
	Direction    hexmap.Direction  `json:"direction,omitempty"`
	FromPosition hexmap.Coordinate `json:"from_position"`
	ToPosition   hexmap.Coordinate `json:"to_position"`
	ActionPoints int               `json:"action_points"`
	Timestamp    int64             `json:"timestamp"`
	Success      bool              `json:"success"`
	ActionNumber int               `json:"action_number"`
}

// NeighborTile describes one of the up-to-six tiles adjacent to the
// player, for rendering and decision aids. Exists is false when the
// direction leads off the map.
type NeighborTile struct {
	Direction hexmap.Direction  `json:"direction"`
	Coord     hexmap.Coordinate `json:"coord"`
	Exists    bool              `json:"exists"`
	Terrain   hexmap.Terrain    `json:"terrain,omitempty"`
	Glyph     string            `json:"glyph,omitempty"`
}

// TileConfig is one authored tile in a map configuration file.
type TileConfig struct {
	Q       int            `json:"q" yaml:"q"`
	R       int            `json:"r" yaml:"r"`
	Terrain string         `json:"terrain" yaml:"terrain"`
	Yield   map[string]int `json:"yield,omitempty" yaml:"yield,omitempty"`
}

// MapConfig represents an authored map loaded from a JSON or YAML
// file. The tile set is closed-world: it is loaded once at startup
// and never mutated afterward.
type MapConfig struct {
	Name        string       `json:"name" yaml:"name"`
	Description string       `json:"description" yaml:"description"`
	MaxAP       int          `json:"max_ap" yaml:"max_ap"`
	Tiles       []TileConfig `json:"tiles" yaml:"tiles"`
	Messages    Messages     `json:"messages" yaml:"messages"`
}

// Messages holds the user-facing status templates for a map.
type Messages struct {
	Welcome            string `json:"welcome" yaml:"welcome"`
	Moved              string `json:"moved" yaml:"moved"`
	Gathered           string `json:"gathered" yaml:"gathered"`
	HomeAction         string `json:"home_action" yaml:"home_action"`
	APRestored         string `json:"ap_restored" yaml:"ap_restored"`
	InsufficientAP     string `json:"insufficient_ap" yaml:"insufficient_ap"`
	InvalidDestination string `json:"invalid_destination" yaml:"invalid_destination"`
	NothingAtHome      string `json:"nothing_at_home" yaml:"nothing_at_home"`
	MustBeAtHome       string `json:"must_be_at_home" yaml:"must_be_at_home"`
	NothingToGather    string `json:"nothing_to_gather" yaml:"nothing_to_gather"`
}
