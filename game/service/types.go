package service

import (
	"time"

	"github.com/hexfield/expedition/game/engine"
	"github.com/hexfield/expedition/game/hexmap"
)

// SessionInfo provides information about a game session
type SessionInfo struct {
	ID             string             `json:"id"`
	MapName        string             `json:"map_name"`
	CreatedAt      time.Time          `json:"created_at"`
	LastAccessedAt time.Time          `json:"last_accessed_at"`
	PlayerState    engine.PlayerState `json:"player_state"`
	MapConfig      *engine.MapConfig  `json:"map_config,omitempty"`
}

// ActionOutcome wraps an engine action result with the context a UI
// needs to render the turn: the fresh player snapshot, emitted events,
// current affordances, and the local neighbor view.
type ActionOutcome struct {
	Result        *engine.ActionResult  `json:"result"`
	PlayerState   engine.PlayerState    `json:"player_state"`
	Events        []GameEvent           `json:"events,omitempty"`
	PossibleMoves []string              `json:"possible_moves"`
	CanGather     bool                  `json:"can_gather"`
	CanHomeAction bool                  `json:"can_home_action"`
	Neighbors     []engine.NeighborTile `json:"neighbors"`
	ReturnRisk    string                `json:"return_risk,omitempty"`
}

// GameEvent represents an event that occurred during gameplay
type GameEvent struct {
	Type      string            `json:"type"` // "move", "gather", "home_action", "restore_ap", "action_failed", "reset"
	Message   string            `json:"message"`
	Timestamp time.Time         `json:"timestamp"`
	Position  hexmap.Coordinate `json:"position"`
}

// HistoryOptions configures action history retrieval
type HistoryOptions struct {
	Page  int    `json:"page"`
	Limit int    `json:"limit"`
	Order string `json:"order"` // "asc" or "desc"
}

// HistoryResponse contains paginated action history
type HistoryResponse struct {
	Actions      []engine.ActionRecord `json:"actions"`
	TotalActions int                   `json:"total_actions"`
	Page         int                   `json:"page"`
	PageSize     int                   `json:"page_size"`
	TotalPages   int                   `json:"total_pages"`
	HasNext      bool                  `json:"has_next"`
	HasPrevious  bool                  `json:"has_previous"`
}

// MapInfo provides information about an authored map
type MapInfo struct {
	Filename    string `json:"filename"`
	MapID       string `json:"map_id"` // The identifier to use for session creation
	Name        string `json:"name"`   // Display name
	Description string `json:"description"`
	TileCount   int    `json:"tile_count"`
	MaxAP       int    `json:"max_ap"`
}
