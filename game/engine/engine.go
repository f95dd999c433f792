package engine

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/hexfield/expedition/game/hexmap"
)

// Engine provides the main interface for game operations
type Engine interface {
	// Player state management
	GetState() *PlayerState
	Snapshot() PlayerState
	Reset() *PlayerState
	GetPosition() hexmap.Coordinate
	GetActionPoints() int
	GetInventory() map[hexmap.Resource]int

	// Actions
	Move(direction hexmap.Direction) *ActionResult
	Gather() *ActionResult
	HomeAction() *ActionResult
	RestoreAP() *ActionResult

	// Affordance checks
	CanMove(direction hexmap.Direction) bool
	PossibleMoves() []hexmap.Direction
	CanGather() bool
	CanHomeAction() bool

	// Configuration and world
	GetConfig() *MapConfig
	World() *hexmap.Map

	// History
	GetActionHistory() []ActionRecord
	GetLastAction() *ActionRecord

	// Local view
	NeighborView() []NeighborTile
}

// GameEngine implements the Engine interface. It owns the single
// PlayerState exclusively; callers only read snapshots.
type GameEngine struct {
	world  *hexmap.Map
	config *MapConfig
	state  *PlayerState
}

// NewEngine creates a new game engine with the provided map configuration
func NewEngine(config *MapConfig) (*GameEngine, error) {
	if err := ValidateMapConfig(config); err != nil {
		return nil, err
	}

	world := BuildMap(config)
	engine := &GameEngine{
		world:  world,
		config: config,
		state:  initPlayerState(config, world),
	}

	return engine, nil
}

// NewEngineWithDefaults creates a new game engine on the built-in reference map
func NewEngineWithDefaults() *GameEngine {
	config := DefaultMapConfig()
	world := BuildMap(config)
	return &GameEngine{
		world:  world,
		config: config,
		state:  initPlayerState(config, world),
	}
}

// initPlayerState builds the session-start state: player at home,
// full AP, empty inventory.
func initPlayerState(config *MapConfig, world *hexmap.Map) *PlayerState {
	maxAP := config.MaxAP
	if maxAP <= 0 {
		maxAP = MaxActionPoints
	}
	return &PlayerState{
		Position:     world.Home(),
		ActionPoints: maxAP,
		MaxAP:        maxAP,
		Inventory:    make(map[hexmap.Resource]int),
		Message:      config.Messages.Welcome,
		MapName:      config.Name,
		TotalActions: 0,
		History:      []ActionRecord{},
	}
}

// GetState returns the engine-owned player state. Callers must treat
// it as read-only; use Snapshot for a detached copy.
func (e *GameEngine) GetState() *PlayerState {
	return e.state
}

// Snapshot returns a detached copy of the player state with its own
// inventory map, safe to hand to rendering layers.
func (e *GameEngine) Snapshot() PlayerState {
	snap := *e.state
	snap.Inventory = make(map[hexmap.Resource]int, len(e.state.Inventory))
	for res, n := range e.state.Inventory {
		snap.Inventory[res] = n
	}
	snap.History = append([]ActionRecord(nil), e.state.History...)
	return snap
}

// Reset reinitializes the player to session-start state. Cumulative
// action history and totals survive the reset, matching history
// semantics elsewhere in the engine.
func (e *GameEngine) Reset() *PlayerState {
	prevHistory := e.state.History
	prevTotal := e.state.TotalActions

	e.state = initPlayerState(e.config, e.world)
	e.state.History = prevHistory
	e.state.TotalActions = prevTotal

	return e.state
}

// GetPosition returns the player's current coordinate
func (e *GameEngine) GetPosition() hexmap.Coordinate {
	return e.state.Position
}

// GetActionPoints returns the current AP balance
func (e *GameEngine) GetActionPoints() int {
	return e.state.ActionPoints
}

// GetInventory returns a copy of the inventory
func (e *GameEngine) GetInventory() map[hexmap.Resource]int {
	inv := make(map[hexmap.Resource]int, len(e.state.Inventory))
	for res, n := range e.state.Inventory {
		inv[res] = n
	}
	return inv
}

// Move attempts to step the player one tile in the given direction.
// Precondition order: AP first, then destination existence. A failed
// move changes nothing.
func (e *GameEngine) Move(direction hexmap.Direction) *ActionResult {
	from := e.state.Position

	if e.state.ActionPoints < MoveCost {
		return e.fail(ActionMove, InsufficientAP,
			e.insufficientAPMessage(MoveCost), from, direction)
	}

	target := from.Neighbor(direction)
	if !e.world.Contains(target) {
		msg := e.config.Messages.InvalidDestination
		if msg == "" {
			msg = fmt.Sprintf("Can't move %s: no tile at (%d,%d)", direction, target.Q, target.R)
		}
		return e.fail(ActionMove, InvalidDestination, msg, from, direction)
	}

	e.state.Position = target
	e.state.ActionPoints -= MoveCost
	e.state.Message = fmt.Sprintf("Moved %s to (%d,%d). AP: %d/%d",
		direction, target.Q, target.R, e.state.ActionPoints, e.state.MaxAP)

	e.addRecord(ActionMove, direction, from, target, true)

	return &ActionResult{
		Action:       ActionMove,
		Success:      true,
		Message:      e.state.Message,
		Position:     target,
		ActionPoints: e.state.ActionPoints,
	}
}

// Gather harvests the current tile's yield table into the inventory.
// Precondition order: AP, then not-home, then non-empty yield. The
// yield is deterministic: gathering the same tile twice adds the same
// amounts both times.
func (e *GameEngine) Gather() *ActionResult {
	pos := e.state.Position

	if e.state.ActionPoints < GatherCost {
		return e.fail(ActionGather, InsufficientAP,
			e.insufficientAPMessage(GatherCost), pos, "")
	}

	tile := e.world.TileAt(pos)
	if tile.Terrain == hexmap.Home {
		msg := e.config.Messages.NothingAtHome
		if msg == "" {
			msg = "Nothing to gather at home"
		}
		return e.fail(ActionGather, InvalidLocation, msg, pos, "")
	}

	if !tile.HasYield() {
		msg := e.config.Messages.NothingToGather
		if msg == "" {
			msg = "Nothing to gather here"
		}
		return e.fail(ActionGather, NothingToGather, msg, pos, "")
	}

	gathered := make(map[hexmap.Resource]int, len(tile.Yield))
	for res, amount := range tile.Yield {
		e.state.Inventory[res] += amount
		gathered[res] = amount
	}
	e.state.ActionPoints -= GatherCost

	e.state.Message = fmt.Sprintf("Gathered %s. AP: %d/%d",
		formatYield(gathered), e.state.ActionPoints, e.state.MaxAP)
	e.addRecord(ActionGather, "", pos, pos, true)

	return &ActionResult{
		Action:       ActionGather,
		Success:      true,
		Message:      e.state.Message,
		Position:     pos,
		ActionPoints: e.state.ActionPoints,
		Gathered:     gathered,
	}
}

// HomeAction performs the home-only action. It consumes AP and is
// gated to the home tile; its transformation is an open extension
// point and has no inventory effect.
func (e *GameEngine) HomeAction() *ActionResult {
	pos := e.state.Position

	if e.state.ActionPoints < HomeActionCost {
		return e.fail(ActionHome, InsufficientAP,
			e.insufficientAPMessage(HomeActionCost), pos, "")
	}

	if pos != e.world.Home() {
		msg := e.config.Messages.MustBeAtHome
		if msg == "" {
			msg = "Must be at home base"
		}
		return e.fail(ActionHome, InvalidLocation, msg, pos, "")
	}

	e.state.ActionPoints -= HomeActionCost
	msg := e.config.Messages.HomeAction
	if msg == "" {
		msg = "You work at the alchemy bench"
	}
	e.state.Message = fmt.Sprintf("%s. AP: %d/%d", msg, e.state.ActionPoints, e.state.MaxAP)
	e.addRecord(ActionHome, "", pos, pos, true)

	return &ActionResult{
		Action:       ActionHome,
		Success:      true,
		Message:      e.state.Message,
		Position:     pos,
		ActionPoints: e.state.ActionPoints,
	}
}

// RestoreAP hard-resets the AP balance to the maximum. It has no
// preconditions and is not additive.
func (e *GameEngine) RestoreAP() *ActionResult {
	pos := e.state.Position
	e.state.ActionPoints = e.state.MaxAP

	msg := e.config.Messages.APRestored
	if msg == "" {
		msg = "Action points restored"
	}
	e.state.Message = fmt.Sprintf("%s: %d/%d", msg, e.state.ActionPoints, e.state.MaxAP)
	e.addRecord(ActionRestoreAP, "", pos, pos, true)

	return &ActionResult{
		Action:       ActionRestoreAP,
		Success:      true,
		Message:      e.state.Message,
		Position:     pos,
		ActionPoints: e.state.ActionPoints,
	}
}

// CanMove checks whether a move in the given direction would succeed
func (e *GameEngine) CanMove(direction hexmap.Direction) bool {
	if e.state.ActionPoints < MoveCost {
		return false
	}
	return e.world.Contains(e.state.Position.Neighbor(direction))
}

// PossibleMoves returns all directions the player can currently move
func (e *GameEngine) PossibleMoves() []hexmap.Direction {
	var possible []hexmap.Direction
	for _, d := range hexmap.Directions {
		if e.CanMove(d) {
			possible = append(possible, d)
		}
	}
	return possible
}

// CanGather reports whether a gather call would succeed right now.
// Used by UI layers to disable the gather affordance.
func (e *GameEngine) CanGather() bool {
	if e.state.ActionPoints < GatherCost {
		return false
	}
	tile := e.world.TileAt(e.state.Position)
	return tile.Terrain != hexmap.Home && tile.HasYield()
}

// CanHomeAction reports whether the home action would succeed right now
func (e *GameEngine) CanHomeAction() bool {
	return e.state.ActionPoints >= HomeActionCost && e.state.Position == e.world.Home()
}

// GetConfig returns the current map configuration
func (e *GameEngine) GetConfig() *MapConfig {
	return e.config
}

// World returns the read-only tile map
func (e *GameEngine) World() *hexmap.Map {
	return e.world
}

// GetActionHistory returns the complete action history
func (e *GameEngine) GetActionHistory() []ActionRecord {
	return e.state.History
}

// GetLastAction returns the last recorded action, or nil if none
func (e *GameEngine) GetLastAction() *ActionRecord {
	if len(e.state.History) == 0 {
		return nil
	}
	return &e.state.History[len(e.state.History)-1]
}

// NeighborView lists the six adjacent positions around the player
// with their terrain, marking directions that lead off the map.
func (e *GameEngine) NeighborView() []NeighborTile {
	view := make([]NeighborTile, 0, 6)
	for _, d := range hexmap.Directions {
		coord := e.state.Position.Neighbor(d)
		nt := NeighborTile{Direction: d, Coord: coord}
		if tile := e.world.TileAt(coord); tile != nil {
			nt.Exists = true
			nt.Terrain = tile.Terrain
			nt.Glyph = tile.Terrain.Glyph()
		}
		view = append(view, nt)
	}
	return view
}

// fail records a rejected action and returns its result. Failed
// actions leave position, AP, and inventory untouched.
func (e *GameEngine) fail(action ActionType, reason FailureReason, message string, pos hexmap.Coordinate, direction hexmap.Direction) *ActionResult {
	e.state.Message = message
	e.addRecord(action, direction, pos, pos, false)
	return &ActionResult{
		Action:       action,
		Success:      false,
		Reason:       reason,
		Message:      message,
		Position:     pos,
		ActionPoints: e.state.ActionPoints,
	}
}

func (e *GameEngine) insufficientAPMessage(required int) string {
	msg := e.config.Messages.InsufficientAP
	if msg == "" {
		msg = "Not enough action points"
	}
	return fmt.Sprintf("%s (need %d, have %d)", msg, required, e.state.ActionPoints)
}

// addRecord appends an entry to the cumulative action history
func (e *GameEngine) addRecord(action ActionType, direction hexmap.Direction, from, to hexmap.Coordinate, success bool) {
	entry := ActionRecord{
		Action:       action,
		Direction:    direction,
		FromPosition: from,
		ToPosition:   to,
		ActionPoints: e.state.ActionPoints,
		Timestamp:    time.Now().Unix(),
		Success:      success,
		ActionNumber: e.state.TotalActions + 1,
	}
	e.state.History = append(e.state.History, entry)
	e.state.TotalActions++
}

// formatYield renders a gathered-resources set as "wood x3, herbs x1"
// in stable alphabetical order.
func formatYield(yield map[hexmap.Resource]int) string {
	keys := make([]string, 0, len(yield))
	for res := range yield {
		keys = append(keys, string(res))
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s x%d", k, yield[hexmap.Resource(k)]))
	}
	return strings.Join(parts, ", ")
}
