package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/hexfield/expedition/game/engine"
	"github.com/hexfield/expedition/game/hexmap"
)

// ErrUnknownDirection is returned for direction strings that are not
// one of the six hex direction names.
var ErrUnknownDirection = errors.New("unknown direction")

// gameServiceImpl implements the GameService interface
type gameServiceImpl struct {
	sessions SessionManager
	maps     MapManager
	mu       sync.RWMutex
}

// NewGameService creates a new game service instance
func NewGameService(sessions SessionManager, maps MapManager) GameService {
	return &gameServiceImpl{
		sessions: sessions,
		maps:     maps,
	}
}

// getMapID returns the map_id for a given display name, used for
// consistent API responses.
func (s *gameServiceImpl) getMapID(mapName string) string {
	available, err := s.maps.ListMaps()
	if err == nil {
		for _, m := range available {
			if m.Name == mapName {
				return m.MapID
			}
		}
	}
	if mapName == "" {
		return "default"
	}
	return mapName
}

// CreateSession creates a new game session on the named map, or on
// the default map when mapName is empty.
func (s *gameServiceImpl) CreateSession(ctx context.Context, mapName string) (*SessionInfo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var config *engine.MapConfig
	var err error
	if mapName != "" {
		config, err = s.maps.LoadMap(mapName)
		if err != nil {
			available, listErr := s.maps.ListMaps()
			if listErr == nil && len(available) > 0 {
				var mapIDs []string
				for _, m := range available {
					mapIDs = append(mapIDs, m.MapID)
				}
				return nil, fmt.Errorf("map %q not found. Available maps: %v", mapName, mapIDs)
			}
			return nil, fmt.Errorf("failed to load map %s: %w", mapName, err)
		}
	} else {
		config = s.maps.GetDefault()
	}

	session, err := s.sessions.Create("", config)
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	mapID := mapName
	if mapID == "" {
		mapID = s.getMapID(config.Name)
	}

	return &SessionInfo{
		ID:             session.ID,
		MapName:        mapID,
		CreatedAt:      session.CreatedAt,
		LastAccessedAt: session.LastAccessedAt,
		PlayerState:    session.Engine.Snapshot(),
		MapConfig:      session.Config,
	}, nil
}

// GetSession retrieves session information
func (s *gameServiceImpl) GetSession(ctx context.Context, sessionID string) (*SessionInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	session, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}

	s.sessions.UpdateLastAccessed(sessionID)

	return &SessionInfo{
		ID:             session.ID,
		MapName:        s.getMapID(session.Config.Name),
		CreatedAt:      session.CreatedAt,
		LastAccessedAt: session.LastAccessedAt,
		PlayerState:    session.Engine.Snapshot(),
		MapConfig:      session.Config,
	}, nil
}

// ListSessions returns all active sessions
func (s *gameServiceImpl) ListSessions(ctx context.Context) ([]*SessionInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sessions := s.sessions.List()
	result := make([]*SessionInfo, 0, len(sessions))

	for _, sess := range sessions {
		result = append(result, &SessionInfo{
			ID:             sess.ID,
			MapName:        s.getMapID(sess.Config.Name),
			CreatedAt:      sess.CreatedAt,
			LastAccessedAt: sess.LastAccessedAt,
			PlayerState:    sess.Engine.Snapshot(),
		})
	}

	return result, nil
}

// DeleteSession removes a session
func (s *gameServiceImpl) DeleteSession(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.sessions.Delete(sessionID)
}

// Move steps the player one tile in the given direction
func (s *gameServiceImpl) Move(ctx context.Context, sessionID, direction string) (*ActionOutcome, error) {
	d, ok := hexmap.ParseDirection(direction)
	if !ok {
		return nil, fmt.Errorf("%w: %q (expected one of n, ne, se, s, sw, nw)", ErrUnknownDirection, direction)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}
	s.sessions.UpdateLastAccessed(sessionID)

	result := sess.Engine.Move(d)
	return s.outcome(sess, result), nil
}

// Gather harvests the current tile into the session inventory
func (s *gameServiceImpl) Gather(ctx context.Context, sessionID string) (*ActionOutcome, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}
	s.sessions.UpdateLastAccessed(sessionID)

	result := sess.Engine.Gather()
	return s.outcome(sess, result), nil
}

// HomeAction performs the home-only action
func (s *gameServiceImpl) HomeAction(ctx context.Context, sessionID string) (*ActionOutcome, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}
	s.sessions.UpdateLastAccessed(sessionID)

	result := sess.Engine.HomeAction()
	return s.outcome(sess, result), nil
}

// RestoreAP resets the session's action points to the maximum
func (s *gameServiceImpl) RestoreAP(ctx context.Context, sessionID string) (*ActionOutcome, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}
	s.sessions.UpdateLastAccessed(sessionID)

	result := sess.Engine.RestoreAP()
	return s.outcome(sess, result), nil
}

// Reset reinitializes a session to its starting state
func (s *gameServiceImpl) Reset(ctx context.Context, sessionID string) (*engine.PlayerState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}

	s.sessions.UpdateLastAccessed(sessionID)
	return sess.Engine.Reset(), nil
}

// GetPlayerState retrieves the current player state
func (s *gameServiceImpl) GetPlayerState(ctx context.Context, sessionID string) (*engine.PlayerState, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}

	s.sessions.UpdateLastAccessed(sessionID)
	snap := sess.Engine.Snapshot()
	return &snap, nil
}

// GetActionHistory returns paginated action history
func (s *gameServiceImpl) GetActionHistory(ctx context.Context, sessionID string, opts HistoryOptions) (*HistoryResponse, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}

	history := sess.Engine.GetActionHistory()
	total := len(history)

	if opts.Page < 1 {
		opts.Page = 1
	}
	if opts.Limit <= 0 {
		opts.Limit = 20
	}
	if opts.Limit > 100 {
		opts.Limit = 100
	}
	if opts.Order == "" {
		opts.Order = "desc"
	}

	totalPages := (total + opts.Limit - 1) / opts.Limit
	if totalPages == 0 {
		totalPages = 1
	}

	start := (opts.Page - 1) * opts.Limit
	end := start + opts.Limit
	if end > total {
		end = total
	}

	var actions []engine.ActionRecord
	if opts.Order == "desc" {
		// Most recent first
		for i := total - 1 - start; i >= 0 && i >= total-end; i-- {
			actions = append(actions, history[i])
		}
	} else {
		if start < total {
			actions = history[start:end]
		}
	}
	if actions == nil {
		actions = []engine.ActionRecord{}
	}

	return &HistoryResponse{
		Actions:      actions,
		TotalActions: total,
		Page:         opts.Page,
		PageSize:     opts.Limit,
		TotalPages:   totalPages,
		HasNext:      opts.Page < totalPages,
		HasPrevious:  opts.Page > 1,
	}, nil
}

// ListMaps returns available maps
func (s *gameServiceImpl) ListMaps(ctx context.Context) ([]*MapInfo, error) {
	return s.maps.ListMaps()
}

// LoadMap loads a specific map configuration
func (s *gameServiceImpl) LoadMap(ctx context.Context, mapName string) (*engine.MapConfig, error) {
	return s.maps.LoadMap(mapName)
}

// SaveMap saves a map configuration to disk
func (s *gameServiceImpl) SaveMap(ctx context.Context, mapName string, config *engine.MapConfig) error {
	return s.maps.SaveMap(mapName, config)
}

// outcome assembles the full per-action response: result, fresh
// snapshot, events, and decision aids. Callers hold the write lock.
func (s *gameServiceImpl) outcome(sess *Session, result *engine.ActionResult) *ActionOutcome {
	snap := sess.Engine.Snapshot()

	moves := sess.Engine.PossibleMoves()
	moveNames := make([]string, 0, len(moves))
	for _, d := range moves {
		moveNames = append(moveNames, string(d))
	}

	return &ActionOutcome{
		Result:        result,
		PlayerState:   snap,
		Events:        extractEvents(result),
		PossibleMoves: moveNames,
		CanGather:     sess.Engine.CanGather(),
		CanHomeAction: sess.Engine.CanHomeAction(),
		Neighbors:     sess.Engine.NeighborView(),
		ReturnRisk:    engine.AnalyzeReturnRisk(sess.Engine.GetState(), sess.Engine.World()),
	}
}

// extractEvents generates events from an action result
func extractEvents(result *engine.ActionResult) []GameEvent {
	now := time.Now()

	if !result.Success {
		return []GameEvent{{
			Type:      "action_failed",
			Message:   result.Message,
			Timestamp: now,
			Position:  result.Position,
		}}
	}

	events := []GameEvent{{
		Type:      string(result.Action),
		Message:   result.Message,
		Timestamp: now,
		Position:  result.Position,
	}}

	if result.Action == engine.ActionGather && len(result.Gathered) > 0 {
		for res, amount := range result.Gathered {
			events = append(events, GameEvent{
				Type:      "resource_added",
				Message:   fmt.Sprintf("Added %s x%d to the pack", res, amount),
				Timestamp: now,
				Position:  result.Position,
			})
		}
	}

	return events
}
