package service

import (
	"context"
	"time"

	"github.com/hexfield/expedition/game/engine"
)

// GameService defines all game-related operations
type GameService interface {
	// Session Management
	CreateSession(ctx context.Context, mapName string) (*SessionInfo, error)
	GetSession(ctx context.Context, sessionID string) (*SessionInfo, error)
	ListSessions(ctx context.Context) ([]*SessionInfo, error)
	DeleteSession(ctx context.Context, sessionID string) error

	// Game Operations
	Move(ctx context.Context, sessionID, direction string) (*ActionOutcome, error)
	Gather(ctx context.Context, sessionID string) (*ActionOutcome, error)
	HomeAction(ctx context.Context, sessionID string) (*ActionOutcome, error)
	RestoreAP(ctx context.Context, sessionID string) (*ActionOutcome, error)
	Reset(ctx context.Context, sessionID string) (*engine.PlayerState, error)

	// Game State
	GetPlayerState(ctx context.Context, sessionID string) (*engine.PlayerState, error)
	GetActionHistory(ctx context.Context, sessionID string, opts HistoryOptions) (*HistoryResponse, error)

	// Maps
	ListMaps(ctx context.Context) ([]*MapInfo, error)
	LoadMap(ctx context.Context, mapName string) (*engine.MapConfig, error)
	SaveMap(ctx context.Context, mapName string, config *engine.MapConfig) error
}

// SessionManager defines session storage operations
type SessionManager interface {
	Create(id string, config *engine.MapConfig) (*Session, error)
	Get(id string) (*Session, error)
	GetOrCreate(id string, config *engine.MapConfig) (*Session, error)
	List() []*Session
	Delete(id string) error
	UpdateLastAccessed(id string) error
}

// MapManager handles authored map loading
type MapManager interface {
	LoadMap(name string) (*engine.MapConfig, error)
	ListMaps() ([]*MapInfo, error)
	GetDefault() *engine.MapConfig
	SaveMap(name string, config *engine.MapConfig) error
}

// Session represents an active game session
type Session struct {
	ID             string
	Engine         *engine.GameEngine
	Config         *engine.MapConfig
	CreatedAt      time.Time
	LastAccessedAt time.Time
}
