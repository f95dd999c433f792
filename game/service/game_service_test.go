package service_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/hexfield/expedition/game/engine"
	"github.com/hexfield/expedition/game/hexmap"
	"github.com/hexfield/expedition/game/service"
)

// MockSessionManager implements service.SessionManager for testing
type MockSessionManager struct {
	sessions map[string]*service.Session
}

func NewMockSessionManager() *MockSessionManager {
	return &MockSessionManager{
		sessions: make(map[string]*service.Session),
	}
}

func (m *MockSessionManager) Create(id string, config *engine.MapConfig) (*service.Session, error) {
	if id == "" {
		id = fmt.Sprintf("test_%d", len(m.sessions)+1)
	}

	if _, exists := m.sessions[id]; exists {
		return nil, errors.New("session already exists")
	}

	eng, err := engine.NewEngine(config)
	if err != nil {
		return nil, err
	}

	session := &service.Session{
		ID:             id,
		Engine:         eng,
		Config:         config,
		CreatedAt:      time.Now(),
		LastAccessedAt: time.Now(),
	}

	m.sessions[id] = session
	return session, nil
}

func (m *MockSessionManager) Get(id string) (*service.Session, error) {
	session, exists := m.sessions[id]
	if !exists {
		return nil, errors.New("session not found")
	}
	return session, nil
}

func (m *MockSessionManager) GetOrCreate(id string, config *engine.MapConfig) (*service.Session, error) {
	if session, exists := m.sessions[id]; exists {
		return session, nil
	}
	return m.Create(id, config)
}

func (m *MockSessionManager) List() []*service.Session {
	result := make([]*service.Session, 0, len(m.sessions))
	for _, session := range m.sessions {
		result = append(result, session)
	}
	return result
}

func (m *MockSessionManager) Delete(id string) error {
	if _, exists := m.sessions[id]; !exists {
		return errors.New("session not found")
	}
	delete(m.sessions, id)
	return nil
}

func (m *MockSessionManager) UpdateLastAccessed(id string) error {
	if session, exists := m.sessions[id]; exists {
		session.LastAccessedAt = time.Now()
		return nil
	}
	return errors.New("session not found")
}

// MockMapManager implements service.MapManager for testing
type MockMapManager struct {
	maps map[string]*engine.MapConfig
}

func NewMockMapManager() *MockMapManager {
	return &MockMapManager{
		maps: map[string]*engine.MapConfig{
			"test": testMapConfig(),
		},
	}
}

func testMapConfig() *engine.MapConfig {
	return &engine.MapConfig{
		Name:        "Test Expedition",
		Description: "Map for service tests",
		MaxAP:       engine.MaxActionPoints,
		Tiles: []engine.TileConfig{
			{Q: 0, R: 0, Terrain: "home"},
			{Q: 0, R: -1, Terrain: "plain", Yield: map[string]int{"wood": 3, "herbs": 1}},
			{Q: 1, R: -1, Terrain: "plain", Yield: map[string]int{"wood": 3, "herbs": 1}},
			{Q: 1, R: 0, Terrain: "forest", Yield: map[string]int{"wood": 5, "herbs": 2}},
			{Q: 0, R: 1, Terrain: "plain"},
			{Q: -1, R: 1, Terrain: "water", Yield: map[string]int{"fish": 2, "water": 3}},
			{Q: -1, R: 0, Terrain: "mountain", Yield: map[string]int{"stone": 4, "iron": 2}},
		},
		Messages: engine.Messages{Welcome: "Welcome to the test expedition"},
	}
}

func (m *MockMapManager) LoadMap(name string) (*engine.MapConfig, error) {
	config, exists := m.maps[name]
	if !exists {
		return nil, errors.New("map not found")
	}
	return config, nil
}

func (m *MockMapManager) ListMaps() ([]*service.MapInfo, error) {
	var infos []*service.MapInfo
	for id, config := range m.maps {
		infos = append(infos, &service.MapInfo{
			Filename:    id + ".json",
			MapID:       id,
			Name:        config.Name,
			Description: config.Description,
			TileCount:   len(config.Tiles),
			MaxAP:       config.MaxAP,
		})
	}
	return infos, nil
}

func (m *MockMapManager) GetDefault() *engine.MapConfig {
	return m.maps["test"]
}

func (m *MockMapManager) SaveMap(name string, config *engine.MapConfig) error {
	m.maps[name] = config
	return nil
}

func newTestService(t *testing.T) service.GameService {
	t.Helper()
	return service.NewGameService(NewMockSessionManager(), NewMockMapManager())
}

func createSession(t *testing.T, svc service.GameService) *service.SessionInfo {
	t.Helper()
	info, err := svc.CreateSession(context.Background(), "test")
	if err != nil {
		t.Fatalf("failed to create session: %v", err)
	}
	return info
}

func TestCreateSession(t *testing.T) {
	svc := newTestService(t)

	info := createSession(t, svc)
	if info.ID == "" {
		t.Error("expected generated session ID")
	}
	if info.MapName != "test" {
		t.Errorf("expected map name %q, got %q", "test", info.MapName)
	}
	if info.PlayerState.ActionPoints != engine.MaxActionPoints {
		t.Errorf("expected full AP, got %d", info.PlayerState.ActionPoints)
	}
	if info.PlayerState.Position != (hexmap.Coordinate{Q: 0, R: 0}) {
		t.Errorf("expected player at home, got %+v", info.PlayerState.Position)
	}
}

func TestCreateSession_UnknownMap(t *testing.T) {
	svc := newTestService(t)

	if _, err := svc.CreateSession(context.Background(), "nonexistent"); err == nil {
		t.Error("expected error for unknown map")
	}
}

func TestCreateSession_DefaultMap(t *testing.T) {
	svc := newTestService(t)

	info, err := svc.CreateSession(context.Background(), "")
	if err != nil {
		t.Fatalf("failed to create session on default map: %v", err)
	}
	if info.MapName != "test" {
		t.Errorf("expected default map id, got %q", info.MapName)
	}
}

func TestMove(t *testing.T) {
	svc := newTestService(t)
	info := createSession(t, svc)

	outcome, err := svc.Move(context.Background(), info.ID, "n")
	if err != nil {
		t.Fatalf("move failed: %v", err)
	}
	if !outcome.Result.Success {
		t.Fatalf("expected successful move, got %+v", outcome.Result)
	}
	if outcome.PlayerState.Position != (hexmap.Coordinate{Q: 0, R: -1}) {
		t.Errorf("unexpected position: %+v", outcome.PlayerState.Position)
	}
	if outcome.PlayerState.ActionPoints != engine.MaxActionPoints-engine.MoveCost {
		t.Errorf("unexpected AP: %d", outcome.PlayerState.ActionPoints)
	}
	if len(outcome.Events) == 0 || outcome.Events[0].Type != "move" {
		t.Errorf("unexpected events: %+v", outcome.Events)
	}
	if len(outcome.Neighbors) != 6 {
		t.Errorf("expected 6 neighbor entries, got %d", len(outcome.Neighbors))
	}
}

func TestMove_UnknownDirection(t *testing.T) {
	svc := newTestService(t)
	info := createSession(t, svc)

	if _, err := svc.Move(context.Background(), info.ID, "up"); !errors.Is(err, service.ErrUnknownDirection) {
		t.Errorf("expected ErrUnknownDirection, got %v", err)
	}
}

func TestMove_FailedActionIsOutcomeNotError(t *testing.T) {
	svc := newTestService(t)
	info := createSession(t, svc)
	ctx := context.Background()

	// (0,-1) then N again walks off the test map.
	if _, err := svc.Move(ctx, info.ID, "n"); err != nil {
		t.Fatalf("setup move failed: %v", err)
	}
	outcome, err := svc.Move(ctx, info.ID, "n")
	if err != nil {
		t.Fatalf("expected no transport error, got %v", err)
	}
	if outcome.Result.Success || outcome.Result.Reason != engine.InvalidDestination {
		t.Errorf("expected InvalidDestination outcome, got %+v", outcome.Result)
	}
	if len(outcome.Events) != 1 || outcome.Events[0].Type != "action_failed" {
		t.Errorf("unexpected events: %+v", outcome.Events)
	}
}

func TestGather(t *testing.T) {
	svc := newTestService(t)
	info := createSession(t, svc)
	ctx := context.Background()

	svc.Move(ctx, info.ID, "n")
	outcome, err := svc.Gather(ctx, info.ID)
	if err != nil {
		t.Fatalf("gather failed: %v", err)
	}
	if !outcome.Result.Success {
		t.Fatalf("expected successful gather, got %+v", outcome.Result)
	}
	if outcome.PlayerState.Inventory[hexmap.Wood] != 3 {
		t.Errorf("unexpected inventory: %v", outcome.PlayerState.Inventory)
	}

	// One "gather" event plus one "resource_added" per resource kind.
	if len(outcome.Events) != 3 {
		t.Errorf("expected 3 events, got %+v", outcome.Events)
	}
}

func TestHomeActionAndRestore(t *testing.T) {
	svc := newTestService(t)
	info := createSession(t, svc)
	ctx := context.Background()

	outcome, err := svc.HomeAction(ctx, info.ID)
	if err != nil {
		t.Fatalf("home action failed: %v", err)
	}
	if !outcome.Result.Success || outcome.PlayerState.ActionPoints != engine.MaxActionPoints-engine.HomeActionCost {
		t.Errorf("unexpected home action outcome: %+v", outcome.Result)
	}

	restored, err := svc.RestoreAP(ctx, info.ID)
	if err != nil {
		t.Fatalf("restore failed: %v", err)
	}
	if restored.PlayerState.ActionPoints != engine.MaxActionPoints {
		t.Errorf("expected full AP after restore, got %d", restored.PlayerState.ActionPoints)
	}
}

func TestReset(t *testing.T) {
	svc := newTestService(t)
	info := createSession(t, svc)
	ctx := context.Background()

	svc.Move(ctx, info.ID, "n")
	svc.Gather(ctx, info.ID)

	state, err := svc.Reset(ctx, info.ID)
	if err != nil {
		t.Fatalf("reset failed: %v", err)
	}
	if state.Position != (hexmap.Coordinate{Q: 0, R: 0}) || state.ActionPoints != engine.MaxActionPoints {
		t.Errorf("unexpected state after reset: %+v", state)
	}
	if len(state.Inventory) != 0 {
		t.Errorf("reset should clear inventory: %v", state.Inventory)
	}
}

func TestGetPlayerState(t *testing.T) {
	svc := newTestService(t)
	info := createSession(t, svc)

	state, err := svc.GetPlayerState(context.Background(), info.ID)
	if err != nil {
		t.Fatalf("get state failed: %v", err)
	}
	if state.MapName != "Test Expedition" {
		t.Errorf("unexpected map name: %q", state.MapName)
	}

	if _, err := svc.GetPlayerState(context.Background(), "missing"); err == nil {
		t.Error("expected error for unknown session")
	}
}

func TestGetActionHistory(t *testing.T) {
	svc := newTestService(t)
	info := createSession(t, svc)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		svc.Move(ctx, info.ID, "n")
		svc.Move(ctx, info.ID, "s")
	}

	resp, err := svc.GetActionHistory(ctx, info.ID, service.HistoryOptions{Page: 1, Limit: 4})
	if err != nil {
		t.Fatalf("history failed: %v", err)
	}
	if resp.TotalActions != 10 {
		t.Errorf("expected 10 total actions, got %d", resp.TotalActions)
	}
	if len(resp.Actions) != 4 {
		t.Errorf("expected page of 4, got %d", len(resp.Actions))
	}
	if resp.TotalPages != 3 || !resp.HasNext || resp.HasPrevious {
		t.Errorf("unexpected pagination: %+v", resp)
	}

	// Default order is most recent first.
	if resp.Actions[0].ActionNumber != 10 {
		t.Errorf("expected newest action first, got %+v", resp.Actions[0])
	}

	asc, err := svc.GetActionHistory(ctx, info.ID, service.HistoryOptions{Order: "asc", Limit: 3})
	if err != nil {
		t.Fatalf("history failed: %v", err)
	}
	if asc.Actions[0].ActionNumber != 1 {
		t.Errorf("expected oldest action first, got %+v", asc.Actions[0])
	}
}

func TestSessionLifecycle(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	a := createSession(t, svc)
	b := createSession(t, svc)

	sessions, err := svc.ListSessions(ctx)
	if err != nil || len(sessions) != 2 {
		t.Fatalf("expected 2 sessions, got %d (err=%v)", len(sessions), err)
	}

	// Sessions are isolated: moving one leaves the other untouched.
	svc.Move(ctx, a.ID, "n")
	stateB, _ := svc.GetPlayerState(ctx, b.ID)
	if stateB.Position != (hexmap.Coordinate{Q: 0, R: 0}) {
		t.Errorf("session %s state leaked into %s", a.ID, b.ID)
	}

	if err := svc.DeleteSession(ctx, a.ID); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if _, err := svc.GetSession(ctx, a.ID); err == nil {
		t.Error("expected error for deleted session")
	}
}

func TestListMaps(t *testing.T) {
	svc := newTestService(t)

	maps, err := svc.ListMaps(context.Background())
	if err != nil {
		t.Fatalf("list maps failed: %v", err)
	}
	if len(maps) != 1 || maps[0].MapID != "test" {
		t.Errorf("unexpected map list: %+v", maps)
	}
	if maps[0].TileCount != 7 {
		t.Errorf("unexpected tile count: %d", maps[0].TileCount)
	}
}
