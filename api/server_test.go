package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/hexfield/expedition/game/config"
	"github.com/hexfield/expedition/game/engine"
	"github.com/hexfield/expedition/game/service"
	"github.com/hexfield/expedition/game/session"
	"github.com/hexfield/expedition/transport/websocket"
)

const testMapJSON = `{
  "name": "Test Expedition",
  "description": "Seven-tile map for handler tests",
  "max_ap": 8,
  "tiles": [
    {"q": 0, "r": 0, "terrain": "home"},
    {"q": 0, "r": -1, "terrain": "plain", "yield": {"wood": 3, "herbs": 1}},
    {"q": 1, "r": -1, "terrain": "plain", "yield": {"wood": 2}},
    {"q": 1, "r": 0, "terrain": "forest", "yield": {"wood": 5, "herbs": 2}},
    {"q": 0, "r": 1, "terrain": "plain"},
    {"q": -1, "r": 1, "terrain": "water", "yield": {"fish": 2}},
    {"q": -1, "r": 0, "terrain": "mountain", "yield": {"stone": 4}}
  ],
  "messages": {
    "welcome": "Welcome to the test expedition",
    "moved": "You walk to the next tile",
    "gathered": "You gather from the land",
    "home_action": "You work at the bench",
    "ap_restored": "Rested",
    "insufficient_ap": "Not enough action points",
    "invalid_destination": "No tile that way",
    "nothing_at_home": "Nothing to gather at home",
    "must_be_at_home": "Must be at home base",
    "nothing_to_gather": "Nothing to gather here"
  }
}`

func setupTestServer(t *testing.T) (*httptest.Server, *Server) {
	t.Helper()

	mapDir := t.TempDir()
	if err := os.WriteFile(filepath.Join(mapDir, "test.json"), []byte(testMapJSON), 0644); err != nil {
		t.Fatalf("failed to write test map: %v", err)
	}

	maps, err := config.NewManager(mapDir)
	if err != nil {
		t.Fatalf("failed to create map manager: %v", err)
	}

	svc := service.NewGameService(session.NewManager(), maps)

	hub := websocket.NewHub()
	go hub.Run()

	server := NewServer(svc, hub)
	ts := httptest.NewServer(server)
	t.Cleanup(ts.Close)

	return ts, server
}

func postJSON(t *testing.T, url string, body interface{}) *http.Response {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("failed to encode body: %v", err)
		}
	}

	resp, err := http.Post(url, "application/json", &buf)
	if err != nil {
		t.Fatalf("POST %s failed: %v", url, err)
	}
	return resp
}

func decode(t *testing.T, resp *http.Response, out interface{}) {
	t.Helper()
	defer resp.Body.Close()
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
}

func createSession(t *testing.T, ts *httptest.Server, mapID string) *service.SessionInfo {
	t.Helper()

	body := map[string]string{}
	if mapID != "" {
		body["map_id"] = mapID
	}

	resp := postJSON(t, ts.URL+"/api/sessions", body)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected 201 creating session, got %d", resp.StatusCode)
	}

	var session service.SessionInfo
	decode(t, resp, &session)
	return &session
}

func TestHealthEndpoint(t *testing.T) {
	ts, _ := setupTestServer(t)

	resp, err := http.Get(ts.URL + "/api/health")
	if err != nil {
		t.Fatalf("GET /api/health failed: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Errorf("expected 200, got %d", resp.StatusCode)
	}

	var body map[string]string
	decode(t, resp, &body)
	if body["status"] != "healthy" {
		t.Errorf("expected healthy status, got %q", body["status"])
	}
}

func TestCreateSession(t *testing.T) {
	ts, _ := setupTestServer(t)

	session := createSession(t, ts, "test")

	if len(session.ID) != 4 {
		t.Errorf("expected 4-character session ID, got %q", session.ID)
	}
	if session.MapName != "Test Expedition" {
		t.Errorf("expected map name Test Expedition, got %q", session.MapName)
	}
	if session.PlayerState.ActionPoints != 8 {
		t.Errorf("expected 8 AP at start, got %d", session.PlayerState.ActionPoints)
	}
	if session.PlayerState.Position.Q != 0 || session.PlayerState.Position.R != 0 {
		t.Errorf("expected home start, got %+v", session.PlayerState.Position)
	}
}

func TestCreateSession_DefaultMap(t *testing.T) {
	ts, _ := setupTestServer(t)

	session := createSession(t, ts, "")
	if session.MapName != "Test Expedition" {
		t.Errorf("expected default map Test Expedition, got %q", session.MapName)
	}
}

func TestCreateSession_UnknownMap(t *testing.T) {
	ts, _ := setupTestServer(t)

	resp := postJSON(t, ts.URL+"/api/sessions", map[string]string{"map_id": "atlantis"})
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusInternalServerError {
		t.Errorf("expected 500 for unknown map, got %d", resp.StatusCode)
	}

	var body map[string]string
	json.NewDecoder(resp.Body).Decode(&body)
	if !strings.Contains(body["error"], "atlantis") {
		t.Errorf("expected the map name in the error, got %q", body["error"])
	}
}

func TestGetSession(t *testing.T) {
	ts, _ := setupTestServer(t)
	created := createSession(t, ts, "test")

	resp, err := http.Get(ts.URL + "/api/sessions/" + created.ID)
	if err != nil {
		t.Fatalf("GET session failed: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	var session service.SessionInfo
	decode(t, resp, &session)
	if session.ID != created.ID {
		t.Errorf("expected session %s, got %s", created.ID, session.ID)
	}
	if session.MapConfig == nil || len(session.MapConfig.Tiles) != 7 {
		t.Error("expected the session payload to carry the full map config")
	}
}

func TestGetSession_NotFound(t *testing.T) {
	ts, _ := setupTestServer(t)

	resp, err := http.Get(ts.URL + "/api/sessions/zzzz")
	if err != nil {
		t.Fatalf("GET session failed: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("expected 404, got %d", resp.StatusCode)
	}
}

func TestDeleteSession(t *testing.T) {
	ts, _ := setupTestServer(t)
	created := createSession(t, ts, "test")

	req, _ := http.NewRequest("DELETE", ts.URL+"/api/sessions/"+created.ID, nil)
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("DELETE session failed: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	check, _ := http.Get(ts.URL + "/api/sessions/" + created.ID)
	check.Body.Close()
	if check.StatusCode != http.StatusNotFound {
		t.Errorf("expected 404 after delete, got %d", check.StatusCode)
	}
}

func TestListSessions(t *testing.T) {
	ts, _ := setupTestServer(t)
	createSession(t, ts, "test")
	createSession(t, ts, "test")
	createSession(t, ts, "test")

	resp, err := http.Get(ts.URL + "/api/sessions?limit=2")
	if err != nil {
		t.Fatalf("GET sessions failed: %v", err)
	}

	var body struct {
		Count    int                   `json:"count"`
		Sessions []service.SessionInfo `json:"sessions"`
	}
	decode(t, resp, &body)

	if body.Count != 2 || len(body.Sessions) != 2 {
		t.Errorf("expected limit=2 to cap the list, got count=%d len=%d", body.Count, len(body.Sessions))
	}
}

func TestMoveEndpoint(t *testing.T) {
	ts, _ := setupTestServer(t)
	session := createSession(t, ts, "test")

	resp := postJSON(t, ts.URL+"/api/sessions/"+session.ID+"/move", map[string]string{"direction": "n"})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	var outcome service.ActionOutcome
	decode(t, resp, &outcome)

	if !outcome.Result.Success {
		t.Fatalf("expected successful move, got %+v", outcome.Result)
	}
	if outcome.PlayerState.Position.Q != 0 || outcome.PlayerState.Position.R != -1 {
		t.Errorf("expected position (0,-1), got %+v", outcome.PlayerState.Position)
	}
	if outcome.PlayerState.ActionPoints != 7 {
		t.Errorf("expected 7 AP after move, got %d", outcome.PlayerState.ActionPoints)
	}
	if len(outcome.PossibleMoves) == 0 {
		t.Error("expected possible moves in the outcome")
	}
}

func TestMoveEndpoint_FailureIsHTTP200(t *testing.T) {
	ts, _ := setupTestServer(t)
	session := createSession(t, ts, "test")

	// (0,1) then another step south walks off the seven-tile map.
	postJSON(t, ts.URL+"/api/sessions/"+session.ID+"/move", map[string]string{"direction": "s"}).Body.Close()

	resp := postJSON(t, ts.URL+"/api/sessions/"+session.ID+"/move", map[string]string{"direction": "s"})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("domain failures are outcomes, not HTTP errors; got %d", resp.StatusCode)
	}

	var outcome service.ActionOutcome
	decode(t, resp, &outcome)

	if outcome.Result.Success {
		t.Fatal("expected the off-map move to fail")
	}
	if outcome.Result.Reason != engine.InvalidDestination {
		t.Errorf("expected invalid_destination, got %s", outcome.Result.Reason)
	}
	if outcome.PlayerState.ActionPoints != 7 {
		t.Errorf("failed move must not spend AP, got %d", outcome.PlayerState.ActionPoints)
	}
}

func TestMoveEndpoint_BadDirection(t *testing.T) {
	ts, _ := setupTestServer(t)
	session := createSession(t, ts, "test")

	resp := postJSON(t, ts.URL+"/api/sessions/"+session.ID+"/move", map[string]string{"direction": "up"})
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("expected 400 for unknown direction, got %d", resp.StatusCode)
	}
}

func TestMoveEndpoint_SessionNotFound(t *testing.T) {
	ts, _ := setupTestServer(t)

	resp := postJSON(t, ts.URL+"/api/sessions/zzzz/move", map[string]string{"direction": "n"})
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("expected 404 for unknown session, got %d", resp.StatusCode)
	}
}

func TestGatherEndpoint(t *testing.T) {
	ts, _ := setupTestServer(t)
	session := createSession(t, ts, "test")

	postJSON(t, ts.URL+"/api/sessions/"+session.ID+"/move", map[string]string{"direction": "n"}).Body.Close()

	resp := postJSON(t, ts.URL+"/api/sessions/"+session.ID+"/gather", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	var outcome service.ActionOutcome
	decode(t, resp, &outcome)

	if !outcome.Result.Success {
		t.Fatalf("expected successful gather, got %+v", outcome.Result)
	}
	if outcome.PlayerState.ActionPoints != 5 {
		t.Errorf("expected 5 AP after move+gather, got %d", outcome.PlayerState.ActionPoints)
	}
	if outcome.PlayerState.Inventory["wood"] != 3 || outcome.PlayerState.Inventory["herbs"] != 1 {
		t.Errorf("unexpected inventory after gather: %v", outcome.PlayerState.Inventory)
	}
	if len(outcome.Events) == 0 {
		t.Error("expected gather events in the outcome")
	}
}

func TestHomeActionAndRestore(t *testing.T) {
	ts, _ := setupTestServer(t)
	session := createSession(t, ts, "test")

	resp := postJSON(t, ts.URL+"/api/sessions/"+session.ID+"/home-action", nil)
	var outcome service.ActionOutcome
	decode(t, resp, &outcome)

	if !outcome.Result.Success {
		t.Fatalf("expected home action to succeed at home, got %+v", outcome.Result)
	}
	if outcome.PlayerState.ActionPoints != 6 {
		t.Errorf("expected 6 AP after home action, got %d", outcome.PlayerState.ActionPoints)
	}

	resp = postJSON(t, ts.URL+"/api/sessions/"+session.ID+"/restore-ap", nil)
	decode(t, resp, &outcome)

	if !outcome.Result.Success {
		t.Fatalf("restore must always succeed, got %+v", outcome.Result)
	}
	if outcome.PlayerState.ActionPoints != 8 {
		t.Errorf("expected full AP after restore, got %d", outcome.PlayerState.ActionPoints)
	}
}

func TestResetEndpoint(t *testing.T) {
	ts, _ := setupTestServer(t)
	session := createSession(t, ts, "test")

	postJSON(t, ts.URL+"/api/sessions/"+session.ID+"/move", map[string]string{"direction": "n"}).Body.Close()

	resp := postJSON(t, ts.URL+"/api/sessions/"+session.ID+"/reset", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	var body struct {
		Message string             `json:"message"`
		State   engine.PlayerState `json:"state"`
	}
	decode(t, resp, &body)

	if body.Message != "Expedition reset" {
		t.Errorf("unexpected reset message: %q", body.Message)
	}
	if body.State.Position.Q != 0 || body.State.Position.R != 0 {
		t.Errorf("expected home after reset, got %+v", body.State.Position)
	}
	if body.State.ActionPoints != 8 {
		t.Errorf("expected full AP after reset, got %d", body.State.ActionPoints)
	}
}

func TestHistoryEndpoint(t *testing.T) {
	ts, _ := setupTestServer(t)
	session := createSession(t, ts, "test")

	moves := []string{"n", "s", "se", "nw"}
	for _, d := range moves {
		postJSON(t, ts.URL+"/api/sessions/"+session.ID+"/move", map[string]string{"direction": d}).Body.Close()
	}

	resp, err := http.Get(ts.URL + "/api/sessions/" + session.ID + "/history?page=1&limit=3&order=asc")
	if err != nil {
		t.Fatalf("GET history failed: %v", err)
	}

	var history service.HistoryResponse
	decode(t, resp, &history)

	if history.TotalActions != 4 {
		t.Errorf("expected 4 recorded actions, got %d", history.TotalActions)
	}
	if len(history.Actions) != 3 {
		t.Errorf("expected limit=3 page, got %d entries", len(history.Actions))
	}
	if history.TotalPages != 2 || !history.HasNext {
		t.Errorf("unexpected pagination: pages=%d hasNext=%v", history.TotalPages, history.HasNext)
	}
	if history.Actions[0].ActionNumber != 1 {
		t.Errorf("asc order should start at action 1, got %d", history.Actions[0].ActionNumber)
	}
}

func TestMapsEndpoints(t *testing.T) {
	ts, _ := setupTestServer(t)

	resp, err := http.Get(ts.URL + "/api/maps")
	if err != nil {
		t.Fatalf("GET maps failed: %v", err)
	}

	var maps []service.MapInfo
	decode(t, resp, &maps)

	if len(maps) != 1 || maps[0].MapID != "test" {
		t.Fatalf("expected the single test map, got %+v", maps)
	}

	resp, err = http.Get(ts.URL + "/api/maps/test")
	if err != nil {
		t.Fatalf("GET map failed: %v", err)
	}
	var cfg engine.MapConfig
	decode(t, resp, &cfg)
	if cfg.Name != "Test Expedition" || len(cfg.Tiles) != 7 {
		t.Errorf("unexpected map config: %s with %d tiles", cfg.Name, len(cfg.Tiles))
	}

	resp, err = http.Get(ts.URL + "/api/maps/nowhere")
	if err != nil {
		t.Fatalf("GET missing map failed: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("expected 404 for missing map, got %d", resp.StatusCode)
	}
}

func TestCreateMapEndpoint(t *testing.T) {
	ts, _ := setupTestServer(t)

	newMap := engine.DefaultMapConfig()
	newMap.Name = "custom"

	resp := postJSON(t, ts.URL+"/api/maps", newMap)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected 201, got %d", resp.StatusCode)
	}
	resp.Body.Close()

	check, err := http.Get(ts.URL + "/api/maps/custom")
	if err != nil {
		t.Fatalf("GET saved map failed: %v", err)
	}
	var cfg engine.MapConfig
	decode(t, check, &cfg)
	if len(cfg.Tiles) != 52 {
		t.Errorf("expected the saved map's 52 tiles, got %d", len(cfg.Tiles))
	}
}

func TestCreateMapEndpoint_Invalid(t *testing.T) {
	ts, _ := setupTestServer(t)

	bad := engine.DefaultMapConfig()
	bad.Name = "broken"
	bad.Tiles = bad.Tiles[:3] // below the minimum tile count

	resp := postJSON(t, ts.URL+"/api/maps", bad)
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusInternalServerError {
		t.Errorf("expected save of an invalid map to fail, got %d", resp.StatusCode)
	}
}

func TestSessionsOverview(t *testing.T) {
	ts, _ := setupTestServer(t)
	a := createSession(t, ts, "test")
	createSession(t, ts, "test")

	postJSON(t, ts.URL+"/api/sessions/"+a.ID+"/move", map[string]string{"direction": "n"}).Body.Close()
	postJSON(t, ts.URL+"/api/sessions/"+a.ID+"/gather", nil).Body.Close()

	resp, err := http.Get(ts.URL + "/api/sessions/overview")
	if err != nil {
		t.Fatalf("GET overview failed: %v", err)
	}

	var body struct {
		Count    int                      `json:"count"`
		Sessions []map[string]interface{} `json:"sessions"`
	}
	decode(t, resp, &body)

	if body.Count != 2 {
		t.Fatalf("expected 2 sessions in overview, got %d", body.Count)
	}

	var found bool
	for _, s := range body.Sessions {
		if s["session_id"] == a.ID {
			found = true
			if s["total_resources"] != float64(4) {
				t.Errorf("expected 4 total resources for %s, got %v", a.ID, s["total_resources"])
			}
		}
	}
	if !found {
		t.Errorf("session %s missing from overview", a.ID)
	}

	// Filtered overview by explicit IDs.
	resp, err = http.Get(fmt.Sprintf("%s/api/sessions/overview?sessionIds=%s", ts.URL, a.ID))
	if err != nil {
		t.Fatalf("GET filtered overview failed: %v", err)
	}
	decode(t, resp, &body)
	if body.Count != 1 {
		t.Errorf("expected 1 session in filtered overview, got %d", body.Count)
	}
}

func TestWebSocketEndpointValidation(t *testing.T) {
	ts, _ := setupTestServer(t)

	resp, err := http.Get(ts.URL + "/ws")
	if err != nil {
		t.Fatalf("GET /ws failed: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("expected 400 without session param, got %d", resp.StatusCode)
	}

	resp, err = http.Get(ts.URL + "/ws?session=zzzz")
	if err != nil {
		t.Fatalf("GET /ws failed: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("expected 404 for unknown session, got %d", resp.StatusCode)
	}
}
