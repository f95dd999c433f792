package websocket

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"github.com/hexfield/expedition/game/engine"
	"github.com/hexfield/expedition/game/hexmap"
)

func TestNewHub(t *testing.T) {
	hub := NewHub()

	if hub == nil {
		t.Fatal("NewHub() returned nil")
	}
	if hub.sessions == nil {
		t.Error("Hub sessions map is nil")
	}
	if hub.broadcast == nil {
		t.Error("Hub broadcast channel is nil")
	}
	if hub.register == nil {
		t.Error("Hub register channel is nil")
	}
	if hub.unregister == nil {
		t.Error("Hub unregister channel is nil")
	}
}

func TestRegisterAndUnregisterClient(t *testing.T) {
	hub := NewHub()

	client := &Client{
		hub:       hub,
		send:      make(chan []byte, engine.WebSocketBufferSize),
		sessionID: "ab12",
	}

	hub.registerClient(client)
	if len(hub.sessions["ab12"]) != 1 {
		t.Fatalf("expected 1 client in session, got %d", len(hub.sessions["ab12"]))
	}

	hub.unregisterClient(client)
	if _, exists := hub.sessions["ab12"]; exists {
		t.Error("empty session should be removed from the hub")
	}
}

func TestBroadcastToSession(t *testing.T) {
	hub := NewHub()

	client := &Client{
		hub:       hub,
		send:      make(chan []byte, engine.WebSocketBufferSize),
		sessionID: "ab12",
	}
	other := &Client{
		hub:       hub,
		send:      make(chan []byte, engine.WebSocketBufferSize),
		sessionID: "cd34",
	}
	hub.registerClient(client)
	hub.registerClient(other)

	state := engine.PlayerState{
		Position:     hexmap.Coordinate{Q: 0, R: -1},
		ActionPoints: 7,
		MaxAP:        engine.MaxActionPoints,
		Inventory:    map[hexmap.Resource]int{hexmap.Wood: 3},
	}
	hub.BroadcastToSession("ab12", state)

	select {
	case data := <-client.send:
		var msg Message
		if err := json.Unmarshal(data, &msg); err != nil {
			t.Fatalf("failed to decode message: %v", err)
		}
		if msg.SessionID != "ab12" || msg.Event != "state_update" {
			t.Errorf("unexpected message envelope: %+v", msg)
		}
		if msg.PlayerState == nil || msg.PlayerState.ActionPoints != 7 {
			t.Errorf("unexpected snapshot: %+v", msg.PlayerState)
		}
	default:
		t.Fatal("expected a broadcast message for session ab12")
	}

	select {
	case <-other.send:
		t.Error("broadcast leaked into another session")
	default:
	}
}

func TestBroadcastDropsSlowClient(t *testing.T) {
	hub := NewHub()

	// A full, unbuffered send channel marks the client as slow.
	client := &Client{
		hub:       hub,
		send:      make(chan []byte),
		sessionID: "ab12",
	}
	hub.registerClient(client)

	hub.BroadcastToSession("ab12", engine.PlayerState{})

	if _, exists := hub.sessions["ab12"]; exists {
		t.Error("slow client should have been unregistered")
	}
}

func TestServeWSUpgradeAndReceive(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hub.ServeWS(w, r, "ab12")
	}))
	defer server.Close()

	url := "ws" + strings.TrimPrefix(server.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("failed to dial websocket: %v", err)
	}
	defer conn.Close()

	// Give the hub time to register the client.
	time.Sleep(50 * time.Millisecond)

	state := engine.PlayerState{ActionPoints: 5, MaxAP: engine.MaxActionPoints}
	hub.BroadcastToSession("ab12", state)

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, data, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("failed to read broadcast: %v", err)
	}

	var msg Message
	if err := json.Unmarshal(data, &msg); err != nil {
		t.Fatalf("failed to decode message: %v", err)
	}
	if msg.PlayerState == nil || msg.PlayerState.ActionPoints != 5 {
		t.Errorf("unexpected snapshot: %+v", msg.PlayerState)
	}
}
