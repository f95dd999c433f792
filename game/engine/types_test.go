package engine

import (
	"testing"

	"github.com/hexfield/expedition/game/hexmap"
)

func TestSnapshotIsDetached(t *testing.T) {
	eng := mustEngine(t, createTestConfig())
	eng.Move(hexmap.North)
	eng.Gather()

	snap := eng.Snapshot()
	snap.Inventory[hexmap.Wood] = 999
	snap.ActionPoints = 0

	if eng.GetInventory()[hexmap.Wood] == 999 {
		t.Error("snapshot inventory aliases the engine state")
	}
	if eng.GetActionPoints() == 0 {
		t.Error("snapshot aliases the engine AP balance")
	}
}

func TestGetInventoryReturnsCopy(t *testing.T) {
	eng := mustEngine(t, createTestConfig())
	eng.Move(hexmap.North)
	eng.Gather()

	inv := eng.GetInventory()
	inv[hexmap.Wood] = 999

	if eng.GetInventory()[hexmap.Wood] == 999 {
		t.Error("GetInventory must return a copy")
	}
}

func TestNeighborView(t *testing.T) {
	eng := mustEngine(t, createTestConfig())

	view := eng.NeighborView()
	if len(view) != 6 {
		t.Fatalf("expected 6 neighbor entries, got %d", len(view))
	}

	byDirection := make(map[hexmap.Direction]NeighborTile)
	for _, nt := range view {
		byDirection[nt.Direction] = nt
	}

	if nt := byDirection[hexmap.North]; !nt.Exists || nt.Terrain != hexmap.Plain {
		t.Errorf("unexpected north view: %+v", nt)
	}
	if nt := byDirection[hexmap.SouthEast]; !nt.Exists || nt.Glyph != "A" {
		t.Errorf("unexpected southeast view: %+v", nt)
	}
}

func TestFormatYield(t *testing.T) {
	got := formatYield(map[hexmap.Resource]int{hexmap.Wood: 3, hexmap.Herbs: 1})
	if got != "herbs x1, wood x3" {
		t.Errorf("formatYield = %q", got)
	}
}
