package engine

import (
	"strings"
	"testing"

	"github.com/hexfield/expedition/game/hexmap"
)

func analysisWorld(t *testing.T) *hexmap.Map {
	t.Helper()
	config := createTestConfig()
	if err := ValidateMapConfig(config); err != nil {
		t.Fatalf("test config invalid: %v", err)
	}
	return BuildMap(config)
}

func TestCountTerrain(t *testing.T) {
	world := analysisWorld(t)

	tests := []struct {
		terrain hexmap.Terrain
		want    int
	}{
		{hexmap.Home, 1},
		{hexmap.Plain, 3},
		{hexmap.Forest, 1},
		{hexmap.Mountain, 1},
		{hexmap.Water, 1},
		{hexmap.FarPlain, 0},
	}

	for _, tt := range tests {
		if got := CountTerrain(world, tt.terrain); got != tt.want {
			t.Errorf("CountTerrain(%s) = %d, want %d", tt.terrain, got, tt.want)
		}
	}
}

func TestCountGatherableTiles(t *testing.T) {
	world := analysisWorld(t)

	// Home and the barren plain have empty yields.
	if got := CountGatherableTiles(world); got != 5 {
		t.Errorf("CountGatherableTiles = %d, want 5", got)
	}
}

func TestTotalYield(t *testing.T) {
	world := analysisWorld(t)

	totals := TotalYield(world)
	if totals[hexmap.Wood] != 3+5+3 {
		t.Errorf("wood total = %d, want 11", totals[hexmap.Wood])
	}
	if totals[hexmap.Herbs] != 1+2+1 {
		t.Errorf("herbs total = %d, want 4", totals[hexmap.Herbs])
	}
	if totals[hexmap.Stone] != 4 {
		t.Errorf("stone total = %d, want 4", totals[hexmap.Stone])
	}
}

func TestFarthestFromHome(t *testing.T) {
	world := BuildMap(DefaultMapConfig())

	far, dist := FarthestFromHome(world)
	if dist != 6 {
		t.Errorf("expected the reference map to reach ring 6, got %d", dist)
	}
	if hexmap.Distance(world.Home(), far) != dist {
		t.Error("returned coordinate does not match the returned distance")
	}
}

func TestAnalyzeReturnRisk(t *testing.T) {
	world := analysisWorld(t)

	tests := []struct {
		name string
		pos  hexmap.Coordinate
		ap   int
		want string
	}{
		{"stranded", hexmap.Coordinate{Q: 0, R: -1}, 0, "CRITICAL"},
		{"cannot walk home", hexmap.Coordinate{Q: 1, R: -1}, 0, "CRITICAL"},
		{"no budget for gather", hexmap.Coordinate{Q: 0, R: -1}, 2, "CAUTION"},
		{"low reserves at home", hexmap.Coordinate{Q: 0, R: 0}, 2, "LOW"},
		{"fresh", hexmap.Coordinate{Q: 0, R: 0}, 8, "SAFE"},
		{"far but funded", hexmap.Coordinate{Q: 0, R: -1}, 8, "SAFE"},
	}

	for _, tt := range tests {
		state := &PlayerState{
			Position:     tt.pos,
			ActionPoints: tt.ap,
			MaxAP:        MaxActionPoints,
		}
		got := AnalyzeReturnRisk(state, world)
		if !strings.HasPrefix(got, tt.want) {
			t.Errorf("%s: AnalyzeReturnRisk = %q, want prefix %q", tt.name, got, tt.want)
		}
	}
}

func TestAnalyzeReturnRisk_Danger(t *testing.T) {
	world := BuildMap(DefaultMapConfig())

	state := &PlayerState{
		Position:     hexmap.Coordinate{Q: 0, R: -6},
		ActionPoints: 3,
		MaxAP:        MaxActionPoints,
	}

	if got := AnalyzeReturnRisk(state, world); !strings.HasPrefix(got, "DANGER") {
		t.Errorf("expected DANGER six tiles out with 3 AP, got %q", got)
	}
}
