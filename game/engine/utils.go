package engine

import (
	"github.com/hexfield/expedition/game/hexmap"
)

// CountTerrain counts the tiles of a given terrain class in the map
func CountTerrain(world *hexmap.Map, terrain hexmap.Terrain) int {
	count := 0
	for _, c := range world.Coordinates() {
		if world.TileAt(c).Terrain == terrain {
			count++
		}
	}
	return count
}

// CountGatherableTiles counts the tiles with a non-empty yield table
func CountGatherableTiles(world *hexmap.Map) int {
	count := 0
	for _, c := range world.Coordinates() {
		if world.TileAt(c).HasYield() {
			count++
		}
	}
	return count
}

// TotalYield sums the per-gather yields of every tile, by resource
func TotalYield(world *hexmap.Map) map[hexmap.Resource]int {
	totals := make(map[hexmap.Resource]int)
	for _, c := range world.Coordinates() {
		for res, amount := range world.TileAt(c).Yield {
			totals[res] += amount
		}
	}
	return totals
}

// FarthestFromHome returns the coordinate at the greatest hex distance
// from the home tile, with that distance.
func FarthestFromHome(world *hexmap.Map) (hexmap.Coordinate, int) {
	home := world.Home()
	best := home
	bestDist := 0
	for _, c := range world.Coordinates() {
		if d := hexmap.Distance(home, c); d > bestDist {
			best = c
			bestDist = d
		}
	}
	return best, bestDist
}

// AnalyzeReturnRisk assesses whether the player's remaining AP covers
// the walk back to the home tile.
func AnalyzeReturnRisk(state *PlayerState, world *hexmap.Map) string {
	distHome := hexmap.Distance(state.Position, world.Home())

	switch {
	case state.ActionPoints == 0 && distHome > 0:
		return "CRITICAL: No action points left away from home"
	case state.ActionPoints < distHome*MoveCost:
		return "DANGER: Not enough AP to walk home"
	case state.ActionPoints < distHome*MoveCost+GatherCost:
		return "CAUTION: Gathering again would strand you past your AP budget"
	case state.ActionPoints <= state.MaxAP/3:
		return "LOW: Consider restoring action points"
	default:
		return "SAFE: AP budget sufficient"
	}
}
