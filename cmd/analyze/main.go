// Command analyze prints quick, human-readable heuristics about
// expedition map files. It summarizes terrain composition, per-resource
// yield totals, a ring histogram around the home tile, and highlights
// tiles whose round trip from home exceeds the AP budget.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/hexfield/expedition/game/engine"
	"github.com/hexfield/expedition/game/hexmap"
)

func main() {
	mapDir := "maps"
	if len(os.Args) > 1 {
		mapDir = os.Args[1]
	}

	entries, err := os.ReadDir(mapDir)
	if err != nil {
		fmt.Printf("Error reading map directory: %v\n", err)
		os.Exit(1)
	}

	analyzed := 0
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		switch strings.ToLower(filepath.Ext(entry.Name())) {
		case ".json", ".yaml", ".yml":
		default:
			continue
		}

		fmt.Printf("\n=== Analyzing %s ===\n", entry.Name())
		analyzeMap(filepath.Join(mapDir, entry.Name()))
		analyzed++
	}

	if analyzed == 0 {
		fmt.Printf("No map files found in %s\n", mapDir)
		os.Exit(1)
	}
}

func analyzeMap(path string) {
	config, err := engine.LoadMapConfig(path)
	if err != nil {
		fmt.Printf("Error loading map: %v\n", err)
		return
	}

	world := engine.BuildMap(config)

	fmt.Printf("Name: %s\n", config.Name)
	fmt.Printf("Tiles: %d\n", world.Size())
	fmt.Printf("Max AP: %d\n", config.MaxAP)
	fmt.Printf("Home: (%d,%d)\n", world.Home().Q, world.Home().R)

	fmt.Println("Terrain composition:")
	for _, terrain := range []hexmap.Terrain{
		hexmap.Home, hexmap.Plain, hexmap.Forest, hexmap.Mountain, hexmap.Water, hexmap.FarPlain,
	} {
		if n := engine.CountTerrain(world, terrain); n > 0 {
			fmt.Printf("  %-10s %d\n", terrain, n)
		}
	}

	fmt.Printf("Gatherable tiles: %d of %d\n", engine.CountGatherableTiles(world), world.Size())

	totals := engine.TotalYield(world)
	if len(totals) > 0 {
		fmt.Println("Per-gather yield totals across the map:")
		resources := make([]string, 0, len(totals))
		for res := range totals {
			resources = append(resources, string(res))
		}
		sort.Strings(resources)
		for _, res := range resources {
			fmt.Printf("  %-8s %d\n", res, totals[hexmap.Resource(res)])
		}
	}

	printRingHistogram(world)

	far, dist := engine.FarthestFromHome(world)
	fmt.Printf("Farthest tile: (%d,%d) at distance %d\n", far.Q, far.R, dist)

	// Tiles whose out-and-back walk alone exceeds one AP budget.
	beyond := tilesBeyondBudget(world, config.MaxAP)
	if len(beyond) > 0 {
		fmt.Printf("⚠️  %d tiles need an AP restore to visit and return:\n", len(beyond))
		for i, c := range beyond {
			if i >= 5 {
				fmt.Printf("   ... and %d more\n", len(beyond)-5)
				break
			}
			fmt.Printf("   (%d,%d) round trip costs %d AP\n", c.Q, c.R, hexmap.Distance(world.Home(), c)*2*engine.MoveCost)
		}
	} else {
		fmt.Println("✅ Every tile is a round trip within one AP budget")
	}
}

// printRingHistogram prints tile counts by hex distance from home.
func printRingHistogram(world *hexmap.Map) {
	rings := make(map[int]int)
	maxRing := 0
	for _, c := range world.Coordinates() {
		d := hexmap.Distance(world.Home(), c)
		rings[d]++
		if d > maxRing {
			maxRing = d
		}
	}

	fmt.Println("Tiles by ring:")
	for d := 0; d <= maxRing; d++ {
		fmt.Printf("  ring %d: %-3d %s\n", d, rings[d], strings.Repeat("#", rings[d]))
	}
}

// tilesBeyondBudget lists tiles whose walk out and back costs more AP
// than one full budget, sorted by distance descending.
func tilesBeyondBudget(world *hexmap.Map, maxAP int) []hexmap.Coordinate {
	var beyond []hexmap.Coordinate
	home := world.Home()
	for _, c := range world.Coordinates() {
		if hexmap.Distance(home, c)*2*engine.MoveCost > maxAP {
			beyond = append(beyond, c)
		}
	}
	sort.Slice(beyond, func(i, j int) bool {
		return hexmap.Distance(home, beyond[i]) > hexmap.Distance(home, beyond[j])
	})
	return beyond
}
