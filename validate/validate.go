// Command validate provides a small CLI that validates expedition map
// files (JSON or YAML) in a map directory. It checks:
//   - File structure and required fields
//   - Tile-set invariants: exactly one home with an empty yield table,
//     no duplicate coordinates, known terrain and resource names
//   - AP and tile-count bounds
//   - Required message keys
//   - Connectivity: every tile is reachable from home by single steps
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/hexfield/expedition/game/engine"
	"github.com/hexfield/expedition/game/hexmap"
)

// ValidationResult captures the outcome of validating a single file.
// If Valid is true, Errors contains informational messages; otherwise
// it accumulates the validation errors that were found.
type ValidationResult struct {
	File   string
	Valid  bool
	Errors []string
}

// validateMapFile loads and validates a single map file, then gathers
// summary statistics for the report.
func validateMapFile(filePath string) ValidationResult {
	result := ValidationResult{
		File:   filepath.Base(filePath),
		Valid:  true,
		Errors: []string{},
	}

	config, err := engine.LoadMapConfig(filePath)
	if err != nil {
		result.Valid = false
		result.Errors = append(result.Errors, err.Error())
		return result
	}

	world := engine.BuildMap(config)

	result.Errors = append(result.Errors, fmt.Sprintf("✓ Name: %s", config.Name))
	result.Errors = append(result.Errors, fmt.Sprintf("✓ Tiles: %d", world.Size()))
	result.Errors = append(result.Errors, fmt.Sprintf("✓ Max AP: %d", config.MaxAP))
	result.Errors = append(result.Errors, fmt.Sprintf("✓ Gatherable tiles: %d", engine.CountGatherableTiles(world)))

	for _, terrain := range []hexmap.Terrain{
		hexmap.Plain, hexmap.Forest, hexmap.Mountain, hexmap.Water, hexmap.FarPlain,
	} {
		if n := engine.CountTerrain(world, terrain); n > 0 {
			result.Errors = append(result.Errors, fmt.Sprintf("✓ %s tiles: %d", terrain, n))
		}
	}

	far, dist := engine.FarthestFromHome(world)
	result.Errors = append(result.Errors, fmt.Sprintf("✓ Farthest tile: (%d,%d) at distance %d", far.Q, far.R, dist))

	// A round trip to the far edge should be walkable on one AP budget.
	if dist*engine.MoveCost*2 > config.MaxAP {
		result.Errors = append(result.Errors, fmt.Sprintf(
			"note: a round trip to (%d,%d) costs %d AP, more than the %d AP budget; players must restore en route",
			far.Q, far.R, dist*engine.MoveCost*2, config.MaxAP))
	}

	return result
}

// mapFiles lists the validatable files in dir.
func mapFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var files []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		switch strings.ToLower(filepath.Ext(entry.Name())) {
		case ".json", ".yaml", ".yml":
			files = append(files, filepath.Join(dir, entry.Name()))
		}
	}
	return files, nil
}

// main scans the map directory (default ./maps, overridable by the
// first argument), validates each file, prints a concise report, and
// exits non-zero if any file is invalid.
func main() {
	mapDir := "maps"
	if len(os.Args) > 1 {
		mapDir = os.Args[1]
	}

	files, err := mapFiles(mapDir)
	if err != nil {
		fmt.Printf("Error reading map directory: %v\n", err)
		os.Exit(1)
	}

	if len(files) == 0 {
		fmt.Printf("No map files found in %s\n", mapDir)
		os.Exit(1)
	}

	allValid := true
	for _, file := range files {
		result := validateMapFile(file)

		fmt.Printf("\n%s %s\n", strings.Repeat("=", 20), result.File)

		if result.Valid {
			fmt.Println("✅ VALID")
			for _, info := range result.Errors {
				fmt.Println("  " + info)
			}
		} else {
			fmt.Println("❌ INVALID")
			allValid = false
			for _, err := range result.Errors {
				fmt.Println("  ❌ " + err)
			}
		}
	}

	fmt.Printf("\n%s\n", strings.Repeat("=", 40))
	if allValid {
		fmt.Println("✅ All maps are valid!")
	} else {
		fmt.Println("❌ Some maps have errors")
		os.Exit(1)
	}
}
