// Command validate provides a small CLI that validates map configuration
// JSON files before they are shipped to a contest. It checks:
//   - JSON structure and layout consistency
//   - Allowed terrain characters (., M, W, F, B by default)
//   - Tunable sanity (attack range, supply floors)
//   - Connectivity: walkable terrain forms a single connected region, so no
//     unit can spawn somewhere the objectives cannot be reached from
package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/chenchaotao666/xian-game-2025-sub000/game/config"
	"github.com/chenchaotao666/xian-game-2025-sub000/game/pathfind"
	"github.com/chenchaotao666/xian-game-2025-sub000/game/state"
)

// ValidationResult captures the outcome of validating a single file.
// If Valid is true, Errors contains informational messages; otherwise it
// accumulates the validation errors that were found.
type ValidationResult struct {
	File   string
	Valid  bool
	Errors []string
}

// validateConfig loads and validates a single configuration JSON file
func validateConfig(filePath string) ValidationResult {
	result := ValidationResult{
		File:   filepath.Base(filePath),
		Valid:  true,
		Errors: []string{},
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		result.Valid = false
		result.Errors = append(result.Errors, fmt.Sprintf("Failed to read file: %v", err))
		return result
	}

	var cfg config.BotConfig
	if err := json.Unmarshal(data, &cfg); err != nil {
		result.Valid = false
		result.Errors = append(result.Errors, fmt.Sprintf("Invalid JSON: %v", err))
		return result
	}

	if err := config.Validate(&cfg); err != nil {
		result.Valid = false
		result.Errors = append(result.Errors, err.Error())
		return result
	}

	grid, err := cfg.BuildGrid()
	if err != nil {
		result.Valid = false
		result.Errors = append(result.Errors, fmt.Sprintf("Invalid layout: %v", err))
		return result
	}

	counts := countCells(grid)
	if counts[pathfind.Plain]+counts[pathfind.Flag]+counts[pathfind.Base] == 0 {
		result.Valid = false
		result.Errors = append(result.Errors, "Map has no walkable cells")
		return result
	}

	if connectivity := validateConnectivity(grid); !connectivity.Valid {
		result.Valid = false
		result.Errors = append(result.Errors, connectivity.Errors...)
		return result
	} else {
		result.Errors = append(result.Errors, connectivity.Errors...)
	}

	result.Errors = append(result.Errors, fmt.Sprintf("✓ Name: %s", cfg.Name))
	result.Errors = append(result.Errors, fmt.Sprintf("✓ Grid: %dx%d", grid.Width(), grid.Height()))
	result.Errors = append(result.Errors, fmt.Sprintf("✓ Flags: %d", counts[pathfind.Flag]))
	result.Errors = append(result.Errors, fmt.Sprintf("✓ Bases: %d", counts[pathfind.Base]))
	result.Errors = append(result.Errors, fmt.Sprintf("✓ Obstacles: %d mount, %d water",
		counts[pathfind.Mount], counts[pathfind.Water]))
	result.Errors = append(result.Errors, fmt.Sprintf("✓ Supply floors: %d/%d",
		cfg.SupplyHardFloor, cfg.SupplySoftFloor))
	return result
}

// countCells tallies every cell type on the grid
func countCells(grid *pathfind.Grid) map[pathfind.CellType]int {
	counts := make(map[pathfind.CellType]int)
	for y := 0; y < grid.Height(); y++ {
		for x := 0; x < grid.Width(); x++ {
			counts[grid.CellAt(state.Position{X: x, Y: y})]++
		}
	}
	return counts
}

// validateConnectivity checks that walkable terrain forms a single
// 4-connected region. Orthogonal adjacency is deliberately stricter than the
// engine's 8-directional movement: a map that passes here is traversable
// under any corner rule.
func validateConnectivity(grid *pathfind.Grid) ValidationResult {
	result := ValidationResult{
		Valid:  true,
		Errors: []string{},
	}

	var start *state.Position
	walkable := 0
	for y := 0; y < grid.Height(); y++ {
		for x := 0; x < grid.Width(); x++ {
			p := state.Position{X: x, Y: y}
			if !grid.IsObstacle(p) {
				walkable++
				if start == nil {
					start = &p
				}
			}
		}
	}
	if start == nil {
		result.Valid = false
		result.Errors = append(result.Errors, "Cannot validate connectivity: no walkable cells")
		return result
	}

	visited := make(map[state.Position]bool)
	queue := []state.Position{*start}
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		if visited[current] {
			continue
		}
		visited[current] = true

		directions := []state.Position{{X: -1}, {X: 1}, {Y: -1}, {Y: 1}}
		for _, dir := range directions {
			next := state.Position{X: current.X + dir.X, Y: current.Y + dir.Y}
			if !visited[next] && grid.InBounds(next) && !grid.IsObstacle(next) {
				queue = append(queue, next)
			}
		}
	}

	if len(visited) != walkable {
		result.Valid = false
		result.Errors = append(result.Errors,
			fmt.Sprintf("Connectivity failure: %d of %d walkable cells unreachable from (%d,%d)",
				walkable-len(visited), walkable, start.X, start.Y))
		return result
	}

	result.Errors = append(result.Errors,
		fmt.Sprintf("✓ Connectivity: all %d walkable cells form one region", walkable))
	return result
}

// main scans the config directory for *.json files and validates each one,
// printing a concise report and exiting non-zero if any are invalid
func main() {
	configDir := "configs"
	if len(os.Args) > 1 {
		configDir = os.Args[1]
	}

	files, err := filepath.Glob(filepath.Join(configDir, "*.json"))
	if err != nil {
		fmt.Printf("Error finding config files: %v\n", err)
		os.Exit(1)
	}
	if len(files) == 0 {
		fmt.Printf("No config files found in %s\n", configDir)
		os.Exit(1)
	}

	allValid := true
	for _, file := range files {
		result := validateConfig(file)

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
				if !strings.HasPrefix(err, "✓") {
					fmt.Println("  ❌ " + err)
				}
			}
		}
	}

	fmt.Printf("\n%s\n", strings.Repeat("=", 40))
	if allValid {
		fmt.Println("✅ All configurations are valid!")
	} else {
		fmt.Println("❌ Some configurations have errors")
		os.Exit(1)
	}
}
