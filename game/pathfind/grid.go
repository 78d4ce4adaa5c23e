package pathfind

import (
	"fmt"

	"github.com/chenchaotao666/xian-game-2025-sub000/game/state"
)

// CellType represents different types of terrain cells
type CellType string

const (
	Plain      CellType = "plain"
	Mount      CellType = "mount"
	Water      CellType = "water"
	Flag       CellType = "flag"
	Base       CellType = "base"
	OutOfRange CellType = "out_of_range"
)

// IsObstacle reports whether the cell type blocks movement. Only mounts and
// water block; flag and base markers are passable terrain.
func (c CellType) IsObstacle() bool {
	return c == Mount || c == Water || c == OutOfRange
}

// DefaultLegend maps layout characters to cell types, matching the map files
// shipped with the agent.
var DefaultLegend = map[string]CellType{
	".": Plain,
	"M": Mount,
	"W": Water,
	"F": Flag,
	"B": Base,
}

// Grid is the static terrain layer plus a per-turn blocker overlay.
// Cells are indexed [y][x].
type Grid struct {
	cells   [][]CellType
	width   int
	height  int
	overlay map[state.Position]bool
}

// NewGrid builds a grid from layout strings using the given legend. Rows must
// all have the same width. A nil legend falls back to DefaultLegend.
func NewGrid(layout []string, legend map[string]CellType) (*Grid, error) {
	if len(layout) == 0 {
		return nil, fmt.Errorf("layout is empty")
	}
	if legend == nil {
		legend = DefaultLegend
	}

	width := len(layout[0])
	cells := make([][]CellType, len(layout))
	for y, row := range layout {
		if len(row) != width {
			return nil, fmt.Errorf("layout row %d has width %d, expected %d", y, len(row), width)
		}
		cells[y] = make([]CellType, width)
		for x, ch := range row {
			cellType, ok := legend[string(ch)]
			if !ok {
				return nil, fmt.Errorf("unknown layout character %q at (%d,%d)", ch, x, y)
			}
			cells[y][x] = cellType
		}
	}

	return &Grid{
		cells:   cells,
		width:   width,
		height:  len(layout),
		overlay: make(map[state.Position]bool),
	}, nil
}

// Width returns the grid width in cells
func (g *Grid) Width() int { return g.width }

// Height returns the grid height in cells
func (g *Grid) Height() int { return g.height }

// InBounds reports whether the position lies inside the grid
func (g *Grid) InBounds(p state.Position) bool {
	return p.X >= 0 && p.X < g.width && p.Y >= 0 && p.Y < g.height
}

// CellAt returns the static cell type at the position, or OutOfRange when
// the position lies outside the grid.
func (g *Grid) CellAt(p state.Position) CellType {
	if !g.InBounds(p) {
		return OutOfRange
	}
	return g.cells[p.Y][p.X]
}

// IsObstacle reports whether the position blocks movement, considering both
// the static terrain and the per-turn overlay.
func (g *Grid) IsObstacle(p state.Position) bool {
	if !g.InBounds(p) {
		return true
	}
	if g.overlay[p] {
		return true
	}
	return g.cells[p.Y][p.X].IsObstacle()
}

// Walkable reports whether the position is inside the grid and not an obstacle
func (g *Grid) Walkable(p state.Position) bool {
	return g.InBounds(p) && !g.IsObstacle(p)
}

// SetBlocked marks a cell as temporarily blocked for the current turn.
// Blocking a cell outside the grid is a no-op.
func (g *Grid) SetBlocked(p state.Position) {
	if g.InBounds(p) {
		g.overlay[p] = true
	}
}

// ResetOverlay clears all temporary blockers, restoring the static terrain.
// Call it at each turn boundary before installing the new turn's blockers.
func (g *Grid) ResetOverlay() {
	if len(g.overlay) > 0 {
		g.overlay = make(map[state.Position]bool)
	}
}

// FindCells returns the positions of every cell of the given type
func (g *Grid) FindCells(cellType CellType) []state.Position {
	var found []state.Position
	for y := 0; y < g.height; y++ {
		for x := 0; x < g.width; x++ {
			if g.cells[y][x] == cellType {
				found = append(found, state.Position{X: x, Y: y})
			}
		}
	}
	return found
}
