package pathfind

import "github.com/chenchaotao666/xian-game-2025-sub000/game/state"

// LineOfSight reports whether the straight ray from a to b crosses any
// obstacle cell. It rasterizes the ray with an integer-only Bresenham walk.
// The start cell is never treated as a blocker for its own ray; the end cell
// is checked like any other.
func (g *Grid) LineOfSight(a, b state.Position) bool {
	if !g.InBounds(a) || !g.InBounds(b) {
		return false
	}

	dx := b.X - a.X
	if dx < 0 {
		dx = -dx
	}
	dy := b.Y - a.Y
	if dy < 0 {
		dy = -dy
	}

	sx := 1
	if a.X > b.X {
		sx = -1
	}
	sy := 1
	if a.Y > b.Y {
		sy = -1
	}

	x, y := a.X, a.Y
	err := dx - dy

	for {
		if !(x == a.X && y == a.Y) && g.IsObstacle(state.Position{X: x, Y: y}) {
			return false
		}
		if x == b.X && y == b.Y {
			return true
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x += sx
		}
		if e2 < dx {
			err += dx
			y += sy
		}
	}
}
