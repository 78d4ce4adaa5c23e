package strategy

import (
	"github.com/chenchaotao666/xian-game-2025-sub000/game/pathfind"
	"github.com/chenchaotao666/xian-game-2025-sub000/game/state"
)

// positioned filters heroes down to the ones with a known position
func positioned(heroes []*state.Hero) []*state.Hero {
	var out []*state.Hero
	for _, h := range heroes {
		if h.Position != nil {
			out = append(out, h)
		}
	}
	return out
}

// power is the aggregate combat strength of a unit set
func power(heroes []*state.Hero) float64 {
	total := 0.0
	for _, h := range heroes {
		total += float64(h.Attack) + 0.01*float64(h.Life)
	}
	return total
}

// averageHealthPercent returns the mean health percentage of a unit set
func averageHealthPercent(heroes []*state.Hero) float64 {
	if len(heroes) == 0 {
		return 0
	}
	total := 0.0
	for _, h := range heroes {
		total += h.HealthPercent()
	}
	return total / float64(len(heroes))
}

// geometricCenter returns the average position of a unit set, rounded to the
// nearest cell
func geometricCenter(heroes []*state.Hero) (state.Position, bool) {
	if len(heroes) == 0 {
		return state.Position{}, false
	}
	sumX, sumY := 0, 0
	for _, h := range heroes {
		sumX += h.Position.X
		sumY += h.Position.Y
	}
	n := len(heroes)
	return state.Position{
		X: (sumX + n/2) / n,
		Y: (sumY + n/2) / n,
	}, true
}

// averageRealDistance returns the mean path distance from the given units to
// target. Units that cannot reach the target are skipped; ok is false when
// none can.
func (e *Evaluator) averageRealDistance(heroes []*state.Hero, target state.Position) (float64, bool) {
	total, reachable := 0, 0
	for _, h := range heroes {
		r := e.distance.Distance(*h.Position, target)
		if !r.Reachable {
			continue
		}
		total += r.RealDistance
		reachable++
	}
	if reachable == 0 {
		return 0, false
	}
	return float64(total) / float64(reachable), true
}

// pairwiseSpread returns the average pairwise path distance among the units.
// Meaningful only with two or more units; ok is false otherwise.
func (e *Evaluator) pairwiseSpread(heroes []*state.Hero) (float64, bool) {
	if len(heroes) < 2 {
		return 0, false
	}
	total, pairs := 0, 0
	for i := 0; i < len(heroes); i++ {
		for j := i + 1; j < len(heroes); j++ {
			r := e.distance.Distance(*heroes[i].Position, *heroes[j].Position)
			if !r.Reachable {
				continue
			}
			total += r.RealDistance
			pairs++
		}
	}
	if pairs == 0 {
		return 0, false
	}
	return float64(total) / float64(pairs), true
}

// enemiesNear counts living enemy units within radius of the position,
// measured by straight-line distance.
func enemiesNear(enemies []*state.Hero, pos state.Position, radius int) int {
	count := 0
	for _, enemy := range enemies {
		if enemy.Position == nil {
			continue
		}
		if pathfind.Chebyshev(*enemy.Position, pos) <= radius {
			count++
		}
	}
	return count
}

// nearestWalkable returns pos itself when walkable, otherwise the closest
// walkable cell in an expanding ring scan. ok is false when none is found
// within the scan bound.
func (e *Evaluator) nearestWalkable(pos state.Position) (state.Position, bool) {
	grid := e.distance.Grid()
	if grid.Walkable(pos) {
		return pos, true
	}
	for radius := 1; radius <= 4; radius++ {
		for dy := -radius; dy <= radius; dy++ {
			for dx := -radius; dx <= radius; dx++ {
				if dx == 0 && dy == 0 {
					continue
				}
				candidate := state.Position{X: pos.X + dx, Y: pos.Y + dy}
				if grid.Walkable(candidate) {
					return candidate, true
				}
			}
		}
	}
	return state.Position{}, false
}
