package pathfind

import (
	"sort"

	"github.com/chenchaotao666/xian-game-2025-sub000/game/state"
)

// UnreachableDistance is the real-distance value reported when no path exists
const UnreachableDistance = -1

// DistanceResult describes how two positions relate on the grid
type DistanceResult struct {
	StraightDistance int              `json:"straight_distance"`
	RealDistance     int              `json:"real_distance"` // -1 when unreachable
	Reachable        bool             `json:"reachable"`
	Path             []state.Position `json:"path,omitempty"`
}

// CellDistance pairs a grid cell with its distance from some origin
type CellDistance struct {
	Position state.Position `json:"position"`
	Distance int            `json:"distance"`
}

// Service answers distance and reachability queries over a grid. All methods
// are pure queries; none mutate the grid or any caller-visible state.
type Service struct {
	grid *Grid
}

// NewService creates a distance service over the given grid
func NewService(grid *Grid) *Service {
	return &Service{grid: grid}
}

// Grid exposes the underlying grid for callers that need direct path queries
func (s *Service) Grid() *Grid {
	return s.grid
}

// Distance computes straight-line and real path distance between a and b.
// Equal positions short-circuit to a trivial single-cell path.
func (s *Service) Distance(a, b state.Position) DistanceResult {
	if a == b && s.grid.Walkable(a) {
		return DistanceResult{
			StraightDistance: 0,
			RealDistance:     0,
			Reachable:        true,
			Path:             []state.Position{a},
		}
	}

	result := DistanceResult{
		StraightDistance: Chebyshev(a, b),
		RealDistance:     UnreachableDistance,
	}

	path := s.grid.FindPath(a, b)
	if path == nil {
		return result
	}

	result.RealDistance = len(path) - 1
	result.Reachable = true
	result.Path = path
	return result
}

// Nearest returns the closest candidate to origin along with its
// DistanceResult and its index in the input slice. With useRealDistance the
// selection uses path distance and skips unreachable candidates; otherwise it
// uses the straight-line metric. ok is false when no candidate qualifies.
func (s *Service) Nearest(origin state.Position, candidates []state.Position, useRealDistance bool) (index int, result DistanceResult, ok bool) {
	bestIndex := -1
	var bestResult DistanceResult

	for i, candidate := range candidates {
		r := s.Distance(origin, candidate)

		var metric int
		if useRealDistance {
			if !r.Reachable {
				continue
			}
			metric = r.RealDistance
		} else {
			metric = r.StraightDistance
		}

		if bestIndex == -1 || metric < s.metricOf(bestResult, useRealDistance) {
			bestIndex = i
			bestResult = r
		}
	}

	if bestIndex == -1 {
		return -1, DistanceResult{RealDistance: UnreachableDistance}, false
	}
	return bestIndex, bestResult, true
}

func (s *Service) metricOf(r DistanceResult, useRealDistance bool) int {
	if useRealDistance {
		return r.RealDistance
	}
	return r.StraightDistance
}

// ReachableWithin returns every non-obstacle cell within maxDistance of
// origin, sorted ascending by the chosen metric. The origin itself is
// included at distance 0.
func (s *Service) ReachableWithin(origin state.Position, maxDistance int, useRealDistance bool) []CellDistance {
	if maxDistance < 0 || !s.grid.Walkable(origin) {
		return nil
	}

	var cells []CellDistance
	for y := 0; y < s.grid.Height(); y++ {
		for x := 0; x < s.grid.Width(); x++ {
			p := state.Position{X: x, Y: y}
			if !s.grid.Walkable(p) {
				continue
			}

			if useRealDistance {
				// Cheap pre-filter: the real distance is never below Chebyshev.
				if Chebyshev(origin, p) > maxDistance {
					continue
				}
				r := s.Distance(origin, p)
				if !r.Reachable || r.RealDistance > maxDistance {
					continue
				}
				cells = append(cells, CellDistance{Position: p, Distance: r.RealDistance})
			} else {
				d := Chebyshev(origin, p)
				if d > maxDistance {
					continue
				}
				cells = append(cells, CellDistance{Position: p, Distance: d})
			}
		}
	}

	sort.SliceStable(cells, func(i, j int) bool {
		return cells[i].Distance < cells[j].Distance
	})
	return cells
}

// CanMoveDirectly reports whether a straight ray from a to b is free of
// obstacles
func (s *Service) CanMoveDirectly(a, b state.Position) bool {
	return s.grid.LineOfSight(a, b)
}
