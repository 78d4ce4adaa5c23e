// Package pathfind provides the grid model and the movement queries the
// decision core runs against it.
//
// The package has two layers:
//   - Grid + A* search + line of sight: shortest traversable paths over a
//     static terrain grid with 8-directional movement.
//   - Service: convenience queries built on the search layer — distance
//     between two points, nearest of a candidate set, all cells reachable
//     within a bound, and direct-line movement checks.
//
// The grid is built once per match from a layout description and is treated
// as read-only afterwards. A thin per-turn overlay supports temporary
// blockers (for example cells occupied by units this turn) and is cleared by
// ResetOverlay at each turn boundary.
//
// All failure cases — out-of-bounds coordinates, obstacle endpoints, no path
// — are reported through the result's reachability flag rather than errors,
// so callers can score "unreachable" like any other outcome.
package pathfind
