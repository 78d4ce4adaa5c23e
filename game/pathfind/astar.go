package pathfind

import (
	"container/heap"

	"github.com/chenchaotao666/xian-game-2025-sub000/game/state"
)

type neighborOffset struct {
	dx, dy   int
	diagonal bool
}

var neighborOffsets = [...]neighborOffset{
	{dx: 0, dy: -1},
	{dx: 1, dy: 0},
	{dx: 0, dy: 1},
	{dx: -1, dy: 0},
	{dx: 1, dy: -1, diagonal: true},
	{dx: 1, dy: 1, diagonal: true},
	{dx: -1, dy: 1, diagonal: true},
	{dx: -1, dy: -1, diagonal: true},
}

// Chebyshev returns the 8-directional straight-line distance between two
// positions: the number of king moves ignoring obstacles.
func Chebyshev(a, b state.Position) int {
	dx := a.X - b.X
	if dx < 0 {
		dx = -dx
	}
	dy := a.Y - b.Y
	if dy < 0 {
		dy = -dy
	}
	if dx > dy {
		return dx
	}
	return dy
}

type searchNode struct {
	pos      state.Position
	gCost    int // steps from start
	fCost    int // gCost + heuristic
	parent   *searchNode
	order    int // insertion order, breaks fCost ties
	heapIdx  int
	closed   bool
	inFlight bool
}

type nodeQueue []*searchNode

func (q nodeQueue) Len() int { return len(q) }

func (q nodeQueue) Less(i, j int) bool {
	if q[i].fCost != q[j].fCost {
		return q[i].fCost < q[j].fCost
	}
	return q[i].order < q[j].order
}

func (q nodeQueue) Swap(i, j int) {
	q[i], q[j] = q[j], q[i]
	q[i].heapIdx = i
	q[j].heapIdx = j
}

func (q *nodeQueue) Push(x any) {
	node := x.(*searchNode)
	node.heapIdx = len(*q)
	*q = append(*q, node)
}

func (q *nodeQueue) Pop() any {
	old := *q
	n := len(old)
	node := old[n-1]
	old[n-1] = nil
	*q = old[:n-1]
	return node
}

// canStepDiagonal applies the permissive corner rule: a diagonal step is
// blocked only when both orthogonal neighbors of the step are obstacles.
// Sliding past a single obstacle corner is allowed.
func (g *Grid) canStepDiagonal(from state.Position, off neighborOffset) bool {
	if !off.diagonal {
		return true
	}
	horiz := state.Position{X: from.X + off.dx, Y: from.Y}
	vert := state.Position{X: from.X, Y: from.Y + off.dy}
	return g.Walkable(horiz) || g.Walkable(vert)
}

// FindPath returns the shortest path from start to end inclusive, using A*
// with 8-directional movement, unit step cost and the Chebyshev heuristic.
// It returns nil when no path exists or either endpoint is invalid.
// When start equals end the path is the single start cell.
func (g *Grid) FindPath(start, end state.Position) []state.Position {
	if !g.Walkable(start) || !g.Walkable(end) {
		return nil
	}
	if start == end {
		return []state.Position{start}
	}

	nodes := make(map[state.Position]*searchNode)
	open := &nodeQueue{}
	heap.Init(open)
	order := 0

	startNode := &searchNode{
		pos:      start,
		gCost:    0,
		fCost:    Chebyshev(start, end),
		order:    order,
		inFlight: true,
	}
	nodes[start] = startNode
	heap.Push(open, startNode)

	for open.Len() > 0 {
		current := heap.Pop(open).(*searchNode)
		current.inFlight = false
		current.closed = true

		if current.pos == end {
			return reconstructPath(current)
		}

		for _, off := range neighborOffsets {
			next := state.Position{X: current.pos.X + off.dx, Y: current.pos.Y + off.dy}
			if !g.Walkable(next) {
				continue
			}
			if !g.canStepDiagonal(current.pos, off) {
				continue
			}

			gCost := current.gCost + 1
			node, seen := nodes[next]
			if seen && node.closed {
				continue
			}
			if seen && node.inFlight {
				if gCost < node.gCost {
					node.gCost = gCost
					node.fCost = gCost + Chebyshev(next, end)
					node.parent = current
					heap.Fix(open, node.heapIdx)
				}
				continue
			}

			order++
			node = &searchNode{
				pos:      next,
				gCost:    gCost,
				fCost:    gCost + Chebyshev(next, end),
				parent:   current,
				order:    order,
				inFlight: true,
			}
			nodes[next] = node
			heap.Push(open, node)
		}
	}

	return nil
}

func reconstructPath(node *searchNode) []state.Position {
	var reversed []state.Position
	for n := node; n != nil; n = n.parent {
		reversed = append(reversed, n.pos)
	}
	path := make([]state.Position, len(reversed))
	for i, p := range reversed {
		path[len(path)-1-i] = p
	}
	return path
}
