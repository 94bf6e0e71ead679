package nav

import (
	"errors"
	"fmt"

	"github.com/Faultbox/fishway/pkg/heap"
)

// Search failures. Callers of the request queue only see success=false; the
// distinction is kept for logging and tests.
var (
	ErrStartBlocked = errors.New("start cell is not walkable")
	ErrGoalBlocked  = errors.New("goal cell is not walkable")
	ErrNoPath       = errors.New("no path between start and goal")
	ErrSearchLimit  = errors.New("search expanded too many nodes")
)

// Step costs of the octile metric, scaled by 10 to stay in integers.
const (
	straightCost = 10
	diagonalCost = 14
)

// SearchOptions tunes a single search.
type SearchOptions struct {
	// MaxExpanded bounds the number of nodes moved to the closed set.
	// Zero means unlimited.
	MaxExpanded int
}

// SearchResult is a successful search.
type SearchResult struct {
	Nodes    []*GridNode // Start to goal inclusive
	Cost     int         // gCost of the goal
	Expanded int         // Nodes closed during the search
}

// FindPath runs A* from start to goal on grid. All transient costs live in a
// scratch table private to this call, so concurrent searches may share grid.
func FindPath(grid *NavGrid, start, goal *GridNode, opts SearchOptions) (SearchResult, error) {
	if !start.Walkable {
		return SearchResult{}, ErrStartBlocked
	}
	if !goal.Walkable {
		return SearchResult{}, ErrGoalBlocked
	}

	scratch := make([]searchNode, grid.MaxSize())
	state := func(n *GridNode) *searchNode {
		s := &scratch[n.index]
		if s.node == nil {
			s.node = n
			s.heapIndex = -1
		}
		return s
	}

	open := heap.New[*searchNode](grid.MaxSize())
	first := state(start)
	first.hCost = Distance(start, goal)
	open.Insert(first)

	neighbors := make([]*GridNode, 0, 8)
	expanded := 0

	for open.Len() > 0 {
		current := open.ExtractTop()
		current.closed = true
		expanded++

		if current.node == goal {
			return SearchResult{
				Nodes:    retrace(current),
				Cost:     current.gCost,
				Expanded: expanded,
			}, nil
		}

		if opts.MaxExpanded > 0 && expanded >= opts.MaxExpanded {
			return SearchResult{Expanded: expanded}, fmt.Errorf("%w: limit %d", ErrSearchLimit, opts.MaxExpanded)
		}

		neighbors = grid.appendNeighbors(neighbors[:0], current.node)
		for _, n := range neighbors {
			if !n.Walkable {
				continue
			}
			next := state(n)
			if next.closed {
				continue
			}

			g := current.gCost + Distance(current.node, n) + n.Penalty
			inOpen := open.Contains(next)
			if g < next.gCost || !inOpen {
				next.gCost = g
				next.hCost = Distance(n, goal)
				next.parent = current
				if inOpen {
					open.UpdateItem(next)
				} else {
					open.Insert(next)
				}
			}
		}
	}

	return SearchResult{Expanded: expanded}, ErrNoPath
}

// Distance is the octile distance between two cells: 14 per diagonal step and
// 10 per straight step.
func Distance(a, b *GridNode) int {
	dx := abs(a.GridX - b.GridX)
	dy := abs(a.GridY - b.GridY)
	if dx > dy {
		return diagonalCost*dy + straightCost*(dx-dy)
	}
	return diagonalCost*dx + straightCost*(dy-dx)
}

func retrace(end *searchNode) []*GridNode {
	var path []*GridNode
	for s := end; s != nil; s = s.parent {
		path = append(path, s.node)
	}
	// Reverse path (it's built from goal to start)
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
