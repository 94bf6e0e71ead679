// Package nav implements tile-grid pathfinding: the navigation grid, A* search,
// path simplification with turn boundaries, and an asynchronous request queue.
package nav

import (
	"github.com/Faultbox/fishway/pkg/math"
)

// GridNode is one cell of a NavGrid. Nodes are created once when the grid is
// built and are read-only afterwards; search state lives in per-search scratch
// records, not here.
type GridNode struct {
	Walkable      bool
	WorldPosition math.Vec3
	GridX, GridY  int
	Penalty       int // Extra cost for entering this cell

	index int
}

// Index returns the node's flat index in its grid.
func (n *GridNode) Index() int {
	return n.index
}

// searchNode is the transient A* state for one GridNode during one search.
type searchNode struct {
	node      *GridNode
	gCost     int
	hCost     int
	parent    *searchNode
	heapIndex int
	closed    bool
}

func (s *searchNode) fCost() int {
	return s.gCost + s.hCost
}

// Less orders by fCost, then prefers the node closer to the goal.
func (s *searchNode) Less(other *searchNode) bool {
	if f, of := s.fCost(), other.fCost(); f != of {
		return f < of
	}
	return s.hCost < other.hCost
}

func (s *searchNode) HeapIndex() int     { return s.heapIndex }
func (s *searchNode) SetHeapIndex(i int) { s.heapIndex = i }
