package nav

import (
	"errors"
	"fmt"
	stdmath "math"

	"github.com/Faultbox/fishway/pkg/math"
)

// Grid construction errors.
var (
	ErrInvalidNodeRadius = errors.New("node radius must be positive")
	ErrInvalidWorldSize  = errors.New("world size must be positive in both axes")
)

// WalkableFunc reports whether a cell centered at pos can be entered.
type WalkableFunc func(pos math.Vec3) bool

// PenaltyFunc returns the extra movement cost of a walkable cell centered at pos.
type PenaltyFunc func(pos math.Vec3) int

// GridOption customizes BuildNavGrid.
type GridOption func(*NavGrid)

// WithPenalty assigns a movement penalty to every walkable cell.
func WithPenalty(fn PenaltyFunc) GridOption {
	return func(g *NavGrid) { g.penalty = fn }
}

// WithoutCornerCutting drops diagonal neighbors whose two orthogonal
// neighbors are not both walkable.
func WithoutCornerCutting() GridOption {
	return func(g *NavGrid) { g.noCornerCutting = true }
}

// NavGrid maps the XZ plane onto a rectangle of square cells.
type NavGrid struct {
	origin     math.Vec3 // World-space center of the grid
	worldSize  math.Vec2
	nodeRadius float32
	sizeX      int
	sizeY      int
	nodes      [][]*GridNode // Indexed [x][y]

	penalty         PenaltyFunc
	noCornerCutting bool
	walkableCount   int
}

// BuildNavGrid samples isWalkable at every cell center and builds the grid.
// A nil isWalkable makes every cell walkable.
func BuildNavGrid(origin math.Vec3, worldSize math.Vec2, nodeRadius float32, isWalkable WalkableFunc, opts ...GridOption) (*NavGrid, error) {
	if !(nodeRadius > 0) {
		return nil, fmt.Errorf("%w: %v", ErrInvalidNodeRadius, nodeRadius)
	}
	if !(worldSize.X > 0) || !(worldSize.Y > 0) {
		return nil, fmt.Errorf("%w: %vx%v", ErrInvalidWorldSize, worldSize.X, worldSize.Y)
	}

	diameter := nodeRadius * 2
	g := &NavGrid{
		origin:     origin,
		worldSize:  worldSize,
		nodeRadius: nodeRadius,
		sizeX:      int(stdmath.Round(float64(worldSize.X / diameter))),
		sizeY:      int(stdmath.Round(float64(worldSize.Y / diameter))),
	}
	for _, opt := range opts {
		opt(g)
	}
	if g.sizeX == 0 || g.sizeY == 0 {
		return nil, fmt.Errorf("%w: %vx%v smaller than one cell of diameter %v",
			ErrInvalidWorldSize, worldSize.X, worldSize.Y, diameter)
	}

	bottomLeft := math.Vec3{
		X: origin.X - worldSize.X/2,
		Y: origin.Y,
		Z: origin.Z - worldSize.Y/2,
	}

	g.nodes = make([][]*GridNode, g.sizeX)
	for x := 0; x < g.sizeX; x++ {
		g.nodes[x] = make([]*GridNode, g.sizeY)
		for y := 0; y < g.sizeY; y++ {
			pos := math.Vec3{
				X: bottomLeft.X + float32(x)*diameter + nodeRadius,
				Y: bottomLeft.Y,
				Z: bottomLeft.Z + float32(y)*diameter + nodeRadius,
			}
			walkable := isWalkable == nil || isWalkable(pos)
			node := &GridNode{
				Walkable:      walkable,
				WorldPosition: pos,
				GridX:         x,
				GridY:         y,
				index:         y*g.sizeX + x,
			}
			if walkable {
				g.walkableCount++
				if g.penalty != nil {
					node.Penalty = g.penalty(pos)
				}
			}
			g.nodes[x][y] = node
		}
	}

	return g, nil
}

// Size returns the grid dimensions in cells.
func (g *NavGrid) Size() (int, int) {
	return g.sizeX, g.sizeY
}

// MaxSize returns the total cell count, the capacity a search heap needs.
func (g *NavGrid) MaxSize() int {
	return g.sizeX * g.sizeY
}

// WalkableCount returns the number of walkable cells.
func (g *NavGrid) WalkableCount() int {
	return g.walkableCount
}

// NodeRadius returns half the cell edge length.
func (g *NavGrid) NodeRadius() float32 {
	return g.nodeRadius
}

// Node returns the cell at grid coordinates, or nil when out of bounds.
func (g *NavGrid) Node(x, y int) *GridNode {
	if !g.inBounds(x, y) {
		return nil
	}
	return g.nodes[x][y]
}

// CellFromWorldPoint returns the cell containing pos. Positions outside the
// grid clamp to the nearest edge cell.
func (g *NavGrid) CellFromWorldPoint(pos math.Vec3) *GridNode {
	percentX := math.Clamp01((pos.X - g.origin.X + g.worldSize.X/2) / g.worldSize.X)
	percentY := math.Clamp01((pos.Z - g.origin.Z + g.worldSize.Y/2) / g.worldSize.Y)

	x := clampIndex(int(percentX*float32(g.sizeX)), g.sizeX)
	y := clampIndex(int(percentY*float32(g.sizeY)), g.sizeY)
	return g.nodes[x][y]
}

// Neighbors returns the in-bounds cells of the 8-neighborhood of n.
func (g *NavGrid) Neighbors(n *GridNode) []*GridNode {
	return g.appendNeighbors(make([]*GridNode, 0, 8), n)
}

func (g *NavGrid) appendNeighbors(dst []*GridNode, n *GridNode) []*GridNode {
	for dx := -1; dx <= 1; dx++ {
		for dy := -1; dy <= 1; dy++ {
			if dx == 0 && dy == 0 {
				continue
			}
			x, y := n.GridX+dx, n.GridY+dy
			if !g.inBounds(x, y) {
				continue
			}
			if g.noCornerCutting && dx != 0 && dy != 0 {
				if !g.nodes[n.GridX+dx][n.GridY].Walkable || !g.nodes[n.GridX][n.GridY+dy].Walkable {
					continue
				}
			}
			dst = append(dst, g.nodes[x][y])
		}
	}
	return dst
}

func (g *NavGrid) inBounds(x, y int) bool {
	return x >= 0 && x < g.sizeX && y >= 0 && y < g.sizeY
}

func clampIndex(i, size int) int {
	if i < 0 {
		return 0
	}
	if i >= size {
		return size - 1
	}
	return i
}
