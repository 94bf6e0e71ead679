package nav

import (
	"errors"
	stdmath "math"
	"testing"

	"github.com/Faultbox/fishway/pkg/math"
)

// mockGrid builds a width x height grid of radius-1 cells centered on the
// world origin, with the listed cells blocked.
func mockGrid(t *testing.T, width, height int, blocked [][2]int, opts ...GridOption) *NavGrid {
	t.Helper()

	isBlocked := make(map[[2]int]bool, len(blocked))
	for _, b := range blocked {
		isBlocked[b] = true
	}
	walkable := func(pos math.Vec3) bool {
		x := int(stdmath.Floor(float64(pos.X+float32(width)) / 2))
		y := int(stdmath.Floor(float64(pos.Z+float32(height)) / 2))
		return !isBlocked[[2]int{x, y}]
	}

	size := math.Vec2{X: float32(2 * width), Y: float32(2 * height)}
	g, err := BuildNavGrid(math.Vec3{}, size, 1, walkable, opts...)
	if err != nil {
		t.Fatalf("BuildNavGrid failed: %v", err)
	}
	return g
}

// cellCenter returns the world position of cell (x, y) in a mockGrid.
func cellCenter(width, height, x, y int) math.Vec3 {
	return math.Vec3{X: float32(2*x - width + 1), Z: float32(2*y - height + 1)}
}

func TestBuildNavGrid_Dimensions(t *testing.T) {
	tests := []struct {
		name   string
		size   math.Vec2
		radius float32
		wantX  int
		wantY  int
	}{
		{"exact", math.Vec2{X: 10, Y: 10}, 1, 5, 5},
		{"rounds down", math.Vec2{X: 10.8, Y: 6}, 1, 5, 3},
		{"rounds up", math.Vec2{X: 11.2, Y: 6}, 1, 6, 3},
		{"half radius", math.Vec2{X: 4, Y: 2}, 0.5, 4, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, err := BuildNavGrid(math.Vec3{}, tt.size, tt.radius, nil)
			if err != nil {
				t.Fatalf("BuildNavGrid failed: %v", err)
			}
			x, y := g.Size()
			if x != tt.wantX || y != tt.wantY {
				t.Errorf("expected %dx%d grid, got %dx%d", tt.wantX, tt.wantY, x, y)
			}
			if g.MaxSize() != x*y {
				t.Errorf("expected MaxSize %d, got %d", x*y, g.MaxSize())
			}
		})
	}
}

func TestBuildNavGrid_InvalidConfig(t *testing.T) {
	tests := []struct {
		name   string
		size   math.Vec2
		radius float32
		want   error
	}{
		{"zero radius", math.Vec2{X: 10, Y: 10}, 0, ErrInvalidNodeRadius},
		{"negative radius", math.Vec2{X: 10, Y: 10}, -1, ErrInvalidNodeRadius},
		{"NaN radius", math.Vec2{X: 10, Y: 10}, float32(stdmath.NaN()), ErrInvalidNodeRadius},
		{"zero width", math.Vec2{X: 0, Y: 10}, 1, ErrInvalidWorldSize},
		{"negative depth", math.Vec2{X: 10, Y: -4}, 1, ErrInvalidWorldSize},
		{"smaller than a cell", math.Vec2{X: 0.5, Y: 10}, 1, ErrInvalidWorldSize},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, err := BuildNavGrid(math.Vec3{}, tt.size, tt.radius, nil)
			if !errors.Is(err, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, err)
			}
			if g != nil {
				t.Error("expected nil grid on error")
			}
		})
	}
}

func TestBuildNavGrid_CellCenters(t *testing.T) {
	origin := math.Vec3{X: 100, Y: 3, Z: -50}
	g, err := BuildNavGrid(origin, math.Vec2{X: 10, Y: 10}, 1, nil)
	if err != nil {
		t.Fatalf("BuildNavGrid failed: %v", err)
	}

	first := g.Node(0, 0).WorldPosition
	want := math.Vec3{X: 96, Y: 3, Z: -54}
	if first != want {
		t.Errorf("expected cell (0,0) at %v, got %v", want, first)
	}

	last := g.Node(4, 4).WorldPosition
	want = math.Vec3{X: 104, Y: 3, Z: -46}
	if last != want {
		t.Errorf("expected cell (4,4) at %v, got %v", want, last)
	}
}

func TestBuildNavGrid_Walkability(t *testing.T) {
	g := mockGrid(t, 5, 5, [][2]int{{2, 2}, {0, 4}})

	if g.Node(2, 2).Walkable {
		t.Error("expected (2,2) to be blocked")
	}
	if g.Node(0, 4).Walkable {
		t.Error("expected (0,4) to be blocked")
	}
	if !g.Node(0, 0).Walkable {
		t.Error("expected (0,0) to be walkable")
	}
	if g.WalkableCount() != 23 {
		t.Errorf("expected 23 walkable cells, got %d", g.WalkableCount())
	}
	if g.Node(-1, 0) != nil || g.Node(0, 5) != nil {
		t.Error("expected nil for out of bounds node")
	}
}

func TestBuildNavGrid_Penalty(t *testing.T) {
	penalty := func(pos math.Vec3) int {
		if pos.X > 0 {
			return 7
		}
		return 0
	}
	g := mockGrid(t, 4, 1, [][2]int{{3, 0}}, WithPenalty(penalty))

	if g.Node(0, 0).Penalty != 0 {
		t.Errorf("expected no penalty west of origin, got %d", g.Node(0, 0).Penalty)
	}
	if g.Node(2, 0).Penalty != 7 {
		t.Errorf("expected penalty 7 east of origin, got %d", g.Node(2, 0).Penalty)
	}
	if g.Node(3, 0).Penalty != 0 {
		t.Errorf("expected blocked cell to carry no penalty, got %d", g.Node(3, 0).Penalty)
	}
}

func TestCellFromWorldPoint(t *testing.T) {
	g := mockGrid(t, 5, 5, nil)

	tests := []struct {
		name  string
		pos   math.Vec3
		wantX int
		wantY int
	}{
		{"first center", cellCenter(5, 5, 0, 0), 0, 0},
		{"last center", cellCenter(5, 5, 4, 4), 4, 4},
		{"inside cell", math.Vec3{X: 0.9, Z: -2.5}, 2, 1},
		{"height ignored", math.Vec3{X: 0, Y: 99, Z: 0}, 2, 2},
		{"far edge exact", math.Vec3{X: 5, Z: 5}, 4, 4},
		{"clamped far out", math.Vec3{X: 100, Z: -100}, 4, 0},
		{"clamped negative", math.Vec3{X: -7, Z: -7}, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n := g.CellFromWorldPoint(tt.pos)
			if n == nil {
				t.Fatal("expected a cell, got nil")
			}
			if n.GridX != tt.wantX || n.GridY != tt.wantY {
				t.Errorf("expected (%d,%d), got (%d,%d)", tt.wantX, tt.wantY, n.GridX, n.GridY)
			}
		})
	}
}

func TestNeighbors(t *testing.T) {
	g := mockGrid(t, 5, 5, nil)

	tests := []struct {
		name string
		x, y int
		want int
	}{
		{"corner", 0, 0, 3},
		{"edge", 2, 0, 5},
		{"center", 2, 2, 8},
		{"far corner", 4, 4, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n := g.Node(tt.x, tt.y)
			neighbors := g.Neighbors(n)
			if len(neighbors) != tt.want {
				t.Errorf("expected %d neighbors, got %d", tt.want, len(neighbors))
			}
			for _, nb := range neighbors {
				if nb == n {
					t.Error("cell listed as its own neighbor")
				}
				if abs(nb.GridX-n.GridX) > 1 || abs(nb.GridY-n.GridY) > 1 {
					t.Errorf("(%d,%d) is not adjacent to (%d,%d)", nb.GridX, nb.GridY, n.GridX, n.GridY)
				}
			}
		})
	}
}

func TestNeighbors_CornerCutting(t *testing.T) {
	blocked := [][2]int{{1, 0}}

	allowed := mockGrid(t, 3, 3, blocked)
	if got := len(allowed.Neighbors(allowed.Node(0, 0))); got != 3 {
		t.Errorf("expected 3 neighbors with corner cutting, got %d", got)
	}

	strict := mockGrid(t, 3, 3, blocked, WithoutCornerCutting())
	for _, nb := range strict.Neighbors(strict.Node(0, 0)) {
		if nb.GridX == 1 && nb.GridY == 1 {
			t.Error("expected diagonal past blocked corner to be dropped")
		}
	}
}
