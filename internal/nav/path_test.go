package nav

import (
	stdmath "math"
	"testing"

	"github.com/Faultbox/fishway/pkg/math"
)

func chainOf(g *NavGrid, cells ...[2]int) []*GridNode {
	chain := make([]*GridNode, len(cells))
	for i, c := range cells {
		chain[i] = g.Node(c[0], c[1])
	}
	return chain
}

func TestSimplify(t *testing.T) {
	g := mockGrid(t, 5, 5, nil)

	tests := []struct {
		name  string
		chain [][2]int
		want  [][2]int
	}{
		{
			name:  "straight run",
			chain: [][2]int{{0, 0}, {1, 0}, {2, 0}, {3, 0}, {4, 0}},
			want:  [][2]int{{4, 0}},
		},
		{
			name:  "single turn",
			chain: [][2]int{{0, 0}, {1, 0}, {2, 0}, {2, 1}, {2, 2}},
			want:  [][2]int{{2, 0}, {2, 2}},
		},
		{
			name:  "diagonal then straight",
			chain: [][2]int{{0, 0}, {1, 1}, {2, 2}, {3, 2}, {4, 2}, {4, 3}},
			want:  [][2]int{{2, 2}, {4, 2}, {4, 3}},
		},
		{
			name:  "single step",
			chain: [][2]int{{3, 3}, {4, 4}},
			want:  [][2]int{{4, 4}},
		},
		{
			name:  "start only",
			chain: [][2]int{{1, 1}},
			want:  nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Simplify(chainOf(g, tt.chain...))
			if len(got) != len(tt.want) {
				t.Fatalf("expected %d waypoints, got %d: %v", len(tt.want), len(got), got)
			}
			for i, c := range tt.want {
				if want := g.Node(c[0], c[1]).WorldPosition; got[i] != want {
					t.Errorf("waypoint %d: expected %v, got %v", i, want, got[i])
				}
			}
		})
	}
}

func TestSimplify_Idempotent(t *testing.T) {
	blocked := [][2]int{{2, 0}, {2, 1}, {2, 2}, {2, 3}, {4, 2}, {5, 2}}
	g := mockGrid(t, 7, 6, blocked)
	start, goal := g.Node(0, 0), g.Node(6, 0)

	res, err := FindPath(g, start, goal, SearchOptions{})
	if err != nil {
		t.Fatalf("FindPath failed: %v", err)
	}
	waypoints := Simplify(res.Nodes)

	reduced := []*GridNode{start}
	for _, wp := range waypoints {
		reduced = append(reduced, g.CellFromWorldPoint(wp))
	}
	again := Simplify(reduced)

	if len(again) != len(waypoints) {
		t.Fatalf("expected %d waypoints after second pass, got %d", len(waypoints), len(again))
	}
	for i := range waypoints {
		if again[i] != waypoints[i] {
			t.Errorf("waypoint %d changed: %v -> %v", i, waypoints[i], again[i])
		}
	}
}

func TestBuildPath_Boundaries(t *testing.T) {
	waypoints := []math.Vec3{{X: 10}, {X: 10, Z: 10}}
	p := BuildPath(waypoints, math.Vec3{}, 2, 0)

	if len(p.TurnBoundaries) != 2 {
		t.Fatalf("expected 2 boundaries, got %d", len(p.TurnBoundaries))
	}
	if p.FinishLineIndex != 1 {
		t.Errorf("expected finish line index 1, got %d", p.FinishLineIndex)
	}

	// First boundary sits turnDistance before the corner at x=8
	tests := []struct {
		index   int
		pos     math.Vec3
		crossed bool
	}{
		{0, math.Vec3{X: 5}, false},
		{0, math.Vec3{X: 7.9}, false},
		{0, math.Vec3{X: 8.1}, true},
		{0, math.Vec3{X: 12, Z: 3}, true},
		{1, math.Vec3{X: 10, Z: 9}, false},
		{1, math.Vec3{X: 10, Z: 10.5}, true},
		{2, math.Vec3{X: 10, Z: 50}, false},
		{-1, math.Vec3{}, false},
	}
	for _, tt := range tests {
		if got := p.HasCrossedBoundary(tt.index, tt.pos); got != tt.crossed {
			t.Errorf("HasCrossedBoundary(%d, %v) = %v, want %v", tt.index, tt.pos, got, tt.crossed)
		}
	}
}

func TestBuildPath_FinishLineOnDestination(t *testing.T) {
	p := BuildPath([]math.Vec3{{X: 10}}, math.Vec3{}, 3, 0)

	if p.HasCrossedBoundary(0, math.Vec3{X: 9.5}) {
		t.Error("finish line should not be crossed before the destination")
	}
	if !p.HasCrossedBoundary(0, math.Vec3{X: 10.5}) {
		t.Error("finish line should be crossed past the destination")
	}
}

func TestBuildPath_SlowDownIndex(t *testing.T) {
	waypoints := []math.Vec3{{X: 10}, {X: 20}, {X: 30}}

	tests := []struct {
		stopping float32
		want     int
	}{
		{5, 2},
		{15, 1},
		{50, 0},
	}
	for _, tt := range tests {
		p := BuildPath(waypoints, math.Vec3{}, 1, tt.stopping)
		if p.SlowDownIndex != tt.want {
			t.Errorf("stopping %v: expected slow down index %d, got %d", tt.stopping, tt.want, p.SlowDownIndex)
		}
	}
}

func TestLine_DistanceFromPoint(t *testing.T) {
	// Vertical line x=5, approached from the west
	l := NewLine(math.Vec2{X: 5}, math.Vec2{})

	got := l.DistanceFromPoint(math.Vec2{X: 2, Y: 3})
	if stdmath.Abs(float64(got-3)) > 0.01 {
		t.Errorf("expected distance ~3, got %v", got)
	}
	if l.HasCrossed(math.Vec2{X: 2, Y: 3}) {
		t.Error("point on approach side reported as crossed")
	}
	if !l.HasCrossed(math.Vec2{X: 6, Y: -40}) {
		t.Error("point past the line reported as not crossed")
	}
}

func TestLine_Horizontal(t *testing.T) {
	// Horizontal line z=4, approached from the north
	l := NewLine(math.Vec2{Y: 4}, math.Vec2{Y: 10})

	if l.HasCrossed(math.Vec2{X: 30, Y: 5}) {
		t.Error("point north of the line reported as crossed")
	}
	if !l.HasCrossed(math.Vec2{X: -30, Y: 3}) {
		t.Error("point south of the line reported as not crossed")
	}
}
