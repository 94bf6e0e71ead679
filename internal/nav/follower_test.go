package nav

import (
	"testing"

	"github.com/Faultbox/fishway/pkg/math"
)

func TestFollower_AdvancesAcrossBoundaries(t *testing.T) {
	waypoints := []math.Vec3{{X: 10}, {X: 10, Z: 10}}
	f := NewFollower(BuildPath(waypoints, math.Vec3{}, 2, 5))

	if !f.IsFollowingPath {
		t.Fatal("expected follower to start following")
	}

	f.Update(math.Vec3{X: 5})
	if f.GetPathIndex() != 0 {
		t.Errorf("expected index 0 before the first boundary, got %d", f.GetPathIndex())
	}
	if target, ok := f.Target(); !ok || target != waypoints[0] {
		t.Errorf("expected target %v, got %v", waypoints[0], target)
	}
	if s := f.SpeedScale(math.Vec3{X: 5}); s != 1 {
		t.Errorf("expected full speed far from the end, got %v", s)
	}

	f.Update(math.Vec3{X: 9})
	if f.GetPathIndex() != 1 {
		t.Errorf("expected index 1 after the turn boundary, got %d", f.GetPathIndex())
	}

	near := math.Vec3{X: 10, Z: 9}
	f.Update(near)
	if s := f.SpeedScale(near); s <= 0 || s >= 0.5 {
		t.Errorf("expected reduced speed near the destination, got %v", s)
	}

	f.Update(math.Vec3{X: 10, Z: 11})
	if f.IsFollowingPath || !f.Finished() {
		t.Error("expected path to finish after the finish line")
	}
	if _, ok := f.Target(); ok {
		t.Error("expected no target after finishing")
	}
	if s := f.SpeedScale(math.Vec3{X: 10, Z: 11}); s != 0 {
		t.Errorf("expected zero speed after finishing, got %v", s)
	}
}

func TestFollower_SkipsSeveralBoundariesInOneUpdate(t *testing.T) {
	waypoints := []math.Vec3{{X: 4}, {X: 4, Z: 4}, {X: 8, Z: 4}}
	f := NewFollower(BuildPath(waypoints, math.Vec3{}, 0.5, 0))

	// Past both turn boundaries but short of the destination
	f.Update(math.Vec3{X: 7.9, Z: 4})
	if f.GetPathIndex() != 2 {
		t.Errorf("expected index 2, got %d", f.GetPathIndex())
	}
	if !f.IsFollowingPath || f.Finished() {
		t.Error("expected follower to still be on the path")
	}
}

func TestFollower_EmptyPath(t *testing.T) {
	f := NewFollower(nil)
	if f.IsFollowingPath {
		t.Error("expected idle follower for nil path")
	}
	f.Update(math.Vec3{X: 1})

	f.SetPath(BuildPath(nil, math.Vec3{}, 1, 0))
	if f.IsFollowingPath || f.Finished() {
		t.Error("expected idle follower for empty path")
	}
}

func TestFollower_ClearPath(t *testing.T) {
	f := NewFollower(BuildPath([]math.Vec3{{X: 3}}, math.Vec3{}, 1, 0))
	f.ClearPath()

	if f.IsFollowingPath || f.GetPath() != nil || f.GetPathIndex() != 0 {
		t.Error("expected cleared follower state")
	}
}
