package nav

import (
	"github.com/Faultbox/fishway/pkg/math"
)

// Follower tracks an agent's progress along a Path. It decides when to switch
// to the next waypoint; moving the agent is up to the caller.
type Follower struct {
	path      *Path
	pathIndex int

	// Movement state
	IsFollowingPath bool
}

// NewFollower creates a follower for path. A nil or empty path yields an idle follower.
func NewFollower(path *Path) *Follower {
	f := &Follower{}
	f.SetPath(path)
	return f
}

// SetPath replaces the current path and restarts at its first waypoint.
func (f *Follower) SetPath(path *Path) {
	f.path = path
	f.pathIndex = 0
	f.IsFollowingPath = path != nil && len(path.Waypoints) > 0
}

// Update advances past every turn boundary pos has crossed. Crossing the
// finish line ends the path.
func (f *Follower) Update(pos math.Vec3) {
	if !f.IsFollowingPath {
		return
	}

	for f.path.HasCrossedBoundary(f.pathIndex, pos) {
		if f.pathIndex == f.path.FinishLineIndex {
			f.IsFollowingPath = false
			return
		}
		f.pathIndex++
	}
}

// Target returns the waypoint the agent should head for.
func (f *Follower) Target() (math.Vec3, bool) {
	if !f.IsFollowingPath {
		return math.Vec3{}, false
	}
	return f.path.Waypoints[f.pathIndex], true
}

// Finished reports whether the agent crossed the finish line of its path.
func (f *Follower) Finished() bool {
	return f.path != nil && len(f.path.Waypoints) > 0 && !f.IsFollowingPath
}

// SpeedScale returns a factor in [0, 1] that eases the agent into the
// destination once it is inside the path's stopping distance.
func (f *Follower) SpeedScale(pos math.Vec3) float32 {
	if !f.IsFollowingPath {
		return 0
	}
	if f.path.StoppingDistance <= 0 || f.pathIndex < f.path.SlowDownIndex {
		return 1
	}
	finish := f.path.TurnBoundaries[f.path.FinishLineIndex]
	return math.Clamp01(finish.DistanceFromPoint(pos.XZ()) / f.path.StoppingDistance)
}

// ClearPath stops the current path following.
func (f *Follower) ClearPath() {
	f.path = nil
	f.pathIndex = 0
	f.IsFollowingPath = false
}

// GetPath returns the current path.
func (f *Follower) GetPath() *Path {
	return f.path
}

// GetPathIndex returns the current index in the path.
func (f *Follower) GetPathIndex() int {
	return f.pathIndex
}
