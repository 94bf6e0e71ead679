package nav

import (
	"github.com/Faultbox/fishway/pkg/math"
)

// Path is a simplified route with one turn boundary per waypoint.
type Path struct {
	Waypoints       []math.Vec3
	TurnBoundaries  []Line
	FinishLineIndex int
	// SlowDownIndex is the waypoint index from which the remaining route is
	// within the stopping distance. Zero when the whole route is.
	SlowDownIndex int
	// StoppingDistance is the distance from the destination at which movers
	// start slowing down. Zero disables slowdown.
	StoppingDistance float32
}

// Simplify reduces a start-to-goal chain to the last cell of every straight
// run. The start cell only serves as the reference for the first direction.
func Simplify(chain []*GridNode) []math.Vec3 {
	var waypoints []math.Vec3
	for i := 1; i < len(chain); i++ {
		dir := direction(chain[i-1], chain[i])
		last := i == len(chain)-1
		if last || direction(chain[i], chain[i+1]) != dir {
			waypoints = append(waypoints, chain[i].WorldPosition)
		}
	}
	return waypoints
}

// direction is the sign of the grid delta between two cells, so runs between
// non-adjacent cells compare like single steps.
func direction(from, to *GridNode) [2]int {
	return [2]int{sign(to.GridX - from.GridX), sign(to.GridY - from.GridY)}
}

func sign(x int) int {
	switch {
	case x > 0:
		return 1
	case x < 0:
		return -1
	default:
		return 0
	}
}

// BuildPath computes the turn boundaries for waypoints approached from start.
// Each boundary sits turnDistance before its waypoint, except the final one,
// which sits on the destination.
func BuildPath(waypoints []math.Vec3, start math.Vec3, turnDistance, stoppingDistance float32) *Path {
	p := &Path{
		Waypoints:        waypoints,
		TurnBoundaries:   make([]Line, len(waypoints)),
		FinishLineIndex:  len(waypoints) - 1,
		StoppingDistance: stoppingDistance,
	}

	previous := start.XZ()
	for i, wp := range waypoints {
		current := wp.XZ()
		dir := current.Sub(previous).Normalize()
		boundary := current
		if i != p.FinishLineIndex {
			boundary = current.Sub(dir.Scale(turnDistance))
		}
		p.TurnBoundaries[i] = NewLine(boundary, previous.Sub(dir.Scale(turnDistance)))
		previous = boundary
	}

	var fromEnd float32
	for i := len(waypoints) - 1; i > 0; i-- {
		fromEnd += waypoints[i].Distance(waypoints[i-1])
		if fromEnd > stoppingDistance {
			p.SlowDownIndex = i
			break
		}
	}

	return p
}

// HasCrossedBoundary reports whether pos is past the turn boundary of
// waypoint index i. Out-of-range indices report false.
func (p *Path) HasCrossedBoundary(i int, pos math.Vec3) bool {
	if i < 0 || i >= len(p.TurnBoundaries) {
		return false
	}
	return p.TurnBoundaries[i].HasCrossed(pos.XZ())
}
