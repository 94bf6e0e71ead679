package nav

import (
	"github.com/Faultbox/fishway/pkg/math"
)

// verticalGradient stands in for an infinite slope.
const verticalGradient = 1e5

// Line is a turn boundary on the ground plane. It remembers which side the
// approaching agent started on so crossing is a single side test.
type Line struct {
	gradient              float32
	yIntercept            float32
	pointOnLine1          math.Vec2
	pointOnLine2          math.Vec2
	gradientPerpendicular float32
	approachSide          bool
}

// NewLine builds the line through pointOnLine that is perpendicular to the
// direction from pointPerpendicular to pointOnLine. pointPerpendicular fixes
// the approach side.
func NewLine(pointOnLine, pointPerpendicular math.Vec2) Line {
	dx := pointOnLine.X - pointPerpendicular.X
	dy := pointOnLine.Y - pointPerpendicular.Y

	var l Line
	if dx == 0 {
		l.gradientPerpendicular = verticalGradient
	} else {
		l.gradientPerpendicular = dy / dx
	}
	if l.gradientPerpendicular == 0 {
		l.gradient = verticalGradient
	} else {
		l.gradient = -1 / l.gradientPerpendicular
	}

	l.yIntercept = pointOnLine.Y - l.gradient*pointOnLine.X
	l.pointOnLine1 = pointOnLine
	l.pointOnLine2 = pointOnLine.Add(math.Vec2{X: 1, Y: l.gradient})
	l.approachSide = l.side(pointPerpendicular)
	return l
}

// HasCrossed reports whether p lies on the far side of the line.
func (l Line) HasCrossed(p math.Vec2) bool {
	return l.side(p) != l.approachSide
}

// DistanceFromPoint returns the perpendicular distance from p to the line.
func (l Line) DistanceFromPoint(p math.Vec2) float32 {
	yInterceptPerpendicular := p.Y - l.gradientPerpendicular*p.X
	intersectX := (yInterceptPerpendicular - l.yIntercept) / (l.gradient - l.gradientPerpendicular)
	intersectY := l.gradient*intersectX + l.yIntercept
	return p.Distance(math.Vec2{X: intersectX, Y: intersectY})
}

func (l Line) side(p math.Vec2) bool {
	return (p.X-l.pointOnLine1.X)*(l.pointOnLine2.Y-l.pointOnLine1.Y) >
		(p.Y-l.pointOnLine1.Y)*(l.pointOnLine2.X-l.pointOnLine1.X)
}
