package river

import (
	"github.com/jakecoffman/cp"

	"github.com/Faultbox/fishway/pkg/math"
)

// Obstacles holds placed structures as static collision shapes on the river
// plane (world X, world Z) and answers clearance queries against them.
type Obstacles struct {
	space *cp.Space
	count int
}

// NewObstacles creates an empty obstacle set.
func NewObstacles() *Obstacles {
	return &Obstacles{space: cp.NewSpace()}
}

// AddBox adds an axis-aligned rectangle spanning min to max.
func (o *Obstacles) AddBox(min, max math.Vec2) {
	bb := cp.BB{L: float64(min.X), B: float64(min.Y), R: float64(max.X), T: float64(max.Y)}
	o.space.AddShape(cp.NewBox2(o.space.StaticBody, bb, 0))
	o.count++
}

// AddCircle adds a disc.
func (o *Obstacles) AddCircle(center math.Vec2, radius float32) {
	offset := cp.Vector{X: float64(center.X), Y: float64(center.Y)}
	o.space.AddShape(cp.NewCircle(o.space.StaticBody, float64(radius), offset))
	o.count++
}

// Len returns the number of obstacles.
func (o *Obstacles) Len() int {
	return o.count
}

// Blocked reports whether any obstacle lies within clearance of pos.
func (o *Obstacles) Blocked(pos math.Vec3, clearance float32) bool {
	if o == nil || o.count == 0 {
		return false
	}
	p := cp.Vector{X: float64(pos.X), Y: float64(pos.Z)}
	info := o.space.PointQueryNearest(p, float64(clearance), cp.SHAPE_FILTER_ALL)
	return info.Shape != nil
}
