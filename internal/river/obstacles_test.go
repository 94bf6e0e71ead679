package river

import (
	"testing"

	"github.com/Faultbox/fishway/pkg/math"
)

func TestObstacles_Blocked(t *testing.T) {
	o := NewObstacles()
	o.AddBox(math.Vec2{X: 0, Y: 0}, math.Vec2{X: 2, Y: 2})
	o.AddCircle(math.Vec2{X: 10, Y: 10}, 1)

	if o.Len() != 2 {
		t.Fatalf("expected 2 obstacles, got %d", o.Len())
	}

	tests := []struct {
		name      string
		pos       math.Vec3
		clearance float32
		want      bool
	}{
		{"inside box", math.Vec3{X: 1, Z: 1}, 0, true},
		{"height ignored", math.Vec3{X: 1, Y: 40, Z: 1}, 0, true},
		{"near box edge", math.Vec3{X: 2.3, Z: 1}, 0.5, true},
		{"clear of box", math.Vec3{X: 3, Z: 3}, 0.5, false},
		{"inside circle", math.Vec3{X: 10.2, Z: 9.9}, 0, true},
		{"just outside circle", math.Vec3{X: 11.5, Z: 10}, 0.4, false},
		{"circle within clearance", math.Vec3{X: 11.5, Z: 10}, 0.6, true},
		{"open water", math.Vec3{X: 5, Z: -5}, 1, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := o.Blocked(tt.pos, tt.clearance); got != tt.want {
				t.Errorf("Blocked(%v, %v) = %v, want %v", tt.pos, tt.clearance, got, tt.want)
			}
		})
	}
}

func TestObstacles_Empty(t *testing.T) {
	var none *Obstacles
	if none.Blocked(math.Vec3{}, 10) {
		t.Error("nil obstacle set should block nothing")
	}
	if NewObstacles().Blocked(math.Vec3{}, 10) {
		t.Error("empty obstacle set should block nothing")
	}
}
