// Package river turns river maps and placed structures into navigation grids.
package river

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/Faultbox/fishway/internal/config"
	"github.com/Faultbox/fishway/internal/nav"
	"github.com/Faultbox/fishway/pkg/formats"
	"github.com/Faultbox/fishway/pkg/math"
)

// ErrNoMap is returned when a terrain is built without a river map.
var ErrNoMap = errors.New("terrain needs a river map")

// Terrain places a river map in world space. Map cell (0,0) is the
// minimum-X, minimum-Z corner; each cell is CellSize world units wide.
type Terrain struct {
	Map       *formats.RiverMap
	CellSize  float32
	Origin    math.Vec3 // World position of the map center
	Obstacles *Obstacles
}

// NewTerrain builds a terrain from a loaded map and the map settings.
func NewTerrain(m *formats.RiverMap, cfg config.MapConfig) (*Terrain, error) {
	if m == nil {
		return nil, ErrNoMap
	}
	if !(cfg.CellSize > 0) {
		return nil, fmt.Errorf("%w: %v", config.ErrInvalidCellSize, cfg.CellSize)
	}

	obstacles := NewObstacles()
	for i, oc := range cfg.Obstacles {
		switch oc.Kind {
		case "box":
			obstacles.AddBox(math.Vec2{X: oc.Min[0], Y: oc.Min[1]}, math.Vec2{X: oc.Max[0], Y: oc.Max[1]})
		case "circle":
			obstacles.AddCircle(math.Vec2{X: oc.Center[0], Y: oc.Center[1]}, oc.Radius)
		default:
			return nil, fmt.Errorf("%w %d: unknown kind %q", config.ErrInvalidObstacle, i, oc.Kind)
		}
	}

	return &Terrain{
		Map:       m,
		CellSize:  cfg.CellSize,
		Origin:    math.Vec3{X: cfg.Origin[0], Y: cfg.Origin[1], Z: cfg.Origin[2]},
		Obstacles: obstacles,
	}, nil
}

// LoadTerrain reads the map named in cfg and builds its terrain.
func LoadTerrain(cfg config.MapConfig) (*Terrain, error) {
	m, err := formats.LoadRiverMapFile(cfg.Path)
	if err != nil {
		return nil, fmt.Errorf("loading river map %s: %w", cfg.Path, err)
	}
	return NewTerrain(m, cfg)
}

// WorldSize returns the extent of the map on the XZ plane.
func (t *Terrain) WorldSize() math.Vec2 {
	return math.Vec2{
		X: float32(t.Map.Width) * t.CellSize,
		Y: float32(t.Map.Height) * t.CellSize,
	}
}

// CellAt returns the map cell containing pos, or nil outside the map.
func (t *Terrain) CellAt(pos math.Vec3) *formats.RiverCell {
	size := t.WorldSize()
	fx := (pos.X - t.Origin.X + size.X/2) / t.CellSize
	fz := (pos.Z - t.Origin.Z + size.Y/2) / t.CellSize
	if fx < 0 || fz < 0 {
		return nil
	}
	return t.Map.GetCell(int(fx), int(fz))
}

// CellCenter returns the world position of map cell (x, y).
func (t *Terrain) CellCenter(x, y int) math.Vec3 {
	size := t.WorldSize()
	return math.Vec3{
		X: t.Origin.X - size.X/2 + (float32(x)+0.5)*t.CellSize,
		Y: t.Origin.Y,
		Z: t.Origin.Z - size.Y/2 + (float32(y)+0.5)*t.CellSize,
	}
}

// BuildNavGrid samples the terrain into a navigation grid. A nav cell is
// walkable when its map cell is swimmable and no obstacle lies within
// nodeRadius of its center.
func (t *Terrain) BuildNavGrid(nodeRadius float32, cornerCutting bool, log *zap.Logger) (*nav.NavGrid, error) {
	if log == nil {
		log = zap.NewNop()
	}

	walkable := func(pos math.Vec3) bool {
		cell := t.CellAt(pos)
		if cell == nil || !cell.Type.IsWalkable() {
			return false
		}
		return !t.Obstacles.Blocked(pos, nodeRadius)
	}
	penalty := func(pos math.Vec3) int {
		if cell := t.CellAt(pos); cell != nil {
			return cell.TotalPenalty()
		}
		return 0
	}

	opts := []nav.GridOption{nav.WithPenalty(penalty)}
	if !cornerCutting {
		opts = append(opts, nav.WithoutCornerCutting())
	}

	grid, err := nav.BuildNavGrid(t.Origin, t.WorldSize(), nodeRadius, walkable, opts...)
	if err != nil {
		return nil, fmt.Errorf("building nav grid: %w", err)
	}

	x, y := grid.Size()
	log.Info("nav grid built",
		zap.Int("width", x),
		zap.Int("height", y),
		zap.Int("walkable", grid.WalkableCount()),
		zap.Int("obstacles", t.Obstacles.Len()))

	return grid, nil
}
