// Package config handles pathfinding configuration loading and management.
package config

// Config holds all settings.
type Config struct {
	Grid    GridConfig    `yaml:"grid"`
	Pathing PathingConfig `yaml:"pathing"`
	Map     MapConfig     `yaml:"map"`
	Logging LoggingConfig `yaml:"logging"`
}

// GridConfig holds navigation grid settings.
type GridConfig struct {
	NodeRadius    float32 `yaml:"node_radius"`    // Half the edge length of a nav cell
	CornerCutting bool    `yaml:"corner_cutting"` // Allow diagonals past blocked corners
}

// PathingConfig holds search and request queue settings.
type PathingConfig struct {
	Workers          int     `yaml:"workers"`      // Concurrent searches, 0 = GOMAXPROCS
	MaxExpanded      int     `yaml:"max_expanded"` // Per-search node limit, 0 = unlimited
	TurnDistance     float32 `yaml:"turn_distance"`
	StoppingDistance float32 `yaml:"stopping_distance"`
}

// MapConfig describes the river map and the structures placed on it.
type MapConfig struct {
	Path      string           `yaml:"path"`
	CellSize  float32          `yaml:"cell_size"` // World units per map cell
	Origin    [3]float32       `yaml:"origin"`    // World position of the map center
	Obstacles []ObstacleConfig `yaml:"obstacles"`
}

// ObstacleConfig is a structure that blocks swimming regardless of terrain.
// Kind is "box" (Min/Max corners) or "circle" (Center/Radius), on the XZ plane.
type ObstacleConfig struct {
	Kind   string     `yaml:"kind"`
	Min    [2]float32 `yaml:"min,omitempty"`
	Max    [2]float32 `yaml:"max,omitempty"`
	Center [2]float32 `yaml:"center,omitempty"`
	Radius float32    `yaml:"radius,omitempty"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Grid: GridConfig{
			NodeRadius:    0.5,
			CornerCutting: true,
		},
		Pathing: PathingConfig{
			Workers:          0,
			MaxExpanded:      0,
			TurnDistance:     1,
			StoppingDistance: 2,
		},
		Map: MapConfig{
			CellSize: 1,
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}
