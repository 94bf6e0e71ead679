package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"gopkg.in/yaml.v3"
)

// Validation errors.
var (
	ErrInvalidNodeRadius = errors.New("grid.node_radius must be positive")
	ErrInvalidCellSize   = errors.New("map.cell_size must be positive")
	ErrInvalidObstacle   = errors.New("invalid obstacle")
)

// Load loads configuration with priority: defaults < file < flags.
func Load() (*Config, error) {
	// Start with defaults
	cfg := Default()

	// Try to load from file (explicit path takes priority)
	configPath := ConfigPath()
	if configPath == "" {
		configPath = findConfigFile()
	}

	if configPath != "" {
		if err := loadFromFile(cfg, configPath); err != nil {
			return nil, fmt.Errorf("loading config from %s: %w", configPath, err)
		}
	}

	// Apply CLI flags (highest priority)
	applyFlags(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects settings that would make grid construction fail.
func (c *Config) Validate() error {
	if !(c.Grid.NodeRadius > 0) {
		return fmt.Errorf("%w: %v", ErrInvalidNodeRadius, c.Grid.NodeRadius)
	}
	if !(c.Map.CellSize > 0) {
		return fmt.Errorf("%w: %v", ErrInvalidCellSize, c.Map.CellSize)
	}
	for i, o := range c.Map.Obstacles {
		switch o.Kind {
		case "box":
			if o.Max[0] <= o.Min[0] || o.Max[1] <= o.Min[1] {
				return fmt.Errorf("%w %d: box max must exceed min", ErrInvalidObstacle, i)
			}
		case "circle":
			if !(o.Radius > 0) {
				return fmt.Errorf("%w %d: circle radius must be positive", ErrInvalidObstacle, i)
			}
		default:
			return fmt.Errorf("%w %d: unknown kind %q", ErrInvalidObstacle, i, o.Kind)
		}
	}
	return nil
}

// findConfigFile looks for config in standard locations.
func findConfigFile() string {
	candidates := []string{
		"./fishway.yaml",
		filepath.Join(ConfigDir(), "config.yaml"),
	}

	for _, path := range candidates {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// ConfigDir returns the OS-appropriate config directory.
func ConfigDir() string {
	switch runtime.GOOS {
	case "darwin":
		home, _ := os.UserHomeDir()
		return filepath.Join(home, "Library", "Application Support", "Fishway")
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "Fishway")
	default: // Linux and others
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			return filepath.Join(xdg, "fishway")
		}
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".config", "fishway")
	}
}

// loadFromFile loads config from a YAML file, merging with existing values.
func loadFromFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, cfg)
}
