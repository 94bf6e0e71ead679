package config

import "flag"

var (
	flagConfig  = flag.String("config", "", "Path to config file")
	flagDebug   = flag.Bool("debug", false, "Enable debug logging")
	flagMap     = flag.String("map", "", "River map file")
	flagWorkers = flag.Int("workers", 0, "Concurrent path searches")
	flagTurn    = flag.Float64("turn", 0, "Turn distance for path boundaries")
	flagRadius  = flag.Float64("radius", 0, "Navigation node radius")
	flagNoCut   = flag.Bool("no-corner-cutting", false, "Forbid diagonal moves past blocked corners")
)

// ParseFlags parses command-line flags. Call this early in main().
func ParseFlags() {
	flag.Parse()
}

// Args returns the non-flag arguments.
func Args() []string {
	return flag.Args()
}

// ConfigPath returns the explicit config path if provided via --config flag.
func ConfigPath() string {
	return *flagConfig
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *Config) {
	if *flagDebug {
		cfg.Logging.Level = "debug"
	}
	if *flagMap != "" {
		cfg.Map.Path = *flagMap
	}
	if *flagWorkers > 0 {
		cfg.Pathing.Workers = *flagWorkers
	}
	if *flagTurn > 0 {
		cfg.Pathing.TurnDistance = float32(*flagTurn)
	}
	if *flagRadius > 0 {
		cfg.Grid.NodeRadius = float32(*flagRadius)
	}
	if *flagNoCut {
		cfg.Grid.CornerCutting = false
	}
}
