// pathtool is a CLI utility for inspecting river maps and exercising the
// fish pathfinder against them.
package main

import (
	"fmt"
	"os"

	"github.com/Faultbox/fishway/internal/config"
	"github.com/Faultbox/fishway/internal/logger"
)

func main() {
	// Parse CLI flags first
	config.ParseFlags()

	args := config.Args()
	if len(args) < 1 {
		printUsage()
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	command := args[0]
	rest := args[1:]

	var runErr error
	switch command {
	case "info":
		runErr = cmdInfo(cfg, rest)
	case "find", "path":
		runErr = cmdFind(cfg, rest)
	case "bench":
		runErr = cmdBench(cfg, rest)
	case "watch":
		runErr = cmdWatch(cfg, rest)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		if s := suggestCommand(command); s != "" {
			fmt.Fprintf(os.Stderr, "Did you mean %q?\n", s)
		}
		printUsage()
		os.Exit(1)
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", runErr)
		logger.Sync()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`pathtool - river map and fish pathfinding utility

Usage:
  pathtool [flags] <command> [options]

Commands:
  info  <map>                         Show map and navigation grid statistics
  find  <map> <sx> <sz> <gx> <gz>     Find a path between two world positions
  bench <map> [-n N] [-seed S]        Time N random path requests
  watch <map> [<sx> <sz> <gx> <gz>]   Rebuild the grid whenever the map changes

Flags:
  -config <file>        Config file (default: ./fishway.yaml)
  -debug                Enable debug logging
  -workers <n>          Concurrent path searches
  -radius <r>           Navigation node radius
  -turn <d>             Turn distance for path boundaries
  -no-corner-cutting    Forbid diagonal moves past blocked corners

The map argument may be omitted when map.path is set in the config.

Examples:
  pathtool info rivers/weir.txt
  pathtool find rivers/weir.txt -10 -20 4 18
  pathtool -workers 4 bench rivers/weir.rivm -n 5000`)
}
