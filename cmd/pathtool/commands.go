package main

import (
	"errors"
	"flag"
	"fmt"
	"math/rand"
	"os"
	"os/signal"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/fishway/internal/config"
	"github.com/Faultbox/fishway/internal/logger"
	"github.com/Faultbox/fishway/internal/nav"
	"github.com/Faultbox/fishway/internal/river"
	"github.com/Faultbox/fishway/pkg/formats"
	"github.com/Faultbox/fishway/pkg/math"
)

var errUsage = errors.New("invalid arguments")

// loadWorld loads the map named by the first argument (or the config) and
// samples it into a navigation grid. It returns the remaining arguments.
func loadWorld(cfg *config.Config, args []string) (*river.Terrain, *nav.NavGrid, []string, error) {
	mapCfg := cfg.Map
	if len(args) > 0 {
		mapCfg.Path = args[0]
		args = args[1:]
	}
	if mapCfg.Path == "" {
		return nil, nil, nil, fmt.Errorf("%w: no map given", errUsage)
	}

	terrain, err := river.LoadTerrain(mapCfg)
	if err != nil {
		return nil, nil, nil, err
	}
	grid, err := terrain.BuildNavGrid(cfg.Grid.NodeRadius, cfg.Grid.CornerCutting, logger.Named("river"))
	if err != nil {
		return nil, nil, nil, err
	}
	return terrain, grid, args, nil
}

func cmdInfo(cfg *config.Config, args []string) error {
	terrain, grid, _, err := loadWorld(cfg, args)
	if err != nil {
		return err
	}

	m := terrain.Map
	size := terrain.WorldSize()
	gx, gy := grid.Size()

	fmt.Printf("Map:       %s (v%s)\n", terrainPath(cfg, args), m.Version)
	fmt.Printf("Cells:     %d x %d\n", m.Width, m.Height)
	fmt.Printf("World:     %.1f x %.1f\n", size.X, size.Y)
	fmt.Printf("Grid:      %d x %d (radius %.2f)\n", gx, gy, grid.NodeRadius())
	fmt.Printf("Walkable:  %d / %d\n", grid.WalkableCount(), grid.MaxSize())
	fmt.Printf("Obstacles: %d\n", terrain.Obstacles.Len())
	fmt.Println()
	fmt.Println("Cells by type:")

	counts := m.CountByType()
	for t := formats.CellBank; t <= formats.CellLadder; t++ {
		if counts[t] == 0 {
			continue
		}
		fmt.Printf("  %c %-9s %d\n", t.Symbol(), t, counts[t])
	}
	return nil
}

func terrainPath(cfg *config.Config, args []string) string {
	if len(args) > 0 {
		return args[0]
	}
	return cfg.Map.Path
}

func cmdFind(cfg *config.Config, args []string) error {
	_, grid, rest, err := loadWorld(cfg, args)
	if err != nil {
		return err
	}
	start, goal, err := parseEndpoints(rest)
	if err != nil {
		return err
	}

	q := nav.NewRequestQueue(queueConfig(cfg), logger.Log)
	defer q.Close()

	var result nav.Result
	q.Submit(nav.Request{
		Grid:             grid,
		Start:            start,
		End:              goal,
		TurnDistance:     cfg.Pathing.TurnDistance,
		StoppingDistance: cfg.Pathing.StoppingDistance,
		OnComplete:       func(res nav.Result) { result = res },
	})
	q.Wait()
	q.DrainResults()

	printResult(result, start)
	return nil
}

func printResult(res nav.Result, start math.Vec3) {
	if !res.Success {
		fmt.Printf("No path: %v\n", res.Err)
		return
	}

	fmt.Printf("Waypoints: %d\n", len(res.Waypoints))
	for i, w := range res.Waypoints {
		fmt.Printf("  %2d  (%7.2f, %7.2f)\n", i, w.X, w.Z)
	}
	fmt.Printf("Finish line: %d, slow down from: %d\n", res.Path.FinishLineIndex, res.Path.SlowDownIndex)

	steps, arrived := swim(res.Path, start, 0.25, 100000)
	if arrived {
		fmt.Printf("Simulated swim: arrived in %d steps\n", steps)
	} else {
		fmt.Printf("Simulated swim: gave up after %d steps\n", steps)
	}
}

// swim moves an agent along path at speed units per step until it crosses
// the finish line or maxSteps runs out.
func swim(path *nav.Path, pos math.Vec3, speed float32, maxSteps int) (int, bool) {
	f := nav.NewFollower(path)
	for steps := 0; steps < maxSteps; steps++ {
		f.Update(pos)
		if f.Finished() {
			return steps, true
		}
		target, ok := f.Target()
		if !ok {
			return steps, false
		}

		dir := target.Sub(pos)
		dir.Y = 0
		dist := dir.Length()
		if dist == 0 {
			// Standing on the waypoint without having crossed its boundary
			dir = target.Sub(path.Waypoints[max(f.GetPathIndex()-1, 0)])
			dir.Y = 0
			if dist = dir.Length(); dist == 0 {
				return steps, false
			}
		}
		step := speed * max(f.SpeedScale(pos), 0.1)
		pos = pos.Add(dir.Scale(step / dist))
	}
	return maxSteps, false
}

func cmdBench(cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("bench", flag.ContinueOnError)
	count := fs.Int("n", 1000, "Number of path requests")
	seed := fs.Int64("seed", 1, "Random seed for endpoints")
	positional, err := parseInterspersed(fs, args)
	if err != nil {
		return err
	}

	_, grid, _, err := loadWorld(cfg, positional)
	if err != nil {
		return err
	}

	var open []*nav.GridNode
	gx, gy := grid.Size()
	for y := 0; y < gy; y++ {
		for x := 0; x < gx; x++ {
			if n := grid.Node(x, y); n.Walkable {
				open = append(open, n)
			}
		}
	}
	if len(open) < 2 {
		return fmt.Errorf("map has %d walkable cells, need at least 2", len(open))
	}

	rng := rand.New(rand.NewSource(*seed))
	q := nav.NewRequestQueue(queueConfig(cfg), logger.Log)
	defer q.Close()

	var found, failed, waypoints int
	began := time.Now()
	for i := 0; i < *count; i++ {
		a := open[rng.Intn(len(open))]
		b := open[rng.Intn(len(open))]
		q.SubmitPathRequest(grid, a.WorldPosition, b.WorldPosition, cfg.Pathing.TurnDistance,
			func(w []math.Vec3, ok bool) {
				if ok {
					found++
					waypoints += len(w)
				} else {
					failed++
				}
			})
	}
	q.Wait()
	elapsed := time.Since(began)
	delivered := q.DrainResults()

	fmt.Printf("Requests:  %d (%d delivered)\n", *count, delivered)
	fmt.Printf("Found:     %d\n", found)
	fmt.Printf("Failed:    %d\n", failed)
	if found > 0 {
		fmt.Printf("Waypoints: %.1f avg\n", float64(waypoints)/float64(found))
	}
	fmt.Printf("Elapsed:   %v (%.0f req/s)\n", elapsed, float64(*count)/elapsed.Seconds())
	return nil
}

func cmdWatch(cfg *config.Config, args []string) error {
	_, grid, rest, err := loadWorld(cfg, args)
	if err != nil {
		return err
	}
	mapPath := terrainPath(cfg, args)

	var start, goal math.Vec3
	probe := len(rest) > 0
	if probe {
		if start, goal, err = parseEndpoints(rest); err != nil {
			return err
		}
	}

	w, err := river.NewMapWatcher(mapPath)
	if err != nil {
		return fmt.Errorf("watching %s: %w", mapPath, err)
	}
	defer w.Close()

	q := nav.NewRequestQueue(queueConfig(cfg), logger.Log)
	defer q.Close()

	runProbe := func(g *nav.NavGrid) {
		if !probe {
			return
		}
		q.Submit(nav.Request{
			Grid:             g,
			Start:            start,
			End:              goal,
			TurnDistance:     cfg.Pathing.TurnDistance,
			StoppingDistance: cfg.Pathing.StoppingDistance,
			OnComplete:       func(res nav.Result) { printResult(res, start) },
		})
		q.Wait()
		q.DrainResults()
	}
	runProbe(grid)

	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt)
	defer signal.Stop(interrupt)

	logger.Info("watching map", zap.String("path", mapPath))
	for {
		select {
		case <-interrupt:
			return nil
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			logger.Warn("map watcher error", zap.Error(err))
		case _, ok := <-w.Events:
			if !ok {
				return nil
			}
			_, g, _, err := loadWorld(cfg, []string{mapPath})
			if err != nil {
				// Editors may save a half-written file; keep the last good grid
				logger.Warn("map reload failed", zap.Error(err))
				continue
			}
			grid = g
			logger.Info("map reloaded", zap.Int("walkable", grid.WalkableCount()))
			runProbe(grid)
		}
	}
}

func queueConfig(cfg *config.Config) nav.QueueConfig {
	return nav.QueueConfig{
		Workers:     cfg.Pathing.Workers,
		MaxExpanded: cfg.Pathing.MaxExpanded,
	}
}

// parseEndpoints reads "sx sz gx gz" world coordinates.
func parseEndpoints(args []string) (start, goal math.Vec3, err error) {
	if len(args) != 4 {
		return start, goal, fmt.Errorf("%w: expected <sx> <sz> <gx> <gz>", errUsage)
	}
	var v [4]float32
	for i, a := range args {
		f, err := strconv.ParseFloat(a, 32)
		if err != nil {
			return start, goal, fmt.Errorf("%w: coordinate %q: %v", errUsage, a, err)
		}
		v[i] = float32(f)
	}
	return math.Vec3{X: v[0], Z: v[1]}, math.Vec3{X: v[2], Z: v[3]}, nil
}

// parseInterspersed parses fs allowing flags after positional arguments,
// as in "bench map.txt -n 100".
func parseInterspersed(fs *flag.FlagSet, args []string) ([]string, error) {
	var positional []string
	for {
		if err := fs.Parse(args); err != nil {
			return nil, err
		}
		args = fs.Args()
		if len(args) == 0 {
			return positional, nil
		}
		positional = append(positional, args[0])
		args = args[1:]
	}
}
