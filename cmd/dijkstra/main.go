// Command dijkstra runs a single search over a scenario file or the built-in
// reference scene and reports the route. It can also write PNG frames or
// animate the search in the terminal.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/pdrpinto/dijkstra"
	"github.com/pdrpinto/dijkstra/internal"
	"github.com/pdrpinto/dijkstra/obstacle"
	"github.com/pdrpinto/dijkstra/render"
	"github.com/pdrpinto/dijkstra/scenario"
)

type config struct {
	scenario string
	start    string
	goal     string
	pngDir   string
	scale    int
	tui      bool
	delay    time.Duration
	verbose  bool
}

func main() {
	var cfg config
	flag.StringVar(&cfg.scenario, "scenario", "", "TOML scenario file (default: reference scene)")
	flag.StringVar(&cfg.start, "start", "", "start cell as row,col")
	flag.StringVar(&cfg.goal, "goal", "", "goal cell as row,col")
	flag.StringVar(&cfg.pngDir, "png", "", "write one PNG per route step into this directory")
	flag.IntVar(&cfg.scale, "scale", 1, "pixels per cell for PNG output")
	flag.BoolVar(&cfg.tui, "tui", false, "animate the search in the terminal")
	flag.DurationVar(&cfg.delay, "delay", 20*time.Millisecond, "delay between terminal frames")
	flag.BoolVar(&cfg.verbose, "v", false, "debug logging")
	flag.Parse()

	level := slog.LevelInfo
	if cfg.verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, cfg, logger); err != nil {
		logger.Error("dijkstra failed", "err", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg config, logger *slog.Logger) error {
	grid, start, goal, err := setup(cfg)
	if err != nil {
		return err
	}
	logger.Info("searching", "start", start, "goal", goal, "bounds", grid.Bounds())

	began := time.Now()
	res, err := dijkstra.Search(ctx, grid, start, goal, dijkstra.WithLogger(logger))
	if err != nil && !errors.Is(err, dijkstra.ErrNoPathFound) {
		return err
	}
	if !res.Found {
		fmt.Printf("no path from %v to %v (%d nodes expanded)\n", start, goal, res.ExpandedNodes)
		return err
	}
	fmt.Printf("route: %d steps, cost %.1f, %d nodes expanded in %s\n",
		len(res.Route)-1, res.TotalCost, res.ExpandedNodes, time.Since(began).Round(time.Millisecond))

	anim := render.NewAnimation(grid, res)
	if cfg.pngDir != "" {
		paths, err := render.WritePNGs(cfg.pngDir, anim, render.PNGOptions{Scale: cfg.scale, HoldFrames: 20})
		if err != nil {
			return err
		}
		logger.Info("wrote frames", "dir", cfg.pngDir, "count", len(paths))
	}
	if cfg.tui {
		return playTerminal(ctx, anim, cfg.delay)
	}
	return nil
}

// setup builds the grid and resolves endpoints. Flags override endpoints from
// the scenario file.
func setup(cfg config) (*dijkstra.Grid, dijkstra.Cell, dijkstra.Cell, error) {
	var (
		grid     *dijkstra.Grid
		endpoint = func(c dijkstra.Cell) dijkstra.Cell { return c }
		start    = dijkstra.Cell{Row: 20, Col: 20}
		goal     = dijkstra.Cell{Row: 230, Col: 560}
		err      error
	)
	if cfg.scenario != "" {
		sc, err := scenario.Load(cfg.scenario)
		if err != nil {
			return nil, start, goal, err
		}
		if grid, _, err = sc.Build(); err != nil {
			return nil, start, goal, err
		}
		endpoint = sc.Endpoint
		if s, g, ok := sc.Endpoints(); ok {
			start, goal = s, g
		}
	} else if grid, _, err = obstacle.ReferenceScene().Grid(); err != nil {
		return nil, start, goal, err
	}

	if cfg.start != "" {
		r, c, err := internal.ParsePair(cfg.start)
		if err != nil {
			return nil, start, goal, fmt.Errorf("-start: %w", err)
		}
		start = endpoint(dijkstra.Cell{Row: r, Col: c})
	}
	if cfg.goal != "" {
		r, c, err := internal.ParsePair(cfg.goal)
		if err != nil {
			return nil, start, goal, fmt.Errorf("-goal: %w", err)
		}
		goal = endpoint(dijkstra.Cell{Row: r, Col: c})
	}
	return grid, start, goal, nil
}

func playTerminal(ctx context.Context, anim *render.Animation, delay time.Duration) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("terminal: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("terminal: %w", err)
	}
	defer screen.Fini()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	go func() {
		for {
			switch ev := screen.PollEvent().(type) {
			case nil:
				return
			case *tcell.EventKey:
				if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC || ev.Rune() == 'q' {
					cancel()
					return
				}
			case *tcell.EventResize:
				screen.Sync()
			}
		}
	}()

	term := &render.Terminal{Canvas: screen, Delay: delay}
	if err := term.Play(ctx, anim); err != nil {
		if errors.Is(err, context.Canceled) {
			return nil
		}
		return err
	}
	// hold the last frame until a key is pressed
	<-ctx.Done()
	return nil
}
