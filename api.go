package dijkstra

import (
	"context"
	"errors"
	"log/slog"
	"runtime"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

var errNotDone = errors.New("search not finished")

// Result contains the outcome of a search
type Result struct {
	Route         []Cell   `json:"route"`
	Nodes         []Node   `json:"nodes"`
	TotalCost     float64  `json:"totalCost"`
	Visits        []Visit  `json:"visits"`
	Frames        [][]Cell `json:"frames"`
	ExpandedNodes int      `json:"expandedNodes"`
	CreatedNodes  int      `json:"createdNodes"`
	DecreaseKeys  int      `json:"decreaseKeys"`
	Found         bool     `json:"found"`
}

// Options defines parameters for the search.
type Options struct {
	NumberOfWorkers int
	Logger          *slog.Logger
}

// Option is a function that modifies Options.
type Option func(*Options)

// WithWorkers specifies how many goroutines SearchBatch runs searches on.
func WithWorkers(numberOfWorkers int) Option {
	return func(options *Options) { options.NumberOfWorkers = numberOfWorkers }
}

// WithLogger sets the structured logger used for search summaries.
func WithLogger(logger *slog.Logger) Option {
	return func(options *Options) { options.Logger = logger }
}

func applyOptions(options []Option) Options {
	searchOptions := Options{
		NumberOfWorkers: runtime.NumCPU(),
		Logger:          slog.Default(),
	}
	for _, option := range options {
		option(&searchOptions)
	}
	if searchOptions.NumberOfWorkers < 1 {
		searchOptions.NumberOfWorkers = 1
	}
	if searchOptions.Logger == nil {
		searchOptions.Logger = slog.Default()
	}
	return searchOptions
}

// Search runs uniform-cost search from start to goal over grid.
//
// Invalid endpoints are reported as an *EndpointError wrapping ErrOutOfBounds
// or ErrStartOrGoalObstructed without expanding any node. An unreachable goal
// yields ErrNoPathFound. ctx is checked once per frontier extraction.
func Search(ctx context.Context, grid *Grid, start, goal Cell, options ...Option) (Result, error) {
	searchOptions := applyOptions(options)
	logger := searchOptions.Logger

	ctx, span := tracer.Start(ctx, "dijkstra.Search", trace.WithAttributes(
		attribute.Int("start.row", start.Row),
		attribute.Int("start.col", start.Col),
		attribute.Int("goal.row", goal.Row),
		attribute.Int("goal.col", goal.Col),
	))
	defer span.End()
	began := time.Now()

	stepper, err := NewStepper(ctx, grid, start, goal)
	if err != nil {
		observeSearch(err, 0, 0, time.Since(began))
		span.RecordError(err)
		span.SetStatus(codes.Error, "invalid endpoint")
		logger.Warn("search rejected", "start", start, "goal", goal, "error", err)
		return Result{}, err
	}
	defer stepper.Close()

	runErr := stepper.Run()
	result, err := stepper.Result()
	elapsed := time.Since(began)
	observeSearch(runErr, result.ExpandedNodes, result.DecreaseKeys, elapsed)

	span.SetAttributes(
		attribute.Int("expanded_nodes", result.ExpandedNodes),
		attribute.Int("created_nodes", result.CreatedNodes),
		attribute.Bool("found", result.Found),
	)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		logger.Debug("search finished without route",
			"start", start, "goal", goal,
			"expanded", result.ExpandedNodes,
			"duration", elapsed,
			"error", err)
		return result, err
	}

	span.SetAttributes(attribute.Float64("total_cost", result.TotalCost))
	logger.Debug("search finished",
		"start", start, "goal", goal,
		"cost", result.TotalCost,
		"steps", len(result.Route)-1,
		"expanded", result.ExpandedNodes,
		"decrease_keys", result.DecreaseKeys,
		"duration", elapsed)
	return result, nil
}
