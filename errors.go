package dijkstra

import (
	"errors"
	"fmt"
)

var (
	// ErrOutOfBounds is returned when start or goal lies outside the grid bounds.
	ErrOutOfBounds = errors.New("cell out of bounds")
	// ErrStartOrGoalObstructed is returned when start or goal is not passable.
	ErrStartOrGoalObstructed = errors.New("start or goal obstructed")
	// ErrNoPathFound is returned when the frontier empties before reaching the goal.
	ErrNoPathFound = errors.New("no path found")
	// ErrInvalidConfig is returned by constructors for malformed bounds, costs or oracles.
	ErrInvalidConfig = errors.New("invalid grid configuration")
)

// EndpointError reports which endpoint of a search failed validation.
// It unwraps to ErrOutOfBounds or ErrStartOrGoalObstructed.
type EndpointError struct {
	Endpoint string // "start" or "goal"
	Cell     Cell
	Err      error
}

func (e *EndpointError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Endpoint, e.Cell, e.Err)
}

func (e *EndpointError) Unwrap() error { return e.Err }
