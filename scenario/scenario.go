// Package scenario loads search scenarios from TOML files.
//
// A scenario describes the workspace extent, the search bounds, the cost
// model, the obstacle geometry and an optional default start/goal pair:
//
//	[extent]
//	rows = { lo = 0, hi = 250 }
//	cols = { lo = 0, hi = 600 }
//
//	[bounds]
//	rows = { lo = 5, hi = 245 }
//	cols = { lo = 5, hi = 595 }
//
//	[costs]
//	cardinal = 1.0
//	diagonal = 1.4
//
//	clearance = 5.0
//	corner_cutting = true
//	flip_rows = true
//	start = { row = 20, col = 20 }
//	goal  = { row = 230, col = 560 }
//
//	[[obstacles]]
//	kind = "rect"
//	min = [100, 0]
//	max = [150, 100]
//
//	[[obstacles]]
//	kind = "polygon"
//	points = [[460, 225], [510, 125], [460, 25]]
//
//	[[obstacles]]
//	kind = "circle"
//	center = [40, 40]
//	radius = 8
package scenario

import (
	"bytes"
	"errors"
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"

	"github.com/pdrpinto/dijkstra"
	"github.com/pdrpinto/dijkstra/obstacle"
)

// ErrInvalidScenario wraps every validation failure.
var ErrInvalidScenario = errors.New("invalid scenario")

// Obstacle is the on-disk form of an obstacle.Shape.
type Obstacle struct {
	Kind   string       `toml:"kind"`
	Min    [2]float64   `toml:"min"`
	Max    [2]float64   `toml:"max"`
	Points [][2]float64 `toml:"points"`
	Center [2]float64   `toml:"center"`
	Radius float64      `toml:"radius"`
}

// Scenario is a decoded scenario file.
type Scenario struct {
	Extent        dijkstra.Bounds     `toml:"extent"`
	Bounds        *dijkstra.Bounds    `toml:"bounds"`
	Costs         *dijkstra.CostTable `toml:"costs"`
	Clearance     float64             `toml:"clearance"`
	CornerCutting *bool               `toml:"corner_cutting"`
	// FlipRows interprets endpoint rows as measured from the top of the
	// extent, so row r maps to Extent.Rows.Hi - r.
	FlipRows  bool           `toml:"flip_rows"`
	Start     *dijkstra.Cell `toml:"start"`
	Goal      *dijkstra.Cell `toml:"goal"`
	Obstacles []Obstacle     `toml:"obstacles"`
}

// Load reads and parses a scenario file.
func Load(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scenario: %w", err)
	}
	s, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

// Parse decodes TOML and validates the result. Unknown keys are rejected.
func Parse(data []byte) (*Scenario, error) {
	var s Scenario
	decoder := toml.NewDecoder(bytes.NewReader(data))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&s); err != nil {
		var derr *toml.DecodeError
		if errors.As(err, &derr) {
			row, col := derr.Position()
			return nil, fmt.Errorf("%w: line %d column %d: %v", ErrInvalidScenario, row, col, derr)
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidScenario, err)
	}
	if err := s.validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

func (s *Scenario) validate() error {
	if s.Extent.Rows.Len() == 0 || s.Extent.Cols.Len() == 0 {
		return fmt.Errorf("%w: extent must be non-empty", ErrInvalidScenario)
	}
	if s.Clearance < 0 {
		return fmt.Errorf("%w: clearance must be non-negative", ErrInvalidScenario)
	}
	for i, o := range s.Obstacles {
		if _, err := o.shape(); err != nil {
			return fmt.Errorf("%w: obstacle %d: %v", ErrInvalidScenario, i, err)
		}
	}
	return nil
}

func (o Obstacle) shape() (obstacle.Shape, error) {
	switch o.Kind {
	case "rect":
		return obstacle.Rect{
			Min: obstacle.Point{X: o.Min[0], Y: o.Min[1]},
			Max: obstacle.Point{X: o.Max[0], Y: o.Max[1]},
		}, nil
	case "polygon":
		if len(o.Points) < 3 {
			return nil, fmt.Errorf("polygon needs at least 3 points, got %d", len(o.Points))
		}
		vertices := make([]obstacle.Point, len(o.Points))
		for i, p := range o.Points {
			vertices[i] = obstacle.Point{X: p[0], Y: p[1]}
		}
		return obstacle.Polygon{Vertices: vertices}, nil
	case "circle":
		if o.Radius <= 0 {
			return nil, fmt.Errorf("circle radius must be positive, got %v", o.Radius)
		}
		return obstacle.Circle{Center: obstacle.Point{X: o.Center[0], Y: o.Center[1]}, Radius: o.Radius}, nil
	default:
		return nil, fmt.Errorf("unknown obstacle kind %q", o.Kind)
	}
}

// Scene converts the scenario into rasterizable geometry. Search bounds
// default to the extent.
func (s *Scenario) Scene() obstacle.Scene {
	scene := obstacle.Scene{Extent: s.Extent, Bounds: s.Extent, Clearance: s.Clearance}
	if s.Bounds != nil {
		scene.Bounds = *s.Bounds
	}
	for _, o := range s.Obstacles {
		shape, _ := o.shape() // validated in Parse
		scene.Shapes = append(scene.Shapes, shape)
	}
	return scene
}

// GridOptions returns the grid options the scenario asks for.
func (s *Scenario) GridOptions() []dijkstra.GridOption {
	var options []dijkstra.GridOption
	if s.Costs != nil {
		options = append(options, dijkstra.WithCosts(*s.Costs))
	}
	if s.CornerCutting != nil {
		options = append(options, dijkstra.WithCornerCutting(*s.CornerCutting))
	}
	return options
}

// Build rasterizes the obstacles and returns the search grid and its map.
func (s *Scenario) Build() (*dijkstra.Grid, *obstacle.Map, error) {
	return s.Scene().Grid(s.GridOptions()...)
}

// Endpoint converts a user-facing cell into grid coordinates, applying
// FlipRows when set.
func (s *Scenario) Endpoint(c dijkstra.Cell) dijkstra.Cell {
	if s.FlipRows {
		c.Row = s.Extent.Rows.Hi - c.Row
	}
	return c
}

// Endpoints returns the configured start and goal in grid coordinates.
func (s *Scenario) Endpoints() (start, goal dijkstra.Cell, ok bool) {
	if s.Start == nil || s.Goal == nil {
		return start, goal, false
	}
	return s.Endpoint(*s.Start), s.Endpoint(*s.Goal), true
}
