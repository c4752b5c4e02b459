package dijkstra

import (
	"fmt"
	"math"
)

// Oracle answers passability queries. Implementations must be safe for
// concurrent reads and must not change while a search is running.
type Oracle interface {
	Passable(c Cell) bool
	InBounds(c Cell) bool
}

// Range is a half-open integer interval [Lo, Hi).
type Range struct {
	Lo int `json:"lo" toml:"lo"`
	Hi int `json:"hi" toml:"hi"`
}

// Contains reports whether Lo <= v < Hi.
func (r Range) Contains(v int) bool { return v >= r.Lo && v < r.Hi }

// Len returns the number of integers in the range.
func (r Range) Len() int {
	if r.Hi <= r.Lo {
		return 0
	}
	return r.Hi - r.Lo
}

// Bounds restricts the searchable area of a grid.
type Bounds struct {
	Rows Range `json:"rows" toml:"rows"`
	Cols Range `json:"cols" toml:"cols"`
}

// Contains reports whether c lies inside both ranges.
func (b Bounds) Contains(c Cell) bool { return b.Rows.Contains(c.Row) && b.Cols.Contains(c.Col) }

// GridOption configures a Grid at construction.
type GridOption func(*Grid)

// WithCosts overrides the default 1.0 / 1.4 cost table.
func WithCosts(costs CostTable) GridOption {
	return func(g *Grid) { g.costs = costs }
}

// WithCornerCutting controls whether a diagonal step may pass between two
// orthogonal neighbours when either of them is blocked. Enabled by default.
func WithCornerCutting(allow bool) GridOption {
	return func(g *Grid) { g.cornerCutting = allow }
}

// Grid is the immutable search configuration: bounds, cost table, corner-cut
// policy and occupancy oracle.
type Grid struct {
	bounds        Bounds
	oracle        Oracle
	costs         CostTable
	cornerCutting bool
}

// NewGrid validates its inputs and returns a Grid ready for searching.
func NewGrid(bounds Bounds, oracle Oracle, options ...GridOption) (*Grid, error) {
	g := &Grid{
		bounds:        bounds,
		oracle:        oracle,
		costs:         DefaultCosts,
		cornerCutting: true,
	}
	for _, option := range options {
		option(g)
	}

	if oracle == nil {
		return nil, fmt.Errorf("%w: nil oracle", ErrInvalidConfig)
	}
	if bounds.Rows.Len() == 0 || bounds.Cols.Len() == 0 {
		return nil, fmt.Errorf("%w: empty bounds rows=%v cols=%v", ErrInvalidConfig, bounds.Rows, bounds.Cols)
	}
	if !validCost(g.costs.Cardinal) || !validCost(g.costs.Diagonal) {
		return nil, fmt.Errorf("%w: costs must be finite and non-negative, got %+v", ErrInvalidConfig, g.costs)
	}
	return g, nil
}

func validCost(c float64) bool { return c >= 0 && !math.IsInf(c, 0) && !math.IsNaN(c) }

// Bounds returns the configured bounds.
func (g *Grid) Bounds() Bounds { return g.bounds }

// Costs returns the configured cost table.
func (g *Grid) Costs() CostTable { return g.costs }

// CornerCutting reports whether diagonal corner cuts are permitted.
func (g *Grid) CornerCutting() bool { return g.cornerCutting }

// Contains reports whether c is inside both the grid bounds and the oracle's extent.
func (g *Grid) Contains(c Cell) bool { return g.bounds.Contains(c) && g.oracle.InBounds(c) }

// Open reports whether c is inside the grid and passable.
func (g *Grid) Open(c Cell) bool { return g.Contains(c) && g.oracle.Passable(c) }

// Validate checks that c can be used as a search endpoint.
func (g *Grid) Validate(c Cell) error {
	if !g.Contains(c) {
		return ErrOutOfBounds
	}
	if !g.oracle.Passable(c) {
		return ErrStartOrGoalObstructed
	}
	return nil
}

// Moves returns the valid one-step moves from c in canonical direction order.
func (g *Grid) Moves(c Cell) []Move {
	return g.appendMoves(make([]Move, 0, directionCount), c)
}

func (g *Grid) appendMoves(dst []Move, c Cell) []Move {
	for _, d := range Directions {
		to := c.Add(d)
		if !g.Open(to) {
			continue
		}
		if d.Diagonal() && !g.cornerCutting {
			off := directionOffsets[d]
			if !g.Open(Cell{Row: c.Row + off[0], Col: c.Col}) || !g.Open(Cell{Row: c.Row, Col: c.Col + off[1]}) {
				continue
			}
		}
		dst = append(dst, Move{Dir: d, To: to, Cost: g.costs.Of(d)})
	}
	return dst
}

// DenseOracle is a simple row-major bitmap oracle; true means blocked.
// It is mostly useful for tests and small hand-written maps.
type DenseOracle struct {
	Origin  Cell
	Rows    int
	Cols    int
	Blocked []bool
}

// NewDenseOracle returns an all-free oracle covering bounds.
func NewDenseOracle(bounds Bounds) *DenseOracle {
	rows, cols := bounds.Rows.Len(), bounds.Cols.Len()
	return &DenseOracle{
		Origin:  Cell{Row: bounds.Rows.Lo, Col: bounds.Cols.Lo},
		Rows:    rows,
		Cols:    cols,
		Blocked: make([]bool, rows*cols),
	}
}

func (o *DenseOracle) index(c Cell) int {
	return (c.Row-o.Origin.Row)*o.Cols + (c.Col - o.Origin.Col)
}

// InBounds reports whether c is covered by the bitmap.
func (o *DenseOracle) InBounds(c Cell) bool {
	r, col := c.Row-o.Origin.Row, c.Col-o.Origin.Col
	return r >= 0 && r < o.Rows && col >= 0 && col < o.Cols
}

// Passable reports whether c is covered and not blocked.
func (o *DenseOracle) Passable(c Cell) bool {
	return o.InBounds(c) && !o.Blocked[o.index(c)]
}

// Block marks cells as obstructed. Cells outside the bitmap are ignored.
func (o *DenseOracle) Block(cells ...Cell) {
	for _, c := range cells {
		if o.InBounds(c) {
			o.Blocked[o.index(c)] = true
		}
	}
}
