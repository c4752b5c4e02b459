package dijkstra

import "fmt"

// Cell is a grid coordinate. Two cells are the same search vertex iff their
// coordinates are equal.
type Cell struct {
	Row int `json:"row" toml:"row"`
	Col int `json:"col" toml:"col"`
}

func (c Cell) String() string { return fmt.Sprintf("(%d,%d)", c.Row, c.Col) }

// Add returns c shifted by the offset of d.
func (c Cell) Add(d Direction) Cell {
	off := directionOffsets[d]
	return Cell{Row: c.Row + off[0], Col: c.Col + off[1]}
}

// Direction is one of the eight grid moves.
type Direction int8

// Canonical generation order. Changing it changes discovery traces.
const (
	Up Direction = iota
	Down
	Left
	Right
	UpLeft
	UpRight
	DownRight
	DownLeft
	directionCount
)

// Directions lists all moves in canonical order.
var Directions = [directionCount]Direction{Up, Down, Left, Right, UpLeft, UpRight, DownRight, DownLeft}

// Row/column offsets, indexed by Direction. "Up" increases the row index.
var directionOffsets = [directionCount][2]int{
	{+1, 0}, {-1, 0}, {0, -1}, {0, +1},
	{+1, -1}, {+1, +1}, {-1, +1}, {-1, -1},
}

var directionNames = [directionCount]string{"U", "D", "L", "R", "UL", "UR", "DR", "DL"}

func (d Direction) String() string {
	if d < 0 || d >= directionCount {
		return fmt.Sprintf("Direction(%d)", int8(d))
	}
	return directionNames[d]
}

// Diagonal reports whether d changes both row and column.
func (d Direction) Diagonal() bool { return d >= UpLeft && d < directionCount }

// CostTable holds the incremental cost of cardinal and diagonal steps.
type CostTable struct {
	Cardinal float64 `json:"cardinal" toml:"cardinal"`
	Diagonal float64 `json:"diagonal" toml:"diagonal"`
}

// DefaultCosts is the simplified 1.0 / 1.4 cost model (1.4, not √2).
var DefaultCosts = CostTable{Cardinal: 1.0, Diagonal: 1.4}

// Of returns the cost of a single step in direction d.
func (t CostTable) Of(d Direction) float64 {
	if d.Diagonal() {
		return t.Diagonal
	}
	return t.Cardinal
}

// Move is a valid one-step extension from a cell.
type Move struct {
	Dir  Direction
	To   Cell
	Cost float64
}
