package dijkstra

import (
	"math"
	"testing"
)

func newTestGrid(t *testing.T, rows, cols int, blocked []Cell, options ...GridOption) *Grid {
	t.Helper()
	bounds := Bounds{Rows: Range{0, rows}, Cols: Range{0, cols}}
	oracle := NewDenseOracle(bounds)
	oracle.Block(blocked...)
	g, err := NewGrid(bounds, oracle, options...)
	if err != nil {
		t.Fatalf("NewGrid: %v", err)
	}
	return g
}

func almostEqual(a, b float64) bool { return math.Abs(a-b) < 1e-9 }

// stepCost returns the move cost between adjacent cells, or false if b is not
// a valid move from a.
func stepCost(g *Grid, a, b Cell) (float64, bool) {
	for _, m := range g.Moves(a) {
		if m.To == b {
			return m.Cost, true
		}
	}
	return 0, false
}

// referenceCosts is a textbook O(V^2) Dijkstra that finalizes cells on
// extraction. Unreachable cells get +Inf.
func referenceCosts(g *Grid, start Cell) map[Cell]float64 {
	dist := map[Cell]float64{}
	b := g.Bounds()
	for r := b.Rows.Lo; r < b.Rows.Hi; r++ {
		for c := b.Cols.Lo; c < b.Cols.Hi; c++ {
			dist[Cell{r, c}] = math.Inf(1)
		}
	}
	dist[start] = 0
	done := map[Cell]bool{}
	for {
		best, bestCost := Cell{}, math.Inf(1)
		for c, d := range dist {
			if !done[c] && d < bestCost {
				best, bestCost = c, d
			}
		}
		if math.IsInf(bestCost, 1) {
			return dist
		}
		done[best] = true
		for _, m := range g.Moves(best) {
			if nd := bestCost + m.Cost; nd < dist[m.To] {
				dist[m.To] = nd
			}
		}
	}
}
