package obstacle

import (
	"errors"
	"fmt"
	"runtime"
	"sync"

	"github.com/deadsy/sdfx/sdf"
	v2 "github.com/deadsy/sdfx/vec/v2"

	"github.com/pdrpinto/dijkstra"
)

// ErrEmptyExtent is returned when a scene covers no cells.
var ErrEmptyExtent = errors.New("obstacle map extent is empty")

// Compile-time interface check.
var _ dijkstra.Oracle = (*Map)(nil)

// Map is a dense, read-only occupancy bitmap over Extent.
type Map struct {
	extent  dijkstra.Bounds
	cols    int
	blocked []bool
	count   int
}

// Rasterize samples the union of shapes at every cell of extent. Cells whose
// distance to the union is <= clearance are blocked. Rows are sampled in
// parallel; the result never changes afterwards.
func Rasterize(extent dijkstra.Bounds, clearance float64, shapes ...Shape) (*Map, error) {
	rows, cols := extent.Rows.Len(), extent.Cols.Len()
	if rows == 0 || cols == 0 {
		return nil, ErrEmptyExtent
	}
	if clearance < 0 {
		return nil, fmt.Errorf("clearance must be non-negative, got %v", clearance)
	}
	m := &Map{extent: extent, cols: cols, blocked: make([]bool, rows*cols)}
	if len(shapes) == 0 {
		return m, nil
	}

	fields := make([]sdf.SDF2, 0, len(shapes))
	for i, shape := range shapes {
		field, err := shape.SDF()
		if err != nil {
			return nil, fmt.Errorf("shape %d: %w", i, err)
		}
		fields = append(fields, field)
	}
	union := sdf.Union2D(fields...)

	rowCh := make(chan int)
	counts := make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < min(runtime.NumCPU(), rows); w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			n := 0
			for r := range rowCh {
				y := float64(extent.Rows.Lo + r)
				base := r * cols
				for c := 0; c < cols; c++ {
					p := v2.Vec{X: float64(extent.Cols.Lo + c), Y: y}
					if union.Evaluate(p) <= clearance {
						m.blocked[base+c] = true
						n++
					}
				}
			}
			counts <- n
		}()
	}
	go func() {
		for r := 0; r < rows; r++ {
			rowCh <- r
		}
		close(rowCh)
		wg.Wait()
		close(counts)
	}()
	for n := range counts {
		m.count += n
	}
	return m, nil
}

// Extent returns the covered area.
func (m *Map) Extent() dijkstra.Bounds { return m.extent }

// BlockedCount returns the number of obstructed cells.
func (m *Map) BlockedCount() int { return m.count }

// InBounds reports whether c is covered by the bitmap.
func (m *Map) InBounds(c dijkstra.Cell) bool { return m.extent.Contains(c) }

// Passable reports whether c is covered and free.
func (m *Map) Passable(c dijkstra.Cell) bool {
	return m.InBounds(c) && !m.blocked[m.index(c)]
}

// Blocked reports whether c is covered and obstructed.
func (m *Map) Blocked(c dijkstra.Cell) bool {
	return m.InBounds(c) && m.blocked[m.index(c)]
}

func (m *Map) index(c dijkstra.Cell) int {
	return (c.Row-m.extent.Rows.Lo)*m.cols + (c.Col - m.extent.Cols.Lo)
}
