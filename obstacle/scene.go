package obstacle

import (
	"fmt"

	"github.com/pdrpinto/dijkstra"
)

// Scene bundles obstacle geometry with the area it is rasterized over and the
// narrower bounds searches are confined to.
type Scene struct {
	Extent    dijkstra.Bounds
	Bounds    dijkstra.Bounds
	Clearance float64
	Shapes    []Shape
}

// Rasterize builds the scene's occupancy map.
func (s Scene) Rasterize() (*Map, error) {
	return Rasterize(s.Extent, s.Clearance, s.Shapes...)
}

// Grid rasterizes the scene and wraps it in a dijkstra.Grid.
func (s Scene) Grid(options ...dijkstra.GridOption) (*dijkstra.Grid, *Map, error) {
	m, err := s.Rasterize()
	if err != nil {
		return nil, nil, err
	}
	g, err := dijkstra.NewGrid(s.Bounds, m, options...)
	if err != nil {
		return nil, nil, fmt.Errorf("scene grid: %w", err)
	}
	return g, m, nil
}

// ReferenceScene is the 250x600 workspace with two rectangles, a hexagon and
// a triangle, padded by 5 units. Searches stay 5 units away from the border.
func ReferenceScene() Scene {
	return Scene{
		Extent:    dijkstra.Bounds{Rows: dijkstra.Range{Lo: 0, Hi: 250}, Cols: dijkstra.Range{Lo: 0, Hi: 600}},
		Bounds:    dijkstra.Bounds{Rows: dijkstra.Range{Lo: 5, Hi: 245}, Cols: dijkstra.Range{Lo: 5, Hi: 595}},
		Clearance: 5,
		Shapes: []Shape{
			Rect{Min: Point{100, 0}, Max: Point{150, 100}},
			Rect{Min: Point{100, 150}, Max: Point{150, 250}},
			Polygon{Vertices: []Point{
				{235, 162.5}, {300, 200}, {365, 162.5},
				{365, 87.5}, {300, 50}, {235, 87.5},
			}},
			Polygon{Vertices: []Point{{460, 225}, {510, 125}, {460, 25}}},
		},
	}
}
