package obstacle

import (
	"context"
	"errors"
	"testing"

	"github.com/pdrpinto/dijkstra"
)

func bounds(rows, cols int) dijkstra.Bounds {
	return dijkstra.Bounds{Rows: dijkstra.Range{Lo: 0, Hi: rows}, Cols: dijkstra.Range{Lo: 0, Hi: cols}}
}

func TestRasterizeRect(t *testing.T) {
	m, err := Rasterize(bounds(20, 20), 0, Rect{Min: Point{5, 8}, Max: Point{10, 12}})
	if err != nil {
		t.Fatalf("Rasterize: %v", err)
	}
	tests := []struct {
		cell    dijkstra.Cell
		blocked bool
	}{
		{dijkstra.Cell{Row: 10, Col: 7}, true},
		{dijkstra.Cell{Row: 8, Col: 5}, true}, // corner lies on the boundary
		{dijkstra.Cell{Row: 7, Col: 7}, false},
		{dijkstra.Cell{Row: 10, Col: 11}, false},
		{dijkstra.Cell{Row: 0, Col: 0}, false},
	}
	for _, tt := range tests {
		if got := m.Blocked(tt.cell); got != tt.blocked {
			t.Errorf("Blocked(%v) = %v, want %v", tt.cell, got, tt.blocked)
		}
	}
	// 6 columns x 5 rows, boundaries included
	if m.BlockedCount() != 30 {
		t.Errorf("BlockedCount = %d, want 30", m.BlockedCount())
	}
}

func TestRasterizeClearancePadsShapes(t *testing.T) {
	circle := Circle{Center: Point{10, 10}, Radius: 2}
	tight, err := Rasterize(bounds(21, 21), 0, circle)
	if err != nil {
		t.Fatalf("Rasterize: %v", err)
	}
	padded, err := Rasterize(bounds(21, 21), 3, circle)
	if err != nil {
		t.Fatalf("Rasterize: %v", err)
	}
	probe := dijkstra.Cell{Row: 10, Col: 14}
	if tight.Blocked(probe) {
		t.Errorf("%v should be free without clearance", probe)
	}
	if !padded.Blocked(probe) {
		t.Errorf("%v should be blocked with clearance 3", probe)
	}
	if padded.BlockedCount() <= tight.BlockedCount() {
		t.Errorf("padding did not grow the obstacle: %d <= %d", padded.BlockedCount(), tight.BlockedCount())
	}
}

func TestRasterizeErrors(t *testing.T) {
	if _, err := Rasterize(bounds(0, 5), 0); !errors.Is(err, ErrEmptyExtent) {
		t.Errorf("empty extent: err = %v", err)
	}
	if _, err := Rasterize(bounds(5, 5), -1); err == nil {
		t.Error("negative clearance should fail")
	}
	if _, err := Rasterize(bounds(5, 5), 0, Polygon{Vertices: []Point{{0, 0}, {1, 1}}}); err == nil {
		t.Error("degenerate polygon should fail")
	}
	if _, err := Rasterize(bounds(5, 5), 0, Rect{Min: Point{3, 3}, Max: Point{1, 1}}); err == nil {
		t.Error("inverted rect should fail")
	}
}

func TestMapOracleOutsideExtent(t *testing.T) {
	m, err := Rasterize(bounds(4, 4), 0)
	if err != nil {
		t.Fatalf("Rasterize: %v", err)
	}
	outside := dijkstra.Cell{Row: 4, Col: 0}
	if m.InBounds(outside) || m.Passable(outside) || m.Blocked(outside) {
		t.Errorf("cell %v outside the extent must be neither passable nor blocked", outside)
	}
	if !m.Passable(dijkstra.Cell{Row: 3, Col: 3}) {
		t.Error("empty map should be passable")
	}
}

func TestReferenceScene(t *testing.T) {
	scene := ReferenceScene()
	g, m, err := scene.Grid()
	if err != nil {
		t.Fatalf("Grid: %v", err)
	}

	blocked := []dijkstra.Cell{
		{Row: 50, Col: 125},  // lower rectangle
		{Row: 200, Col: 125}, // upper rectangle
		{Row: 125, Col: 300}, // hexagon centre
		{Row: 125, Col: 480}, // triangle
		{Row: 50, Col: 97},   // inside the lower rectangle's padding
	}
	for _, c := range blocked {
		if m.Passable(c) {
			t.Errorf("%v should be blocked", c)
		}
	}
	free := []dijkstra.Cell{{Row: 125, Col: 125}, {Row: 20, Col: 20}, {Row: 230, Col: 560}}
	for _, c := range free {
		if !m.Passable(c) {
			t.Errorf("%v should be free", c)
		}
	}

	if err := g.Validate(dijkstra.Cell{Row: 2, Col: 50}); !errors.Is(err, dijkstra.ErrOutOfBounds) {
		t.Errorf("border padding should be out of bounds, got %v", err)
	}

	res, err := dijkstra.Search(context.Background(), g, dijkstra.Cell{Row: 20, Col: 20}, dijkstra.Cell{Row: 125, Col: 125})
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	for _, c := range res.Route {
		if !m.Passable(c) {
			t.Fatalf("route crosses obstacle at %v", c)
		}
	}
}
