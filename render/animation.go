// Package render turns a search result into animation frames: one frame per
// route step showing obstacles, the cells discovered so far, the route walked
// so far and the current position.
package render

import (
	"github.com/pdrpinto/dijkstra"
)

// Kind classifies a grid cell within one frame. Higher kinds are drawn on top.
type Kind uint8

const (
	Free Kind = iota
	Visited
	Obstacle
	Path
	Current
)

// Animation indexes a finished search for per-frame cell queries.
type Animation struct {
	grid       *dijkstra.Grid
	route      []dijkstra.Cell
	frames     [][]dijkstra.Cell
	discovered map[dijkstra.Cell]int
	step       map[dijkstra.Cell]int
}

// NewAnimation prepares res for rendering over grid. res must come from a
// successful search on the same grid.
func NewAnimation(grid *dijkstra.Grid, res dijkstra.Result) *Animation {
	a := &Animation{
		grid:       grid,
		route:      res.Route,
		frames:     res.Frames,
		discovered: make(map[dijkstra.Cell]int),
		step:       make(map[dijkstra.Cell]int, len(res.Route)),
	}
	// frames are prefixes of the discovery log; the last is the longest
	if n := len(res.Frames); n > 0 {
		for i, c := range res.Frames[n-1] {
			a.discovered[c] = i
		}
	}
	for i, c := range res.Route {
		if _, seen := a.step[c]; !seen {
			a.step[c] = i
		}
	}
	return a
}

// Len returns the number of frames.
func (a *Animation) Len() int { return len(a.route) }

// Bounds returns the drawable area.
func (a *Animation) Bounds() dijkstra.Bounds { return a.grid.Bounds() }

// Route returns the route cells.
func (a *Animation) Route() []dijkstra.Cell { return a.route }

// Frame returns the cells discovered by frame i.
func (a *Animation) Frame(i int) []dijkstra.Cell { return a.frames[i] }

// Blocked reports whether c is outside the grid or obstructed.
func (a *Animation) Blocked(c dijkstra.Cell) bool { return !a.grid.Open(c) }

// Kind classifies c in frame i.
func (a *Animation) Kind(c dijkstra.Cell, i int) Kind {
	if c == a.route[i] {
		return Current
	}
	if s, ok := a.step[c]; ok && s <= i {
		return Path
	}
	if a.Blocked(c) {
		return Obstacle
	}
	if d, ok := a.discovered[c]; ok && d < len(a.frames[i]) {
		return Visited
	}
	return Free
}
