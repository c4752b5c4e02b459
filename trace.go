package dijkstra

import (
	"slices"
	"sort"
)

// Trace derives one visited-cell frame per route step: frame i holds every
// cell whose discovery sequence number is <= route[i].Seq, in discovery order.
//
// Frames are prefixes of a single backing slice with capacity clipped to their
// length, so appending to a frame never clobbers a later one.
func Trace(route []Node, visits []Visit) [][]Cell {
	if len(route) == 0 {
		return nil
	}
	ordered := visits
	if !slices.IsSortedFunc(ordered, compareVisits) {
		ordered = slices.Clone(visits)
		slices.SortStableFunc(ordered, compareVisits)
	}
	cells := make([]Cell, len(ordered))
	for i, v := range ordered {
		cells[i] = v.Cell
	}

	frames := make([][]Cell, len(route))
	for i, step := range route {
		k := sort.Search(len(ordered), func(j int) bool { return ordered[j].Seq > step.Seq })
		frames[i] = cells[:k:k]
	}
	return frames
}

func compareVisits(a, b Visit) int { return a.Seq - b.Seq }
