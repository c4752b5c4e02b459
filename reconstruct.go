package dijkstra

import "github.com/pdrpinto/dijkstra/internal"

// ReconstructNodes walks parent handles from goal back to the root and returns
// the chain in root-to-goal order. An out-of-range handle yields nil.
func ReconstructNodes(tree []Node, goal int) []Node {
	if goal < 0 || goal >= len(tree) {
		return nil
	}
	path := make([]Node, 0, tree[goal].Depth+1)
	for handle := goal; handle != NoParent; handle = tree[handle].Parent {
		path = append(path, tree[handle])
	}
	internal.Reverse(path)
	return path
}

// Reconstruct is ReconstructNodes reduced to the route cells.
func Reconstruct(tree []Node, goal int) []Cell {
	return cellsOf(ReconstructNodes(tree, goal))
}

func cellsOf(nodes []Node) []Cell {
	if nodes == nil {
		return nil
	}
	cells := make([]Cell, len(nodes))
	for i, n := range nodes {
		cells[i] = n.Cell
	}
	return cells
}
