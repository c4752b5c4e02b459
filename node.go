package dijkstra

// NoParent is the Parent handle of a root node.
const NoParent = -1

// Node is a search-tree record. Parent is a handle into the arena of the
// search that created it, never a pointer, so chains cannot form cycles.
type Node struct {
	Cell   Cell    `json:"cell"`
	Cost   float64 `json:"cost"`
	Seq    int     `json:"seq"`
	Parent int     `json:"parent"`
	Depth  int     `json:"depth"`
}

// arena owns every node created by one search. Handles are stable indices.
type arena struct {
	nodes []Node
}

func newArena(start Cell) *arena {
	a := &arena{nodes: make([]Node, 0, 64)}
	a.nodes = append(a.nodes, Node{Cell: start, Cost: 0, Seq: 0, Parent: NoParent, Depth: 0})
	return a
}

// extend creates a child of parent one move away. The child's sequence number
// equals its handle, so creation order and arena order agree.
func (a *arena) extend(parent int, to Cell, stepCost float64) int {
	p := a.nodes[parent]
	handle := len(a.nodes)
	a.nodes = append(a.nodes, Node{
		Cell:   to,
		Cost:   p.Cost + stepCost,
		Seq:    handle,
		Parent: parent,
		Depth:  p.Depth + 1,
	})
	return handle
}

func (a *arena) get(handle int) Node { return a.nodes[handle] }

func (a *arena) len() int { return len(a.nodes) }
