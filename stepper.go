package dijkstra

import (
	"context"
	"slices"
)

// StepSnapshot exposes the per-iteration change of the search. Current is the
// cell finalized by this step and Discovered the cells it added to the
// frontier; the full sets are available from Stepper.Open and Stepper.Closed.
type StepSnapshot struct {
	Current    Cell
	Cost       float64
	Discovered []Cell
	Done       bool
	Found      bool
	Route      []Cell
	StepIndex  int
}

// Stepper runs the search one frontier extraction at a time. It is not safe
// for concurrent use; independent Steppers may run in parallel over one Grid.
type Stepper struct {
	ctx    context.Context
	cancel context.CancelFunc
	grid   *Grid
	start  Cell
	goal   Cell

	nodes  *arena
	open   *frontier
	visits *visitLog
	moves  []Move

	stepCount    int
	decreaseKeys int
	goalHandle   int
	done         bool
	found        bool
	err          error
}

// NewStepper validates both endpoints and seeds the frontier with the start
// cell. Endpoint errors are returned before any node is created.
func NewStepper(parent context.Context, grid *Grid, start, goal Cell) (*Stepper, error) {
	if err := grid.Validate(start); err != nil {
		return nil, &EndpointError{Endpoint: "start", Cell: start, Err: err}
	}
	if err := grid.Validate(goal); err != nil {
		return nil, &EndpointError{Endpoint: "goal", Cell: goal, Err: err}
	}

	ctx, cancel := context.WithCancel(parent)
	s := &Stepper{
		ctx: ctx, cancel: cancel,
		grid: grid, start: start, goal: goal,
		nodes:      newArena(start),
		open:       newFrontier(),
		visits:     newVisitLog(),
		moves:      make([]Move, 0, directionCount),
		goalHandle: NoParent,
	}
	root := s.nodes.get(0)
	s.open.push(root, 0)
	s.visits.discover(start, root.Seq)
	return s, nil
}

// Close releases the stepper's context. Further steps report it as cancelled.
func (s *Stepper) Close() {
	if s.cancel != nil {
		s.cancel()
	}
}

// advance performs one extraction and relaxes its moves. It returns the
// extracted node and the cells discovered by this extraction.
func (s *Stepper) advance() (Node, []Cell) {
	if s.done {
		return Node{}, nil
	}
	if s.open.Len() == 0 {
		s.done = true
		s.err = ErrNoPathFound
		return Node{}, nil
	}
	if err := s.ctx.Err(); err != nil {
		s.done = true
		s.err = err
		return Node{}, nil
	}

	item := s.open.popMin()
	current := s.nodes.get(item.Handle)
	s.visits.finalize(current.Cell)
	s.stepCount++

	if current.Cell == s.goal {
		s.done = true
		s.found = true
		s.goalHandle = item.Handle
		return current, nil
	}

	var discovered []Cell
	s.moves = s.grid.appendMoves(s.moves[:0], current.Cell)
	for _, move := range s.moves {
		if s.visits.isFinalized(move.To) {
			continue
		}
		tentative := current.Cost + move.Cost
		if existing, inOpen := s.open.lookup(move.To); inOpen {
			if tentative < existing.Cost {
				handle := s.nodes.extend(item.Handle, move.To, move.Cost)
				s.open.replace(existing, s.nodes.get(handle), handle)
				s.decreaseKeys++
			}
			continue
		}
		handle := s.nodes.extend(item.Handle, move.To, move.Cost)
		child := s.nodes.get(handle)
		s.open.push(child, handle)
		s.visits.discover(child.Cell, child.Seq)
		discovered = append(discovered, child.Cell)
	}
	return current, discovered
}

// Step advances the search by one extraction and returns a snapshot. Once the
// search is done every further call returns the final snapshot and error.
func (s *Stepper) Step() (StepSnapshot, error) {
	if s.done {
		return s.finalSnapshot(), s.err
	}
	current, discovered := s.advance()
	snap := StepSnapshot{
		Current:    current.Cell,
		Cost:       current.Cost,
		Discovered: discovered,
		Done:       s.done,
		Found:      s.found,
		StepIndex:  s.stepCount,
	}
	if s.found {
		snap.Route = Reconstruct(s.nodes.nodes, s.goalHandle)
	}
	return snap, s.err
}

func (s *Stepper) finalSnapshot() StepSnapshot {
	snap := StepSnapshot{
		Done:      true,
		Found:     s.found,
		StepIndex: s.stepCount,
	}
	if s.found {
		goal := s.nodes.get(s.goalHandle)
		snap.Current, snap.Cost = goal.Cell, goal.Cost
		snap.Route = Reconstruct(s.nodes.nodes, s.goalHandle)
	}
	return snap
}

// Run drives the search to completion.
func (s *Stepper) Run() error {
	for !s.done {
		s.advance()
	}
	return s.err
}

// Open returns the cells currently in the frontier, in heap order.
func (s *Stepper) Open() []Cell { return s.open.cells() }

// Closed returns a copy of the finalized cells in extraction order.
func (s *Stepper) Closed() []Cell { return slices.Clone(s.visits.expanded) }

// Done reports whether the search has terminated.
func (s *Stepper) Done() bool { return s.done }

// Tree returns the node arena. Handles index into it; the slice must not be modified.
func (s *Stepper) Tree() []Node { return s.nodes.nodes }

// GoalHandle returns the arena handle of the goal node, or NoParent.
func (s *Stepper) GoalHandle() int { return s.goalHandle }

// Visits returns a copy of the discovery log in sequence order.
func (s *Stepper) Visits() []Visit { return s.visits.snapshot() }

// Result assembles the outcome of a finished search. It returns
// ErrNoPathFound (or the cancellation cause) when no route exists.
func (s *Stepper) Result() (Result, error) {
	result := Result{
		ExpandedNodes: len(s.visits.expanded),
		CreatedNodes:  s.nodes.len(),
		DecreaseKeys:  s.decreaseKeys,
	}
	if !s.done {
		return result, errNotDone
	}
	if !s.found {
		return result, s.err
	}
	route := ReconstructNodes(s.nodes.nodes, s.goalHandle)
	result.Found = true
	result.Nodes = route
	result.Route = cellsOf(route)
	result.TotalCost = route[len(route)-1].Cost
	result.Visits = s.visits.snapshot()
	result.Frames = Trace(route, result.Visits)
	return result, nil
}
