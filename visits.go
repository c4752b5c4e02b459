package dijkstra

// Visit records the first discovery of a cell and the sequence number of the
// node that discovered it.
type Visit struct {
	Cell Cell `json:"cell"`
	Seq  int  `json:"seq"`
}

// visitLog is the insertion-ordered discovery record plus the finalized set.
// A cell is discovered when it first enters the frontier and finalized when it
// is extracted; only finalized cells are excluded from relaxation.
type visitLog struct {
	order     []Visit
	seen      map[Cell]struct{}
	finalized map[Cell]struct{}
	expanded  []Cell
}

func newVisitLog() *visitLog {
	return &visitLog{
		order:     make([]Visit, 0, 64),
		seen:      make(map[Cell]struct{}),
		finalized: make(map[Cell]struct{}),
	}
}

// discover appends c unless it is already recorded. First insertion wins.
func (v *visitLog) discover(c Cell, seq int) {
	if _, ok := v.seen[c]; ok {
		return
	}
	v.seen[c] = struct{}{}
	v.order = append(v.order, Visit{Cell: c, Seq: seq})
}

func (v *visitLog) finalize(c Cell) {
	v.finalized[c] = struct{}{}
	v.expanded = append(v.expanded, c)
}

func (v *visitLog) isFinalized(c Cell) bool {
	_, ok := v.finalized[c]
	return ok
}

func (v *visitLog) snapshot() []Visit {
	out := make([]Visit, len(v.order))
	copy(out, v.order)
	return out
}
