// Package dijkstra provides a uniform-cost (Dijkstra) search over 8-connected
// occupancy grids, together with the trace data needed to animate it.
//
// It exposes three main entry points:
//
//   - Search: run the algorithm to completion and get a Result with the route,
//     the discovery log and one visited-cell frame per route step.
//   - Stepper: iterate the search one extraction at a time to drive UIs or debugging tools.
//   - SearchBatch: run many independent start/goal pairs over a worker pool.
//
// A Grid is the immutable configuration shared by every search: bounds, the
// cardinal/diagonal cost table and the occupancy Oracle. Each search owns its own
// frontier, discovery log and node arena, so concurrent searches over one Grid
// share no mutable state.
package dijkstra
