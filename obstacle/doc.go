// Package obstacle rasterizes planar obstacle geometry into a dense occupancy
// bitmap usable as a dijkstra.Oracle.
//
// Shapes are expressed as 2-D signed distance fields (github.com/deadsy/sdfx).
// Geometry uses x for the column axis and y for the row axis; a cell is
// sampled at its integer coordinate and is blocked when its distance to the
// nearest shape is at most the scene clearance.
package obstacle
