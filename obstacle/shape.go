package obstacle

import (
	"fmt"

	"github.com/deadsy/sdfx/sdf"
	v2 "github.com/deadsy/sdfx/vec/v2"
)

// Shape is an obstacle outline that can be turned into a signed distance field.
type Shape interface {
	SDF() (sdf.SDF2, error)
}

// Compile-time interface checks.
var (
	_ Shape = Rect{}
	_ Shape = Polygon{}
	_ Shape = Circle{}
)

// Point is a planar coordinate: X is the column axis, Y the row axis.
type Point struct {
	X float64
	Y float64
}

func (p Point) vec() v2.Vec { return v2.Vec{X: p.X, Y: p.Y} }

// Rect is an axis-aligned rectangle spanning Min..Max.
type Rect struct {
	Min Point
	Max Point
}

// SDF returns the rectangle as a box centred between its corners.
func (r Rect) SDF() (sdf.SDF2, error) {
	w, h := r.Max.X-r.Min.X, r.Max.Y-r.Min.Y
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("rect %v..%v has non-positive size", r.Min, r.Max)
	}
	box := sdf.Box2D(v2.Vec{X: w, Y: h}, 0)
	centre := v2.Vec{X: r.Min.X + w/2, Y: r.Min.Y + h/2}
	return sdf.Transform2D(box, sdf.Translate2d(centre)), nil
}

// Polygon is a simple closed polygon. Vertex order may be either winding.
type Polygon struct {
	Vertices []Point
}

// SDF returns the polygon's signed distance field.
func (p Polygon) SDF() (sdf.SDF2, error) {
	if len(p.Vertices) < 3 {
		return nil, fmt.Errorf("polygon needs at least 3 vertices, got %d", len(p.Vertices))
	}
	vertices := make([]v2.Vec, len(p.Vertices))
	for i, v := range p.Vertices {
		vertices[i] = v.vec()
	}
	s, err := sdf.Polygon2D(vertices)
	if err != nil {
		return nil, fmt.Errorf("sdfx.Polygon2D: %w", err)
	}
	return s, nil
}

// Circle is a disc of Radius around Center.
type Circle struct {
	Center Point
	Radius float64
}

// SDF returns the translated circle.
func (c Circle) SDF() (sdf.SDF2, error) {
	s, err := sdf.Circle2D(c.Radius)
	if err != nil {
		return nil, fmt.Errorf("sdfx.Circle2D: %w", err)
	}
	return sdf.Transform2D(s, sdf.Translate2d(c.Center.vec())), nil
}
