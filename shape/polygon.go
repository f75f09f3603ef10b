package shape

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/lodehart/keel/geom"
)

// Polygon is a convex polygon described by its boundary vertices.
// Vertices are normalized to counterclockwise order at construction.
type Polygon struct {
	vertices []mgl64.Vec2
	centroid mgl64.Vec2
}

// NewPolygon validates and builds a polygon. At least 3 vertices are
// required, and the vertex set must span a nonzero area.
func NewPolygon(vertices []mgl64.Vec2) (*Polygon, error) {
	if len(vertices) < 3 {
		return nil, fmt.Errorf("polygon needs at least 3 vertices, got %d: %w", len(vertices), ErrDegenerate)
	}

	arranged := geom.ArrangePoints(vertices)

	area := 0.0
	for i := range arranged {
		j := (i + 1) % len(arranged)
		area += geom.PerpDot(arranged[i], arranged[j])
	}
	if area == 0 {
		return nil, fmt.Errorf("polygon vertices are collinear: %w", ErrDegenerate)
	}

	var centroid mgl64.Vec2
	for _, v := range arranged {
		centroid = centroid.Add(v)
	}
	centroid = centroid.Mul(1.0 / float64(len(arranged)))

	return &Polygon{vertices: arranged, centroid: centroid}, nil
}

// Box builds an axis-aligned rectangle from two opposite corners.
// Convenience constructor used heavily by tests.
func Box(min, max mgl64.Vec2) (*Polygon, error) {
	return NewPolygon([]mgl64.Vec2{
		{min.X(), min.Y()},
		{max.X(), min.Y()},
		{max.X(), max.Y()},
		{min.X(), max.Y()},
	})
}

// Support returns the vertex with the greatest projection onto direction.
// Linear scan over the boundary.
func (p *Polygon) Support(direction mgl64.Vec2) mgl64.Vec2 {
	best := p.vertices[0]
	bestDot := best.Dot(direction)

	for _, v := range p.vertices[1:] {
		if d := v.Dot(direction); d > bestDot {
			best = v
			bestDot = d
		}
	}

	return best
}

func (p *Polygon) Centroid() mgl64.Vec2 {
	return p.centroid
}

// Vertices returns the boundary vertices in counterclockwise order.
// The returned slice is shared; callers must not mutate it.
func (p *Polygon) Vertices() []mgl64.Vec2 {
	return p.vertices
}

// Translated returns a copy of the polygon displaced by delta.
func (p *Polygon) Translated(delta mgl64.Vec2) *Polygon {
	moved := make([]mgl64.Vec2, len(p.vertices))
	for i, v := range p.vertices {
		moved[i] = v.Add(delta)
	}

	return &Polygon{vertices: moved, centroid: p.centroid.Add(delta)}
}
