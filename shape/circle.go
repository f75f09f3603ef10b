package shape

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
)

// Circle is a disc with a center and radius.
type Circle struct {
	center mgl64.Vec2
	radius float64
}

// NewCircle validates and builds a circle. The radius must be positive.
func NewCircle(center mgl64.Vec2, radius float64) (*Circle, error) {
	if radius <= 0 {
		return nil, fmt.Errorf("circle radius %v: %w", radius, ErrDegenerate)
	}

	return &Circle{center: center, radius: radius}, nil
}

// Support returns the boundary point furthest along direction.
// A zero direction maps to the center.
func (c *Circle) Support(direction mgl64.Vec2) mgl64.Vec2 {
	lenSqr := direction.Dot(direction)
	if lenSqr == 0 {
		return c.center
	}

	return c.center.Add(direction.Mul(c.radius / direction.Len()))
}

func (c *Circle) Centroid() mgl64.Vec2 {
	return c.center
}

// Translated returns a copy of the circle displaced by delta.
func (c *Circle) Translated(delta mgl64.Vec2) *Circle {
	return &Circle{center: c.center.Add(delta), radius: c.radius}
}

// Radius returns the circle radius.
func (c *Circle) Radius() float64 {
	return c.radius
}
