// Package shape defines the convex shapes the collision engines operate on.
//
// Shapes are defined by their support mapping rather than a type hierarchy:
// any convex shape that can answer "furthest point in a direction" works with
// every engine. Shapes must be treated as immutable snapshots for the
// duration of a collision query.
package shape

import (
	"errors"

	"github.com/go-gl/mathgl/mgl64"
)

// ErrDegenerate is returned by constructors for shapes that cannot provide a
// meaningful support mapping (too few vertices, zero extent, non-positive
// radius).
var ErrDegenerate = errors.New("shape: degenerate geometry")

// Shape is the capability set consumed by the collision engines.
//
// Support returns the furthest point of the shape in the given direction.
// The direction need not be normalized. The nearest point in a direction,
// used by the Minkowski difference, is Support of the negated direction.
type Shape interface {
	Support(direction mgl64.Vec2) mgl64.Vec2
	Centroid() mgl64.Vec2
}
