// Package epa implements the Expanding Polytope Algorithm for computing 2D
// penetration depth.
//
// EPA runs after an intersection test has produced a simplex containing the
// origin. It expands that simplex along the edge currently closest to the
// origin until no support point improves on it; the perpendicular from the
// origin to that final edge is the minimum translation vector.
//
// References:
//   - Van den Bergen: "Proximity Queries and Penetration Depth Computation on
//     3D Game Objects" (2001)
package epa

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/lodehart/keel/geom"
	"github.com/lodehart/keel/gjk"
	"github.com/lodehart/keel/shape"
)

// Penetrate recovers the penetration vector for two shapes whose terminal
// simplex contains the origin. The returned vector is the displacement to
// apply to shape B to fully separate it from shape A; its magnitude is the
// penetration depth and its direction the separating axis.
//
// A ConvergenceError is returned if the expansion cap is exhausted; no
// degenerate zero vector is ever substituted for a real answer.
func Penetrate(a, b shape.Shape, st *gjk.State, t gjk.Tuning) (mgl64.Vec2, error) {
	polytope := NewPolytope(st.Simplex.Points())

	for range t.EPAIterations {
		edge := polytope.ClosestEdge()

		newPt := gjk.Support(a, b, edge.Normal)
		dist := math.Abs(newPt.Dot(edge.Normal))

		// The support point does not extend past the closest edge: that
		// edge lies on the boundary of the Minkowski difference and the
		// perpendicular to it is the penetration vector.
		if dist-edge.Distance <= t.Convergence {
			return geom.LineDisplacement(mgl64.Vec2{}, edge.A, edge.B), nil
		}

		polytope.Insert(edge.Index, newPt)
	}

	return mgl64.Vec2{}, &gjk.ConvergenceError{Stage: "epa", Iterations: t.EPAIterations}
}
