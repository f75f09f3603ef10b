// Package mpr implements Minkowski Portal Refinement for 2D convex
// intersection testing.
//
// MPR bounds the origin with a "portal": a reference point R taken from the
// interior of the Minkowski difference plus two support points. The portal is
// swept toward the origin until the origin is provably inside or outside the
// difference. MPR only answers the boolean; separation recovery marches the
// refined portal simplex (less the reference point), and penetration recovery
// is delegated wholesale to the primary engine, whose simplex holds only
// boundary supports.
//
// References:
//   - Snethen: "XenoCollide: Complex Collision Made Simple" (Game Programming
//     Gems 7, 2008)
package mpr

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/lodehart/keel/geom"
	"github.com/lodehart/keel/gjk"
	"github.com/lodehart/keel/shape"
)

// Solver runs MPR queries with a fixed set of tolerances. Stateless between
// calls and safe for concurrent use.
type Solver struct {
	Tuning gjk.Tuning
}

func NewSolver(t gjk.Tuning) *Solver {
	return &Solver{Tuning: t}
}

// Detect refines a portal until the origin is classified. On return the
// simplex holds [R, A, B]; callers recovering a separation must drop the
// reference point R (index 0) before marching, since R is interior to the
// difference rather than on its boundary.
//
// Origin within NearZero of the portal line is classified as boundary
// contact: not colliding, zero gap.
func (s *Solver) Detect(a, b shape.Shape) (*gjk.State, error) {
	st := &gjk.State{}

	r := a.Centroid().Sub(b.Centroid())

	// Coincident centroids put the reference point on the origin and leave
	// every portal direction undefined. The centroid is interior to both
	// shapes, so this is a guaranteed overlap with an ill-defined axis:
	// nudge the reference along a fixed axis and refine as usual.
	if r.Dot(r) <= s.Tuning.NearZero*s.Tuning.NearZero {
		r = mgl64.Vec2{s.Tuning.NearZero, 0}
	}

	st.Simplex.Add(r)
	ro := r.Mul(-1)

	st.Dir = ro
	st.Simplex.Add(gjk.Support(a, b, st.Dir)) // A

	// Orient the R-A normal toward the origin to pick the portal's far side.
	ra := st.Simplex.At(1).Sub(r)
	raNorm := geom.Perp(ra)
	if raNorm.Dot(ro) > 0 {
		st.Dir = raNorm
	} else {
		st.Dir = raNorm.Mul(-1)
	}
	st.Simplex.Add(gjk.Support(a, b, st.Dir)) // B

	for range s.Tuning.PortalIterations {
		ptA := st.Simplex.At(1)
		ptB := st.Simplex.At(2)

		portal := ptB.Sub(ptA)
		if portal.Dot(portal) == 0 {
			// Both supports pinched onto one point, leaving no portal line
			// to refine. Only a pinch on the origin itself is single-point
			// contact; anywhere else the query cannot make progress.
			if ptA.Dot(ptA) <= s.Tuning.NearZero*s.Tuning.NearZero {
				st.Colliding = false
				return st, nil
			}
			return st, &gjk.ConvergenceError{Stage: "portal", Iterations: s.Tuning.PortalIterations}
		}

		// Outward normal of the portal, away from R.
		normal := geom.Perp(portal).Normalize()
		if normal.Dot(r.Sub(ptA)) > 0 {
			normal = normal.Mul(-1)
		}

		// Signed distance of the origin past the portal line. The origin is
		// already known to lie inside the R-A and R-B wedge, so this single
		// test settles containment.
		dist := -normal.Dot(ptA)

		switch {
		case dist > s.Tuning.NearZero:
			// Origin beyond the portal: push the portal outward.
			st.Dir = normal
			newPt := gjk.Support(a, b, st.Dir)

			if newPt.Dot(st.Dir) < 0 {
				// The difference ends before the origin.
				st.Colliding = false
				return st, nil
			}

			// Keep the portal point on the origin's side of R-C.
			rc := newPt.Sub(r)
			if geom.PerpDot(rc, ro)*geom.PerpDot(rc, ra) > 0 {
				st.Simplex.Set(2, newPt) // origin in the R-A-C wedge: drop B
			} else {
				st.Simplex.Set(1, newPt) // origin in the R-B-C wedge: drop A
			}
			ra = st.Simplex.At(1).Sub(r)

		case dist >= -s.Tuning.NearZero:
			// Origin on the portal: boundary contact.
			st.Colliding = false
			return st, nil

		default:
			st.Colliding = true
			return st, nil
		}
	}

	return st, &gjk.ConvergenceError{Stage: "portal", Iterations: s.Tuning.PortalIterations}
}
