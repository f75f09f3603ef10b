// Package gjk implements the Gilbert-Johnson-Keerthi (GJK) algorithm for 2D
// convex collision detection.
//
// GJK detects whether two convex shapes overlap by testing if their Minkowski
// difference contains the origin. The algorithm builds a simplex of at most
// three points incrementally, refining it toward the origin with a per-size
// case analysis (line vs. triangle). When the shapes do not overlap, the
// terminal simplex doubles as the starting point for the minimum-displacement
// march (see Distance).
//
// References:
//   - Gilbert, Johnson, Keerthi: "A Fast Procedure for Computing the Distance
//     Between Complex Objects in Three-Dimensional Space" (1988)
//   - Van den Bergen: "Collision Detection in Interactive 3D Environments" (2003)
package gjk

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/lodehart/keel/geom"
	"github.com/lodehart/keel/shape"
)

// Support computes a support point of the Minkowski difference A - B in the
// given direction: the furthest point of A minus the nearest point of B.
// The direction need not be normalized. This is the only geometry query the
// algorithms make, which is what lets polygons, circles and future shape
// kinds share the same engine code.
func Support(a, b shape.Shape, direction mgl64.Vec2) mgl64.Vec2 {
	return a.Support(direction).Sub(b.Support(direction.Mul(-1)))
}

// Solver runs GJK queries with a fixed set of tolerances. Solvers are
// stateless between calls and safe for concurrent use.
type Solver struct {
	Tuning Tuning
}

func NewSolver(t Tuning) *Solver {
	return &Solver{Tuning: t}
}

// Detect builds and evolves a simplex toward the origin and reports whether
// the shapes intersect. The returned State carries the terminal simplex and
// search direction for reuse by penetration or distance recovery.
//
// Exact boundary contact is classified as not colliding: the caller sees
// Colliding == false and Distance reports a zero displacement.
//
// A ConvergenceError is returned if the iteration cap is exhausted; the
// verdict is then unreliable and the pair should be retried or skipped.
func (s *Solver) Detect(a, b shape.Shape) (*State, error) {
	st := &State{}

	// Seeding toward the other shape typically converges in a few
	// iterations. Coincident centroids leave the direction undefined, so
	// fall back to a fixed axis.
	dir := b.Centroid().Sub(a.Centroid())
	if dir.Dot(dir) == 0 {
		dir = mgl64.Vec2{1, 0}
	}

	st.Simplex.Add(Support(a, b, dir))
	st.Dir = st.Simplex.At(0).Mul(-1)

	// First support point on the origin: the boundaries touch.
	if st.Dir.Dot(st.Dir) <= s.Tuning.NearZero*s.Tuning.NearZero {
		return st, nil
	}

	for range s.Tuning.GJKIterations {
		newPt := Support(a, b, st.Dir)

		// If the new point does not pass the origin along the search
		// direction, the difference cannot contain the origin.
		if newPt.Dot(st.Dir) <= 0 {
			st.Colliding = false
			return st, nil
		}

		st.Simplex.Add(newPt)
		s.evolve(a, b, st)

		if st.Colliding {
			return st, nil
		}

		// The zero direction is the on-edge sentinel set by the case
		// analysis: the origin sits on the retained feature and that
		// feature lies on the difference boundary, so the shapes touch.
		if st.Dir == (mgl64.Vec2{}) {
			return st, nil
		}
	}

	return st, &ConvergenceError{Stage: "gjk", Iterations: s.Tuning.GJKIterations}
}

// evolve dispatches the case analysis on the current simplex size, updating
// the simplex and search direction in place.
func (s *Solver) evolve(a, b shape.Shape, st *State) {
	switch st.Simplex.Len() {
	case 2:
		s.lineSimplex(a, b, st)
	case 3:
		s.triangleSimplex(st)
	}
}

// lineSimplex handles the 2-point simplex. The newest point A was taken in
// the direction of the origin, so the older point B alone cannot be the
// closest feature: either the segment body is closest, or A is.
func (s *Solver) lineSimplex(a, b shape.Shape, st *State) {
	// Simplex mapping: B=0, A=1.
	pa := st.Simplex.At(1)
	pb := st.Simplex.At(0)

	ab := pb.Sub(pa)
	ao := pa.Mul(-1)

	t := ab.Dot(ao)

	if t > 0 {
		cross := geom.PerpDot(ab, ao)

		// Origin on the segment between the two supports. The segment is
		// only a chord of the difference, which may still extend to either
		// side of it, so the verdict needs further support queries.
		if cross*cross <= s.Tuning.NearZero*s.Tuning.NearZero*ab.Dot(ab) &&
			t <= ab.Dot(ab) {
			s.chordSimplex(a, b, st, ab)
			return
		}

		// Segment body is closest: search perpendicular to it, on the
		// origin's side.
		if cross > 0 {
			st.Dir = geom.Perp(ab)
		} else {
			st.Dir = geom.Perp(ab).Mul(-1)
		}
	} else {
		// A alone is closest.
		st.Simplex.Remove(0)
		st.Dir = ao
	}

	st.Colliding = false
}

// chordSimplex settles a 2-point simplex whose segment runs through the
// origin. If the difference extends past the segment's line on both sides
// the origin is strictly interior; the off-line support promotes the simplex
// to a triangle for penetration recovery. Extent on at most one side means
// the line supports the difference at the origin: boundary contact.
func (s *Solver) chordSimplex(a, b shape.Shape, st *State, chord mgl64.Vec2) {
	n := geom.Perp(chord).Normalize()

	above := Support(a, b, n)
	below := Support(a, b, n.Mul(-1))

	if above.Dot(n) > s.Tuning.NearZero && below.Dot(n) < -s.Tuning.NearZero {
		st.Simplex.Add(above)
		st.Colliding = true
		return
	}

	st.Dir = mgl64.Vec2{}
	st.Colliding = false
}

// triangleSimplex handles the 3-point simplex. The newest point A is the
// apex; only the two edges through A and A's own region can hold the origin,
// since the previous iteration already ruled out everything beyond edge BC.
//
// If the origin lies within NearZero of sitting exactly on one of the apex
// edges, the simplex is reduced to that edge and the direction is set to the
// zero sentinel: boundary contact, no further motion possible.
func (s *Solver) triangleSimplex(st *State) {
	// Simplex mapping: C=0, B=1, A=2.
	a := st.Simplex.At(2)
	b := st.Simplex.At(1)
	c := st.Simplex.At(0)

	ab := b.Sub(a)
	ac := c.Sub(a)
	ao := a.Mul(-1)

	abNorm := edgeNormalAway(ab, ac)
	t := abNorm.Dot(ao)

	switch {
	case t > 0:
		if ab.Dot(ao) > 0 {
			// Edge AB's region: drop C.
			st.Simplex.Remove(0)
			st.Dir = abNorm
		} else {
			// Apex region: keep A alone.
			st.Simplex.Remove(1)
			st.Simplex.Remove(0)
			st.Dir = ao
		}
		st.Colliding = false
		return
	case t > -s.Tuning.NearZero:
		// Origin on edge AB.
		st.Simplex.Remove(0)
		st.Dir = mgl64.Vec2{}
		st.Colliding = false
		return
	}

	acNorm := edgeNormalAway(ac, ab)
	t = acNorm.Dot(ao)

	switch {
	case t > 0:
		if ac.Dot(ao) > 0 {
			// Edge AC's region: drop B.
			st.Simplex.Remove(1)
			st.Dir = acNorm
		} else {
			st.Simplex.Remove(1)
			st.Simplex.Remove(0)
			st.Dir = ao
		}
		st.Colliding = false
		return
	case t > -s.Tuning.NearZero:
		// Origin on edge AC.
		st.Simplex.Remove(1)
		st.Dir = mgl64.Vec2{}
		st.Colliding = false
		return
	}

	// The origin is outside neither apex edge: the triangle contains it.
	st.Colliding = true
}

// edgeNormalAway returns the perpendicular of edge oriented away from the
// side indicated by toOpposite. Orienting against the opposite vertex avoids
// any assumption about simplex winding.
func edgeNormalAway(edge, toOpposite mgl64.Vec2) mgl64.Vec2 {
	n := geom.Perp(edge)
	if n.Dot(toOpposite) > 0 {
		n = n.Mul(-1)
	}

	return n
}
