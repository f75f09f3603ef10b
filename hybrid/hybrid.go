// Package hybrid is the baseline GJK-EPA engine: the same intersection test
// as the primary engine, implemented with explicit winding normalization and
// a point-in-polygon containment check instead of voronoi-region algebra.
//
// It exists as an independent cross-check of the primary engine (the two must
// agree on every input) and as the host of Sweep, a continuous-detection
// helper that falls through to the minimum-displacement march when no static
// overlap is found, yielding the separating displacement used for
// time-of-impact estimation.
package hybrid

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/lodehart/keel/epa"
	"github.com/lodehart/keel/geom"
	"github.com/lodehart/keel/gjk"
	"github.com/lodehart/keel/shape"
)

// Solver runs baseline queries with a fixed set of tolerances. Stateless
// between calls and safe for concurrent use.
type Solver struct {
	Tuning gjk.Tuning
}

func NewSolver(t gjk.Tuning) *Solver {
	return &Solver{Tuning: t}
}

// Detect reports whether the shapes intersect, evolving the simplex through
// arranged-winding sidedness tests. Boundary contact (origin on the simplex)
// is classified as not colliding, matching the primary engine.
func (s *Solver) Detect(a, b shape.Shape) (*gjk.State, error) {
	st := &gjk.State{}

	dir := b.Centroid().Sub(a.Centroid())
	if dir.Dot(dir) == 0 {
		dir = mgl64.Vec2{1, 0}
	} else {
		dir = dir.Normalize()
	}

	st.Simplex.Add(gjk.Support(a, b, dir))
	dir = dir.Mul(-1)
	st.Dir = dir

	for range s.Tuning.HybridIterations {
		supp := gjk.Support(a, b, dir)
		st.Simplex.Add(supp)

		// Support short of the origin: the difference cannot contain it.
		// Drop the oldest point so the remainder seeds the march.
		if supp.Dot(dir) < 0 {
			st.Simplex.Remove(0)
			st.Colliding = false
			st.Dir = dir
			return st, nil
		}

		if st.Simplex.Len() == 3 &&
			geom.ContainsPoint(geom.ArrangePoints(st.Simplex.Points()), mgl64.Vec2{}) {
			st.Colliding = true
			st.Dir = dir
			return st, nil
		}

		pts := geom.ArrangePoints(st.Simplex.Points())
		if len(pts) == 2 {
			edge := pts[1].Sub(pts[0])
			if geom.Side(pts[0], pts[1], mgl64.Vec2{}) > 0 {
				dir = geom.Perp(edge)
			} else {
				dir = geom.Perp(edge).Mul(-1)
			}
		} else {
			var ok bool
			dir, ok = s.dropOutsidePoint(pts, st)
			if !ok {
				// Origin sits on the simplex boundary, which is only a
				// chord of the difference. A support query past the chord
				// tells interior from boundary contact.
				st.Colliding = s.chordColliding(a, b, pts)
				st.Dir = mgl64.Vec2{}
				return st, nil
			}
		}
		st.Dir = dir
	}

	return st, &gjk.ConvergenceError{Stage: "hybrid", Iterations: s.Tuning.HybridIterations}
}

// Resolve composes the baseline test with the shared recovery routines:
// EPA for penetration, the march for minimum displacement.
func (s *Solver) Resolve(a, b shape.Shape) (bool, mgl64.Vec2, error) {
	st, err := s.Detect(a, b)
	if err != nil {
		return false, mgl64.Vec2{}, err
	}

	if st.Colliding {
		vec, err := epa.Penetrate(a, b, st, s.Tuning)
		return true, vec, err
	}

	marcher := gjk.Solver{Tuning: s.Tuning}
	vec, err := marcher.Distance(a, b, st)

	return false, vec, err
}

// Sweep is the continuous-detection helper. With static overlap it returns
// the penetration vector; without one it collapses the simplex and marches
// to the minimum separating displacement between the shapes. The boolean
// reports whether the shapes statically overlap.
func (s *Solver) Sweep(a, b shape.Shape) (mgl64.Vec2, bool, error) {
	st := &gjk.State{}

	dir := b.Centroid().Sub(a.Centroid())
	if dir.Dot(dir) == 0 {
		dir = mgl64.Vec2{1, 0}
	} else {
		dir = dir.Normalize()
	}

	st.Simplex.Add(gjk.Support(a, b, dir))
	dir = dir.Mul(-1)
	st.Dir = dir

	for range s.Tuning.HybridIterations {
		supp := gjk.Support(a, b, dir)
		st.Simplex.Add(supp)

		// No static overlap: reduce a triangle to its closest edge and hand
		// the simplex to the march for the separating displacement.
		if supp.Dot(dir) < 0 {
			if st.Simplex.Len() == 3 {
				pts := geom.ArrangePoints(st.Simplex.Points())
				if d, ok := s.dropOutsidePoint(pts, st); ok {
					dir = d
				}
			}
			st.Dir = dir
			st.Colliding = false

			marcher := gjk.Solver{Tuning: s.Tuning}
			vec, err := marcher.Distance(a, b, st)

			return vec, false, err
		}

		if st.Simplex.Len() == 3 &&
			geom.ContainsPoint(geom.ArrangePoints(st.Simplex.Points()), mgl64.Vec2{}) {
			st.Colliding = true
			st.Dir = dir

			vec, err := epa.Penetrate(a, b, st, s.Tuning)
			if err != nil {
				return mgl64.Vec2{}, false, err
			}

			return vec, vec != (mgl64.Vec2{}), nil
		}

		pts := geom.ArrangePoints(st.Simplex.Points())
		if len(pts) == 2 {
			edge := pts[1].Sub(pts[0])
			if geom.Side(pts[0], pts[1], mgl64.Vec2{}) > 0 {
				dir = geom.Perp(edge)
			} else {
				dir = geom.Perp(edge).Mul(-1)
			}
		} else {
			var ok bool
			dir, ok = s.dropOutsidePoint(pts, st)
			if !ok {
				if s.chordColliding(a, b, pts) {
					st.Colliding = true
					st.Dir = dir

					vec, err := epa.Penetrate(a, b, st, s.Tuning)
					if err != nil {
						return mgl64.Vec2{}, false, err
					}

					return vec, vec != (mgl64.Vec2{}), nil
				}

				st.Colliding = false
				st.Dir = mgl64.Vec2{}
				return mgl64.Vec2{}, false, nil
			}
		}
		st.Dir = dir
	}

	return mgl64.Vec2{}, false, &gjk.ConvergenceError{Stage: "hybrid", Iterations: s.Tuning.HybridIterations}
}

// chordColliding classifies a simplex whose boundary holds the origin. Each
// simplex edge is a chord of the difference, so origin-on-edge alone proves
// nothing: if the difference extends past the chord on the side away from
// the remaining vertex, the origin is strictly interior. An origin sitting
// on a simplex vertex is a support point of the difference at the origin,
// which is genuine boundary contact.
func (s *Solver) chordColliding(a, b shape.Shape, pts []mgl64.Vec2) bool {
	nzSqr := s.Tuning.NearZero * s.Tuning.NearZero

	for i := range pts {
		pa := pts[i]
		pb := pts[(i+1)%len(pts)]
		third := pts[(i+2)%len(pts)]

		edge := pb.Sub(pa)
		if edge.Dot(edge) == 0 {
			continue
		}
		if geom.Side(pa, pb, mgl64.Vec2{}) != 0 {
			continue
		}
		if pa.Dot(pa) <= nzSqr || pb.Dot(pb) <= nzSqr {
			continue
		}

		n := geom.Perp(edge)
		if n.Dot(third.Sub(pa)) > 0 {
			n = n.Mul(-1)
		}
		n = n.Normalize()

		if gjk.Support(a, b, n).Dot(n) > s.Tuning.NearZero {
			return true
		}
	}

	return false
}

// dropOutsidePoint finds the arranged edge the origin lies outside of,
// removes the simplex point not on that edge and returns the edge's outward
// normal as the next search direction. It reports false when the origin is
// outside no edge, which (the containment test having failed) means the
// origin lies on the simplex boundary.
func (s *Solver) dropOutsidePoint(pts []mgl64.Vec2, st *gjk.State) (mgl64.Vec2, bool) {
	for i := range pts {
		a := pts[i]
		b := pts[(i+1)%len(pts)]
		third := pts[(i+2)%len(pts)]

		// Arranged counterclockwise: negative side is outside.
		if geom.Side(a, b, mgl64.Vec2{}) < 0 {
			removeValue(&st.Simplex, third)

			n := geom.Perp(b.Sub(a))
			if n.Dot(third.Sub(a)) > 0 {
				n = n.Mul(-1)
			}

			return n.Normalize(), true
		}
	}

	return mgl64.Vec2{}, false
}

// removeValue deletes the first simplex entry equal to p.
func removeValue(s *gjk.Simplex, p mgl64.Vec2) {
	for i := 0; i < s.Len(); i++ {
		if s.At(i) == p {
			s.Remove(i)
			return
		}
	}
}
