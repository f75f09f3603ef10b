package gjk

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/lodehart/keel/geom"
	"github.com/lodehart/keel/shape"
)

// Distance computes the minimum displacement between two non-overlapping
// shapes, marching the terminal GJK simplex toward the closest feature of the
// Minkowski difference. The returned vector is the displacement that moves
// shape A into contact with shape B; a zero vector means the shapes already
// touch.
//
// The state must come from a Detect call that reported no collision. The
// simplex is consumed: it is collapsed and rewritten during the march.
func (s *Solver) Distance(a, b shape.Shape, st *State) (mgl64.Vec2, error) {
	// A single support point is its own closest feature.
	if st.Simplex.Len() == 1 {
		return st.Simplex.At(0).Mul(-1), nil
	}

	// A leftover triangle cannot contain the origin (Detect would have said
	// so), so collapse it with the same case analysis. If that reduces to a
	// single point, re-expand to a line: the last search direction still
	// points at the origin.
	if st.Simplex.Len() == 3 {
		s.triangleSimplex(st)
		if st.Simplex.Len() == 1 {
			st.Simplex.Add(Support(a, b, st.Dir))
		}
	}

	for range s.Tuning.MarchIterations {
		newest := st.Simplex.At(1)
		oldest := st.Simplex.At(0)

		closest := geom.ClosestOnSegment(newest, oldest, mgl64.Vec2{})

		// The segment crosses the origin: boundary contact.
		if closest == (mgl64.Vec2{}) {
			st.Dir = mgl64.Vec2{}
			return mgl64.Vec2{}, nil
		}

		st.Dir = closest.Mul(-1)
		newPt := Support(a, b, st.Dir)

		// No meaningful progress past the current segment: the closest
		// point stands.
		if newPt.Sub(newest).Dot(st.Dir) <= s.Tuning.Convergence {
			return closest.Mul(-1), nil
		}

		// Replace whichever endpoint sits further from the origin.
		if oldest.Dot(oldest) > newest.Dot(newest) {
			st.Simplex.Set(0, newPt)
		} else {
			st.Simplex.Set(1, newPt)
		}
	}

	return mgl64.Vec2{}, &ConvergenceError{Stage: "march", Iterations: s.Tuning.MarchIterations}
}
