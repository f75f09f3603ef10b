// Package keel is the narrow phase of a 2D rigid-body physics pipeline:
// given two convex shapes it reports whether they intersect and a single
// resolution vector, either the penetration (when overlapping) or the
// minimum gap (when separated).
//
// Three engine variants are provided. GJKEPA is the primary engine; MPR and
// Hybrid are alternative intersection tests that reuse the primary engine's
// penetration and separation recovery, retained for cross-validation and for
// continuous detection. All engines agree on their boolean verdicts.
package keel

import (
	"errors"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/lodehart/keel/epa"
	"github.com/lodehart/keel/gjk"
	"github.com/lodehart/keel/hybrid"
	"github.com/lodehart/keel/mpr"
	"github.com/lodehart/keel/shape"
)

// ErrNilShape is returned when a query is made against a nil shape.
var ErrNilShape = errors.New("keel: nil shape")

// Resolution is the outcome of a narrow-phase query.
//
// When Colliding is true, Vector is the displacement to apply to shape B to
// eliminate the overlap with shape A. When false, Vector is the displacement
// to apply to shape A to bring it into contact with shape B; a zero vector
// means the shapes already touch.
type Resolution struct {
	Colliding bool
	Vector    mgl64.Vec2
}

// Engine is a narrow-phase collision engine. Implementations are stateless
// between calls and safe for concurrent use on independent shape pairs,
// provided the shapes are not mutated during a query.
type Engine interface {
	IsColliding(a, b shape.Shape) (bool, error)
	Resolve(a, b shape.Shape) (Resolution, error)
}

func checkShapes(a, b shape.Shape) error {
	if a == nil || b == nil {
		return ErrNilShape
	}
	return nil
}

// GJKEPA is the primary engine: voronoi-region GJK with EPA penetration
// recovery and a marching separation query.
type GJKEPA struct {
	solver *gjk.Solver
}

func NewGJKEPA(t gjk.Tuning) *GJKEPA {
	return &GJKEPA{solver: gjk.NewSolver(t)}
}

func (e *GJKEPA) IsColliding(a, b shape.Shape) (bool, error) {
	if err := checkShapes(a, b); err != nil {
		return false, err
	}

	st, err := e.solver.Detect(a, b)
	if err != nil {
		return false, err
	}

	return st.Colliding, nil
}

func (e *GJKEPA) Resolve(a, b shape.Shape) (Resolution, error) {
	if err := checkShapes(a, b); err != nil {
		return Resolution{}, err
	}

	st, err := e.solver.Detect(a, b)
	if err != nil {
		return Resolution{}, err
	}

	if st.Colliding {
		vec, err := epa.Penetrate(a, b, st, e.solver.Tuning)
		return Resolution{Colliding: true, Vector: vec}, err
	}

	vec, err := e.solver.Distance(a, b, st)

	return Resolution{Vector: vec}, err
}

// MPR is the portal-refinement engine. It runs its own intersection test and
// delegates recovery to the primary engine's EPA and march, after dropping
// the interior reference point from its simplex.
type MPR struct {
	portal  *mpr.Solver
	marcher *gjk.Solver
}

func NewMPR(t gjk.Tuning) *MPR {
	return &MPR{portal: mpr.NewSolver(t), marcher: gjk.NewSolver(t)}
}

func (e *MPR) IsColliding(a, b shape.Shape) (bool, error) {
	if err := checkShapes(a, b); err != nil {
		return false, err
	}

	st, err := e.portal.Detect(a, b)
	if err != nil {
		return false, err
	}

	return st.Colliding, nil
}

func (e *MPR) Resolve(a, b shape.Shape) (Resolution, error) {
	if err := checkShapes(a, b); err != nil {
		return Resolution{}, err
	}

	st, err := e.portal.Detect(a, b)
	if err != nil {
		return Resolution{}, err
	}

	if st.Colliding {
		// The portal simplex carries the interior reference point, which
		// EPA cannot keep as a polytope vertex. Rebuild an all-boundary
		// simplex before expanding.
		st, err = e.marcher.Detect(a, b)
		if err != nil {
			return Resolution{}, err
		}
		if !st.Colliding {
			// Tolerance disagreement at the boundary: zero-depth contact.
			return Resolution{Colliding: true}, nil
		}

		vec, err := epa.Penetrate(a, b, st, e.portal.Tuning)
		return Resolution{Colliding: true, Vector: vec}, err
	}

	// The reference point is interior to the difference, not a support
	// point; the march only works on boundary points.
	st.Simplex.Remove(0)
	vec, err := e.marcher.Distance(a, b, st)

	return Resolution{Vector: vec}, err
}

// Hybrid is the baseline winding-based engine, exposed for cross-validation
// and for its continuous-detection Sweep.
type Hybrid struct {
	solver *hybrid.Solver
}

func NewHybrid(t gjk.Tuning) *Hybrid {
	return &Hybrid{solver: hybrid.NewSolver(t)}
}

func (e *Hybrid) IsColliding(a, b shape.Shape) (bool, error) {
	if err := checkShapes(a, b); err != nil {
		return false, err
	}

	st, err := e.solver.Detect(a, b)
	if err != nil {
		return false, err
	}

	return st.Colliding, nil
}

func (e *Hybrid) Resolve(a, b shape.Shape) (Resolution, error) {
	if err := checkShapes(a, b); err != nil {
		return Resolution{}, err
	}

	colliding, vec, err := e.solver.Resolve(a, b)

	return Resolution{Colliding: colliding, Vector: vec}, err
}

// Sweep returns the static penetration vector, or the minimum separating
// displacement when the shapes do not overlap, for time-of-impact
// estimation. The boolean reports static overlap.
func (e *Hybrid) Sweep(a, b shape.Shape) (mgl64.Vec2, bool, error) {
	if err := checkShapes(a, b); err != nil {
		return mgl64.Vec2{}, false, err
	}

	return e.solver.Sweep(a, b)
}
