// Package geom provides the 2D predicates the collision engines are built on:
// perpendicular products, winding normalization, point-vs-line sidedness,
// convex containment and closest-point queries.
//
// All functions are pure and operate on mgl64.Vec2 values.
package geom

import (
	"math"
	"sort"

	"github.com/go-gl/mathgl/mgl64"
)

// Perp returns the counterclockwise perpendicular of v: (-y, x).
func Perp(v mgl64.Vec2) mgl64.Vec2 {
	return mgl64.Vec2{-v.Y(), v.X()}
}

// PerpDot returns the 2D cross product a.x*b.y - a.y*b.x.
// Positive when b is counterclockwise from a.
func PerpDot(a, b mgl64.Vec2) float64 {
	return a.X()*b.Y() - a.Y()*b.X()
}

// Side reports which side of the directed line a->b the point p lies on.
// Positive means p is to the left, negative to the right, zero on the line.
// The magnitude is twice the signed area of the triangle a, b, p.
func Side(a, b, p mgl64.Vec2) float64 {
	return PerpDot(b.Sub(a), p.Sub(a))
}

// ArrangePoints returns the points reordered counterclockwise around their
// centroid. Inputs with fewer than 3 points are returned as a copy unchanged.
// The input slice is not modified.
func ArrangePoints(pts []mgl64.Vec2) []mgl64.Vec2 {
	arranged := make([]mgl64.Vec2, len(pts))
	copy(arranged, pts)

	if len(arranged) < 3 {
		return arranged
	}

	var centroid mgl64.Vec2
	for _, p := range arranged {
		centroid = centroid.Add(p)
	}
	centroid = centroid.Mul(1.0 / float64(len(arranged)))

	sort.Slice(arranged, func(i, j int) bool {
		ai := math.Atan2(arranged[i].Y()-centroid.Y(), arranged[i].X()-centroid.X())
		aj := math.Atan2(arranged[j].Y()-centroid.Y(), arranged[j].X()-centroid.X())
		return ai < aj
	})

	return arranged
}

// ContainsPoint reports whether p lies strictly inside the convex polygon.
// The polygon must be arranged counterclockwise (see ArrangePoints). Points on
// the boundary are not contained, which is what lets the engines classify
// exact touch as a zero-gap separation.
func ContainsPoint(poly []mgl64.Vec2, p mgl64.Vec2) bool {
	if len(poly) < 3 {
		return false
	}

	for i := range poly {
		a := poly[i]
		b := poly[(i+1)%len(poly)]
		if Side(a, b, p) <= 0 {
			return false
		}
	}

	return true
}

// LineDisplacement returns the perpendicular displacement from p to the
// infinite line through a and b. Adding the result to p yields the closest
// point on the line.
func LineDisplacement(p, a, b mgl64.Vec2) mgl64.Vec2 {
	dir := b.Sub(a)
	lenSqr := dir.Dot(dir)
	if lenSqr == 0 {
		return a.Sub(p)
	}

	w := p.Sub(a)
	proj := dir.Mul(w.Dot(dir) / lenSqr)

	return proj.Sub(w)
}

// ClosestOnSegment returns the point on the segment a-b closest to p,
// clamped to the segment endpoints.
func ClosestOnSegment(a, b, p mgl64.Vec2) mgl64.Vec2 {
	ab := b.Sub(a)
	lenSqr := ab.Dot(ab)
	if lenSqr == 0 {
		return a
	}

	t := p.Sub(a).Dot(ab) / lenSqr
	if t <= 0 {
		return a
	}
	if t >= 1 {
		return b
	}

	return a.Add(ab.Mul(t))
}
