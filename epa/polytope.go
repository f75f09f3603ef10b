package epa

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/lodehart/keel/geom"
)

// Edge is one boundary segment of the expanding polytope, with its outward
// unit normal and its distance from the origin. Index is where a support
// point splitting this edge must be inserted to keep the vertex ring ordered.
type Edge struct {
	A, B     mgl64.Vec2
	Normal   mgl64.Vec2
	Distance float64
	Index    int
}

// Polytope is the growing approximation of the Minkowski difference boundary.
// Unlike the 3-point GJK simplex it expands freely; vertices stay in ring
// order so edges can be read off consecutive pairs.
type Polytope struct {
	verts []mgl64.Vec2
}

// NewPolytope seeds the polytope from a simplex known to contain the origin,
// normalizing the winding first.
func NewPolytope(simplex []mgl64.Vec2) *Polytope {
	return &Polytope{verts: geom.ArrangePoints(simplex)}
}

// ClosestEdge scans every edge of the ring and returns the one nearest the
// origin. Normals are unit length and oriented outward, away from the ring
// centroid: the origin may sit exactly on an edge (zero distance), so its own
// side of the edge cannot orient the normal. Zero-length edges (duplicate
// vertices introduced by expansion) are skipped.
func (p *Polytope) ClosestEdge() Edge {
	closest := Edge{Distance: math.Inf(1)}

	var interior mgl64.Vec2
	for _, v := range p.verts {
		interior = interior.Add(v)
	}
	interior = interior.Mul(1.0 / float64(len(p.verts)))

	n := len(p.verts)
	for i := 0; i < n; i++ {
		a := p.verts[i]
		b := p.verts[(i+1)%n]

		dir := b.Sub(a)
		if dir.Dot(dir) == 0 {
			continue
		}

		normal := geom.Perp(dir).Normalize()
		if normal.Dot(a.Sub(interior)) < 0 {
			normal = normal.Mul(-1)
		}
		dist := math.Abs(normal.Dot(a))

		if dist < closest.Distance {
			closest = Edge{
				A:        a,
				B:        b,
				Normal:   normal,
				Distance: dist,
				Index:    (i + 1) % n,
			}
		}
	}

	return closest
}

// Insert places pt at the given ring index, between the two vertices of the
// edge it refines.
func (p *Polytope) Insert(index int, pt mgl64.Vec2) {
	p.verts = append(p.verts, mgl64.Vec2{})
	copy(p.verts[index+1:], p.verts[index:])
	p.verts[index] = pt
}

// Vertices returns the current ring. Shared storage; callers must not mutate.
func (p *Polytope) Vertices() []mgl64.Vec2 {
	return p.verts
}
