package gjk

import "github.com/go-gl/mathgl/mgl64"

// Simplex is an ordered set of up to 3 points in the Minkowski difference
// space. Insertion order is meaningful: index 0 is the oldest point and the
// last index is the point added most recently, which the case analysis treats
// as the apex. The inline array keeps the hot path free of heap allocation.
type Simplex struct {
	points [3]mgl64.Vec2
	count  int
}

func (s *Simplex) Len() int {
	return s.count
}

func (s *Simplex) At(i int) mgl64.Vec2 {
	return s.points[i]
}

func (s *Simplex) Set(i int, p mgl64.Vec2) {
	s.points[i] = p
}

// Add appends p as the newest point.
func (s *Simplex) Add(p mgl64.Vec2) {
	s.points[s.count] = p
	s.count++
}

// Remove deletes the point at index i, preserving the order of the rest.
func (s *Simplex) Remove(i int) {
	copy(s.points[i:], s.points[i+1:s.count])
	s.count--
}

// Last returns the most recently added point.
func (s *Simplex) Last() mgl64.Vec2 {
	return s.points[s.count-1]
}

// Points returns a copy of the active points, oldest first.
func (s *Simplex) Points() []mgl64.Vec2 {
	pts := make([]mgl64.Vec2, s.count)
	copy(pts, s.points[:s.count])

	return pts
}

// State carries a single collision query through its iterations: the evolving
// simplex, the active search direction and the collision verdict. A State is
// created per invocation and owned entirely by that call, so independent
// queries are safe to run concurrently.
type State struct {
	Simplex   Simplex
	Dir       mgl64.Vec2
	Colliding bool
}
